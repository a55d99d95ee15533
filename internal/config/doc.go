// Package config provides configuration loading for the blog server.
//
// Configuration is read from blog.json, blog.yaml or blog.yml in the
// working directory, or from a file passed with --config. Every field
// has a default, so running without any file is valid.
//
// # Configuration File Structure
//
//	server:
//	  host: localhost
//	  port: 3000
//	  shutdownTimeout: 10s
//	  dev: false
//	pages:
//	  dir: content
//	  # bucket: my-blog-pages
//	  # prefix: pages/
//	static:
//	  prefix: /static/
//	metrics:
//	  enabled: true
//	  path: /metrics
//	  namespace: blog
//	tracing:
//	  name: blog
//	log:
//	  level: info
//	  format: text
//
// The environment variables BLOG_HOST, BLOG_PORT and BLOG_LOG_LEVEL
// override the matching fields after the file is read.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Addr())
package config
