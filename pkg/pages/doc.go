// Package pages looks up the content rendered inside the root layout.
//
// A page is an HTML fragment stored under a key derived from the request
// path:
//
//	/            -> index.html
//	/about       -> about.html, then about/index.html
//	/posts/hello -> posts/hello.html, then posts/hello/index.html
//	/posts/      -> posts/index.html
//
// Fragments are returned as raw nodes so they reach the document
// unchanged. Sources exist for a local directory (FSSource), an S3 bucket
// (S3Source) and an in-memory map (Static).
package pages
