package assets

// Resolver provides asset path resolution.
type Resolver interface {
	// Asset resolves a source asset path to its public URL path.
	Asset(source string) string
}

type manifestResolver struct {
	manifest *Manifest
	prefix   string
}

// NewResolver creates a Resolver from a Manifest with a path prefix.
//
//	resolver := assets.NewResolver(manifest, "/static/")
//	resolver.Asset("styles.css") // "/static/styles.3f9a1c0b.css"
func NewResolver(m *Manifest, prefix string) Resolver {
	return &manifestResolver{
		manifest: m,
		prefix:   prefix,
	}
}

func (r *manifestResolver) Asset(source string) string {
	return r.prefix + r.manifest.Resolve(source)
}

type passthrough struct {
	prefix string
}

// NewPassthroughResolver creates a resolver that only applies the prefix.
// Dev mode uses it to link the unfingerprinted name, which the static
// handler serves without caching.
func NewPassthroughResolver(prefix string) Resolver {
	return &passthrough{prefix: prefix}
}

func (p *passthrough) Asset(source string) string {
	return p.prefix + source
}
