package storage

// Option configures Put operations.
type Option func(*PutOptions)

// PutOptions is the resolved set of Put options.
// Storage implementations obtain it with ApplyOptions.
type PutOptions struct {
	Key         string // explicit key, replaces the generated one
	Prefix      string // path prefix, e.g. "exports"
	ContentType string
}

// ApplyOptions resolves opts. ContentType defaults to ContentTypeBinary.
func ApplyOptions(opts ...Option) PutOptions {
	o := PutOptions{ContentType: ContentTypeBinary}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithKey sets an explicit storage key, replacing the generated ULID-based key.
func WithKey(key string) Option {
	return func(o *PutOptions) {
		o.Key = key
	}
}

// WithPrefix sets a path prefix: WithPrefix("exports") yields "exports/{ulid}.{ext}".
func WithPrefix(prefix string) Option {
	return func(o *PutOptions) {
		o.Prefix = prefix
	}
}

// WithContentType sets the object's content type and key extension.
func WithContentType(ct string) Option {
	return func(o *PutOptions) {
		if ct != "" {
			o.ContentType = ct
		}
	}
}
