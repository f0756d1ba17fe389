package collage

// Option configures a Project during creation.
//
// Example:
//
//	// Default 8-bit project
//	p := collage.New()
//
//	// 16-bit channels with render metrics
//	m, _ := collage.NewMetrics(prometheus.DefaultRegisterer)
//	p := collage.New(collage.WithMaxValue(65535), collage.WithMetrics(m))
type Option func(*options)

// options holds optional configuration for Project creation.
type options struct {
	maxValue            int
	legacyChannelWrites bool
	renderCache         int
	metrics             *Metrics
}

// defaultOptions returns the default project options.
func defaultOptions() options {
	return options{
		maxValue:    DefaultMaxValue,
		renderCache: DefaultRenderCache,
	}
}

// WithMaxValue sets the channel scale used by NewProject. Loaded projects
// take their scale from the document instead. Values below 1 make
// NewProject fail with ErrInvalidArgument.
func WithMaxValue(v int) Option {
	return func(o *options) {
		o.maxValue = v
	}
}

// WithLegacyChannelWrites makes the difference, multiply and screen filters
// write every computed channel into red and leave green and blue untouched.
// Older renderers produced images this way; enable it only to reproduce them.
func WithLegacyChannelWrites() Option {
	return func(o *options) {
		o.legacyChannelWrites = true
	}
}

// WithMetrics records render activity into m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithRenderCache sets how many intermediate composites Render keeps between
// calls. Zero or less disables the cache.
func WithRenderCache(entries int) Option {
	return func(o *options) {
		o.renderCache = entries
	}
}
