package element

import "time"

const (
	// DefaultTimeout bounds the implicit wait of every operation unless the
	// session carries its own default
	DefaultTimeout = 10 * time.Second

	// DefaultInterClickDelay separates the two clicks of DoubleClick
	DefaultInterClickDelay = 100 * time.Millisecond
)

type options struct {
	timeout time.Duration
	delay   time.Duration
}

// Option tunes a single operation
type Option func(*options)

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithInterClickDelay overrides DefaultInterClickDelay. Zero clicks back to back.
func WithInterClickDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.delay = d
		}
	}
}

// resolve - session default first, then per-call options
func (e *Element) resolve(opts []Option) options {
	o := options{timeout: DefaultTimeout, delay: DefaultInterClickDelay}
	if d := e.session.DefaultTimeout(); d > 0 {
		o.timeout = d
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
