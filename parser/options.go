package parser

const (
	DefaultMaxDepth = 1000
	DefaultMaxArgs  = 255
)

type options struct {
	maxDepth int
	maxArgs  int
}

type Option func(*options)

// MaxDepth bounds how deeply statements and expressions may nest.
// Values below 1 keep the default.
func MaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

// MaxArgs bounds the number of call arguments and function parameters.
// Values below 1 keep the default.
func MaxArgs(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxArgs = n
		}
	}
}

func newOptions(opts []Option) options {
	o := options{maxDepth: DefaultMaxDepth, maxArgs: DefaultMaxArgs}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
