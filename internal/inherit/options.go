package inherit

import "entdef/internal/entity"

// Options tune the resolver.
type Options struct {
	// FlagsKey is the property key whose flags definitions are merged bit by bit.
	FlagsKey string
}

type Option func(*Options)

// WithFlagsKey overrides the flags property key (default "spawnflags").
// An empty key keeps the default.
func WithFlagsKey(key string) Option {
	return func(o *Options) {
		if key != "" {
			o.FlagsKey = key
		}
	}
}

func DefaultOptions() Options {
	return Options{FlagsKey: entity.SpawnflagsKey}
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
