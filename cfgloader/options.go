package cfgloader

// Options holds configuration options for Load.
type Options struct {
	// Silent disables printing the loaded config.
	Silent bool

	// Dir is the directory holding ${ENVIRONMENT}.yaml files. Defaults to "./config".
	Dir string

	// Environment overrides the ENVIRONMENT variable when not empty.
	Environment string
}

// Option is a functional option for configuring Load behavior.
type Option func(*Options)

// WithSilent disables config logging to stdout.
func WithSilent() Option {
	return func(o *Options) {
		o.Silent = true
	}
}

// WithDir sets the directory config files are read from.
func WithDir(dir string) Option {
	return func(o *Options) {
		o.Dir = dir
	}
}

// WithEnvironment selects the config file regardless of the ENVIRONMENT variable.
func WithEnvironment(env string) Option {
	return func(o *Options) {
		o.Environment = env
	}
}

func buildOptions(opts []Option) Options {
	o := Options{Dir: defaultDir}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
