package cli

import (
	"github.com/code19m/errx"
	"github.com/rise-and-shine/pipeline/cfgloader"
	"github.com/rise-and-shine/pipeline/observability/logger"
	"github.com/rise-and-shine/pipeline/observability/tracing"
)

// Config is the application configuration read from ./config/${ENVIRONMENT}.yaml.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Logger   logger.Config  `yaml:"logger"`
	Tracing  tracing.Config `yaml:"tracing"`
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// ServiceConfig identifies the running service in logs and spans.
type ServiceConfig struct {
	Name    string `yaml:"name"    validate:"required" default:"pipeline"`
	Version string `yaml:"version"                     default:"dev"`
}

// PipelineConfig controls how pipelines are built.
type PipelineConfig struct {
	// Output is the stream markers and handler prints are written to.
	Output string `yaml:"output" validate:"oneof=stdout stderr" default:"stdout"`

	// DisableInstrumentation leaves only the markers around each invocation.
	DisableInstrumentation bool `yaml:"disable_instrumentation"`
}

// LoadFunc loads the configuration for the given environment.
// An empty env falls back to the ENVIRONMENT variable.
type LoadFunc func(env string) (Config, error)

// LoadConfig is the default LoadFunc backed by cfgloader.
func LoadConfig(env string) (Config, error) {
	cfg, err := cfgloader.Load[Config](cfgloader.WithEnvironment(env))
	return cfg, errx.Wrap(err)
}
