// Package cfgloader provides a simple way to load and validate configuration at the start of an application.
package cfgloader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/code19m/errx"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvProduction = "production"
	EnvStaging    = "staging"
	EnvDev        = "dev"
	EnvLocal      = "local"
	EnvTest       = "test"

	defaultDir = "./config"
)

// Load reads ${ENVIRONMENT}.yaml from the config directory into a T and validates it.
//
// The environment comes from WithEnvironment or the ENVIRONMENT variable (a .env
// file in the working directory is honored). ${VAR} references in the file are
// expanded from the process environment before unmarshaling.
//
// Default values are applied from `default` struct tags after unmarshaling, and
// the result is validated with go-playground/validator `validate` tags.
//
// Example:
//
//	type Config struct {
//	    Host     string `yaml:"host" validate:"required"`
//	    Port     int    `yaml:"port" default:"8080"`
//	    Password string `yaml:"password" mask:"true"`
//	}
func Load[T any](opts ...Option) (T, error) {
	var config T

	if reflect.ValueOf(&config).Elem().Kind() == reflect.Ptr {
		return config, errx.New("[cfgloader]: config type must not be a pointer")
	}

	o := buildOptions(opts)

	_ = godotenv.Load()

	env, err := defineEnvironment(o.Environment)
	if err != nil {
		return config, err
	}

	data, err := readConfigFile(filepath.Join(o.Dir, env+".yaml"))
	if err != nil {
		return config, err
	}

	err = yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &config)
	if err != nil {
		return config, errx.Wrap(err, errx.WithCode(CodeInvalidFile), errx.WithDetails(errx.D{"env": env}))
	}

	err = defaults.Set(&config)
	if err != nil {
		return config, errx.Wrap(err, errx.WithCode(CodeInvalidFile))
	}

	err = validateConfig(&config, env)
	if err != nil {
		return config, err
	}

	if !o.Silent {
		printConfig(config)
	}

	return config, nil
}

func defineEnvironment(override string) (string, error) {
	env := override
	if env == "" {
		env = os.Getenv("ENVIRONMENT")
	}

	if !slices.Contains([]string{EnvProduction, EnvStaging, EnvDev, EnvLocal, EnvTest}, env) {
		return "", errx.New(
			"[cfgloader]: ENVIRONMENT is not set or invalid. Choices are: production, staging, dev, local, test",
			errx.WithCode(CodeInvalidEnvironment),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"env": env}),
		)
	}
	return env, nil
}

func readConfigFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errx.New(
			fmt.Sprintf("[cfgloader]: config file not found in the path %s", path),
			errx.WithCode(CodeFileNotFound),
		)
	}
	if err != nil {
		return nil, errx.Wrap(err, errx.WithCode(CodeInvalidFile), errx.WithDetails(errx.D{"path": path}))
	}
	return data, nil
}

func validateConfig(config any, env string) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(config)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return errx.Wrap(err, errx.WithCode(CodeValidationFailed))
	}

	failedFields := make([]string, 0, len(errs))
	for _, fe := range errs {
		tagErr := fe.Tag()
		if fe.Param() != "" {
			tagErr += "=" + fe.Param()
		}
		failedFields = append(failedFields, fmt.Sprintf("%s: %s", fe.Namespace(), tagErr))
	}

	return errx.New(
		fmt.Sprintf("[cfgloader]: invalid fields in %s config -> %s", env, strings.Join(failedFields, ",  ")),
		errx.WithCode(CodeValidationFailed),
		errx.WithType(errx.T_Validation),
	)
}
