package cfgloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name     string `yaml:"name"     validate:"required"`
	Port     int    `yaml:"port"     default:"8080"`
	Level    string `yaml:"level"    validate:"oneof=debug info" default:"info"`
	Password string `yaml:"password" mask:"true"`
	Nested   struct {
		Token string `yaml:"token" mask:"true"`
		Mode  string `yaml:"mode"  default:"fast"`
	} `yaml:"nested"`
}

func writeConfig(t *testing.T, env, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, env+".yaml"), []byte(content), 0o600))
	return dir
}

func TestLoad(t *testing.T) {
	t.Setenv("PIPELINE_SECRET", "s3cret")
	dir := writeConfig(t, EnvTest, "name: demo\npassword: ${PIPELINE_SECRET}\nnested:\n  token: abc\n")

	cfg, err := Load[testConfig](WithDir(dir), WithEnvironment(EnvTest), WithSilent())
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.Name)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "s3cret", cfg.Password)
	assert.Equal(t, "abc", cfg.Nested.Token)
	assert.Equal(t, "fast", cfg.Nested.Mode)
}

func TestLoad_EnvironmentVariable(t *testing.T) {
	t.Setenv("ENVIRONMENT", EnvLocal)
	dir := writeConfig(t, EnvLocal, "name: from-env\n")

	cfg, err := Load[testConfig](WithDir(dir), WithSilent())
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Name)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		content string
		code    string
	}{
		{name: "unknown environment", env: "moon", content: "name: x\n", code: CodeInvalidEnvironment},
		{name: "validation failure", env: EnvTest, content: "level: trace\n", code: CodeValidationFailed},
		{name: "malformed yaml", env: EnvTest, content: "name: [unterminated\n", code: CodeInvalidFile},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := writeConfig(t, EnvTest, tc.content)

			_, err := Load[testConfig](WithDir(dir), WithEnvironment(tc.env), WithSilent())
			require.Error(t, err)
			assert.Equal(t, tc.code, errx.AsErrorX(err).Code())
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load[testConfig](WithDir(t.TempDir()), WithEnvironment(EnvDev), WithSilent())
	require.Error(t, err)
	assert.Equal(t, CodeFileNotFound, errx.AsErrorX(err).Code())
}

func TestMaskedYAML(t *testing.T) {
	cfg := testConfig{Name: "demo", Password: "hunter2"}
	cfg.Nested.Token = "abc"

	out, err := maskedYAML(cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "name: demo")
	assert.Contains(t, out, "*******")
	assert.NotContains(t, out, "abc")
	assert.NotContains(t, out, "hunter2")
}
