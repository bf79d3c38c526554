package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zephyrtronium/calc"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "calc.yaml")
	require.NoError(t, os.WriteFile(name, []byte(text), 0o644))
	return name
}

func TestLoadConfig(t *testing.T) {
	name := writeConfig(t, `
mode: postfix
precision: 128
factorial_limit: 20
format: "%.2f"
prompt: "$ "
log_level: debug
`)
	cfg := defaultConfig()
	require.NoError(t, loadConfig(name, &cfg))
	assert.Equal(t, config{
		Mode:           "postfix",
		Precision:      128,
		FactorialLimit: 20,
		Format:         "%.2f",
		Prompt:         "$ ",
		LogLevel:       "debug",
	}, cfg)
	m, ok := cfg.mode()
	assert.True(t, ok)
	assert.Equal(t, calc.ModePostfix, m)
	assert.NoError(t, cfg.validate())
}

func TestLoadConfigPartial(t *testing.T) {
	name := writeConfig(t, "precision: 200\n")
	cfg := defaultConfig()
	require.NoError(t, loadConfig(name, &cfg))
	want := defaultConfig()
	want.Precision = 200
	assert.Equal(t, want, cfg)
}

func TestLoadConfigEmpty(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, loadConfig(writeConfig(t, ""), &cfg))
	assert.Equal(t, defaultConfig(), cfg)
	_, ok := cfg.mode()
	assert.False(t, ok)
}

func TestLoadConfigErrors(t *testing.T) {
	cfg := defaultConfig()
	assert.Error(t, loadConfig(writeConfig(t, "modes: tree\n"), &cfg))
	assert.Error(t, loadConfig(writeConfig(t, "precision: lots\n"), &cfg))
	assert.Error(t, loadConfig(filepath.Join(t.TempDir(), "missing.yaml"), &cfg))
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		edit func(*config)
	}{
		{"mode", func(c *config) { c.Mode = "rpn" }},
		{"zero-prec", func(c *config) { c.Precision = 0 }},
		{"huge-prec", func(c *config) { c.Precision = 1 << 33 }},
		{"format", func(c *config) { c.Format = "" }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := defaultConfig()
			c.edit(&cfg)
			assert.Error(t, cfg.validate())
		})
	}
	assert.NoError(t, (&config{Mode: "stack", Precision: 1, Format: "%v"}).validate())
}

func TestConfigFlagsOverride(t *testing.T) {
	name := writeConfig(t, "mode: postfix\nformat: \"%.2f\"\n")

	out, code := runString(t, "", "-config", name, "-echo", "1+2")
	assert.Equal(t, 0, code)
	assert.Equal(t, "1 2 + : 3.00\n", out)

	out, code = runString(t, "", "-config", name, "-fmt", "%g", "-mode", "tree", "-echo", "1/4")
	assert.Equal(t, 0, code)
	assert.Equal(t, "((1) / (4)) : 0.25\n", out)
}

func TestConfigPrompt(t *testing.T) {
	name := writeConfig(t, "mode: tree\nprompt: \"$ \"\n")
	out, code := runString(t, "1+1\n", "-config", name)
	assert.Equal(t, 0, code)
	assert.Equal(t, "$ 2\n$ \n", out)
}

func TestConfigBadFile(t *testing.T) {
	_, code := runString(t, "", "-config", writeConfig(t, "mode: [\n"), "1")
	assert.Equal(t, 1, code)
}

func writeTOML(t *testing.T, text string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "calc.toml")
	require.NoError(t, os.WriteFile(name, []byte(text), 0o644))
	return name
}

func TestLoadConfigTOML(t *testing.T) {
	name := writeTOML(t, `
mode = "stack"
precision = 96
format = "%.1f"
`)
	cfg := defaultConfig()
	require.NoError(t, loadConfig(name, &cfg))
	want := defaultConfig()
	want.Mode = "stack"
	want.Precision = 96
	want.Format = "%.1f"
	assert.Equal(t, want, cfg)

	assert.Error(t, loadConfig(writeTOML(t, "modes = \"tree\"\n"), &cfg))
	assert.Error(t, loadConfig(writeTOML(t, "precision = \"lots\"\n"), &cfg))

	out, code := runString(t, "", "-config", name, "-echo", "3!")
	assert.Equal(t, 0, code)
	assert.Equal(t, "3 ! : 6.0\n", out)
}
