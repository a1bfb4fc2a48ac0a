package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"potato/pkg/build"
	"potato/pkg/transpiler"
)

// clearEnv unsets every variable ApplyEnv reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"POTATO_RUSTC", "POTATO_RUSTC_ARGS", "POTATO_WORKDIR", "POTATO_KEEP_WORKDIR",
		"POTATO_INDENT", "POTATO_PARAM_TYPE", "POTATO_LOG_LEVEL", "POTATO_NO_COLOR",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "potato.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[Build]
Compiler = "rustc-beta"
Args = ["-O", "--edition=2021"]
KeepWorkDir = true

[Emit]
ParamType = "i64"
`), 0o644))

	cfg, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err, "explicit env file must exist")

	t.Chdir(t.TempDir())
	cfg, err = Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "rustc-beta", cfg.Build.Compiler)
	assert.Equal(t, []string{"-O", "--edition=2021"}, cfg.Build.Args)
	assert.True(t, cfg.Build.KeepWorkDir)
	assert.Equal(t, "i64", cfg.Emit.ParamType)
	assert.Equal(t, "    ", cfg.Emit.Indent)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFile_UnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[Build]\nCompilr = \"x\"\n"), 0o644))

	cfg := Defaults()
	err := LoadFile(path, &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.toml")
	assert.Contains(t, err.Error(), "Compilr")
}

func TestApplyEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("POTATO_RUSTC", "/opt/rust/bin/rustc")
	t.Setenv("POTATO_RUSTC_ARGS", "-C opt-level=2")
	t.Setenv("POTATO_KEEP_WORKDIR", "true")
	t.Setenv("POTATO_LOG_LEVEL", "debug")
	t.Setenv("POTATO_PARAM_TYPE", "u8")

	cfg := Defaults()
	require.NoError(t, ApplyEnv(&cfg))
	assert.Equal(t, "/opt/rust/bin/rustc", cfg.Build.Compiler)
	assert.Equal(t, []string{"-C", "opt-level=2"}, cfg.Build.Args)
	assert.True(t, cfg.Build.KeepWorkDir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "u8", cfg.Emit.ParamType)
	assert.False(t, cfg.Log.NoColor)
}

func TestApplyEnv_BadBool(t *testing.T) {
	clearEnv(t)
	t.Setenv("POTATO_KEEP_WORKDIR", "sometimes")

	cfg := Defaults()
	err := ApplyEnv(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POTATO_KEEP_WORKDIR")
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("POTATO_INDENT=\"  \"\nPOTATO_NO_COLOR=1\n"), 0o644))
	t.Chdir(dir)
	t.Cleanup(func() {
		os.Unsetenv("POTATO_INDENT")
		os.Unsetenv("POTATO_NO_COLOR")
	})

	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, "  ", cfg.Emit.Indent)
	assert.True(t, cfg.Log.NoColor)
}

func TestDump(t *testing.T) {
	cfg := Defaults()
	out, err := Dump(&cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "[Build]")
	assert.Contains(t, string(out), `Compiler = "rustc"`)
	assert.Contains(t, string(out), "[Emit]")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, LogConfig{Level: "WARN", NoColor: true})
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	logger.Warn().Str("file", "a.potato").Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "file=a.potato")
	assert.Contains(t, buf.String(), "| WARN")

	_, err = NewLogger(&buf, LogConfig{Level: "loud"})
	require.Error(t, err)
}

func TestDefaultsMatchPackageDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, build.DefaultCompiler, cfg.Build.Compiler)
	assert.Equal(t, build.DefaultSource, cfg.Build.Source)

	// Emitting with the configured defaults is the same as emitting with none.
	stmts := []transpiler.Stmt{
		&transpiler.FuncDecl{Name: "f", Params: []string{"a"}, Body: []transpiler.Stmt{&transpiler.PrintStmt{Text: "a"}}},
	}
	assert.Equal(t, transpiler.Generate(stmts, nil), transpiler.Generate(stmts, &cfg.Emit))
}
