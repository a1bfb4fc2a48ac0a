// Package config loads potato settings from defaults, a TOML file, a .env
// file and the process environment, in that order of increasing precedence.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/naoina/toml"

	"potato/pkg/build"
	"potato/pkg/transpiler"
)

// Config is the complete potato configuration.
type Config struct {
	Build build.Options
	Emit  transpiler.EmitOptions
	Log   LogConfig
}

// LogConfig controls the console logger.
type LogConfig struct {
	Level   string // zerolog level name
	NoColor bool
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Build: build.Options{
			Compiler: build.DefaultCompiler,
			Source:   build.DefaultSource,
		},
		Emit: transpiler.EmitOptions{
			Indent:    transpiler.DefaultIndent,
			ParamType: transpiler.DefaultParamType,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// LoadFile decodes a TOML file over cfg. Keys absent from the file keep their value.
func LoadFile(file string, cfg *Config) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// Dump renders cfg as TOML.
func Dump(cfg *Config) ([]byte, error) {
	return tomlSettings.Marshal(cfg)
}

// LoadEnv loads a .env file into the process environment without overriding
// variables that are already set. An empty envfile loads ./.env if it exists.
func LoadEnv(envfile string) error {
	if envfile == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		envfile = ".env"
	}
	if err := godotenv.Load(envfile); err != nil {
		return fmt.Errorf("error loading %s file: %w", envfile, err)
	}
	return nil
}

// ApplyEnv overlays POTATO_* environment variables on cfg.
func ApplyEnv(cfg *Config) error {
	cfg.Build.Compiler = GetEnv("POTATO_RUSTC", cfg.Build.Compiler)
	if args, ok := os.LookupEnv("POTATO_RUSTC_ARGS"); ok {
		cfg.Build.Args = strings.Fields(args)
	}
	cfg.Build.WorkDir = GetEnv("POTATO_WORKDIR", cfg.Build.WorkDir)

	keep, err := getBoolEnv("POTATO_KEEP_WORKDIR", cfg.Build.KeepWorkDir)
	if err != nil {
		return err
	}
	cfg.Build.KeepWorkDir = keep

	cfg.Emit.Indent = GetEnv("POTATO_INDENT", cfg.Emit.Indent)
	cfg.Emit.ParamType = GetEnv("POTATO_PARAM_TYPE", cfg.Emit.ParamType)

	cfg.Log.Level = GetEnv("POTATO_LOG_LEVEL", cfg.Log.Level)
	noColor, err := getBoolEnv("POTATO_NO_COLOR", cfg.Log.NoColor)
	if err != nil {
		return err
	}
	cfg.Log.NoColor = noColor

	return nil
}

// Load builds a Config from defaults, the optional TOML file, the optional
// .env file and the environment.
func Load(file, envfile string) (Config, error) {
	cfg := Defaults()
	if file != "" {
		if err := LoadFile(file, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := LoadEnv(envfile); err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// GetEnv returns the value of key, or defaultValue when it is unset or empty.
func GetEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return value, nil
}
