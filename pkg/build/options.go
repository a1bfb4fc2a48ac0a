package build

import (
	"os"
	"runtime"
)

// Defaults applied by normalize.
const (
	DefaultCompiler = "rustc"
	DefaultSource   = "main.rs"
)

// Options controls how the bridge invokes the compiler.
type Options struct {
	// Compiler is the compiler executable, looked up on PATH (default is rustc).
	Compiler string
	// Args are passed to the compiler before the output and source arguments.
	Args []string `toml:",omitempty"`
	// WorkDir is the parent of the per-run build directories (default is the OS temp dir).
	WorkDir string `toml:",omitempty"`
	// Source is the file name of the generated compilation unit (default is main.rs).
	Source string
	// Artifact is the file name of the produced binary (default is main, main.exe on Windows).
	Artifact string
	// KeepWorkDir keeps the build directory after Close for inspection.
	KeepWorkDir bool
}

// normalize fills in defaults. A nil receiver yields the defaults.
func (o *Options) normalize() Options {
	var out Options
	if o != nil {
		out = *o
	}

	if out.Compiler == "" {
		out.Compiler = DefaultCompiler
	}
	if out.WorkDir == "" {
		out.WorkDir = os.TempDir()
	}
	if out.Source == "" {
		out.Source = DefaultSource
	}
	if out.Artifact == "" {
		out.Artifact = "main"
		if runtime.GOOS == "windows" {
			out.Artifact += ".exe"
		}
	}

	return out
}
