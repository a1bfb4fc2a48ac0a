// Package build compiles generated Rust source with an external compiler and
// runs the resulting binary.
package build

import (
	"context"
	"errors"
)

var (
	// ErrNotCompiled indicates Execute was called without a successful Compile.
	ErrNotCompiled = errors.New("no compiled artifact")

	// ErrNoCompiler indicates the configured compiler could not be found.
	ErrNoCompiler = errors.New("compiler not found")
)

// CompileResult is the outcome of one compiler invocation.
type CompileResult struct {
	Success     bool   `json:"success"`
	Diagnostics string `json:"diagnostics"` // raw compiler output, stderr then stdout
}

// ExecResult is the captured outcome of running the compiled artifact.
type ExecResult struct {
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exitCode"`
}

// Bridge compiles a source text and runs the artifact it produced.
//
// A non-nil error means the bridge itself failed (the compiler could not be
// started, the work directory could not be written). A compiler that rejects
// the source, or a program that exits non-zero, is reported in the result.
type Bridge interface {
	Compile(ctx context.Context, source string) (CompileResult, error)
	Execute(ctx context.Context) (ExecResult, error)
}
