package build

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Rustc is a Bridge that writes the source into a private work directory,
// compiles it with rustc (or another configured compiler taking the same
// "-o out src" arguments) and runs the produced binary.
type Rustc struct {
	// Stdin feeds the executed program. Nil means no input.
	Stdin io.Reader
	// Stdout and Stderr, when set, mirror the program's output as it is produced.
	// The result still carries the full captured output.
	Stdout io.Writer
	Stderr io.Writer

	opt      Options
	logger   zerolog.Logger
	dir      string
	artifact string
}

// NewRustc creates a bridge. Nothing touches the filesystem until Compile.
func NewRustc(opt *Options, logger zerolog.Logger) *Rustc {
	return &Rustc{
		opt:    opt.normalize(),
		logger: logger.With().Str("component", "build").Logger(),
	}
}

// Dir returns the work directory, or "" before the first Compile.
func (r *Rustc) Dir() string {
	return r.dir
}

// prepareWorkspace creates the per-run work directory.
func (r *Rustc) prepareWorkspace() error {
	if r.dir != "" {
		return nil
	}

	root, err := filepath.Abs(r.opt.WorkDir)
	if err != nil {
		return fmt.Errorf("failed to resolve work dir: %w", err)
	}

	dir := filepath.Join(root, "potato-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create work dir: %w", err)
	}
	r.dir = dir
	return nil
}

// Compile writes source and compiles it. A rejected source yields
// Success=false with the compiler's raw output.
func (r *Rustc) Compile(ctx context.Context, source string) (CompileResult, error) {
	compiler, err := exec.LookPath(r.opt.Compiler)
	if err != nil {
		return CompileResult{}, fmt.Errorf("%w: %s", ErrNoCompiler, r.opt.Compiler)
	}

	if err := r.prepareWorkspace(); err != nil {
		return CompileResult{}, err
	}

	srcPath := filepath.Join(r.dir, r.opt.Source)
	if err := os.WriteFile(srcPath, []byte(source), 0o644); err != nil {
		return CompileResult{}, fmt.Errorf("failed to write %s: %w", srcPath, err)
	}

	out := filepath.Join(r.dir, r.opt.Artifact)
	args := append(append([]string{}, r.opt.Args...), "-o", out, srcPath)

	r.artifact = ""
	res, err := runCommand(ctx, r.dir, nil, nil, nil, compiler, args...)
	if err != nil {
		return CompileResult{}, err
	}

	r.logger.Debug().
		Str("compiler", compiler).
		Str("dir", r.dir).
		Int("exit_code", res.ExitCode).
		Dur("duration", res.Duration).
		Msg("Compile finished")

	if res.ExitCode != 0 {
		return CompileResult{Success: false, Diagnostics: res.Stderr + res.Stdout}, nil
	}

	r.artifact = out
	return CompileResult{Success: true, Diagnostics: res.Stderr + res.Stdout}, nil
}

// Execute runs the artifact of the last successful Compile.
func (r *Rustc) Execute(ctx context.Context) (ExecResult, error) {
	if r.artifact == "" {
		return ExecResult{}, ErrNotCompiled
	}

	res, err := runCommand(ctx, r.dir, r.Stdin, r.Stdout, r.Stderr, r.artifact)
	if err != nil {
		return ExecResult{}, err
	}

	r.logger.Debug().
		Str("artifact", r.artifact).
		Int("exit_code", res.ExitCode).
		Dur("duration", res.Duration).
		Msg("Execute finished")

	return ExecResult{Stdout: res.Stdout, Stderr: res.Stderr, ExitCode: res.ExitCode}, nil
}

// Close removes the work directory unless KeepWorkDir is set.
func (r *Rustc) Close() error {
	if r.dir == "" {
		return nil
	}
	if r.opt.KeepWorkDir {
		r.logger.Info().Str("path", r.dir).Msg("Build directory kept")
		return nil
	}

	err := os.RemoveAll(r.dir)
	r.dir = ""
	r.artifact = ""
	return err
}
