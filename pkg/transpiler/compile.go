package transpiler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"potato/pkg/build"
)

// Result is the front-end output for one script.
type Result struct {
	Lines       []Line
	Stmts       []Stmt
	Diagnostics []Diagnostic
	Source      string // generated Rust; empty when parsing failed
}

// Transpile splits, parses and generates src. On an unterminated block the
// error is returned together with the lines and diagnostics gathered so far,
// and no source is generated.
func Transpile(src string, opt *EmitOptions) (*Result, error) {
	lines := Split(src)
	stmts, diags, err := Parse(lines)
	res := &Result{Lines: lines, Diagnostics: diags}
	if err != nil {
		return res, err
	}

	res.Stmts = stmts
	res.Source = Generate(stmts, opt)
	return res, nil
}

// Report is the outcome of Run.
type Report struct {
	*Result
	Compile build.CompileResult
	Exec    *build.ExecResult // nil unless the program was executed
}

// Run transpiles src, compiles the result through bridge and, only if the
// compile succeeded, executes it. Compiler output is returned unmodified; a
// rejected compile returns ErrBuildFailed. The exit status of the executed
// program is data in the report, not an error.
func Run(ctx context.Context, src string, bridge build.Bridge, opt *EmitOptions) (*Report, error) {
	logger := zerolog.Ctx(ctx)

	res, err := Transpile(src, opt)
	for _, d := range res.Diagnostics {
		logger.Warn().Int("line", d.Line).Str("text", d.Text).Msg(d.Message)
	}
	rep := &Report{Result: res}
	if err != nil {
		return rep, err
	}

	logger.Debug().Int("statements", len(res.Stmts)).Int("bytes", len(res.Source)).Msg("Transpiled")

	rep.Compile, err = bridge.Compile(ctx, res.Source)
	if err != nil {
		return rep, err
	}
	if !rep.Compile.Success {
		return rep, fmt.Errorf("%w:\n%s", ErrBuildFailed, rep.Compile.Diagnostics)
	}

	result, err := bridge.Execute(ctx)
	if err != nil {
		return rep, err
	}
	rep.Exec = &result

	logger.Debug().Int("exit_code", result.ExitCode).Msg("Program finished")
	return rep, nil
}
