package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"gopkg.in/urfave/cli.v1"

	"potato/pkg/build"
	"potato/pkg/config"
	"potato/pkg/transpiler"
	"potato/pkg/utils"
)

var (
	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	envFileFlag = cli.StringFlag{
		Name:  "env",
		Usage: ".env file to load (default: ./.env when present)",
	}
	logLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Usage: "log level (trace, debug, info, warn, error)",
	}
	rustcFlag = cli.StringFlag{
		Name:  "rustc",
		Usage: "compiler executable used to build generated code",
	}
	keepWorkDirFlag = cli.BoolFlag{
		Name:  "keep-workdir",
		Usage: "keep the build directory after running",
	}
	noColorFlag = cli.BoolFlag{
		Name:  "no-color",
		Usage: "disable colored output",
	}
	outFlag = cli.StringFlag{
		Name:  "out, o",
		Usage: "output file path (default: stdout; \"auto\" uses the input name with .rs)",
	}
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "potato"
	app.Usage = "transpile Potato scripts to Rust, then build and run them"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		configFileFlag,
		envFileFlag,
		logLevelFlag,
		rustcFlag,
		keepWorkDirFlag,
		noColorFlag,
	}
	app.Commands = []cli.Command{
		{
			Name:      "run",
			Usage:     "Transpile, compile and execute a script",
			ArgsUsage: "<file>",
			Action:    runScript,
		},
		{
			Name:      "emit",
			Usage:     "Print the generated Rust source",
			ArgsUsage: "<file>",
			Flags:     []cli.Flag{outFlag},
			Action:    emitScript,
		},
		{
			Name:      "parse",
			Usage:     "Print the statement tree of a script",
			ArgsUsage: "<file>",
			Action:    parseScript,
		},
		{
			Name:      "check",
			Usage:     "Report diagnostics and vet issues for one or more scripts",
			ArgsUsage: "<file> [<file>...]",
			Action:    checkScripts,
		},
		{
			Name:      "new",
			Usage:     "Create a starter script",
			ArgsUsage: "<file>",
			Action:    newScript,
		},
		{
			Name:   "dumpconfig",
			Usage:  "Show configuration values",
			Action: dumpConfig,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig builds the configuration and applies global flags over it.
func loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg, err := config.Load(ctx.GlobalString(configFileFlag.Name), ctx.GlobalString(envFileFlag.Name))
	if err != nil {
		return cfg, err
	}

	if ctx.GlobalIsSet(logLevelFlag.Name) {
		cfg.Log.Level = ctx.GlobalString(logLevelFlag.Name)
	}
	if ctx.GlobalIsSet(rustcFlag.Name) {
		cfg.Build.Compiler = ctx.GlobalString(rustcFlag.Name)
	}
	if ctx.GlobalBool(keepWorkDirFlag.Name) {
		cfg.Build.KeepWorkDir = true
	}
	if ctx.GlobalBool(noColorFlag.Name) {
		cfg.Log.NoColor = true
	}
	if cfg.Log.NoColor {
		color.NoColor = true
	}

	return cfg, nil
}

// setup loads the configuration and the logger.
func setup(ctx *cli.Context) (config.Config, zerolog.Logger, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return cfg, zerolog.Nop(), err
	}
	logger, err := config.NewLogger(os.Stderr, cfg.Log)
	if err != nil {
		return cfg, zerolog.Nop(), err
	}
	return cfg, logger, nil
}

// readScript reads the single file argument.
func readScript(ctx *cli.Context) (string, string, error) {
	if ctx.NArg() != 1 {
		return "", "", fmt.Errorf("expected exactly one script file, got %d arguments", ctx.NArg())
	}
	fullPath, _, err := utils.GetPathInfo(ctx.Args().First())
	if err != nil {
		return "", "", err
	}
	src, err := os.ReadFile(fullPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to read input file %q: %w", fullPath, err)
	}
	return fullPath, string(src), nil
}

// signalContext returns a context cancelled on interrupt.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runScript(ctx *cli.Context) error {
	cfg, logger, err := setup(ctx)
	if err != nil {
		return err
	}
	path, src, err := readScript(ctx)
	if err != nil {
		return err
	}

	runCtx, cancel := signalContext()
	defer cancel()
	runCtx = logger.With().Str("script", filepath.Base(path)).Logger().WithContext(runCtx)

	code, err := runSource(runCtx, src, cfg, logger, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		return err
	}
	if code != 0 {
		return cli.NewExitError("", code)
	}
	return nil
}

// runSource builds and runs src, mirroring the program's output to stdout and
// stderr. It returns the program's exit code.
func runSource(ctx context.Context, src string, cfg config.Config, logger zerolog.Logger, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	bridge := build.NewRustc(&cfg.Build, logger)
	bridge.Stdin = stdin
	bridge.Stdout = stdout
	bridge.Stderr = stderr
	defer func() {
		if err := bridge.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to remove build directory")
		}
	}()

	rep, err := transpiler.Run(ctx, src, bridge, &cfg.Emit)
	switch {
	case errors.Is(err, transpiler.ErrBuildFailed):
		color.New(color.FgRed, color.Bold).Fprintln(stderr, "build failed:")
		fmt.Fprint(stderr, rep.Compile.Diagnostics)
		return 1, cli.NewExitError("", 1)
	case err != nil:
		return 1, err
	}

	if rep.Exec.ExitCode != 0 {
		color.New(color.FgYellow).Fprintf(stderr, "program exited with status %d\n", rep.Exec.ExitCode)
	}
	return rep.Exec.ExitCode, nil
}

func emitScript(ctx *cli.Context) error {
	cfg, logger, err := setup(ctx)
	if err != nil {
		return err
	}
	path, src, err := readScript(ctx)
	if err != nil {
		return err
	}

	res, err := transpiler.Transpile(src, &cfg.Emit)
	for _, d := range res.Diagnostics {
		logger.Warn().Int("line", d.Line).Str("text", d.Text).Msg(d.Message)
	}
	if err != nil {
		return err
	}

	out := ctx.String("out")
	if out == "" {
		fmt.Print(res.Source)
		return nil
	}
	if out == "auto" {
		out = defaultOutputPath(path)
	}
	if err := os.WriteFile(out, []byte(res.Source), 0o644); err != nil {
		return fmt.Errorf("failed to write output file %q: %w", out, err)
	}
	color.New(color.FgGreen).Printf("transpiled %d statements -> %s\n", len(res.Stmts), out)
	return nil
}

func parseScript(ctx *cli.Context) error {
	_, logger, err := setup(ctx)
	if err != nil {
		return err
	}
	_, src, err := readScript(ctx)
	if err != nil {
		return err
	}

	stmts, diags, err := transpiler.Parse(transpiler.Split(src))
	for _, d := range diags {
		logger.Warn().Int("line", d.Line).Str("text", d.Text).Msg(d.Message)
	}
	if err != nil {
		return err
	}

	fmt.Print(formatTree(stmts))
	return nil
}

// formatTree renders one statement per line, indented by nesting depth.
func formatTree(stmts []transpiler.Stmt) string {
	var b strings.Builder
	transpiler.Walk(stmts, func(s transpiler.Stmt, depth int) bool {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(nodeLabel(s))
		b.WriteByte('\n')
		return true
	})
	return b.String()
}

// nodeLabel is String() for leaves and a header without the body for blocks.
func nodeLabel(s transpiler.Stmt) string {
	switch n := s.(type) {
	case *transpiler.FuncDecl:
		return fmt.Sprintf("FuncDecl(%s, params=%v)", n.Name, n.Params)
	case *transpiler.LoopStmt:
		return "Loop"
	case *transpiler.WhileStmt:
		return fmt.Sprintf("While(%q)", n.Condition)
	case *transpiler.IfStmt:
		return fmt.Sprintf("If(%q)", n.Condition)
	}
	return s.String()
}

func newScript(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one file name")
	}
	path, err := utils.CreateStarter(ctx.Args().First())
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Printf("created %s\n", path)
	return nil
}

func dumpConfig(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	return writeConfig(os.Stdout, &cfg)
}

// writeConfig renders cfg as TOML to w.
func writeConfig(w io.Writer, cfg *config.Config) error {
	out, err := config.Dump(cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func defaultOutputPath(inPath string) string {
	ext := filepath.Ext(inPath)
	if ext == "" {
		return inPath + ".rs"
	}
	return strings.TrimSuffix(inPath, ext) + ".rs"
}
