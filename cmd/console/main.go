package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/rs/zerolog"

	"potato/pkg/build"
	"potato/pkg/config"
	"potato/pkg/transpiler"
)

const (
	promptFirst = "potato> "
	promptMore  = "   ...> "
)

// session accumulates script lines until a blank line submits them.
type session struct {
	cfg    config.Config
	logger zerolog.Logger
	buf    []string
}

// submit runs the buffered script and resets the buffer.
func (s *session) submit(ctx context.Context) {
	src := strings.Join(s.buf, "\n")
	s.buf = s.buf[:0]

	bridge := build.NewRustc(&s.cfg.Build, s.logger)
	bridge.Stdout = os.Stdout
	bridge.Stderr = os.Stderr
	defer bridge.Close()

	rep, err := transpiler.Run(s.logger.WithContext(ctx), src, bridge, &s.cfg.Emit)
	switch {
	case errors.Is(err, transpiler.ErrBuildFailed):
		color.Red("build failed:")
		fmt.Print(rep.Compile.Diagnostics)
		if rep.Source != "" {
			color.Yellow("generated source:")
			fmt.Print(rep.Source)
		}
	case err != nil:
		color.Red("%v", err)
	case rep.Exec.ExitCode != 0:
		color.Yellow("exit status %d", rep.Exec.ExitCode)
	}
}

func main() {
	cfg, err := config.Load("", "")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}
	color.NoColor = color.NoColor || cfg.Log.NoColor

	logger, err := config.NewLogger(os.Stderr, cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Println("Potato console. Enter a script, then an empty line to run it. Ctrl-D exits.")

	s := &session{cfg: cfg, logger: logger}
	for {
		prompt := promptFirst
		if len(s.buf) > 0 {
			prompt = promptMore
		}

		input, err := line.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			s.buf = s.buf[:0]
			continue
		}
		if err == io.EOF {
			fmt.Println()
			if len(s.buf) > 0 {
				s.submit(context.Background())
			}
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "read error:", err)
			os.Exit(1)
		}

		if strings.TrimSpace(input) == "" {
			if len(s.buf) > 0 {
				s.submit(context.Background())
			}
			continue
		}

		line.AppendHistory(input)
		s.buf = append(s.buf, input)
	}
}
