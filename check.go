package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/sync/errgroup"
	"gopkg.in/urfave/cli.v1"

	"potato/pkg/transpiler"
)

// fileReport collects everything check found in one script.
type fileReport struct {
	Path        string
	Err         error
	Diagnostics []transpiler.Diagnostic
	Issues      []transpiler.Issue
}

// failed reports whether the script cannot be built as written.
func (r *fileReport) failed() bool {
	if r.Err != nil {
		return true
	}
	for _, is := range r.Issues {
		if is.Level == transpiler.IssueError {
			return true
		}
	}
	return false
}

// checkFile transpiles and vets a single file.
func checkFile(path string, opt *transpiler.EmitOptions) fileReport {
	rep := fileReport{Path: path}
	src, err := os.ReadFile(path)
	if err != nil {
		rep.Err = err
		return rep
	}

	res, err := transpiler.Transpile(string(src), opt)
	rep.Diagnostics = res.Diagnostics
	if err != nil {
		rep.Err = err
		return rep
	}
	rep.Issues = transpiler.Vet(res.Stmts)
	return rep
}

// checkFiles checks paths concurrently. Reports keep argument order.
func checkFiles(paths []string, opt *transpiler.EmitOptions) []fileReport {
	reports := make([]fileReport, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, p := range paths {
		g.Go(func() error {
			reports[i] = checkFile(p, opt)
			return nil
		})
	}
	_ = g.Wait()

	return reports
}

// renderReports writes one table row per finding.
func renderReports(w io.Writer, reports []fileReport) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "Line", "Level", "Code", "Message"})
	table.SetAutoWrapText(false)

	for _, r := range reports {
		if r.Err != nil {
			table.Append([]string{r.Path, "", "error", "fatal", firstLine(r.Err.Error())})
		}
		for _, d := range r.Diagnostics {
			table.Append([]string{r.Path, strconv.Itoa(d.Line), "warning", "skipped_line", d.Message})
		}
		for _, is := range r.Issues {
			msg := is.Message
			if is.Path != "" {
				msg = fmt.Sprintf("%s (%s)", msg, is.Path)
			}
			table.Append([]string{r.Path, "", string(is.Level), is.Code, msg})
		}
	}

	table.Render()
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func checkScripts(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if ctx.NArg() == 0 {
		return fmt.Errorf("expected at least one script file")
	}

	reports := checkFiles(ctx.Args(), &cfg.Emit)

	findings, failed := 0, 0
	for i := range reports {
		findings += len(reports[i].Diagnostics) + len(reports[i].Issues)
		if reports[i].Err != nil {
			findings++
		}
		if reports[i].failed() {
			failed++
		}
	}

	if findings > 0 {
		renderReports(os.Stdout, reports)
	}
	if failed > 0 {
		color.New(color.FgRed, color.Bold).Printf("%d of %d files have errors\n", failed, len(reports))
		return cli.NewExitError("", 1)
	}
	color.New(color.FgGreen).Printf("%d files ok\n", len(reports))
	return nil
}
