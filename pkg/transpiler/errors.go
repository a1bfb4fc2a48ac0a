package transpiler

import (
	"errors"
	"fmt"
)

var (
	// ErrUnterminatedBlock indicates a block opener whose sentinel never appears.
	ErrUnterminatedBlock = errors.New("unterminated block")

	// ErrBuildFailed indicates the external compiler rejected the generated source.
	ErrBuildFailed = errors.New("build failed")
)

// Diagnostic describes a line the recognizer skipped. Diagnostics never stop parsing.
type Diagnostic struct {
	Line    int     `json:"line"`    // 1-based source line
	Keyword Keyword `json:"keyword"` // classification of the line
	Message string  `json:"message"` // what was expected
	Text    string  `json:"text"`    // trimmed source line
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s\n  |> %s", d.Line, d.Message, d.Text)
}
