package transpiler

import (
	"fmt"
	"strings"
)

// Parser recognizes one statement per line and collects block bodies.
//
// Grammar (one statement per line, first word selects the rule):
//
//	print       = "print" ["to" "terminal"] TEXT
//	varDecl     = "new" "var" NAME "=" EXPR...
//	math        = OP WORD NAME WORD OPERAND WORD OPERAND        OP = + - * / %
//	funcDecl    = "func" NAME [PARAM{,PARAM}] NEWLINE body "endfunc"
//	call        = "call" NAME
//	input       = "in" ("console" | "con") NAME TYPE
//	loop        = "loop" "do" NEWLINE body "quit_loop"
//	while       = "while" COND... NEWLINE body "}"
//	if          = "if" COND... NEWLINE body "}"
//	sleep       = "sleep" DURATION
//	quitLoop    = "quit_loop"
//
// Each Parser owns its cursor, so bodies are parsed by fresh Parsers over the
// collected lines and recursion needs no shared state.
type Parser struct {
	lines []Line
	pos   int
	diags []Diagnostic
}

func NewParser(lines []Line) *Parser {
	return &Parser{lines: lines}
}

// Diagnostics returns the recognition problems found so far, in source order.
func (p *Parser) Diagnostics() []Diagnostic {
	return p.diags
}

// peek returns the current line without consuming it.
func (p *Parser) peek() (Line, bool) {
	if p.pos >= len(p.lines) {
		return Line{}, false
	}
	return p.lines[p.pos], true
}

// advance consumes and returns the current line.
func (p *Parser) advance() Line {
	l, _ := p.peek()
	if p.pos < len(p.lines) {
		p.pos++
	}
	return l
}

// skip records a diagnostic for l. The line produces no statement.
func (p *Parser) skip(l Line, format string, args ...any) {
	p.diags = append(p.diags, Diagnostic{
		Line:    l.Number,
		Keyword: l.Keyword,
		Message: fmt.Sprintf(format, args...),
		Text:    l.Text,
	})
}

// fmtError wraps err with the opening line of the construct that caused it.
func (p *Parser) fmtError(l Line, err error, format string, args ...any) error {
	return fmt.Errorf("line %d: %w: %s\n  |> %s", l.Number, err, fmt.Sprintf(format, args...), l.Text)
}

// opener reports the sentinel that closes the block opened by l.
// Only well-formed openers count; a malformed one is skipped like any other bad line.
func opener(l Line) (string, bool) {
	n := len(l.Words)
	switch l.Keyword {
	case LOOP:
		return sentinelLoop, n == 2 && l.Words[1] == "do"
	case WHILE, IF:
		return sentinelBlock, n >= 2
	case FUNC:
		return sentinelFunc, n == 2 || n == 3
	}
	return "", false
}

// collectBlock consumes lines up to and including the sentinel that closes
// open and returns the lines in between. Nested openers push their own
// sentinel, so a sentinel only closes open when no nested block is pending.
func (p *Parser) collectBlock(open Line, sentinel string) ([]Line, error) {
	start := p.pos
	stack := []string{sentinel}
	for {
		l, ok := p.peek()
		if !ok {
			return nil, p.fmtError(open, ErrUnterminatedBlock, "missing %q before end of input", sentinel)
		}
		p.advance()

		if l.Text == stack[len(stack)-1] {
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return p.lines[start : p.pos-1], nil
			}
			continue
		}
		if s, ok := opener(l); ok {
			stack = append(stack, s)
		}
	}
}

// parseBody collects the block opened by open and parses it with a fresh Parser.
func (p *Parser) parseBody(open Line, sentinel string) ([]Stmt, error) {
	lines, err := p.collectBlock(open, sentinel)
	if err != nil {
		return nil, err
	}

	sub := NewParser(lines)
	body, err := sub.parseAll()
	p.diags = append(p.diags, sub.diags...)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// parseAll parses every remaining line.
func (p *Parser) parseAll() ([]Stmt, error) {
	var stmts []Stmt
	for {
		if _, ok := p.peek(); !ok {
			return stmts, nil
		}
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if s != nil {
			stmts = append(stmts, s)
		}
	}
}

// parseStatement consumes one line (plus its body for block openers).
// It returns a nil Stmt when the line was skipped with a diagnostic.
func (p *Parser) parseStatement() (Stmt, error) {
	l := p.advance()
	w := l.Words

	switch l.Keyword {
	case PRINT:
		return p.parsePrint(l), nil

	case NEW:
		if len(w) < 5 || w[1] != "var" || w[3] != "=" {
			p.skip(l, "expected: new var <name> = <expr>")
			return nil, nil
		}
		return &VarDecl{Name: w[2], Expr: strings.Join(w[4:], " ")}, nil

	case MATH:
		if len(w) != 7 {
			p.skip(l, "expected: %s into <result> from <left> and <right>", w[0])
			return nil, nil
		}
		return &MathStmt{Op: w[0], Result: w[2], Left: w[4], Right: w[6]}, nil

	case FUNC:
		return p.parseFunc(l)

	case CALL:
		if len(w) != 2 {
			p.skip(l, "expected: call <name>")
			return nil, nil
		}
		return &CallStmt{Name: w[1]}, nil

	case IN:
		if len(w) != 4 || (w[1] != "console" && w[1] != "con") {
			p.skip(l, "expected: in console <name> <type>")
			return nil, nil
		}
		return &InputStmt{Name: w[2], Type: parseInputType(w[3])}, nil

	case LOOP:
		if _, ok := opener(l); !ok {
			p.skip(l, "expected: loop do")
			return nil, nil
		}
		body, err := p.parseBody(l, sentinelLoop)
		if err != nil {
			return nil, err
		}
		return &LoopStmt{Body: body}, nil

	case WHILE:
		if _, ok := opener(l); !ok {
			p.skip(l, "expected: while <condition>")
			return nil, nil
		}
		body, err := p.parseBody(l, sentinelBlock)
		if err != nil {
			return nil, err
		}
		return &WhileStmt{Condition: strings.Join(w[1:], " "), Body: body}, nil

	case IF:
		if _, ok := opener(l); !ok {
			p.skip(l, "expected: if <condition>")
			return nil, nil
		}
		body, err := p.parseBody(l, sentinelBlock)
		if err != nil {
			return nil, err
		}
		return &IfStmt{Condition: strings.Join(w[1:], " "), Body: body}, nil

	case SLEEP:
		if len(w) != 2 {
			p.skip(l, "expected: sleep <milliseconds>")
			return nil, nil
		}
		return &SleepStmt{Duration: w[1]}, nil

	case QUIT_LOOP:
		if len(w) != 1 {
			p.skip(l, "quit_loop takes no arguments")
			return nil, nil
		}
		return &QuitLoopStmt{}, nil

	case ENDFUNC, RBRACE:
		p.skip(l, "%q does not close any open block", l.Text)
		return nil, nil
	}

	p.skip(l, "unrecognized keyword %q", w[0])
	return nil, nil
}

// parsePrint handles both the marker form and the short form.
func (p *Parser) parsePrint(l Line) Stmt {
	w := l.Words
	rest := remainder(l.Text, 1)
	if len(w) >= 3 && w[1] == "to" && w[2] == "terminal" {
		rest = remainder(l.Text, 3)
	}
	if rest == "" {
		p.skip(l, "expected: print to terminal <text>")
		return nil
	}
	return &PrintStmt{Text: strings.ReplaceAll(rest, `\n`, "\n")}
}

// parseFunc handles  func name [a,b,c]  and its body.
func (p *Parser) parseFunc(l Line) (Stmt, error) {
	if _, ok := opener(l); !ok {
		p.skip(l, "expected: func <name> [param,param,...]")
		return nil, nil
	}

	var params []string
	if len(l.Words) == 3 {
		for _, param := range strings.Split(l.Words[2], ",") {
			if param != "" {
				params = append(params, param)
			}
		}
	}

	body, err := p.parseBody(l, sentinelFunc)
	if err != nil {
		return nil, err
	}
	return &FuncDecl{Name: l.Words[1], Params: params, Body: body}, nil
}

// remainder returns text after its first n words, keeping inner spacing.
func remainder(text string, n int) string {
	s := text
	for i := 0; i < n; i++ {
		s = strings.TrimLeftFunc(s, asciiSpace)
		idx := strings.IndexFunc(s, asciiSpace)
		if idx < 0 {
			return ""
		}
		s = s[idx:]
	}
	return trimLine(s)
}

// Parse builds the statement tree for lines. Recognition problems are returned
// as diagnostics; only an unterminated block is an error, in which case no
// statements are returned.
func Parse(lines []Line) ([]Stmt, []Diagnostic, error) {
	p := NewParser(lines)
	stmts, err := p.parseAll()
	if err != nil {
		return nil, p.diags, err
	}
	return stmts, p.diags, nil
}
