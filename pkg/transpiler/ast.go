package transpiler

import (
	"fmt"
	"strings"
)

// Stmt is implemented by every statement node. The set of implementations is
// closed: only the types in this file satisfy it.
type Stmt interface {
	stmtNode()
	String() string
}

// InputType is the type tag of an input statement.
type InputType int

const (
	InputOther InputType = iota // anything else, read as a string
	InputInt                    // "int", parsed into i32 after reading
	InputStr                    // "str"
)

var inputTypeNames = [...]string{
	InputOther: "other",
	InputInt:   "int",
	InputStr:   "str",
}

func (t InputType) String() string {
	if int(t) >= 0 && int(t) < len(inputTypeNames) {
		return inputTypeNames[t]
	}
	return fmt.Sprintf("InputType(%d)", int(t))
}

// parseInputType maps a type word to its tag.
func parseInputType(word string) InputType {
	switch word {
	case "int":
		return InputInt
	case "str":
		return InputStr
	}
	return InputOther
}

// PrintStmt writes Text to stdout.
//
//	print "Hello, World"
//	      ^^^^^^^^^^^^^^  PrintStmt{Text: `"Hello, World"`}
//	print to terminal x
//	                  ^  PrintStmt{Text: "x"}
type PrintStmt struct {
	Text string // quoted literal or bare expression
}

func (*PrintStmt) stmtNode()        {}
func (p *PrintStmt) String() string { return fmt.Sprintf("Print(%q)", p.Text) }

// IsLiteral reports whether Text is a quoted string literal.
func (p *PrintStmt) IsLiteral() bool {
	return len(p.Text) >= 2 && strings.HasPrefix(p.Text, `"`) && strings.HasSuffix(p.Text, `"`)
}

// VarDecl represents  new var name = expr
type VarDecl struct {
	Name string
	Expr string // raw, never evaluated
}

func (*VarDecl) stmtNode() {}
func (d *VarDecl) String() string {
	return fmt.Sprintf("VarDecl(%s = %q)", d.Name, d.Expr)
}

// MathStmt represents  + into result from left and right
type MathStmt struct {
	Op     string
	Result string
	Left   string
	Right  string
}

func (*MathStmt) stmtNode() {}
func (m *MathStmt) String() string {
	return fmt.Sprintf("Math(%s = %s %s %s)", m.Result, m.Left, m.Op, m.Right)
}

// FuncDecl represents  func name a,b ... endfunc
type FuncDecl struct {
	Name   string
	Params []string
	Body   []Stmt
}

func (*FuncDecl) stmtNode() {}
func (f *FuncDecl) String() string {
	return fmt.Sprintf("FuncDecl(%s, params=%v, body=%s)", f.Name, f.Params, stmtList(f.Body))
}

// CallStmt represents  call name
// No arguments are passed, whatever the callee declares.
type CallStmt struct {
	Name string
}

func (*CallStmt) stmtNode()        {}
func (c *CallStmt) String() string { return fmt.Sprintf("Call(%s)", c.Name) }

// LoopStmt represents  loop do ... quit_loop
type LoopStmt struct {
	Body []Stmt
}

func (*LoopStmt) stmtNode()        {}
func (l *LoopStmt) String() string { return fmt.Sprintf("Loop(%s)", stmtList(l.Body)) }

// WhileStmt represents  while cond ... }
type WhileStmt struct {
	Condition string // every word after "while", including a trailing "{"
	Body      []Stmt
}

func (*WhileStmt) stmtNode() {}
func (w *WhileStmt) String() string {
	return fmt.Sprintf("While(%q, %s)", w.Condition, stmtList(w.Body))
}

// IfStmt represents  if cond ... }
type IfStmt struct {
	Condition string
	Body      []Stmt
}

func (*IfStmt) stmtNode() {}
func (i *IfStmt) String() string {
	return fmt.Sprintf("If(%q, %s)", i.Condition, stmtList(i.Body))
}

// InputStmt represents  in console name type
type InputStmt struct {
	Name string
	Type InputType
}

func (*InputStmt) stmtNode() {}
func (s *InputStmt) String() string {
	return fmt.Sprintf("Input(%s, %s)", s.Name, s.Type)
}

// SleepStmt represents  sleep ms
type SleepStmt struct {
	Duration string
}

func (*SleepStmt) stmtNode()        {}
func (s *SleepStmt) String() string { return fmt.Sprintf("Sleep(%q)", s.Duration) }

// QuitLoopStmt represents a quit_loop line that is not a sentinel.
type QuitLoopStmt struct{}

func (*QuitLoopStmt) stmtNode()        {}
func (*QuitLoopStmt) String() string { return "QuitLoop" }

func stmtList(stmts []Stmt) string {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = s.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
