package transpiler

import "strings"

// IssueLevel represents severity of a vet issue.
type IssueLevel string

const (
	// IssueError indicates output rustc is certain to reject.
	IssueError IssueLevel = "error"
	// IssueWarning indicates likely unintended behavior.
	IssueWarning IssueLevel = "warning"
)

// Issue is one finding of Vet.
type Issue struct {
	Level   IssueLevel `json:"level"`
	Code    string     `json:"code"`
	Message string     `json:"message"`
	Path    string     `json:"path,omitempty"` // name or condition the issue is about
}

// children returns the body of block statements.
func children(s Stmt) []Stmt {
	switch n := s.(type) {
	case *FuncDecl:
		return n.Body
	case *LoopStmt:
		return n.Body
	case *WhileStmt:
		return n.Body
	case *IfStmt:
		return n.Body
	}
	return nil
}

// Walk visits stmts depth-first in source order. fn receives the nesting
// depth; returning false skips the statement's body.
func Walk(stmts []Stmt, fn func(s Stmt, depth int) bool) {
	walk(stmts, 0, fn)
}

func walk(stmts []Stmt, depth int, fn func(Stmt, int) bool) {
	for _, s := range stmts {
		if fn(s, depth) {
			walk(children(s), depth+1, fn)
		}
	}
}

// findBreaks reports whether stmts contain a quit_loop that exits the
// enclosing repeat construct (i.e. not one inside a nested loop or function).
func findBreaks(stmts []Stmt) bool {
	for _, s := range stmts {
		switch n := s.(type) {
		case *QuitLoopStmt:
			return true
		case *IfStmt:
			if findBreaks(n.Body) {
				return true
			}
		}
	}
	return false
}

// Vet reports suspicious constructs. It is advisory: Generate ignores it and
// every construct it flags is still transpiled as written.
func Vet(stmts []Stmt) []Issue {
	var out []Issue

	funcs := make(map[string]*FuncDecl)
	Walk(stmts, func(s Stmt, _ int) bool {
		if f, ok := s.(*FuncDecl); ok {
			if _, dup := funcs[f.Name]; dup {
				out = append(out, Issue{Level: IssueError, Code: "duplicate_func", Message: "function declared more than once", Path: f.Name})
			} else {
				funcs[f.Name] = f
			}
		}
		return true
	})

	Walk(stmts, func(s Stmt, _ int) bool {
		switch n := s.(type) {
		case *CallStmt:
			f, ok := funcs[n.Name]
			if !ok {
				out = append(out, Issue{Level: IssueError, Code: "undeclared_func", Message: "call to undeclared function", Path: n.Name})
			} else if len(f.Params) > 0 {
				out = append(out, Issue{Level: IssueWarning, Code: "unbound_params", Message: "call passes no arguments to a function with parameters", Path: n.Name})
			}
		case *WhileStmt:
			out = append(out, vetCondition(n.Condition)...)
		case *IfStmt:
			out = append(out, vetCondition(n.Condition)...)
		case *LoopStmt:
			if !findBreaks(n.Body) {
				out = append(out, Issue{Level: IssueWarning, Code: "infinite_loop", Message: "loop body never reaches quit_loop"})
			}
		}
		return true
	})

	out = append(out, vetQuitLoops(stmts, false)...)
	return out
}

// vetCondition flags a condition that kept the opening brace as its last word.
func vetCondition(cond string) []Issue {
	if strings.HasSuffix(cond, "{") {
		return []Issue{{Level: IssueError, Code: "brace_in_condition", Message: "condition ends with '{' and emits an unbalanced block", Path: cond}}
	}
	return nil
}

// vetQuitLoops flags quit_loop statements with no enclosing repeat construct.
// Function bodies start outside any loop because they are emitted at top level.
func vetQuitLoops(stmts []Stmt, inLoop bool) []Issue {
	var out []Issue
	for _, s := range stmts {
		switch n := s.(type) {
		case *QuitLoopStmt:
			if !inLoop {
				out = append(out, Issue{Level: IssueError, Code: "break_outside_loop", Message: "quit_loop outside of a loop"})
			}
		case *FuncDecl:
			out = append(out, vetQuitLoops(n.Body, false)...)
		case *LoopStmt:
			out = append(out, vetQuitLoops(n.Body, true)...)
		case *WhileStmt:
			out = append(out, vetQuitLoops(n.Body, true)...)
		case *IfStmt:
			out = append(out, vetQuitLoops(n.Body, inLoop)...)
		}
	}
	return out
}
