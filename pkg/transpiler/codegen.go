package transpiler

import (
	"fmt"
	"strings"
)

// CodeGen walks a statement tree and emits Rust source text.
type CodeGen struct {
	opt   EmitOptions
	out   strings.Builder
	level int
	funcs []*FuncDecl // hoisted declarations, in declaration order
}

func newCodeGen(opt EmitOptions) *CodeGen {
	return &CodeGen{opt: opt}
}

// line writes one indented line.
func (cg *CodeGen) line(format string, args ...any) {
	cg.out.WriteString(strings.Repeat(cg.opt.Indent, cg.level))
	fmt.Fprintf(&cg.out, format, args...)
	cg.out.WriteByte('\n')
}

// block emits header {, then body one level deeper, then }.
func (cg *CodeGen) block(header string, body []Stmt) {
	cg.line("%s {", header)
	cg.level++
	cg.genStmts(body)
	cg.level--
	cg.line("}")
}

func (cg *CodeGen) genStmts(stmts []Stmt) {
	for _, s := range stmts {
		cg.genStmt(s)
	}
}

// genStmt emits one statement. Unknown shapes emit nothing.
func (cg *CodeGen) genStmt(s Stmt) {
	switch n := s.(type) {
	case *PrintStmt:
		if n.IsLiteral() {
			cg.line("println!(%s);", n.Text)
		} else {
			cg.line(`println!("{}", %s);`, n.Text)
		}

	case *VarDecl:
		cg.line("let mut %s = %s;", n.Name, n.Expr)

	case *MathStmt:
		cg.line("let mut %s = %s %s %s;", n.Result, n.Left, n.Op, n.Right)

	case *FuncDecl:
		// Emitted after main by Generate.

	case *CallStmt:
		cg.line("%s();", n.Name)

	case *LoopStmt:
		cg.block("loop", n.Body)

	case *WhileStmt:
		cg.block("while "+n.Condition, n.Body)

	case *IfStmt:
		cg.block("if "+n.Condition, n.Body)

	case *InputStmt:
		cg.line("let mut %s = String::new();", n.Name)
		cg.line(`println!("Enter a value for %s:");`, n.Name)
		cg.line(`std::io::stdin().read_line(&mut %s).expect("failed to read line");`, n.Name)
		if n.Type == InputInt {
			// A failed parse panics in the generated program.
			cg.line("let %s: i32 = %s.trim().parse().unwrap();", n.Name, n.Name)
		}

	case *SleepStmt:
		cg.line("std::thread::sleep(std::time::Duration::from_millis(%s));", n.Duration)

	case *QuitLoopStmt:
		cg.line("break;")
	}
}

// genFunc emits one hoisted function at the top level.
func (cg *CodeGen) genFunc(f *FuncDecl) {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = fmt.Sprintf("%s: %s", p, cg.opt.ParamType)
	}
	cg.block(fmt.Sprintf("fn %s(%s)", f.Name, strings.Join(params, ", ")), f.Body)
}

// Generate emits a complete Rust program for stmts: main holds every
// non-function statement in source order, followed by every function
// declaration, nested ones included, in declaration order. Generate is pure
// and never fails.
func Generate(stmts []Stmt, opt *EmitOptions) string {
	cg := newCodeGen(opt.normalize())

	Walk(stmts, func(s Stmt, _ int) bool {
		if f, ok := s.(*FuncDecl); ok {
			cg.funcs = append(cg.funcs, f)
		}
		return true
	})

	cg.block("fn main()", stmts)

	for _, f := range cg.funcs {
		cg.out.WriteByte('\n')
		cg.genFunc(f)
	}

	return cg.out.String()
}
