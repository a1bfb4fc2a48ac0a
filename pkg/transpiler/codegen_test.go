package transpiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertContains checks if the generated code contains the expected substring.
func assertContains(t *testing.T, code, expected string) {
	t.Helper()
	if !strings.Contains(code, expected) {
		t.Errorf("Expected code to contain %q, but it didn't.\nCode:\n%s", expected, code)
	}
}

func TestGenerate_Golden(t *testing.T) {
	tests := []struct {
		name     string
		stmts    []Stmt
		expected string
	}{
		{
			name:     "Empty Program",
			stmts:    nil,
			expected: "fn main() {\n}\n",
		},
		{
			name:  "Print Literal And Expression",
			stmts: []Stmt{&PrintStmt{Text: `"Hello, World"`}, &PrintStmt{Text: "x"}},
			expected: `fn main() {
    println!("Hello, World");
    println!("{}", x);
}
`,
		},
		{
			name: "Declaration And Math",
			stmts: []Stmt{
				&VarDecl{Name: "x", Expr: "5"},
				&MathStmt{Op: "-", Result: "y", Left: "x", Right: "1"},
			},
			expected: `fn main() {
    let mut x = 5;
    let mut y = x - 1;
}
`,
		},
		{
			name: "Loop With Break In If",
			stmts: []Stmt{
				&LoopStmt{Body: []Stmt{
					&PrintStmt{Text: `"hi"`},
					&IfStmt{Condition: "x > 3", Body: []Stmt{&QuitLoopStmt{}}},
				}},
			},
			expected: `fn main() {
    loop {
        println!("hi");
        if x > 3 {
            break;
        }
    }
}
`,
		},
		{
			name: "Function Hoisted After Main",
			stmts: []Stmt{
				&CallStmt{Name: "greet"},
				&FuncDecl{Name: "greet", Params: []string{"a", "b"}, Body: []Stmt{&PrintStmt{Text: "a"}}},
				&SleepStmt{Duration: "250"},
			},
			expected: `fn main() {
    greet();
    std::thread::sleep(std::time::Duration::from_millis(250));
}

fn greet(a: i32, b: i32) {
    println!("{}", a);
}
`,
		},
		{
			name: "Nested Functions Hoisted In Declaration Order",
			stmts: []Stmt{
				&FuncDecl{Name: "outer", Body: []Stmt{
					&FuncDecl{Name: "inner"},
					&CallStmt{Name: "inner"},
				}},
				&FuncDecl{Name: "last"},
			},
			expected: `fn main() {
}

fn outer() {
    inner();
}

fn inner() {
}

fn last() {
}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Generate(tt.stmts, nil))
		})
	}
}

func TestGenerate_Input(t *testing.T) {
	code := Generate([]Stmt{&InputStmt{Name: "n", Type: InputInt}}, nil)
	assertContains(t, code, "let mut n = String::new();")
	assertContains(t, code, `println!("Enter a value for n:");`)
	assertContains(t, code, `std::io::stdin().read_line(&mut n).expect("failed to read line");`)
	assertContains(t, code, "let n: i32 = n.trim().parse().unwrap();")

	code = Generate([]Stmt{&InputStmt{Name: "s", Type: InputStr}}, nil)
	assertContains(t, code, "read_line(&mut s)")
	if strings.Contains(code, "parse()") {
		t.Errorf("string input should not be parsed:\n%s", code)
	}
}

func TestGenerate_WhileKeepsBrace(t *testing.T) {
	code := Generate([]Stmt{&WhileStmt{Condition: "x < 10 {", Body: nil}}, nil)
	assertContains(t, code, "while x < 10 { {\n")
}

func TestGenerate_Options(t *testing.T) {
	stmts := []Stmt{
		&IfStmt{Condition: "true", Body: []Stmt{&PrintStmt{Text: "v"}}},
		&FuncDecl{Name: "f", Params: []string{"v"}},
	}
	code := Generate(stmts, &EmitOptions{Indent: "\t", ParamType: "i64"})
	assertContains(t, code, "\tif true {\n\t\tprintln!(\"{}\", v);\n\t}\n")
	assertContains(t, code, "fn f(v: i64) {")

	// Zero fields fall back to defaults.
	code = Generate(stmts, &EmitOptions{})
	assertContains(t, code, "    if true {")
	assertContains(t, code, "fn f(v: i32) {")
}

func TestGenerate_Idempotent(t *testing.T) {
	stmts, _, err := Parse(Split(`print "a"
func f x
  print x
endfunc
loop do
  call f
quit_loop`))
	require.NoError(t, err)

	first := Generate(stmts, nil)
	second := Generate(stmts, nil)
	assert.Equal(t, first, second)
}

func TestGenerate_UnknownStmtIgnored(t *testing.T) {
	type bogus struct{ Stmt }
	code := Generate([]Stmt{bogus{}, &PrintStmt{Text: "x"}}, nil)
	assert.Equal(t, "fn main() {\n    println!(\"{}\", x);\n}\n", code)
}

func TestGenerate_FunctionsInDeclarationOrder(t *testing.T) {
	stmts, _, err := Parse(Split("func a\nfunc b\nendfunc\nendfunc\nfunc c\nendfunc"))
	require.NoError(t, err)

	code := Generate(stmts, nil)
	a := strings.Index(code, "fn a()")
	b := strings.Index(code, "fn b()")
	c := strings.Index(code, "fn c()")
	require.True(t, a >= 0 && b >= 0 && c >= 0, code)
	assert.Less(t, a, b)
	assert.Less(t, b, c)
}
