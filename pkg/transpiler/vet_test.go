package transpiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vetCodes(t *testing.T, src string) []string {
	t.Helper()
	stmts, _, err := Parse(Split(src))
	require.NoError(t, err)

	var codes []string
	for _, is := range Vet(stmts) {
		codes = append(codes, is.Code)
	}
	return codes
}

func TestVet(t *testing.T) {
	tests := []struct {
		name  string
		input string
		codes []string
	}{
		{
			name:  "Clean",
			input: "func f\nprint \"x\"\nendfunc\ncall f\nloop do\nif done\nquit_loop\n}\nquit_loop",
			codes: nil,
		},
		{
			name:  "Duplicate Func",
			input: "func f\nendfunc\nfunc f\nendfunc",
			codes: []string{"duplicate_func"},
		},
		{
			name:  "Undeclared Func",
			input: "call nowhere",
			codes: []string{"undeclared_func"},
		},
		{
			name:  "Unbound Params",
			input: "func add a,b\nendfunc\ncall add",
			codes: []string{"unbound_params"},
		},
		{
			name:  "Brace In Condition",
			input: "while x < 10 {\n}",
			codes: []string{"brace_in_condition"},
		},
		{
			name:  "Infinite Loop",
			input: "loop do\nprint \"x\"\nquit_loop",
			codes: []string{"infinite_loop"},
		},
		{
			name:  "Break Outside Loop",
			input: "quit_loop",
			codes: []string{"break_outside_loop"},
		},
		{
			name:  "Break In Function Inside Loop",
			input: "loop do\nfunc f\nquit_loop\nendfunc\nquit_loop",
			codes: []string{"infinite_loop", "break_outside_loop"},
		},
		{
			name:  "Break Inside While",
			input: "while running\nquit_loop\n}",
			codes: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.codes, vetCodes(t, tt.input))
		})
	}
}

func TestWalkDepth(t *testing.T) {
	stmts, _, err := Parse(Split("loop do\nif x\nprint x\n}\nquit_loop\nprint y"))
	require.NoError(t, err)

	var got []int
	Walk(stmts, func(_ Stmt, depth int) bool {
		got = append(got, depth)
		return true
	})
	assert.Equal(t, []int{0, 1, 2, 0}, got)

	got = got[:0]
	Walk(stmts, func(_ Stmt, depth int) bool {
		got = append(got, depth)
		return false
	})
	assert.Equal(t, []int{0, 0}, got)
}
