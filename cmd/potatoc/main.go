package main

import (
	"fmt"
	"os"

	"potato/pkg/transpiler"
)

const testSource = `new var x = 10
print to terminal x
loop do
    if x > 5
        quit_loop
    }
quit_loop
`

func main() {
	src := testSource
	if len(os.Args) > 1 {
		data, err := os.ReadFile(os.Args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "read error:", err)
			os.Exit(1)
		}
		src = string(data)
	}

	fmt.Printf("Source:\n%s\n", src)

	// Split
	lines := transpiler.Split(src)

	fmt.Printf("Lines (%d)\n", len(lines))
	for _, l := range lines {
		fmt.Println(" ", l)
	}
	fmt.Println()

	// Parse
	stmts, diags, err := transpiler.Parse(lines)
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, "skipped:", d)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse error:", err)
		os.Exit(1)
	}

	fmt.Println("Statements")
	for _, s := range stmts {
		fmt.Println(" ", s)
	}
	fmt.Println()

	// code Generation
	fmt.Println("Generated Rust")
	fmt.Print(transpiler.Generate(stmts, nil))
	fmt.Println()

	for _, is := range transpiler.Vet(stmts) {
		fmt.Printf("%s: %s: %s %s\n", is.Level, is.Code, is.Message, is.Path)
	}
}
