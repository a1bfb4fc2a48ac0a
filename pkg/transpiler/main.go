// Package transpiler turns Potato scripts into Rust source text.
//
// Pipeline: script text → Split → Parse → Generate → Rust source
//
// Split breaks the input into trimmed, non-empty lines and classifies each
// one by its first word. Parse recognizes one statement per line and, for
// block openers (loop do, while, if, func), collects the body up to its
// sentinel line and parses it recursively. Generate walks the resulting tree
// and emits a single Rust compilation unit. Run hands that unit to a
// build.Bridge, which compiles it and, only on success, executes it.
//
// Expressions, conditions and durations are opaque text. They are copied into
// the output untouched, so their validity is decided by rustc alone.
//
// Known sharp edge: the condition of while/if is every word after the keyword,
// so `while x < 10 {` stores the condition "x < 10 {" and emits a while header
// rustc will reject. Write the opening line without the brace.
package transpiler
