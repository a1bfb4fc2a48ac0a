package transpiler

import "fmt"

// Keyword identifies the statement kind selected by a line's first word.
type Keyword int

const (
	UNKNOWN Keyword = iota // first word is not a keyword

	PRINT     // "print"
	NEW       // "new"
	FUNC      // "func"
	CALL      // "call"
	IN        // "in"
	LOOP      // "loop"
	WHILE     // "while"
	IF        // "if"
	SLEEP     // "sleep"
	QUIT_LOOP // "quit_loop"
	MATH      // "+", "-", "*", "/", "%"

	// Sentinels that only close blocks.
	ENDFUNC // "endfunc"
	RBRACE  // "}"
)

// keywords maps a line's first word to its Keyword. Matching is case-sensitive.
var keywords = map[string]Keyword{
	"print":     PRINT,
	"new":       NEW,
	"func":      FUNC,
	"call":      CALL,
	"in":        IN,
	"loop":      LOOP,
	"while":     WHILE,
	"if":        IF,
	"sleep":     SLEEP,
	"quit_loop": QUIT_LOOP,
	"+":         MATH,
	"-":         MATH,
	"*":         MATH,
	"/":         MATH,
	"%":         MATH,
	"endfunc":   ENDFUNC,
	"}":         RBRACE,
}

// keywordNames is indexed by Keyword.
var keywordNames = [...]string{
	UNKNOWN:   "UNKNOWN",
	PRINT:     "PRINT",
	NEW:       "NEW",
	FUNC:      "FUNC",
	CALL:      "CALL",
	IN:        "IN",
	LOOP:      "LOOP",
	WHILE:     "WHILE",
	IF:        "IF",
	SLEEP:     "SLEEP",
	QUIT_LOOP: "QUIT_LOOP",
	MATH:      "MATH",
	ENDFUNC:   "ENDFUNC",
	RBRACE:    "RBRACE",
}

func (k Keyword) String() string {
	if int(k) >= 0 && int(k) < len(keywordNames) {
		return keywordNames[k]
	}
	return fmt.Sprintf("Keyword(%d)", int(k))
}

// Sentinel lines. A sentinel matches a line's trimmed text exactly.
const (
	sentinelLoop  = "quit_loop"
	sentinelFunc  = "endfunc"
	sentinelBlock = "}"
)

// Line is one trimmed, non-empty source line.
type Line struct {
	Text    string   // trimmed text
	Words   []string // Text split on ASCII whitespace
	Keyword Keyword  // classification of Words[0]
	Number  int      // 1-based line number in the original input
}

func (l Line) String() string {
	return fmt.Sprintf("%-10s %-30q  line %d", l.Keyword, l.Text, l.Number)
}
