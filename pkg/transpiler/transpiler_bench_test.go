package transpiler

import (
	"strings"
	"testing"
)

// benchSource nests every block kind a few levels deep.
var benchSource = strings.Repeat(`new var x = 1
func step a,b
    + into c from a and b
    print c
endfunc
loop do
    in console n int
    while n > 0
        - into n from n and 1
        if n == 3
            quit_loop
        }
        sleep 10
    }
quit_loop
call step
`, 50)

func BenchmarkSplit(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Split(benchSource)
	}
}

func BenchmarkParse(b *testing.B) {
	lines := Split(benchSource)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := Parse(lines); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTranspile(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Transpile(benchSource, nil); err != nil {
			b.Fatal(err)
		}
	}
}
