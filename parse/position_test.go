package parse

import (
	"io"
	"strings"
	"testing"
)

func newTracked(t *testing.T, input string) *PositionReader {
	t.Helper()
	pr, err := NewPositionReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("NewPositionReader() error = %v", err)
	}
	return pr
}

func readAll(t *testing.T, pr *PositionReader, n int) {
	t.Helper()
	buf := make([]byte, n)
	if _, err := io.ReadFull(pr, buf); err != nil {
		t.Fatalf("ReadFull() error = %v", err)
	}
}

func checkAt(t *testing.T, pr *PositionReader, pos int64, line, col int) {
	t.Helper()
	if pr.Position() != pos || pr.Line() != line || pr.Col() != col {
		t.Errorf("at position %d line %d col %d, want position %d line %d col %d",
			pr.Position(), pr.Line(), pr.Col(), pos, line, col)
	}
}

func TestPositionReaderRequiresOffsetZero(t *testing.T) {
	r := strings.NewReader("abc")
	if _, err := r.Seek(1, io.SeekStart); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	if _, err := NewPositionReader(r); err == nil {
		t.Fatal("NewPositionReader() on an advanced stream succeeded")
	}
}

func TestPositionReaderForwardReads(t *testing.T) {
	pr := newTracked(t, "ab\ncd")

	readAll(t, pr, 2)
	checkAt(t, pr, 2, 0, 2)

	readAll(t, pr, 1) // the newline
	checkAt(t, pr, 3, 1, 0)

	readAll(t, pr, 2)
	checkAt(t, pr, 5, 1, 2)
}

func TestPositionReaderBackwardSeeks(t *testing.T) {
	pr := newTracked(t, "ab\ncd")
	readAll(t, pr, 5)
	checkAt(t, pr, 5, 1, 2)

	// Back to just after the newline.
	if _, err := pr.Seek(3, io.SeekStart); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	checkAt(t, pr, 3, 1, 0)

	// All the way back to the start.
	if _, err := pr.Seek(0, io.SeekStart); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	checkAt(t, pr, 0, 0, 0)
}

func TestPositionReaderBackwardWithinLine(t *testing.T) {
	pr := newTracked(t, "ab\ncd")
	readAll(t, pr, 5)

	if _, err := pr.Seek(-1, io.SeekCurrent); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	checkAt(t, pr, 4, 1, 1)
}

func TestPositionReaderBackwardAcrossLines(t *testing.T) {
	pr := newTracked(t, "one\ntwo\nthree")
	readAll(t, pr, 13)
	checkAt(t, pr, 13, 2, 5)

	// Land mid-way through the first line.
	if _, err := pr.Seek(2, io.SeekStart); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	checkAt(t, pr, 2, 0, 2)

	// Read forward again across both newlines; the line history is
	// reused, not duplicated.
	readAll(t, pr, 6)
	checkAt(t, pr, 8, 2, 0)
}

func TestPositionReaderForwardSeekScansNewlines(t *testing.T) {
	pr := newTracked(t, "ab\ncd")

	// A forward seek must observe the skipped newline.
	if _, err := pr.Seek(4, io.SeekStart); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	checkAt(t, pr, 4, 1, 1)
}

func TestPositionReaderEndRelativeSeek(t *testing.T) {
	pr := newTracked(t, "ab\ncd")

	if _, err := pr.Seek(0, io.SeekEnd); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	checkAt(t, pr, 5, 1, 2)

	if _, err := pr.Seek(-2, io.SeekEnd); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	checkAt(t, pr, 3, 1, 0)
}

func TestPositionReaderBacktrackingParse(t *testing.T) {
	// The tracker stays correct when driven by a real backtracking
	// parse: the failing branch reads past the newline, then rewinds.
	pr := newTracked(t, "12\n34")
	p := Or(
		Map(And(NonNegDecimal[int](), Then(String("\n"), String("xx"))), func(p Pair[int, string]) int { return p.First }),
		NonNegDecimal[int](),
	)
	got, err := p.Parse(pr)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got != 12 {
		t.Errorf("Parse() = %d, want 12", got)
	}
	checkAt(t, pr, 2, 0, 2)
}

func TestPositionReaderDiagnosticsAfterFailure(t *testing.T) {
	pr := newTracked(t, "12+\n34+x")
	sum := Map(
		And(NonNegDecimal[int](), Many(Then(Or(String("+"), String("+\n")), NonNegDecimal[int]()))),
		func(p Pair[int, []int]) int {
			total := p.First
			for _, n := range p.Second {
				total += n
			}
			return total
		},
	)
	if _, err := sum.ParseToEnd(pr); err == nil {
		t.Fatal("ParseToEnd() succeeded, want trailing-input failure")
	}
	// Cursor stopped where the leftover input begins.
	if pr.Line() != 0 || pr.Col() != 2 {
		t.Errorf("stopped at line %d col %d, want line 0 col 2", pr.Line(), pr.Col())
	}
}
