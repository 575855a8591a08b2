package parse

import (
	"fmt"
	"io"
)

// PositionReader wraps a seekable byte source with line and column
// bookkeeping that stays correct across the backward seeks caused by
// backtracking. Line and column are zero-based; the column counts bytes
// read on the current line since the last newline.
//
// The wrapped stream must start at offset 0: the per-line length history
// that backward seeks rely on can only be built by observing every byte
// from the beginning.
type PositionReader struct {
	r      io.ReadSeeker
	length int64

	pos  int64
	line int
	col  int

	// lineLens[i] is the length of line i excluding its newline byte,
	// recorded when that newline is first read. Used to recover the
	// column after a backward seek across a line boundary.
	lineLens []int
}

// NewPositionReader wraps r, which must be positioned at offset 0. The
// stream length is captured once for end-relative seeks.
func NewPositionReader(r io.ReadSeeker) (*PositionReader, error) {
	cur, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("position reader: %w", err)
	}
	if cur != 0 {
		return nil, fmt.Errorf("position reader: stream at offset %d, must start at 0", cur)
	}
	length, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("position reader: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("position reader: %w", err)
	}
	return &PositionReader{r: r, length: length}, nil
}

// Position returns the current absolute byte offset.
func (pr *PositionReader) Position() int64 { return pr.pos }

// Line returns the zero-based line of the current position.
func (pr *PositionReader) Line() int { return pr.line }

// Col returns the zero-based column of the current position.
func (pr *PositionReader) Col() int { return pr.col }

func (pr *PositionReader) Read(buf []byte) (int, error) {
	n, err := pr.r.Read(buf)
	for _, b := range buf[:n] {
		pr.pos++
		if b == '\n' {
			// Re-reads after a backward seek cross newlines whose
			// lengths are already on record.
			if pr.line == len(pr.lineLens) {
				pr.lineLens = append(pr.lineLens, pr.col)
			}
			pr.line++
			pr.col = 0
		} else {
			pr.col++
		}
	}
	return n, err
}

// Seek moves the cursor and recomputes line/column. A forward seek
// re-reads the skipped span through Read rather than jumping, since the
// skipped bytes must still be scanned for newlines; the cost is linear in
// the distance and deliberately so. A backward seek re-reads the span
// being abandoned to count the newlines crossed and recovers the column
// from the line-length history.
func (pr *PositionReader) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = pr.pos + offset
	case io.SeekEnd:
		target = pr.length + offset
	default:
		return 0, fmt.Errorf("position reader: invalid whence %d", whence)
	}
	if target < 0 {
		return 0, fmt.Errorf("position reader: seek to negative offset %d", target)
	}
	if target > pr.length {
		return 0, fmt.Errorf("position reader: seek past end of stream (%d > %d)", target, pr.length)
	}

	switch {
	case target == pr.pos:
		return pr.pos, nil
	case target > pr.pos:
		if err := pr.skipForward(target - pr.pos); err != nil {
			return pr.pos, err
		}
		return pr.pos, nil
	default:
		return pr.seekBackward(target)
	}
}

func (pr *PositionReader) skipForward(n int64) error {
	buf := make([]byte, n)
	if _, err := io.ReadFull(pr, buf); err != nil {
		return fmt.Errorf("position reader: forward seek: %w", err)
	}
	return nil
}

func (pr *PositionReader) seekBackward(target int64) (int64, error) {
	span := make([]byte, pr.pos-target)
	if _, err := pr.r.Seek(target, io.SeekStart); err != nil {
		return 0, err
	}
	if _, err := io.ReadFull(pr.r, span); err != nil {
		return 0, fmt.Errorf("position reader: backward seek: %w", err)
	}
	if _, err := pr.r.Seek(target, io.SeekStart); err != nil {
		return 0, err
	}

	newlines := 0
	tail := 0 // bytes of the span still on the line we land on
	for i, b := range span {
		if b == '\n' {
			newlines++
			if newlines == 1 {
				tail = i
			}
		}
	}
	if newlines == 0 {
		pr.col -= len(span)
	} else {
		pr.line -= newlines
		pr.col = pr.lineLens[pr.line] - tail
	}
	pr.pos = target
	return pr.pos, nil
}
