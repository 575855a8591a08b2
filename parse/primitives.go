package parse

import (
	"io"
	"strconv"

	"golang.org/x/exp/constraints"
)

// Bytes matches the exact byte sequence b, consuming it. On any mismatch
// or early end of input it fails with a reason naming the expected
// literal and consumes nothing.
func Bytes(b []byte) Parser[[]byte] {
	return func(r io.ReadSeeker) ([]byte, error) {
		return Backtrack(r, func() ([]byte, error) {
			for _, want := range b {
				got, err := readByte(r)
				if err != nil {
					return nil, Errorf("expected %q", b)
				}
				if got != want {
					return nil, Errorf("expected %q", b)
				}
			}
			return b, nil
		})
	}
}

// String matches the exact string s.
func String(s string) Parser[string] {
	return Map(Bytes([]byte(s)), func([]byte) string { return s })
}

// Spaces consumes any run of space bytes, possibly none. It never fails.
func Spaces() Parser[struct{}] {
	return Map(Many(String(" ")), func([]string) struct{} { return struct{}{} })
}

// Sign recognizes an optional leading minus sign. It always succeeds,
// producing a negation function when the sign is present and the identity
// otherwise; the sign byte is consumed only when present.
func Sign[I constraints.Signed]() Parser[func(I) I] {
	return Map(Optional(String("-")), func(m Maybe[string]) func(I) I {
		if m.OK {
			return func(i I) I { return -i }
		}
		return func(i I) I { return i }
	})
}

// NonNegDecimal greedily consumes one or more ASCII digits and parses
// them into I. Any number of leading zeros is allowed, so "005" parses
// as 5. The first non-digit byte is pushed back for whatever parser runs
// next. Zero digits or a value too large for I fail with the stream
// restored to the start of the attempt.
func NonNegDecimal[I constraints.Integer]() Parser[I] {
	return func(r io.ReadSeeker) (I, error) {
		return Backtrack(r, func() (I, error) {
			var digits []byte
			for {
				b, err := readByte(r)
				if err == io.EOF {
					break
				}
				if err != nil {
					return 0, err
				}
				if b < '0' || b > '9' {
					if err := seekBackOne(r); err != nil {
						return 0, err
					}
					break
				}
				digits = append(digits, b)
			}
			if len(digits) == 0 {
				return 0, NewError("expected decimal digit")
			}
			u, err := strconv.ParseUint(string(digits), 10, 64)
			if err != nil {
				return 0, Errorf("decimal integer literal too large: %s", digits)
			}
			v := I(u)
			if v < 0 || uint64(v) != u {
				return 0, Errorf("decimal integer literal too large: %s", digits)
			}
			return v, nil
		})
	}
}

// Decimal parses an optionally signed decimal integer into I, composing
// Sign with NonNegDecimal, so "-0032" parses as -32.
func Decimal[I constraints.Signed]() Parser[I] {
	return Map(And(Sign[I](), NonNegDecimal[I]()), func(p Pair[func(I) I, I]) I {
		return p.First(p.Second)
	})
}

// EOF succeeds, consuming nothing, iff the stream has no bytes left. When
// a byte remains it fails naming that byte; a read failing for any reason
// other than end of input fails with a generic reason.
func EOF() Parser[struct{}] {
	return func(r io.ReadSeeker) (struct{}, error) {
		return Backtrack(r, func() (struct{}, error) {
			b, err := readByte(r)
			if err == io.EOF {
				return struct{}{}, nil
			}
			if err != nil {
				return struct{}{}, NewError("expected end of input")
			}
			return struct{}{}, Errorf("expected end of input, found %q", b)
		})
	}
}
