// Package parse provides backtracking parser combinators over a seekable
// byte stream.
//
// A Parser is a reusable description of how to derive a value from the
// stream at its current position. Parsers either succeed, leaving the
// stream positioned just past the bytes they consumed, or fail, leaving
// the stream exactly where it was when they were invoked. That guarantee
// is what makes ordered alternation (Or) safe: a failed branch can always
// be retried with another branch from the same starting position.
package parse

import (
	"fmt"
	"io"
)

// Error is the failure result of a parse attempt. Reason is optional
// human-readable context; errors never carry partial results or stream
// positions. Callers wanting a position consult a PositionReader after
// the failing call returns.
type Error struct {
	Reason string
	cause  error
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return "parse failed"
	}
	return "parse failed: " + e.Reason
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NewError returns a parse error with the given reason.
func NewError(reason string) *Error {
	return &Error{Reason: reason}
}

// Errorf returns a parse error with a formatted reason.
func Errorf(format string, args ...any) *Error {
	return &Error{Reason: fmt.Sprintf(format, args...)}
}

// wrapErr maps any underlying error (typically stream I/O) into *Error.
// The engine has no distinct I/O failure class: a read error is an
// ordinary parse failure.
func wrapErr(err error) *Error {
	if err == nil {
		return nil
	}
	if pe, ok := err.(*Error); ok {
		return pe
	}
	return &Error{Reason: err.Error(), cause: err}
}

// Parser derives a value of type T from the current position of a stream.
// Parser values are stateless and may be reused across parses; the only
// side effect of invoking one is moving the stream's position cursor.
type Parser[T any] func(r io.ReadSeeker) (T, error)

// Parse attempts the parser at the stream's current position. On success
// the position is just past the consumed input; on failure the position
// is unchanged.
func (p Parser[T]) Parse(r io.ReadSeeker) (T, error) {
	return p(r)
}

// ParseToEnd is like Parse, but additionally requires that the stream has
// no bytes left after the parse. On trailing input it fails without
// rewinding past the parsed prefix, so a PositionReader wrapped around r
// reports where the leftover input begins.
func (p Parser[T]) ParseToEnd(r io.ReadSeeker) (T, error) {
	v, err := p(r)
	if err != nil {
		var zero T
		return zero, err
	}
	if _, err := EOF()(r); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Backtrack records the stream position, runs fn, and restores the
// position if and only if fn fails. Every combinator and primitive in
// this package routes its multi-step logic through Backtrack; custom
// primitives built outside the package should do the same to preserve
// the restore-on-failure guarantee.
func Backtrack[T any](r io.ReadSeeker, fn func() (T, error)) (T, error) {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		var zero T
		return zero, wrapErr(err)
	}
	v, err := fn()
	if err != nil {
		if _, serr := r.Seek(start, io.SeekStart); serr != nil {
			var zero T
			return zero, wrapErr(serr)
		}
		var zero T
		return zero, wrapErr(err)
	}
	return v, nil
}

// readByte reads the next byte from the stream. It returns io.EOF
// unwrapped so callers can distinguish end of input from other failures.
func readByte(r io.ReadSeeker) (byte, error) {
	var buf [1]byte
	for {
		n, err := r.Read(buf[:])
		if n > 0 {
			return buf[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}

// seekBackOne pushes the cursor back one byte, un-reading the byte a
// scanner looked at but did not consume.
func seekBackOne(r io.ReadSeeker) error {
	_, err := r.Seek(-1, io.SeekCurrent)
	return err
}
