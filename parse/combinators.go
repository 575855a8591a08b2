package parse

import "io"

// Pair holds the two results of a sequenced parse.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Maybe holds the result of an Optional parse. OK reports whether the
// inner parser matched.
type Maybe[T any] struct {
	Value T
	OK    bool
}

// And runs first then second, returning both results as a Pair. Either
// failing fails the whole, restoring the position to the sequence's start.
func And[A, B any](first Parser[A], second Parser[B]) Parser[Pair[A, B]] {
	return func(r io.ReadSeeker) (Pair[A, B], error) {
		return Backtrack(r, func() (Pair[A, B], error) {
			a, err := first(r)
			if err != nil {
				return Pair[A, B]{}, err
			}
			b, err := second(r)
			if err != nil {
				return Pair[A, B]{}, err
			}
			return Pair[A, B]{First: a, Second: b}, nil
		})
	}
}

// Or tries each parser in order and returns the first success. It fails
// only if every branch fails, surfacing the final branch's error; earlier
// failures are swallowed. Each failed branch restores the position before
// the next is tried.
func Or[T any](parsers ...Parser[T]) Parser[T] {
	return func(r io.ReadSeeker) (T, error) {
		return Backtrack(r, func() (T, error) {
			var zero T
			err := error(NewError("no alternatives"))
			for _, p := range parsers {
				var v T
				v, err = p(r)
				if err == nil {
					return v, nil
				}
			}
			return zero, err
		})
	}
}

// Then runs first, discards its result, then runs second and returns
// second's result.
func Then[A, B any](first Parser[A], second Parser[B]) Parser[B] {
	return func(r io.ReadSeeker) (B, error) {
		return Backtrack(r, func() (B, error) {
			if _, err := first(r); err != nil {
				var zero B
				return zero, err
			}
			return second(r)
		})
	}
}

// With runs first, then runs second and discards its result, returning
// first's result.
func With[A, B any](first Parser[A], second Parser[B]) Parser[A] {
	return func(r io.ReadSeeker) (A, error) {
		return Backtrack(r, func() (A, error) {
			a, err := first(r)
			if err != nil {
				var zero A
				return zero, err
			}
			if _, err := second(r); err != nil {
				var zero A
				return zero, err
			}
			return a, nil
		})
	}
}

// Optional runs p and never fails: a success is returned with OK set, a
// failure becomes an absent Maybe with zero net consumption.
func Optional[T any](p Parser[T]) Parser[Maybe[T]] {
	return func(r io.ReadSeeker) (Maybe[T], error) {
		v, err := p(r)
		if err != nil {
			return Maybe[T]{}, nil
		}
		return Maybe[T]{Value: v, OK: true}, nil
	}
}

// Many runs p repeatedly until it fails, collecting the results in order.
// Zero repetitions is a success with an empty slice; the final failed
// attempt consumes nothing. p must consume input when it succeeds: a
// parser that can succeed on zero bytes, such as Optional or Spaces,
// makes Many loop forever.
func Many[T any](p Parser[T]) Parser[[]T] {
	return func(r io.ReadSeeker) ([]T, error) {
		var out []T
		for {
			v, err := p(r)
			if err != nil {
				return out, nil
			}
			out = append(out, v)
		}
	}
}

// Many1 is Many requiring at least one success.
func Many1[T any](p Parser[T]) Parser[[]T] {
	return func(r io.ReadSeeker) ([]T, error) {
		out, _ := Many(p)(r)
		if len(out) == 0 {
			return nil, NewError("expected at least one match")
		}
		return out, nil
	}
}

// Count runs p exactly n times, collecting the results. Any failure
// before the nth repetition fails the whole and restores the position to
// the start of the first attempt.
func Count[T any](p Parser[T], n int) Parser[[]T] {
	return func(r io.ReadSeeker) ([]T, error) {
		return Backtrack(r, func() ([]T, error) {
			out := make([]T, 0, n)
			for i := 0; i < n; i++ {
				v, err := p(r)
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			return out, nil
		})
	}
}

// Between runs open, then p, then close, returning only p's result. Any
// step failing fails the whole with a full restore.
func Between[L, T, R any](open Parser[L], p Parser[T], close Parser[R]) Parser[T] {
	return func(r io.ReadSeeker) (T, error) {
		return Backtrack(r, func() (T, error) {
			var zero T
			if _, err := open(r); err != nil {
				return zero, err
			}
			v, err := p(r)
			if err != nil {
				return zero, err
			}
			if _, err := close(r); err != nil {
				return zero, err
			}
			return v, nil
		})
	}
}

// Map runs p and, on success, applies fn to its result. fn must be pure
// and total; p's failures propagate unchanged.
func Map[T, U any](p Parser[T], fn func(T) U) Parser[U] {
	return func(r io.ReadSeeker) (U, error) {
		v, err := p(r)
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(v), nil
	}
}

// Lazy defers construction of a parser until it is invoked, breaking the
// cycle in self- or mutually-recursive grammar rules: a rule for
// "(" expr ")" can refer to expr through Lazy even while expr's own
// definition is still being assembled. build runs on every invocation.
func Lazy[T any](build func() Parser[T]) Parser[T] {
	return func(r io.ReadSeeker) (T, error) {
		return build()(r)
	}
}
