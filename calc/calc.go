// Package calc implements an integer arithmetic grammar on top of the
// parse package, with the usual precedence layering: factor (numbers and
// parenthesized expressions), term (* and /), expr (+ and -). All four
// operators are left-associative and evaluate over int64.
package calc

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/pars/parse"
)

var ops = map[string]func(int64, int64) (int64, error){
	"+": func(a, b int64) (int64, error) { return a + b, nil },
	"-": func(a, b int64) (int64, error) { return a - b, nil },
	"*": func(a, b int64) (int64, error) { return a * b, nil },
	"/": func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, parse.NewError("division by zero")
		}
		return a / b, nil
	},
}

// chain parses an operand followed by any number of (operator, operand)
// pairs and evaluates them left to right. Evaluation can fail (division
// by zero), so the fold runs inside Backtrack rather than Map: a failed
// evaluation is an ordinary parse failure with the position restored.
func chain(operand parse.Parser[int64], op parse.Parser[string]) parse.Parser[int64] {
	seq := parse.And(operand, parse.Many(parse.And(op, operand)))
	return func(r io.ReadSeeker) (int64, error) {
		return parse.Backtrack(r, func() (int64, error) {
			p, err := seq.Parse(r)
			if err != nil {
				return 0, err
			}
			acc := p.First
			for _, rest := range p.Second {
				acc, err = ops[rest.First](acc, rest.Second)
				if err != nil {
					return 0, err
				}
			}
			return acc, nil
		})
	}
}

// Factor parses a nonnegative integer or a parenthesized expression. The
// parenthesized branch refers back to Expr through Lazy, since expr can
// nest arbitrarily deep inside its own factors.
func Factor() parse.Parser[int64] {
	number := parse.NonNegDecimal[int64]()
	paren := parse.Between(parse.String("("), parse.Lazy(Expr), parse.String(")"))
	return parse.Traced("factor", parse.Or(number, paren))
}

// Term parses a factor followed by any number of *- or /-joined factors.
func Term() parse.Parser[int64] {
	return chain(Factor(), parse.Or(parse.String("*"), parse.String("/")))
}

// Expr parses a term followed by any number of +- or --joined terms.
func Expr() parse.Parser[int64] {
	return parse.Traced("expr", chain(Term(), parse.Or(parse.String("+"), parse.String("-"))))
}

// Eval parses and evaluates expr, requiring the whole string to be
// consumed. Failures carry the line and column where the cursor stopped.
func Eval(expr string) (int64, error) {
	return EvalReader(strings.NewReader(expr))
}

// EvalReader is Eval over a seekable byte source positioned at offset 0.
func EvalReader(r io.ReadSeeker) (int64, error) {
	pr, err := parse.NewPositionReader(r)
	if err != nil {
		return 0, err
	}
	v, err := Expr().ParseToEnd(pr)
	if err != nil {
		return 0, fmt.Errorf("%w (line %d, column %d)", err, pr.Line(), pr.Col())
	}
	return v, nil
}
