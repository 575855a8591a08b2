package parse

import (
	"io"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("pars.parse")

// Traced wraps p with debug-level logging of each attempt, naming the
// rule and the offsets involved. It changes nothing about p's behavior
// and is meant for diagnosing grammars whose alternatives backtrack in
// unexpected ways.
func Traced[T any](name string, p Parser[T]) Parser[T] {
	return func(r io.ReadSeeker) (T, error) {
		start, err := r.Seek(0, io.SeekCurrent)
		if err != nil {
			log.Debugf("%s: stream position unavailable: %v", name, err)
			return p(r)
		}
		v, err := p(r)
		if err != nil {
			log.Debugf("%s: no match at offset %d: %v", name, start, err)
			return v, err
		}
		if end, err := r.Seek(0, io.SeekCurrent); err == nil {
			log.Debugf("%s: matched %d bytes at offset %d", name, end-start, start)
		} else {
			log.Debugf("%s: matched at offset %d", name, start)
		}
		return v, nil
	}
}
