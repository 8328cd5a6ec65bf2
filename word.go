package trapguard

import "strconv"

// Word is a 64-bit machine word whose value may be unknown. Register
// snapshots and reconstructed frame values use Word so "the platform does not
// expose this register" and "the value happens to be zero" stay distinct.
type Word struct {
	Val   uint64
	Known bool
}

// Known wraps v as a known Word.
func Known(v uint64) Word {
	return Word{Val: v, Known: true}
}

// Unknown is the zero Word: no value present.
var Unknown = Word{}

// String renders the value in decimal, or "?" when unknown.
func (w Word) String() string {
	if !w.Known {
		return "?"
	}
	return strconv.FormatUint(w.Val, 10)
}
