package path

import (
	"iter"

	"github.com/arloliu/bjson/encoding"
	"github.com/arloliu/bjson/format"
	"github.com/arloliu/bjson/value"
	"github.com/arloliu/bjson/view"
)

// yieldFunc receives matches; returning false stops evaluation.
type yieldFunc func(view.View, error) bool

// Eval returns a lazy sequence of the values matched against root.
//
// Matches are produced depth-first, which yields them in the same order as applying
// each selector to the whole match list in turn. A corrupt document is reported once
// as a non-nil error, after which the sequence ends. The sequence can be ranged over
// any number of times; each range re-evaluates from scratch.
//
// Example:
//
//	for v, err := range expr.Eval(root) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(v)
//	}
func (e *Expr) Eval(root view.View) iter.Seq2[view.View, error] {
	return func(yield func(view.View, error) bool) {
		if !e.counts {
			e.eval(root, 0, yield)
			return
		}

		n, failed := 0, false
		e.eval(root, 0, func(_ view.View, err error) bool {
			if err != nil {
				failed = true
				return stop(yield, err)
			}
			n++

			return true
		})
		if !failed {
			yield(computed(value.Int64(int64(n))))
		}
	}
}

// Select returns all matches.
func (e *Expr) Select(root view.View) ([]view.View, error) {
	var out []view.View
	for v, err := range e.Eval(root) {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}

// First returns the first match. ok is false if nothing matched.
func (e *Expr) First(root view.View) (v view.View, ok bool, err error) {
	for match, err := range e.Eval(root) {
		if err != nil {
			return view.View{}, false, err
		}

		return match, true, nil
	}

	return view.View{}, false, nil
}

// Exists reports whether anything matches. Evaluation stops at the first match.
func (e *Expr) Exists(root view.View) (bool, error) {
	_, ok, err := e.First(root)
	return ok, err
}

// Count returns the number of matches.
func (e *Expr) Count(root view.View) (int, error) {
	n := 0
	for _, err := range e.Eval(root) {
		if err != nil {
			return 0, err
		}
		n++
	}

	return n, nil
}

// stop delivers err and ends evaluation.
func stop(yield yieldFunc, err error) bool {
	yield(view.View{}, err)
	return false
}

// eval applies selectors[i:] to v. It returns false once the consumer stopped or an
// error was delivered.
func (e *Expr) eval(v view.View, i int, yield yieldFunc) bool {
	if i == len(e.selectors) {
		return yield(v, nil)
	}

	sel := &e.selectors[i]
	switch sel.kind {
	case selectKey:
		return e.evalKey(v, i, sel, yield)
	case selectWildcard:
		return e.evalWildcard(v, i, yield)
	case selectSubscripts:
		return e.evalSubscripts(v, i, sel, yield)
	case selectDescendants:
		return e.evalDescendants(v, i, yield)
	case selectMethod:
		return e.evalMethod(v, i, sel, yield)
	}

	return true
}

// evalMethod replaces v with the result of a size() or type() item method.
func (e *Expr) evalMethod(v view.View, i int, sel *selector, yield yieldFunc) bool {
	var result value.Value
	switch sel.method {
	case methodSize:
		size := 1
		if v.Type() == format.TypeArray {
			n, err := v.Len()
			if err != nil {
				return stop(yield, err)
			}
			size = n
		}
		result = value.Int64(int64(size))
	case methodType:
		result = value.String(v.Type().String())
	case methodCount:
		// count() is taken off the selector list at parse time
		return true
	}

	out, err := computed(result)
	if err != nil {
		return stop(yield, err)
	}

	return e.eval(out, i+1, yield)
}

// computed wraps a value produced by an item method in a document of its own, since
// it has no position in the queried document.
func computed(v value.Value) (view.View, error) {
	doc, err := encoding.Encode(v)
	if err != nil {
		return view.View{}, err
	}

	return view.Open(doc)
}

func (e *Expr) evalKey(v view.View, i int, sel *selector, yield yieldFunc) bool {
	switch v.Type() { //nolint: exhaustive
	case format.TypeObject:
		child, ok, err := v.Get(sel.key)
		if err != nil {
			return stop(yield, err)
		}
		if !ok {
			return true
		}

		return e.eval(child, i+1, yield)
	case format.TypeArray:
		if !e.lax || sel.afterDescent {
			return true
		}

		// lax: the same key selector applies to every element
		for elem, err := range v.Elements() {
			if err != nil {
				return stop(yield, err)
			}
			if !e.eval(elem, i, yield) {
				return false
			}
		}
	}

	return true
}

func (e *Expr) evalWildcard(v view.View, i int, yield yieldFunc) bool {
	if !v.Type().IsContainer() {
		if e.lax {
			return e.eval(v, i+1, yield)
		}

		return true
	}

	for child, err := range v.Children() {
		if err != nil {
			return stop(yield, err)
		}
		if !e.eval(child, i+1, yield) {
			return false
		}
	}

	return true
}

func (e *Expr) evalSubscripts(v view.View, i int, sel *selector, yield yieldFunc) bool {
	if v.Type() != format.TypeArray {
		if !e.lax {
			return true
		}

		// lax: a non-array behaves as a one-element array holding itself
		if len(positions(sel.subscripts, 1)) > 0 {
			return e.eval(v, i+1, yield)
		}

		return true
	}

	length, err := v.Len()
	if err != nil {
		return stop(yield, err)
	}

	for _, pos := range positions(sel.subscripts, length) {
		elem, ok, err := v.Index(pos)
		if err != nil {
			return stop(yield, err)
		}
		if ok && !e.eval(elem, i+1, yield) {
			return false
		}
	}

	return true
}

// positions resolves subscripts against an array length into in-range positions,
// in listed order. Ranges are ascending and clamped.
func positions(subs []subscript, length int) []int {
	var out []int
	for _, s := range subs {
		from := s.from.resolve(length)
		if !s.hasTo {
			if from >= 0 && from < length {
				out = append(out, from)
			}

			continue
		}

		to := s.to.resolve(length)
		lo, hi := min(from, to), max(from, to)
		lo, hi = max(lo, 0), min(hi, length-1)
		for pos := lo; pos <= hi; pos++ {
			out = append(out, pos)
		}
	}

	return out
}

// evalDescendants applies the remaining selectors to v and then to every descendant
// of v in pre-order.
func (e *Expr) evalDescendants(v view.View, i int, yield yieldFunc) bool {
	if !e.eval(v, i+1, yield) {
		return false
	}

	for child, err := range v.Children() {
		if err != nil {
			return stop(yield, err)
		}
		if !e.evalDescendants(child, i, yield) {
			return false
		}
	}

	return true
}
