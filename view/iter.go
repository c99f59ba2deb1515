package view

import (
	"iter"

	"github.com/arloliu/bjson/format"
)

// Member is one key/value pair of an encoded Object.
type Member struct {
	Key   string
	Value View
}

// Elements returns an iterator over the elements of an Array in order.
//
// A type mismatch or corruption is yielded once as a non-nil error, after which
// iteration stops.
//
// Example:
//
//	for elem, err := range arr.Elements() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(elem.Type())
//	}
func (v View) Elements() iter.Seq2[View, error] {
	return func(yield func(View, error) bool) {
		c, err := v.container("Elements", format.TypeArray)
		if err != nil {
			yield(View{}, err)
			return
		}

		w := c.Walk()
		for i := range c.Count {
			_, elem, err := v.at(c, &w, i)
			if !yield(elem, err) || err != nil {
				return
			}
		}
	}
}

// Members returns an iterator over the members of an Object in ascending key order.
func (v View) Members() iter.Seq2[Member, error] {
	return func(yield func(Member, error) bool) {
		c, err := v.container("Members", format.TypeObject)
		if err != nil {
			yield(Member{}, err)
			return
		}

		w := c.Walk()
		for i := range c.Count {
			key, val, err := v.at(c, &w, i)
			if !yield(Member{Key: key, Value: val}, err) || err != nil {
				return
			}
		}
	}
}

// Keys returns an iterator over the keys of an Object in ascending byte order.
func (v View) Keys() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for m, err := range v.Members() {
			if !yield(m.Key, err) || err != nil {
				return
			}
		}
	}
}

// Children returns an iterator over the direct children of an Array (elements in
// order) or an Object (values in key order). Scalars have no children and yield
// nothing.
func (v View) Children() iter.Seq2[View, error] {
	return func(yield func(View, error) bool) {
		if !v.Type().IsContainer() {
			return
		}

		c, err := v.container("Children", format.TypeInvalid)
		if err != nil {
			yield(View{}, err)
			return
		}

		w := c.Walk()
		for i := range c.Count {
			e, err := w.Value(v.buf, i)
			if err != nil {
				yield(View{}, err)
				return
			}
			if !yield(v.child(e), nil) {
				return
			}
		}
	}
}
