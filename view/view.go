// Package view navigates bjson documents in place.
//
// A View is a (buffer, position, type) triple referring to one value inside an
// encoded document. Views are small values that borrow the buffer; they never copy
// it and stay valid as long as the buffer is not modified. Any number of goroutines
// may read through views of the same buffer concurrently.
//
// Object lookups binary-search the sorted key table (O(log n) key comparisons) and
// array indexing reads one fixed-size table entry (O(1)), so a lookup touches only
// the bytes on its path.
//
// Every read is bounds-checked. Malformed input yields an error wrapping
// errs.ErrCorruptEncoding; no method panics on untrusted bytes.
//
// # Basic Usage
//
//	root, err := view.Open(doc)
//	if err != nil {
//	    return err
//	}
//
//	name, ok, err := root.Get("name")
//	if err != nil || !ok {
//	    return err
//	}
//	s, err := name.Text()
package view

import (
	"bytes"
	"fmt"
	"math"
	"unicode/utf8"
	"unsafe"

	"github.com/arloliu/bjson/errs"
	"github.com/arloliu/bjson/format"
	"github.com/arloliu/bjson/internal/options"
	"github.com/arloliu/bjson/section"
	"github.com/arloliu/bjson/value"
)

// View refers to one encoded value inside a document.
// The zero View refers to nothing and reports format.TypeInvalid.
type View struct {
	buf    []byte
	entry  section.Entry
	strict bool
}

// TopLevelType returns the type of the root value in O(1) without validating the body.
func TopLevelType(buf []byte) (format.Type, error) {
	return section.RootType(buf)
}

// Open checks the version marker and root framing of buf and returns a view of
// its root value. Nested structure is checked lazily as it is navigated; call
// Validate for a full structural check up front.
func Open(buf []byte, opts ...Option) (View, error) {
	config, err := options.Build(&Config{}, opts...)
	if err != nil {
		return View{}, err
	}

	root, err := section.Root(buf)
	if err != nil {
		return View{}, err
	}

	return View{buf: buf, entry: root, strict: config.strictUTF8}, nil
}

// Type returns the type of the referenced value.
func (v View) Type() format.Type {
	return v.entry.Type
}

// Bytes returns the raw body of the value, aliasing the document buffer.
// For inline scalars inside a container this is the value's slot prefix.
func (v View) Bytes() []byte {
	return v.buf[v.entry.Off:v.entry.End():v.entry.End()]
}

// Offset returns the absolute offset of the value's body in the document.
func (v View) Offset() int {
	return v.entry.Off
}

func (v View) mismatch(op string, expected string) error {
	return &errs.TypeMismatchError{Op: op, Expected: expected, Actual: v.Type().String()}
}

func (v View) child(e section.Entry) View {
	return View{buf: v.buf, entry: e, strict: v.strict}
}

// ==============================================================================
// Scalars
// ==============================================================================

// Scalar reads a Null, Bool, Int64, UInt64, Double or String value.
// Containers fail with errs.ErrTypeMismatch.
func (v View) Scalar() (value.Value, error) {
	switch v.Type() {
	case format.TypeNull:
		return value.Null(), nil
	case format.TypeBool:
		b, err := v.Bool()
		return value.Bool(b), err
	case format.TypeInt64:
		i, err := v.Int64()
		return value.Int64(i), err
	case format.TypeUInt64:
		u, err := v.Uint64()
		return value.Uint64(u), err
	case format.TypeDouble:
		f, err := v.Float64()
		return value.Double(f), err
	case format.TypeString:
		s, err := v.Text()
		return value.String(s), err
	case format.TypeArray, format.TypeObject, format.TypeInvalid:
	}

	return value.Value{}, v.mismatch("Scalar", "scalar")
}

// Bool reads a Bool value.
func (v View) Bool() (bool, error) {
	if v.Type() != format.TypeBool {
		return false, v.mismatch("Bool", "Bool")
	}

	b := v.buf[v.entry.Off]
	if b > 1 {
		return false, errs.Corrupt(v.entry.Off, "bool byte 0x%02x", b)
	}

	return b == 1, nil
}

// Int64 reads an Int64 value.
func (v View) Int64() (int64, error) {
	if v.Type() != format.TypeInt64 {
		return 0, v.mismatch("Int64", "Int64")
	}

	return int64(section.Uint64At(v.buf, v.entry.Off)), nil //nolint:gosec
}

// Uint64 reads a UInt64 value.
func (v View) Uint64() (uint64, error) {
	if v.Type() != format.TypeUInt64 {
		return 0, v.mismatch("Uint64", "UInt64")
	}

	return section.Uint64At(v.buf, v.entry.Off), nil
}

// Float64 reads a Double value.
func (v View) Float64() (float64, error) {
	if v.Type() != format.TypeDouble {
		return 0, v.mismatch("Float64", "Double")
	}

	return math.Float64frombits(section.Uint64At(v.buf, v.entry.Off)), nil
}

// RawText returns the bytes of a String value, aliasing the document buffer.
// The bytes are not checked for UTF-8, even in strict mode.
func (v View) RawText() ([]byte, error) {
	if v.Type() != format.TypeString {
		return nil, v.mismatch("Text", "String")
	}

	return section.StringBytes(v.buf, v.entry)
}

// Text reads a String value into a new string.
func (v View) Text() (string, error) {
	raw, err := v.RawText()
	if err != nil {
		return "", err
	}
	if err := v.checkUTF8(raw, v.entry.Off); err != nil {
		return "", err
	}

	return string(raw), nil
}

func (v View) checkUTF8(b []byte, off int) error {
	if v.strict && !utf8.Valid(b) {
		return fmt.Errorf("%w: string at offset %d", errs.ErrInvalidUTF8, off)
	}

	return nil
}

// ==============================================================================
// Containers
// ==============================================================================

func (v View) container(op string, want format.Type) (section.Container, error) {
	if v.Type() != want && (want != format.TypeInvalid || !v.Type().IsContainer()) {
		expected := want.String()
		if want == format.TypeInvalid {
			expected = "Array or Object"
		}

		return section.Container{}, v.mismatch(op, expected)
	}

	return section.OpenContainer(v.buf, v.entry)
}

// Len returns the number of elements of an Array or members of an Object.
func (v View) Len() (int, error) {
	c, err := v.container("Len", format.TypeInvalid)
	if err != nil {
		return 0, err
	}

	return c.Count, nil
}

// Get looks up key in an Object by binary search over the sorted key table.
//
// Returns:
//   - View: the member's value when found
//   - bool: false if the key is absent, which is not an error
//   - error: errs.ErrTypeMismatch if v is not an Object, errs.ErrCorruptEncoding
func (v View) Get(key string) (View, bool, error) {
	c, err := v.container("Get", format.TypeObject)
	if err != nil {
		return View{}, false, err
	}

	lo, hi := 0, c.Count
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		k, err := c.Key(v.buf, mid)
		if err != nil {
			return View{}, false, err
		}

		switch cmp := bytes.Compare(k, unsafe.Slice(unsafe.StringData(key), len(key))); {
		case cmp < 0:
			lo = mid + 1
		case cmp > 0:
			hi = mid
		default:
			e, err := c.Value(v.buf, mid)
			if err != nil {
				return View{}, false, err
			}

			return v.child(e), true, nil
		}
	}

	return View{}, false, nil
}

// Index returns element i of an Array. Negative indices count from the end, so -1 is
// the last element.
//
// Returns:
//   - View: the element when i is in range
//   - bool: false if i is out of range, which is not an error
//   - error: errs.ErrTypeMismatch if v is not an Array, errs.ErrCorruptEncoding
func (v View) Index(i int) (View, bool, error) {
	c, err := v.container("Index", format.TypeArray)
	if err != nil {
		return View{}, false, err
	}

	if i < 0 {
		i += c.Count
	}
	if i < 0 || i >= c.Count {
		return View{}, false, nil
	}

	e, err := c.Value(v.buf, i)
	if err != nil {
		return View{}, false, err
	}

	return v.child(e), true, nil
}

// at reads member or element i of the container being walked by w.
func (v View) at(c section.Container, w *section.Walk, i int) (string, View, error) {
	var key string
	if c.Type == format.TypeObject {
		k, err := c.Key(v.buf, i)
		if err != nil {
			return "", View{}, err
		}
		if err := v.checkUTF8(k, c.KeyTableOffset()+i*section.KeyEntrySize); err != nil {
			return "", View{}, err
		}
		key = string(k)
	}

	e, err := w.Value(v.buf, i)
	if err != nil {
		return "", View{}, err
	}

	return key, v.child(e), nil
}
