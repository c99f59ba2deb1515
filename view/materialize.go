package view

import (
	"bytes"
	"fmt"

	"github.com/arloliu/bjson/errs"
	"github.com/arloliu/bjson/format"
	"github.com/arloliu/bjson/section"
	"github.com/arloliu/bjson/value"
)

// Materialize decodes the referenced value and everything below it into a value tree.
// Objects come back with members in ascending key order.
func (v View) Materialize() (value.Value, error) {
	if !v.Type().IsContainer() {
		return v.Scalar()
	}

	c, err := section.OpenContainer(v.buf, v.entry)
	if err != nil {
		return value.Value{}, err
	}

	w := c.Walk()
	if c.Type == format.TypeArray {
		elems := make([]value.Value, c.Count)
		for i := range c.Count {
			_, elem, err := v.at(c, &w, i)
			if err != nil {
				return value.Value{}, err
			}
			if elems[i], err = elem.Materialize(); err != nil {
				return value.Value{}, err
			}
		}

		return value.Array(elems...), nil
	}

	members := make([]value.Member, c.Count)
	for i := range c.Count {
		key, elem, err := v.at(c, &w, i)
		if err != nil {
			return value.Value{}, err
		}
		val, err := elem.Materialize()
		if err != nil {
			return value.Value{}, err
		}
		members[i] = value.KV(key, val)
	}

	return value.Object(members...), nil
}

// Validate walks the whole value and checks every structural invariant: tags, bounds,
// length prefixes, strictly increasing object keys, zeroed slot padding and, in strict
// mode, UTF-8 of strings and keys. Container payloads must follow the encoder's
// layout exactly: object key bytes first, then indirect bodies in table order, with
// no gaps, overlaps or trailing bytes.
func (v View) Validate() error {
	if !v.Type().IsValid() {
		return v.mismatch("Validate", "value")
	}

	return v.validate()
}

func (v View) validate() error {
	if err := section.CheckBody(v.buf, v.entry); err != nil {
		return err
	}

	switch v.Type() { //nolint: exhaustive
	case format.TypeString:
		_, err := v.Text()
		return err
	case format.TypeArray, format.TypeObject:
	default:
		return nil
	}

	c, err := section.OpenContainer(v.buf, v.entry)
	if err != nil {
		return err
	}

	payloadEnd := c.Off + c.PayloadOffset()
	if c.Type == format.TypeObject {
		var prev []byte
		for i := range c.Count {
			at := c.KeyTableOffset() + i*section.KeyEntrySize
			start, end, err := c.KeySpan(v.buf, i)
			if err != nil {
				return err
			}
			if start != payloadEnd {
				return errs.Corrupt(at, "key bytes start at %d, want %d", start, payloadEnd)
			}

			k := v.buf[start:end]
			if i > 0 && bytes.Compare(prev, k) >= 0 {
				return errs.Corrupt(at, "key %q not greater than %q", k, prev)
			}
			if err := v.checkUTF8(k, at); err != nil {
				return err
			}
			prev = k
			payloadEnd = end
		}
	}

	for i := range c.Count {
		e, err := c.Value(v.buf, i)
		if err != nil {
			return err
		}
		if e.Type.IsInline() {
			for off := e.End(); off < e.Off+section.SlotSize; off++ {
				if v.buf[off] != 0 {
					return errs.Corrupt(off, "non-zero padding in %s slot", e.Type)
				}
			}
		} else {
			if e.Off != payloadEnd {
				return errs.Corrupt(e.Off, "%s body starts at %d, want %d", e.Type, e.Off, payloadEnd)
			}
			payloadEnd = e.End()
		}
		if err := v.child(e).validate(); err != nil {
			return err
		}
	}

	if payloadEnd != c.End() {
		return errs.Corrupt(payloadEnd, "%d unused bytes at end of %s", c.End()-payloadEnd, c.Type)
	}

	return nil
}

// Equal reports whether v and other hold structurally identical values. Doubles
// compare by bit pattern and objects compare member by member in key order, so two
// encodings of the same canonical value are always equal.
func (v View) Equal(other View) (bool, error) {
	if v.Type() != other.Type() {
		return false, nil
	}

	switch v.Type() {
	case format.TypeNull, format.TypeBool, format.TypeInt64, format.TypeUInt64, format.TypeDouble:
		return bytes.Equal(v.Bytes(), other.Bytes()), nil
	case format.TypeString:
		a, err := v.RawText()
		if err != nil {
			return false, err
		}
		b, err := other.RawText()
		if err != nil {
			return false, err
		}

		return bytes.Equal(a, b), nil
	case format.TypeArray, format.TypeObject:
		return v.equalContainer(other)
	case format.TypeInvalid:
	}

	return true, nil
}

func (v View) equalContainer(other View) (bool, error) {
	a, err := section.OpenContainer(v.buf, v.entry)
	if err != nil {
		return false, err
	}
	b, err := section.OpenContainer(other.buf, other.entry)
	if err != nil {
		return false, err
	}
	if a.Count != b.Count {
		return false, nil
	}

	wa, wb := a.Walk(), b.Walk()
	for i := range a.Count {
		if a.Type == format.TypeObject {
			ka, err := a.Key(v.buf, i)
			if err != nil {
				return false, err
			}
			kb, err := b.Key(other.buf, i)
			if err != nil {
				return false, err
			}
			if !bytes.Equal(ka, kb) {
				return false, nil
			}
		}

		ea, err := wa.Value(v.buf, i)
		if err != nil {
			return false, err
		}
		eb, err := wb.Value(other.buf, i)
		if err != nil {
			return false, err
		}
		if eq, err := v.child(ea).Equal(other.child(eb)); err != nil || !eq {
			return false, err
		}
	}

	return true, nil
}

// Standalone copies the referenced value into a new self-contained document that
// Open accepts. Container bodies use container-relative offsets, so the copy needs
// no rewriting.
func (v View) Standalone() ([]byte, error) {
	if !v.Type().IsValid() {
		return nil, v.mismatch("Standalone", "value")
	}

	body := v.Bytes()
	doc := make([]byte, section.PreambleSize+len(body))
	section.PutPreamble(doc, v.Type())
	copy(doc[section.PreambleSize:], body)

	return doc, nil
}

// String renders the value for debugging. Corrupt regions render as an error marker.
func (v View) String() string {
	val, err := v.Materialize()
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}

	return val.String()
}
