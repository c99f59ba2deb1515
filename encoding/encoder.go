package encoding

import (
	"fmt"
	"math"
	"slices"
	"unicode/utf8"

	"github.com/arloliu/bjson/errs"
	"github.com/arloliu/bjson/format"
	"github.com/arloliu/bjson/internal/options"
	"github.com/arloliu/bjson/section"
	"github.com/arloliu/bjson/value"
)

// Encoder converts value trees into bjson documents.
type Encoder struct {
	*EncoderConfig
}

// NewEncoder creates an Encoder with the given options applied to the default config.
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	config, err := options.Build(NewEncoderConfig(), opts...)
	if err != nil {
		return nil, err
	}

	return &Encoder{EncoderConfig: config}, nil
}

// Encode encodes v with a one-off encoder built from opts.
func Encode(v value.Value, opts ...EncoderOption) ([]byte, error) {
	enc, err := NewEncoder(opts...)
	if err != nil {
		return nil, err
	}

	return enc.Encode(v)
}

// Encode returns the document for v in a newly allocated, exactly-sized slice.
//
// Returns:
//   - []byte: the encoded document
//   - error: errs.ErrDuplicateKey, errs.ErrInvalidUTF8 or errs.ErrValueTooLarge
func (e *Encoder) Encode(v value.Value) ([]byte, error) {
	return e.AppendEncode(nil, v)
}

// AppendEncode appends the document for v to dst and returns the extended slice.
// dst is grown at most once. On error dst is returned unchanged.
func (e *Encoder) AppendEncode(dst []byte, v value.Value) ([]byte, error) {
	root, err := e.plan(v)
	if err != nil {
		return dst, err
	}

	total := section.PreambleSize + int(root.size)
	start := len(dst)

	var out []byte
	if dst == nil {
		out = make([]byte, total)
	} else {
		out = slices.Grow(dst, total)[:start+total]
	}

	doc := out[start:]
	section.PutPreamble(doc, root.v.Type())
	emit(doc[section.PreambleSize:], &root)

	return out, nil
}

// node is the planned shape of one value: its body size and, for containers,
// the planned children in emit order.
type node struct {
	v        value.Value
	keys     []string // object keys after sorting and deduplication
	children []node
	size     uint64
}

func (e *Encoder) plan(v value.Value) (node, error) {
	n := node{v: v}

	switch v.Type() {
	case format.TypeNull, format.TypeBool, format.TypeInt64, format.TypeUInt64, format.TypeDouble:
		n.size = uint64(v.Type().InlineSize())
	case format.TypeString:
		s, _ := v.Text()
		if e.strictUTF8 && !utf8.ValidString(s) {
			return node{}, fmt.Errorf("%w: string %q", errs.ErrInvalidUTF8, s)
		}
		n.size = section.StringHeaderSize + uint64(len(s))
	case format.TypeArray:
		elems := v.Elements()
		n.children = make([]node, len(elems))
		n.size = section.ContainerHeaderSize + uint64(len(elems))*section.ValueEntrySize
		for i, elem := range elems {
			child, err := e.plan(elem)
			if err != nil {
				return node{}, err
			}
			n.children[i] = child
			n.size += child.payloadSize()
		}
	case format.TypeObject:
		members, err := value.SortMembers(v.Members(), e.duplicates)
		if err != nil {
			return node{}, err
		}
		n.keys = make([]string, len(members))
		n.children = make([]node, len(members))
		n.size = section.ContainerHeaderSize + uint64(len(members))*section.ObjectEntrySize
		for i, m := range members {
			if e.strictUTF8 && !utf8.ValidString(m.Key) {
				return node{}, fmt.Errorf("%w: key %q", errs.ErrInvalidUTF8, m.Key)
			}
			child, err := e.plan(m.Value)
			if err != nil {
				return node{}, err
			}
			n.keys[i] = m.Key
			n.children[i] = child
			n.size += uint64(len(m.Key)) + child.payloadSize()
		}
	case format.TypeInvalid:
		return node{}, fmt.Errorf("%w: invalid value", errs.ErrUnsupportedValue)
	}

	// the root adds a preamble, so keep headroom for it as well
	if n.size > section.MaxLength-section.PreambleSize {
		return node{}, fmt.Errorf("%w: %s body of %d bytes", errs.ErrValueTooLarge, v.Type(), n.size)
	}

	return n, nil
}

// payloadSize is the number of bytes n occupies in its parent's payload region.
// Inline scalars live in the value table slot and take none.
func (n *node) payloadSize() uint64 {
	if n.v.Type().IsInline() {
		return 0
	}

	return n.size
}

// slot returns the 8-byte inline representation of a scalar.
func slot(v value.Value) uint64 {
	switch v.Type() { //nolint: exhaustive
	case format.TypeBool:
		if b, _ := v.Bool(); b {
			return 1
		}
	case format.TypeInt64:
		i, _ := v.Int64()
		return uint64(i) //nolint:gosec
	case format.TypeUInt64:
		u, _ := v.Uint64()
		return u
	case format.TypeDouble:
		f, _ := v.Double()
		return math.Float64bits(f)
	}

	return 0
}

// emit writes the body of n into dst, which is exactly n.size bytes long.
func emit(dst []byte, n *node) {
	switch n.v.Type() {
	case format.TypeNull:
	case format.TypeBool:
		dst[0] = byte(slot(n.v))
	case format.TypeInt64, format.TypeUInt64, format.TypeDouble:
		section.PutUint64(dst, slot(n.v))
	case format.TypeString:
		s, _ := n.v.Text()
		section.PutUint32(dst, uint32(len(s))) //nolint:gosec
		copy(dst[section.StringHeaderSize:], s)
	case format.TypeArray:
		emitArray(dst, n)
	case format.TypeObject:
		emitObject(dst, n)
	case format.TypeInvalid:
	}
}

func emitArray(dst []byte, n *node) {
	count := len(n.children)
	section.PutContainerHeader(dst, uint32(n.size), uint32(count)) //nolint:gosec

	entry := section.ContainerHeaderSize
	cursor := uint64(section.ContainerHeaderSize + count*section.ValueEntrySize)
	for i := range n.children {
		cursor = emitEntry(dst, entry, cursor, &n.children[i])
		entry += section.ValueEntrySize
	}
}

func emitObject(dst []byte, n *node) {
	count := len(n.children)
	section.PutContainerHeader(dst, uint32(n.size), uint32(count)) //nolint:gosec

	keyEntry := section.ContainerHeaderSize
	valueEntry := keyEntry + count*section.KeyEntrySize
	keyCursor := uint64(valueEntry + count*section.ValueEntrySize)
	for _, k := range n.keys {
		section.PutKeyEntry(dst[keyEntry:], uint32(keyCursor), uint32(len(k))) //nolint:gosec
		copy(dst[keyCursor:], k)
		keyEntry += section.KeyEntrySize
		keyCursor += uint64(len(k))
	}

	cursor := keyCursor
	for i := range n.children {
		cursor = emitEntry(dst, valueEntry, cursor, &n.children[i])
		valueEntry += section.ValueEntrySize
	}
}

// emitEntry writes the value table entry at dst[entry:] for child and, for indirect
// values, its body at dst[cursor:]. It returns the payload cursor after the body.
func emitEntry(dst []byte, entry int, cursor uint64, child *node) uint64 {
	tag := child.v.Type()
	if tag.IsInline() {
		section.PutInlineEntry(dst[entry:], tag, slot(child.v))
		return cursor
	}

	section.PutIndirectEntry(dst[entry:], tag, uint32(cursor), uint32(child.size)) //nolint:gosec
	end := cursor + child.size
	emit(dst[cursor:end:end], child)

	return end
}
