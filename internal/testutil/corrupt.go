// Package testutil builds malformed documents for tests of the navigator and the
// packages layered on it.
package testutil

import (
	"github.com/arloliu/bjson/format"
	"github.com/arloliu/bjson/section"
)

// AliasedArrays builds a document of depth nested two-element arrays in which both
// entries of every level point at the same child body. Every header and entry is in
// bounds, so only an in-order walk detects the sharing. A reader that follows both
// entries does 2^depth work.
func AliasedArrays(depth int) []byte {
	body := make([]byte, section.EmptyContainerSize)
	section.PutContainerHeader(body, section.EmptyContainerSize, 0)

	const tables = section.ContainerHeaderSize + 2*section.ValueEntrySize
	for range depth {
		next := make([]byte, tables+len(body))
		section.PutContainerHeader(next, uint32(len(next)), 2) //nolint: gosec
		for i := range 2 {
			at := section.ContainerHeaderSize + i*section.ValueEntrySize
			section.PutIndirectEntry(next[at:], format.TypeArray, tables, uint32(len(body))) //nolint: gosec
		}
		copy(next[tables:], body)
		body = next
	}

	return Document(format.TypeArray, body)
}

// Document prefixes body with the preamble of a version 1 document.
func Document(root format.Type, body []byte) []byte {
	doc := make([]byte, section.PreambleSize+len(body))
	section.PutPreamble(doc, root)
	copy(doc[section.PreambleSize:], body)

	return doc
}
