// Package path parses and evaluates path expressions against bjson documents.
//
// A path selects zero or more values from a document without decoding it. It is parsed
// once into a sequence of selectors and can then be evaluated against any number of
// documents, concurrently if needed.
//
// # Grammar
//
//	path       = [ "$" ] { selector } [ method ]
//	selector   = "." name | "." quoted | ".*"
//	           | ".." name | ".." quoted | "..*"
//	           | "[" subscript { "," subscript } "]" | "[*]" | "[" quoted "]"
//	           | "**"
//	name       = ( ALPHA | "_" | non-ASCII ) { ALPHA | DIGIT | "_" | "-" | non-ASCII }
//	quoted     = '"' { JSON string character or escape } '"'
//	subscript  = index [ "to" index ]
//	index      = [ "-" ] DIGITS | "last" [ "-" DIGITS ]
//	method     = "." ( "size" | "type" | "count" ) "(" ")"
//
// Whitespace is allowed between selectors and between the tokens inside brackets.
// Keys containing ".", "[" or any character outside the name charset are written
// quoted: ."a.b" or ["a[0]"]. "..name" is shorthand for "**.name" and ".*" is the
// same as "[*]". "**" may not directly follow another "**".
//
// # Semantics
//
// Evaluation starts from the single root value and applies selectors left to right:
//
//   - .key keeps the member named key of every Object; other values are dropped.
//   - [n] keeps element n of every Array, negative n counting from the end; "last"
//     is the final element and "last-2" the one two before it. Out of range
//     indices and non-Arrays are dropped.
//   - [a to b] keeps the inclusive range between a and b in ascending order, clamped
//     to the array bounds; [i, j, ...] keeps the listed subscripts in listed order.
//   - [*] expands every Array into its elements and every Object into its values in
//     key order; scalars are dropped.
//   - ** expands every value into itself followed by all its descendants in pre-order.
//   - .size() replaces every match with its element count if it is an Array and 1
//     otherwise; .type() replaces it with its type name ("Object", "Int64", ...).
//   - .count() replaces the whole result with the number of matches.
//
// Item method results are not part of the queried document: each is returned as a
// view of a small document of its own. -0 is the same index as 0.
//
// An absent key or index simply produces no match; only malformed documents produce
// errors during evaluation.
//
// In lax mode (WithLax), .key applied to an Array applies to each element instead,
// and subscripts applied to a non-Array treat the value as a one-element array, so
// $.a[0] also matches when a holds a single value instead of an array.
//
// # Basic Usage
//
//	expr, err := path.Parse(`$.store.book[*].author`)
//	if err != nil {
//	    return err
//	}
//
//	for author, err := range expr.Eval(root) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(author)
//	}
package path
