package path

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/buger/jsonparser"

	"github.com/arloliu/bjson/errs"
	"github.com/arloliu/bjson/internal/options"
)

type selectorKind uint8

const (
	selectKey selectorKind = iota + 1
	selectWildcard
	selectSubscripts
	selectDescendants
	selectMethod
)

// method is an item method. Methods replace each match, or the whole result for
// count(), with a computed scalar.
type method uint8

const (
	methodSize method = iota + 1
	methodType
	methodCount
)

var methods = map[string]method{
	"size":  methodSize,
	"type":  methodType,
	"count": methodCount,
}

func (k selectorKind) String() string {
	switch k {
	case selectKey:
		return "key"
	case selectWildcard:
		return "wildcard"
	case selectSubscripts:
		return "subscripts"
	case selectDescendants:
		return "descendants"
	case selectMethod:
		return "method"
	default:
		return "unknown"
	}
}

// index is one array position. fromEnd positions resolve against the array length:
// -1 and "last" both become len-1.
type index struct {
	n       int
	fromEnd bool
}

func (i index) resolve(length int) int {
	if i.fromEnd {
		return length + i.n
	}

	return i.n
}

// subscript is a single index, or an inclusive range when hasTo is set.
type subscript struct {
	from  index
	to    index
	hasTo bool
}

type selector struct {
	kind       selectorKind
	key        string
	method     method
	subscripts []subscript
	// afterDescent disables lax array mapping for a key directly after "**", which
	// already visits every array element.
	afterDescent bool
}

// Expr is a parsed path expression. It is immutable and safe for concurrent use.
type Expr struct {
	src       string
	selectors []selector
	lax       bool
	counts    bool // the path ends in count()
}

// Parse compiles a path expression.
//
// Returns:
//   - *Expr: the compiled expression
//   - error: a *errs.PathSyntaxError (unwrapping to errs.ErrInvalidPathSyntax) that
//     carries the byte position of the problem
func Parse(src string, opts ...Option) (*Expr, error) {
	config, err := options.Build(&Config{}, opts...)
	if err != nil {
		return nil, err
	}

	p := parser{src: src}
	selectors, err := p.parse()
	if err != nil {
		return nil, err
	}

	e := &Expr{src: src, selectors: selectors, lax: config.lax}
	if n := len(selectors); n > 0 && selectors[n-1].kind == selectMethod && selectors[n-1].method == methodCount {
		e.selectors, e.counts = selectors[:n-1], true
	}

	return e, nil
}

// MustParse is like Parse but panics on error. It simplifies initialization of
// package-level expressions.
func MustParse(src string, opts ...Option) *Expr {
	e, err := Parse(src, opts...)
	if err != nil {
		panic(err)
	}

	return e
}

// String returns the source text of the expression.
func (e *Expr) String() string {
	return e.src
}

// Lax reports whether the expression was parsed in lax mode.
func (e *Expr) Lax() bool {
	return e.lax
}

type parser struct {
	src string
	pos int
	out []selector
}

func (p *parser) fail(pos int, reason string) error {
	return &errs.PathSyntaxError{Path: p.src, Pos: pos, Reason: reason}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}

	return p.src[p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) parse() ([]selector, error) {
	p.skipSpace()
	if p.peek() == '$' {
		p.pos++
	}

	for {
		p.skipSpace()
		if p.eof() {
			return p.out, nil
		}

		var err error
		switch p.peek() {
		case '.':
			err = p.parseDot()
		case '[':
			err = p.parseBracket()
		case '*':
			err = p.parseDescent()
		default:
			err = p.fail(p.pos, "unexpected character at start of selector")
		}
		if err != nil {
			return nil, err
		}
	}
}

func (p *parser) push(s selector) {
	if n := len(p.out); n > 0 && p.out[n-1].kind == selectDescendants {
		s.afterDescent = true
	}
	p.out = append(p.out, s)
}

func (p *parser) pushDescent(at int) error {
	if n := len(p.out); n > 0 && p.out[n-1].kind == selectDescendants {
		return p.fail(at, "recursive descent cannot follow recursive descent")
	}
	p.out = append(p.out, selector{kind: selectDescendants})

	return nil
}

// parseDescent parses "**".
func (p *parser) parseDescent() error {
	start := p.pos
	if !strings.HasPrefix(p.src[p.pos:], "**") {
		return p.fail(start, `expected "**"`)
	}
	p.pos += 2

	return p.pushDescent(start)
}

// parseDot parses ".name", ".\"quoted\"", ".*" and their ".." forms.
func (p *parser) parseDot() error {
	start := p.pos
	p.pos++ // '.'

	if p.peek() == '.' {
		p.pos++
		if err := p.pushDescent(start); err != nil {
			return err
		}
	}

	switch c := p.peek(); {
	case c == '*':
		p.pos++
		p.push(selector{kind: selectWildcard})
		return nil
	case c == '"':
		key, err := p.parseQuoted()
		if err != nil {
			return err
		}
		p.push(selector{kind: selectKey, key: key})

		return nil
	default:
		nameAt := p.pos
		key, err := p.parseName()
		if err != nil {
			return err
		}
		if p.peek() == '(' {
			return p.parseMethod(nameAt, key)
		}
		p.push(selector{kind: selectKey, key: key})

		return nil
	}
}

// parseMethod parses the "()" after an item method name. A method must end the path.
func (p *parser) parseMethod(at int, name string) error {
	m, ok := methods[name]
	if !ok {
		return p.fail(at, "unknown item method "+name+"()")
	}

	p.pos++ // '('
	p.skipSpace()
	if p.peek() != ')' {
		return p.fail(p.pos, `expected ")"`)
	}
	p.pos++

	p.skipSpace()
	if !p.eof() {
		return p.fail(p.pos, "item method must end the path")
	}
	p.push(selector{kind: selectMethod, method: m})

	return nil
}

func isNameStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r >= utf8.RuneSelf
}

func isNamePart(r rune) bool {
	return isNameStart(r) || r == '-' || (r >= '0' && r <= '9')
}

func (p *parser) parseName() (string, error) {
	start := p.pos
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if r == utf8.RuneError && size == 1 {
			return "", p.fail(p.pos, "invalid UTF-8 in member name")
		}

		ok := isNamePart(r)
		if p.pos == start {
			ok = isNameStart(r)
		}
		if !ok {
			break
		}
		p.pos += size
	}

	if p.pos == start {
		return "", p.fail(start, "expected member name")
	}

	return p.src[start:p.pos], nil
}

// parseQuoted parses a double-quoted JSON string starting at the opening quote.
func (p *parser) parseQuoted() (string, error) {
	start := p.pos
	p.pos++ // '"'

	escaped := false
	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case c == '\\':
			escaped = true
			p.pos++
			if p.eof() {
				return "", p.fail(start, "unclosed quoted key")
			}
		case c == '"':
			raw := p.src[start+1 : p.pos]
			p.pos++
			if !escaped {
				return raw, nil
			}

			out, err := jsonparser.Unescape([]byte(raw), nil)
			if err != nil {
				return "", p.fail(start, "invalid escape sequence in quoted key")
			}

			return string(out), nil
		case c < 0x20:
			return "", p.fail(p.pos, "control character in quoted key")
		}
		p.pos++
	}

	return "", p.fail(start, "unclosed quoted key")
}

// parseBracket parses "[*]", "[\"quoted\"]" and subscript lists.
func (p *parser) parseBracket() error {
	start := p.pos
	p.pos++ // '['
	p.skipSpace()

	switch p.peek() {
	case '*':
		p.pos++
		if err := p.closeBracket(start); err != nil {
			return err
		}
		p.push(selector{kind: selectWildcard})

		return nil
	case '"':
		key, err := p.parseQuoted()
		if err != nil {
			return err
		}
		if err := p.closeBracket(start); err != nil {
			return err
		}
		p.push(selector{kind: selectKey, key: key})

		return nil
	case ']':
		return p.fail(p.pos, "empty array subscript")
	}

	var subs []subscript
	for {
		sub, err := p.parseSubscript()
		if err != nil {
			return err
		}
		subs = append(subs, sub)

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case ']':
			p.pos++
			p.push(selector{kind: selectSubscripts, subscripts: subs})

			return nil
		default:
			if p.eof() {
				return p.fail(start, "missing closing bracket")
			}

			return p.fail(p.pos, `expected "," or "]" in array subscript`)
		}
	}
}

func (p *parser) closeBracket(start int) error {
	p.skipSpace()
	if p.eof() {
		return p.fail(start, "missing closing bracket")
	}
	if p.peek() != ']' {
		return p.fail(p.pos, `expected "]"`)
	}
	p.pos++

	return nil
}

func (p *parser) parseSubscript() (subscript, error) {
	from, err := p.parseIndex()
	if err != nil {
		return subscript{}, err
	}

	p.skipSpace()
	if !strings.HasPrefix(p.src[p.pos:], "to") {
		return subscript{from: from}, nil
	}
	p.pos += 2

	to, err := p.parseIndex()
	if err != nil {
		return subscript{}, err
	}

	return subscript{from: from, to: to, hasTo: true}, nil
}

func (p *parser) parseIndex() (index, error) {
	p.skipSpace()

	if strings.HasPrefix(p.src[p.pos:], "last") {
		p.pos += 4
		p.skipSpace()
		if p.peek() != '-' {
			return index{n: -1, fromEnd: true}, nil
		}
		p.pos++
		p.skipSpace()

		n, err := p.parseDigits()
		if err != nil {
			return index{}, err
		}

		return index{n: -1 - n, fromEnd: true}, nil
	}

	if p.peek() == '-' {
		p.pos++
		n, err := p.parseDigits()
		if err != nil {
			return index{}, err
		}
		if n == 0 {
			return index{}, nil
		}

		return index{n: -n, fromEnd: true}, nil
	}

	n, err := p.parseDigits()
	if err != nil {
		return index{}, err
	}

	return index{n: n}, nil
}

// maxIndex keeps every resolved position representable as an int on all platforms.
const maxIndex = math.MaxInt32

func (p *parser) parseDigits() (int, error) {
	start := p.pos
	n := 0
	for !p.eof() && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		n = n*10 + int(p.src[p.pos]-'0')
		if n > maxIndex {
			return 0, p.fail(start, "array index too large")
		}
		p.pos++
	}

	if p.pos == start {
		return 0, p.fail(start, "expected array index")
	}

	return n, nil
}
