package main

import (
	"fmt"

	"github.com/arloliu/bjson/jsontext"
	"github.com/arloliu/bjson/path"
	"github.com/arloliu/bjson/view"
)

func runQuery(e *env, args []string) error {
	var (
		verbose bool
		lax     bool
		indent  bool
		count   bool
		first   bool
	)

	fs := newFlagSet(e, "query", &verbose)
	fs.BoolVar(&lax, "lax", false, "apply keys to array elements and subscripts to single values")
	fs.BoolVar(&indent, "indent", false, "indent each match")
	fs.BoolVarP(&count, "count", "c", false, "print the number of matches only")
	fs.BoolVar(&first, "first", false, "print the first match only")

	rest, err := parseFlags(e, fs, &verbose, args, 2)
	if err != nil {
		return err
	}

	expr, err := path.Parse(rest[1], path.WithLax(lax))
	if err != nil {
		return err
	}

	doc, err := readDocument(e, rest[0])
	if err != nil {
		return err
	}
	root, err := view.Open(doc)
	if err != nil {
		return err
	}

	if count {
		n, err := expr.Count(root)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(e.stdout, n)

		return err
	}

	var opts []jsontext.Option
	if indent {
		opts = append(opts, jsontext.WithIndent("", "  "))
	}

	matches := 0
	for match, err := range expr.Eval(root) {
		if err != nil {
			return err
		}
		text, err := jsontext.MarshalView(match, opts...)
		if err != nil {
			return err
		}
		if err := writeLine(e, text); err != nil {
			return err
		}
		matches++
		if first {
			break
		}
	}
	e.logger.Debug("query finished", "path", expr.String(), "lax", expr.Lax(), "matches", matches)

	return nil
}

func writeLine(e *env, text []byte) error {
	if len(text) > 0 && text[len(text)-1] == '\n' {
		_, err := e.stdout.Write(text)
		return err
	}
	_, err := fmt.Fprintf(e.stdout, "%s\n", text)

	return err
}
