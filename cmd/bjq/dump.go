package main

import (
	"fmt"

	"github.com/arloliu/bjson/jsontext"
	"github.com/arloliu/bjson/transcode"
	"github.com/arloliu/bjson/view"
)

func runDump(e *env, args []string) error {
	var (
		verbose      bool
		outputFormat string
		indent       bool
		validate     bool
		strictUTF8   bool
	)

	fs := newFlagSet(e, "dump", &verbose)
	fs.StringVarP(&outputFormat, "format", "f", "json", "output format: json, yaml or cbor")
	fs.BoolVar(&indent, "indent", false, "indent JSON output")
	fs.BoolVar(&validate, "validate", false, "check the whole document for corruption before dumping")
	fs.BoolVar(&strictUTF8, "strict-utf8", false, "fail on strings that are not valid UTF-8 (implies --validate)")

	rest, err := parseFlags(e, fs, &verbose, args, 1)
	if err != nil {
		return err
	}

	doc, err := readDocument(e, rest[0])
	if err != nil {
		return err
	}
	root, err := view.Open(doc, view.WithStrictUTF8(strictUTF8))
	if err != nil {
		return err
	}
	if validate || strictUTF8 {
		if err := root.Validate(); err != nil {
			return err
		}
		e.logger.Debug("document is valid", "bytes", len(doc), "root", root.Type())
	}

	switch outputFormat {
	case "json":
		var opts []jsontext.Option
		if indent {
			opts = append(opts, jsontext.WithIndent("", "  "))
		}
		text, err := jsontext.MarshalView(root, opts...)
		if err != nil {
			return err
		}

		return writeLine(e, text)
	case "yaml", "yml", "cbor":
		v, err := root.Materialize()
		if err != nil {
			return err
		}

		var out []byte
		if outputFormat == "cbor" {
			out, err = transcode.ToCBOR(v)
		} else {
			out, err = transcode.ToYAML(v)
		}
		if err != nil {
			return err
		}
		_, err = e.stdout.Write(out)

		return err
	default:
		return fmt.Errorf("unknown output format %q", outputFormat)
	}
}
