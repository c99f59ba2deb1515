package main

import (
	"fmt"

	"github.com/arloliu/bjson/encoding"
	"github.com/arloliu/bjson/format"
	"github.com/arloliu/bjson/frame"
	"github.com/arloliu/bjson/jsontext"
	"github.com/arloliu/bjson/transcode"
	"github.com/arloliu/bjson/value"
)

func runEncode(e *env, args []string) error {
	var (
		verbose          bool
		inputFormat      string
		framed           bool
		compression      string
		rejectDuplicates bool
		strictUTF8       bool
	)

	fs := newFlagSet(e, "encode", &verbose)
	fs.StringVarP(&inputFormat, "format", "f", "json", "input format: json, jsonc, yaml or cbor")
	fs.BoolVar(&framed, "frame", false, "wrap the document in a checksummed storage frame")
	fs.StringVar(&compression, "compression", "none", "frame compression: none, zstd, s2 or lz4 (implies --frame)")
	fs.BoolVar(&rejectDuplicates, "reject-duplicates", false, "fail on duplicate object keys instead of keeping the last")
	fs.BoolVar(&strictUTF8, "strict-utf8", false, "fail on strings that are not valid UTF-8")

	rest, err := parseFlags(e, fs, &verbose, args, 2)
	if err != nil {
		return err
	}

	ct, ok := format.ParseCompressionType(compression)
	if !ok {
		return fmt.Errorf("unknown compression %q", compression)
	}
	if fs.Changed("compression") {
		framed = true
	}

	input, err := readInput(e, rest[0])
	if err != nil {
		return err
	}

	v, err := decodeInput(inputFormat, input)
	if err != nil {
		return err
	}

	opts := []encoding.EncoderOption{encoding.WithStrictUTF8(strictUTF8)}
	if rejectDuplicates {
		opts = append(opts, encoding.WithDuplicateKeys(value.DuplicateReject))
	}
	doc, err := encoding.Encode(v, opts...)
	if err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	e.logger.Debug("encoded document", "input_bytes", len(input), "document_bytes", len(doc), "root", v.Type())

	out := doc
	if framed {
		if out, err = frame.Pack(doc, frame.WithCompression(ct)); err != nil {
			return fmt.Errorf("framing: %w", err)
		}
		e.logger.Debug("packed frame", "compression", ct, "frame_bytes", len(out))
	}

	return writeOutput(e, rest[1], out)
}

func decodeInput(inputFormat string, data []byte) (value.Value, error) {
	switch inputFormat {
	case "json":
		return jsontext.Parse(data)
	case "jsonc":
		return jsontext.Parse(data, jsontext.WithComments(true))
	case "yaml", "yml":
		return transcode.FromYAML(data)
	case "cbor":
		return transcode.FromCBOR(data)
	default:
		return value.Value{}, fmt.Errorf("unknown input format %q", inputFormat)
	}
}
