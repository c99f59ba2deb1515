package main

import (
	"fmt"
	"io"
	"os"

	"github.com/arloliu/bjson/frame"
)

func readInput(e *env, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(e.stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return data, nil
}

func writeOutput(e *env, name string, data []byte) error {
	if name == "-" {
		_, err := e.stdout.Write(data)
		return err
	}

	if err := os.WriteFile(name, data, 0o644); err != nil { //nolint: gosec
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

// readDocument reads an encoded file, unpacking it if it is a storage frame.
func readDocument(e *env, name string) ([]byte, error) {
	data, err := readInput(e, name)
	if err != nil {
		return nil, err
	}
	if !frame.IsFrame(data) {
		e.logger.Debug("read document", "file", name, "bytes", len(data))
		return data, nil
	}

	doc, err := frame.Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("unpacking %s: %w", name, err)
	}
	e.logger.Debug("unpacked frame", "file", name, "stored", len(data), "document", len(doc))

	return doc, nil
}
