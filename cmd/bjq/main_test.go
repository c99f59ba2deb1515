package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arloliu/bjson/errs"
	"github.com/arloliu/bjson/frame"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inventoryJSON = `{"warehouse":"north","items":[{"sku":"a-1","qty":4},{"sku":"b-2","qty":0},{"sku":"c-3","qty":12}]}`

// runCmd runs bjq with the given arguments and returns stdout and stderr.
func runCmd(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := run(args, strings.NewReader(stdin), &stdout, &stderr)

	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))

	return p
}

func encodeFixture(t *testing.T, extra ...string) string {
	t.Helper()

	in := writeFile(t, "inventory.json", inventoryJSON)
	out := filepath.Join(t.TempDir(), "inventory.bj")
	args := append([]string{"encode"}, extra...)
	args = append(args, in, out)
	_, _, err := runCmd(t, "", args...)
	require.NoError(t, err)

	return out
}

// =============================================================================
// Commands
// =============================================================================

func TestEncodeDump(t *testing.T) {
	doc := encodeFixture(t)

	stdout, _, err := runCmd(t, "", "dump", doc)
	require.NoError(t, err)
	assert.Equal(t, `{"items":[{"qty":4,"sku":"a-1"},{"qty":0,"sku":"b-2"},{"qty":12,"sku":"c-3"}],"warehouse":"north"}`+"\n", stdout)

	stdout, _, err = runCmd(t, "", "dump", "--validate", "--indent", doc)
	require.NoError(t, err)
	assert.Contains(t, stdout, "\n  \"warehouse\": \"north\"")

	stdout, _, err = runCmd(t, "", "dump", "--format", "yaml", doc)
	require.NoError(t, err)
	assert.Contains(t, stdout, "warehouse: north")
}

func TestEncode_FramedCompressed(t *testing.T) {
	doc := encodeFixture(t, "--compression", "zstd")

	data, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.True(t, frame.IsFrame(data))

	stdout, _, err := runCmd(t, "", "query", doc, "$.warehouse")
	require.NoError(t, err)
	assert.Equal(t, "\"north\"\n", stdout)
}

func TestEncode_Stdin(t *testing.T) {
	stdout, _, err := runCmd(t, "name: demo\nports: [80, 443]\n", "encode", "--format", "yaml", "-", "-")
	require.NoError(t, err)

	doc := writeFile(t, "stdin.bj", stdout)
	out, _, err := runCmd(t, "", "query", doc, "$.ports[last]")
	require.NoError(t, err)
	assert.Equal(t, "443\n", out)
}

func TestEncode_Errors(t *testing.T) {
	bad := writeFile(t, "bad.json", `{"a":`)
	_, _, err := runCmd(t, "", "encode", bad, "-")
	require.ErrorIs(t, err, errs.ErrInvalidJSON)

	dup := writeFile(t, "dup.json", `{"a":1,"a":2}`)
	_, _, err = runCmd(t, "", "encode", "--reject-duplicates", dup, "-")
	require.ErrorIs(t, err, errs.ErrDuplicateKey)

	_, _, err = runCmd(t, "", "encode", "--compression", "brotli", dup, "-")
	require.Error(t, err)

	_, _, err = runCmd(t, "", "encode", dup)
	require.Error(t, err)
}

func TestQuery(t *testing.T) {
	doc := encodeFixture(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"wildcard", []string{"$.items[*].sku"}, "\"a-1\"\n\"b-2\"\n\"c-3\"\n"},
		{"range", []string{"$.items[1 to last].qty"}, "0\n12\n"},
		{"first", []string{"--first", "$.items[*].qty"}, "4\n"},
		{"count", []string{"--count", "$..sku"}, "3\n"},
		{"lax", []string{"--lax", "$.items.qty"}, "4\n0\n12\n"},
		{"no match", []string{"$.nothing"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"query"}, tt.args[:len(tt.args)-1]...)
			args = append(args, doc, tt.args[len(tt.args)-1])
			stdout, _, err := runCmd(t, "", args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}

	t.Run("syntax error", func(t *testing.T) {
		_, _, err := runCmd(t, "", "query", doc, "$.items[")
		require.ErrorIs(t, err, errs.ErrInvalidPathSyntax)
	})
}

func TestVerboseLogging(t *testing.T) {
	doc := encodeFixture(t)

	_, stderr, err := runCmd(t, "", "query", "-v", doc, "$.warehouse")
	require.NoError(t, err)
	assert.Contains(t, stderr, "query finished")
	assert.Contains(t, stderr, "matches=1")

	_, stderr, err = runCmd(t, "", "query", doc, "$.warehouse")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestUsage(t *testing.T) {
	_, stderr, err := runCmd(t, "")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Commands:")

	_, _, err = runCmd(t, "", "frobnicate")
	require.Error(t, err)

	_, stderr, err = runCmd(t, "", "dump", "--help")
	require.ErrorIs(t, err, pflag.ErrHelp)
	assert.Contains(t, stderr, "bjq dump [flags] FILE")
}

func TestDump_CorruptFile(t *testing.T) {
	doc := writeFile(t, "corrupt.bj", "\xB1\x08\x01\x00")
	_, _, err := runCmd(t, "", "dump", "--validate", doc)
	require.ErrorIs(t, err, errs.ErrCorruptEncoding)
}
