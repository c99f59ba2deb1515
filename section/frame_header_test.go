package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bjson/errs"
	"github.com/arloliu/bjson/format"
)

func TestNewFrameHeader(t *testing.T) {
	h := NewFrameHeader(format.CompressionZstd)
	require.Equal(t, uint16(FrameMagic), h.Magic)
	require.Equal(t, uint8(FrameVersion), h.Version)
	require.Equal(t, format.CompressionZstd, h.Compression)
}

func TestFrameHeader_Parse(t *testing.T) {
	t.Run("Valid header", func(t *testing.T) {
		original := NewFrameHeader(format.CompressionLZ4)
		original.UncompressedSize = 1000
		original.StoredSize = 321
		original.Checksum = 0xDEADBEEFCAFEBABE

		data := original.Bytes()
		require.Len(t, data, FrameHeaderSize)
		require.Equal(t, []byte{0x42, 0x4A}, data[0:2])

		parsed, err := ParseFrameHeader(data)
		require.NoError(t, err)
		require.Equal(t, original, parsed)
	})

	t.Run("Invalid size", func(t *testing.T) {
		h := &FrameHeader{}
		require.ErrorIs(t, h.Parse([]byte{1, 2, 3}), errs.ErrInvalidFrameHeaderSize)

		_, err := ParseFrameHeader(make([]byte, FrameHeaderSize-1))
		require.ErrorIs(t, err, errs.ErrInvalidFrameHeaderSize)
	})

	t.Run("Invalid magic number", func(t *testing.T) {
		h := NewFrameHeader(format.CompressionNone)
		data := h.Bytes()
		data[0] = 0
		_, err := ParseFrameHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})

	t.Run("Unknown version", func(t *testing.T) {
		h := NewFrameHeader(format.CompressionNone)
		h.Version = 9
		_, err := ParseFrameHeader(h.Bytes())
		require.ErrorIs(t, err, errs.ErrInvalidFrame)
	})

	t.Run("Reserved bytes", func(t *testing.T) {
		h := NewFrameHeader(format.CompressionNone)
		data := h.Bytes()
		data[23] = 1
		_, err := ParseFrameHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidFrame)
	})

	t.Run("Unknown compression", func(t *testing.T) {
		h := NewFrameHeader(format.CompressionType(0x0F))
		_, err := ParseFrameHeader(h.Bytes())
		require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
	})
}
