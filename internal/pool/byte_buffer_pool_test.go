package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ByteBuffer Tests
// =============================================================================

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len(), "new buffer should have zero length")
	assert.Equal(t, 1024, cap(bb.B), "new buffer should have specified capacity")
}

func TestByteBuffer_WriteAndClone(t *testing.T) {
	bb := NewByteBuffer(4)

	bb.MustWrite([]byte("hello"))
	bb.B = append(bb.B, " world"...)
	assert.Equal(t, []byte("hello world"), bb.Bytes())
	assert.Equal(t, 11, bb.Len())

	out := bb.Clone()
	assert.Equal(t, bb.Bytes(), out)
	assert.Equal(t, len(out), cap(out), "clone is exactly sized")

	bb.Reset()
	bb.MustWrite([]byte("XXXXX"))
	assert.Equal(t, "hello world", string(out), "clone does not alias the buffer")
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(TextBufferDefaultSize)
	bb.MustWrite([]byte("some data"))
	originalCap := cap(bb.B)

	bb.Reset()

	assert.Equal(t, 0, bb.Len(), "Reset should clear the buffer length")
	assert.Equal(t, originalCap, cap(bb.B), "Reset should preserve capacity")
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("sufficient capacity", func(t *testing.T) {
		bb := NewByteBuffer(64)
		bb.Grow(32)
		assert.Equal(t, 64, cap(bb.B))
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(8)
		bb.MustWrite([]byte("12345678"))
		bb.Grow(1)
		assert.Equal(t, 8+TextBufferDefaultSize, cap(bb.B))
		assert.Equal(t, []byte("12345678"), bb.B, "content must survive growth")
	})

	t.Run("large request", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(TextBufferDefaultSize * 3)
		assert.GreaterOrEqual(t, cap(bb.B), TextBufferDefaultSize*3)
	})

	t.Run("large buffer grows by a quarter", func(t *testing.T) {
		size := 8 * TextBufferDefaultSize
		bb := NewByteBuffer(size)
		bb.B = bb.B[:size]
		bb.Grow(1)
		assert.Equal(t, size+size/4, cap(bb.B))
	})
}

// =============================================================================
// ByteBufferPool Tests
// =============================================================================

func TestByteBufferPool(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.MustWrite([]byte("data"))
	p.Put(bb)

	again := p.Get()
	assert.Equal(t, 0, again.Len(), "pooled buffers come back empty")

	// oversize buffers are dropped, nil is ignored
	big := NewByteBuffer(128)
	p.Put(big)
	p.Put(nil)
}

func TestDefaultPools(t *testing.T) {
	text := GetTextBuffer()
	require.NotNil(t, text)
	assert.GreaterOrEqual(t, cap(text.B), TextBufferDefaultSize)
	PutTextBuffer(text)

	frame := GetFrameBuffer()
	require.NotNil(t, frame)
	assert.GreaterOrEqual(t, cap(frame.B), FrameBufferDefaultSize)
	PutFrameBuffer(frame)
}

func TestByteBufferPool_Concurrent(t *testing.T) {
	p := NewByteBufferPool(32, 1024)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for range 100 {
				bb := p.Get()
				bb.MustWrite([]byte{byte(id)})
				if bb.Len() != 1 {
					t.Errorf("buffer not reset: len=%d", bb.Len())
				}
				p.Put(bb)
			}
		}(i)
	}
	wg.Wait()
}
