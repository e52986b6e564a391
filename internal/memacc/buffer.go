package memacc

import (
	"encoding/binary"

	"sm3dis/internal/common"
)

// WordSize is the size in bytes of every bytecode token.
const WordSize = 4

// BufferAccessor gives bounds-checked little-endian word access to a bytecode buffer.
// The buffer is never modified.
type BufferAccessor struct {
	Buffer []byte
}

// NewBufferAccessor creates a new buffer accessor.
func NewBufferAccessor(buffer []byte) *BufferAccessor {
	return &BufferAccessor{Buffer: buffer}
}

// Len returns the buffer size in bytes.
func (b *BufferAccessor) Len() int {
	return len(b.Buffer)
}

// InRange reports whether a whole word can be read at offset.
func (b *BufferAccessor) InRange(offset int) bool {
	return offset >= 0 && offset <= len(b.Buffer)-WordSize
}

// ReadWord reads the little-endian dword at offset.
func (b *BufferAccessor) ReadWord(offset int) (uint32, error) {
	if !b.InRange(offset) {
		return 0, common.Errorf(common.ErrUnexpectedEOS, offset,
			"need %d bytes, buffer holds %d", offset+WordSize, len(b.Buffer))
	}
	return binary.LittleEndian.Uint32(b.Buffer[offset:]), nil
}

// ReadWords reads n consecutive dwords starting at offset.
func (b *BufferAccessor) ReadWords(offset, n int) ([]uint32, error) {
	words := make([]uint32, n)
	for i := range words {
		w, err := b.ReadWord(offset + i*WordSize)
		if err != nil {
			return nil, err
		}
		words[i] = w
	}
	return words, nil
}

// Bytes returns the n bytes at offset, clipped to the end of the buffer.
func (b *BufferAccessor) Bytes(offset, n int) []byte {
	if offset < 0 || offset >= len(b.Buffer) {
		return nil
	}
	end := offset + n
	if end > len(b.Buffer) {
		end = len(b.Buffer)
	}
	return b.Buffer[offset:end]
}
