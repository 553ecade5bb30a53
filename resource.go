package salvia

import (
	"sync"

	"github.com/gogpu/gputypes"
)

// Buffer is an opaque GPU-visible buffer resource. Its memory layout
// and binding semantics belong to the external resource-management
// collaborator (spec.md §1 Non-goals); this type only stores bytes and
// guards concurrent access, matching hal/software/resource.go's Buffer.
type Buffer struct {
	mu    sync.RWMutex
	data  []byte
	usage gputypes.BufferUsage
}

// NewBuffer allocates a zero-filled buffer of size bytes.
func NewBuffer(size uint64, usage gputypes.BufferUsage) *Buffer {
	return &Buffer{data: make([]byte, size), usage: usage}
}

// GetData returns a copy of the buffer's contents.
func (b *Buffer) GetData() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// WriteData writes data at offset, growing never — writes past the end
// of the buffer are truncated to its capacity.
func (b *Buffer) WriteData(offset uint64, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := copy(b.data[offset:], data)
	_ = n
}

// Len returns the buffer's size in bytes.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.data)
}

// Texture is an opaque 2D pixel store, used as a sampled-resource or
// render-target backing. Like Buffer, texel layout and sampling belong
// to the external resource-management collaborator.
type Texture struct {
	mu            sync.RWMutex
	data          []byte
	width, height uint32
	format        gputypes.TextureFormat
}

// NewTexture allocates a zero-filled texture.
func NewTexture(width, height uint32, format gputypes.TextureFormat) *Texture {
	bpp := bytesPerPixel(format)
	return &Texture{data: make([]byte, uint64(width)*uint64(height)*uint64(bpp)), width: width, height: height, format: format}
}

func bytesPerPixel(format gputypes.TextureFormat) uint32 {
	switch format {
	case gputypes.TextureFormatRGBA32Float, gputypes.TextureFormatRGBA32Uint, gputypes.TextureFormatRGBA32Sint:
		return 16
	case gputypes.TextureFormatRG32Float, gputypes.TextureFormatRG32Uint, gputypes.TextureFormatRG32Sint:
		return 8
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb, gputypes.TextureFormatBGRA8UnormSrgb:
		return 4
	case gputypes.TextureFormatR32Float, gputypes.TextureFormatR32Uint, gputypes.TextureFormatR32Sint:
		return 4
	case gputypes.TextureFormatR8Unorm, gputypes.TextureFormatR8Uint:
		return 1
	}
	return 4
}

// GetData returns a copy of the texture's backing storage.
func (t *Texture) GetData() []byte {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]byte, len(t.data))
	copy(out, t.data)
	return out
}

// WriteData overwrites the texture's backing storage starting at
// offset.
func (t *Texture) WriteData(offset uint64, data []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	copy(t.data[offset:], data)
}
