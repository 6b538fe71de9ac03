package save

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/teron/crusade/internal/component"
)

// Save file layout. All integers are little-endian and fixed width;
// lengths and counts are u64. There is no header and no version field.
// Bytes after the item set are an error.
//
//	i32 spawn.x, i32 spawn.y
//	u64 nblocks, nblocks × { u64 len, tile_set, u64 tile_index, i32 x, i32 y }
//	u64 nitems,  nitems  × { u64 len, item_name, i32 x, i32 y }
const (
	minBlockSize = 8 + 8 + 4 + 4
	minItemSize  = 8 + 4 + 4
)

// EncodeError reports a record that cannot be represented in the save layout.
type EncodeError struct {
	Field  string
	Reason string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode world record: %s: %s", e.Field, e.Reason)
}

// DecodeError reports bytes that do not match the save layout.
type DecodeError struct {
	Offset int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode world record at byte %d: %s", e.Offset, e.Reason)
}

// Encode serializes r. Entries are written in sorted order so equal records
// always produce identical bytes.
func Encode(r *WorldRecord) ([]byte, error) {
	blocks := r.SortedBlocks()
	items := r.SortedItems()

	w := &writer{buf: make([]byte, 0, 16+len(blocks)*40+len(items)*32)}
	w.i32(r.PlayerSpawn.X)
	w.i32(r.PlayerSpawn.Y)

	w.u64(uint64(len(blocks)))
	for _, b := range blocks {
		if !utf8.ValidString(b.TileSet) {
			return nil, &EncodeError{Field: "block.tile_set", Reason: fmt.Sprintf("invalid UTF-8 %q", b.TileSet)}
		}
		w.str(b.TileSet)
		w.u64(b.TileIndex)
		w.i32(b.TilePos.X)
		w.i32(b.TilePos.Y)
	}

	w.u64(uint64(len(items)))
	for _, it := range items {
		if !utf8.ValidString(it.ItemName) {
			return nil, &EncodeError{Field: "item.item_name", Reason: fmt.Sprintf("invalid UTF-8 %q", it.ItemName)}
		}
		w.str(it.ItemName)
		w.i32(it.Position.X)
		w.i32(it.Position.Y)
	}
	return w.buf, nil
}

// Decode parses a save file. Duplicate entries collapse into one.
func Decode(data []byte) (*WorldRecord, error) {
	rd := &reader{data: data}

	spawn := component.PixelPosition{X: rd.i32(), Y: rd.i32()}
	rec := NewWorldRecord(spawn)

	n := rd.count(minBlockSize)
	for i := uint64(0); i < n && rd.err == nil; i++ {
		b := BlockRecord{TileSet: rd.str()}
		b.TileIndex = rd.u64()
		b.TilePos = component.GridPosition{X: rd.i32(), Y: rd.i32()}
		if rd.err == nil {
			rec.AddBlock(b)
		}
	}

	n = rd.count(minItemSize)
	for i := uint64(0); i < n && rd.err == nil; i++ {
		it := ItemRecord{ItemName: rd.str()}
		it.Position = component.PixelPosition{X: rd.i32(), Y: rd.i32()}
		if rd.err == nil {
			rec.AddItem(it)
		}
	}

	if rd.err == nil && rd.off != len(data) {
		rd.fail(fmt.Sprintf("%d trailing bytes", len(data)-rd.off))
	}
	if rd.err != nil {
		return nil, rd.err
	}
	return rec, nil
}

type writer struct {
	buf []byte
}

func (w *writer) i32(v int32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(v))
}

func (w *writer) u64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

func (w *writer) str(s string) {
	w.u64(uint64(len(s)))
	w.buf = append(w.buf, s...)
}

// reader is sticky on error: after the first failure every read returns a
// zero value and the first DecodeError is kept.
type reader struct {
	data []byte
	off  int
	err  *DecodeError
}

func (r *reader) fail(reason string) {
	if r.err == nil {
		r.err = &DecodeError{Offset: r.off, Reason: reason}
	}
}

func (r *reader) remaining() int {
	return len(r.data) - r.off
}

func (r *reader) take(n int, what string) []byte {
	if r.err != nil {
		return nil
	}
	if n > r.remaining() {
		r.fail(fmt.Sprintf("truncated %s: need %d bytes, have %d", what, n, r.remaining()))
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) i32() int32 {
	b := r.take(4, "i32")
	if b == nil {
		return 0
	}
	return int32(binary.LittleEndian.Uint32(b))
}

func (r *reader) u64() uint64 {
	b := r.take(8, "u64")
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// count reads a collection length and rejects lengths that could not fit
// in the remaining bytes.
func (r *reader) count(minEntry int) uint64 {
	n := r.u64()
	if r.err != nil {
		return 0
	}
	if n > uint64(r.remaining()/minEntry) {
		r.fail(fmt.Sprintf("collection length %d exceeds remaining %d bytes", n, r.remaining()))
		return 0
	}
	return n
}

func (r *reader) str() string {
	n := r.u64()
	if r.err != nil {
		return ""
	}
	if n > uint64(r.remaining()) {
		r.fail(fmt.Sprintf("string length %d exceeds remaining %d bytes", n, r.remaining()))
		return ""
	}
	b := r.take(int(n), "string")
	if b == nil {
		return ""
	}
	if !utf8.Valid(b) {
		r.off -= len(b)
		r.fail("invalid UTF-8 string")
		return ""
	}
	return string(b)
}
