package dataset

import (
	"github.com/arloliu/guess/endian"
	"github.com/arloliu/guess/errs"
)

// IndexEntry records a single sample set in the index section.
//
// Layout (16 bytes):
//
//	0-7   SetID: xxHash64 of the set name
//	8-11  Count: number of sample points
//	12-15 reserved, must be 0
//
// Payload offsets are not stored: the x column of set i starts at
// 16·Σ Count[j<i] bytes into the decompressed payload and the y column
// follows it immediately.
type IndexEntry struct {
	SetID uint64
	Count uint32

	// offset is the absolute byte offset of the x column in the decompressed
	// payload. It is not stored on disk.
	offset int
}

// AppendTo appends the serialized entry to dst.
func (e IndexEntry) AppendTo(engine endian.EndianEngine, dst []byte) []byte {
	dst = engine.AppendUint64(dst, e.SetID)
	dst = engine.AppendUint32(dst, e.Count)

	return engine.AppendUint32(dst, 0)
}

// ParseIndexEntry parses an entry from the first 16 bytes of data.
func ParseIndexEntry(engine endian.EndianEngine, data []byte) (IndexEntry, error) {
	if len(data) < IndexEntrySize {
		return IndexEntry{}, errs.ErrInvalidIndexEntry
	}
	if engine.Uint32(data[12:16]) != 0 {
		return IndexEntry{}, errs.ErrInvalidIndexEntry
	}

	return IndexEntry{
		SetID: engine.Uint64(data[0:8]),
		Count: engine.Uint32(data[8:12]),
	}, nil
}
