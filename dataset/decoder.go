package dataset

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"iter"

	"github.com/arloliu/guess/compress"
	"github.com/arloliu/guess/endian"
	"github.com/arloliu/guess/errs"
	"github.com/arloliu/guess/internal/collision"
	"github.com/arloliu/guess/internal/hash"
)

// Set is a decoded sample set.
type Set struct {
	Name string
	ID   uint64
	X    []float64
	Y    []float64
}

// Decoder reads sample sets from an encoded container.
//
// The container is validated and decompressed once by NewDecoder. Sets are
// decoded on access into freshly allocated slices, so a Decoder is safe for
// concurrent reads.
type Decoder struct {
	header  Header
	engine  endian.EndianEngine
	entries []IndexEntry
	names   []string
	byID    map[uint64]int
	payload []byte
}

// NewDecoder validates an encoded container and prepares it for reading.
//
// Parameters:
//   - data: The bytes returned by Encoder.Finish
//
// Returns:
//   - *Decoder: Decoder over data
//   - error: Header, checksum, index or payload validation error
func NewDecoder(data []byte) (*Decoder, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	if crc32.Checksum(data[HeaderSize:], castagnoli) != h.Checksum {
		return nil, errs.ErrChecksumMismatch
	}

	indexEnd := uint64(IndexOffset) + uint64(h.SetCount)*IndexEntrySize
	if uint64(h.NamesOffset) != indexEnd ||
		h.PayloadOffset < h.NamesOffset ||
		uint64(h.PayloadOffset)+uint64(h.PayloadSize) != uint64(len(data)) {
		return nil, errs.ErrInvalidPayloadOffset
	}

	d := &Decoder{
		header:  h,
		engine:  h.Engine(),
		entries: make([]IndexEntry, h.SetCount),
		names:   make([]string, h.SetCount),
		byID:    make(map[uint64]int, h.SetCount),
	}

	offset := 0
	for i := range d.entries {
		pos := IndexOffset + i*IndexEntrySize
		entry, err := ParseIndexEntry(d.engine, data[pos:pos+IndexEntrySize])
		if err != nil {
			return nil, err
		}
		entry.offset = offset
		offset += int(entry.Count) * pointSize
		d.entries[i] = entry
	}
	if uint64(offset) != uint64(h.RawPayloadSize) {
		return nil, fmt.Errorf("%w: index describes %d payload bytes, header %d",
			errs.ErrInvalidIndexEntry, offset, h.RawPayloadSize)
	}

	if err := d.parseNames(data[h.NamesOffset:h.PayloadOffset]); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(h.CompressionType)
	if err != nil {
		return nil, err
	}
	payload, err := codec.Decompress(data[h.PayloadOffset:], int(h.RawPayloadSize))
	if err != nil {
		return nil, fmt.Errorf("decompress payload: %w", err)
	}
	d.payload = payload

	return d, nil
}

func (d *Decoder) parseNames(section []byte) error {
	tracker := collision.NewTracker()
	pos := 0
	for i := range d.names {
		n, size := binary.Uvarint(section[pos:])
		if size <= 0 || n == 0 || uint64(len(section)-pos-size) < n {
			return fmt.Errorf("%w: name %d", errs.ErrInvalidIndexEntry, i)
		}
		pos += size
		name := string(section[pos : pos+int(n)])
		pos += int(n)

		if hash.ID(name) != d.entries[i].SetID {
			return fmt.Errorf("%w: name %q does not match set id %#x", errs.ErrInvalidIndexEntry, name, d.entries[i].SetID)
		}
		if err := tracker.Track(name, d.entries[i].SetID); err != nil {
			return err
		}
		d.names[i] = name
		d.byID[d.entries[i].SetID] = i
	}
	if pos != len(section) {
		return fmt.Errorf("%w: %d trailing bytes in names section", errs.ErrInvalidIndexEntry, len(section)-pos)
	}

	return nil
}

// Header returns the parsed container header.
func (d *Decoder) Header() Header {
	return d.header
}

// Len returns the number of sample sets.
func (d *Decoder) Len() int {
	return len(d.entries)
}

// Names returns the set names in insertion order.
func (d *Decoder) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)

	return out
}

// Get returns the set with the given name.
func (d *Decoder) Get(name string) (Set, bool) {
	return d.GetByID(hash.ID(name))
}

// GetByID returns the set whose name hashes to id.
func (d *Decoder) GetByID(id uint64) (Set, bool) {
	i, ok := d.byID[id]
	if !ok {
		return Set{}, false
	}

	return d.set(i), true
}

// All iterates over every set in insertion order.
func (d *Decoder) All() iter.Seq[Set] {
	return func(yield func(Set) bool) {
		for i := range d.entries {
			if !yield(d.set(i)) {
				return
			}
		}
	}
}

func (d *Decoder) set(i int) Set {
	entry := d.entries[i]
	n := int(entry.Count)
	s := Set{
		Name: d.names[i],
		ID:   entry.SetID,
		X:    make([]float64, n),
		Y:    make([]float64, n),
	}
	col := d.payload[entry.offset:]
	endian.ReadFloat64s(d.engine, col, s.X)
	endian.ReadFloat64s(d.engine, col[n*8:], s.Y)

	return s
}
