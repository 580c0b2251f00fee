package dataset

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"
	"slices"

	"github.com/arloliu/guess/compress"
	"github.com/arloliu/guess/endian"
	"github.com/arloliu/guess/errs"
	"github.com/arloliu/guess/internal/collision"
	"github.com/arloliu/guess/internal/hash"
	"github.com/arloliu/guess/internal/options"
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// Encoder builds a container of named sample sets.
//
// Sets are serialized as they are added, so the caller may reuse its slices
// after Add returns. An Encoder is not safe for concurrent use.
type Encoder struct {
	cfg      EncoderConfig
	entries  []IndexEntry
	payload  []byte
	tracker  *collision.Tracker
	finished bool
}

// NewEncoder creates a new Encoder.
//
// Parameters:
//   - opts: Byte order and compression options
//
// Returns:
//   - *Encoder: New encoder instance
//   - error: Option error if any
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	cfg, err := options.Build(defaultEncoderConfig(), opts...)
	if err != nil {
		return nil, err
	}

	return &Encoder{
		cfg:     cfg,
		tracker: collision.NewTracker(),
	}, nil
}

// Len returns the number of sets added so far.
func (e *Encoder) Len() int {
	return e.tracker.Count()
}

// Names returns the names of the sets added so far, in insertion order.
func (e *Encoder) Names() []string {
	return slices.Clone(e.tracker.Names())
}

// Reset discards all added sets so the encoder can build a new container
// with the same options. It also makes a finished encoder usable again.
func (e *Encoder) Reset() {
	e.entries = e.entries[:0]
	e.payload = e.payload[:0]
	e.tracker.Reset()
	e.finished = false
}

// Add appends a named sample set.
//
// Parameters:
//   - name: Unique, non-empty set name
//   - x: Abscissae
//   - y: Ordinates, same length as x
//
// Returns:
//   - error: ErrEncoderFinished, ErrEmptySetName, ErrDuplicateSetName,
//     ErrSetCountExceeded or ErrLengthMismatch
func (e *Encoder) Add(name string, x, y []float64) error {
	if e.finished {
		return errs.ErrEncoderFinished
	}
	if len(x) != len(y) {
		return fmt.Errorf("%w: set %q has %d abscissae and %d ordinates", errs.ErrLengthMismatch, name, len(x), len(y))
	}
	if len(e.entries) >= MaxSetCount {
		return errs.ErrSetCountExceeded
	}
	if uint64(len(x)) > math.MaxUint32 {
		return fmt.Errorf("%w: set %q has %d points", errs.ErrSetCountExceeded, name, len(x))
	}

	id := hash.ID(name)
	if err := e.tracker.Track(name, id); err != nil {
		return err
	}

	e.entries = append(e.entries, IndexEntry{SetID: id, Count: uint32(len(x)), offset: len(e.payload)})
	e.payload = endian.AppendFloat64s(e.cfg.engine, e.payload, x)
	e.payload = endian.AppendFloat64s(e.cfg.engine, e.payload, y)

	return nil
}

// Finish compresses the payload and returns the encoded container.
//
// The encoder cannot be used after Finish.
func (e *Encoder) Finish() ([]byte, error) {
	if e.finished {
		return nil, errs.ErrEncoderFinished
	}
	e.finished = true

	codec, err := compress.GetCodec(e.cfg.compression)
	if err != nil {
		return nil, err
	}
	compressed, err := codec.Compress(e.payload)
	if err != nil {
		return nil, fmt.Errorf("compress payload: %w", err)
	}
	if uint64(len(e.payload)) > math.MaxUint32 || uint64(len(compressed)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: payload of %d bytes", errs.ErrInvalidPayloadOffset, len(e.payload))
	}

	h := Header{
		Options:         MagicSampleSetV1,
		CompressionType: e.cfg.compression,
		SetCount:        uint32(len(e.entries)),
		RawPayloadSize:  uint32(len(e.payload)),
		PayloadSize:     uint32(len(compressed)),
	}
	if endian.IsBigEndian(e.cfg.engine) {
		h.Options |= EndiannessMask
	}
	var names []byte
	for _, name := range e.tracker.Names() {
		names = binary.AppendUvarint(names, uint64(len(name)))
		names = append(names, name...)
	}

	h.NamesOffset = uint32(IndexOffset + len(e.entries)*IndexEntrySize)
	h.PayloadOffset = h.NamesOffset + uint32(len(names))

	body := make([]byte, 0, int(h.PayloadOffset)-HeaderSize+len(compressed))
	for _, entry := range e.entries {
		body = entry.AppendTo(e.cfg.engine, body)
	}
	body = append(body, names...)
	body = append(body, compressed...)
	h.Checksum = crc32.Checksum(body, castagnoli)

	return append(h.Bytes(), body...), nil
}
