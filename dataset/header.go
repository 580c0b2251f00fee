package dataset

import (
	"encoding/binary"

	"github.com/arloliu/guess/endian"
	"github.com/arloliu/guess/errs"
	"github.com/arloliu/guess/format"
)

const (
	// Bit masks of the Options field
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1), 0 = little, 1 = big
	ReservedBitsMask = 0x000D // Mask for reserved bits (bits 0, 2, 3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicSampleSetV1 identifies version 1 of the sample-set container.
	MagicSampleSetV1 = 0xE510
)

const (
	HeaderSize     = 32         // fixed header size in bytes
	IndexEntrySize = 16         // fixed index entry size in bytes
	IndexOffset    = HeaderSize // byte offset where the index section starts
	MaxSetCount    = 65535      // maximum number of sample sets in one container
	pointSize      = 16         // bytes per sample point, x and y float64
)

// Header is the fixed-size section at the start of an encoded container.
//
// Layout:
//
//	0-1   Options (little-endian): endianness bit and magic number
//	2     CompressionType of the payload
//	3     reserved, must be 0
//	4-7   SetCount
//	8-11  NamesOffset: byte offset of the names section
//	12-15 PayloadOffset: byte offset of the compressed payload
//	16-19 PayloadSize: compressed payload length in bytes
//	20-23 RawPayloadSize: decompressed payload length in bytes
//	24-27 reserved, must be 0
//	28-31 Checksum: CRC32-C of every byte after the header
type Header struct {
	Options         uint16
	CompressionType format.CompressionType
	SetCount        uint32
	NamesOffset     uint32
	PayloadOffset   uint32
	PayloadSize     uint32
	RawPayloadSize  uint32
	Checksum        uint32
}

// IsBigEndian returns whether the container is big-endian.
func (h Header) IsBigEndian() bool {
	return h.Options&EndiannessMask != 0
}

// Engine returns the byte order of every field except Options.
func (h Header) Engine() endian.EndianEngine {
	if h.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// Validate checks the magic number, the reserved bits and the compression type.
func (h Header) Validate() error {
	if h.Options&MagicNumberMask != MagicSampleSetV1 {
		return errs.ErrInvalidMagicNumber
	}
	if h.Options&ReservedBitsMask != 0 {
		return errs.ErrInvalidMagicNumber
	}
	if !h.CompressionType.Valid() {
		return errs.ErrInvalidCompressionType
	}
	if h.SetCount > MaxSetCount {
		return errs.ErrSetCountExceeded
	}

	return nil
}

// Bytes serializes the header into a new 32-byte slice.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := h.Engine()

	binary.LittleEndian.PutUint16(b[0:2], h.Options)
	b[2] = uint8(h.CompressionType)
	engine.PutUint32(b[4:8], h.SetCount)
	engine.PutUint32(b[8:12], h.NamesOffset)
	engine.PutUint32(b[12:16], h.PayloadOffset)
	engine.PutUint32(b[16:20], h.PayloadSize)
	engine.PutUint32(b[20:24], h.RawPayloadSize)
	engine.PutUint32(b[28:32], h.Checksum)

	return b
}

// ParseHeader parses and validates a Header from the start of data.
//
// Parameters:
//   - data: Byte slice containing the header (must be at least 32 bytes)
//
// Returns:
//   - Header: Parsed header struct
//   - error: ErrInvalidHeaderSize, ErrInvalidMagicNumber, ErrInvalidCompressionType
//     or ErrSetCountExceeded
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	// Options is always little-endian, it carries the endianness of the rest
	h := Header{
		Options:         binary.LittleEndian.Uint16(data[0:2]),
		CompressionType: format.CompressionType(data[2]),
	}
	if data[3] != 0 {
		return Header{}, errs.ErrInvalidMagicNumber
	}

	engine := h.Engine()
	h.SetCount = engine.Uint32(data[4:8])
	h.NamesOffset = engine.Uint32(data[8:12])
	h.PayloadOffset = engine.Uint32(data[12:16])
	h.PayloadSize = engine.Uint32(data[16:20])
	h.RawPayloadSize = engine.Uint32(data[20:24])
	h.Checksum = engine.Uint32(data[28:32])

	if err := h.Validate(); err != nil {
		return Header{}, err
	}

	return h, nil
}
