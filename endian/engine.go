// Package endian provides the byte order engines of the sample-set container.
//
// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder so that a
// single value can both read fixed-size fields and append them to a buffer:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, count)
//	buf = endian.AppendFloat64s(engine, buf, xs)
//
// All functions in this package are safe for concurrent use.
package endian

import (
	"encoding/binary"
	"math"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// IsBigEndian reports whether engine writes the most significant byte first.
func IsBigEndian(engine EndianEngine) bool {
	return engine == binary.BigEndian
}

// AppendFloat64s appends the IEEE 754 bit patterns of values to dst.
func AppendFloat64s(engine EndianEngine, dst []byte, values []float64) []byte {
	dst = growBytes(dst, len(values)*8)
	for _, v := range values {
		dst = engine.AppendUint64(dst, math.Float64bits(v))
	}

	return dst
}

// ReadFloat64s decodes len(dst) float64 values from src into dst.
//
// Returns the number of bytes consumed, or -1 if src is too short.
func ReadFloat64s(engine EndianEngine, src []byte, dst []float64) int {
	n := len(dst) * 8
	if len(src) < n {
		return -1
	}
	for i := range dst {
		dst[i] = math.Float64frombits(engine.Uint64(src[i*8:]))
	}

	return n
}

func growBytes(b []byte, n int) []byte {
	if cap(b)-len(b) >= n {
		return b
	}
	grown := make([]byte, len(b), len(b)+n)
	copy(grown, b)

	return grown
}
