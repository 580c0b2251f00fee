// Package hash derives 64-bit identifiers for sample sets.
package hash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of a sample set name.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Fingerprint computes the xxHash64 of the IEEE 754 bit patterns of the given
// columns, in order. Column boundaries are part of the hash, so moving a value
// from one column to the next changes the fingerprint.
func Fingerprint(cols ...[]float64) uint64 {
	d := xxhash.New()

	var buf [8]byte
	for _, col := range cols {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(col)))
		_, _ = d.Write(buf[:])
		for _, v := range col {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = d.Write(buf[:])
		}
	}

	return d.Sum64()
}
