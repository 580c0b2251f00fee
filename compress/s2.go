package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Compressor stores payloads as a single S2 block.
//
// S2 decodes several times faster than zstd at a lower ratio, which suits
// containers that are read far more often than written.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress checks the length recorded in the block before allocating.
func (c S2Compressor) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		if size != 0 {
			return nil, sizeMismatch("s2", 0, size)
		}

		return nil, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 block header: %w", err)
	}
	if n != size {
		return nil, sizeMismatch("s2", n, size)
	}

	return s2.Decode(make([]byte, size), data)
}
