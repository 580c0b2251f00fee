//go:build cgo

package compress

import (
	"fmt"
	"math"

	"github.com/klauspost/compress/zstd"
	"github.com/valyala/gozstd"
)

// zstdLevel trades some ratio for encode speed; float columns gain little past 3.
const zstdLevel = 3

func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, zstdLevel), nil
}

// Decompress rejects a frame whose declared content size differs from size
// before handing it to libzstd, which would otherwise grow its output buffer.
func (c ZstdCompressor) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		if size != 0 {
			return nil, sizeMismatch("zstd", 0, size)
		}

		return nil, nil
	}

	var fh zstd.Header
	if err := fh.Decode(data); err != nil {
		return nil, fmt.Errorf("zstd frame header: %w", err)
	}
	if fh.HasFCS && fh.FrameContentSize != uint64(size) {
		return nil, sizeMismatch("zstd", int(min(fh.FrameContentSize, math.MaxInt)), size)
	}

	out, err := gozstd.Decompress(make([]byte, 0, size), data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	if len(out) != size {
		return nil, sizeMismatch("zstd", len(out), size)
	}

	return out, nil
}
