package compress

import (
	"fmt"

	"github.com/arloliu/guess/errs"
	"github.com/arloliu/guess/format"
)

// Compressor compresses a complete container payload.
//
// The returned slice is owned by the caller unless documented otherwise;
// the input is never modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
//
// The container header records the raw payload size, so decompression is
// bounded by it: a codec never allocates more than size bytes of output and
// reports errs.ErrPayloadSizeMismatch when the payload decodes to any other
// length. Corrupted or foreign input yields an error.
type Decompressor interface {
	Decompress(data []byte, size int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//
// Returns:
//   - Codec: Shared codec instance, safe for concurrent use
//   - error: Unsupported compression type error
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

func sizeMismatch(codec string, got, want int) error {
	return fmt.Errorf("%w: %s payload decodes to %d bytes, want %d", errs.ErrPayloadSizeMismatch, codec, got, want)
}
