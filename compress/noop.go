package compress

// NoOpCompressor stores payloads uncompressed.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data itself, sharing its memory.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data itself once its length matches size.
func (c NoOpCompressor) Decompress(data []byte, size int) ([]byte, error) {
	if len(data) != size {
		return nil, sizeMismatch("raw", len(data), size)
	}

	return data, nil
}
