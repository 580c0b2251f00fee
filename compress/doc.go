// Package compress provides the payload codecs of the sample-set container.
//
// Four codecs are built in, selected by format.CompressionType:
//
//   - None: pass-through, for small sets or debugging
//   - Zstd: best ratio on float64 columns (gozstd with cgo, klauspost/compress without)
//   - S2: fast, moderate ratio
//   - LZ4: fastest decompression
//
// Usage:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	compressed, err := codec.Compress(payload)
//	...
//	payload, err = codec.Decompress(compressed, rawSize)
//
// Decompression takes the raw size recorded by the container, so a corrupted
// or hostile payload cannot make a codec allocate past it. Every codec is
// stateless and safe for concurrent use.
package compress
