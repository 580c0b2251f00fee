package compress

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/guess/errs"
	"github.com/arloliu/guess/format"
)

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

// floatPayload mimics a column of smoothly varying samples.
func floatPayload(n int) []byte {
	buf := make([]byte, 0, n*8)
	for i := range n {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(0.01*float64(i)))
	}

	return buf
}

func TestGetCodec(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err, ct.String())
		require.NotNil(t, codec)
	}

	_, err := GetCodec(format.CompressionType(0x7f))
	require.Error(t, err)
	require.Contains(t, err.Error(), "Unknown")
}

func TestCodecRoundTrip(t *testing.T) {
	sizes := []int{1, 16, 1024, 64 * 1024}

	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		for _, n := range sizes {
			t.Run(fmt.Sprintf("%s_%d", ct, n), func(t *testing.T) {
				data := floatPayload(n)
				compressed, err := codec.Compress(data)
				require.NoError(t, err)

				restored, err := codec.Decompress(compressed, len(data))
				require.NoError(t, err)
				require.Equal(t, data, restored)
			})
		}
	}
}

func TestCodecCompresses(t *testing.T) {
	data := make([]byte, 64*1024) // zeros

	for _, ct := range allTypes[1:] {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(data)
		require.NoError(t, err)
		require.Less(t, len(compressed), len(data)/10, ct.String())
	}
}

func TestCodecEmptyData(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		restored, err := codec.Decompress(nil, 0)
		require.NoError(t, err, ct.String())
		require.Empty(t, restored)
	}
}

func TestCodecInvalidData(t *testing.T) {
	garbage := []byte{0xff, 0xfe, 0xfd, 0xfc, 0xfb, 0xfa, 0xf9, 0xf8}

	for _, ct := range allTypes[1:] {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		_, err = codec.Decompress(garbage, 64)
		require.Error(t, err, ct.String())
	}
}

func TestCodecSizeMismatch(t *testing.T) {
	data := floatPayload(1024)

	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)
		compressed, err := codec.Compress(data)
		require.NoError(t, err)

		for _, size := range []int{0, len(data) - 8, len(data) + 8} {
			_, err := codec.Decompress(compressed, size)
			require.Error(t, err, "%s size %d", ct, size)
		}

		_, err = codec.Decompress(nil, 16)
		require.ErrorIs(t, err, errs.ErrPayloadSizeMismatch, ct.String())
	}
}

// The output buffer is bounded by the expected size, so a block that
// expands far beyond it fails without growing.
func TestCodecBoundedOutput(t *testing.T) {
	data := make([]byte, 1<<20) // zeros, highly compressible

	for _, ct := range allTypes[1:] {
		codec, err := GetCodec(ct)
		require.NoError(t, err)
		compressed, err := codec.Compress(data)
		require.NoError(t, err)

		restored, err := codec.Decompress(compressed, 64)
		require.Error(t, err, ct.String())
		require.Nil(t, restored)
	}
}

func TestNoOpSharesMemory(t *testing.T) {
	data := []byte{1, 2, 3}
	out, err := NewNoOpCompressor().Compress(data)
	require.NoError(t, err)
	require.Same(t, &data[0], &out[0])
}

func TestCodecConcurrentUsage(t *testing.T) {
	data := floatPayload(4096)

	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		var wg sync.WaitGroup
		errCh := make(chan error, 16)
		for range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				compressed, err := codec.Compress(data)
				if err != nil {
					errCh <- err
					return
				}
				restored, err := codec.Decompress(compressed, len(data))
				if err != nil {
					errCh <- err
					return
				}
				if len(restored) != len(data) {
					errCh <- fmt.Errorf("%s: got %d bytes, want %d", ct, len(restored), len(data))
				}
			}()
		}
		wg.Wait()
		close(errCh)

		for err := range errCh {
			require.NoError(t, err)
		}
	}
}
