package dataset

import (
	"fmt"

	"github.com/arloliu/guess/endian"
	"github.com/arloliu/guess/errs"
	"github.com/arloliu/guess/format"
	"github.com/arloliu/guess/internal/options"
)

// EncoderConfig holds the configuration of an Encoder.
type EncoderConfig struct {
	engine      endian.EndianEngine
	compression format.CompressionType
}

func defaultEncoderConfig() EncoderConfig {
	return EncoderConfig{
		engine:      endian.GetLittleEndianEngine(),
		compression: format.CompressionZstd,
	}
}

// EncoderOption is a functional option for EncoderConfig.
type EncoderOption = options.Option[*EncoderConfig]

// WithLittleEndian sets little-endian byte order (default).
func WithLittleEndian() EncoderOption {
	return options.NoError(func(cfg *EncoderConfig) {
		cfg.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian sets big-endian byte order.
func WithBigEndian() EncoderOption {
	return options.NoError(func(cfg *EncoderConfig) {
		cfg.engine = endian.GetBigEndianEngine()
	})
}

// WithCompression sets the payload compression (default Zstd).
func WithCompression(ct format.CompressionType) EncoderOption {
	return options.New(func(cfg *EncoderConfig) error {
		if !ct.Valid() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidCompressionType, ct)
		}
		cfg.compression = ct

		return nil
	})
}
