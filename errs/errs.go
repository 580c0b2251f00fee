// Package errs defines the sentinel errors shared by all guess packages.
//
// Errors returned by the estimators and the dataset codec wrap one of these
// sentinels, so callers can classify failures with errors.Is:
//
//	_, err := estimate.GaussPDF(x, y)
//	if errors.Is(err, errs.ErrNonPhysicalFit) {
//	    // fall back to an iterative optimizer
//	}
package errs

import "errors"

// Estimation errors.
var (
	// ErrInvalidDomain reports an input value outside the domain of a required
	// transform, e.g. a CDF value outside (0, 1) or a non-positive power-law abscissa.
	ErrInvalidDomain = errors.New("input outside of transform domain")
	// ErrUnderdeterminedSystem reports fewer samples than free parameters.
	ErrUnderdeterminedSystem = errors.New("underdetermined system")
	// ErrIllConditioned reports a singular or numerically rank-deficient design matrix.
	ErrIllConditioned = errors.New("ill-conditioned system")
	// ErrNonPhysicalFit reports coefficients that imply an impossible physical quantity.
	ErrNonPhysicalFit = errors.New("non-physical fit")
	// ErrLengthMismatch reports sample columns of different lengths.
	ErrLengthMismatch = errors.New("sample length mismatch")
	// ErrNonFinite reports a NaN or infinite sample value.
	ErrNonFinite = errors.New("non-finite sample value")
	// ErrUnknownModel reports an unsupported model type.
	ErrUnknownModel = errors.New("unknown model type")
)

// Dataset codec errors.
var (
	ErrInvalidHeaderSize      = errors.New("invalid header size")
	ErrInvalidMagicNumber     = errors.New("invalid magic number")
	ErrChecksumMismatch       = errors.New("checksum mismatch")
	ErrInvalidIndexEntry      = errors.New("invalid index entry")
	ErrInvalidPayloadOffset   = errors.New("invalid payload offset")
	ErrInvalidCompressionType = errors.New("invalid compression type")
	ErrPayloadSizeMismatch    = errors.New("decompressed payload size mismatch")
	ErrSetCountExceeded       = errors.New("sample set count exceeded")
	ErrEmptySetName           = errors.New("empty sample set name")
	ErrDuplicateSetName       = errors.New("duplicate sample set name")
	ErrEncoderFinished        = errors.New("encoder already finished")
)
