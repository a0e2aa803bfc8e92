package lzjb

import "github.com/go-faster/errors"

// CompressOptions configures Compress.
type CompressOptions struct {
	// WithSize prepends the original length as a variable-length size prefix.
	// Decompress must be called with the same value.
	WithSize bool
	// TableSize is the number of match table entries: a power of two in
	// [LempelSize, MaxTableSize]. 0 means LempelSize. Larger tables find more
	// matches on big inputs; the wire format does not change.
	TableSize int
}

// DefaultCompressOptions returns options for default compression (size prefix, 1024-entry table).
func DefaultCompressOptions() *CompressOptions {
	return &CompressOptions{
		WithSize:  true,
		TableSize: LempelSize,
	}
}

// tableSize returns the effective match table size or ErrInvalidArgument.
func (o *CompressOptions) tableSize() (int, error) {
	n := o.TableSize
	if n == 0 {
		return LempelSize, nil
	}
	if n < LempelSize || n > MaxTableSize || n&(n-1) != 0 {
		return 0, errors.Wrapf(ErrInvalidArgument, "table size %d is not a power of two in [%d, %d]", n, LempelSize, MaxTableSize)
	}

	return n, nil
}

// DecompressOptions configures Decompress.
type DecompressOptions struct {
	// WithSize must match CompressOptions.WithSize used to produce the input.
	WithSize bool
	// MaxOutputSize limits decoded output in bytes (0 = no limit).
	MaxOutputSize int
	// MaxInputSize limits how many bytes DecompressFromReader may read (0 = no limit).
	MaxInputSize int
}

// DefaultDecompressOptions returns options for default decompression: size prefix expected, no limits.
func DefaultDecompressOptions() *DecompressOptions {
	return &DecompressOptions{WithSize: true}
}

// RawCompressOptions returns options for streams without a size prefix.
func RawCompressOptions() *CompressOptions {
	return &CompressOptions{TableSize: LempelSize}
}

// RawDecompressOptions returns options for streams produced with RawCompressOptions.
func RawDecompressOptions() *DecompressOptions {
	return &DecompressOptions{}
}
