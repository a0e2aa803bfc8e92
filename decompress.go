// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/lzjb

package lzjb

import (
	"io"

	"github.com/go-faster/errors"
)

// Decompress decompresses src. Options nil means DefaultDecompressOptions (size prefix expected).
// opts.WithSize must match the value used by Compress; a mismatch is not detectable
// in general and usually surfaces as ErrCorruptStream.
func Decompress(src []byte, opts *DecompressOptions) ([]byte, error) {
	if opts == nil {
		opts = DefaultDecompressOptions()
	}
	if opts.MaxOutputSize < 0 || opts.MaxInputSize < 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "negative size limit")
	}

	pos := 0
	size := -1 // Declared output length, -1 when the stream has no size prefix.
	if opts.WithSize {
		n, prefixLen, err := DecodedSize(src)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, errors.Wrap(ErrCorruptStream, "size prefix does not record a length")
		}
		if opts.MaxOutputSize > 0 && n > opts.MaxOutputSize {
			return nil, errors.Wrapf(ErrOutputTooLarge, "declared size %d, limit %d", n, opts.MaxOutputSize)
		}

		size = n
		pos = prefixLen
	}

	// limit is the output length no token may exceed, -1 for none.
	limit := -1
	if opts.MaxOutputSize > 0 {
		limit = opts.MaxOutputSize
	}
	if size >= 0 {
		limit = size
	}

	// A corrupt prefix must not force a huge allocation: never reserve more than
	// the remaining input could expand to.
	capHint := 2 * (len(src) - pos)
	if size >= 0 {
		capHint = min(size, (len(src)-pos)*maxExpansion)
	}
	out := make([]byte, 0, capHint)

	grow := func(n int) error {
		if limit < 0 || len(out)+n <= limit {
			return nil
		}
		if size >= 0 {
			return errors.Wrapf(ErrCorruptStream, "output exceeds declared size %d", size)
		}

		return errors.Wrapf(ErrOutputTooLarge, "limit %d", limit)
	}

	var copyMap byte
	var copyMask byte = 1 << (NBBY - 1)
	for pos < len(src) {
		copyMask <<= 1
		if copyMask == 0 {
			copyMask = 1
			copyMap = src[pos]
			pos++
		}

		if copyMap&copyMask == 0 {
			if pos >= len(src) {
				return nil, errors.Wrapf(ErrCorruptStream, "missing literal at input offset %d", pos)
			}
			if err := grow(1); err != nil {
				return nil, err
			}

			out = append(out, src[pos])
			pos++
			continue
		}

		if pos+1 >= len(src) {
			return nil, errors.Wrapf(ErrCorruptStream, "truncated match token at input offset %d", pos)
		}

		length := int(src[pos]>>(NBBY-MatchBits)) + MatchMin
		offset := (int(src[pos])<<NBBY | int(src[pos+1])) & OffsetMask
		pos += 2

		cpy := len(out) - offset
		if offset == 0 || cpy < 0 {
			return nil, errors.Wrapf(ErrCorruptStream, "match offset %d at output position %d", offset, len(out))
		}
		if err := grow(length); err != nil {
			return nil, err
		}

		// Source and destination may overlap (offset < length): copy byte by byte
		// so each appended byte is visible to the next read.
		for ; length > 0; length-- {
			out = append(out, out[cpy])
			cpy++
		}
	}

	if size >= 0 && len(out) != size {
		return nil, errors.Wrapf(ErrCorruptStream, "decoded %d bytes, size prefix declares %d", len(out), size)
	}

	return out, nil
}

// DecompressFromReader reads the full stream from r then calls Decompress.
// If opts.MaxInputSize > 0 and r holds more bytes, returns ErrInputTooLarge.
func DecompressFromReader(r io.Reader, opts *DecompressOptions) ([]byte, error) {
	if r == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "reader is nil")
	}
	if opts == nil {
		opts = DefaultDecompressOptions()
	}
	if opts.MaxInputSize < 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "negative size limit")
	}

	if opts.MaxInputSize > 0 {
		r = io.LimitReader(r, int64(opts.MaxInputSize)+1)
	}

	src, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read")
	}

	if opts.MaxInputSize > 0 && len(src) > opts.MaxInputSize {
		return nil, errors.Wrapf(ErrInputTooLarge, "limit %d", opts.MaxInputSize)
	}

	return Decompress(src, opts)
}
