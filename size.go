// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/lzjb

package lzjb

import (
	"bufio"
	"io"
	"math"

	"github.com/go-faster/errors"
)

// sizeTerm marks the last (least significant) digit of a size prefix.
const sizeTerm = 0x80

// maxSizeDigits is the longest prefix an int length can produce (64 bits / 7).
const maxSizeDigits = 10

// appendSize appends the size prefix for an input of length n to dst.
// The prefix stores n+1 as big-endian base-128 digits; the final digit carries
// sizeTerm. n == 0 appends nothing.
func appendSize(dst []byte, n int) []byte {
	if n <= 0 {
		return dst
	}

	var digits [maxSizeDigits]byte
	v := uint64(n) + 1
	i := len(digits) - 1
	digits[i] = byte(v&0x7f) | sizeTerm
	v >>= 7
	for v != 0 {
		i--
		digits[i] = byte(v & 0x7f)
		v >>= 7
	}

	return append(dst, digits[i:]...)
}

// PrefixLen returns the number of size prefix bytes Compress writes for an input of length n.
func PrefixLen(n int) int {
	if n <= 0 {
		return 0
	}

	l := 1
	for v := (uint64(n) + 1) >> 7; v != 0; v >>= 7 {
		l++
	}

	return l
}

// DecodedSize returns the original length recorded in the size prefix of src and
// the number of prefix bytes. A size of -1 means the stream does not record its
// length. An empty src is the encoding of an empty payload and yields (0, 0, nil).
func DecodedSize(src []byte) (size int, n int, err error) {
	reader := &sliceByteReader{data: src}
	size, err = decodeSize(reader)
	if err != nil {
		return 0, reader.pos, err
	}

	return size, reader.pos, nil
}

// DecodedSizeFromReader reads a size prefix from r and returns the original length
// and the number of prefix bytes consumed. An io.ByteReader is not read past the
// prefix; any other reader is buffered and may be read ahead.
func DecodedSizeFromReader(r io.Reader) (size int, n int64, err error) {
	if r == nil {
		return 0, 0, errors.Wrap(ErrInvalidArgument, "reader is nil")
	}

	var byteReader io.ByteReader
	if existing, ok := r.(io.ByteReader); ok {
		byteReader = existing
	} else {
		byteReader = bufio.NewReader(r)
	}

	countingReader := &countingByteReader{base: byteReader}
	size, err = decodeSize(countingReader)
	if err != nil {
		return 0, countingReader.count, err
	}

	return size, countingReader.count, nil
}

// decodeSize reads one size prefix from r. End of input before the first byte
// means an empty payload; end of input after it means a truncated prefix.
func decodeSize(r io.ByteReader) (int, error) {
	var v uint64
	for i := 0; ; i++ {
		c, err := r.ReadByte()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return 0, errors.Wrap(err, "read size prefix")
			}
			if i == 0 {
				return 0, nil
			}

			return 0, errors.Wrapf(ErrCorruptStream, "size prefix truncated after %d bytes", i)
		}

		if c&sizeTerm != 0 {
			v |= uint64(c & 0x7f)
			break
		}

		v |= uint64(c)
		if v > math.MaxInt>>7 {
			return 0, errors.Wrap(ErrCorruptStream, "size prefix overflows int")
		}
		v <<= 7
	}

	return int(v) - 1, nil // #nosec G115 -- v <= math.MaxInt
}
