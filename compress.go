// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/lzjb

package lzjb

// CompressBound returns the largest output Compress can produce for an input of
// length n: the size prefix, every byte as a literal and one control byte per 8 literals.
func CompressBound(n int, withSize bool) int {
	if n <= 0 {
		return 0
	}

	bound := n + (n+NBBY-1)/NBBY
	if withSize {
		bound += PrefixLen(n)
	}

	return bound
}

// Compress compresses src. Options nil means DefaultCompressOptions().
// The only error is ErrInvalidArgument for an invalid TableSize.
func Compress(src []byte, opts *CompressOptions) ([]byte, error) {
	if opts == nil {
		opts = DefaultCompressOptions()
	}

	tableSize, err := opts.tableSize()
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, CompressBound(len(src), opts.WithSize))
	if opts.WithSize {
		out = appendSize(out, len(src))
	}
	if len(src) == 0 {
		return out, nil
	}

	// lempel holds, per hash bucket, the last input position that hashed there.
	// One entry per bucket: collisions simply overwrite.
	lempel := make([]int, tableSize)
	mask := uint32(tableSize - 1) // #nosec G115 -- tableSize is at most MaxTableSize

	// tail is the last position where a full match can still be read from src.
	tail := len(src) - MatchMax

	var copyMask byte = 1 << (NBBY - 1)
	copyMap := 0
	i := 0
	for i < len(src) {
		// Shifting the top bit out starts a new group of 8 tokens.
		copyMask <<= 1
		if copyMask == 0 {
			copyMask = 1
			copyMap = len(out)
			out = append(out, 0)
		}

		if i > tail {
			out = append(out, src[i])
			i++
			continue
		}

		h := hash3(src[i], src[i+1], src[i+2], mask)
		offset := (i - lempel[h]) & OffsetMask
		lempel[h] = i
		cpy := i - offset

		if cpy >= 0 && cpy != i &&
			src[cpy] == src[i] &&
			src[cpy+1] == src[i+1] &&
			src[cpy+2] == src[i+2] {
			out[copyMap] |= copyMask

			length := MatchMin
			for length < MatchMax-1 && src[i+length] == src[cpy+length] {
				length++
			}

			// Token: 6-bit length-MatchMin, then the 10-bit offset big-endian.
			// #nosec G115 -- both values fit in a byte after shifting and masking.
			out = append(out,
				byte((length-MatchMin)<<(NBBY-MatchBits)|offset>>NBBY),
				byte(offset&0xff),
			)
			i += length
		} else {
			out = append(out, src[i])
			i++
		}
	}

	return out, nil
}

// hash3 maps the 3-byte window b0 b1 b2 to a match table bucket.
func hash3(b0, b1, b2 byte, mask uint32) int {
	h := uint32(b0)<<16 + uint32(b1)<<8 + uint32(b2)
	h += h >> 9
	h += h >> 5

	return int(h & mask)
}
