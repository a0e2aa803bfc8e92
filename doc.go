// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/lzjb

/*
Package lzjb implements LZJB compression and decompression.

Format: an optional size prefix, then one control byte per 8 tokens; bit 0 of a
control byte describes the first token of its group. Bit set = match (2 bytes),
bit clear = literal (1 byte).
Match: 6-bit length field (length-3 -> 3..65 bytes) and 10-bit backward offset
(1..1023), packed big-endian as [len<<2 | off>>8, off&0xff].
Size prefix: original length + 1 as big-endian base-128 digits, the last digit
marked with 0x80. Omitted for empty input, so an empty stream decodes to nothing.

Matches are found through a fixed-size hash table holding the most recent position
for each 3-byte window hash. The table has no chaining, and no matches are tried in
the last 66 bytes of input. Compression is a single pass with O(table) memory.

Every call owns its state; the package has no globals and is safe for concurrent use.

# Examples

Round-trip compress and decompress with default options (size prefix on):

	enc, err := lzjb.Compress(data, nil)
	if err != nil {
		return err
	}
	dec, err := lzjb.Decompress(enc, nil)
	if err != nil {
		return err
	}
	// dec equals data

Streams without the size prefix must be decoded with matching options:

	enc, _ := lzjb.Compress(data, lzjb.RawCompressOptions())
	dec, err := lzjb.Decompress(enc, lzjb.RawDecompressOptions())

Read the original length to pre-allocate or reject input before decoding:

	size, prefixLen, err := lzjb.DecodedSize(enc)
	if err != nil {
		return err
	}

Bound decoded output from untrusted input:

	opts := lzjb.DefaultDecompressOptions()
	opts.MaxOutputSize = 1 << 20
	dec, err := lzjb.Decompress(enc, opts)
	if errors.Is(err, lzjb.ErrOutputTooLarge) {
		// reject
	}

Malformed input is reported as ErrCorruptStream:

	if _, err := lzjb.Decompress(enc[:len(enc)-1], nil); errors.Is(err, lzjb.ErrCorruptStream) {
		// truncated or damaged
	}
*/
package lzjb
