package lzjb

import "io"

// sliceByteReader reads a compressed stream held in memory and tracks how far it got.
type sliceByteReader struct {
	data []byte // Compressed input.
	pos  int    // Offset of the next unread byte.
}

// countingByteReader counts bytes taken from a stream so callers can report
// how much of it a size prefix used.
type countingByteReader struct {
	base  io.ByteReader // Underlying stream.
	count int64         // Bytes read so far.
}

// ReadByte returns the next input byte or io.EOF at the end of data.
func (r *sliceByteReader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}

	b := r.data[r.pos]
	r.pos++

	return b, nil
}

// ReadByte reads one byte from base; failed reads are not counted.
func (r *countingByteReader) ReadByte() (byte, error) {
	b, err := r.base.ReadByte()
	if err != nil {
		return 0, err
	}

	r.count++

	return b, nil
}
