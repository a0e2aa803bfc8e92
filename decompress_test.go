package lzjb

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecompressOverlappingBackReference(t *testing.T) {
	// "ab" then a match of length 4 at offset 2 that reads bytes it is producing.
	for _, tt := range []struct {
		name string
		enc  []byte
		opts *DecompressOptions
	}{
		{"WithSize", []byte{0x87, 0x04, 'a', 'b', 0x04, 0x02}, nil},
		{"Raw", []byte{0x04, 'a', 'b', 0x04, 0x02}, RawDecompressOptions()},
	} {
		t.Run(tt.name, func(t *testing.T) {
			dec, err := Decompress(tt.enc, tt.opts)
			require.NoError(t, err)
			require.Equal(t, []byte("ababab"), dec)
		})
	}
}

func TestDecompressEmpty(t *testing.T) {
	dec, err := Decompress(nil, nil)
	require.NoError(t, err)
	require.Empty(t, dec)

	dec, err = Decompress(nil, RawDecompressOptions())
	require.NoError(t, err)
	require.Empty(t, dec)
}

func TestDecompressCorrupt(t *testing.T) {
	for _, tt := range []struct {
		name string
		enc  []byte
		opts *DecompressOptions
	}{
		{"UnknownSize", []byte{0x80, 0x00, 'a'}, nil},
		{"TruncatedPrefix", []byte{0x01, 0x02}, nil},
		{"ControlByteOnly", []byte{0x82, 0x00}, nil},
		{"RawControlByteOnly", []byte{0x00}, RawDecompressOptions()},
		{"TruncatedMatch", []byte{0x02, 'a', 0x00}, RawDecompressOptions()},
		{"ZeroOffset", []byte{0x02, 'a', 0x00, 0x00}, RawDecompressOptions()},
		{"OffsetBeforeStart", []byte{0x02, 'a', 0x00, 0x02}, RawDecompressOptions()},
		{"ShorterThanDeclared", []byte{0x83, 0x00, 'a'}, nil},
		{"LongerThanDeclared", []byte{0x82, 0x02, 'a', 0x00, 0x01}, nil},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decompress(tt.enc, tt.opts)
			require.ErrorIs(t, err, ErrCorruptStream)
		})
	}
}

func TestDecompressTruncatedInputAlwaysFails(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789abcdef"), 256)
	enc, err := Compress(data, nil)
	require.NoError(t, err)

	for cut := 1; cut < len(enc); cut++ {
		_, err := Decompress(enc[:len(enc)-cut], nil)
		require.ErrorIs(t, err, ErrCorruptStream, "cut=%d", cut)
	}
}

func TestDecompressSizeFlagMismatch(t *testing.T) {
	data := bytes.Repeat([]byte("mismatch "), 300)

	sized, err := Compress(data, nil)
	require.NoError(t, err)
	raw, err := Compress(data, RawCompressOptions())
	require.NoError(t, err)

	// Whatever the outcome, a mismatch must not panic or return the original data.
	require.NotPanics(t, func() {
		dec, err := Decompress(sized, RawDecompressOptions())
		if err == nil {
			require.NotEqual(t, data, dec)
		}
	})
	require.NotPanics(t, func() {
		dec, err := Decompress(raw, nil)
		if err == nil {
			require.NotEqual(t, data, dec)
		}
	})
}

func TestDecompressMaxOutputSize(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 4096)

	enc, err := Compress(data, nil)
	require.NoError(t, err)
	_, err = Decompress(enc, &DecompressOptions{WithSize: true, MaxOutputSize: 1024})
	require.ErrorIs(t, err, ErrOutputTooLarge)

	dec, err := Decompress(enc, &DecompressOptions{WithSize: true, MaxOutputSize: len(data)})
	require.NoError(t, err)
	require.Equal(t, data, dec)

	raw, err := Compress(data, RawCompressOptions())
	require.NoError(t, err)
	_, err = Decompress(raw, &DecompressOptions{MaxOutputSize: 1024})
	require.ErrorIs(t, err, ErrOutputTooLarge)

	_, err = Decompress(raw, &DecompressOptions{MaxOutputSize: -1})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDecompressHugeDeclaredSize(t *testing.T) {
	// Prefix declares 1 GiB; must fail without trying to allocate it.
	enc := append(appendSize(nil, 1<<30), 0x00, 'a')
	_, err := Decompress(enc, nil)
	require.ErrorIs(t, err, ErrCorruptStream)
}

func TestDecompressFromReader(t *testing.T) {
	data := []byte(strings.Repeat("reader round trip ", 100))
	enc, err := Compress(data, nil)
	require.NoError(t, err)

	dec, err := DecompressFromReader(bytes.NewReader(enc), nil)
	require.NoError(t, err)
	require.Equal(t, data, dec)

	_, err = DecompressFromReader(nil, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = DecompressFromReader(bytes.NewReader(enc), &DecompressOptions{WithSize: true, MaxInputSize: len(enc) - 1})
	require.ErrorIs(t, err, ErrInputTooLarge)

	dec, err = DecompressFromReader(bytes.NewReader(enc), &DecompressOptions{WithSize: true, MaxInputSize: len(enc)})
	require.NoError(t, err)
	require.Equal(t, data, dec)
}
