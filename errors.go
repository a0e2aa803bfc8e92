// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/lzjb

package lzjb

import "github.com/go-faster/errors"

// Package errors. Match with errors.Is; returned errors wrap these with details.
var (
	// ErrCorruptStream is returned when compressed input cannot be decoded: a truncated
	// token or size prefix, a back-reference before the start of output, or a length
	// that disagrees with the size prefix. Decompressing with a WithSize value that does
	// not match the one used for compression is reported the same way.
	ErrCorruptStream = errors.New("corrupt lzjb stream")
	// ErrInvalidArgument is returned for invalid options or a nil reader.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOutputTooLarge is returned when decoded output would exceed DecompressOptions.MaxOutputSize.
	ErrOutputTooLarge = errors.New("output exceeds MaxOutputSize")
	// ErrInputTooLarge is returned when DecompressFromReader reads more than DecompressOptions.MaxInputSize bytes.
	ErrInputTooLarge = errors.New("input exceeds MaxInputSize")
)
