// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package cbor

// Options configures an [Encoder] or [Decoder] at construction time. There
// is no functional-options builder here; a plain struct is set once.
type Options struct {
	// MaxStringLength bounds the accepted/produced byte length of text and
	// byte strings.
	MaxStringLength uint64

	// MaxCollectionSize bounds the accepted/produced element count of
	// arrays and maps (a map's element count is its pair count, not its
	// item count).
	MaxCollectionSize uint64

	// MaxDepth bounds nested-item depth across arrays, maps, and
	// indefinite-length items.
	MaxDepth int

	// StreamBufferSize is the capacity of the refill/stage buffer used when
	// a [Decoder] or [Encoder] is attached to a stream substrate.
	StreamBufferSize int

	// EnableIndefiniteLength allows indefinite-length arrays, maps, byte
	// strings, and text strings to be produced and accepted. When false,
	// encoding one fails with UnsupportedValue and decoding one fails with
	// InvalidIndefiniteLength.
	EnableIndefiniteLength bool

	// ValidateUTF8, when true, rejects ill-formed UTF-8 in text strings on
	// both encode and decode.
	ValidateUTF8 bool

	// UseSIMD is an advisory hint to select accelerated validate/copy
	// primitives where available. It has no semantic effect on this
	// implementation, which validates UTF-8 and copies spans through
	// unicode/utf8 and the builtin copy; the field exists so the option
	// is substitutable by a build carrying an accelerated path, per the
	// source's placeholder SIMD module.
	UseSIMD bool

	// AllowDuplicateKeys, when false, fails [DecodeRecord] with
	// MalformedInput the first time a key repeats. When true (the
	// default), the last occurrence of a repeated key wins. [ExtractField]
	// does not consult it and always lets the last matching key win.
	AllowDuplicateKeys bool
}

// DefaultOptions returns conservative limits suitable for decoding
// untrusted input: generous but bounded string/collection sizes, a depth
// limit deep enough for realistic documents, and UTF-8 validation enabled.
func DefaultOptions() Options {
	return Options{
		MaxStringLength:        1 << 20,
		MaxCollectionSize:      1 << 16,
		MaxDepth:               32,
		StreamBufferSize:       4096,
		EnableIndefiniteLength: true,
		ValidateUTF8:           true,
		UseSIMD:                false,
		AllowDuplicateKeys:     true,
	}
}
