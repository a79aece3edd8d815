// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package cbor

import (
	"io"
	"math"
	"unicode/utf8"
	"unsafe"
)

// Decoder reads a single CBOR item (and its full contents) from one
// substrate: either a fixed byte slice or an io.Reader. A Decoder is not
// safe for concurrent use.
type Decoder struct {
	r      reader
	opts   Options
	record *[]byte
	// keyScratch backs record-field-key comparisons on a stream
	// substrate, per the tunable inline-key-length design note: keys up
	// to its length are copied here instead of allocating.
	keyScratch [256]byte
	depthTracker
}

// NewDecoderBuffer attaches a Decoder to data. Decoded byte and text
// spans alias data directly; the caller must not mutate or release data
// while any such span is still in use.
func NewDecoderBuffer(data []byte, opts Options) *Decoder {
	return &Decoder{r: newBufferReader(data), opts: opts, depthTracker: depthTracker{max: opts.MaxDepth}}
}

// NewDecoderReader attaches a Decoder to r through a refill buffer of
// opts.StreamBufferSize bytes.
func NewDecoderReader(r io.Reader, opts Options) *Decoder {
	return &Decoder{r: newStreamReader(r, opts.StreamBufferSize), opts: opts, depthTracker: depthTracker{max: opts.MaxDepth}}
}

// The Decoder itself satisfies the reader interface, forwarding to the
// attached substrate and, when record is set, mirroring every consumed
// byte into it. This lets readHead and Skip operate directly on a
// *Decoder without a separate recording wrapper.

func (d *Decoder) readByte() (byte, error) {
	b, err := d.r.readByte()
	if err == nil && d.record != nil {
		*d.record = append(*d.record, b)
	}
	return b, err
}

func (d *Decoder) peekByte() (byte, error) { return d.r.peekByte() }

func (d *Decoder) readSpan(n int) ([]byte, error) {
	s, err := d.r.readSpan(n)
	if err == nil && d.record != nil {
		*d.record = append(*d.record, s...)
	}
	return s, err
}

func (d *Decoder) readSpanInto(dst []byte) error {
	err := d.r.readSpanInto(dst)
	if err == nil && d.record != nil {
		*d.record = append(*d.record, dst...)
	}
	return err
}

func (d *Decoder) buffered() bool { return d.r.buffered() }
func (d *Decoder) pos() int64     { return d.r.pos() }

// Position reports the number of bytes consumed so far.
func (d *Decoder) Position() int64 { return d.pos() }

// Peek reports the next byte without consuming it, the non-consuming
// primitive the optional-value codec and the break-marker scan both rely
// on to behave identically on buffer and stream substrates.
func (d *Decoder) Peek() (byte, error) { return d.peekByte() }

// DecodeUint reads an unsigned integer of major type 0, failing with
// TypeMismatch on any other major type and IntegerOverflow if the decoded
// argument does not fit T.
func DecodeUint[T Unsigned](d *Decoder) (T, error) {
	h, err := readHead(d)
	if err != nil {
		return 0, err
	}
	if h.mt != mtUint {
		return 0, errf(TypeMismatch, "expected major type 0, got %d", h.mt)
	}
	if h.arg > uintMax(unsafe.Sizeof(T(0))) {
		return 0, errf(IntegerOverflow, "value %d overflows requested unsigned width", h.arg)
	}
	return T(h.arg), nil
}

// DecodeInt reads a signed integer of major type 0 (non-negative) or
// major type 1 (negative), failing with TypeMismatch on any other major
// type and IntegerOverflow if the magnitude does not fit T.
func DecodeInt[T Signed](d *Decoder) (T, error) {
	h, err := readHead(d)
	if err != nil {
		return 0, err
	}
	sz := unsafe.Sizeof(T(0))
	switch h.mt {
	case mtUint:
		if h.arg > intMax(sz) {
			return 0, errf(IntegerOverflow, "value %d overflows requested signed width", h.arg)
		}
		return T(h.arg), nil
	case mtNegInt:
		if h.arg == ^uint64(0) {
			return 0, errf(IntegerOverflow, "negative integer argument overflows")
		}
		magnitude := h.arg + 1
		if magnitude > intMinMagnitude(sz) {
			return 0, errf(IntegerOverflow, "value -%d overflows requested signed width", magnitude)
		}
		// -(argument+1) == ^argument in two's complement; avoids
		// overflowing int64 when magnitude equals 2^63.
		return T(^int64(h.arg)), nil
	default:
		return 0, errf(TypeMismatch, "expected major type 0 or 1, got %d", h.mt)
	}
}

// DecodeFloat16 requires major type 7 with AI 25 exactly.
func (d *Decoder) DecodeFloat16() (Float16, error) {
	h, err := readHead(d)
	if err != nil {
		return 0, err
	}
	if h.mt != mtSimple {
		return 0, errf(TypeMismatch, "expected major type 7, got %d", h.mt)
	}
	if h.ai != simpleHalf {
		return 0, errf(InvalidFloat, "additional info %d does not match binary16", h.ai)
	}
	return Float16(h.arg), nil
}

// DecodeFloat32 requires major type 7 with AI 26 exactly; no implicit
// widening from a half-precision encoding is performed.
func (d *Decoder) DecodeFloat32() (float32, error) {
	h, err := readHead(d)
	if err != nil {
		return 0, err
	}
	if h.mt != mtSimple {
		return 0, errf(TypeMismatch, "expected major type 7, got %d", h.mt)
	}
	if h.ai != simpleSingle {
		return 0, errf(InvalidFloat, "additional info %d does not match binary32", h.ai)
	}
	return math.Float32frombits(uint32(h.arg)), nil
}

// DecodeFloat64 requires major type 7 with AI 27 exactly.
func (d *Decoder) DecodeFloat64() (float64, error) {
	h, err := readHead(d)
	if err != nil {
		return 0, err
	}
	if h.mt != mtSimple {
		return 0, errf(TypeMismatch, "expected major type 7, got %d", h.mt)
	}
	if h.ai != simpleDouble {
		return 0, errf(InvalidFloat, "additional info %d does not match binary64", h.ai)
	}
	return math.Float64frombits(h.arg), nil
}

// DecodeBool requires major type 7 with AI 20 or 21. Any other major type
// 7 initial byte fails with InvalidBool before its argument bytes are read.
func (d *Decoder) DecodeBool() (bool, error) {
	b, err := d.peekByte()
	if err != nil {
		return false, err
	}
	if ai := b & fiveBitMask; b>>5 == mtSimple && ai != simpleFalse && ai != simpleTrue {
		return false, errf(InvalidBool, "additional info %d is not a boolean", ai)
	}
	h, err := readHead(d)
	if err != nil {
		return false, err
	}
	if h.mt != mtSimple {
		return false, errf(TypeMismatch, "expected major type 7, got %d", h.mt)
	}
	switch h.ai {
	case simpleFalse:
		return false, nil
	case simpleTrue:
		return true, nil
	default:
		return false, errf(InvalidBool, "additional info %d is not a boolean", h.ai)
	}
}

// DecodeNull requires exactly major type 7, AI 22.
func (d *Decoder) DecodeNull() error {
	h, err := readHead(d)
	if err != nil {
		return err
	}
	if h.mt != mtSimple || h.ai != simpleNull {
		return errf(TypeMismatch, "expected the null value")
	}
	return nil
}

// DecodeText reads a major type 3 item. In buffer mode the returned
// string aliases the input via an unsafe cast rather than copying, the
// same zero-copy trick glint.Reader.ReadString uses; the caller must not
// mutate the backing buffer while the string is live. In stream mode the
// bytes are always copied into a freshly allocated string, since the
// refill buffer is reused on the next read.
func (d *Decoder) DecodeText() (string, error) {
	b, err := d.decodeStringBytes(mtText)
	if err != nil {
		return "", err
	}
	if d.opts.ValidateUTF8 && !utf8.Valid(b) {
		return "", errf(InvalidUtf8, "text string is not well-formed UTF-8")
	}
	if d.buffered() {
		return unsafe.String(unsafe.SliceData(b), len(b)), nil
	}
	return string(b), nil
}

// DecodeBytes reads a major type 2 item, with the same zero-copy-in-buffer
// / copy-in-stream behavior as DecodeText.
func (d *Decoder) DecodeBytes() ([]byte, error) {
	b, err := d.decodeStringBytes(mtBytes)
	if err != nil {
		return nil, err
	}
	if d.buffered() {
		return b, nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (d *Decoder) decodeStringBytes(wantMT byte) ([]byte, error) {
	h, err := readHead(d)
	if err != nil {
		return nil, err
	}
	if h.mt != wantMT {
		return nil, errf(TypeMismatch, "expected major type %d, got %d", wantMT, h.mt)
	}
	if h.indefinite {
		return d.decodeStringBytesIndefinite(wantMT)
	}
	if h.arg > d.opts.MaxStringLength {
		return nil, errf(InvalidLength, "string of %d bytes exceeds max_string_length %d", h.arg, d.opts.MaxStringLength)
	}
	return d.readSpan(int(h.arg))
}

// decodeStringBytesIndefinite concatenates the chunks of an
// indefinite-length byte/text string; chunking always allocates since no
// substrate holds the pieces contiguously.
func (d *Decoder) decodeStringBytesIndefinite(wantMT byte) ([]byte, error) {
	if !d.opts.EnableIndefiniteLength {
		return nil, errf(InvalidIndefiniteLength, "indefinite-length strings are disabled")
	}
	var out []byte
	for {
		b, err := d.peekByte()
		if err != nil {
			return nil, err
		}
		if b == breakByte {
			d.readByte() //nolint:errcheck // already peeked successfully
			return out, nil
		}
		h, err := readHead(d)
		if err != nil {
			return nil, err
		}
		if h.mt != wantMT || h.indefinite {
			return nil, errf(InvalidIndefiniteLength, "chunk of indefinite-length string has wrong shape")
		}
		if uint64(len(out))+h.arg > d.opts.MaxStringLength {
			return nil, errf(InvalidLength, "indefinite-length string exceeds max_string_length %d", d.opts.MaxStringLength)
		}
		chunk, err := d.readSpan(int(h.arg))
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
}

// decodeFieldKeyBytes reads a record/map key, a major type 3 item with no
// UTF-8 validation (keys are compared byte-for-byte against field names
// which are themselves valid UTF-8). On a stream substrate the key is
// copied into keyScratch (or allocated, if longer) before the caller
// compares it, since a later refill would invalidate a zero-copy span;
// on a buffer substrate the returned slice aliases the input directly.
func (d *Decoder) decodeFieldKeyBytes() ([]byte, error) {
	h, err := readHead(d)
	if err != nil {
		return nil, err
	}
	if h.mt != mtText {
		return nil, errf(TypeMismatch, "expected text string for map/record key, got major type %d", h.mt)
	}
	if h.indefinite {
		return nil, errf(InvalidIndefiniteLength, "indefinite-length map keys are not supported")
	}
	if h.arg > d.opts.MaxStringLength {
		return nil, errf(InvalidLength, "key of %d bytes exceeds max_string_length %d", h.arg, d.opts.MaxStringLength)
	}
	if d.buffered() {
		return d.readSpan(int(h.arg))
	}
	var dst []byte
	if h.arg <= uint64(len(d.keyScratch)) {
		dst = d.keyScratch[:h.arg]
	} else {
		dst = make([]byte, h.arg)
	}
	if err := d.readSpanInto(dst); err != nil {
		return nil, err
	}
	return dst, nil
}

// DecodeSlice reads a major type 4 item, definite or indefinite, into a
// newly allocated slice using decodeElem for each element.
func DecodeSlice[T any](d *Decoder, decodeElem func(*Decoder) (T, error)) ([]T, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.exit()
	h, err := readHead(d)
	if err != nil {
		return nil, err
	}
	if h.mt != mtArray {
		return nil, errf(TypeMismatch, "expected major type 4, got %d", h.mt)
	}
	if h.indefinite {
		if !d.opts.EnableIndefiniteLength {
			return nil, errf(InvalidIndefiniteLength, "indefinite-length arrays are disabled")
		}
		var out []T
		for {
			b, err := d.peekByte()
			if err != nil {
				return nil, err
			}
			if b == breakByte {
				d.readByte() //nolint:errcheck
				return out, nil
			}
			if uint64(len(out)) >= d.opts.MaxCollectionSize {
				return nil, errf(InvalidLength, "array exceeds max_collection_size %d", d.opts.MaxCollectionSize)
			}
			v, err := decodeElem(d)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	if h.arg > d.opts.MaxCollectionSize {
		return nil, errf(InvalidLength, "array of %d elements exceeds max_collection_size %d", h.arg, d.opts.MaxCollectionSize)
	}
	out := make([]T, 0, h.arg)
	for i := uint64(0); i < h.arg; i++ {
		v, err := decodeElem(d)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// DecodeFixedSlice reads a major type 4 item whose element count must
// equal exactly L, failing with InvalidLength otherwise.
func DecodeFixedSlice[T any](d *Decoder, l int, decodeElem func(*Decoder) (T, error)) ([]T, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.exit()
	h, err := readHead(d)
	if err != nil {
		return nil, err
	}
	if h.mt != mtArray {
		return nil, errf(TypeMismatch, "expected major type 4, got %d", h.mt)
	}
	if h.indefinite {
		if !d.opts.EnableIndefiniteLength {
			return nil, errf(InvalidIndefiniteLength, "indefinite-length arrays are disabled")
		}
		out := make([]T, 0, l)
		for {
			b, err := d.peekByte()
			if err != nil {
				return nil, err
			}
			if uint64(len(out)) >= d.opts.MaxCollectionSize && b != breakByte {
				return nil, errf(InvalidLength, "array exceeds max_collection_size %d", d.opts.MaxCollectionSize)
			}
			if b == breakByte {
				if len(out) != l {
					return nil, errf(InvalidLength, "array has %d elements, want %d", len(out), l)
				}
				d.readByte() //nolint:errcheck
				return out, nil
			}
			if len(out) >= l {
				return nil, errf(InvalidLength, "array has more than %d elements", l)
			}
			v, err := decodeElem(d)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	if h.arg > d.opts.MaxCollectionSize {
		return nil, errf(InvalidLength, "array of %d elements exceeds max_collection_size %d", h.arg, d.opts.MaxCollectionSize)
	}
	if h.arg != uint64(l) {
		return nil, errf(InvalidLength, "array has %d elements, want %d", h.arg, l)
	}
	out := make([]T, 0, l)
	for i := 0; i < l; i++ {
		v, err := decodeElem(d)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
