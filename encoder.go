// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package cbor

import (
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"
)

// Encoder writes a single CBOR item (and its full contents) to one
// substrate: either a fixed buffer or an io.Writer. An Encoder is not
// safe for concurrent use; each goroutine needing to encode must own its
// own instance, mirroring the single-threaded model the wire format
// assumes throughout.
type Encoder struct {
	w    writer
	opts Options
	depthTracker
}

// NewEncoderBuffer attaches an Encoder to a fixed-capacity byte slice.
// Writes past the end of buf fail with BufferOverflow rather than
// growing it.
func NewEncoderBuffer(buf []byte, opts Options) *Encoder {
	return &Encoder{w: newBufferWriter(buf), opts: opts, depthTracker: depthTracker{max: opts.MaxDepth}}
}

// NewEncoderWriter attaches an Encoder to an io.Writer through a staging
// buffer of opts.StreamBufferSize bytes. Call [Encoder.Flush] after the
// last Encode call to push any staged bytes out.
func NewEncoderWriter(w io.Writer, opts Options) *Encoder {
	return &Encoder{w: newStreamWriter(w, opts.StreamBufferSize), opts: opts, depthTracker: depthTracker{max: opts.MaxDepth}}
}

// Flush pushes any bytes staged by a stream-backed Encoder to the
// underlying writer. It is a no-op on a buffer-backed Encoder.
func (e *Encoder) Flush() error {
	if sw, ok := e.w.(*streamWriter); ok {
		return sw.Flush()
	}
	return nil
}

// EncodeUint writes v as major type 0.
func EncodeUint[T Unsigned](e *Encoder, v T) error {
	return writeHead(e.w, mtUint, uint64(v))
}

// EncodeInt writes v as major type 0 (non-negative) or major type 1
// (negative, argument = ^v, the two's-complement identity that avoids
// overflowing at the minimum signed value).
func EncodeInt[T Signed](e *Encoder, v T) error {
	if v >= 0 {
		return writeHead(e.w, mtUint, uint64(v))
	}
	return writeHead(e.w, mtNegInt, uint64(^v))
}

// EncodeFloat16 writes v with major type 7, AI 25.
func (e *Encoder) EncodeFloat16(v Float16) error {
	if err := writeSimple(e.w, simpleHalf); err != nil {
		return err
	}
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(v))
	return e.w.writeSpan(buf[:])
}

// EncodeFloat32 writes v with major type 7, AI 26.
func (e *Encoder) EncodeFloat32(v float32) error {
	if err := writeSimple(e.w, simpleSingle); err != nil {
		return err
	}
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], math.Float32bits(v))
	return e.w.writeSpan(buf[:])
}

// EncodeFloat64 writes v with major type 7, AI 27.
func (e *Encoder) EncodeFloat64(v float64) error {
	if err := writeSimple(e.w, simpleDouble); err != nil {
		return err
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
	return e.w.writeSpan(buf[:])
}

// EncodeBool writes v with major type 7, AI 20 or 21.
func (e *Encoder) EncodeBool(v bool) error {
	if v {
		return writeSimple(e.w, simpleTrue)
	}
	return writeSimple(e.w, simpleFalse)
}

// EncodeNull writes the null value, major type 7 AI 22.
func (e *Encoder) EncodeNull() error {
	return writeSimple(e.w, simpleNull)
}

// EncodeText writes s as major type 3, validating it as UTF-8 first when
// opts.ValidateUTF8 is set.
func (e *Encoder) EncodeText(s string) error {
	if uint64(len(s)) > e.opts.MaxStringLength {
		return errf(InvalidLength, "text string of %d bytes exceeds max_string_length %d", len(s), e.opts.MaxStringLength)
	}
	if e.opts.ValidateUTF8 && !utf8.ValidString(s) {
		return errf(InvalidUtf8, "text string is not well-formed UTF-8")
	}
	if err := writeHead(e.w, mtText, uint64(len(s))); err != nil {
		return err
	}
	return e.w.writeSpan([]byte(s))
}

// EncodeBytes writes b as major type 2.
func (e *Encoder) EncodeBytes(b []byte) error {
	if uint64(len(b)) > e.opts.MaxStringLength {
		return errf(InvalidLength, "byte string of %d bytes exceeds max_string_length %d", len(b), e.opts.MaxStringLength)
	}
	if err := writeHead(e.w, mtBytes, uint64(len(b))); err != nil {
		return err
	}
	return e.w.writeSpan(b)
}

// EncodeTextIndefinite writes chunks as an indefinite-length major type 3
// item, one definite-length chunk per element, failing with
// UnsupportedValue when opts.EnableIndefiniteLength is false. Each chunk
// is validated and length-checked the same way [Encoder.EncodeText] checks
// a whole string, and the total length is checked against MaxStringLength.
func (e *Encoder) EncodeTextIndefinite(chunks []string) error {
	if !e.opts.EnableIndefiniteLength {
		return errf(UnsupportedValue, "indefinite-length text emission is disabled")
	}
	var total uint64
	for _, s := range chunks {
		total += uint64(len(s))
	}
	if total > e.opts.MaxStringLength {
		return errf(InvalidLength, "text string of %d bytes exceeds max_string_length %d", total, e.opts.MaxStringLength)
	}
	if err := writeHeadIndefinite(e.w, mtText); err != nil {
		return err
	}
	for _, s := range chunks {
		if err := e.EncodeText(s); err != nil {
			return err
		}
	}
	return e.w.writeByte(breakByte)
}

// EncodeBytesIndefinite writes chunks as an indefinite-length major type 2
// item, one definite-length chunk per element, failing with
// UnsupportedValue when opts.EnableIndefiniteLength is false. The total
// length is checked against MaxStringLength.
func (e *Encoder) EncodeBytesIndefinite(chunks [][]byte) error {
	if !e.opts.EnableIndefiniteLength {
		return errf(UnsupportedValue, "indefinite-length byte string emission is disabled")
	}
	var total uint64
	for _, b := range chunks {
		total += uint64(len(b))
	}
	if total > e.opts.MaxStringLength {
		return errf(InvalidLength, "byte string of %d bytes exceeds max_string_length %d", total, e.opts.MaxStringLength)
	}
	if err := writeHeadIndefinite(e.w, mtBytes); err != nil {
		return err
	}
	for _, b := range chunks {
		if err := e.EncodeBytes(b); err != nil {
			return err
		}
	}
	return e.w.writeByte(breakByte)
}

// EncodeSlice writes s as major type 4: argument = len(s), then each
// element via encodeElem in order. It serves both the fixed-length array
// and dynamic-length sequence shapes of §4.3, which share one wire
// encoding.
func EncodeSlice[T any](e *Encoder, s []T, encodeElem func(*Encoder, T) error) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.exit()
	if uint64(len(s)) > e.opts.MaxCollectionSize {
		return errf(InvalidLength, "array of %d elements exceeds max_collection_size %d", len(s), e.opts.MaxCollectionSize)
	}
	if err := writeHead(e.w, mtArray, uint64(len(s))); err != nil {
		return err
	}
	for _, v := range s {
		if err := encodeElem(e, v); err != nil {
			return err
		}
	}
	return nil
}

// EncodeSliceIndefinite writes s as an indefinite-length major type 4
// item, failing with UnsupportedValue when opts.EnableIndefiniteLength is
// false.
func EncodeSliceIndefinite[T any](e *Encoder, s []T, encodeElem func(*Encoder, T) error) error {
	if !e.opts.EnableIndefiniteLength {
		return errf(UnsupportedValue, "indefinite-length array emission is disabled")
	}
	if err := e.enter(); err != nil {
		return err
	}
	defer e.exit()
	if uint64(len(s)) > e.opts.MaxCollectionSize {
		return errf(InvalidLength, "array of %d elements exceeds max_collection_size %d", len(s), e.opts.MaxCollectionSize)
	}
	if err := writeHeadIndefinite(e.w, mtArray); err != nil {
		return err
	}
	for _, v := range s {
		if err := encodeElem(e, v); err != nil {
			return err
		}
	}
	return e.w.writeByte(breakByte)
}
