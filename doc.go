// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

/*
Package cbor implements the deterministic-argument subset of RFC 8949
Concise Binary Object Representation (CBOR): the initial-byte/length
protocol, a type-directed encoder/decoder driven by the compile-time shape
of the value being converted, and a structural walker that can skip or
extract fields without fully materializing a value.

Tag (major type 6) values are never produced by [Encoder] and never
accepted by [Decoder]; [Skip] steps over them as an opaque wrapper so that
a tagged field nested inside an otherwise-untagged document does not break
traversal.

# Substrates

An [Encoder] or [Decoder] is attached to exactly one substrate for its
lifetime:

	enc := cbor.NewEncoderBuffer(buf, cbor.DefaultOptions())  // fixed []byte
	enc := cbor.NewEncoderWriter(w, cbor.DefaultOptions())    // io.Writer

	dec := cbor.NewDecoderBuffer(data, cbor.DefaultOptions()) // []byte, zero-copy
	dec := cbor.NewDecoderReader(r, cbor.DefaultOptions())    // io.Reader, refill buffer

Buffer-mode decodes that return a byte or text span alias the input slice;
the caller must not retain such a span past the lifetime of the input.
Stream-mode decodes copy into a newly allocated string or slice, because
the refill buffer is reused on the next read; there is no variant that
copies into a caller-supplied buffer.

# Type-directed dispatch

There is no reflection. A shape is encoded or decoded by calling the
matching [Encoder] / [Decoder] method or generic function directly:

	_ = cbor.EncodeUint(enc, uint32(1000000))
	_ = enc.EncodeText("hello")
	_ = cbor.EncodeSlice(enc, []int32{1, 2, 3, 4, 5}, cbor.EncodeInt)

Composite types implement [Marshaler] / [Unmarshaler] by calling these same
primitives, the way hand-written protocol encoders do:

	func (p Person) MarshalCBOR(enc *cbor.Encoder) error {
		return enc.EncodeRecord([]cbor.Field{
			{Name: "name", Encode: func(e *cbor.Encoder) error { return e.EncodeText(p.Name) }},
			{Name: "age", Encode: func(e *cbor.Encoder) error { return cbor.EncodeInt(e, p.Age) }},
			{Name: "active", Encode: func(e *cbor.Encoder) error { return e.EncodeBool(p.Active) }},
		})
	}

# Fields without full decode

[ExtractField] locates one named field inside an encoded record, decoding
only that field's value and skipping the rest:

	age, found, err := cbor.ExtractField(data, "age", cbor.DecodeInt[int], cbor.DefaultOptions())
*/
package cbor
