// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package cbor

// Optional holds either a value of T or absence, the wire-level
// equivalent of a field that may be null. It plays the role sql.NullXxx
// types play for database columns.
type Optional[T any] struct {
	Value   T
	Present bool
}

// Some wraps v as present.
func Some[T any](v T) Optional[T] { return Optional[T]{Value: v, Present: true} }

// None returns an absent Optional[T].
func None[T any]() Optional[T] { return Optional[T]{} }

// EncodeOptional writes the null value if o is absent, otherwise
// delegates to encodeValue.
func EncodeOptional[T any](e *Encoder, o Optional[T], encodeValue func(*Encoder, T) error) error {
	if !o.Present {
		return e.EncodeNull()
	}
	return encodeValue(e, o.Value)
}

// DecodeOptional peeks the next byte; if it is the null-value byte, it is
// consumed and an absent Optional is returned without calling decodeValue
// at all. This is the non-consuming-peek design the optional shape
// requires so the same logic works on both a buffer and a stream
// substrate: a buffered decoder could instead consume-then-rewind, but a
// stream decoder cannot un-consume bytes already pulled from the reader.
func DecodeOptional[T any](d *Decoder, decodeValue func(*Decoder) (T, error)) (Optional[T], error) {
	b, err := d.Peek()
	if err != nil {
		return Optional[T]{}, err
	}
	if b == nullByte {
		if _, err := d.readByte(); err != nil {
			return Optional[T]{}, err
		}
		return Optional[T]{}, nil
	}
	v, err := decodeValue(d)
	if err != nil {
		return Optional[T]{}, err
	}
	return Optional[T]{Value: v, Present: true}, nil
}
