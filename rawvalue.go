// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package cbor

// RawValue holds the exact encoded bytes of one complete CBOR item,
// captured without being parsed into a Go value. It plays the role the
// teacher's RawBytes type plays: a passthrough for a value a caller wants
// to forward or inspect later without paying for a full decode now.
type RawValue []byte

// EncodeRawValue writes v verbatim. Callers are responsible for v
// containing exactly one well-formed item; this does not re-validate it.
func (e *Encoder) EncodeRawValue(v RawValue) error {
	return e.w.writeSpan(v)
}

// DecodeRawValue captures the bytes of the next complete item by running
// Skip while recording every byte consumed.
func DecodeRawValue(d *Decoder) (RawValue, error) {
	var buf []byte
	prev := d.record
	d.record = &buf
	err := Skip(d)
	d.record = prev
	if err != nil {
		return nil, err
	}
	if prev != nil {
		*prev = append(*prev, buf...)
	}
	return RawValue(buf), nil
}
