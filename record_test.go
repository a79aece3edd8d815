// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package cbor_test

import (
	"testing"

	"github.com/ndarilek/gocbor"
)

func TestEncodeDecodeRecordRoundTrip(t *testing.T) {
	var name string
	var age int64

	buf := make([]byte, 64)
	enc := cbor.NewEncoderBuffer(buf, cbor.DefaultOptions())
	if err := enc.EncodeRecord([]cbor.Field{
		{Name: "name", Encode: func(e *cbor.Encoder) error { return e.EncodeText("Ada") }},
		{Name: "age", Encode: func(e *cbor.Encoder) error { return cbor.EncodeInt(e, int64(42)) }},
	}); err != nil {
		t.Fatalf("EncodeRecord: %v", err)
	}

	dec := cbor.NewDecoderBuffer(buf, cbor.DefaultOptions())
	err := cbor.DecodeRecord(dec, []cbor.FieldDecoder{
		{Name: "name", Decode: func(d *cbor.Decoder) error {
			v, err := d.DecodeText()
			name = v
			return err
		}},
		{Name: "age", Decode: func(d *cbor.Decoder) error {
			v, err := cbor.DecodeInt[int64](d)
			age = v
			return err
		}},
	})
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if name != "Ada" || age != 42 {
		t.Errorf("got name=%q age=%d", name, age)
	}
}

func TestDecodeRecordMissingRequiredField(t *testing.T) {
	buf := make([]byte, 32)
	enc := cbor.NewEncoderBuffer(buf, cbor.DefaultOptions())
	if err := enc.EncodeRecord([]cbor.Field{
		{Name: "name", Encode: func(e *cbor.Encoder) error { return e.EncodeText("Ada") }},
	}); err != nil {
		t.Fatalf("EncodeRecord: %v", err)
	}

	dec := cbor.NewDecoderBuffer(buf, cbor.DefaultOptions())
	err := cbor.DecodeRecord(dec, []cbor.FieldDecoder{
		{Name: "name", Decode: func(d *cbor.Decoder) error { _, err := d.DecodeText(); return err }},
		{Name: "age", Decode: func(d *cbor.Decoder) error { _, err := cbor.DecodeInt[int64](d); return err }},
	})
	if !cbor.Is(err, cbor.MissingRequiredField) {
		t.Errorf("expected MissingRequiredField, got %v", err)
	}
}

func TestDecodeRecordOptionalFieldAbsent(t *testing.T) {
	buf := make([]byte, 32)
	enc := cbor.NewEncoderBuffer(buf, cbor.DefaultOptions())
	if err := enc.EncodeRecord([]cbor.Field{
		{Name: "name", Encode: func(e *cbor.Encoder) error { return e.EncodeText("Ada") }},
	}); err != nil {
		t.Fatalf("EncodeRecord: %v", err)
	}

	dec := cbor.NewDecoderBuffer(buf, cbor.DefaultOptions())
	var age int64 = -1
	err := cbor.DecodeRecord(dec, []cbor.FieldDecoder{
		{Name: "name", Decode: func(d *cbor.Decoder) error { _, err := d.DecodeText(); return err }},
		{Name: "age", Optional: true, Decode: func(d *cbor.Decoder) error {
			v, err := cbor.DecodeInt[int64](d)
			age = v
			return err
		}},
	})
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if age != -1 {
		t.Errorf("expected optional field decoder never invoked, age=%d", age)
	}
}

func TestDecodeRecordDuplicateKeyRejected(t *testing.T) {
	buf := make([]byte, 64)
	enc := cbor.NewEncoderBuffer(buf, cbor.DefaultOptions())
	if err := enc.EncodeRecord([]cbor.Field{
		{Name: "name", Encode: func(e *cbor.Encoder) error { return e.EncodeText("Ada") }},
		{Name: "name", Encode: func(e *cbor.Encoder) error { return e.EncodeText("Grace") }},
	}); err != nil {
		t.Fatalf("EncodeRecord: %v", err)
	}

	opts := cbor.DefaultOptions()
	opts.AllowDuplicateKeys = false
	dec := cbor.NewDecoderBuffer(buf, opts)
	err := cbor.DecodeRecord(dec, []cbor.FieldDecoder{
		{Name: "name", Decode: func(d *cbor.Decoder) error { _, err := d.DecodeText(); return err }},
	})
	if !cbor.Is(err, cbor.MalformedInput) {
		t.Errorf("expected MalformedInput, got %v", err)
	}
}

func TestDecodeRecordDuplicateKeyLastWins(t *testing.T) {
	buf := make([]byte, 64)
	enc := cbor.NewEncoderBuffer(buf, cbor.DefaultOptions())
	if err := enc.EncodeRecord([]cbor.Field{
		{Name: "name", Encode: func(e *cbor.Encoder) error { return e.EncodeText("Ada") }},
		{Name: "name", Encode: func(e *cbor.Encoder) error { return e.EncodeText("Grace") }},
	}); err != nil {
		t.Fatalf("EncodeRecord: %v", err)
	}

	dec := cbor.NewDecoderBuffer(buf, cbor.DefaultOptions())
	var name string
	err := cbor.DecodeRecord(dec, []cbor.FieldDecoder{
		{Name: "name", Decode: func(d *cbor.Decoder) error {
			v, err := d.DecodeText()
			name = v
			return err
		}},
	})
	if err != nil {
		t.Fatalf("DecodeRecord: %v", err)
	}
	if name != "Grace" {
		t.Errorf("expected last occurrence to win, got %q", name)
	}
}

func TestExtractFieldNotFound(t *testing.T) {
	buf := make([]byte, 32)
	enc := cbor.NewEncoderBuffer(buf, cbor.DefaultOptions())
	if err := enc.EncodeRecord([]cbor.Field{
		{Name: "name", Encode: func(e *cbor.Encoder) error { return e.EncodeText("Ada") }},
	}); err != nil {
		t.Fatalf("EncodeRecord: %v", err)
	}

	_, found, err := cbor.ExtractField(buf, "missing", func(d *cbor.Decoder) (string, error) { return d.DecodeText() }, cbor.DefaultOptions())
	if err != nil {
		t.Fatalf("ExtractField: %v", err)
	}
	if found {
		t.Errorf("expected found=false for absent key")
	}
}

func TestDecodeRecordExceedsMaxCollectionSize(t *testing.T) {
	buf := make([]byte, 64)
	enc := cbor.NewEncoderBuffer(buf, cbor.DefaultOptions())
	if err := enc.EncodeRecord([]cbor.Field{
		{Name: "a", Encode: func(e *cbor.Encoder) error { return cbor.EncodeInt(e, int64(1)) }},
		{Name: "b", Encode: func(e *cbor.Encoder) error { return cbor.EncodeInt(e, int64(2)) }},
		{Name: "c", Encode: func(e *cbor.Encoder) error { return cbor.EncodeInt(e, int64(3)) }},
	}); err != nil {
		t.Fatalf("EncodeRecord: %v", err)
	}

	opts := cbor.DefaultOptions()
	opts.MaxCollectionSize = 2
	dec := cbor.NewDecoderBuffer(buf, opts)
	err := cbor.DecodeRecord(dec, nil)
	if !cbor.Is(err, cbor.InvalidLength) {
		t.Errorf("expected InvalidLength, got %v", err)
	}
}

func TestDecodeRecordIndefiniteExceedsMaxCollectionSize(t *testing.T) {
	buf := make([]byte, 64)
	enc := cbor.NewEncoderBuffer(buf, cbor.DefaultOptions())
	if err := enc.EncodeRecordIndefinite([]cbor.Field{
		{Name: "a", Encode: func(e *cbor.Encoder) error { return cbor.EncodeInt(e, int64(1)) }},
		{Name: "b", Encode: func(e *cbor.Encoder) error { return cbor.EncodeInt(e, int64(2)) }},
		{Name: "c", Encode: func(e *cbor.Encoder) error { return cbor.EncodeInt(e, int64(3)) }},
	}); err != nil {
		t.Fatalf("EncodeRecordIndefinite: %v", err)
	}

	opts := cbor.DefaultOptions()
	opts.MaxCollectionSize = 2
	dec := cbor.NewDecoderBuffer(buf, opts)
	err := cbor.DecodeRecord(dec, nil)
	if !cbor.Is(err, cbor.InvalidLength) {
		t.Errorf("expected InvalidLength, got %v", err)
	}
}

func TestExtractFieldExceedsMaxCollectionSize(t *testing.T) {
	buf := make([]byte, 64)
	enc := cbor.NewEncoderBuffer(buf, cbor.DefaultOptions())
	if err := enc.EncodeRecord([]cbor.Field{
		{Name: "a", Encode: func(e *cbor.Encoder) error { return cbor.EncodeInt(e, int64(1)) }},
		{Name: "b", Encode: func(e *cbor.Encoder) error { return cbor.EncodeInt(e, int64(2)) }},
		{Name: "c", Encode: func(e *cbor.Encoder) error { return cbor.EncodeInt(e, int64(3)) }},
	}); err != nil {
		t.Fatalf("EncodeRecord: %v", err)
	}

	opts := cbor.DefaultOptions()
	opts.MaxCollectionSize = 2
	_, _, err := cbor.ExtractField(buf, "c", cbor.DecodeInt[int64], opts)
	if !cbor.Is(err, cbor.InvalidLength) {
		t.Errorf("expected InvalidLength, got %v", err)
	}
}

func TestDecodeFixedSliceLengthMismatch(t *testing.T) {
	buf := make([]byte, 16)
	enc := cbor.NewEncoderBuffer(buf, cbor.DefaultOptions())
	if err := cbor.EncodeSlice(enc, []uint32{1, 2, 3}, cbor.EncodeUint[uint32]); err != nil {
		t.Fatalf("EncodeSlice: %v", err)
	}

	dec := cbor.NewDecoderBuffer(buf, cbor.DefaultOptions())
	_, err := cbor.DecodeFixedSlice(dec, 2, cbor.DecodeUint[uint32])
	if !cbor.Is(err, cbor.InvalidLength) {
		t.Errorf("expected InvalidLength, got %v", err)
	}
}
