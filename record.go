// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package cbor

// Field pairs a record field's wire name with the function that encodes
// its value, in the declared order [Encoder.EncodeRecord] writes them.
type Field struct {
	Name   string
	Encode func(*Encoder) error
}

// EncodeRecord writes fields as major type 5: argument = len(fields),
// then for each field its name as a text string followed by its value,
// in declared order.
func (e *Encoder) EncodeRecord(fields []Field) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.exit()
	if uint64(len(fields)) > e.opts.MaxCollectionSize {
		return errf(InvalidLength, "record of %d fields exceeds max_collection_size %d", len(fields), e.opts.MaxCollectionSize)
	}
	if err := writeHead(e.w, mtMap, uint64(len(fields))); err != nil {
		return err
	}
	for _, f := range fields {
		if err := e.EncodeText(f.Name); err != nil {
			return err
		}
		if err := f.Encode(e); err != nil {
			return err
		}
	}
	return nil
}

// EncodeRecordIndefinite writes fields as an indefinite-length major type
// 5 item, failing with UnsupportedValue when opts.EnableIndefiniteLength
// is false.
func (e *Encoder) EncodeRecordIndefinite(fields []Field) error {
	if !e.opts.EnableIndefiniteLength {
		return errf(UnsupportedValue, "indefinite-length record emission is disabled")
	}
	if err := e.enter(); err != nil {
		return err
	}
	defer e.exit()
	if uint64(len(fields)) > e.opts.MaxCollectionSize {
		return errf(InvalidLength, "record of %d fields exceeds max_collection_size %d", len(fields), e.opts.MaxCollectionSize)
	}
	if err := writeHeadIndefinite(e.w, mtMap); err != nil {
		return err
	}
	for _, f := range fields {
		if err := e.EncodeText(f.Name); err != nil {
			return err
		}
		if err := f.Encode(e); err != nil {
			return err
		}
	}
	return e.w.writeByte(breakByte)
}

// FieldDecoder pairs a record field's wire name with the function that
// decodes its value. Optional marks the field as permitted to be absent
// from the encoded map; DecodeRecord fails with MissingRequiredField if a
// non-optional field's bit is never set.
type FieldDecoder struct {
	Name     string
	Decode   func(*Decoder) error
	Optional bool
}

// DecodeRecord reads a major type 5 item, matching each entry's key
// against fields by name. A key matching no field has its value skipped
// unread. Duplicate keys: the last matching occurrence wins, since each
// match simply overwrites the previous decode into the same field.
func DecodeRecord(d *Decoder, fields []FieldDecoder) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.exit()
	h, err := readHead(d)
	if err != nil {
		return err
	}
	if h.mt != mtMap {
		return errf(TypeMismatch, "expected major type 5, got %d", h.mt)
	}

	seen := make([]bool, len(fields))
	var seenKeys map[string]bool
	if !d.opts.AllowDuplicateKeys {
		seenKeys = make(map[string]bool, len(fields))
	}
	consumeEntry := func() error {
		keyBytes, err := d.decodeFieldKeyBytes()
		if err != nil {
			return err
		}
		key := string(keyBytes)
		if seenKeys != nil {
			if seenKeys[key] {
				return errf(MalformedInput, "duplicate record key %q", key)
			}
			seenKeys[key] = true
		}
		for i, f := range fields {
			if f.Name == key {
				if err := f.Decode(d); err != nil {
					return err
				}
				seen[i] = true
				return nil
			}
		}
		return Skip(d)
	}

	if h.indefinite {
		if !d.opts.EnableIndefiniteLength {
			return errf(InvalidIndefiniteLength, "indefinite-length maps are disabled")
		}
		var count uint64
		for {
			b, err := d.peekByte()
			if err != nil {
				return err
			}
			if b == breakByte {
				if _, err := d.readByte(); err != nil {
					return err
				}
				break
			}
			if count >= d.opts.MaxCollectionSize {
				return errf(InvalidLength, "record exceeds max_collection_size %d", d.opts.MaxCollectionSize)
			}
			if err := consumeEntry(); err != nil {
				return err
			}
			count++
		}
	} else {
		if h.arg > d.opts.MaxCollectionSize {
			return errf(InvalidLength, "record of %d fields exceeds max_collection_size %d", h.arg, d.opts.MaxCollectionSize)
		}
		for i := uint64(0); i < h.arg; i++ {
			if err := consumeEntry(); err != nil {
				return err
			}
		}
	}

	for i, f := range fields {
		if !seen[i] && !f.Optional {
			return errf(MissingRequiredField, "required field %q was absent", f.Name)
		}
	}
	return nil
}
