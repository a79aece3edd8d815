// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package cbor

// Skip consumes exactly one complete encoded item without interpreting
// its contents, leaving the substrate position at the first byte past
// the item. It is the primitive [ExtractField] and [DecodeRecord] use to
// step over values they are not interested in.
func Skip(d *Decoder) error {
	h, err := readHead(d)
	if err != nil {
		return err
	}
	switch h.mt {
	case mtUint, mtNegInt:
		return nil // readHead already consumed the argument bytes.
	case mtBytes, mtText:
		if h.indefinite {
			return skipIndefiniteChunks(d, h.mt)
		}
		_, err := d.readSpan(int(h.arg))
		return err
	case mtArray:
		return skipComposite(d, h, 1)
	case mtMap:
		return skipComposite(d, h, 2)
	case mtTag:
		// The tag number itself was the argument readHead just consumed;
		// one following item remains to skip.
		return Skip(d)
	case mtSimple:
		return nil // readHead already consumed any float payload bytes.
	default:
		return errf(InvalidAdditionalInfo, "unknown major type %d", h.mt)
	}
}

// skipComposite skips an array (itemsPerEntry=1) or map
// (itemsPerEntry=2), definite or indefinite.
func skipComposite(d *Decoder, h head, itemsPerEntry int) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.exit()
	if h.indefinite {
		if !d.opts.EnableIndefiniteLength {
			return errf(InvalidIndefiniteLength, "indefinite-length items are disabled")
		}
		var entries uint64
		for {
			b, err := d.peekByte()
			if err != nil {
				return err
			}
			if b == breakByte {
				_, err := d.readByte()
				return err
			}
			if entries >= d.opts.MaxCollectionSize {
				return errf(InvalidLength, "item exceeds max_collection_size %d", d.opts.MaxCollectionSize)
			}
			for i := 0; i < itemsPerEntry; i++ {
				if err := Skip(d); err != nil {
					return err
				}
			}
			entries++
		}
	}
	if h.arg > d.opts.MaxCollectionSize {
		return errf(InvalidLength, "item of %d entries exceeds max_collection_size %d", h.arg, d.opts.MaxCollectionSize)
	}
	for i := uint64(0); i < h.arg*uint64(itemsPerEntry); i++ {
		if err := Skip(d); err != nil {
			return err
		}
	}
	return nil
}

// skipIndefiniteChunks skips the chunks of an indefinite-length byte or
// text string without concatenating their payloads.
func skipIndefiniteChunks(d *Decoder, mt byte) error {
	if !d.opts.EnableIndefiniteLength {
		return errf(InvalidIndefiniteLength, "indefinite-length strings are disabled")
	}
	for {
		b, err := d.peekByte()
		if err != nil {
			return err
		}
		if b == breakByte {
			_, err := d.readByte()
			return err
		}
		h, err := readHead(d)
		if err != nil {
			return err
		}
		if h.mt != mt || h.indefinite {
			return errf(InvalidIndefiniteLength, "chunk of indefinite-length string has wrong shape")
		}
		if _, err := d.readSpan(int(h.arg)); err != nil {
			return err
		}
	}
}

// ExtractField locates the first (by the duplicate-key policy, the last)
// entry named key inside the encoded map in data, decoding only that
// entry's value with decodeValue and skipping every other entry's value
// unread. found is false if no entry matches.
func ExtractField[T any](data []byte, key string, decodeValue func(*Decoder) (T, error), opts Options) (value T, found bool, err error) {
	d := NewDecoderBuffer(data, opts)
	h, err := readHead(d)
	if err != nil {
		return value, false, err
	}
	if h.mt != mtMap {
		return value, false, errf(TypeMismatch, "expected major type 5, got %d", h.mt)
	}
	matchValue := func() error {
		v, err := decodeValue(d)
		if err != nil {
			return err
		}
		value, found = v, true
		return nil
	}
	if h.indefinite {
		if !opts.EnableIndefiniteLength {
			return value, false, errf(InvalidIndefiniteLength, "indefinite-length maps are disabled")
		}
		var count uint64
		for {
			b, err := d.peekByte()
			if err != nil {
				return value, false, err
			}
			if b == breakByte {
				if _, err := d.readByte(); err != nil {
					return value, false, err
				}
				return value, found, nil
			}
			if count >= opts.MaxCollectionSize {
				return value, false, errf(InvalidLength, "map exceeds max_collection_size %d", opts.MaxCollectionSize)
			}
			k, err := d.decodeFieldKeyBytes()
			if err != nil {
				return value, false, err
			}
			if string(k) == key {
				if err := matchValue(); err != nil {
					return value, false, err
				}
				count++
				continue
			}
			if err := Skip(d); err != nil {
				return value, false, err
			}
			count++
		}
	}
	if h.arg > opts.MaxCollectionSize {
		return value, false, errf(InvalidLength, "map of %d entries exceeds max_collection_size %d", h.arg, opts.MaxCollectionSize)
	}
	for i := uint64(0); i < h.arg; i++ {
		k, err := d.decodeFieldKeyBytes()
		if err != nil {
			return value, false, err
		}
		if string(k) == key {
			if err := matchValue(); err != nil {
				return value, false, err
			}
			continue
		}
		if err := Skip(d); err != nil {
			return value, false, err
		}
	}
	return value, found, nil
}
