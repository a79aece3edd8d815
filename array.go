// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package cbor

// ShiftArray pulls the first element off a definite-length array in data
// without decoding the remaining elements, returning that element's raw
// bytes and a rewritten array (one shorter) covering the rest. An empty
// array returns an empty first element and data unchanged. On any other
// error, or when data does not hold a definite-length array at all, it
// returns (nil, data) unchanged.
func ShiftArray(data []byte, opts Options) (first RawValue, remaining []byte) {
	d := NewDecoderBuffer(data, opts)
	h, err := readHead(d)
	if err != nil || h.mt != mtArray || h.indefinite {
		return nil, data
	}
	if h.arg == 0 {
		return RawValue{}, data
	}
	elem, err := DecodeRawValue(d)
	if err != nil {
		return nil, data
	}
	tail := data[d.pos():]

	var headBuf [9]byte
	hw := newBufferWriter(headBuf[:])
	if err := writeHead(hw, mtArray, h.arg-1); err != nil {
		return nil, data
	}
	newHead := headBuf[:hw.p]

	remaining = make([]byte, 0, len(newHead)+len(tail))
	remaining = append(remaining, newHead...)
	remaining = append(remaining, tail...)
	return elem, remaining
}
