// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package cbor

// Marshaler is implemented by a type that knows how to encode itself
// using an [Encoder]'s primitives directly, the way a hand-written
// protocol message would rather than through reflection.
type Marshaler interface {
	MarshalCBOR(*Encoder) error
}

// Unmarshaler is the decode-side counterpart of [Marshaler].
type Unmarshaler interface {
	UnmarshalCBOR(*Decoder) error
}

// Marshal encodes v into a freshly allocated byte slice using
// [DefaultOptions], via a pooled growable scratch buffer.
func Marshal(v Marshaler) ([]byte, error) {
	pb := getPooledBuffer()
	defer putPooledBuffer(pb)
	opts := DefaultOptions()
	e := &Encoder{w: pb, opts: opts, depthTracker: depthTracker{max: opts.MaxDepth}}
	if err := v.MarshalCBOR(e); err != nil {
		return nil, err
	}
	out := make([]byte, len(pb.buf))
	copy(out, pb.buf)
	return out, nil
}

// Unmarshal decodes data into v using [DefaultOptions]. The decode aliases
// data directly (buffer-mode semantics); callers must not mutate data
// while any value Unmarshal produced is still in use.
func Unmarshal(data []byte, v Unmarshaler) error {
	d := NewDecoderBuffer(data, DefaultOptions())
	return v.UnmarshalCBOR(d)
}
