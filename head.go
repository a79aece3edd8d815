// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package cbor

import "encoding/binary"

// writeHead emits the initial byte and any argument-extension bytes for a
// definite-length item of major type mt whose argument is arg, choosing
// the shortest of the five length classes (inline 0-23, then 1/2/4/8
// follower bytes) exactly as RFC 8949 requires.
func writeHead(w writer, mt byte, arg uint64) error {
	switch {
	case arg < 24:
		return w.writeByte(mt<<5 | byte(arg))
	case arg <= 0xff:
		if err := w.writeByte(mt<<5 | aiOneByte); err != nil {
			return err
		}
		return w.writeByte(byte(arg))
	case arg <= 0xffff:
		if err := w.writeByte(mt<<5 | aiTwoByte); err != nil {
			return err
		}
		var buf [2]byte
		binary.BigEndian.PutUint16(buf[:], uint16(arg))
		return w.writeSpan(buf[:])
	case arg <= 0xffffffff:
		if err := w.writeByte(mt<<5 | aiFourByte); err != nil {
			return err
		}
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], uint32(arg))
		return w.writeSpan(buf[:])
	default:
		if err := w.writeByte(mt<<5 | aiEightByte); err != nil {
			return err
		}
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], arg)
		return w.writeSpan(buf[:])
	}
}

// writeHeadIndefinite emits the initial byte for an indefinite-length item
// of major type mt (AI 31); only arrays, maps, byte strings, and text
// strings may carry it.
func writeHeadIndefinite(w writer, mt byte) error {
	return w.writeByte(mt<<5 | aiIndefinite)
}

// writeSimple emits a major-type-7 initial byte with an inline argument,
// used for booleans, null, and the initial byte of the fixed-width floats
// (whose payload bytes the caller writes after it).
func writeSimple(w writer, arg byte) error {
	return w.writeByte(mtSimple<<5 | arg)
}

// head is a decoded initial-byte-plus-argument pair. indefinite is set for
// AI 31 on a major type that permits it; arg is meaningless in that case.
// ai is the raw additional-info field, preserved because major type 7
// reuses the 25/26/27 classes to mean "float width" rather than "argument
// byte count", and arg alone cannot distinguish those from an equal-valued
// shorter class.
type head struct {
	mt         byte
	ai         byte
	arg        uint64
	indefinite bool
}

// readHead reads one initial byte and any argument-extension bytes,
// uniformly across all eight major types: the AI 24-27 extra-byte rule is
// the same regardless of what mt turns out to be. Callers check mt
// themselves against what they expected.
func readHead(r reader) (head, error) {
	b, err := r.readByte()
	if err != nil {
		return head{}, err
	}
	mt := b >> 5
	ai := b & fiveBitMask
	switch {
	case ai < aiOneByte:
		return head{mt: mt, ai: ai, arg: uint64(ai)}, nil
	case ai == aiOneByte:
		b, err := r.readByte()
		if err != nil {
			return head{}, err
		}
		return head{mt: mt, ai: ai, arg: uint64(b)}, nil
	case ai == aiTwoByte:
		s, err := r.readSpan(2)
		if err != nil {
			return head{}, err
		}
		return head{mt: mt, ai: ai, arg: uint64(binary.BigEndian.Uint16(s))}, nil
	case ai == aiFourByte:
		s, err := r.readSpan(4)
		if err != nil {
			return head{}, err
		}
		return head{mt: mt, ai: ai, arg: uint64(binary.BigEndian.Uint32(s))}, nil
	case ai == aiEightByte:
		s, err := r.readSpan(8)
		if err != nil {
			return head{}, err
		}
		return head{mt: mt, ai: ai, arg: binary.BigEndian.Uint64(s)}, nil
	case ai >= aiReservedLo && ai <= aiReservedHi:
		return head{}, errf(InvalidAdditionalInfo, "reserved additional info %d in major type %d", ai, mt)
	default: // aiIndefinite
		if mt == mtUint || mt == mtNegInt || mt == mtTag {
			return head{}, errf(InvalidIndefiniteLength, "major type %d cannot be indefinite-length", mt)
		}
		if mt == mtSimple {
			return head{}, errf(InvalidBreakCode, "break code encountered outside an indefinite-length item")
		}
		return head{mt: mt, ai: ai, indefinite: true}, nil
	}
}

// minimalByteWidth reports the number of bytes writeHead would use for
// arg, used by tests asserting minimality.
func minimalByteWidth(arg uint64) int {
	switch {
	case arg < 24:
		return 1
	case arg <= 0xff:
		return 2
	case arg <= 0xffff:
		return 3
	case arg <= 0xffffffff:
		return 5
	default:
		return 9
	}
}
