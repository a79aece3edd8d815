// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package cbor

import "math"

// Float16 holds the raw IEEE-754 binary16 bit pattern. Go has no native
// half-precision type, so this package represents it the same way
// aws-smithy-go's CBOR codec does for the same reason: as a bit pattern
// with explicit conversion helpers to and from float32.
type Float16 uint16

// Float32 widens f to the nearest float32, exactly (binary16 is a strict
// subset of binary32's exponent/mantissa range).
func (f Float16) Float32() float32 {
	return float16bitsToFloat32(uint16(f))
}

// Float16FromFloat32 narrows v to Float16. The conversion is not checked
// for precision loss; callers needing shrink-if-exact semantics must
// decide that outside it.
func Float16FromFloat32(v float32) Float16 {
	return Float16(float32ToFloat16bits(v))
}

func float16bitsToFloat32(b uint16) float32 {
	sign := uint32(b&0x8000) << 16
	exp := uint32(b&0x7c00) >> 10
	frac := uint32(b & 0x03ff)

	switch exp {
	case 0:
		if frac == 0 {
			return math.Float32frombits(sign)
		}
		// Subnormal: normalize by shifting until the implicit bit appears.
		e := int32(0)
		for frac&0x0400 == 0 {
			frac <<= 1
			e--
		}
		frac &^= 0x0400
		exp32 := uint32(127 - 15 + 1 + e)
		return math.Float32frombits(sign | exp32<<23 | frac<<13)
	case 0x1f:
		return math.Float32frombits(sign | 0xff<<23 | frac<<13)
	default:
		exp32 := exp - 15 + 127
		return math.Float32frombits(sign | exp32<<23 | frac<<13)
	}
}

func float32ToFloat16bits(v float32) uint16 {
	bits := math.Float32bits(v)
	sign := uint16(bits>>16) & 0x8000
	exp := int32(bits>>23) & 0xff
	frac := bits & 0x7fffff

	switch {
	case exp == 0xff:
		if frac != 0 {
			return sign | 0x7c00 | 0x0200 // NaN, quieted
		}
		return sign | 0x7c00 // Inf
	case exp == 0:
		return sign // zero or flushed subnormal
	}

	e := exp - 127 + 15
	switch {
	case e >= 0x1f:
		return sign | 0x7c00 // overflow to Inf
	case e <= 0:
		if e < -10 {
			return sign // underflow to zero
		}
		frac |= 0x800000
		shift := uint32(14 - e)
		return sign | uint16(frac>>shift)
	default:
		return sign | uint16(e)<<10 | uint16(frac>>13)
	}
}
