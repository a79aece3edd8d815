// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package cbor

// Major types (high 3 bits of the initial byte).
const (
	mtUint   byte = 0x00
	mtNegInt byte = 0x01
	mtBytes  byte = 0x02
	mtText   byte = 0x03
	mtArray  byte = 0x04
	mtMap    byte = 0x05
	mtTag    byte = 0x06
	mtSimple byte = 0x07
)

// Additional info (low 5 bits of the initial byte).
const (
	aiOneByte    byte = 24
	aiTwoByte    byte = 25
	aiFourByte   byte = 26
	aiEightByte  byte = 27
	aiReservedLo byte = 28
	aiReservedHi byte = 30
	aiIndefinite byte = 31
)

// Well-known MT7 (simple/float) argument values.
const (
	simpleFalse  byte = 20
	simpleTrue   byte = 21
	simpleNull   byte = 22
	simpleUndef  byte = 23
	simpleHalf   byte = 25
	simpleSingle byte = 26
	simpleDouble byte = 27
)

// breakByte is the single-byte terminator for an indefinite-length item
// (MT 7, AI 31).
const breakByte byte = 0xFF

// nullByte is the single-byte encoding of MT 7 AI 22, used by the
// non-consuming Optional peek.
const nullByte byte = mtSimple<<5 | simpleNull

const fiveBitMask byte = 0x1f
