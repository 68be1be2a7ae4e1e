/*
 * uarch-step - Width-defined bit primitives
 *
 * Copyright 2025, the uarch-step authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package bitops implements the width-defined wrapping arithmetic and
// shift primitives the RV64I executor is built out of. Every operation
// here is defined at a fixed width (32 or 64 bits); Go's native integer
// wraparound already gives two's-complement wrapping semantics, so these
// helpers exist to pin down shift-amount masking and sign extension in
// one place rather than to work around undefined behavior.
package bitops

// SignExtend sign-extends the low (bit+1) bits of v, treating bit as the
// sign bit, to a full 64-bit value.
func SignExtend(v uint64, bit uint) uint64 {
	shift := 63 - bit
	return uint64(int64(v<<shift) >> shift)
}

// Shl64 shifts left, masking the count to 0-63 per RV64I shift semantics.
func Shl64(v uint64, count uint64) uint64 {
	return v << (count & 0x3F)
}

// Shr64 is a logical (unsigned) right shift, count masked to 0-63.
func Shr64(v uint64, count uint64) uint64 {
	return v >> (count & 0x3F)
}

// Sar64 is an arithmetic (sign-extending) right shift, count masked to 0-63.
func Sar64(v uint64, count uint64) uint64 {
	return uint64(int64(v) >> (count & 0x3F))
}

// Shl32 shifts left within 32 bits, count masked to 0-31.
func Shl32(v uint32, count uint32) uint32 {
	return v << (count & 0x1F)
}

// Shr32 is a logical right shift within 32 bits, count masked to 0-31.
func Shr32(v uint32, count uint32) uint32 {
	return v >> (count & 0x1F)
}

// Sar32 is an arithmetic right shift within 32 bits, count masked to 0-31.
func Sar32(v uint32, count uint32) uint32 {
	return uint32(int32(v) >> (count & 0x1F))
}

// SignExtend32To64 sign-extends a 32-bit result (the result of a -W
// instruction) to 64 bits.
func SignExtend32To64(v uint32) uint64 {
	return uint64(int64(int32(v)))
}

// CopyBits returns to with bits [offset, offset+count) replaced by the low
// count bits of from, preserving every other bit of to. ok is false (and
// to is returned unmodified) if the field would run past bit 63.
func CopyBits(from uint64, count uint, to uint64, offset uint) (result uint64, ok bool) {
	if offset+count > 64 {
		return to, false
	}
	if count == 64 {
		return from, true
	}
	mask := ((uint64(1) << count) - 1) << offset
	return (to &^ mask) | ((from << offset) & mask), true
}
