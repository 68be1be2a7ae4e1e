/*
 * uarch-step - Sub-word addressing helpers shared by both memory backends
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

package rv64i

import "github.com/rcornwell/uarch-step/internal/bitops"

// AlignWord returns the 8-byte-aligned address containing addr.
func AlignWord(addr uint64) uint64 {
	return addr &^ 7
}

// BitOffset returns the bit offset of addr within its containing 8-byte
// word (0, 8, 16, ..., 56).
func BitOffset(addr uint64) uint {
	return uint(addr&7) * 8
}

// ExtractSubword pulls a count-bit field out of word at the bit offset
// addr implies, zero-extended.
func ExtractSubword(word uint64, addr uint64, count uint) uint64 {
	off := BitOffset(addr)
	if count == 64 {
		return word
	}
	return (word >> off) & ((uint64(1) << count) - 1)
}

// SpliceSubword returns word with its count-bit field at addr's bit
// offset replaced by the low count bits of v.
func SpliceSubword(word uint64, addr uint64, count uint, v uint64) uint64 {
	result, _ := bitops.CopyBits(v, count, word, BitOffset(addr))
	return result
}
