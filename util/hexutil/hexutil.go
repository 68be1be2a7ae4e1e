/*
 * uarch-step - Convert hex to strings.
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

// Package hexutil formats the values the CLI needs to print — 64-bit
// words, addresses, register files — the same manual-lookup-table way the
// teacher's util/hex formats S/370 halfwords and bytes, generalized to
// RV64I's 64-bit register and memory width.
package hexutil

import "strings"

var hexMap = "0123456789ABCDEF"

// FormatWord64 appends the 16 hex digits of w to str, no separator.
func FormatWord64(str *strings.Builder, w uint64) {
	shift := 60
	for range 16 {
		str.WriteByte(hexMap[(w>>shift)&0xf])
		shift -= 4
	}
}

// FormatWords64 appends each of words as 16 hex digits, space-separated.
func FormatWords64(str *strings.Builder, words []uint64) {
	for i, w := range words {
		if i != 0 {
			str.WriteByte(' ')
		}
		FormatWord64(str, w)
	}
}

// FormatAddr appends addr as "0x" followed by 16 hex digits.
func FormatAddr(str *strings.Builder, addr uint64) {
	str.WriteString("0x")
	FormatWord64(str, addr)
}

// FormatRegs appends a 32-register file as four rows of eight "xN=value"
// entries, matching the density an operator expects from a `show regs`.
func FormatRegs(str *strings.Builder, regs [32]uint64) {
	for i, v := range regs {
		if i != 0 && i%8 == 0 {
			str.WriteByte('\n')
		} else if i != 0 {
			str.WriteByte(' ')
		}
		str.WriteByte('x')
		FormatDecimal(str, uint8(i))
		str.WriteByte('=')
		FormatWord64(str, v)
	}
}

// FormatDecimal appends num in decimal, no leading zeros.
func FormatDecimal(str *strings.Builder, num uint8) {
	switch {
	case num >= 100:
		str.WriteByte(hexMap[num/100])
		num %= 100
		str.WriteByte(hexMap[num/10])
		num %= 10
	case num >= 10:
		str.WriteByte(hexMap[num/10])
		num %= 10
	}
	str.WriteByte(hexMap[num])
}
