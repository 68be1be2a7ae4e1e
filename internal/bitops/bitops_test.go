package bitops

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

import "testing"

func TestSignExtend(t *testing.T) {
	if got := SignExtend(0xFF, 7); got != 0xFFFFFFFFFFFFFFFF {
		t.Errorf("SignExtend(0xFF, 7) = %#x, want all-ones", got)
	}
	if got := SignExtend(0x7F, 7); got != 0x7F {
		t.Errorf("SignExtend(0x7F, 7) = %#x, want 0x7F", got)
	}
	if got := SignExtend(0xFFF, 11); got != 0xFFFFFFFFFFFFFFFF {
		t.Errorf("SignExtend(0xFFF, 11) = %#x, want all-ones", got)
	}
}

func TestShiftMasking(t *testing.T) {
	if got := Shl64(1, 64); got != 1 {
		t.Errorf("Shl64(1, 64) = %#x, want 1 (count masked to 0)", got)
	}
	if got := Shr64(0x8000000000000000, 64); got != 0x8000000000000000 {
		t.Errorf("Shr64 with count=64 did not mask to 0")
	}
	if got := Shl32(1, 32); got != 1 {
		t.Errorf("Shl32(1, 32) = %#x, want 1 (count masked to 0)", got)
	}
}

func TestSar64SignExtends(t *testing.T) {
	got := Sar64(0x8000000000000000, 4)
	want := uint64(0xF800000000000000)
	if got != want {
		t.Errorf("Sar64(MinInt64, 4) = %#x, want %#x", got, want)
	}
}

func TestSar32SignExtends(t *testing.T) {
	got := Sar32(0x80000000, 4)
	want := uint32(0xF8000000)
	if got != want {
		t.Errorf("Sar32(MinInt32, 4) = %#x, want %#x", got, want)
	}
}

func TestSignExtend32To64(t *testing.T) {
	if got := SignExtend32To64(0xFFFFFFFF); got != 0xFFFFFFFFFFFFFFFF {
		t.Errorf("SignExtend32To64(-1) = %#x, want all-ones", got)
	}
	if got := SignExtend32To64(0x7FFFFFFF); got != 0x7FFFFFFF {
		t.Errorf("SignExtend32To64(MaxInt32) = %#x, want 0x7FFFFFFF", got)
	}
}

func TestCopyBits(t *testing.T) {
	result, ok := CopyBits(0xFF, 8, 0, 8)
	if !ok || result != 0xFF00 {
		t.Errorf("CopyBits low byte into bits [8,16) = %#x, ok=%v, want 0xFF00, true", result, ok)
	}

	result, ok = CopyBits(0xFFFFFFFFFFFFFFFF, 64, 0x1234, 0)
	if !ok || result != 0xFFFFFFFFFFFFFFFF {
		t.Errorf("CopyBits with count=64 = %#x, want all-ones", result)
	}

	_, ok = CopyBits(1, 8, 0, 60)
	if ok {
		t.Errorf("CopyBits with offset+count > 64 should fail")
	}

	result, ok = CopyBits(0, 8, 0xFFFFFFFFFFFFFFFF, 8)
	if !ok || result != 0xFFFFFFFFFFFF00FF {
		t.Errorf("CopyBits clearing byte 1 = %#x, want 0xFFFFFFFFFFFF00FF", result)
	}
}
