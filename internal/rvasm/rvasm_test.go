package rvasm

/*
 * uarch-step - RV64I test assembler and disassembler
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

func TestAssembleADDI(t *testing.T) {
	ir, err := Assemble("ADDI x1, x0, 7")
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	if ir != 0x00700093 {
		t.Errorf("Assemble(ADDI x1, x0, 7) = %#08x, want 0x00700093", ir)
	}
}

func TestAssembleEmptyInstruction(t *testing.T) {
	if _, err := Assemble(""); err == nil {
		t.Error("empty instruction did not return an error")
	}
	if _, err := Assemble("   "); err == nil {
		t.Error("blank instruction did not return an error")
	}
}

func TestAssembleUnknownMnemonic(t *testing.T) {
	if _, err := Assemble("FROB x1, x2, x3"); err == nil {
		t.Error("unknown mnemonic did not return an error")
	}
}

func TestAssembleDisassembleRoundTrip(t *testing.T) {
	cases := []string{
		"ADDI x1, x0, 7",
		"ADD x3, x1, x2",
		"SUB x3, x1, x2",
		"LUI x5, 0xFFFFF",
		"AUIPC x6, 0x1",
		"SLLI x2, x1, 4",
		"SRAI x2, x1, 4",
		"SW x2, 4(x1)",
		"LW x3, x1, 4",
		"BEQ x1, x2, 16",
		"JAL x1, 256",
	}
	for _, text := range cases {
		ir, err := Assemble(text)
		if err != nil {
			t.Fatalf("Assemble(%q) returned error: %v", text, err)
		}
		got := Disassemble(ir)
		ir2, err := Assemble(got)
		if err != nil {
			t.Fatalf("round-trip Assemble(%q) (from %q) returned error: %v", got, text, err)
		}
		if ir2 != ir {
			t.Errorf("round trip %q -> %#08x -> %q -> %#08x, want stable encoding", text, ir, got, ir2)
		}
	}
}

func TestAssembleStoreOffsetSyntax(t *testing.T) {
	ir, err := Assemble("SB x2, 0(x1)")
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	want := uint32(0x23) | uint32(2)<<20 | uint32(1)<<15
	if ir != want {
		t.Errorf("Assemble(SB x2, 0(x1)) = %#08x, want %#08x", ir, want)
	}
}

func TestDisassembleIllegalWord(t *testing.T) {
	got := Disassemble(0xFFFFFFFF)
	if got != ".word 0xffffffff" {
		t.Errorf("Disassemble(illegal) = %q, want %q", got, ".word 0xffffffff")
	}
}
