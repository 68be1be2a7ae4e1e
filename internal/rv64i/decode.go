/*
 * uarch-step - RV64I instruction decoder
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

// Op identifies a decoded RV64I opcode.
type Op int

const (
	OpIllegal Op = iota
	OpLUI
	OpAUIPC
	OpJAL
	OpJALR
	OpBEQ
	OpBNE
	OpBLT
	OpBGE
	OpBLTU
	OpBGEU
	OpLB
	OpLH
	OpLW
	OpLD
	OpLBU
	OpLHU
	OpLWU
	OpSB
	OpSH
	OpSW
	OpSD
	OpADDI
	OpSLTI
	OpSLTIU
	OpXORI
	OpORI
	OpANDI
	OpSLLI
	OpSRLI
	OpSRAI
	OpADDIW
	OpSLLIW
	OpSRLIW
	OpSRAIW
	OpADD
	OpSUB
	OpSLL
	OpSLT
	OpSLTU
	OpXOR
	OpSRL
	OpSRA
	OpOR
	OpAND
	OpADDW
	OpSUBW
	OpSLLW
	OpSRLW
	OpSRAW
	OpFENCE
)

// funct7Kind controls how much of the funct7 field a matcher checks.
type funct7Kind int

const (
	funct7None  funct7Kind = iota // opcode[+funct3] only
	funct7Full                    // all 7 bits must match
	funct7Upper6                  // only bits 1..6 must match (shift amount owns bit 0)
)

type matcher struct {
	opcode    uint32
	hasFunct3 bool
	funct3    uint32
	f7Kind    funct7Kind
	funct7    uint32
	id        Op
}

// decodeTable is a linear list of matchers; first match wins, mirroring
// the teacher's opcode-dispatch table but keyed on three fields instead
// of one dense byte index, since RV64I opcodes alone don't discriminate
// the instruction.
var decodeTable = []matcher{
	{opcode: 0x37, id: OpLUI},
	{opcode: 0x17, id: OpAUIPC},
	{opcode: 0x6F, id: OpJAL},
	{opcode: 0x67, hasFunct3: true, funct3: 0, id: OpJALR},

	{opcode: 0x63, hasFunct3: true, funct3: 0, id: OpBEQ},
	{opcode: 0x63, hasFunct3: true, funct3: 1, id: OpBNE},
	{opcode: 0x63, hasFunct3: true, funct3: 4, id: OpBLT},
	{opcode: 0x63, hasFunct3: true, funct3: 5, id: OpBGE},
	{opcode: 0x63, hasFunct3: true, funct3: 6, id: OpBLTU},
	{opcode: 0x63, hasFunct3: true, funct3: 7, id: OpBGEU},

	{opcode: 0x03, hasFunct3: true, funct3: 0, id: OpLB},
	{opcode: 0x03, hasFunct3: true, funct3: 1, id: OpLH},
	{opcode: 0x03, hasFunct3: true, funct3: 2, id: OpLW},
	{opcode: 0x03, hasFunct3: true, funct3: 3, id: OpLD},
	{opcode: 0x03, hasFunct3: true, funct3: 4, id: OpLBU},
	{opcode: 0x03, hasFunct3: true, funct3: 5, id: OpLHU},
	{opcode: 0x03, hasFunct3: true, funct3: 6, id: OpLWU},

	{opcode: 0x23, hasFunct3: true, funct3: 0, id: OpSB},
	{opcode: 0x23, hasFunct3: true, funct3: 1, id: OpSH},
	{opcode: 0x23, hasFunct3: true, funct3: 2, id: OpSW},
	{opcode: 0x23, hasFunct3: true, funct3: 3, id: OpSD},

	{opcode: 0x13, hasFunct3: true, funct3: 0, id: OpADDI},
	{opcode: 0x13, hasFunct3: true, funct3: 2, id: OpSLTI},
	{opcode: 0x13, hasFunct3: true, funct3: 3, id: OpSLTIU},
	{opcode: 0x13, hasFunct3: true, funct3: 4, id: OpXORI},
	{opcode: 0x13, hasFunct3: true, funct3: 6, id: OpORI},
	{opcode: 0x13, hasFunct3: true, funct3: 7, id: OpANDI},
	{opcode: 0x13, hasFunct3: true, funct3: 1, f7Kind: funct7Upper6, funct7: 0x00, id: OpSLLI},
	{opcode: 0x13, hasFunct3: true, funct3: 5, f7Kind: funct7Upper6, funct7: 0x00, id: OpSRLI},
	{opcode: 0x13, hasFunct3: true, funct3: 5, f7Kind: funct7Upper6, funct7: 0x10, id: OpSRAI},

	{opcode: 0x1B, hasFunct3: true, funct3: 0, id: OpADDIW},
	{opcode: 0x1B, hasFunct3: true, funct3: 1, f7Kind: funct7Full, funct7: 0x00, id: OpSLLIW},
	{opcode: 0x1B, hasFunct3: true, funct3: 5, f7Kind: funct7Full, funct7: 0x00, id: OpSRLIW},
	{opcode: 0x1B, hasFunct3: true, funct3: 5, f7Kind: funct7Full, funct7: 0x20, id: OpSRAIW},

	{opcode: 0x33, hasFunct3: true, funct3: 0, f7Kind: funct7Full, funct7: 0x00, id: OpADD},
	{opcode: 0x33, hasFunct3: true, funct3: 0, f7Kind: funct7Full, funct7: 0x20, id: OpSUB},
	{opcode: 0x33, hasFunct3: true, funct3: 1, f7Kind: funct7Full, funct7: 0x00, id: OpSLL},
	{opcode: 0x33, hasFunct3: true, funct3: 2, f7Kind: funct7Full, funct7: 0x00, id: OpSLT},
	{opcode: 0x33, hasFunct3: true, funct3: 3, f7Kind: funct7Full, funct7: 0x00, id: OpSLTU},
	{opcode: 0x33, hasFunct3: true, funct3: 4, f7Kind: funct7Full, funct7: 0x00, id: OpXOR},
	{opcode: 0x33, hasFunct3: true, funct3: 5, f7Kind: funct7Full, funct7: 0x00, id: OpSRL},
	{opcode: 0x33, hasFunct3: true, funct3: 5, f7Kind: funct7Full, funct7: 0x20, id: OpSRA},
	{opcode: 0x33, hasFunct3: true, funct3: 6, f7Kind: funct7Full, funct7: 0x00, id: OpOR},
	{opcode: 0x33, hasFunct3: true, funct3: 7, f7Kind: funct7Full, funct7: 0x00, id: OpAND},

	{opcode: 0x3B, hasFunct3: true, funct3: 0, f7Kind: funct7Full, funct7: 0x00, id: OpADDW},
	{opcode: 0x3B, hasFunct3: true, funct3: 0, f7Kind: funct7Full, funct7: 0x20, id: OpSUBW},
	{opcode: 0x3B, hasFunct3: true, funct3: 1, f7Kind: funct7Full, funct7: 0x00, id: OpSLLW},
	{opcode: 0x3B, hasFunct3: true, funct3: 5, f7Kind: funct7Full, funct7: 0x00, id: OpSRLW},
	{opcode: 0x3B, hasFunct3: true, funct3: 5, f7Kind: funct7Full, funct7: 0x20, id: OpSRAW},

	{opcode: 0x0F, id: OpFENCE},
}

func fieldOpcode(ir uint32) uint32 { return ir & 0x7F }
func fieldFunct3(ir uint32) uint32 { return (ir >> 12) & 0x7 }
func fieldFunct7(ir uint32) uint32 { return (ir >> 25) & 0x7F }

// RD decodes the destination register index.
func RD(ir uint32) uint64 { return uint64((ir >> 7) & 0x1F) }

// RS1 decodes the first source register index.
func RS1(ir uint32) uint64 { return uint64((ir >> 15) & 0x1F) }

// RS2 decodes the second source register index.
func RS2(ir uint32) uint64 { return uint64((ir >> 20) & 0x1F) }

// Imm12 decodes the I-type 12-bit sign-extended immediate.
func Imm12(ir uint32) uint64 {
	return bitops.SignExtend(uint64(ir>>20), 11)
}

// SImm12 decodes the S-type 12-bit sign-extended immediate.
func SImm12(ir uint32) uint64 {
	v := ((ir >> 25) << 5) | ((ir >> 7) & 0x1F)
	return bitops.SignExtend(uint64(v), 11)
}

// SBImm12 decodes the B-type 13-bit sign-extended immediate (bit 0 always zero).
func SBImm12(ir uint32) uint64 {
	v := ((ir >> 31) << 12) | (((ir >> 7) & 1) << 11) |
		(((ir >> 25) & 0x3F) << 5) | (((ir >> 8) & 0xF) << 1)
	return bitops.SignExtend(uint64(v), 12)
}

// Imm20 decodes the U-type immediate: bits [31:12] of ir with the low 12
// bits zeroed, sign-extended to 64 bits (LUI/AUIPC both load a 64-bit
// register with a sign-extended 32-bit quantity).
func Imm20(ir uint32) uint64 {
	return bitops.SignExtend32To64(ir & 0xFFFFF000)
}

// JImm20 decodes the J-type 21-bit sign-extended immediate (bit 0 always zero).
func JImm20(ir uint32) uint64 {
	v := ((ir >> 31) << 20) | (((ir >> 12) & 0xFF) << 12) |
		(((ir >> 20) & 1) << 11) | (((ir >> 21) & 0x3FF) << 1)
	return bitops.SignExtend(uint64(v), 20)
}

// Shamt5 decodes a 5-bit shift amount (the -W shift variants).
func Shamt5(ir uint32) uint64 { return uint64((ir >> 20) & 0x1F) }

// Shamt6 decodes a 6-bit shift amount (SLLI/SRLI/SRAI).
func Shamt6(ir uint32) uint64 { return uint64((ir >> 20) & 0x3F) }

// Decode classifies a 32-bit instruction word. Returns OpIllegal if no
// matcher fires.
func Decode(ir uint32) Op {
	opcode := fieldOpcode(ir)
	funct3 := fieldFunct3(ir)
	funct7 := fieldFunct7(ir)
	for _, m := range decodeTable {
		if m.opcode != opcode {
			continue
		}
		if m.hasFunct3 && m.funct3 != funct3 {
			continue
		}
		switch m.f7Kind {
		case funct7Full:
			if m.funct7 != funct7 {
				continue
			}
		case funct7Upper6:
			if m.funct7 != (funct7 >> 1) {
				continue
			}
		}
		return m.id
	}
	return OpIllegal
}
