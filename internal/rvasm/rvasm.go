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

// Package rvasm is a small RV64I assembler and disassembler used to turn
// readable instruction text into the 32-bit words the executor consumes
// (and back), the same role the teacher's emu/assemble and
// emu/disassemble play for S/370 opcodes, collapsed into one package
// since RV64I's seven encoding formats are symmetric enough to share a
// single opcode table.
package rvasm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rcornwell/uarch-step/internal/rv64i"
)

// format identifies which of RV64I's instruction encodings a mnemonic uses.
type format int

const (
	fmtR format = iota // rd, rs1, rs2
	fmtI               // rd, rs1, imm
	fmtIShift          // rd, rs1, shamt (funct7/funct7[1:6] fixed, shamt in immediate slot)
	fmtS               // rs2, offset(rs1)   (stores: rs1 base, rs2 value)
	fmtB               // rs1, rs2, offset
	fmtU               // rd, imm
	fmtJ               // rd, offset
	fmtFence           // no operands
)

type entry struct {
	name    string
	op      rv64i.Op
	format  format
	opcode  uint32
	funct3  uint32
	hasF3   bool
	funct7  uint32
	hasF7   bool
	shiftF7 uint32 // top 6 bits of funct7 for shift-immediate forms
}

var table = []entry{
	{name: "LUI", op: rv64i.OpLUI, format: fmtU, opcode: 0x37},
	{name: "AUIPC", op: rv64i.OpAUIPC, format: fmtU, opcode: 0x17},
	{name: "JAL", op: rv64i.OpJAL, format: fmtJ, opcode: 0x6F},
	{name: "JALR", op: rv64i.OpJALR, format: fmtI, opcode: 0x67, hasF3: true, funct3: 0},

	{name: "BEQ", op: rv64i.OpBEQ, format: fmtB, opcode: 0x63, hasF3: true, funct3: 0},
	{name: "BNE", op: rv64i.OpBNE, format: fmtB, opcode: 0x63, hasF3: true, funct3: 1},
	{name: "BLT", op: rv64i.OpBLT, format: fmtB, opcode: 0x63, hasF3: true, funct3: 4},
	{name: "BGE", op: rv64i.OpBGE, format: fmtB, opcode: 0x63, hasF3: true, funct3: 5},
	{name: "BLTU", op: rv64i.OpBLTU, format: fmtB, opcode: 0x63, hasF3: true, funct3: 6},
	{name: "BGEU", op: rv64i.OpBGEU, format: fmtB, opcode: 0x63, hasF3: true, funct3: 7},

	{name: "LB", op: rv64i.OpLB, format: fmtI, opcode: 0x03, hasF3: true, funct3: 0},
	{name: "LH", op: rv64i.OpLH, format: fmtI, opcode: 0x03, hasF3: true, funct3: 1},
	{name: "LW", op: rv64i.OpLW, format: fmtI, opcode: 0x03, hasF3: true, funct3: 2},
	{name: "LD", op: rv64i.OpLD, format: fmtI, opcode: 0x03, hasF3: true, funct3: 3},
	{name: "LBU", op: rv64i.OpLBU, format: fmtI, opcode: 0x03, hasF3: true, funct3: 4},
	{name: "LHU", op: rv64i.OpLHU, format: fmtI, opcode: 0x03, hasF3: true, funct3: 5},
	{name: "LWU", op: rv64i.OpLWU, format: fmtI, opcode: 0x03, hasF3: true, funct3: 6},

	{name: "SB", op: rv64i.OpSB, format: fmtS, opcode: 0x23, hasF3: true, funct3: 0},
	{name: "SH", op: rv64i.OpSH, format: fmtS, opcode: 0x23, hasF3: true, funct3: 1},
	{name: "SW", op: rv64i.OpSW, format: fmtS, opcode: 0x23, hasF3: true, funct3: 2},
	{name: "SD", op: rv64i.OpSD, format: fmtS, opcode: 0x23, hasF3: true, funct3: 3},

	{name: "ADDI", op: rv64i.OpADDI, format: fmtI, opcode: 0x13, hasF3: true, funct3: 0},
	{name: "SLTI", op: rv64i.OpSLTI, format: fmtI, opcode: 0x13, hasF3: true, funct3: 2},
	{name: "SLTIU", op: rv64i.OpSLTIU, format: fmtI, opcode: 0x13, hasF3: true, funct3: 3},
	{name: "XORI", op: rv64i.OpXORI, format: fmtI, opcode: 0x13, hasF3: true, funct3: 4},
	{name: "ORI", op: rv64i.OpORI, format: fmtI, opcode: 0x13, hasF3: true, funct3: 6},
	{name: "ANDI", op: rv64i.OpANDI, format: fmtI, opcode: 0x13, hasF3: true, funct3: 7},
	{name: "SLLI", op: rv64i.OpSLLI, format: fmtIShift, opcode: 0x13, hasF3: true, funct3: 1, shiftF7: 0x00},
	{name: "SRLI", op: rv64i.OpSRLI, format: fmtIShift, opcode: 0x13, hasF3: true, funct3: 5, shiftF7: 0x00},
	{name: "SRAI", op: rv64i.OpSRAI, format: fmtIShift, opcode: 0x13, hasF3: true, funct3: 5, shiftF7: 0x10},

	{name: "ADDIW", op: rv64i.OpADDIW, format: fmtI, opcode: 0x1B, hasF3: true, funct3: 0},
	{name: "SLLIW", op: rv64i.OpSLLIW, format: fmtIShift, opcode: 0x1B, hasF3: true, funct3: 1, shiftF7: 0x00},
	{name: "SRLIW", op: rv64i.OpSRLIW, format: fmtIShift, opcode: 0x1B, hasF3: true, funct3: 5, shiftF7: 0x00},
	{name: "SRAIW", op: rv64i.OpSRAIW, format: fmtIShift, opcode: 0x1B, hasF3: true, funct3: 5, shiftF7: 0x10},

	{name: "ADD", op: rv64i.OpADD, format: fmtR, opcode: 0x33, hasF3: true, funct3: 0, hasF7: true, funct7: 0x00},
	{name: "SUB", op: rv64i.OpSUB, format: fmtR, opcode: 0x33, hasF3: true, funct3: 0, hasF7: true, funct7: 0x20},
	{name: "SLL", op: rv64i.OpSLL, format: fmtR, opcode: 0x33, hasF3: true, funct3: 1, hasF7: true, funct7: 0x00},
	{name: "SLT", op: rv64i.OpSLT, format: fmtR, opcode: 0x33, hasF3: true, funct3: 2, hasF7: true, funct7: 0x00},
	{name: "SLTU", op: rv64i.OpSLTU, format: fmtR, opcode: 0x33, hasF3: true, funct3: 3, hasF7: true, funct7: 0x00},
	{name: "XOR", op: rv64i.OpXOR, format: fmtR, opcode: 0x33, hasF3: true, funct3: 4, hasF7: true, funct7: 0x00},
	{name: "SRL", op: rv64i.OpSRL, format: fmtR, opcode: 0x33, hasF3: true, funct3: 5, hasF7: true, funct7: 0x00},
	{name: "SRA", op: rv64i.OpSRA, format: fmtR, opcode: 0x33, hasF3: true, funct3: 5, hasF7: true, funct7: 0x20},
	{name: "OR", op: rv64i.OpOR, format: fmtR, opcode: 0x33, hasF3: true, funct3: 6, hasF7: true, funct7: 0x00},
	{name: "AND", op: rv64i.OpAND, format: fmtR, opcode: 0x33, hasF3: true, funct3: 7, hasF7: true, funct7: 0x00},

	{name: "ADDW", op: rv64i.OpADDW, format: fmtR, opcode: 0x3B, hasF3: true, funct3: 0, hasF7: true, funct7: 0x00},
	{name: "SUBW", op: rv64i.OpSUBW, format: fmtR, opcode: 0x3B, hasF3: true, funct3: 0, hasF7: true, funct7: 0x20},
	{name: "SLLW", op: rv64i.OpSLLW, format: fmtR, opcode: 0x3B, hasF3: true, funct3: 1, hasF7: true, funct7: 0x00},
	{name: "SRLW", op: rv64i.OpSRLW, format: fmtR, opcode: 0x3B, hasF3: true, funct3: 5, hasF7: true, funct7: 0x00},
	{name: "SRAW", op: rv64i.OpSRAW, format: fmtR, opcode: 0x3B, hasF3: true, funct3: 5, hasF7: true, funct7: 0x20},

	{name: "FENCE", op: rv64i.OpFENCE, format: fmtFence, opcode: 0x0F},
}

var byName = buildByName()
var byOp = buildByOp()

func buildByName() map[string]entry {
	m := make(map[string]entry, len(table))
	for _, e := range table {
		m[e.name] = e
	}
	return m
}

func buildByOp() map[rv64i.Op]entry {
	m := make(map[rv64i.Op]entry, len(table))
	for _, e := range table {
		m[e.op] = e
	}
	return m
}

func reg(i uint64) uint32 { return uint32(i) & 0x1F }

// Assemble encodes one instruction line, e.g. "ADDI x1, x0, 7" or
// "SW x2, 0(x1)", into its 32-bit word.
func Assemble(line string) (uint32, error) {
	line = strings.TrimSpace(line)
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	if line == "" {
		return 0, fmt.Errorf("empty instruction")
	}
	fields := strings.SplitN(line, " ", 2)
	name := strings.ToUpper(fields[0])
	e, ok := byName[name]
	if !ok {
		return 0, fmt.Errorf("unknown mnemonic %q", fields[0])
	}
	var operandStr string
	if len(fields) > 1 {
		operandStr = fields[1]
	}
	operands := splitOperands(operandStr)

	switch e.format {
	case fmtFence:
		return e.opcode, nil

	case fmtR:
		rd, rs1, rs2, err := parse3Regs(operands)
		if err != nil {
			return 0, err
		}
		return e.opcode | reg(rd)<<7 | e.funct3<<12 | reg(rs1)<<15 | reg(rs2)<<20 | e.funct7<<25, nil

	case fmtI:
		rd, rs1, imm, err := parseRegRegImm(operands)
		if err != nil {
			return 0, err
		}
		return e.opcode | reg(rd)<<7 | e.funct3<<12 | reg(rs1)<<15 | (uint32(imm)&0xFFF)<<20, nil

	case fmtIShift:
		rd, rs1, shamt, err := parseRegRegImm(operands)
		if err != nil {
			return 0, err
		}
		return e.opcode | reg(rd)<<7 | e.funct3<<12 | reg(rs1)<<15 | (uint32(shamt)&0x3F)<<20 | e.shiftF7<<26, nil

	case fmtS:
		rs2, rs1, imm, err := parseRegOffsetReg(operands)
		if err != nil {
			return 0, err
		}
		u := uint32(imm)
		return e.opcode | ((u & 0x1F) << 7) | e.funct3<<12 | reg(rs1)<<15 | reg(rs2)<<20 | ((u >> 5) & 0x7F << 25), nil

	case fmtB:
		rs1, rs2, imm, err := parse2RegsImm(operands)
		if err != nil {
			return 0, err
		}
		u := uint32(imm)
		ir := e.opcode | e.funct3<<12 | reg(rs1)<<15 | reg(rs2)<<20
		ir |= ((u >> 11) & 1) << 7
		ir |= ((u >> 1) & 0xF) << 8
		ir |= ((u >> 5) & 0x3F) << 25
		ir |= ((u >> 12) & 1) << 31
		return ir, nil

	case fmtU:
		rd, imm, err := parseRegImm(operands)
		if err != nil {
			return 0, err
		}
		return e.opcode | reg(rd)<<7 | (uint32(imm)<<12)&0xFFFFF000, nil

	case fmtJ:
		rd, imm, err := parseRegImm(operands)
		if err != nil {
			return 0, err
		}
		u := uint32(imm)
		ir := e.opcode | reg(rd)<<7
		ir |= ((u >> 20) & 1) << 31
		ir |= ((u >> 1) & 0x3FF) << 21
		ir |= ((u >> 11) & 1) << 20
		ir |= ((u >> 12) & 0xFF) << 12
		return ir, nil
	}
	return 0, fmt.Errorf("unhandled format for %s", e.name)
}

// Disassemble renders the 32-bit word ir as one line of assembly text.
func Disassemble(ir uint32) string {
	op := rv64i.Decode(ir)
	if op == rv64i.OpIllegal {
		return fmt.Sprintf(".word 0x%08x", ir)
	}
	e := byOp[op]
	rd, rs1, rs2 := rv64i.RD(ir), rv64i.RS1(ir), rv64i.RS2(ir)

	switch e.format {
	case fmtFence:
		return e.name
	case fmtR:
		return fmt.Sprintf("%s x%d, x%d, x%d", e.name, rd, rs1, rs2)
	case fmtI:
		return fmt.Sprintf("%s x%d, x%d, %d", e.name, rd, rs1, int64(rv64i.Imm12(ir)))
	case fmtIShift:
		shamt := rv64i.Shamt6(ir)
		if e.opcode == 0x1B {
			shamt = rv64i.Shamt5(ir)
		}
		return fmt.Sprintf("%s x%d, x%d, %d", e.name, rd, rs1, shamt)
	case fmtS:
		return fmt.Sprintf("%s x%d, %d(x%d)", e.name, rs2, int64(rv64i.SImm12(ir)), rs1)
	case fmtB:
		return fmt.Sprintf("%s x%d, x%d, %d", e.name, rs1, rs2, int64(rv64i.SBImm12(ir)))
	case fmtU:
		return fmt.Sprintf("%s x%d, 0x%x", e.name, rd, rv64i.Imm20(ir)>>12)
	case fmtJ:
		return fmt.Sprintf("%s x%d, %d", e.name, rd, int64(rv64i.JImm20(ir)))
	}
	return fmt.Sprintf(".word 0x%08x", ir)
}

func splitOperands(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseReg(s string) (uint64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "x") {
		return 0, fmt.Errorf("expected register, got %q", s)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 0 || n > 31 {
		return 0, fmt.Errorf("invalid register %q", s)
	}
	return uint64(n), nil
}

func parseImm(s string) (int64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid immediate %q", s)
	}
	return v, nil
}

func parse3Regs(ops []string) (rd, rs1, rs2 uint64, err error) {
	if len(ops) != 3 {
		return 0, 0, 0, fmt.Errorf("expected 3 operands, got %d", len(ops))
	}
	if rd, err = parseReg(ops[0]); err != nil {
		return
	}
	if rs1, err = parseReg(ops[1]); err != nil {
		return
	}
	rs2, err = parseReg(ops[2])
	return
}

func parse2RegsImm(ops []string) (rs1, rs2 uint64, imm int64, err error) {
	if len(ops) != 3 {
		return 0, 0, 0, fmt.Errorf("expected 3 operands, got %d", len(ops))
	}
	if rs1, err = parseReg(ops[0]); err != nil {
		return
	}
	if rs2, err = parseReg(ops[1]); err != nil {
		return
	}
	imm, err = parseImm(ops[2])
	return
}

func parseRegRegImm(ops []string) (rd, rs1 uint64, imm int64, err error) {
	if len(ops) != 3 {
		return 0, 0, 0, fmt.Errorf("expected 3 operands, got %d", len(ops))
	}
	if rd, err = parseReg(ops[0]); err != nil {
		return
	}
	if rs1, err = parseReg(ops[1]); err != nil {
		return
	}
	imm, err = parseImm(ops[2])
	return
}

func parseRegImm(ops []string) (rd uint64, imm int64, err error) {
	if len(ops) != 2 {
		return 0, 0, fmt.Errorf("expected 2 operands, got %d", len(ops))
	}
	if rd, err = parseReg(ops[0]); err != nil {
		return
	}
	imm, err = parseImm(ops[1])
	return
}

// parseRegOffsetReg parses "rs2, offset(rs1)" for store instructions.
func parseRegOffsetReg(ops []string) (rs2, rs1 uint64, imm int64, err error) {
	if len(ops) != 2 {
		return 0, 0, 0, fmt.Errorf("expected 2 operands, got %d", len(ops))
	}
	if rs2, err = parseReg(ops[0]); err != nil {
		return
	}
	open := strings.IndexByte(ops[1], '(')
	close := strings.IndexByte(ops[1], ')')
	if open < 0 || close < open {
		return 0, 0, 0, fmt.Errorf("expected offset(reg), got %q", ops[1])
	}
	if imm, err = parseImm(ops[1][:open]); err != nil {
		return
	}
	rs1, err = parseReg(ops[1][open+1 : close])
	return
}
