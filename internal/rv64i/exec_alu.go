/*
 * uarch-step - Integer ALU handlers (64-bit immediate and register forms)
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

func execALUImm(st *execState) {
	op := Decode(st.ir)
	rd := RD(st.ir)
	rs1v := st.mem.ReadX(RS1(st.ir))
	imm := Imm12(st.ir)

	var v uint64
	switch op {
	case OpADDI:
		v = rs1v + imm
	case OpSLTI:
		v = boolToWord(int64(rs1v) < int64(imm))
	case OpSLTIU:
		v = boolToWord(rs1v < imm)
	case OpXORI:
		v = rs1v ^ imm
	case OpORI:
		v = rs1v | imm
	case OpANDI:
		v = rs1v & imm
	case OpSLLI:
		v = bitops.Shl64(rs1v, Shamt6(st.ir))
	case OpSRLI:
		v = bitops.Shr64(rs1v, Shamt6(st.ir))
	case OpSRAI:
		v = bitops.Sar64(rs1v, Shamt6(st.ir))
	}
	writeRD(st, rd, v)
}

func execALUReg(st *execState) {
	op := Decode(st.ir)
	rd := RD(st.ir)
	rs1v := st.mem.ReadX(RS1(st.ir))
	rs2v := st.mem.ReadX(RS2(st.ir))

	var v uint64
	switch op {
	case OpADD:
		v = rs1v + rs2v
	case OpSUB:
		v = rs1v - rs2v
	case OpSLL:
		v = bitops.Shl64(rs1v, rs2v)
	case OpSLT:
		v = boolToWord(int64(rs1v) < int64(rs2v))
	case OpSLTU:
		v = boolToWord(rs1v < rs2v)
	case OpXOR:
		v = rs1v ^ rs2v
	case OpSRL:
		v = bitops.Shr64(rs1v, rs2v)
	case OpSRA:
		v = bitops.Sar64(rs1v, rs2v)
	case OpOR:
		v = rs1v | rs2v
	case OpAND:
		v = rs1v & rs2v
	}
	writeRD(st, rd, v)
}

func boolToWord(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
