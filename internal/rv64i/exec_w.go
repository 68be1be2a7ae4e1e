/*
 * uarch-step - 32-bit (-W) ALU handlers
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

// -W instructions truncate their inputs to 32 bits, perform the 32-bit
// wrapping operation, then sign-extend the result back to 64 bits.

func execALUImmW(st *execState) {
	op := Decode(st.ir)
	rd := RD(st.ir)
	rs1v := uint32(st.mem.ReadX(RS1(st.ir)))
	imm := uint32(Imm12(st.ir))

	var v uint32
	switch op {
	case OpADDIW:
		v = rs1v + imm
	case OpSLLIW:
		v = bitops.Shl32(rs1v, uint32(Shamt5(st.ir)))
	case OpSRLIW:
		v = bitops.Shr32(rs1v, uint32(Shamt5(st.ir)))
	case OpSRAIW:
		v = bitops.Sar32(rs1v, uint32(Shamt5(st.ir)))
	}
	writeRD(st, rd, bitops.SignExtend32To64(v))
}

func execALURegW(st *execState) {
	op := Decode(st.ir)
	rd := RD(st.ir)
	rs1v := uint32(st.mem.ReadX(RS1(st.ir)))
	rs2v := uint32(st.mem.ReadX(RS2(st.ir)))

	var v uint32
	switch op {
	case OpADDW:
		v = rs1v + rs2v
	case OpSUBW:
		v = rs1v - rs2v
	case OpSLLW:
		v = bitops.Shl32(rs1v, rs2v)
	case OpSRLW:
		v = bitops.Shr32(rs1v, rs2v)
	case OpSRAW:
		v = bitops.Sar32(rs1v, rs2v)
	}
	writeRD(st, rd, bitops.SignExtend32To64(v))
}
