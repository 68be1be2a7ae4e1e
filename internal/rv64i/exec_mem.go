/*
 * uarch-step - Load/store handlers
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

// checkAlign latches TrapAlignment if addr isn't a multiple of width and
// reports whether the access may proceed.
func checkAlign(st *execState, addr uint64, width uint64) bool {
	if addr%width != 0 {
		st.mem.SetTrap(TrapAlignment)
		return false
	}
	return true
}

func effectiveAddr(st *execState, base uint64, imm uint64) uint64 {
	return base + imm // 64-bit wrapping, per Go's native overflow
}

func execLoad(st *execState) {
	op := Decode(st.ir)
	rd := RD(st.ir)
	rs1 := RS1(st.ir)
	imm := Imm12(st.ir)
	addr := effectiveAddr(st, st.mem.ReadX(rs1), imm)

	var width uint64
	switch op {
	case OpLB, OpLBU:
		width = 1
	case OpLH, OpLHU:
		width = 2
	case OpLW, OpLWU:
		width = 4
	case OpLD:
		width = 8
	}
	if !checkAlign(st, addr, width) {
		return
	}

	var v uint64
	switch op {
	case OpLB:
		v = bitops.SignExtend(st.mem.ReadU8(addr), 7)
	case OpLBU:
		v = st.mem.ReadU8(addr)
	case OpLH:
		v = bitops.SignExtend(st.mem.ReadU16(addr), 15)
	case OpLHU:
		v = st.mem.ReadU16(addr)
	case OpLW:
		v = bitops.SignExtend(st.mem.ReadU32(addr), 31)
	case OpLWU:
		v = st.mem.ReadU32(addr)
	case OpLD:
		v = st.mem.ReadU64(addr)
	}
	writeRD(st, rd, v)
}

func execStore(st *execState) {
	op := Decode(st.ir)
	rs1 := RS1(st.ir)
	rs2 := RS2(st.ir)
	imm := SImm12(st.ir)
	addr := effectiveAddr(st, st.mem.ReadX(rs1), imm)
	val := st.mem.ReadX(rs2)

	var width uint64
	switch op {
	case OpSB:
		width = 1
	case OpSH:
		width = 2
	case OpSW:
		width = 4
	case OpSD:
		width = 8
	}
	if !checkAlign(st, addr, width) {
		return
	}

	switch op {
	case OpSB:
		st.mem.WriteU8(addr, val&0xFF)
	case OpSH:
		st.mem.WriteU16(addr, val&0xFFFF)
	case OpSW:
		st.mem.WriteU32(addr, val&0xFFFFFFFF)
	case OpSD:
		st.mem.WriteU64(addr, val)
	}
}
