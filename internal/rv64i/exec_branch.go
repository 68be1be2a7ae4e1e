/*
 * uarch-step - Control-flow handlers (JAL/JALR/branches)
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

func execJAL(st *execState) {
	rd := RD(st.ir)
	link := st.pc + 4
	st.nextPC = st.pc + JImm20(st.ir)
	writeRD(st, rd, link)
}

func execJALR(st *execState) {
	rd := RD(st.ir)
	rs1 := RS1(st.ir)
	imm := Imm12(st.ir)
	link := st.pc + 4
	target := (st.mem.ReadX(rs1) + imm) &^ 1
	st.nextPC = target
	writeRD(st, rd, link)
}

func execBranch(st *execState) {
	op := Decode(st.ir)
	rs1v := st.mem.ReadX(RS1(st.ir))
	rs2v := st.mem.ReadX(RS2(st.ir))

	var taken bool
	switch op {
	case OpBEQ:
		taken = rs1v == rs2v
	case OpBNE:
		taken = rs1v != rs2v
	case OpBLT:
		taken = int64(rs1v) < int64(rs2v)
	case OpBGE:
		taken = int64(rs1v) >= int64(rs2v)
	case OpBLTU:
		taken = rs1v < rs2v
	case OpBGEU:
		taken = rs1v >= rs2v
	}
	if taken {
		st.nextPC = st.pc + SBImm12(st.ir)
	}
}
