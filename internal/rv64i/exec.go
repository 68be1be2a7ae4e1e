/*
 * uarch-step - RV64I executor dispatch
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

// Package rv64i implements the RV64I integer executor (C3) against the
// MemoryAccess abstraction (C4). Handlers never see a raw memory buffer;
// every register and RAM touch goes through the interface, so the same
// handler set runs unchanged against the access-log backend or the
// direct-RAM backend.
package rv64i

// execState carries the per-step scratch a handler needs: the
// instruction word, its address, and the PC the handler should leave
// behind (pre-set to pc+4; branch/jump handlers overwrite it).
type execState struct {
	mem    MemoryAccess
	pc     uint64
	ir     uint32
	nextPC uint64
}

type handler func(st *execState)

// execTable is indexed by Op, mirroring the teacher's opcode-indexed
// dispatch table, except keyed on a decoded Op rather than a raw byte
// since RV64I needs funct3/funct7 to disambiguate.
var execTable = buildExecTable()

func buildExecTable() []handler {
	t := make([]handler, opCount)
	t[OpLUI] = execLUI
	t[OpAUIPC] = execAUIPC
	t[OpFENCE] = execFENCE

	t[OpJAL] = execJAL
	t[OpJALR] = execJALR
	t[OpBEQ] = execBranch
	t[OpBNE] = execBranch
	t[OpBLT] = execBranch
	t[OpBGE] = execBranch
	t[OpBLTU] = execBranch
	t[OpBGEU] = execBranch

	t[OpLB] = execLoad
	t[OpLH] = execLoad
	t[OpLW] = execLoad
	t[OpLD] = execLoad
	t[OpLBU] = execLoad
	t[OpLHU] = execLoad
	t[OpLWU] = execLoad
	t[OpSB] = execStore
	t[OpSH] = execStore
	t[OpSW] = execStore
	t[OpSD] = execStore

	t[OpADDI] = execALUImm
	t[OpSLTI] = execALUImm
	t[OpSLTIU] = execALUImm
	t[OpXORI] = execALUImm
	t[OpORI] = execALUImm
	t[OpANDI] = execALUImm
	t[OpSLLI] = execALUImm
	t[OpSRLI] = execALUImm
	t[OpSRAI] = execALUImm

	t[OpADDIW] = execALUImmW
	t[OpSLLIW] = execALUImmW
	t[OpSRLIW] = execALUImmW
	t[OpSRAIW] = execALUImmW

	t[OpADD] = execALUReg
	t[OpSUB] = execALUReg
	t[OpSLL] = execALUReg
	t[OpSLT] = execALUReg
	t[OpSLTU] = execALUReg
	t[OpXOR] = execALUReg
	t[OpSRL] = execALUReg
	t[OpSRA] = execALUReg
	t[OpOR] = execALUReg
	t[OpAND] = execALUReg

	t[OpADDW] = execALURegW
	t[OpSUBW] = execALURegW
	t[OpSLLW] = execALURegW
	t[OpSRLW] = execALURegW
	t[OpSRAW] = execALURegW
	return t
}

const opCount = OpFENCE + 1

// writeRD writes v to register rd via the memory interface, unless rd is
// x0 — handlers never issue a write to x0. Backends guard WriteX(0, _)
// too, as a second line of defense, but should never see it exercised
// from here.
func writeRD(st *execState, rd uint64, v uint64) {
	if rd != 0 {
		st.mem.WriteX(rd, v)
	}
}

// Execute decodes and runs a single instruction word fetched from pc.
// On an illegal instruction it latches TrapIllegalInstruction and
// returns without touching PC or any register. On any other trap latched
// by a handler's memory operations, PC is likewise left untouched; the
// step driver still writes the incremented cycle afterwards.
func Execute(mem MemoryAccess, pc uint64, ir uint32) {
	op := Decode(ir)
	if op == OpIllegal {
		mem.SetTrap(TrapIllegalInstruction)
		return
	}
	st := &execState{mem: mem, pc: pc, ir: ir, nextPC: pc + 4}
	execTable[op](st)
	if mem.Trap() != TrapNone {
		return
	}
	mem.WritePC(st.nextPC)
}
