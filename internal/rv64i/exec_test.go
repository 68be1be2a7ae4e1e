package rv64i

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

import "testing"

// testMem is a minimal MemoryAccess double backed by a register file and
// a byte-addressable RAM window, enough to exercise the executor without
// pulling in either real backend.
type testMem struct {
	cycle, pc, halt uint64
	regs            [32]uint64
	ram             map[uint64]uint64 // aligned word -> value
	trap            uint32
}

func newTestMem() *testMem {
	return &testMem{ram: make(map[uint64]uint64)}
}

func (m *testMem) ReadCycle() uint64   { return m.cycle }
func (m *testMem) WriteCycle(v uint64) { m.cycle = v }
func (m *testMem) ReadHalt() uint64    { return m.halt }
func (m *testMem) SetHalt(v uint64)    { m.halt = v }
func (m *testMem) ReadPC() uint64      { return m.pc }
func (m *testMem) WritePC(v uint64)    { m.pc = v }
func (m *testMem) ReadX(i uint64) uint64 { return m.regs[i] }
func (m *testMem) WriteX(i uint64, v uint64) {
	if i != 0 {
		m.regs[i] = v
	}
}
func (m *testMem) Trap() uint32      { return m.trap }
func (m *testMem) SetTrap(c uint32) {
	if m.trap == TrapNone {
		m.trap = c
	}
}
func (m *testMem) ReadU8(addr uint64) uint64  { return ExtractSubword(m.ram[AlignWord(addr)], addr, 8) }
func (m *testMem) ReadU16(addr uint64) uint64 { return ExtractSubword(m.ram[AlignWord(addr)], addr, 16) }
func (m *testMem) ReadU32(addr uint64) uint64 { return ExtractSubword(m.ram[AlignWord(addr)], addr, 32) }
func (m *testMem) ReadU64(addr uint64) uint64 { return m.ram[AlignWord(addr)] }
func (m *testMem) WriteU8(addr uint64, v uint64) {
	m.ram[AlignWord(addr)] = SpliceSubword(m.ram[AlignWord(addr)], addr, 8, v)
}
func (m *testMem) WriteU16(addr uint64, v uint64) {
	m.ram[AlignWord(addr)] = SpliceSubword(m.ram[AlignWord(addr)], addr, 16, v)
}
func (m *testMem) WriteU32(addr uint64, v uint64) {
	m.ram[AlignWord(addr)] = SpliceSubword(m.ram[AlignWord(addr)], addr, 32, v)
}
func (m *testMem) WriteU64(addr uint64, v uint64) { m.ram[AlignWord(addr)] = v }

var _ MemoryAccess = (*testMem)(nil)

func TestExecADDI(t *testing.T) {
	m := newTestMem()
	m.regs[2] = 5
	ir := iType(0x13, 0, 1, 2, 7) // ADDI x1, x2, 7
	Execute(m, 0x1000, ir)
	if m.regs[1] != 12 {
		t.Errorf("ADDI result = %d, want 12", m.regs[1])
	}
	if m.pc != 0x1004 {
		t.Errorf("PC after ADDI = %#x, want 0x1004", m.pc)
	}
}

func TestExecADDIToX0Dropped(t *testing.T) {
	m := newTestMem()
	m.regs[2] = 99
	ir := iType(0x13, 0, 0, 2, 7) // ADDI x0, x2, 7
	Execute(m, 0, ir)
	if m.regs[0] != 0 {
		t.Errorf("x0 = %d after write attempt, want 0", m.regs[0])
	}
}

func TestExecLUISignExtends(t *testing.T) {
	m := newTestMem()
	ir := uType(0x37, 1, -0x1000) // LUI x1, 0xFFFFF
	Execute(m, 0, ir)
	if m.regs[1] != 0xFFFFFFFFFFFFF000 {
		t.Errorf("LUI result = %#x, want 0xFFFFFFFFFFFFF000", m.regs[1])
	}
}

func TestExecAUIPC(t *testing.T) {
	m := newTestMem()
	ir := uType(0x17, 1, 0x1000) // AUIPC x1, 1 (0x1000 already shifted)
	Execute(m, 0x70000000, ir)
	if m.regs[1] != 0x70001000 {
		t.Errorf("AUIPC result = %#x, want 0x70001000", m.regs[1])
	}
}

func TestExecJALAndJALR(t *testing.T) {
	m := newTestMem()
	// JAL x1, +0x100
	ir := uint32(0)
	imm := int32(0x100)
	u := uint32(imm)
	ir |= ((u >> 20) & 1) << 31
	ir |= ((u >> 1) & 0x3FF) << 21
	ir |= ((u >> 11) & 1) << 20
	ir |= ((u >> 12) & 0xFF) << 12
	ir |= 1 << 7 // rd = 1
	ir |= 0x6F
	Execute(m, 0x1000, ir)
	if m.regs[1] != 0x1004 {
		t.Errorf("JAL link = %#x, want 0x1004", m.regs[1])
	}
	if m.pc != 0x1100 {
		t.Errorf("JAL target = %#x, want 0x1100", m.pc)
	}

	m2 := newTestMem()
	m2.regs[2] = 0x2001 // odd address; JALR must mask bit 0
	jalrIr := iType(0x67, 0, 1, 2, 4)
	Execute(m2, 0x3000, jalrIr)
	if m2.pc != 0x2004 {
		t.Errorf("JALR target = %#x, want 0x2004 (bit 0 masked)", m2.pc)
	}
	if m2.regs[1] != 0x3004 {
		t.Errorf("JALR link = %#x, want 0x3004", m2.regs[1])
	}
}

func TestExecBranchTakenAndNot(t *testing.T) {
	m := newTestMem()
	m.regs[1] = 5
	m.regs[2] = 5
	// BEQ x1, x2, +8
	ir := uint32(0)
	ir |= ((8 >> 12) & 1) << 31
	ir |= ((8 >> 5) & 0x3F) << 25
	ir |= 2 << 20 // rs2
	ir |= 1 << 15 // rs1
	ir |= 0 << 12 // funct3 BEQ
	ir |= ((8 >> 11) & 1) << 7
	ir |= ((8 >> 1) & 0xF) << 8
	ir |= 0x63
	Execute(m, 0x1000, ir)
	if m.pc != 0x1008 {
		t.Errorf("BEQ taken target = %#x, want 0x1008", m.pc)
	}

	m2 := newTestMem()
	m2.regs[1] = 5
	m2.regs[2] = 6
	Execute(m2, 0x1000, ir)
	if m2.pc != 0x1004 {
		t.Errorf("BEQ not-taken target = %#x, want 0x1004", m2.pc)
	}
}

func TestExecLoadStoreRoundTrip(t *testing.T) {
	m := newTestMem()
	m.regs[1] = 0x70000000
	m.regs[2] = 0xFF
	// SB x2, 0(x1)
	storeIr := uint32(0)
	storeIr |= 2 << 20 // rs2
	storeIr |= 1 << 15 // rs1
	storeIr |= 0x23
	Execute(m, 0x2000, storeIr)

	// LB x3, 0(x1)
	loadIr := iType(0x03, 0, 3, 1, 0)
	Execute(m, 0x2004, loadIr)
	if m.regs[3] != 0xFFFFFFFFFFFFFFFF {
		t.Errorf("LB of 0xFF = %#x, want sign-extended all-ones", m.regs[3])
	}

	// LBU x4, 0(x1)
	loadUIr := iType(0x03, 4, 4, 1, 0)
	Execute(m, 0x2008, loadUIr)
	if m.regs[4] != 0xFF {
		t.Errorf("LBU of 0xFF = %#x, want 0xFF", m.regs[4])
	}
}

func TestExecMisalignedLoadTraps(t *testing.T) {
	m := newTestMem()
	m.regs[1] = 0x70000001
	ir := iType(0x03, 3, 3, 1, 0) // LD x3, 0(x1), misaligned
	Execute(m, 0x2000, ir)
	if m.trap != TrapAlignment {
		t.Errorf("misaligned LD trap = %d, want %d", m.trap, TrapAlignment)
	}
	if m.pc != 0 {
		t.Errorf("PC advanced despite trap: %#x", m.pc)
	}
}

func TestExecIllegalInstructionTraps(t *testing.T) {
	m := newTestMem()
	Execute(m, 0x2000, 0xFFFFFFFF)
	if m.trap != TrapIllegalInstruction {
		t.Errorf("illegal instruction trap = %d, want %d", m.trap, TrapIllegalInstruction)
	}
	if m.pc != 0 {
		t.Errorf("PC advanced despite illegal instruction: %#x", m.pc)
	}
}

func TestExecADDIWSignExtendsFrom32(t *testing.T) {
	m := newTestMem()
	m.regs[1] = 0x7FFFFFFF
	ir := iType(0x1B, 0, 2, 1, 1) // ADDIW x2, x1, 1 -> overflows 32-bit
	Execute(m, 0, ir)
	if m.regs[2] != 0xFFFFFFFF80000000 {
		t.Errorf("ADDIW overflow result = %#x, want 0xFFFFFFFF80000000", m.regs[2])
	}
}

func TestExecShiftsMaskShamt(t *testing.T) {
	m := newTestMem()
	m.regs[1] = 1
	m.regs[3] = 64
	ir := rType(0x33, 1, 0x00, 2, 1, 3) // SLL x2, x1, x3 with x3=64, count masked to 0
	Execute(m, 0, ir)
	if m.regs[2] != 1 {
		t.Errorf("SLL with count=64(masked) result = %d, want 1", m.regs[2])
	}
}
