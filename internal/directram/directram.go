/*
 * uarch-step - Direct-RAM memory backend
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

// Package directram implements the RV64I MemoryAccess interface against a
// materialized RAM array rather than a replay script. It is the backend
// used for state-carrying simulation: cycle/pc/regs/halt are ordinary
// struct fields, and RAM lives at UarchRAMStart..UarchRAMEnd.
//
// A step may perform at most one externally observable RAM write. The
// write is never applied to the RAM array directly; it is captured in a
// pending slot for the caller to inspect (and apply) between steps, so
// that a step's footprint is always exactly one 8-byte word.
package directram

import "github.com/rcornwell/uarch-step/internal/rv64i"

// RAMWords is the number of 64-bit words backing the RAM array.
const RAMWords = rv64i.RAMWords

// Backend is a state-carrying MemoryAccess implementation.
type Backend struct {
	cycle uint64
	pc    uint64
	regs  [32]uint64
	halt  uint64

	ram [RAMWords]uint64

	writeAddr uint64
	writeVal  uint64

	trap uint32
}

// New constructs a Backend over the given RAM contents and initial
// architectural state.
func New(ram [RAMWords]uint64, cycle, pc uint64, regs [32]uint64, halt uint64) *Backend {
	return &Backend{ram: ram, cycle: cycle, pc: pc, regs: regs, halt: halt}
}

// BeginStep clears the pending-write slot and trap latch. Callers driving
// a multi-step simulation must call this before each call to step.Step;
// verify_step never uses this backend, so it never needs to.
func (b *Backend) BeginStep() {
	b.writeAddr = 0
	b.writeVal = 0
	b.trap = rv64i.TrapNone
}

// PendingWrite reports the write buffered by the step just executed, if
// any. ok is false if the step performed no RAM write.
func (b *Backend) PendingWrite() (addr, val uint64, ok bool) {
	return b.writeAddr, b.writeVal, b.writeAddr != 0
}

// ApplyPendingWrite commits the pending write into the RAM array and
// clears the slot. It is the caller's responsibility to invoke this
// between steps of a real simulation; verify_step never needs it since
// it runs the access-log backend instead.
func (b *Backend) ApplyPendingWrite() {
	addr, val, ok := b.PendingWrite()
	if !ok {
		return
	}
	b.ram[(addr-rv64i.UarchRAMStart)/8] = val
	b.writeAddr = 0
	b.writeVal = 0
}

// RAM returns the backend's RAM array, word-indexed from UarchRAMStart.
func (b *Backend) RAM() [RAMWords]uint64 { return b.ram }

// Trap implements rv64i.MemoryAccess.
func (b *Backend) Trap() uint32 { return b.trap }

// SetTrap implements rv64i.MemoryAccess.
func (b *Backend) SetTrap(code uint32) {
	if b.trap == rv64i.TrapNone {
		b.trap = code
	}
}

func (b *Backend) readWord(addr uint64) uint64 {
	if addr < rv64i.UarchRAMStart || addr >= rv64i.UarchRAMEnd {
		b.SetTrap(rv64i.TrapRAMOutOfRange)
		return 0
	}
	return b.ram[(addr-rv64i.UarchRAMStart)/8]
}

func (b *Backend) writeWord(addr, v uint64) {
	if addr == rv64i.UHalt {
		b.halt = v
		return
	}
	if b.writeAddr != 0 {
		b.SetTrap(rv64i.TrapRAMSecondWrite)
		return
	}
	b.writeAddr = addr
	b.writeVal = v
}

func (b *Backend) ReadCycle() uint64   { return b.cycle }
func (b *Backend) WriteCycle(v uint64) { b.cycle = v }
func (b *Backend) ReadHalt() uint64    { return b.halt }
func (b *Backend) SetHalt(v uint64)    { b.halt = v }
func (b *Backend) ReadPC() uint64      { return b.pc }
func (b *Backend) WritePC(v uint64)    { b.pc = v }

func (b *Backend) ReadX(i uint64) uint64 { return b.regs[i] }

func (b *Backend) WriteX(i uint64, v uint64) {
	if i == 0 {
		return
	}
	b.regs[i] = v
}

func (b *Backend) ReadU8(addr uint64) uint64 {
	word := b.readWord(rv64i.AlignWord(addr))
	return rv64i.ExtractSubword(word, addr, 8)
}

func (b *Backend) ReadU16(addr uint64) uint64 {
	word := b.readWord(rv64i.AlignWord(addr))
	return rv64i.ExtractSubword(word, addr, 16)
}

func (b *Backend) ReadU32(addr uint64) uint64 {
	word := b.readWord(rv64i.AlignWord(addr))
	return rv64i.ExtractSubword(word, addr, 32)
}

func (b *Backend) ReadU64(addr uint64) uint64 {
	return b.readWord(rv64i.AlignWord(addr))
}

// WriteU8/16/32 splice into the containing word before buffering it as a
// pending write; this still costs at most one pending write; the read of
// the containing word does not touch the pending slot.
func (b *Backend) WriteU8(addr uint64, v uint64) {
	b.writeSubword(addr, 8, v)
}

func (b *Backend) WriteU16(addr uint64, v uint64) {
	b.writeSubword(addr, 16, v)
}

func (b *Backend) WriteU32(addr uint64, v uint64) {
	b.writeSubword(addr, 32, v)
}

func (b *Backend) WriteU64(addr uint64, v uint64) {
	b.writeWord(rv64i.AlignWord(addr), v)
}

func (b *Backend) writeSubword(addr uint64, count uint, v uint64) {
	palign := rv64i.AlignWord(addr)
	word := b.readWord(palign)
	if b.trap != rv64i.TrapNone {
		return
	}
	spliced := rv64i.SpliceSubword(word, addr, count, v)
	b.writeWord(palign, spliced)
}
