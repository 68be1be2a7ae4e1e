/*
 * uarch-step - Access-log replay memory backend
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

// Package accesslog implements the RV64I MemoryAccess interface as a
// sequential replay of a 16-entry typed-access script. It is the backend
// used for single-step circuit verification: every read and write the
// executor issues is checked against the next entry of a script supplied
// up front, rather than against any materialized state.
package accesslog

import "github.com/rcornwell/uarch-step/internal/rv64i"

// Kind distinguishes the three possible access-log entry types.
type Kind uint8

const (
	Read Kind = iota
	Write
	End
)

// LogSize is the fixed length of one step's access script.
const LogSize = 16

// Access is one entry of the 16-entry log: a typed (address, value) pair.
type Access struct {
	Paddr uint64
	Val   uint64
	Kind  Kind
}

// Backend replays a fixed Access script and checks the executor's memory
// operations against it in order.
type Backend struct {
	log  [LogSize]Access
	ptr  uint8
	trap uint32
}

// New constructs a Backend that will replay log in order.
func New(log [LogSize]Access) *Backend {
	return &Backend{log: log}
}

// Ptr returns the index of the next unconsumed log entry.
func (b *Backend) Ptr() uint8 { return b.ptr }

// Trap implements rv64i.MemoryAccess.
func (b *Backend) Trap() uint32 { return b.trap }

// SetTrap implements rv64i.MemoryAccess.
func (b *Backend) SetTrap(code uint32) {
	if b.trap == rv64i.TrapNone {
		b.trap = code
	}
}

func (b *Backend) readWord(addr uint64) uint64 {
	if b.ptr >= LogSize {
		b.SetTrap(rv64i.TrapLogReadPastEnd)
		return 0
	}
	entry := b.log[b.ptr]
	if entry.Kind == Read && entry.Paddr == addr {
		b.ptr++
		return entry.Val
	}
	b.ptr++
	b.SetTrap(rv64i.TrapLogReadMismatch)
	return 0
}

func (b *Backend) writeWord(addr uint64, v uint64) {
	if b.ptr >= LogSize {
		b.SetTrap(rv64i.TrapLogWritePastEnd)
		return
	}
	entry := b.log[b.ptr]
	if entry.Kind == Write && entry.Paddr == addr && entry.Val == v {
		b.ptr++
		return
	}
	b.ptr++
	b.SetTrap(rv64i.TrapLogWriteMismatch)
}

func (b *Backend) ReadCycle() uint64   { return b.readWord(rv64i.UCycle) }
func (b *Backend) WriteCycle(v uint64) { b.writeWord(rv64i.UCycle, v) }
func (b *Backend) ReadHalt() uint64    { return b.readWord(rv64i.UHalt) }
func (b *Backend) SetHalt(v uint64)    { b.writeWord(rv64i.UHalt, v) }
func (b *Backend) ReadPC() uint64      { return b.readWord(rv64i.UPC) }
func (b *Backend) WritePC(v uint64)    { b.writeWord(rv64i.UPC, v) }

func (b *Backend) ReadX(i uint64) uint64 { return b.readWord(rv64i.RegAddr(i)) }

// WriteX accepts an attempted write to x0 as a no-op-equivalent: the
// executor never issues one (writeRD guards rd != 0), but the interface
// stays well-defined if it's ever called directly.
func (b *Backend) WriteX(i uint64, v uint64) {
	if i == 0 {
		return
	}
	b.writeWord(rv64i.RegAddr(i), v)
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

// WriteU8/16/32 each cost two log entries: a read of the containing word
// followed by a write of the spliced result, since the log only ever
// carries full 64-bit values.
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
