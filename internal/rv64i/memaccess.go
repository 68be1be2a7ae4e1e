/*
 * uarch-step - Abstract memory access interface
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

// MemoryAccess is the capability set the executor touches state through.
// Two backends satisfy it: package accesslog (replay of a 16-entry
// access script, for single-step circuit verification) and package
// directram (a real RAM array plus a pending-write slot, for
// state-carrying simulation). The executor's 50-odd instruction handlers
// are written once against this interface and never know which backend
// they are running against.
//
// Once Trap() is non-zero the result of any further operation is
// unspecified; implementations may keep running (so that, e.g., a step
// driver's final WriteCycle still executes and the access log stays
// aligned) but callers must stop trusting returned values.
type MemoryAccess interface {
	ReadCycle() uint64
	WriteCycle(v uint64)

	ReadHalt() uint64
	SetHalt(v uint64)

	ReadPC() uint64
	WritePC(v uint64)

	ReadX(i uint64) uint64
	WriteX(i uint64, v uint64)

	ReadU8(addr uint64) uint64
	ReadU16(addr uint64) uint64
	ReadU32(addr uint64) uint64
	ReadU64(addr uint64) uint64

	WriteU8(addr uint64, v uint64)
	WriteU16(addr uint64, v uint64)
	WriteU32(addr uint64, v uint64)
	WriteU64(addr uint64, v uint64)

	// Trap returns the first fault code latched by any of the operations
	// above, or TrapNone if none has occurred yet.
	Trap() uint32

	// SetTrap latches code as the trap reason if none is latched yet. The
	// executor calls this directly for faults it detects itself (illegal
	// instruction) rather than through a memory operation.
	SetTrap(code uint32)
}
