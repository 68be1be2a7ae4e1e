/*
 * uarch-step - Trap and pseudo-address constants
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

// Trap codes latched on a MemoryAccess implementation's Trap field. Zero
// means no trap. Codes 18-21 are log-replay structural faults, owned by
// package accesslog; they are declared here because the executor checks
// Trap() generically without caring which backend produced the code.
const (
	TrapNone               = 0
	TrapAlignment          = 1 // misaligned access or failed assertion
	TrapLogReadPastEnd     = 18
	TrapLogReadMismatch    = 19
	TrapLogWritePastEnd    = 20
	TrapLogWriteMismatch   = 21
	TrapLogNotTerminated   = 22
	TrapIllegalInstruction = 253

	// The direct-RAM backend reuses codes 18 and 19 for its own two faults
	// (out-of-range word access, second write in one step); the aliases
	// below exist so its source doesn't read like a log-replay fault.
	TrapRAMOutOfRange  = TrapLogReadPastEnd
	TrapRAMSecondWrite = TrapLogReadMismatch
)

// Fixed protocol constants (spec section 6).
const (
	UarchRAMStart = uint64(0x70000000)
	RAMSize       = uint64(131072)
	RAMWords      = RAMSize / 8
	UarchRAMEnd   = UarchRAMStart + RAMSize

	// FirstPageWords is the size, in 64-bit words, of the low address
	// range (below 1024) that the bisection adjudicator's RAM snapshots
	// reserve for cycle/halt/pc/register state, distinct from the main
	// RAM array. See rv64i.RegAddr and the U* pseudo-addresses below.
	FirstPageBytes = uint64(1024)
	FirstPageWords = FirstPageBytes / 8

	// Pseudo-addresses for control state, used by the access-log backend
	// which models cycle/halt/pc/registers as ordinary 64-bit word accesses.
	UCycle = uint64(0x320)
	UHalt  = uint64(0x328)
	UPC    = uint64(0x330)
	UX0    = uint64(0x340)

	MaxCycle       = uint64(1) << 30
	BisectionSteps = 30
)

// RegAddr returns the pseudo-address of general register i.
func RegAddr(i uint64) uint64 {
	return UX0 + 8*i
}
