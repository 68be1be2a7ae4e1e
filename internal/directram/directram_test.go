package directram

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

import (
	"testing"

	"github.com/rcornwell/uarch-step/internal/rv64i"
)

func TestWriteThenReadSameWord(t *testing.T) {
	var ram [RAMWords]uint64
	b := New(ram, 0, rv64i.UarchRAMStart, [32]uint64{}, 0)
	b.WriteU64(rv64i.UarchRAMStart, 0x1122334455667788)
	b.ApplyPendingWrite()
	if got := b.ReadU64(rv64i.UarchRAMStart); got != 0x1122334455667788 {
		t.Errorf("ReadU64 after WriteU64+apply = %#x, want 0x1122334455667788", got)
	}
}

func TestSecondWriteInStepTraps(t *testing.T) {
	var ram [RAMWords]uint64
	b := New(ram, 0, rv64i.UarchRAMStart, [32]uint64{}, 0)
	b.BeginStep()
	b.WriteU64(rv64i.UarchRAMStart, 1)
	b.WriteU64(rv64i.UarchRAMStart+8, 2)
	if b.Trap() != rv64i.TrapRAMSecondWrite {
		t.Errorf("Trap() = %d, want TrapRAMSecondWrite", b.Trap())
	}
}

func TestPendingWriteNotAppliedUntilCommitted(t *testing.T) {
	var ram [RAMWords]uint64
	b := New(ram, 0, rv64i.UarchRAMStart, [32]uint64{}, 0)
	b.BeginStep()
	b.WriteU64(rv64i.UarchRAMStart, 42)
	if got := b.ReadU64(rv64i.UarchRAMStart); got != 0 {
		t.Errorf("RAM mutated before ApplyPendingWrite: got %#x, want 0", got)
	}
	addr, val, ok := b.PendingWrite()
	if !ok || addr != rv64i.UarchRAMStart || val != 42 {
		t.Errorf("PendingWrite() = (%#x, %d, %v), want (%#x, 42, true)", addr, val, ok, rv64i.UarchRAMStart)
	}
}

func TestOutOfRangeReadTraps(t *testing.T) {
	var ram [RAMWords]uint64
	b := New(ram, 0, 0, [32]uint64{}, 0)
	b.ReadU64(rv64i.UarchRAMEnd)
	if b.Trap() != rv64i.TrapRAMOutOfRange {
		t.Errorf("Trap() = %d, want TrapRAMOutOfRange", b.Trap())
	}
}

func TestWriteHaltPseudoAddressSetsFlag(t *testing.T) {
	var ram [RAMWords]uint64
	b := New(ram, 0, 0, [32]uint64{}, 0)
	b.SetHalt(0)
	b.BeginStep()
	b.WriteU64(rv64i.UHalt, 1)
	if b.ReadHalt() != 1 {
		t.Errorf("ReadHalt() = %d after write to UHalt, want 1", b.ReadHalt())
	}
	if _, _, ok := b.PendingWrite(); ok {
		t.Errorf("PendingWrite() reports a pending write after a halt-address write, want none")
	}
}

func TestX0WriteIsNoOp(t *testing.T) {
	var ram [RAMWords]uint64
	b := New(ram, 0, 0, [32]uint64{}, 0)
	b.WriteX(0, 99)
	if b.ReadX(0) != 0 {
		t.Errorf("ReadX(0) = %d after WriteX(0, 99), want 0", b.ReadX(0))
	}
}

func TestSubwordWriteThenRead(t *testing.T) {
	var ram [RAMWords]uint64
	b := New(ram, 0, 0, [32]uint64{}, 0)
	b.BeginStep()
	b.WriteU8(rv64i.UarchRAMStart+1, 0xAB)
	b.ApplyPendingWrite()
	if got := b.ReadU8(rv64i.UarchRAMStart + 1); got != 0xAB {
		t.Errorf("ReadU8 after WriteU8+apply = %#x, want 0xAB", got)
	}
}
