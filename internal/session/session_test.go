package session

/*
 * uarch-step - REPL session tests
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
	"os"
	"path/filepath"
	"testing"

	"github.com/rcornwell/uarch-step/internal/rv64i"
	"github.com/rcornwell/uarch-step/internal/step"
)

func TestSessionStepAdvancesCycle(t *testing.T) {
	sess := New()
	_, _, cycle := sess.Regs()
	if cycle != 0 {
		t.Fatalf("initial cycle = %d, want 0", cycle)
	}
	status := sess.Step()
	if status != step.Success {
		t.Fatalf("Step() = %v, want Success", status)
	}
	_, _, cycle = sess.Regs()
	if cycle != 1 {
		t.Errorf("cycle after one step = %d, want 1", cycle)
	}
}

func TestSessionStepOnIllegalWordLeavesPCAlone(t *testing.T) {
	sess := New()
	// A zeroed uarch fetches at pc 0, which lies below UarchRAMStart: the
	// fetch traps as out of range and the zero word it returns decodes to
	// no RV64I opcode either. The step must not advance pc or regs, but
	// the cycle counter still advances since step.Step writes it
	// unconditionally.
	for range 3 {
		status := sess.Step()
		if status != step.Success {
			t.Fatalf("Step() = %v, want Success", status)
		}
	}
	regs, pc, cycle := sess.Regs()
	if pc != 0 {
		t.Errorf("pc after 3 trapped steps = %#x, want 0", pc)
	}
	if regs[0] != 0 {
		t.Errorf("x0 = %d, want 0 (hardwired zero)", regs[0])
	}
	if cycle != 3 {
		t.Errorf("cycle after 3 steps = %d, want 3", cycle)
	}
}

func TestSessionVerifyStepRequiresFixture(t *testing.T) {
	sess := New()
	if _, err := sess.VerifyStep(); err == nil {
		t.Error("VerifyStep with no loaded fixture did not return an error")
	}
}

func TestSessionVerifyDisputeRequiresFixture(t *testing.T) {
	sess := New()
	if _, err := sess.VerifyDispute(); err == nil {
		t.Error("VerifyDispute with no loaded fixture did not return an error")
	}
}

func TestSessionLoadFixtureAndVerifyStep(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "step.fixture")
	// ADDI x1, x0, 7 (0x00700093) at UarchRAMStart: read cycle, read halt,
	// read pc, read instruction, read x0, write x1, write pc, write
	// cycle, end — exactly the sequence step.Step issues.
	contents := "# ADDI x1, x0, 7 -> 0x00700093\n" +
		"ACCESS read 0x320 0\n" +
		"ACCESS read 0x328 0\n" +
		"ACCESS read 0x330 0x70000000\n" +
		"ACCESS read 0x70000000 0x00700093\n" +
		"ACCESS read 0x340 0\n" +
		"ACCESS write 0x348 7\n" +
		"ACCESS write 0x330 0x70000004\n" +
		"ACCESS write 0x320 1\n" +
		"ACCESS end\n"
	if err := os.WriteFile(name, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	sess := New()
	if err := sess.LoadFixture(name); err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	trap, err := sess.VerifyStep()
	if err != nil {
		t.Fatalf("VerifyStep: %v", err)
	}
	if trap != 0 {
		t.Errorf("trap = %d, want 0", trap)
	}
}

func TestSessionVerifyStepRejectsUnterminatedLog(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "step.fixture")
	// Same ADDI step as above, but missing the trailing "ACCESS end":
	// the step itself replays cleanly (no trap), yet the log never
	// signals termination, so VerifyStep must still reject it.
	contents := "ACCESS read 0x320 0\n" +
		"ACCESS read 0x328 0\n" +
		"ACCESS read 0x330 0x70000000\n" +
		"ACCESS read 0x70000000 0x00700093\n" +
		"ACCESS read 0x340 0\n" +
		"ACCESS write 0x348 7\n" +
		"ACCESS write 0x330 0x70000004\n" +
		"ACCESS write 0x320 1\n"
	if err := os.WriteFile(name, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	sess := New()
	if err := sess.LoadFixture(name); err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	trap, err := sess.VerifyStep()
	if err != nil {
		t.Fatalf("VerifyStep: %v", err)
	}
	if trap != rv64i.TrapLogNotTerminated {
		t.Errorf("trap = %d, want TrapLogNotTerminated (%d)", trap, rv64i.TrapLogNotTerminated)
	}
}
