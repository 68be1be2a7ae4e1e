/*
 * uarch-step - Interactive REPL session state
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

// Package session holds the mutable state one REPL talks to: a
// directram-backed microarchitecture plus whatever fixture the operator
// last loaded for the verify command. It plays the same role the
// teacher's emu/core Core does for the CPU, minus the goroutine and
// channel plumbing a real-time CPU loop needs — stepping a fixed
// uarch one instruction at a time is synchronous from end to end.
package session

import (
	"fmt"

	"github.com/rcornwell/uarch-step/config/fixture"
	"github.com/rcornwell/uarch-step/internal/accesslog"
	"github.com/rcornwell/uarch-step/internal/bisect"
	"github.com/rcornwell/uarch-step/internal/directram"
	"github.com/rcornwell/uarch-step/internal/rv64i"
	"github.com/rcornwell/uarch-step/internal/step"
)

// Session is the REPL's working state.
type Session struct {
	ram     *directram.Backend
	fixture *fixture.Fixture
}

// New constructs a Session over a zeroed direct-RAM uarch.
func New() *Session {
	var ram [directram.RAMWords]uint64
	var regs [32]uint64
	return &Session{ram: directram.New(ram, 0, 0, regs, 0)}
}

// LoadFixture reads a fixture file for later use by Verify.
func (s *Session) LoadFixture(name string) error {
	f, err := fixture.Load(name)
	if err != nil {
		return err
	}
	s.fixture = f
	return nil
}

// Step runs exactly one microinstruction against the direct-RAM uarch,
// applying the pending write (if any) before returning.
func (s *Session) Step() step.Status {
	s.ram.BeginStep()
	status := step.Step(s.ram)
	s.ram.ApplyPendingWrite()
	return status
}

// Regs returns the current architectural register file, PC and cycle.
func (s *Session) Regs() (regs [32]uint64, pc, cycle uint64) {
	var r [32]uint64
	for i := range r {
		r[i] = s.ram.ReadX(uint64(i))
	}
	return r, s.ram.ReadPC(), s.ram.ReadCycle()
}

// RAM returns the direct-RAM uarch's RAM array.
func (s *Session) RAM() [directram.RAMWords]uint64 {
	return s.ram.RAM()
}

// VerifyStep replays the loaded fixture's access log as a single step
// against the access-log backend and reports the resulting trap code.
// A step that traps reports its own trap code. A step that completes
// cleanly but leaves the log pointer on an entry other than End is
// rejected with rv64i.TrapLogNotTerminated (22).
func (s *Session) VerifyStep() (uint32, error) {
	if s.fixture == nil || s.fixture.Step == nil {
		return 0, fmt.Errorf("no access-log fixture loaded")
	}
	log := *s.fixture.Step
	backend := accesslog.New(log)
	status := step.Step(backend)
	if status != step.Success {
		return 0, fmt.Errorf("step did not complete: %s", status)
	}
	if trap := backend.Trap(); trap != rv64i.TrapNone {
		return trap, nil
	}
	ptr := backend.Ptr()
	if ptr >= accesslog.LogSize || log[ptr].Kind != accesslog.End {
		return rv64i.TrapLogNotTerminated, nil
	}
	return rv64i.TrapNone, nil
}

// VerifyDispute runs the bisection adjudicator against the loaded
// fixture's dispute input.
func (s *Session) VerifyDispute() (uint32, error) {
	if s.fixture == nil || s.fixture.Dispute == nil {
		return 0, fmt.Errorf("no dispute fixture loaded")
	}
	return bisect.VerifyDispute(*s.fixture.Dispute), nil
}
