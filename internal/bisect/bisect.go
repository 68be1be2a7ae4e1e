/*
 * uarch-step - Bisection adjudicator
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

// Package bisect implements the verifier side of the interactive
// bisection protocol: given the verifier's thirty agree/disagree
// answers, the prover's intermediate RAM commitments, and the access
// log for the single pinpointed step, it reconstructs the disputed
// cycle, checks the prover's snapshots for consistency, and replays the
// step to confirm the claimed RAM delta.
package bisect

import (
	"github.com/rcornwell/uarch-step/internal/accesslog"
	"github.com/rcornwell/uarch-step/internal/rv64i"
	"github.com/rcornwell/uarch-step/internal/step"
)

// Verdict codes. Zero accepts the dispute; any other value rejects it,
// preserving the first failing condition for diagnosis.
const (
	Accept = 0

	// Snapshot/delta/overlay mismatches.
	VerdictSnapshotMismatch = 44
	VerdictOverlayMismatch  = 45
	VerdictDeltaMismatch    = 46
	VerdictLogNotLinear     = 47

	// Post-state field mismatches from the replayed step.
	VerdictStepFailed        = 100
	VerdictStepTrapped       = 101
	VerdictStepPtrOverrun    = 102
	VerdictStepNotTerminated = 103

	// Log read value disagrees with the prover's RAM snapshot.
	VerdictLogDisagreesWithRAM = 432
)

// RAMSnapshot is one of the prover's committed RAM images: the low
// address range below 1024, which the access-log convention reserves
// for cycle/halt/pc/register pseudo-addresses, plus the main RAM array
// proper, starting at UarchRAMStart.
type RAMSnapshot struct {
	Page [rv64i.FirstPageWords]uint64
	Main [rv64i.RAMWords]uint64
}

// Input is the full input record for verify_dispute.
type Input struct {
	// RAM is the prover's claimed snapshot at the last-agreed cycle.
	RAM RAMSnapshot
	// RAMDisagree is the prover's claimed snapshot at the first
	// disagreement cycle (lastAgree + 1).
	RAMDisagree RAMSnapshot
	// ProverBisectionRAM holds the thirty intermediate RAM snapshots the
	// prover committed to during the bisection rounds, one per round.
	ProverBisectionRAM [rv64i.BisectionSteps]RAMSnapshot
	// Log is the 16-entry access log for the disputed step.
	Log [accesslog.LogSize]accesslog.Access
	// VerifierBisections holds the verifier's answer at each round: 1
	// for agree, 0 for disagree.
	VerifierBisections [rv64i.BisectionSteps]uint8
}

// ramWordAt maps paddr to a word in snap using the access-log
// convention: addresses below 1024 index the first-page overlay,
// addresses in [UarchRAMStart, UarchRAMEnd) index the main RAM array.
// ok is false for any other address.
func ramWordAt(snap RAMSnapshot, paddr uint64) (word uint64, ok bool) {
	switch {
	case paddr < rv64i.FirstPageBytes:
		return snap.Page[paddr/8], true
	case paddr >= rv64i.UarchRAMStart && paddr < rv64i.UarchRAMEnd:
		return snap.Main[(paddr-rv64i.UarchRAMStart)/8], true
	default:
		return 0, false
	}
}

// setWordAt stores val as the word at paddr within snap, using the same
// address mapping as ramWordAt. ok is false for any unmapped address.
func setWordAt(snap *RAMSnapshot, paddr, val uint64) (ok bool) {
	switch {
	case paddr < rv64i.FirstPageBytes:
		snap.Page[paddr/8] = val
		return true
	case paddr >= rv64i.UarchRAMStart && paddr < rv64i.UarchRAMEnd:
		snap.Main[(paddr-rv64i.UarchRAMStart)/8] = val
		return true
	default:
		return false
	}
}

func xorSnapshots(a, b RAMSnapshot) RAMSnapshot {
	var out RAMSnapshot
	for i := range out.Page {
		out.Page[i] = a.Page[i] ^ b.Page[i]
	}
	for i := range out.Main {
		out.Main[i] = a.Main[i] ^ b.Main[i]
	}
	return out
}

// VerifyDispute runs the full bisection adjudicator described in the
// design and returns Accept (0) iff the dispute resolves cleanly, or the
// first failing verdict code otherwise.
func VerifyDispute(in Input) uint32 {
	// 1. Bisection replay.
	left, right := uint64(0), rv64i.MaxCycle
	lastAgree := uint64(0)
	var mids [rv64i.BisectionSteps]uint64

	for i := 0; i < rv64i.BisectionSteps; i++ {
		mid := (left + right) / 2
		mids[i] = mid
		if in.VerifierBisections[i] == 1 {
			lastAgree = mid
			left = mid + 1
		} else {
			right = mid - 1
		}
	}
	lastDisagree := lastAgree + 1

	// 2. Snapshot indices.
	agreeIdx, disagreeIdx := -1, -1
	for i, mid := range mids {
		if mid == lastAgree {
			agreeIdx = i
		}
		if mid == lastDisagree {
			disagreeIdx = i
		}
	}
	if agreeIdx < 0 || disagreeIdx < 0 {
		return VerdictSnapshotMismatch
	}

	// 3. Snapshot consistency.
	if in.RAM != in.ProverBisectionRAM[agreeIdx] {
		return VerdictSnapshotMismatch
	}
	if in.RAMDisagree != in.ProverBisectionRAM[disagreeIdx] {
		return VerdictSnapshotMismatch
	}

	// 4. Sanity of log: a Read must never reference an address an
	// earlier Write in the same log already touched.
	written := make(map[uint64]bool, accesslog.LogSize)
logScan:
	for _, a := range in.Log {
		switch a.Kind {
		case accesslog.End:
			break logScan
		case accesslog.Write:
			written[a.Paddr] = true
		case accesslog.Read:
			if written[a.Paddr] {
				return VerdictLogNotLinear
			}
		}
	}

	// 5. Log-consistency: Reads must agree with the "before" snapshot;
	// each Write sets delta[off] = ram[off] XOR val[i], so that XORing
	// delta back into ram recovers val at that word (step 6).
	var delta RAMSnapshot
deltaScan:
	for _, a := range in.Log {
		switch a.Kind {
		case accesslog.End:
			break deltaScan
		case accesslog.Read:
			word, ok := ramWordAt(in.RAM, a.Paddr)
			if !ok {
				return VerdictOverlayMismatch
			}
			if word != a.Val {
				return VerdictLogDisagreesWithRAM
			}
		case accesslog.Write:
			before, ok := ramWordAt(in.RAM, a.Paddr)
			if !ok {
				return VerdictOverlayMismatch
			}
			if !setWordAt(&delta, a.Paddr, before^a.Val) {
				return VerdictOverlayMismatch
			}
		}
	}

	// 6. Delta check: the predicted post-RAM must equal the prover's
	// "after" snapshot.
	predicted := xorSnapshots(in.RAM, delta)
	if predicted != in.RAMDisagree {
		return VerdictDeltaMismatch
	}

	// 7. Step execution against the access-log backend.
	backend := accesslog.New(in.Log)
	status := step.Step(backend)
	if status != step.Success {
		return VerdictStepFailed
	}
	if backend.Trap() != rv64i.TrapNone {
		return VerdictStepTrapped
	}
	ptr := backend.Ptr()
	switch {
	case ptr > accesslog.LogSize:
		return VerdictStepPtrOverrun
	case ptr == accesslog.LogSize:
		// All 16 slots were consumed as real operations with no trailing
		// End sentinel ever reached: the prover's log never actually
		// signaled termination, so this is rejected the same as landing
		// on a non-End entry.
		return VerdictStepNotTerminated
	case in.Log[ptr].Kind != accesslog.End:
		return VerdictStepNotTerminated
	}

	return Accept
}
