/*
 * uarch-step - Fixture file parser
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

// Package fixture loads the line-oriented text files the CLI reads to
// build either a bare 16-entry access log or a full bisection dispute:
// '#' starts a comment, one directive per line, fields separated by
// whitespace. The grammar is flat by design — no device models, no
// quoting — so unlike the teacher's configparser this file walks lines
// with bufio.Scanner and strings.Fields rather than a character-by-
// character tokenizer.
package fixture

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rcornwell/uarch-step/internal/accesslog"
	"github.com/rcornwell/uarch-step/internal/bisect"
	"github.com/rcornwell/uarch-step/internal/rv64i"
)

// Fixture holds whichever pieces a file described. Step is non-nil when
// the file built a bare access log (for `verify step`); Dispute is
// non-nil when it built a full bisection dispute (for `verify dispute`).
type Fixture struct {
	Step    *[accesslog.LogSize]accesslog.Access
	Dispute *bisect.Input
}

// Load reads and parses the fixture file at name.
func Load(name string) (*Fixture, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	f := &Fixture{}
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := f.parseLine(scanner.Text()); err != nil {
			return nil, fmt.Errorf("fixture %s: line %d: %w", name, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Fixture) parseLine(line string) error {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch strings.ToUpper(fields[0]) {
	case "ACCESS":
		return f.parseAccess(fields[1:])
	case "RAM":
		return f.parseRAMWord(fields[1:], &f.dispute().RAM)
	case "RAMDISAGREE":
		return f.parseRAMWord(fields[1:], &f.dispute().RAMDisagree)
	case "BISECTRAM":
		return f.parseBisectRAM(fields[1:])
	case "VERIFIERBIT":
		return f.parseVerifierBit(fields[1:])
	default:
		return fmt.Errorf("unknown directive %q", fields[0])
	}
}

func (f *Fixture) dispute() *bisect.Input {
	if f.Dispute == nil {
		f.Dispute = &bisect.Input{}
	}
	return f.Dispute
}

// parseAccess handles "ACCESS read|write|end <paddr> [<val>]", appending
// to the next free slot of the 16-entry log.
func (f *Fixture) parseAccess(fields []string) error {
	if f.Step == nil {
		var log [accesslog.LogSize]accesslog.Access
		f.Step = &log
	}
	n := nextAccessSlot(f.Step)
	if n >= accesslog.LogSize {
		return fmt.Errorf("access log already has %d entries", accesslog.LogSize)
	}
	if len(fields) < 1 {
		return fmt.Errorf("ACCESS requires a kind")
	}
	var a accesslog.Access
	switch strings.ToLower(fields[0]) {
	case "read":
		a.Kind = accesslog.Read
	case "write":
		a.Kind = accesslog.Write
	case "end":
		a.Kind = accesslog.End
		f.Step[n] = a
		return nil
	default:
		return fmt.Errorf("unknown access kind %q", fields[0])
	}
	if len(fields) < 2 {
		return fmt.Errorf("ACCESS %s requires a paddr", fields[0])
	}
	paddr, err := parseHex(fields[1])
	if err != nil {
		return err
	}
	a.Paddr = paddr
	if len(fields) >= 3 {
		val, err := parseHex(fields[2])
		if err != nil {
			return err
		}
		a.Val = val
	}
	f.Step[n] = a
	return nil
}

func nextAccessSlot(log *[accesslog.LogSize]accesslog.Access) int {
	for i := accesslog.LogSize - 1; i >= 0; i-- {
		if log[i] != (accesslog.Access{}) {
			return i + 1
		}
	}
	return 0
}

// parseRAMWord handles "<offset> <value>" against the mapped snapshot
// word, the same first-page/main-array addressing the adjudicator uses.
func (f *Fixture) parseRAMWord(fields []string, snap *bisect.RAMSnapshot) error {
	if len(fields) != 2 {
		return fmt.Errorf("expected <offset> <value>, got %d fields", len(fields))
	}
	offset, err := parseHex(fields[0])
	if err != nil {
		return err
	}
	val, err := parseHex(fields[1])
	if err != nil {
		return err
	}
	switch {
	case offset < rv64i.FirstPageBytes:
		snap.Page[offset/8] = val
	case offset >= rv64i.UarchRAMStart && offset < rv64i.UarchRAMEnd:
		snap.Main[(offset-rv64i.UarchRAMStart)/8] = val
	default:
		return fmt.Errorf("offset %#x is outside both RAM regions", offset)
	}
	return nil
}

// parseBisectRAM handles "<round> <offset> <value>".
func (f *Fixture) parseBisectRAM(fields []string) error {
	if len(fields) != 3 {
		return fmt.Errorf("expected <round> <offset> <value>, got %d fields", len(fields))
	}
	round, err := strconv.Atoi(fields[0])
	if err != nil || round < 0 || round >= rv64i.BisectionSteps {
		return fmt.Errorf("invalid bisection round %q", fields[0])
	}
	return f.parseRAMWord(fields[1:], &f.dispute().ProverBisectionRAM[round])
}

// parseVerifierBit handles "<round> <0|1>".
func (f *Fixture) parseVerifierBit(fields []string) error {
	if len(fields) != 2 {
		return fmt.Errorf("expected <round> <0|1>, got %d fields", len(fields))
	}
	round, err := strconv.Atoi(fields[0])
	if err != nil || round < 0 || round >= rv64i.BisectionSteps {
		return fmt.Errorf("invalid bisection round %q", fields[0])
	}
	bit, err := strconv.Atoi(fields[1])
	if err != nil || (bit != 0 && bit != 1) {
		return fmt.Errorf("verifier bit must be 0 or 1, got %q", fields[1])
	}
	f.dispute().VerifierBisections[round] = uint8(bit)
	return nil
}

func parseHex(s string) (uint64, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hex value %q: %w", s, err)
	}
	return v, nil
}
