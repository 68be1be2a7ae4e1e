/*
 * uarch-step - Command parser.
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

// Package parser dispatches the REPL's command line to one of a small,
// fixed command table, the same prefix-matching scheme the teacher uses
// for its device commands, minus the device-address and option-list
// machinery this domain has no use for: there is exactly one uarch per
// session and its commands take at most one plain argument.
package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/rcornwell/uarch-step/internal/rvasm"
	"github.com/rcornwell/uarch-step/internal/session"
	"github.com/rcornwell/uarch-step/util/hexutil"
)

type cmd struct {
	name    string // Command name.
	min     int    // Minimum match size.
	process func(*cmdLine, *session.Session) (bool, error)
}

type cmdLine struct {
	line string // Current command.
	pos  int    // Position in line.
}

var cmdList = []cmd{
	{name: "step", min: 1, process: stepCmd},
	{name: "show", min: 2, process: show},
	{name: "load", min: 1, process: load},
	{name: "verify", min: 1, process: verify},
	{name: "disasm", min: 2, process: disasm},
	{name: "quit", min: 1, process: quit},
}

// ProcessCommand executes the command line given. The bool return is
// true when the REPL should exit.
func ProcessCommand(commandLine string, sess *session.Session) (bool, error) {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	match := matchList(name)
	if len(match) == 0 {
		return false, errors.New("command not found: " + name)
	}
	if len(match) > 1 {
		return false, errors.New("ambiguous command: " + name)
	}

	return match[0].process(&line, sess)
}

// CompleteCmd completes a partial command name during line editing.
func CompleteCmd(commandLine string) []string {
	line := cmdLine{line: commandLine}
	name := line.getWord()
	if !line.isEOL() {
		return nil
	}
	match := matchList(name)
	out := make([]string, len(match))
	for i, m := range match {
		out[i] = m.name
	}
	return out
}

// matchCommand reports whether command is a prefix of match.name at
// least match.min characters long.
func matchCommand(match cmd, command string) bool {
	if len(command) > len(match.name) || len(command) < match.min {
		return false
	}
	for i := range len(command) {
		if match.name[i] != command[i] {
			return false
		}
	}
	return true
}

func matchList(command string) []cmd {
	if command == "" {
		return []cmd{}
	}
	var match []cmd
	for _, m := range cmdList {
		if matchCommand(m, command) {
			match = append(match, m)
		}
	}
	return match
}

func (line *cmdLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

func (line *cmdLine) isEOL() bool {
	line.skipSpace()
	return line.pos >= len(line.line) || line.line[line.pos] == '#'
}

// getWord returns the next whitespace-delimited word, lower-cased.
func (line *cmdLine) getWord() string {
	line.skipSpace()
	if line.isEOL() {
		return ""
	}
	start := line.pos
	for line.pos < len(line.line) && !unicode.IsSpace(rune(line.line[line.pos])) && line.line[line.pos] != '#' {
		line.pos++
	}
	return strings.ToLower(line.line[start:line.pos])
}

// stepCmd advances the session's direct-RAM uarch by one microinstruction.
func stepCmd(_ *cmdLine, sess *session.Session) (bool, error) {
	status := sess.Step()
	fmt.Println(status)
	return false, nil
}

// show prints either the register file or the RAM array.
func show(line *cmdLine, sess *session.Session) (bool, error) {
	what := line.getWord()
	var str strings.Builder
	switch what {
	case "regs", "reg", "r":
		regs, pc, cycle := sess.Regs()
		str.WriteString("cycle=")
		hexutil.FormatWord64(&str, cycle)
		str.WriteString(" pc=")
		hexutil.FormatAddr(&str, pc)
		str.WriteByte('\n')
		hexutil.FormatRegs(&str, regs)
	case "ram", "memory", "mem":
		ram := sess.RAM()
		hexutil.FormatWords64(&str, ram[:])
	default:
		return false, fmt.Errorf("show requires regs or ram, got %q", what)
	}
	fmt.Println(str.String())
	return false, nil
}

// load reads a fixture file for a later verify command.
func load(line *cmdLine, sess *session.Session) (bool, error) {
	name := line.getWord()
	if name == "" {
		return false, errors.New("load requires a fixture file name")
	}
	if err := sess.LoadFixture(name); err != nil {
		return false, err
	}
	slog.Info("loaded fixture " + name)
	return false, nil
}

// verify runs either the single-step or the bisection adjudicator
// against the most recently loaded fixture.
func verify(line *cmdLine, sess *session.Session) (bool, error) {
	what := line.getWord()
	switch what {
	case "step", "":
		trap, err := sess.VerifyStep()
		if err != nil {
			return false, err
		}
		fmt.Printf("trap=%d\n", trap)
	case "dispute":
		verdict, err := sess.VerifyDispute()
		if err != nil {
			return false, err
		}
		fmt.Printf("verdict=%d\n", verdict)
	default:
		return false, fmt.Errorf("verify requires step or dispute, got %q", what)
	}
	return false, nil
}

// disasm prints the mnemonic for a 32-bit instruction word given in hex.
func disasm(line *cmdLine, _ *session.Session) (bool, error) {
	text := strings.TrimPrefix(strings.TrimPrefix(line.getWord(), "0x"), "0X")
	if text == "" {
		return false, errors.New("disasm requires a hex instruction word")
	}
	v, err := strconv.ParseUint(text, 16, 32)
	if err != nil {
		return false, fmt.Errorf("invalid instruction word %q: %w", text, err)
	}
	fmt.Println(rvasm.Disassemble(uint32(v)))
	return false, nil
}

// quit ends the REPL.
func quit(_ *cmdLine, _ *session.Session) (bool, error) {
	return true, nil
}
