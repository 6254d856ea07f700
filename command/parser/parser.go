/*
 * feeprom - Command parser
 *
 * Copyright 2024, Richard Cornwell
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

// Package parser implements the REPL command grammar for driving a
// feeprom.Engine interactively: prefix-matched command names over a
// small fixed table, the same shape as the source's device console
// commands reduced to an address/value store instead of device
// attach/detach/set.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/rcornwell/feeprom"
	"github.com/rcornwell/feeprom/util/hexdump"
)

type cmd struct {
	name    string
	min     int
	process func(*cmdLine, *feeprom.Engine) (bool, error)
}

type cmdLine struct {
	line string
	pos  int
}

var cmdList = []cmd{
	{name: "read", min: 1, process: read},
	{name: "write", min: 1, process: write},
	{name: "dump", min: 1, process: dump},
	{name: "compact", min: 1, process: compact},
	{name: "erase", min: 1, process: erase},
	{name: "show", min: 1, process: show},
	{name: "quit", min: 1, process: quit},
}

// ProcessCommand runs one line of input against engine. The returned
// bool reports whether the REPL should exit.
func ProcessCommand(commandLine string, engine *feeprom.Engine) (bool, error) {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	match := matchList(name)
	if len(match) == 0 {
		return false, errors.New("command not found: " + name)
	}
	if len(match) > 1 {
		return false, errors.New("ambiguous command: " + name)
	}
	return match[0].process(&line, engine)
}

// CompleteCmd completes a partial command name for liner's tab
// completion; it does not complete addresses or values.
func CompleteCmd(commandLine string) []string {
	line := cmdLine{line: commandLine}
	name := line.getWord()
	if !line.isEOL() {
		return nil
	}
	matches := matchList(name)
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.name
	}
	return names
}

func matchCommand(m cmd, name string) bool {
	if len(name) > len(m.name) {
		return false
	}
	if name != m.name[:len(name)] {
		return false
	}
	return len(name) >= m.min
}

func matchList(name string) []cmd {
	if name == "" {
		return nil
	}
	var match []cmd
	for _, m := range cmdList {
		if matchCommand(m, name) {
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
	return line.pos >= len(line.line)
}

func (line *cmdLine) getWord() string {
	line.skipSpace()
	start := line.pos
	for line.pos < len(line.line) && !unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
	return strings.ToLower(line.line[start:line.pos])
}

func (line *cmdLine) getUint(bitSize int) (uint64, error) {
	word := line.getWord()
	if word == "" {
		return 0, errors.New("expected a number")
	}
	return strconv.ParseUint(strings.TrimPrefix(word, "0x"), 16, bitSize)
}

func read(line *cmdLine, engine *feeprom.Engine) (bool, error) {
	addr, err := line.getUint(32)
	if err != nil {
		return false, fmt.Errorf("read: %w", err)
	}
	width := line.getWord()
	switch width {
	case "", "byte":
		fmt.Printf("%#04x: %#02x\n", addr, engine.ReadByte(uint32(addr)))
	case "word":
		fmt.Printf("%#04x: %#04x\n", addr, engine.ReadWord(uint32(addr)))
	case "dword":
		fmt.Printf("%#04x: %#08x\n", addr, engine.ReadDword(uint32(addr)))
	default:
		return false, errors.New("read: unknown width: " + width)
	}
	return false, nil
}

func write(line *cmdLine, engine *feeprom.Engine) (bool, error) {
	addr, err := line.getUint(32)
	if err != nil {
		return false, fmt.Errorf("write: %w", err)
	}
	value, err := line.getUint(32)
	if err != nil {
		return false, fmt.Errorf("write: %w", err)
	}
	width := line.getWord()

	var result feeprom.Result
	switch width {
	case "", "byte":
		result = engine.WriteByte(uint32(addr), byte(value))
	case "word":
		result = engine.WriteWord(uint32(addr), uint16(value))
	case "dword":
		result = engine.WriteDword(uint32(addr), uint32(value))
	default:
		return false, errors.New("write: unknown width: " + width)
	}
	fmt.Println(result.Kind)
	if !result.OK() {
		return false, result
	}
	return false, nil
}

func dump(line *cmdLine, engine *feeprom.Engine) (bool, error) {
	addr, err := line.getUint(32)
	if err != nil {
		addr = 0
	}
	n, err := line.getUint(32)
	if err != nil {
		n = uint64(engine.Density()) - addr
	}
	buf := make([]byte, n)
	engine.ReadBlock(buf, uint32(addr))
	out := hexdump.Dump(buf, uint32(addr))
	if out == "" {
		return false, errors.New("dump: only available in a debug build")
	}
	fmt.Print(out)
	return false, nil
}

func compact(_ *cmdLine, engine *feeprom.Engine) (bool, error) {
	engine.Compact()
	fmt.Println("compaction complete")
	return false, nil
}

func erase(_ *cmdLine, engine *feeprom.Engine) (bool, error) {
	engine.Erase()
	fmt.Println("store erased")
	return false, nil
}

func show(_ *cmdLine, engine *feeprom.Engine) (bool, error) {
	fmt.Printf("density: %d bytes\n", engine.Density())
	fmt.Printf("log capacity remaining: %d bytes\n", engine.LogCapacity())
	fmt.Printf("next log slot: %#x\n", engine.EmptySlot())
	return false, nil
}

func quit(_ *cmdLine, _ *feeprom.Engine) (bool, error) {
	return true, nil
}
