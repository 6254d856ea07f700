/*
 * feeprom - Write cascade: direct snapshot, log append, compaction
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

package feeprom

import (
	"github.com/rcornwell/feeprom/internal/feecodec"
	"github.com/rcornwell/feeprom/internal/feedriver"
)

// ReadByte returns the logical byte at addr, or 0xFF if addr is out of
// range. Reads are served entirely from the RAM image and cannot fail.
func (e *Engine) ReadByte(addr uint32) byte {
	return e.image.GetByte(addr)
}

// ReadWord returns the logical half-word at the even address addr, or
// 0xFFFF if addr is out of range.
func (e *Engine) ReadWord(addr uint32) uint16 {
	return e.image.GetHalf(addr)
}

// WriteByte stores value at addr. addr must be in [0, Density()).
func (e *Engine) WriteByte(addr uint32, value byte) Result {
	if addr >= e.density {
		return badAddress()
	}

	e.enter()
	defer e.leave()

	if e.image.GetByte(addr) == value {
		return ok()
	}
	e.image.SetByte(addr, value)

	evenAddr := addr &^ 1
	newHalf := e.image.GetHalf(evenAddr)

	if r, handled := e.tryDirectWrite(evenAddr, newHalf); handled {
		return r
	}

	if addr < feecodec.FeeByteRange {
		return e.appendByteEntry(addr, value)
	}
	return e.appendWordEntry(evenAddr, newHalf)
}

// WriteWord stores value at the half-word-aligned addr. An odd addr is
// split into two independent byte writes (low byte at addr, high byte
// at addr+1) rather than rejected; this mirrors the source behavior of
// composing word access from byte primitives rather than requiring
// alignment.
func (e *Engine) WriteWord(addr uint32, value uint16) Result {
	if addr&1 != 0 {
		lo := e.WriteByte(addr, byte(value))
		if !lo.OK() {
			return lo
		}
		hi := e.WriteByte(addr+1, byte(value>>8))
		return combine(lo, hi)
	}

	if addr >= e.density {
		return badAddress()
	}

	e.enter()
	defer e.leave()

	oldHalf := e.image.GetHalf(addr)
	if oldHalf == value {
		return ok()
	}
	lowChanged := byte(oldHalf) != byte(value)
	highChanged := byte(oldHalf>>8) != byte(value>>8)
	e.image.SetHalf(addr, value)

	if r, handled := e.tryDirectWrite(addr, value); handled {
		return r
	}

	if addr < feecodec.FeeByteRange {
		// Non-atomic by design: a word write at a low address that
		// changes both bytes becomes two independent log appends. A
		// power loss between them leaves only the first byte durable.
		// Preserved verbatim per the source behavior; not upgraded to
		// a single Word-Next entry.
		switch {
		case lowChanged && highChanged:
			r1 := e.appendByteEntry(addr, byte(value))
			if !r1.OK() {
				return r1
			}
			r2 := e.appendByteEntry(addr+1, byte(value>>8))
			return combine(r1, r2)
		case lowChanged:
			return e.appendByteEntry(addr, byte(value))
		default:
			return e.appendByteEntry(addr+1, byte(value>>8))
		}
	}

	return e.appendWordEntry(addr, value)
}

// UpdateByte writes value only if it differs from the current value,
// returning Ok without touching the engine state at all when it
// already matches (a thin convenience identical in effect to WriteByte,
// which already elides no-op writes; kept for parity with the AVR-style
// update_* wrappers the Public API names).
func (e *Engine) UpdateByte(addr uint32, value byte) Result {
	return e.WriteByte(addr, value)
}

// UpdateWord is the half-word analogue of UpdateByte.
func (e *Engine) UpdateWord(addr uint32, value uint16) Result {
	return e.WriteWord(addr, value)
}

// tryDirectWrite attempts the cheapest persistence path: programming
// the snapshot half-word directly, when it is still unprogrammed
// (0xFFFF). Returns handled=false when the log path must be taken
// instead.
func (e *Engine) tryDirectWrite(evenAddr uint32, newHalf uint16) (Result, bool) {
	if e.driver.ReadHalf(evenAddr) != 0xFFFF {
		return Result{}, false
	}

	comp := ^newHalf
	if comp == 0xFFFF {
		// newHalf is 0x0000: an erased snapshot cell already reads
		// back as zero once complemented. Programming 0xFFFF would
		// merely burn a write cycle for no observable effect.
		return ok(), true
	}

	status := e.program(evenAddr, comp)
	if status != feedriver.Complete {
		return flashFailure(status), true
	}
	return snapshotWritten(), true
}

// appendByteEntry appends a one-word Byte-Entry log record for a
// single byte mutation at addr < FeeByteRange. If the log has no room
// it compacts instead and appends nothing; the rebuilt snapshot already
// holds the new value.
func (e *Engine) appendByteEntry(addr uint32, value byte) Result {
	const entrySize = 2
	if e.emptySlot+entrySize > e.logEnd {
		e.compact()
		return compacted()
	}

	word := feecodec.EncodeByte(addr, value)
	status := e.program(e.emptySlot, word)
	if status != feedriver.Complete {
		return flashFailure(status)
	}
	e.emptySlot += entrySize
	return logAppended()
}

// appendWordEntry appends a Word-Encoded (one word) or Word-Next (two
// word) log record for the half-word value at evenAddr. If the log has
// no room it compacts instead and appends nothing; the rebuilt snapshot
// already holds the new value.
func (e *Engine) appendWordEntry(evenAddr uint32, value uint16) Result {
	entrySize := uint32(2)
	if value != 0 && value != 1 {
		entrySize = 4
	}
	if e.emptySlot+entrySize > e.logEnd {
		e.compact()
		return compacted()
	}

	switch value {
	case 0:
		status := e.program(e.emptySlot, feecodec.EncodeWordZero(evenAddr))
		if status != feedriver.Complete {
			return flashFailure(status)
		}
		e.emptySlot += entrySize
	case 1:
		status := e.program(e.emptySlot, feecodec.EncodeWordOne(evenAddr))
		if status != feedriver.Complete {
			return flashFailure(status)
		}
		e.emptySlot += entrySize
	default:
		primary, word := feecodec.EncodeWordNext(evenAddr, value)
		status := e.program(e.emptySlot, primary)
		if status != feedriver.Complete {
			return flashFailure(status)
		}
		// The entry only commits once the value word lands; a power
		// loss between these two programs is what replay's torn-write
		// detection exists for.
		status = e.program(e.emptySlot+2, word)
		if status != feedriver.Complete {
			return flashFailure(status)
		}
		e.emptySlot += entrySize
	}
	return logAppended()
}

// program brackets a single flash program with the unlock/lock the
// driver requires, on every exit path.
func (e *Engine) program(addr uint32, value uint16) feedriver.Status {
	if err := e.driver.Unlock(); err != nil {
		return feedriver.ErrProtected
	}
	defer e.driver.Lock()

	return e.driver.ProgramHalfWord(addr, value)
}

// combine picks the more informative of two results from a split
// write, preferring failures and higher-cost outcomes over Ok so a
// caller inspecting a single Result still learns about a compaction or
// failure that happened partway through a split operation.
func combine(a, b Result) Result {
	rank := func(r Result) int {
		switch r.Kind {
		case BadAddress:
			return 5
		case FlashFailure:
			return 4
		case Compacted:
			return 3
		case LogAppended:
			return 2
		case SnapshotWritten:
			return 1
		default:
			return 0
		}
	}
	if rank(b) >= rank(a) {
		return b
	}
	return a
}
