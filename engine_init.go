/*
 * feeprom - Boot-time snapshot load and log replay
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
	"log/slog"

	"github.com/rcornwell/feeprom/internal/feecodec"
)

// init loads the snapshot region into the RAM image, then replays the
// write log on top of it. If the log's magic does not match, the
// persistent region is wiped and reinitialized; the RAM image is left
// exactly as the snapshot load produced it (all-zero for a device that
// has never been written).
func (e *Engine) init() {
	e.loadSnapshot()

	if !e.checkMagic() {
		slog.Warn("feeprom: log magic mismatch, clearing persistent store")
		e.clear()
		return
	}

	e.replayLog()
}

// loadSnapshot copies the one's-complement snapshot region into the
// RAM image.
func (e *Engine) loadSnapshot() {
	words := e.image.Words()
	for i := range words {
		addr := uint32(i) * 2
		words[i] = ^e.driver.ReadHalf(addr)
		if i%watchdogKickInterval == 0 {
			e.wd.Kick()
		}
	}
}

func (e *Engine) checkMagic() bool {
	lo := e.driver.ReadHalf(e.density)
	hi := e.driver.ReadHalf(e.density + 2)
	return lo == feecodec.Magic[0] && hi == feecodec.Magic[1]
}

// replayLog advances through the log region one half-word at a time,
// applying every entry up to the first terminator, and records the
// terminator's offset as the new empty slot.
func (e *Engine) replayLog() {
	offset := e.logBase
	count := 0

	for offset < e.logEnd {
		primary := e.driver.ReadHalf(offset)

		if primary == feecodec.Terminator {
			e.emptySlot = offset
			return
		}

		var next uint16
		if isWordNextPrimary(primary) {
			if offset+2 >= e.logEnd {
				break // truncated log, treat as end.
			}
			next = e.driver.ReadHalf(offset + 2)
		}

		entry := feecodec.Decode(primary, next)
		e.applyReplayedEntry(entry)
		offset += uint32(entry.Words) * 2

		count++
		if count%watchdogKickInterval == 0 {
			e.wd.Kick()
		}
	}

	// Ran off the end of the log region without a terminator: treat the
	// end of the region as the empty slot (log is completely full).
	e.emptySlot = e.logEnd
}

// isWordNextPrimary reports whether primary requires reading a second
// log word to decode, without fully decoding it.
func isWordNextPrimary(primary uint16) bool {
	return primary >= 0xE000 && primary <= 0xFFBF
}

func (e *Engine) applyReplayedEntry(entry feecodec.Entry) {
	switch entry.Kind {
	case feecodec.KindByte:
		if entry.Addr < e.density {
			e.image.SetByte(entry.Addr, byte(entry.Value))
		}
	case feecodec.KindWordZero, feecodec.KindWordOne, feecodec.KindWordNext:
		if entry.Addr < e.density {
			e.image.SetHalf(entry.Addr, entry.Value)
		}
	case feecodec.KindTornWordNext, feecodec.KindReserved, feecodec.KindTerminator:
		// Torn writes and reserved encodings are silently dropped;
		// replay continues from the next entry.
	}
}
