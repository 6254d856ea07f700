/*
 * feeprom - Compaction and erase
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

// clear erases every page of the persistent region and writes a fresh
// magic at the top of the now-empty log region, resetting emptySlot to
// the first log slot. It does not touch the RAM image: callers that
// need the RAM image to stay authoritative (compact) rely on that;
// Erase clears the RAM image itself afterward.
//
// This is destructive-then-rebuild: a power loss between the page
// erase and the magic write corrupts the persistent image. The RAM
// image is the recovery authority only while power holds; this is an
// accepted endurance/complexity trade-off, not an oversight.
func (e *Engine) clear() {
	flashSize := e.driver.PageSize() * e.driver.PageCount()
	pageSize := e.driver.PageSize()

	if err := e.driver.Unlock(); err != nil {
		slog.Error("feeprom: unlock failed during clear", "error", err)
	}
	for addr := uint32(0); addr < flashSize; addr += pageSize {
		if err := e.driver.ErasePage(addr); err != nil {
			slog.Error("feeprom: erase page failed", "addr", addr, "error", err)
		}
		e.wd.Kick()
	}
	if err := e.driver.Lock(); err != nil {
		slog.Error("feeprom: lock failed during clear", "error", err)
	}

	e.program(e.density, feecodec.Magic[0])
	e.program(e.density+2, feecodec.Magic[1])
	e.emptySlot = e.logBase
}

// compact folds the write log's effect into a freshly rebuilt snapshot,
// emptying the log. It is invoked when an append would overflow the
// log region. Procedure: erase everything, then reprogram only the
// non-zero half-words of the RAM image (zero words need no programming
// because an erased 0xFFFF already decodes to zero).
func (e *Engine) compact() {
	e.clear()

	words := e.image.Words()
	for i, value := range words {
		if i%watchdogKickInterval == 0 {
			e.wd.Kick()
		}
		if value == 0 {
			continue
		}
		addr := uint32(i) * 2
		e.program(addr, ^value)
	}
}

// Compact forces compaction regardless of log fullness. Exposed for
// operators and tests that want to pin post-compaction invariants
// without filling the log first.
func (e *Engine) Compact() {
	e.enter()
	defer e.leave()
	e.compact()
}

// Erase wipes the persistent store and reinitializes it to the empty
// state: every byte reads back as zero afterward, matching a device
// that has never been written.
func (e *Engine) Erase() {
	e.enter()
	defer e.leave()
	e.clear()
	e.image.Clear()
}
