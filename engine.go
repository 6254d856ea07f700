/*
 * feeprom - Persistence engine
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

// Package feeprom emulates an erasable, word-programmable EEPROM on
// top of a block-erasable NOR flash region. Mutations are encoded
// compactly into an append-only write log so flash endurance is
// extended across many small updates; the logical image is
// reconstructed on boot by replaying that log, and the log is folded
// back into a dense snapshot by compaction when it fills.
package feeprom

import (
	"fmt"
	"sync/atomic"

	"github.com/rcornwell/feeprom/internal/feedriver"
	"github.com/rcornwell/feeprom/internal/feeimage"
	"github.com/rcornwell/feeprom/internal/watchdog"
)

// watchdogKickInterval bounds how many half-words the snapshot-load and
// compaction loops, and how many log entries the replay loop, process
// between watchdog kicks.
const watchdogKickInterval = 256

// Engine owns one logical EEPROM store: its RAM image, its position in
// the backing flash region, and the driver/watchdog collaborators it
// drives. Unlike the teacher's module-level singleton state, Engine is
// an explicit instance so a process can run more than one store (or,
// more commonly, so tests can run many stores in parallel without
// fighting over global state); Init and Default in default.go front a
// single package-level instance for callers that want the old
// singleton-style surface.
type Engine struct {
	driver feedriver.Driver
	wd     watchdog.Watchdog
	image  *feeimage.Image

	baseAddr  uint32 // PageBaseAddress, offset 0 in driver terms.
	density   uint32 // DensityBytes.
	logBase   uint32 // density + 4: first log slot, right after magic.
	logEnd    uint32 // density + WriteLogBytes: one past the last log byte.
	emptySlot uint32 // next free log slot; always even, >= logBase.

	busy atomic.Bool // re-entrancy guard for every public write, Compact and Erase; reads do not take it.
}

// Config is the geometry and collaborators an Engine is built from.
type Config struct {
	Driver        feedriver.Driver
	Watchdog      watchdog.Watchdog // nil defaults to watchdog.Noop{}
	BaseAddress   uint32            // PageBaseAddress, informational only; the Driver's own addressing is already region-relative.
	DensityBytes  uint32            // logical store size; even, <= 16384.
	WriteLogBytes uint32            // log region size; even.
}

// New validates cfg, loads the snapshot into a fresh RAM image, and
// replays the write log, returning the ready-to-use Engine. This is
// the Go-native form of the source's init(): it always returns a usable
// Engine, loading whatever persistent state is valid, and reinitializes
// the persistent region from scratch if the log's magic does not match.
func New(cfg Config) (*Engine, error) {
	if cfg.Driver == nil {
		return nil, fmt.Errorf("feeprom: Config.Driver is required")
	}
	if cfg.DensityBytes == 0 || cfg.DensityBytes%2 != 0 {
		return nil, fmt.Errorf("feeprom: DensityBytes must be even and non-zero, got %d", cfg.DensityBytes)
	}
	if cfg.DensityBytes > 16384 {
		return nil, fmt.Errorf("feeprom: DensityBytes must be <= 16384, got %d", cfg.DensityBytes)
	}
	if cfg.WriteLogBytes%2 != 0 {
		return nil, fmt.Errorf("feeprom: WriteLogBytes must be even, got %d", cfg.WriteLogBytes)
	}
	flashSize := cfg.Driver.PageSize() * cfg.Driver.PageCount()
	if uint64(cfg.DensityBytes)+uint64(cfg.WriteLogBytes) > uint64(flashSize) {
		return nil, fmt.Errorf("feeprom: density+log (%d) exceeds flash size (%d)",
			cfg.DensityBytes+cfg.WriteLogBytes, flashSize)
	}

	wd := cfg.Watchdog
	if wd == nil {
		wd = watchdog.Noop{}
	}

	e := &Engine{
		driver:   cfg.Driver,
		wd:       wd,
		image:    feeimage.New(cfg.DensityBytes),
		baseAddr: cfg.BaseAddress,
		density:  cfg.DensityBytes,
		logBase:  cfg.DensityBytes + 4,
		logEnd:   cfg.DensityBytes + cfg.WriteLogBytes,
	}

	e.init()
	return e, nil
}

// Density returns the logical store size in bytes.
func (e *Engine) Density() uint32 { return e.density }

// BaseAddress returns the configured PageBaseAddress (informational).
func (e *Engine) BaseAddress() uint32 { return e.baseAddr }

// EmptySlot returns the current write-log offset that the next log
// append would land at, relative to the start of the persistent region.
func (e *Engine) EmptySlot() uint32 { return e.emptySlot }

// LogCapacity returns how many bytes remain in the write log before the
// next append would trigger compaction.
func (e *Engine) LogCapacity() uint32 { return e.logEnd - e.emptySlot }

// enter acquires the re-entrancy guard. Every exported Engine method
// that touches flash must call this first and defer e.leave(); it is
// the Go realization of "callers must not re-enter while a write is in
// progress" from the concurrency model, turned from a documentation
// comment into an enforced precondition.
func (e *Engine) enter() {
	if !e.busy.CompareAndSwap(false, true) {
		panic("feeprom: re-entrant call into Engine while a prior operation is in progress")
	}
}

func (e *Engine) leave() {
	e.busy.Store(false)
}
