/*
 * feeprom - Write result codes
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
	"fmt"

	"github.com/rcornwell/feeprom/internal/feedriver"
)

// Kind classifies the outcome of a write, replacing the source's mix
// of "0 means not attempted", FLASH_COMPLETE, and bare error codes
// with a single tagged result.
type Kind int

const (
	// Ok means the RAM image already held this value; nothing was
	// persisted because nothing needed to change.
	Ok Kind = iota
	// SnapshotWritten means the value was programmed directly into the
	// snapshot region; the cheapest path, no log space consumed.
	SnapshotWritten
	// LogAppended means a log entry (one or two words) was appended.
	LogAppended
	// Compacted means the log was full and a compaction ran; the new
	// value is reflected in the freshly rebuilt snapshot.
	Compacted
	// BadAddress means the caller passed an address outside [0, density).
	BadAddress
	// FlashFailure means the driver returned a status other than
	// Complete for a program attempt of this write; Status holds the
	// first such status.
	FlashFailure
)

func (k Kind) String() string {
	switch k {
	case Ok:
		return "ok"
	case SnapshotWritten:
		return "snapshot-written"
	case LogAppended:
		return "log-appended"
	case Compacted:
		return "compacted"
	case BadAddress:
		return "bad-address"
	case FlashFailure:
		return "flash-failure"
	default:
		return "unknown"
	}
}

// Result is returned by every write operation.
type Result struct {
	Kind   Kind
	Status feedriver.Status // meaningful only when Kind == FlashFailure
}

// OK reports whether the write succeeded (including the no-op case
// where the RAM image already matched the requested value).
func (r Result) OK() bool {
	return r.Kind != BadAddress && r.Kind != FlashFailure
}

func (r Result) Error() string {
	if r.Kind == FlashFailure {
		return fmt.Sprintf("flash program failed: %s", r.Status)
	}
	return r.Kind.String()
}

func ok() Result                    { return Result{Kind: Ok} }
func snapshotWritten() Result        { return Result{Kind: SnapshotWritten} }
func logAppended() Result            { return Result{Kind: LogAppended} }
func compacted() Result               { return Result{Kind: Compacted} }
func badAddress() Result              { return Result{Kind: BadAddress} }
func flashFailure(s feedriver.Status) Result { return Result{Kind: FlashFailure, Status: s} }
