/*
 * feeprom - Watchdog collaborator
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

// Package watchdog names the hardware supervisor poke that long replay
// and compaction loops must call periodically so the host is not reset
// mid-operation. It is the only suspension-like side call the engine
// makes; there is no async scheduler behind it.
package watchdog

import "log/slog"

// Watchdog is kicked from inside long-running loops.
type Watchdog interface {
	Kick()
}

// Noop never touches real hardware; used in tests and the in-memory
// driver path where there is no supervisor to feed.
type Noop struct{}

func (Noop) Kick() {}

// Logging counts kicks and logs every Every-th one at Debug level,
// useful when diagnosing a replay or compaction that runs long enough
// to need more than one kick. It does not drive any hardware watchdog.
type Logging struct {
	Every int // log every Nth kick, 0 disables logging entirely.
	n     int
}

func (l *Logging) Kick() {
	l.n++
	if l.Every > 0 && l.n%l.Every == 0 {
		slog.Debug("watchdog kick", "count", l.n)
	}
}
