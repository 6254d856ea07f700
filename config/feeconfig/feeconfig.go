/*
 * feeprom - Flash geometry configuration
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

// Package feeconfig loads the flash geometry an Engine is built from,
// either from a flat key/value file or from environment overrides. The
// file grammar is a single reduction of the source's model/option
// config language down to what a flash image actually needs: no
// devices, no options lists, just "key value" pairs.
package feeconfig

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xyproto/env/v2"
)

// Geometry is the runtime-checked equivalent of the source's
// compile-time PAGE_SIZE / PAGE_COUNT / DENSITY / WRITE_LOG_SIZE
// constants.
type Geometry struct {
	PageSize      uint32
	PageCount     uint32
	BaseAddress   uint32
	DensityBytes  uint32
	WriteLogBytes uint32
}

/* Configuration file format:
 *
 * '#' starts a comment, rest of line ignored.
 * <line> := <key> <whitespace> <value>
 * <key>  := 'page_size' | 'page_count' | 'base_address' |
 *           'density_bytes' | 'write_log_bytes'
 * <value> := decimal or 0x-prefixed hexadecimal integer
 */

// LoadFile reads a flat key/value geometry file. Unknown keys are
// rejected rather than silently ignored, so a typo in a config file
// surfaces immediately instead of falling back to a zero-value field.
func LoadFile(path string) (Geometry, error) {
	file, err := os.Open(path)
	if err != nil {
		return Geometry{}, err
	}
	defer file.Close()

	var geo Geometry
	reader := bufio.NewReader(file)
	lineNumber := 0

	for {
		line, err := reader.ReadString('\n')
		lineNumber++
		if len(line) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Geometry{}, err
		}

		if perr := parseLine(&geo, line, lineNumber); perr != nil {
			return Geometry{}, perr
		}

		if err != nil && errors.Is(err, io.EOF) {
			break
		}
	}
	return geo, nil
}

func parseLine(geo *Geometry, line string, lineNumber int) error {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	if len(fields) != 2 {
		return fmt.Errorf("feeconfig: line %d: expected \"key value\", got %q", lineNumber, line)
	}

	key, raw := strings.ToLower(fields[0]), fields[1]
	value, err := strconv.ParseUint(raw, 0, 32)
	if err != nil {
		return fmt.Errorf("feeconfig: line %d: bad value %q for %s: %w", lineNumber, raw, key, err)
	}

	switch key {
	case "page_size":
		geo.PageSize = uint32(value)
	case "page_count":
		geo.PageCount = uint32(value)
	case "base_address":
		geo.BaseAddress = uint32(value)
	case "density_bytes":
		geo.DensityBytes = uint32(value)
	case "write_log_bytes":
		geo.WriteLogBytes = uint32(value)
	default:
		return fmt.Errorf("feeconfig: line %d: unknown key %q", lineNumber, key)
	}
	return nil
}

// ApplyEnv overlays FEE_PAGE_SIZE, FEE_PAGE_COUNT, FEE_BASE_ADDRESS,
// FEE_DENSITY_BYTES and FEE_WRITE_LOG_BYTES onto geo, for deployments
// that tune geometry per-container rather than per config file.
func ApplyEnv(geo *Geometry) {
	geo.PageSize = uint32(env.Int("FEE_PAGE_SIZE", int(geo.PageSize)))
	geo.PageCount = uint32(env.Int("FEE_PAGE_COUNT", int(geo.PageCount)))
	geo.BaseAddress = uint32(env.Int("FEE_BASE_ADDRESS", int(geo.BaseAddress)))
	geo.DensityBytes = uint32(env.Int("FEE_DENSITY_BYTES", int(geo.DensityBytes)))
	geo.WriteLogBytes = uint32(env.Int("FEE_WRITE_LOG_BYTES", int(geo.WriteLogBytes)))
}

// Validate checks the geometry is internally consistent before it is
// handed to feeprom.New, so a bad config file fails at load time with
// a clear message instead of surfacing as an obscure Engine error.
func (geo Geometry) Validate() error {
	if geo.PageSize == 0 {
		return errors.New("feeconfig: page_size must be non-zero")
	}
	if geo.PageCount == 0 {
		return errors.New("feeconfig: page_count must be non-zero")
	}
	if geo.DensityBytes == 0 || geo.DensityBytes%2 != 0 {
		return errors.New("feeconfig: density_bytes must be even and non-zero")
	}
	flashSize := geo.PageSize * geo.PageCount
	if uint64(geo.DensityBytes)+uint64(geo.WriteLogBytes) > uint64(flashSize) {
		return fmt.Errorf("feeconfig: density_bytes+write_log_bytes (%d) exceeds flash size (%d)",
			geo.DensityBytes+geo.WriteLogBytes, flashSize)
	}
	return nil
}
