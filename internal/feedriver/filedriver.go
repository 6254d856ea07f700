/*
 * feeprom - File-backed flash driver
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

//go:build !windows

package feedriver

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// FileDriver mmaps a regular file as the flash window, the way
// firmware maps XIP NOR flash into its address space. Program and
// erase operations mutate the mapping directly; ReadHalf is a plain
// memory load with no syscall.
type FileDriver struct {
	file      *os.File
	data      []byte
	pageSize  uint32
	pageCount uint32
}

// OpenFileDriver opens (creating if absent) a file of pageSize*pageCount
// bytes at path, pre-filling a new file with 0xFF to model an erased
// device, and mmaps it read/write.
func OpenFileDriver(path string, pageSize, pageCount uint32) (*FileDriver, error) {
	size := int64(pageSize) * int64(pageCount)

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("feedriver: open %s: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("feedriver: stat %s: %w", path, err)
	}

	if info.Size() != size {
		if err := file.Truncate(size); err != nil {
			file.Close()
			return nil, fmt.Errorf("feedriver: truncate %s: %w", path, err)
		}
		if info.Size() == 0 {
			if err := fillErased(file, size); err != nil {
				file.Close()
				return nil, err
			}
		}
	}

	data, err := unix.Mmap(int(file.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("feedriver: mmap %s: %w", path, err)
	}

	return &FileDriver{file: file, data: data, pageSize: pageSize, pageCount: pageCount}, nil
}

func fillErased(file *os.File, size int64) error {
	buf := make([]byte, 64*1024)
	for i := range buf {
		buf[i] = 0xFF
	}
	var written int64
	for written < size {
		n := int64(len(buf))
		if remain := size - written; remain < n {
			n = remain
		}
		if _, err := file.WriteAt(buf[:n], written); err != nil {
			return fmt.Errorf("feedriver: pre-fill: %w", err)
		}
		written += n
	}
	return file.Sync()
}

func (d *FileDriver) Unlock() error { return nil }
func (d *FileDriver) Lock() error   { return unix.Msync(d.data, unix.MS_SYNC) }

func (d *FileDriver) PageSize() uint32  { return d.pageSize }
func (d *FileDriver) PageCount() uint32 { return d.pageCount }

func (d *FileDriver) ErasePage(addr uint32) error {
	base := (addr / d.pageSize) * d.pageSize
	page := d.data[base : base+d.pageSize]
	for i := range page {
		page[i] = 0xFF
	}
	return nil
}

func (d *FileDriver) ProgramHalfWord(addr uint32, value uint16) Status {
	d.data[addr] &= byte(value)
	d.data[addr+1] &= byte(value >> 8)
	return Complete
}

func (d *FileDriver) ReadHalf(addr uint32) uint16 {
	return uint16(d.data[addr]) | uint16(d.data[addr+1])<<8
}

// Close unmaps the flash window and closes the backing file.
func (d *FileDriver) Close() error {
	if err := unix.Munmap(d.data); err != nil {
		d.file.Close()
		return fmt.Errorf("feedriver: munmap: %w", err)
	}
	return d.file.Close()
}
