// Package rotation writes interpreter logs to a size-capped file
// and keeps a fixed number of older generations beside it.
package rotation

import (
	"bytes"
	"io"
	"os"
	"strconv"
	"sync"
)

// A File is a log file with numbered generations: base.1 is
// the most recent full file, base.n the oldest kept one.
// Only whole lines reach the disk; a trailing partial line waits
// in memory for its newline.
//
// Errors while renaming generations are ignored.
// Errors opening or writing the base file are returned from Write.
type File struct {
	mu    sync.Mutex
	base  string
	limit int64
	keep  int
	tail  []byte
	f     *os.File
	wrote int64
}

// Create returns a File appending to name. Once name holds limit
// bytes it becomes name.1 and a fresh name is started. At most keep
// generations are kept; keep below 1 counts as 1.
func Create(name string, limit, keep int) *File {
	if keep < 1 {
		keep = 1
	}
	return &File{base: name, limit: int64(limit), keep: keep}
}

var dropped = []byte("\nlog write error; some lines dropped\n")

// Write implements io.Writer.
func (f *File) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.tail = append(f.tail, p...)
	i := bytes.LastIndexByte(f.tail, '\n')
	if i < 0 {
		return len(p), nil
	}
	_, err := f.flush(f.tail[:i+1])
	// Drop the lines on failure so a missing directory
	// cannot grow the buffer without bound.
	f.tail = append([]byte(nil), f.tail[i+1:]...)
	if err != nil {
		f.tail = append(append([]byte(nil), dropped...), f.tail...)
	}
	return len(p), err
}

// Close writes any buffered partial line and closes the base file.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.tail) > 0 {
		f.flush(append(f.tail, '\n'))
		f.tail = nil
	}
	if f.f == nil {
		return nil
	}
	err := f.f.Close()
	f.f = nil
	return err
}

func (f *File) flush(p []byte) (int, error) {
	if f.f != nil && f.wrote+int64(len(p)) > f.limit {
		f.f.Close()
		f.f = nil
		f.shift()
	}
	if f.f == nil {
		file, err := os.OpenFile(f.base, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644) // #nosec
		if err != nil {
			return 0, err
		}
		size, err := file.Seek(0, io.SeekEnd)
		if err != nil {
			file.Close()
			return 0, err
		}
		f.f, f.wrote = file, size
		if size > 0 && size+int64(len(p)) > f.limit {
			f.f.Close()
			f.f = nil
			f.shift()
			return f.flush(p)
		}
	}
	n, err := f.f.Write(p)
	f.wrote += int64(n)
	return n, err
}

func (f *File) shift() {
	for i := f.keep - 1; i > 0; i-- {
		os.Rename(f.name(i), f.name(i+1))
	}
	os.Rename(f.base, f.name(1))
}

func (f *File) name(i int) string {
	return f.base + "." + strconv.Itoa(i)
}
