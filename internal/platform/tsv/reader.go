// Package tsv reads tab-separated exports row by row.
package tsv

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineSize bounds a single input line.
const maxLineSize = 4 << 20

// Reader yields the rows of a tab-separated file, one row per physical
// line. Rows may have differing field counts; quotes are taken literally
// wherever they appear.
type Reader struct {
	s    *bufio.Scanner
	line int
}

func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), maxLineSize)
	return &Reader{s: s}
}

// Next returns the next row, or io.EOF after the last one.
func (r *Reader) Next() ([]string, error) {
	if !r.s.Scan() {
		if err := r.s.Err(); err != nil {
			return nil, fmt.Errorf("read tsv line %d: %w", r.line+1, err)
		}
		return nil, io.EOF
	}
	r.line++
	return strings.Split(strings.TrimSuffix(r.s.Text(), "\r"), "\t"), nil
}

// Line is the 1-based line number of the row last returned by Next.
func (r *Reader) Line() int {
	return r.line
}

// File is a Reader over an opened file.
type File struct {
	*Reader
	f *os.File
}

// Open opens path for reading.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", path, err)
	}
	return &File{Reader: NewReader(f), f: f}, nil
}

func (f *File) Close() error {
	return f.f.Close()
}
