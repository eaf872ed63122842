// Package ioproxy implements the interpreter's pluggable
// stdout/stderr/stdin interface: a default implementation wired to
// process I/O, and an in-memory implementation for embedding and tests.
package ioproxy

import (
	"bufio"
	"io"
	"strings"
)

// IO carries the interpreter's stdout/stderr/stdin traffic; the file
// built-ins (load-file, slurp, spit) use the filesystem directly rather
// than this interface. ReadLine, which backs read-line, is its only
// method that may block.
type IO interface {
	WriteOut(text string)
	WriteErr(text string)
	ReadLine() (string, error)
}

// Stdio wires WriteOut/WriteErr/ReadLine to process stdout/stderr/stdin.
type Stdio struct {
	Out io.Writer
	Err io.Writer
	In  *bufio.Reader
}

// NewStdio constructs a Stdio proxy over the given streams.
func NewStdio(out, errw io.Writer, in io.Reader) *Stdio {
	return &Stdio{Out: out, Err: errw, In: bufio.NewReader(in)}
}

func (s *Stdio) WriteOut(text string) { io.WriteString(s.Out, text) }
func (s *Stdio) WriteErr(text string) { io.WriteString(s.Err, text) }

func (s *Stdio) ReadLine() (string, error) {
	line, err := s.In.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err == io.EOF && line != "" {
		return line, nil
	}
	return line, err
}

// Buffer is an in-memory IO implementation for embedding and testing: it
// captures every WriteOut/WriteErr call and serves ReadLine from a
// pre-seeded list of lines.
type Buffer struct {
	OutBuf strings.Builder
	ErrBuf strings.Builder
	Lines  []string
	cursor int
}

func NewBuffer(lines ...string) *Buffer {
	return &Buffer{Lines: lines}
}

func (b *Buffer) WriteOut(text string) { b.OutBuf.WriteString(text) }
func (b *Buffer) WriteErr(text string) { b.ErrBuf.WriteString(text) }

func (b *Buffer) ReadLine() (string, error) {
	if b.cursor >= len(b.Lines) {
		return "", io.EOF
	}
	line := b.Lines[b.cursor]
	b.cursor++
	return line, nil
}
