package iocli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio реализует IO поверх терминала.
// Если stdin не терминал (ввод из pipe), пароль читается как обычная строка
type Stdio struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
	fd     int
}

// NewStdio создает IO на os.Stdin/os.Stdout/os.Stderr
func NewStdio() IO {
	return NewStreams(os.Stdin, os.Stdout, os.Stderr)
}

// NewStreams создает IO на произвольных потоках
func NewStreams(in *os.File, out, errOut io.Writer) *Stdio {
	return &Stdio{
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
		fd:     int(in.Fd()),
	}
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Errorf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.errOut, format, a...)
}

func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	input, err := s.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

func (s *Stdio) ReadPassword(prompt string) (string, error) {
	if !term.IsTerminal(s.fd) {
		return s.ReadInput(prompt)
	}

	s.Printf("%s", prompt)
	pwBytes, err := term.ReadPassword(s.fd)
	s.Println("")
	if err != nil {
		return "", err
	}
	return string(pwBytes), nil
}
