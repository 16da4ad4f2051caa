// Package host defines the I/O boundary the interpreter calls out
// through: output, input, and fatal error reporting. Both concrete
// implementations live here: Terminal for the CLI and Recording for
// tests.
package host

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/brewin-lang/brewin/internal/errors"
)

// Host is the collaborator the interpreter uses for every observable
// effect: output(string), get_input(), error(kind, message).
type Host interface {
	Output(line string)
	GetInput() string
	Error(err *errors.HostError)
}

// Terminal is the default Host: writes to stdout, reads from stdin,
// and terminates the process on a host error.
type Terminal struct {
	out    io.Writer
	in     *bufio.Reader
	onExit func(code int)
}

// NewTerminal creates a Host wired to the given writer/reader pair
// (typically os.Stdout/os.Stdin).
func NewTerminal(out io.Writer, in io.Reader) *Terminal {
	return &Terminal{out: out, in: bufio.NewReader(in), onExit: os.Exit}
}

func (t *Terminal) Output(line string) {
	fmt.Fprintln(t.out, line)
}

func (t *Terminal) GetInput() string {
	line, _ := t.in.ReadString('\n')
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}

func (t *Terminal) Error(err *errors.HostError) {
	fmt.Fprintln(os.Stderr, err.Format())
	t.onExit(1)
}

// Recording is an in-memory Host for tests: it captures emitted lines
// and the first fatal error instead of exiting the process.
type Recording struct {
	Lines   []string
	Inputs  []string
	inputAt int
	Fatal   *errors.HostError
}

// NewRecording creates a Recording host that will feed the given lines
// back in order to successive GetInput calls.
func NewRecording(inputs ...string) *Recording {
	return &Recording{Inputs: inputs}
}

func (r *Recording) Output(line string) {
	r.Lines = append(r.Lines, line)
}

func (r *Recording) GetInput() string {
	if r.inputAt >= len(r.Inputs) {
		return ""
	}
	v := r.Inputs[r.inputAt]
	r.inputAt++
	return v
}

func (r *Recording) Error(err *errors.HostError) {
	if r.Fatal == nil {
		r.Fatal = err
	}
}
