// This file is part of GopherAdvance.
//
// GopherAdvance is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherAdvance is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherAdvance.  If not, see <https://www.gnu.org/licenses/>.

// Package terminal is a wrapper for "github.com/pkg/term/termios". It puts the
// controlling terminal into cbreak mode so that the trace mode can read single
// key presses without waiting for a newline.
package terminal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// List of ASCII codes for keys that have meaning to the trace mode.
const (
	KeyCtrlC          = 3
	KeyCtrlD          = 4
	KeyCarriageReturn = 13
	KeyNewline        = 10
	KeyEsc            = 27
)

// Terminal is the controlling terminal. The zero value is not usable. Use
// NewTerminal() instead.
type Terminal struct {
	input  *os.File
	output io.Writer

	// false if the input is not a terminal. cbreak mode is not available in
	// that case and key presses are read as they arrive on the input
	interactive bool

	canAttr    unix.Termios
	cbreakAttr unix.Termios

	mu sync.Mutex
}

// NewTerminal is the preferred method of initialisation for the Terminal type.
func NewTerminal(input *os.File, output io.Writer) (*Terminal, error) {
	if input == nil {
		return nil, fmt.Errorf("terminal: an input file is required")
	}
	if output == nil {
		return nil, fmt.Errorf("terminal: an output writer is required")
	}

	t := &Terminal{
		input:       input,
		output:      output,
		interactive: term.IsTerminal(int(input.Fd())),
	}

	if t.interactive {
		if err := termios.Tcgetattr(t.input.Fd(), &t.canAttr); err != nil {
			return nil, fmt.Errorf("terminal: %w", err)
		}
		t.cbreakAttr = t.canAttr
		termios.Cfmakecbreak(&t.cbreakAttr)
	}

	return t, nil
}

// Interactive returns true if the input is a real terminal.
func (t *Terminal) Interactive() bool {
	return t.interactive
}

// CBreakMode puts the terminal into cbreak mode.
func (t *Terminal) CBreakMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.interactive {
		return nil
	}
	return termios.Tcsetattr(t.input.Fd(), termios.TCSANOW, &t.cbreakAttr)
}

// CanonicalMode returns the terminal to the mode it was in when NewTerminal()
// was called.
func (t *Terminal) CanonicalMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.interactive {
		return nil
	}
	return termios.Tcsetattr(t.input.Fd(), termios.TCSANOW, &t.canAttr)
}

// Print writes the formatted string to the output.
func (t *Terminal) Print(s string, a ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.output, s, a...)
}

// ReadKey waits for a single key press. Returns io.EOF if the input has closed
// or if the user has pressed ctrl-d.
func (t *Terminal) ReadKey() (byte, error) {
	var b [1]byte
	n, err := t.input.Read(b[:])
	if err != nil {
		return 0, err
	}
	if n == 0 || b[0] == KeyCtrlD {
		return 0, io.EOF
	}
	return b[0], nil
}
