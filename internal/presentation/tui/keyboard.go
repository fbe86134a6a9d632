package tui

import (
	"context"
	"errors"
	"io"
	"os"

	"golang.org/x/term"
)

// Action is a navigation request decoded from a key press.
type Action int

const (
	ActionNone Action = iota
	ActionNext
	ActionPrevious
	ActionBack
	ActionFirst
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionNext:
		return "next"
	case ActionPrevious:
		return "previous"
	case ActionBack:
		return "back"
	case ActionFirst:
		return "first"
	case ActionQuit:
		return "quit"
	}
	return "none"
}

var escapes = map[string]Action{
	"\x1b[C":  ActionNext,
	"\x1bOC":  ActionNext,
	"\x1b[D":  ActionPrevious,
	"\x1bOD":  ActionPrevious,
	"\x1b[H":  ActionFirst,
	"\x1bOH":  ActionFirst,
	"\x1b[1~": ActionFirst,
	"\x1b[7~": ActionFirst,
}

// ParseKeys decodes the actions in a chunk read from a raw terminal.
// Unknown bytes and escape sequences are skipped.
func ParseKeys(buf []byte) []Action {
	var actions []Action
	for i := 0; i < len(buf); {
		if buf[i] == 0x1b {
			n, action := parseEscape(buf[i:])
			if action != ActionNone {
				actions = append(actions, action)
			}
			i += n
			continue
		}
		switch buf[i] {
		case ' ', 'n', 'l':
			actions = append(actions, ActionNext)
		case 'p', 'h':
			actions = append(actions, ActionPrevious)
		case 'b', 0x7f, 0x08:
			actions = append(actions, ActionBack)
		case 'g':
			actions = append(actions, ActionFirst)
		case 'q', 0x03:
			actions = append(actions, ActionQuit)
		}
		i++
	}
	return actions
}

// parseEscape reports the length of the sequence at the head of buf.
func parseEscape(buf []byte) (int, Action) {
	for seq, action := range escapes {
		if len(buf) >= len(seq) && string(buf[:len(seq)]) == seq {
			return len(seq), action
		}
	}
	if len(buf) >= 3 && (buf[1] == '[' || buf[1] == 'O') {
		return 3, ActionNone
	}
	return 1, ActionNone
}

// Keyboard reads navigation actions from a terminal.
type Keyboard struct {
	in      io.Reader
	raw     bool
	restore func() error
}

// NewKeyboard puts f into raw mode when it is a terminal. Close restores it.
func NewKeyboard(f *os.File) (*Keyboard, error) {
	k := &Keyboard{in: f, restore: func() error { return nil }}
	fd := int(f.Fd())
	if term.IsTerminal(fd) {
		old, err := term.MakeRaw(fd)
		if err != nil {
			return nil, err
		}
		k.raw = true
		k.restore = func() error { return term.Restore(fd, old) }
	}
	return k, nil
}

// NewKeyboardReader reads keys from r as-is.
func NewKeyboardReader(r io.Reader) *Keyboard {
	return &Keyboard{in: r, restore: func() error { return nil }}
}

// Raw reports whether the keyboard switched the terminal into raw mode.
func (k *Keyboard) Raw() bool {
	return k.raw
}

// Listen streams actions until ctx is done or the input ends.
// The returned channel is closed afterwards. EOF is reported as ActionQuit.
func (k *Keyboard) Listen(ctx context.Context) <-chan Action {
	out := make(chan Action)
	go func() {
		defer close(out)
		buf := make([]byte, 64)
		for {
			n, err := k.in.Read(buf)
			for _, action := range ParseKeys(buf[:n]) {
				select {
				case out <- action:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					select {
					case out <- ActionQuit:
					case <-ctx.Done():
					}
				}
				return
			}
		}
	}()
	return out
}

// Close restores the terminal state.
func (k *Keyboard) Close() error {
	return k.restore()
}
