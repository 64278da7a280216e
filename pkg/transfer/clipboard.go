package transfer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnavailable is returned when no system clipboard tool exists.
var ErrClipboardUnavailable = errors.New("transfer: clipboard unavailable")

// Clipboard carries export text to and from the user.
type Clipboard interface {
	WriteText(text string) error
	ReadText() (string, error)
}

// SystemClipboard is the desktop clipboard (pbcopy, xclip, wl-copy, ...).
type SystemClipboard struct{}

func (SystemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("transfer: write clipboard: %w", err)
	}
	return nil
}

func (SystemClipboard) ReadText() (string, error) {
	if clipboard.Unsupported {
		return "", ErrClipboardUnavailable
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("transfer: read clipboard: %w", err)
	}
	return text, nil
}

// FileClipboard uses a file instead of the desktop clipboard. Path "-" reads
// In and writes Out.
type FileClipboard struct {
	Path string
	In   io.Reader
	Out  io.Writer
}

// NewFileClipboard returns a FileClipboard on path wired to the process stdio.
func NewFileClipboard(path string) FileClipboard {
	return FileClipboard{Path: path, In: os.Stdin, Out: os.Stdout}
}

func (f FileClipboard) stdio() bool {
	return f.Path == "" || f.Path == "-"
}

func (f FileClipboard) WriteText(text string) error {
	if f.stdio() {
		_, err := io.WriteString(f.Out, text)
		return err
	}
	if err := os.WriteFile(f.Path, []byte(text), 0o600); err != nil {
		return fmt.Errorf("transfer: write %s: %w", f.Path, err)
	}
	return nil
}

func (f FileClipboard) ReadText() (string, error) {
	if f.stdio() {
		var b strings.Builder
		if _, err := io.Copy(&b, f.In); err != nil {
			return "", fmt.Errorf("transfer: read stdin: %w", err)
		}
		return b.String(), nil
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("transfer: read %s: %w", f.Path, err)
	}
	return string(b), nil
}
