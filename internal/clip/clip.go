// Package clip moves shapes through the system clipboard.
package clip

import (
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"

	"shelfmap/internal/layout"
	"shelfmap/internal/shape"
)

// header marks clipboard text written by Encode.
const header = "shelfmap/shapes v1\n"

// ErrNotShapes is returned by Decode when the text did not come from Encode.
var ErrNotShapes = errors.New("clipboard does not hold shapes")

// Encode serializes shapes for the clipboard.
func Encode(shapes []shape.Shape) (string, error) {
	data, err := json.Marshal(layout.Layout{Shapes: shapes})
	if err != nil {
		return "", err
	}
	return header + string(data), nil
}

// Decode parses text written by Encode. Shapes are validated the same way a
// saved layout is.
func Decode(text string) ([]shape.Shape, error) {
	text = strings.TrimLeft(text, " \r\n\t")
	body, ok := strings.CutPrefix(text, header)
	if !ok {
		body, ok = strings.CutPrefix(text, strings.TrimSuffix(header, "\n")+"\r\n")
	}
	if !ok {
		return nil, ErrNotShapes
	}
	l, err := layout.Unmarshal([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("clipboard: %w", err)
	}
	return l.Shapes, nil
}

// Copy places shapes on the system clipboard.
func Copy(shapes []shape.Shape) error {
	text, err := Encode(shapes)
	if err != nil {
		return err
	}
	return clipboard.WriteAll(text)
}

// Paste reads the system clipboard. Text that is not an encoded selection
// comes back as a single text shape, so labels can be pasted from other
// programs.
func Paste() ([]shape.Shape, error) {
	raw, err := readText()
	if err != nil {
		return nil, err
	}
	shapes, err := Decode(raw)
	if !errors.Is(err, ErrNotShapes) {
		return shapes, err
	}
	text := strings.TrimSpace(cleanText(raw))
	if text == "" {
		return nil, nil
	}
	s, err := shape.New(shape.KindText, shape.Shape{Text: &shape.Text{Content: text}})
	if err != nil {
		return nil, err
	}
	return []shape.Shape{s}, nil
}

func readText() (string, error) {
	if runtime.GOOS == "darwin" {
		if out, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(out), nil
		}
	}
	return clipboard.ReadAll()
}
