package buffer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// expandHome replaces a leading "~" with the user's home directory.
func expandHome(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// OpenFile loads path into the buffer, replacing its current contents. A
// missing file initializes an empty single-line buffer and remembers the
// path rather than failing; any other read error is returned unchanged.
// Text is normalized to NFC so combining-mark sequences compare consistently
// under search, then split on '\n' with no terminator retained. The cursor,
// undo stack, and mark are reset, and the visual-metrics cache is marked
// dirty.
func (b *TextBuffer) OpenFile(path string) error {
	resolved := expandHome(path)

	raw, err := os.ReadFile(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			b.Lines = []*Line{NewLine("")}
			b.FilePath = resolved
			b.hasPath = true
			b.resetAfterLoad()
			return nil
		}
		return fmt.Errorf("open %s: %w", resolved, err)
	}

	text := norm.NFC.String(string(raw))
	parts := strings.Split(text, "\n")
	lines := make([]*Line, len(parts))
	for i, p := range parts {
		lines[i] = NewLine(p)
	}
	b.Lines = lines
	b.FilePath = resolved
	b.hasPath = true
	b.resetAfterLoad()
	return nil
}

func (b *TextBuffer) resetAfterLoad() {
	b.CursorX, b.CursorY = 0, 0
	b.mark = nil
	b.undoStack = nil
	b.modified = false
	b.Visual.Dirty = true
}

// Save writes the buffer to its associated file path, returning
// ErrNoFilePath if none is set. See SaveAs for the on-disk format.
func (b *TextBuffer) Save() error {
	if !b.hasPath {
		return ErrNoFilePath
	}
	return b.SaveAs(b.FilePath)
}

// SaveAs writes the buffer's lines joined by '\n' (no trailing newline) to
// path, creating its parent directory if necessary, and remembers path as
// the buffer's file path. An empty path is rejected with ErrEmptySavePath.
func (b *TextBuffer) SaveAs(path string) error {
	if path == "" {
		return ErrEmptySavePath
	}
	resolved := expandHome(path)

	if dir := filepath.Dir(resolved); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", resolved, err)
		}
	}

	tmp := resolved + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.Text()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", resolved, err)
	}
	if err := os.Rename(tmp, resolved); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename into place %s: %w", resolved, err)
	}

	b.FilePath = resolved
	b.hasPath = true
	b.modified = false
	return nil
}
