package levels

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vovakirdan/tui-maze/internal/games/maze/core"
	"github.com/vovakirdan/tui-maze/internal/games/maze/levels/formats"
)

// ErrExists is returned by Save when the target file is already present.
var ErrExists = errors.New("level already exists")

// GeneratedNameLayout names levels saved from the generator.
const GeneratedNameLayout = "gen_lvl_02_01_2006_15_04_05"

// GeneratedName returns the default file name for a level generated at t.
func GeneratedName(t time.Time) string {
	return t.Format(GeneratedNameLayout)
}

// Save writes lvl to <dir>/<name>.txt in the native text format and returns
// the path. Existing files are kept unless overwrite is set.
func Save(dir, name string, lvl *core.Level, overwrite bool) (string, error) {
	return writeLevel(dir, name, ".txt", []byte(core.Encode(lvl)), overwrite)
}

// SaveYAML writes l to <dir>/<l.Name>.yaml with its metadata.
func SaveYAML(dir string, l formats.Level, overwrite bool) (string, error) {
	data, err := formats.MarshalYAML(l)
	if err != nil {
		return "", fmt.Errorf("levels: cannot encode %q: %w", l.Name, err)
	}
	return writeLevel(dir, l.Name, ".yaml", data, overwrite)
}

func writeLevel(dir, name, ext string, data []byte, overwrite bool) (string, error) {
	name = strings.TrimSuffix(name, ext)
	if name == "" || filepath.Base(name) != name || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("levels: invalid level name %q", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("levels: cannot create directory %s: %w", dir, err)
	}

	p := filepath.Join(dir, name+ext)
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(p, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("levels: %w: %s", ErrExists, p)
		}
		return "", fmt.Errorf("levels: cannot create %s: %w", p, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("levels: cannot write %s: %w", p, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("levels: cannot write %s: %w", p, err)
	}
	return p, nil
}
