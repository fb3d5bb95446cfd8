// Package levels provides the solo level library: loading, saving and
// naming of level files.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-maze/internal/games/maze/core"
	"github.com/vovakirdan/tui-maze/internal/games/maze/levels/formats"
)

//go:embed builtin/*.txt
var builtinFS embed.FS

// ErrNotFound is returned when no level has the requested name.
var ErrNotFound = errors.New("level not found")

// Level is a named, pristine level definition.
type Level struct {
	Name        string
	Description string
	Author      string
	FilePath    string // Empty for built-in levels
	Map         *core.Level
}

// Builtin reports whether the level ships with the binary.
func (l Level) Builtin() bool {
	return l.FilePath == ""
}

// Fresh returns a playable copy; the stored map is never mutated.
func (l Level) Fresh() *core.Level {
	return l.Map.Clone()
}

// Loader handles loading levels from a directory plus the built-in set.
type Loader struct {
	Root      string
	NoBuiltin bool
	Logger    *log.Logger
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

func (l *Loader) logger() *log.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return log.Default()
}

// LoadAll loads the built-in levels and every level file under Root.
// Files that fail to parse are skipped. A level on disk replaces a built-in
// one with the same name. The result is sorted by name.
func (l *Loader) LoadAll() ([]Level, error) {
	byName := make(map[string]Level)

	if !l.NoBuiltin {
		builtin, err := loadBuiltin()
		if err != nil {
			return nil, err
		}
		for _, lvl := range builtin {
			byName[lvl.Name] = lvl
		}
	}

	if l.Root != "" {
		if _, err := os.Stat(l.Root); err == nil {
			err := filepath.WalkDir(l.Root, func(p string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(p))) {
					return nil
				}

				lvl, err := l.LoadFile(p)
				if err != nil {
					l.logger().Debug("skipping level file", "path", p, "error", err)
					return nil
				}
				byName[lvl.Name] = lvl
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("levels: %w", err)
		}
	}

	out := make([]Level, 0, len(byName))
	for _, lvl := range byName {
		out = append(out, lvl)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// LoadFile loads a single level file. The level name defaults to the file
// name without extension.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading file %s: %w", p, err)
	}

	ext := strings.ToLower(filepath.Ext(p))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing file %s: %w", p, err)
	}

	return fromParsed(parsed, strings.TrimSuffix(filepath.Base(p), filepath.Ext(p)), p), nil
}

// LoadByName loads a specific level by name.
func (l *Loader) LoadByName(name string) (Level, error) {
	all, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range all {
		if lvl.Name == name {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("levels: %w: %s", ErrNotFound, name)
}

// Names returns all level names in sorted order.
func (l *Loader) Names() ([]string, error) {
	all, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(all))
	for i, lvl := range all {
		names[i] = lvl.Name
	}
	return names, nil
}

func loadBuiltin() ([]Level, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("levels: reading built-in levels: %w", err)
	}
	var out []Level
	for _, e := range entries {
		data, err := builtinFS.ReadFile(path.Join("builtin", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("levels: reading built-in %s: %w", e.Name(), err)
		}
		parsed, err := formats.ParseText(data)
		if err != nil {
			return nil, fmt.Errorf("levels: built-in %s: %w", e.Name(), err)
		}
		out = append(out, fromParsed(parsed, strings.TrimSuffix(e.Name(), path.Ext(e.Name())), ""))
	}
	return out, nil
}

func fromParsed(parsed formats.Level, fallbackName, filePath string) Level {
	name := parsed.Name
	if name == "" {
		name = fallbackName
	}
	return Level{
		Name:        name,
		Description: parsed.Description,
		Author:      parsed.Author,
		FilePath:    filePath,
		Map:         parsed.Map,
	}
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".txt":
		return formats.ParseText(data)
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
