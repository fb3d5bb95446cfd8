package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Encode writes a level in the text format:
//
//	<width>,<height>
//	<height> rows of exactly <width> characters
//
// Output uses LF line endings and ends with a newline.
func Encode(lvl *Level) string {
	var b strings.Builder
	b.Grow(16 + (lvl.width+1)*lvl.height)
	fmt.Fprintf(&b, "%d,%d\n", lvl.width, lvl.height)
	for y := 0; y < lvl.height; y++ {
		for x := 0; x < lvl.width; x++ {
			b.WriteRune(lvl.blocks[y*lvl.width+x].Kind.Rune())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Decode parses the text format. CRLF line endings and a missing final
// newline are accepted. Header numbers must be plain digits without leading
// zeros, so Encode(Decode(text)) == text for any text using LF endings. Generation guarantees are not re-checked:
// any well-formed map with one start and one exit decodes.
func Decode(text string) (*Level, error) {
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	if len(lines) == 0 {
		return nil, malformed(1, "missing header")
	}

	width, height, err := parseHeader(lines[0])
	if err != nil {
		return nil, err
	}

	rows := lines[1:]
	if len(rows) != height {
		return nil, malformed(0, "header declares %d rows, found %d", height, len(rows))
	}

	// At most one kind per byte of input; the header is unchecked here.
	kinds := make([]Kind, 0, len(text))
	starts, exits := 0, 0
	for y, row := range rows {
		line := y + 2
		runes := []rune(row)
		if len(runes) != width {
			return nil, malformed(line, "row has %d characters, want %d", len(runes), width)
		}
		for x, r := range runes {
			k, ok := KindFromRune(r)
			if !ok {
				return nil, malformed(line, "unknown character %q at column %d", r, x+1)
			}
			switch k {
			case Start:
				starts++
				if starts > 1 {
					return nil, malformed(line, "second start at column %d", x+1)
				}
			case Exit:
				exits++
				if exits > 1 {
					return nil, malformed(line, "second exit at column %d", x+1)
				}
			}
			kinds = append(kinds, k)
		}
	}
	if starts == 0 {
		return nil, malformed(0, "no start cell")
	}
	if exits == 0 {
		return nil, malformed(0, "no exit cell")
	}

	return NewLevel(width, height, kinds)
}

func parseHeader(line string) (int, int, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 2 {
		return 0, 0, malformed(1, "header %q is not <width>,<height>", line)
	}
	w, ok := parseDimension(parts[0])
	if !ok {
		return 0, 0, malformed(1, "bad width %q", parts[0])
	}
	h, ok := parseDimension(parts[1])
	if !ok {
		return 0, 0, malformed(1, "bad height %q", parts[1])
	}
	if w <= 0 || h <= 0 {
		return 0, 0, malformed(1, "dimensions must be positive, got %dx%d", w, h)
	}
	return w, h, nil
}

// parseDimension accepts only the form Encode writes.
func parseDimension(s string) (int, bool) {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
