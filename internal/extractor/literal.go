package extractor

import (
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/unicode/runenames"
)

const tabSize = 8

// decodeStringLiteral evaluates the text of a single Python str literal,
// prefix and quotes included. Bytes and f-strings are rejected.
func decodeStringLiteral(lit string) (string, bool) {
	i := 0
	raw := false
	for i < len(lit) && strings.IndexByte("rRuUbBfF", lit[i]) >= 0 {
		switch lit[i] {
		case 'r', 'R':
			raw = true
		case 'b', 'B', 'f', 'F':
			return "", false
		}
		i++
	}
	body := lit[i:]

	var quote string
	switch {
	case strings.HasPrefix(body, `"""`), strings.HasPrefix(body, `'''`):
		quote = body[:3]
	case strings.HasPrefix(body, `"`), strings.HasPrefix(body, `'`):
		quote = body[:1]
	default:
		return "", false
	}
	if len(body) < 2*len(quote) || !strings.HasSuffix(body, quote) {
		return "", false
	}
	body = body[len(quote) : len(body)-len(quote)]

	if raw {
		return body, true
	}
	return unescape(body), true
}

// unescape applies Python's escape sequences, \N{NAME} included. Unknown
// escapes and unknown character names are kept verbatim, backslash included.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch e := s[i]; e {
		case '\n':
			// line continuation
		case '\\', '\'', '"':
			sb.WriteByte(e)
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i
			for j < len(s) && j < i+3 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			v, _ := strconv.ParseUint(s[i:j], 8, 32)
			sb.WriteRune(rune(v))
			i = j - 1
		case 'x', 'u', 'U':
			width := hexEscapeWidth(e)
			if i+1+width <= len(s) {
				if v, err := strconv.ParseUint(s[i+1:i+1+width], 16, 32); err == nil && utf8.ValidRune(rune(v)) {
					sb.WriteRune(rune(v))
					i += width
					continue
				}
			}
			sb.WriteByte('\\')
			sb.WriteByte(e)
		case 'N':
			if r, n, ok := namedEscape(s[i+1:]); ok {
				sb.WriteRune(r)
				i += n
				continue
			}
			sb.WriteByte('\\')
			sb.WriteByte(e)
		default:
			sb.WriteByte('\\')
			sb.WriteByte(e)
		}
	}
	return sb.String()
}

func hexEscapeWidth(e byte) int {
	switch e {
	case 'x':
		return 2
	case 'u':
		return 4
	}
	return 8
}

// namedEscape decodes the "{NAME}" part of a \N escape at the start of s and
// returns the rune and the number of bytes consumed.
func namedEscape(s string) (rune, int, bool) {
	if !strings.HasPrefix(s, "{") {
		return 0, 0, false
	}
	end := strings.IndexByte(s, '}')
	if end < 2 {
		return 0, 0, false
	}
	name := strings.ToUpper(s[1:end])
	if hex, ok := strings.CutPrefix(name, "CJK UNIFIED IDEOGRAPH-"); ok {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || !utf8.ValidRune(rune(v)) {
			return 0, 0, false
		}
		return rune(v), end + 1, true
	}
	r, ok := runesByName()[name]
	return r, end + 1, ok
}

// runesByName indexes the Unicode character names of the BMP, the SMP and the
// variation selectors supplement. Ideographs and controls have no literal name
// in the table and are skipped.
var runesByName = sync.OnceValue(func() map[string]rune {
	byName := make(map[string]rune, 1<<15)
	add := func(lo, hi rune) {
		for r := lo; r <= hi; r++ {
			if r >= 0xD800 && r <= 0xDFFF {
				continue
			}
			name := runenames.Name(r)
			if name == "" || strings.HasPrefix(name, "<") {
				continue
			}
			if _, dup := byName[name]; !dup {
				byName[name] = r
			}
		}
	}
	add(0, 0x1FFFF)
	add(0xE0000, 0xE01EF)
	return byName
})

// cleanDoc normalizes docstring indentation: tabs are expanded, the first
// line is left-trimmed, the common margin of the remaining lines is removed
// and leading/trailing blank lines are dropped.
func cleanDoc(doc string) string {
	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		lines[i] = expandTabs(line)
	}

	margin := -1
	for _, line := range lines[1:] {
		content := len(strings.TrimLeft(line, " "))
		if content == 0 {
			continue
		}
		indent := len(line) - content
		if margin < 0 || indent < margin {
			margin = indent
		}
	}

	lines[0] = strings.TrimLeft(lines[0], " ")
	if margin > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) > margin {
				lines[i] = lines[i][margin:]
			} else {
				lines[i] = strings.TrimLeft(lines[i], " ")
			}
		}
	}

	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	return strings.Join(lines, "\n")
}

func expandTabs(line string) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	var sb strings.Builder
	col := 0
	for _, r := range line {
		switch r {
		case '\t':
			n := tabSize - col%tabSize
			sb.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n', '\r':
			sb.WriteRune(r)
			col = 0
		default:
			sb.WriteRune(r)
			col++
		}
	}
	return sb.String()
}
