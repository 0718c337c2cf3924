package layout

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"pydocpdf/internal/generator"
)

// Measurer reports the typeset width of text in the face of a block style.
type Measurer interface {
	StringWidth(style generator.Style, text string) float64
}

// Description is the page-description header: the document title and the
// total measured height of its content.
type Description struct {
	Title  string
	Height float64
}

func (d Description) String() string {
	return fmt.Sprintf("%s (%.1fpt of content)", d.Title, d.Height)
}

// Line is one positioned line of text. Y is the baseline, measured from the
// top of the page.
type Line struct {
	Page  int
	X     float64
	Y     float64
	Style generator.Style
	Text  string
}

// Plan is the complete, deterministic placement of a document. Preamble
// holds the page-description block at the top of page 1; Lines holds the
// content.
type Plan struct {
	Description Description
	Pages       int
	Preamble    []Line
	Lines       []Line
}

type measuredBlock struct {
	block  generator.Block
	face   Face
	x      float64
	lines  []string
	height float64
}

// Engine turns documents into paginated output.
type Engine struct {
	opts Options
}

// NewEngine creates an engine; zero fields of opts take their defaults.
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts.withDefaults()}
}

// Options returns the effective options.
func (e *Engine) Options() Options {
	return e.opts
}

func (e *Engine) contentTop() float64 {
	return e.opts.Margin + headerFace.Leading + headerFace.SpaceAfter
}

func (e *Engine) contentBottom() float64 {
	return e.opts.PageHeight - e.opts.Margin
}

// Plan wraps every block at its indentation, measures the total height,
// prepends the page description to page 1 and places lines top to bottom, opening a new page whenever the next line would
// cross the bottom margin. A heading or subheading is moved to the next page
// together with the first line of the block that follows it.
func (e *Engine) Plan(doc generator.Document, m Measurer) Plan {
	measured := e.measure(doc.Blocks, m)

	var total float64
	for _, mb := range measured {
		total += mb.height
	}

	plan := Plan{
		Description: Description{Title: doc.Title, Height: total},
		Pages:       1,
	}

	top, bottom := e.contentTop(), e.contentBottom()
	y := top

	// Helvetica-Oblique shares Helvetica's metrics, so the description
	// measures as Body.
	usable := e.opts.PageWidth - 2*e.opts.Margin
	for _, text := range wrapText(plan.Description.String(), usable, func(s string) float64 {
		return m.StringWidth(generator.Body, s)
	}) {
		plan.Preamble = append(plan.Preamble, Line{
			Page:  1,
			X:     e.opts.Margin,
			Y:     y + descriptionFace.Size,
			Style: generator.Body,
			Text:  text,
		})
		y += descriptionFace.Leading
	}
	y += descriptionFace.SpaceAfter
	newPage := func() {
		plan.Pages++
		y = top
	}

	for i, mb := range measured {
		if mb.block.Style != generator.Body && len(mb.lines) > 0 {
			need := float64(len(mb.lines)) * mb.face.Leading
			if i+1 < len(measured) && len(measured[i+1].lines) > 0 {
				need += mb.face.SpaceAfter + measured[i+1].face.Leading
			}
			if y+need > bottom && y > top {
				newPage()
			}
		}
		for _, text := range mb.lines {
			if y+mb.face.Leading > bottom && y > top {
				newPage()
			}
			plan.Lines = append(plan.Lines, Line{
				Page:  plan.Pages,
				X:     mb.x,
				Y:     y + mb.face.Size,
				Style: mb.block.Style,
				Text:  text,
			})
			y += mb.face.Leading
		}
		y += mb.face.SpaceAfter
	}

	return plan
}

func (e *Engine) measure(blocks []generator.Block, m Measurer) []measuredBlock {
	usable := e.opts.PageWidth - 2*e.opts.Margin
	out := make([]measuredBlock, 0, len(blocks))
	for _, b := range blocks {
		face := faceFor(b.Style)
		offset := float64(b.Level) * e.opts.Indent
		width := usable - offset
		if minWidth := 8 * face.Size; width < minWidth {
			width = minWidth
		}
		style := b.Style
		lines := wrapText(b.Text, width, func(s string) float64 {
			return m.StringWidth(style, s)
		})
		out = append(out, measuredBlock{
			block:  b,
			face:   face,
			x:      e.opts.Margin + offset,
			lines:  lines,
			height: float64(len(lines))*face.Leading + face.SpaceAfter,
		})
	}
	return out
}

// wrapText breaks text into lines no wider than width. Existing line breaks
// and the leading indentation of each source line are kept; words longer
// than a line are split.
func wrapText(text string, width float64, measure func(string) float64) []string {
	var out []string
	for _, src := range strings.Split(text, "\n") {
		src = strings.TrimRightFunc(src, unicode.IsSpace)
		if src == "" {
			out = append(out, "")
			continue
		}
		rest := strings.TrimLeft(src, " ")
		lead := src[:len(src)-len(rest)]

		line := lead
		empty := true
		for _, word := range strings.Fields(rest) {
			candidate := line + word
			if !empty {
				candidate = line + " " + word
			}
			if measure(candidate) <= width {
				line, empty = candidate, false
				continue
			}
			if !empty {
				out = append(out, line)
				line, empty = lead, true
			}
			for word != "" && measure(line+word) > width {
				head := fitPrefix(line, word, width, measure)
				out = append(out, line+head)
				word = word[len(head):]
			}
			if word != "" {
				line, empty = line+word, false
			}
		}
		if !empty {
			out = append(out, line)
		}
	}
	return out
}

// fitPrefix returns the longest prefix of word (at least one rune) that fits
// after line.
func fitPrefix(line, word string, width float64, measure func(string) float64) string {
	end := 0
	for end < len(word) {
		_, size := utf8.DecodeRuneInString(word[end:])
		if end > 0 && measure(line+word[:end+size]) > width {
			break
		}
		end += size
	}
	return word[:end]
}
