package generator

import (
	"bufio"
	"io"
	"strings"

	"github.com/mitchellh/go-wordwrap"
)

const textIndent = "    "

// WriteText writes doc as plain text in the style of a manual page: headings
// flush left, every level indented by four spaces, body text wrapped to width
// columns.
func WriteText(w io.Writer, doc Document, width uint) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(doc.Title)
	bw.WriteString("\n\n")

	for i, block := range doc.Blocks {
		if block.Style == Heading && i > 0 {
			bw.WriteString("\n")
		}
		prefix := strings.Repeat(textIndent, block.Level)

		text := block.Text
		if block.Style == Body {
			lim := uint(0)
			if width > uint(len(prefix)) {
				lim = width - uint(len(prefix))
			}
			text = wordwrap.WrapString(text, lim)
		}
		for _, line := range strings.Split(text, "\n") {
			if line != "" {
				bw.WriteString(prefix)
				bw.WriteString(line)
			}
			bw.WriteString("\n")
		}
	}

	return bw.Flush()
}
