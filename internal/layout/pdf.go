package layout

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"pydocpdf/internal/generator"
)

const creator = "pydocpdf"

// Render lays doc out and assembles the PDF. The output depends only on doc
// and the engine options.
func (e *Engine) Render(doc generator.Document) ([]byte, Plan, error) {
	pdf := e.newPDF()
	plan := e.Plan(doc, &fpdfMeasurer{pdf: pdf})

	pdf.SetTitle(plan.Description.Title, true)
	pdf.SetSubject(plan.Description.String(), true)

	page := 0
	for _, line := range plan.Preamble {
		for page < line.Page {
			page++
			e.startPage(pdf, plan, page)
		}
		pdf.SetFont(descriptionFace.Family, descriptionFace.Style, descriptionFace.Size)
		pdf.Text(line.X, line.Y, toWinAnsi(line.Text))
	}
	for _, line := range plan.Lines {
		for page < line.Page {
			page++
			e.startPage(pdf, plan, page)
		}
		face := faceFor(line.Style)
		pdf.SetFont(face.Family, face.Style, face.Size)
		pdf.Text(line.X, line.Y, toWinAnsi(line.Text))
	}
	for page < plan.Pages {
		page++
		e.startPage(pdf, plan, page)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, plan, fmt.Errorf("failed to assemble pdf: %w", err)
	}
	return buf.Bytes(), plan, nil
}

func (e *Engine) newPDF() *fpdf.Fpdf {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: e.opts.PageWidth, Ht: e.opts.PageHeight},
	})
	pdf.SetMargins(e.opts.Margin, e.opts.Margin, e.opts.Margin)
	pdf.SetAutoPageBreak(false, e.opts.Margin)
	pdf.SetCreationDate(e.opts.CreationDate)
	pdf.SetModificationDate(e.opts.CreationDate)
	pdf.SetCatalogSort(true)
	pdf.SetCreator(creator, false)
	return pdf
}

// startPage opens a page and draws the running header: the title on the
// left, the page counter on the right and a rule below both.
func (e *Engine) startPage(pdf *fpdf.Fpdf, plan Plan, page int) {
	pdf.AddPage()

	pdf.SetFont(headerFace.Family, headerFace.Style, headerFace.Size)
	pdf.SetTextColor(96, 96, 96)
	baseline := e.opts.Margin + headerFace.Size
	pdf.Text(e.opts.Margin, baseline, toWinAnsi(plan.Description.Title))

	counter := fmt.Sprintf("%d / %d", page, plan.Pages)
	pdf.Text(e.opts.PageWidth-e.opts.Margin-pdf.GetStringWidth(counter), baseline, counter)

	pdf.SetDrawColor(160, 160, 160)
	pdf.SetLineWidth(0.5)
	rule := e.opts.Margin + headerFace.Leading + 2
	pdf.Line(e.opts.Margin, rule, e.opts.PageWidth-e.opts.Margin, rule)
	pdf.SetTextColor(0, 0, 0)
}

// fpdfMeasurer measures with the core font metrics fpdf embeds.
type fpdfMeasurer struct {
	pdf *fpdf.Fpdf
}

func (m *fpdfMeasurer) StringWidth(style generator.Style, text string) float64 {
	face := faceFor(style)
	m.pdf.SetFont(face.Family, face.Style, face.Size)
	return m.pdf.GetStringWidth(toWinAnsi(text))
}

// toWinAnsi converts UTF-8 text to the single-byte encoding of the PDF core
// fonts. Runes outside Windows-1252 become '?'.
func toWinAnsi(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r == '\t' {
			sb.WriteString("    ")
			continue
		}
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			b = '?'
		}
		sb.WriteByte(b)
	}
	return sb.String()
}
