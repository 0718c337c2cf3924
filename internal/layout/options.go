package layout

import (
	"time"

	"pydocpdf/internal/generator"
)

// A4 portrait, in points.
const (
	A4Width  = 595.28
	A4Height = 841.89
)

// Options fixes the page geometry. All lengths are in points.
type Options struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64
	Indent     float64 // width of one indentation level

	// CreationDate is stamped into the document metadata. The zero value
	// maps to the Unix epoch so identical input gives identical bytes.
	CreationDate time.Time
}

// DefaultOptions returns A4 pages with 2cm margins.
func DefaultOptions() Options {
	return Options{
		PageWidth:  A4Width,
		PageHeight: A4Height,
		Margin:     56.7,
		Indent:     18,
	}
}

// withDefaults fills zero geometry from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.PageWidth <= 0 {
		o.PageWidth = d.PageWidth
	}
	if o.PageHeight <= 0 {
		o.PageHeight = d.PageHeight
	}
	if o.Margin <= 0 {
		o.Margin = d.Margin
	}
	if o.Indent <= 0 {
		o.Indent = d.Indent
	}
	if o.CreationDate.IsZero() {
		o.CreationDate = time.Unix(0, 0).UTC()
	}
	return o
}

// Face is the typeface of one block style.
type Face struct {
	Family     string
	Style      string // fpdf style: "", "B", "I", "BI"
	Size       float64
	Leading    float64 // line advance
	SpaceAfter float64
}

var faces = map[generator.Style]Face{
	generator.Heading:    {Family: "Helvetica", Style: "B", Size: 14, Leading: 19, SpaceAfter: 4},
	generator.Subheading: {Family: "Helvetica", Style: "B", Size: 11, Leading: 15, SpaceAfter: 2},
	generator.Body:       {Family: "Helvetica", Style: "", Size: 10, Leading: 13, SpaceAfter: 6},
}

// headerFace sets the running page header.
var headerFace = Face{Family: "Helvetica", Style: "I", Size: 8, Leading: 10, SpaceAfter: 14}

// descriptionFace sets the page-description block on page 1.
var descriptionFace = Face{Family: "Helvetica", Style: "I", Size: 10, Leading: 13, SpaceAfter: 10}

func faceFor(style generator.Style) Face {
	if f, ok := faces[style]; ok {
		return f
	}
	return faces[generator.Body]
}
