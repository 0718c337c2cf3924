package generator

// Style selects how the layout engine typesets a block.
type Style int

const (
	Heading Style = iota
	Subheading
	Body
)

func (s Style) String() string {
	switch s {
	case Heading:
		return "heading"
	case Subheading:
		return "subheading"
	default:
		return "body"
	}
}

// Block is one unit of rendered documentation. Level is the indentation unit
// counted from the left margin.
type Block struct {
	Style Style
	Text  string
	Level int
}

// Document is the ordered block sequence for one target, plus the title the
// layout engine uses as page metadata.
type Document struct {
	Title  string
	Blocks []Block
}
