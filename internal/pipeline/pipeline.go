package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"pydocpdf/internal/extractor"
	"pydocpdf/internal/generator"
	"pydocpdf/internal/layout"
	"pydocpdf/internal/resolver"

	"github.com/tsawler/tabula/reader"
)

// Output formats.
const (
	FormatPDF  = "pdf"
	FormatText = "text"
)

type Options struct {
	Format    string
	Layout    layout.Options
	TextWidth uint
}

// Artifact is a finished document, ready to be written.
type Artifact struct {
	FullName string // last path segment of the target, used as the file base name
	Ext      string
	Data     []byte
	Title    string
	Pages    int
}

// FileName is the output file name inside the output directory.
func (a *Artifact) FileName() string {
	return a.FullName + a.Ext
}

// Pipeline runs target -> module -> entity -> blocks -> document.
// A Pipeline keeps no state between Build calls.
type Pipeline struct {
	extractor *extractor.Extractor
	logger    *slog.Logger
	opts      Options
}

func New(logger *slog.Logger, opts Options) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Format == "" {
		opts.Format = FormatPDF
	}
	if opts.TextWidth == 0 {
		opts.TextWidth = 80
	}
	return &Pipeline{
		extractor: extractor.NewExtractor(),
		logger:    logger,
		opts:      opts,
	}
}

type loadResult struct {
	Target  resolver.Target
	Module  *extractor.Module
	ModTime time.Time
}

// Build produces the document for target without touching the output
// directory. Errors wrap resolver.ErrSourceNotFound,
// resolver.ErrLookupFailure or *extractor.SyntaxError.
func (p *Pipeline) Build(ctx context.Context, target string) (*Artifact, error) {
	loaded, err := p.loadStage(ctx, target)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolved, err := resolver.Resolve(loaded.Module, loaded.Target)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("target resolved", "target", loaded.Target.String(), "kind", resolved.Kind.String())

	doc := generator.Render(resolved)
	p.logger.Debug("document rendered", "title", doc.Title, "blocks", len(doc.Blocks))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch p.opts.Format {
	case FormatText:
		return p.textStage(loaded.Target, doc)
	case FormatPDF:
		return p.pdfStage(loaded, doc)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", p.opts.Format)
	}
}

func (p *Pipeline) loadStage(ctx context.Context, target string) (*loadResult, error) {
	t, err := resolver.ParseTarget(target)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(t.FilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", resolver.ErrSourceNotFound, t.FilePath)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", resolver.ErrSourceNotFound, t.FilePath)
	}

	module, err := p.extractor.ExtractFromFile(ctx, t.FilePath, t.ModuleName)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("module listed",
		"file", t.FilePath,
		"classes", len(module.Classes),
		"functions", len(module.Functions))

	return &loadResult{Target: t, Module: module, ModTime: info.ModTime().UTC().Truncate(time.Second)}, nil
}

func (p *Pipeline) textStage(t resolver.Target, doc generator.Document) (*Artifact, error) {
	var buf bytes.Buffer
	if err := generator.WriteText(&buf, doc, p.opts.TextWidth); err != nil {
		return nil, err
	}
	return &Artifact{FullName: t.FullName, Ext: ".txt", Data: buf.Bytes(), Title: doc.Title}, nil
}

func (p *Pipeline) pdfStage(loaded *loadResult, doc generator.Document) (*Artifact, error) {
	opts := p.opts.Layout
	if opts.CreationDate.IsZero() {
		// Stamp the source's modification time so unchanged input keeps
		// producing identical bytes.
		opts.CreationDate = loaded.ModTime
	}

	data, plan, err := layout.NewEngine(opts).Render(doc)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("document laid out",
		"pages", plan.Pages,
		"height", plan.Description.Height,
		"lines", len(plan.Lines))

	return &Artifact{
		FullName: loaded.Target.FullName,
		Ext:      ".pdf",
		Data:     data,
		Title:    doc.Title,
		Pages:    plan.Pages,
	}, nil
}

// Save writes a into dir, creating dir if needed, and returns the file path.
func Save(dir string, a *Artifact) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, a.FileName())
	if err := os.WriteFile(path, a.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// VerifyPDF re-opens a written PDF and checks its page count.
func VerifyPDF(path string, wantPages int) error {
	r, err := reader.Open(path)
	if err != nil {
		return fmt.Errorf("failed to reopen %s: %w", path, err)
	}
	defer r.Close()

	got, err := r.PageCount()
	if err != nil {
		return fmt.Errorf("failed to count pages of %s: %w", path, err)
	}
	if got != wantPages {
		return fmt.Errorf("%s has %d pages, expected %d", path, got, wantPages)
	}
	return nil
}
