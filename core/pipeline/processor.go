// Package pipeline processes one newsletter PDF end to end:
// load → decode → extract fields → render images → write artifacts →
// optionally remove the source.
//
// Every step runs in sequence. The first error aborts the document and is
// returned as a *StageError; files already written stay on disk.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/gaurav-prasanna/issuepipe/core"
	"github.com/gaurav-prasanna/issuepipe/core/extract"
	"github.com/gaurav-prasanna/issuepipe/core/fields"
	"github.com/gaurav-prasanna/issuepipe/core/normalize"
	"github.com/gaurav-prasanna/issuepipe/core/output"
	"github.com/gaurav-prasanna/issuepipe/core/render"
)

// Options controls what the processor writes.
type Options struct {
	Layout core.Layout
	// ExtractPagesToImage lists extra pages rendered as <slug>-page-<N>.jpg.
	ExtractPagesToImage []int
	// RemoveAfterProcessing deletes the source once everything is written.
	RemoveAfterProcessing bool
}

// NewsletterProcessor implements core.Processor.
type NewsletterProcessor struct {
	Decoder    core.Decoder
	Extractor  *extract.RegionExtractor
	Rasterizer core.Rasterizer
	Writer     *output.Writer
	JSON       *render.JSONRenderer
	Options    Options
}

// New creates a NewsletterProcessor. A nil writer disables every output; ras
// may be nil when image output is disabled.
func New(dec core.Decoder, ras core.Rasterizer, w *output.Writer, opts Options) *NewsletterProcessor {
	if w == nil {
		w = output.New("", "", "")
	}
	return &NewsletterProcessor{
		Decoder:    dec,
		Extractor:  extract.New(),
		Rasterizer: ras,
		Writer:     w,
		JSON:       render.NewJSONRenderer(),
		Options:    opts,
	}
}

// Process extracts the record for the PDF at path and writes the configured
// artifacts.
func (p *NewsletterProcessor) Process(ctx context.Context, path string) (*core.Newsletter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, stageErr(StageDecode, path, fmt.Errorf("reading source: %w", err))
	}
	doc, err := p.Decoder.Decode(data)
	if err != nil {
		return nil, stageErr(StageDecode, path, err)
	}
	defer doc.Close()

	pages := newPageCache(doc)

	rec, err := p.extractRecord(pages, path)
	if err != nil {
		return nil, stageErr(StageExtract, path, err)
	}
	slog.Debug("fields extracted",
		"path", path,
		"slug", rec.Slug,
		"date_found", rec.Date != nil,
		"issue_found", rec.IssueNumber != nil,
	)

	if err := p.writeOutputs(ctx, pages, rec, data); err != nil {
		return nil, err
	}

	if p.Options.RemoveAfterProcessing {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := output.RemoveSource(path); err != nil {
			return nil, stageErr(StageRemove, path, err)
		}
		slog.Info("source removed", "path", path)
	}

	return rec, nil
}

// extractRecord reads the layout's fields and derives the slug.
func (p *NewsletterProcessor) extractRecord(pages *pageCache, path string) (*core.Newsletter, error) {
	layout := p.Options.Layout

	front, err := pages.get(layout.FieldPage)
	if err != nil {
		return nil, err
	}
	editorialPage, err := pages.get(layout.EditorialPage)
	if err != nil {
		return nil, fmt.Errorf("editorial: %w", err)
	}

	// Only the parsed fields are normalized; text fields keep the
	// extracted strings as they are.
	dateText := normalize.Normalize(p.Extractor.TextInRect(front, layout.Date))
	issueText := normalize.Normalize(p.Extractor.TextInRect(front, layout.Issue))

	rec := &core.Newsletter{
		Date:        fields.ParseDate(dateText),
		IssueNumber: fields.ParseIssueNumber(issueText),
		Description: p.Extractor.TextInRect(front, layout.Description),
		Editorial:   p.Extractor.TextInRect(editorialPage, layout.Editorial),
		Source:      path,
	}
	rec.Slug = fields.SlugFor(rec.Date, rec.IssueNumber, path)
	rec.Path = "/pdf/" + rec.Slug + ".pdf"
	return rec, nil
}

// writeOutputs writes images, metadata and the PDF copy, in that order,
// skipping every category whose directory is not configured.
func (p *NewsletterProcessor) writeOutputs(ctx context.Context, pages *pageCache, rec *core.Newsletter, src []byte) error {
	w := p.Writer
	path := rec.Source

	if w.Images() {
		if err := p.writeImages(ctx, pages, rec, src); err != nil {
			return err
		}
	}

	if w.Data() {
		data, err := p.JSON.Render(*rec)
		if err != nil {
			return stageErr(StageWrite, path, err)
		}
		out, err := w.WriteData(rec.Slug, data, p.JSON.Extension())
		if err != nil {
			return stageErr(StageWrite, path, err)
		}
		slog.Info("data written", "path", out)
	}

	if w.PDFs() {
		out, err := w.CopyPDF(rec.Slug, src)
		if err != nil {
			return stageErr(StageWrite, path, err)
		}
		slog.Info("pdf copied", "path", out)
	}

	return nil
}

// writeImages renders the cover crop and the requested pages from one
// rasterizer session.
func (p *NewsletterProcessor) writeImages(ctx context.Context, pages *pageCache, rec *core.Newsletter, src []byte) error {
	w := p.Writer
	path := rec.Source
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.Rasterizer == nil {
		return stageErr(StageRender, path, errors.New("no rasterizer configured"))
	}

	rdoc, err := p.Rasterizer.Open(src)
	if err != nil {
		return stageErr(StageRender, path, err)
	}
	defer rdoc.Close()

	cover := p.Options.Layout.Cover
	data, err := renderPage(pages, rdoc, p.Options.Layout.CoverPage, &cover)
	if err != nil {
		return stageErr(StageRender, path, fmt.Errorf("cover: %w", err))
	}
	out, err := w.WriteCover(rec.Slug, data)
	if err != nil {
		return stageErr(StageWrite, path, err)
	}
	slog.Info("image written", "path", out)

	for _, n := range p.Options.ExtractPagesToImage {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := renderPage(pages, rdoc, n, nil)
		if err != nil {
			return stageErr(StageRender, path, fmt.Errorf("page %d: %w", n, err))
		}
		out, err := w.WritePage(rec.Slug, n, data)
		if err != nil {
			return stageErr(StageWrite, path, err)
		}
		slog.Info("image written", "path", out, "page", n)
	}
	return nil
}

// renderPage checks n against the decoded document before rendering it.
func renderPage(pages *pageCache, rdoc core.RasterDocument, n int, crop *core.Rect) ([]byte, error) {
	if _, err := pages.get(n); err != nil {
		return nil, err
	}
	return rdoc.Rasterize(n, crop)
}

// pageCache decodes each page of a document at most once.
type pageCache struct {
	doc   core.Document
	pages map[int]core.Page
}

func newPageCache(doc core.Document) *pageCache {
	return &pageCache{doc: doc, pages: make(map[int]core.Page)}
}

func (c *pageCache) get(n int) (core.Page, error) {
	if page, ok := c.pages[n]; ok {
		return page, nil
	}
	page, err := c.doc.Page(n)
	if err != nil {
		return nil, err
	}
	c.pages[n] = page
	return page, nil
}
