package citation

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/kirillkom/nutrition-assistant/internal/core/domain"
)

// RenderHTML renders markdown answer text to HTML with resolvable [n] markers
// replaced by citation controls. The marker scan runs independently per text
// run inside each paragraph or list item, so a marker split across structural
// boundaries (for example two list items) is never merged and stays literal.
func RenderHTML(text string, sources []domain.Source) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(
				util.Prioritized(newTextNodeRenderer(sources), 100),
			),
		),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("render answer markdown: %w", err)
	}
	return buf.String(), nil
}

// textNodeRenderer overrides text node rendering only; everything else keeps
// goldmark's default HTML output. A renderer instance serves one conversion.
type textNodeRenderer struct {
	sources  []domain.Source
	consumed map[ast.Node]struct{}
}

func newTextNodeRenderer(sources []domain.Source) *textNodeRenderer {
	return &textNodeRenderer{
		sources:  sources,
		consumed: make(map[ast.Node]struct{}),
	}
}

func (r *textNodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindText, r.renderText)
}

func (r *textNodeRenderer) renderText(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	if _, ok := r.consumed[node]; ok {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Text)

	// The inline parser emits separate text nodes around brackets, so a
	// marker like [2] spans up to three siblings. Merge the contiguous
	// same-line run before scanning; runs never cross line breaks or
	// non-text siblings.
	run := make([]byte, 0, 128)
	run = append(run, n.Segment.Value(source)...)
	last := n
	for !last.SoftLineBreak() && !last.HardLineBreak() {
		next, ok := last.NextSibling().(*ast.Text)
		if !ok {
			break
		}
		run = append(run, next.Segment.Value(source)...)
		r.consumed[next] = struct{}{}
		last = next
	}

	for _, seg := range Resolve(string(run), r.sources) {
		if seg.IsCitation() {
			writeCitationControl(w, seg.Source)
			continue
		}
		_, _ = w.Write(util.EscapeHTML([]byte(seg.Text)))
	}

	switch {
	case last.HardLineBreak():
		_, _ = w.WriteString("<br>\n")
	case last.SoftLineBreak():
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func writeCitationControl(w util.BufWriter, src *domain.Source) {
	page := ""
	if src.Page != nil {
		page = strconv.Itoa(*src.Page)
	}
	_, _ = fmt.Fprintf(
		w,
		`<sup class="citation" role="button" tabindex="0" data-index="%d" data-page="%s" data-similarity="%.4f" data-content="%s">%d</sup>`,
		src.Index,
		page,
		src.Similarity,
		util.EscapeHTML([]byte(src.Content)),
		src.Index,
	)
}
