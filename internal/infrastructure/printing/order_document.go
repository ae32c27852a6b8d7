package printing

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strconv"

	"go.uber.org/zap"

	"github.com/orderpad/backend/internal/domain/ordering"
)

// PDFContentType is the MIME type of rendered documents
const PDFContentType = "application/pdf"

// Font sizes in points per block kind
var blockFontSizes = map[ordering.BlockKind]int{
	ordering.BlockTitle:    16,
	ordering.BlockDate:     12,
	ordering.BlockNote:     12,
	ordering.BlockCategory: 14,
	ordering.BlockLine:     11,
}

const orderDocumentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
@page { size: {{mm .Width}} {{mm .Height}}; margin: 0; }
html, body { margin: 0; padding: 0; }
body { font-family: Helvetica, Arial, sans-serif; color: #000; }
.page { position: relative; width: {{mm .Width}}; height: {{mm .Height}}; overflow: hidden; break-after: page; }
.page:last-child { break-after: auto; }
.block { position: absolute; white-space: pre; line-height: 1; transform: translateY(-80%); }
{{range $kind, $size := .FontSizes}}.{{$kind}} { font-size: {{pt $size}}; }
{{end}}</style>
</head>
<body>
{{range .Pages}}<section class="page" data-page="{{.Number}}">
{{range .Blocks}}<div class="block {{.Kind}}" style="left: {{mm .X}}; top: {{mm .Y}}">{{.Text}}</div>
{{end}}</section>
{{end}}</body>
</html>
`

// OrderDocument is a rendered order document
type OrderDocument struct {
	FileName string
	Data     []byte
	Pages    int
}

// OrderDocumentWriter turns order sheets into PDF documents
type OrderDocumentWriter struct {
	renderer PDFRenderer
	layout   ordering.Layout
	logger   *zap.Logger
	tmpl     *template.Template
}

// OrderDocumentWriterOption configures an OrderDocumentWriter
type OrderDocumentWriterOption func(*OrderDocumentWriter)

// WithLayout overrides the page geometry
func WithLayout(l ordering.Layout) OrderDocumentWriterOption {
	return func(w *OrderDocumentWriter) {
		w.layout = l
	}
}

// WithWriterLogger sets the logger
func WithWriterLogger(l *zap.Logger) OrderDocumentWriterOption {
	return func(w *OrderDocumentWriter) {
		w.logger = l
	}
}

// NewOrderDocumentWriter creates a writer rendering through renderer
func NewOrderDocumentWriter(renderer PDFRenderer, opts ...OrderDocumentWriterOption) *OrderDocumentWriter {
	w := &OrderDocumentWriter{
		renderer: renderer,
		layout:   ordering.DefaultLayout(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.tmpl = template.Must(template.New("order").Funcs(template.FuncMap{
		"mm": func(v float64) template.CSS {
			return template.CSS(strconv.FormatFloat(v, 'f', 2, 64) + "mm")
		},
		"pt": func(v int) template.CSS {
			return template.CSS(strconv.Itoa(v) + "pt")
		},
	}).Parse(orderDocumentTemplate))
	return w
}

type orderDocumentView struct {
	Title     string
	Width     float64
	Height    float64
	FontSizes map[ordering.BlockKind]int
	Pages     []ordering.Page
}

// RenderHTML lays out the sheet and returns the HTML handed to the renderer
func (w *OrderDocumentWriter) RenderHTML(sheet *ordering.OrderSheet) (string, []ordering.Page, error) {
	pages := ordering.Paginate(sheet, w.layout)

	var buf bytes.Buffer
	err := w.tmpl.Execute(&buf, orderDocumentView{
		Title:     ordering.DocumentTitle,
		Width:     A4WidthMM,
		Height:    A4HeightMM,
		FontSizes: blockFontSizes,
		Pages:     pages,
	})
	if err != nil {
		return "", nil, NewRenderError(ErrCodeTemplateFailed, "failed to build order document", err)
	}
	return buf.String(), pages, nil
}

// Write renders the sheet to PDF
func (w *OrderDocumentWriter) Write(ctx context.Context, sheet *ordering.OrderSheet) (*OrderDocument, error) {
	if sheet == nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "order sheet is nil", nil)
	}

	html, pages, err := w.RenderHTML(sheet)
	if err != nil {
		return nil, err
	}

	result, err := w.renderer.Render(ctx, &RenderRequest{
		HTML:          html,
		PaperWidthMM:  A4WidthMM,
		PaperHeightMM: A4HeightMM,
		Title:         ordering.DocumentTitle,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render order document: %w", err)
	}

	w.logger.Debug("Order document rendered",
		zap.String("date", sheet.DateString()),
		zap.Int("lines", sheet.LineCount()),
		zap.Int("pages", len(pages)),
		zap.Int("bytes", len(result.PDFData)),
	)

	return &OrderDocument{
		FileName: ordering.OrderDocumentFileName(sheet.Date),
		Data:     result.PDFData,
		Pages:    len(pages),
	}, nil
}
