// Package printing renders the order document to PDF.
//
// OrderDocumentWriter lays an ordering.OrderSheet out with ordering.Paginate,
// turns every page into an absolutely positioned HTML page and hands the
// result to a PDFRenderer. ChromedpRenderer is the production renderer; it
// drives a local or remote headless Chrome.
//
//	renderer, err := NewChromedpRenderer(&ChromedpConfig{NoSandbox: true})
//	if err != nil {
//	    return err
//	}
//	defer renderer.Close()
//
//	doc, err := NewOrderDocumentWriter(renderer).Write(ctx, sheet)
package printing
