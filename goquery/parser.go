// Package goquery implements pagemeta.DocumentParser on top of
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagemeta"
)

// Ensure Parser implements pagemeta.DocumentParser at compile time.
var _ pagemeta.DocumentParser = (*Parser)(nil)

// Parser builds goquery documents from HTML.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses html into a queryable document.
func (p *Parser) Parse(html string) (pagemeta.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pagemeta.Errorf(pagemeta.EINTERNAL, "failed to parse HTML: %v", err)
	}
	return &Document{doc: doc}, nil
}

// Document wraps a goquery.Document.
type Document struct {
	doc *goquery.Document
}

// QuerySelector returns the first element matching selector.
// goquery treats invalid selectors as matching nothing.
func (d *Document) QuerySelector(selector string) (pagemeta.Element, bool) {
	sel := d.doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return &Element{sel: sel}, true
}

// Element wraps a single-node goquery.Selection.
type Element struct {
	sel *goquery.Selection
}

// Text returns the combined text of the element and its descendants.
func (e *Element) Text() string {
	return e.sel.Text()
}

// Attr returns the named attribute value.
func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}
