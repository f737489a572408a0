package mock

import "github.com/fwojciec/pagemeta"

var _ pagemeta.DocumentParser = (*DocumentParser)(nil)

// DocumentParser is a mock implementation of pagemeta.DocumentParser.
type DocumentParser struct {
	ParseFn func(html string) (pagemeta.Document, error)
}

func (p *DocumentParser) Parse(html string) (pagemeta.Document, error) {
	return p.ParseFn(html)
}

var _ pagemeta.Document = (*Document)(nil)

// Document is a mock implementation of pagemeta.Document.
type Document struct {
	QuerySelectorFn func(selector string) (pagemeta.Element, bool)
}

func (d *Document) QuerySelector(selector string) (pagemeta.Element, bool) {
	return d.QuerySelectorFn(selector)
}

var _ pagemeta.Element = (*Element)(nil)

// Element is a mock implementation of pagemeta.Element.
type Element struct {
	TextFn func() string
	AttrFn func(name string) (string, bool)
}

func (e *Element) Text() string {
	return e.TextFn()
}

func (e *Element) Attr(name string) (string, bool) {
	return e.AttrFn(name)
}
