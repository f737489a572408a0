package pagemeta

// DocumentParser builds a queryable document from HTML.
// Implementations are lenient: malformed markup degrades gracefully rather
// than failing.
type DocumentParser interface {
	Parse(html string) (Document, error)
}

// Document is a parsed HTML document that can be queried with CSS selectors.
type Document interface {
	// QuerySelector returns the first element in document order matching
	// selector. An invalid selector matches nothing.
	QuerySelector(selector string) (Element, bool)
}

// Element is a single node returned by QuerySelector.
type Element interface {
	// Text returns the combined text content of the element and its
	// descendants.
	Text() string

	// Attr returns the value of the named attribute.
	Attr(name string) (string, bool)
}
