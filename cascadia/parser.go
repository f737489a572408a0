// Package cascadia implements pagemeta.DocumentParser with a full DOM tree
// from golang.org/x/net/html queried by github.com/andybalholm/cascadia
// selectors.
package cascadia

import (
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/pagemeta"
	"golang.org/x/net/html"
)

// Ensure Parser implements pagemeta.DocumentParser at compile time.
var _ pagemeta.DocumentParser = (*Parser)(nil)

// Parser parses HTML into DOM trees. Compiled selectors are cached and
// shared across all documents produced by the same Parser.
type Parser struct {
	mu        sync.RWMutex
	selectors map[string]cascadia.Matcher
}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{
		selectors: make(map[string]cascadia.Matcher),
	}
}

// Parse parses html into a queryable document.
func (p *Parser) Parse(src string) (pagemeta.Document, error) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, pagemeta.Errorf(pagemeta.EINTERNAL, "failed to parse HTML: %v", err)
	}
	return &Document{root: root, parser: p}, nil
}

// matcher returns the compiled selector, or nil if selector is invalid.
func (p *Parser) matcher(selector string) cascadia.Matcher {
	p.mu.RLock()
	m, ok := p.selectors[selector]
	p.mu.RUnlock()
	if ok {
		return m
	}

	group, err := cascadia.ParseGroup(selector)
	if err == nil {
		m = group
	}

	p.mu.Lock()
	p.selectors[selector] = m
	p.mu.Unlock()
	return m
}

// Document is a parsed DOM tree.
type Document struct {
	root   *html.Node
	parser *Parser
}

// QuerySelector returns the first element in document order matching
// selector.
func (d *Document) QuerySelector(selector string) (pagemeta.Element, bool) {
	m := d.parser.matcher(selector)
	if m == nil {
		return nil, false
	}
	n := cascadia.Query(d.root, m)
	if n == nil {
		return nil, false
	}
	return &Element{node: n}, true
}

// Element is a single DOM element.
type Element struct {
	node *html.Node
}

// Text returns the concatenated text nodes below the element.
func (e *Element) Text() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return b.String()
}

// Attr returns the named attribute value. Attribute names are matched
// case-insensitively, as the HTML parser lowercases them.
func (e *Element) Attr(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}
