// Package preview looks up link-preview metadata for a single web page.
package preview

import (
	"context"

	"github.com/fwojciec/pagemeta"
)

// Selectors used to extract metadata. The first matching element wins.
const (
	TitleSelector       = "title"
	DescriptionSelector = `meta[name="description"]`
	OGImageSelector     = `meta[property="og:image"]`
)

// Ensure Service implements pagemeta.MetadataService at compile time.
var _ pagemeta.MetadataService = (*Service)(nil)

// Service validates a URL, fetches the page it points to and extracts its
// metadata. It holds no per-request state and is safe for concurrent use
// when its collaborators are.
type Service struct {
	Fetcher pagemeta.Fetcher
	Parser  pagemeta.DocumentParser
}

// LookupMetadata returns the metadata of the page at websiteURL.
// The URL is validated before any network access. Fetching is attempted
// once; its failure is returned as EFETCH.
func (s *Service) LookupMetadata(ctx context.Context, websiteURL string) (*pagemeta.MetadataResponse, error) {
	req := &pagemeta.MetadataRequest{WebsiteURL: websiteURL}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	html, err := s.Fetcher.Fetch(ctx, req.WebsiteURL)
	if err != nil {
		if pagemeta.ErrorCode(err) != pagemeta.EFETCH {
			return nil, pagemeta.Errorf(pagemeta.EFETCH, "%s", pagemeta.ErrorMessage(err))
		}
		return nil, err
	}

	doc, err := s.Parser.Parse(html)
	if err != nil {
		return nil, pagemeta.Errorf(pagemeta.EINTERNAL, "%s", pagemeta.ErrorMessage(err))
	}

	return &pagemeta.MetadataResponse{
		Metadata:   Extract(doc),
		WebsiteURL: req.WebsiteURL,
	}, nil
}

// Extract pulls the title, description and Open Graph image out of doc.
// Missing elements or attributes leave the corresponding field nil.
func Extract(doc pagemeta.Document) pagemeta.Metadata {
	var md pagemeta.Metadata
	if el, ok := doc.QuerySelector(TitleSelector); ok {
		title := el.Text()
		md.Title = &title
	}
	md.Description = content(doc, DescriptionSelector)
	md.OGImage = content(doc, OGImageSelector)
	return md
}

// content returns the content attribute of the first element matching
// selector.
func content(doc pagemeta.Document, selector string) *string {
	el, ok := doc.QuerySelector(selector)
	if !ok {
		return nil
	}
	v, ok := el.Attr("content")
	if !ok {
		return nil
	}
	return &v
}
