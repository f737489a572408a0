package pagemeta

import (
	"context"
	"net/url"
)

// Error categories reported in ErrorResponse.Error.
const (
	ErrorInvalidWebsiteURL = "Invalid website URL"
	ErrorFailedWebsiteData = "Failed to get website data"
)

// Metadata holds the link-preview fields extracted from a page.
// A nil field means the page did not contain the element or attribute.
type Metadata struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	OGImage     *string `json:"ogImage,omitempty"`
}

// MetadataRequest is a request to look up metadata for a web page.
type MetadataRequest struct {
	WebsiteURL string `json:"websiteUrl"`
}

// Validate returns an error if the request does not hold an absolute URL.
func (r *MetadataRequest) Validate() error {
	if r.WebsiteURL == "" {
		return Errorf(EINVALID, "websiteUrl is required")
	}
	u, err := url.Parse(r.WebsiteURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return Errorf(EINVALID, "websiteUrl must be a valid URL")
	}
	return nil
}

// MetadataResponse is the result of a successful lookup.
type MetadataResponse struct {
	Metadata   Metadata `json:"metadata"`
	WebsiteURL string   `json:"websiteUrl"`
}

// ErrorResponse describes a failed lookup.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// NewErrorResponse maps err to the category reported to callers.
// Validation errors are reported as an invalid URL; everything else,
// including fetch errors, as a failure to get website data.
func NewErrorResponse(err error) *ErrorResponse {
	category := ErrorFailedWebsiteData
	if ErrorCode(err) == EINVALID {
		category = ErrorInvalidWebsiteURL
	}
	return &ErrorResponse{
		Error:   category,
		Details: ErrorMessage(err),
	}
}

// MetadataService looks up link-preview metadata.
type MetadataService interface {
	// LookupMetadata validates websiteURL, fetches the page and extracts
	// its metadata. Returns EINVALID if the URL is missing or malformed,
	// EFETCH if the page could not be retrieved.
	LookupMetadata(ctx context.Context, websiteURL string) (*MetadataResponse, error)
}
