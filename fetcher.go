package pagemeta

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch issues a single GET request and returns the body decoded as
	// UTF-8. Transport failures and non-2xx responses are returned as
	// EFETCH errors. The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)
}
