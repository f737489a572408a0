package mock

import (
	"context"

	"github.com/fwojciec/pagemeta"
)

var _ pagemeta.MetadataService = (*MetadataService)(nil)

// MetadataService is a mock implementation of pagemeta.MetadataService.
type MetadataService struct {
	LookupMetadataFn func(ctx context.Context, websiteURL string) (*pagemeta.MetadataResponse, error)
}

func (s *MetadataService) LookupMetadata(ctx context.Context, websiteURL string) (*pagemeta.MetadataResponse, error) {
	return s.LookupMetadataFn(ctx, websiteURL)
}
