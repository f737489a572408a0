package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagemeta"
)

// Ensure LoggingMetadataService implements pagemeta.MetadataService.
var _ pagemeta.MetadataService = (*LoggingMetadataService)(nil)

// LoggingMetadataService wraps a MetadataService with logging.
type LoggingMetadataService struct {
	next   pagemeta.MetadataService
	logger *slog.Logger
}

// NewLoggingMetadataService creates a new LoggingMetadataService.
func NewLoggingMetadataService(next pagemeta.MetadataService, logger *slog.Logger) *LoggingMetadataService {
	return &LoggingMetadataService{next: next, logger: logger}
}

// LookupMetadata delegates to the wrapped service. Failures are logged at
// warn level with their error code.
func (s *LoggingMetadataService) LookupMetadata(ctx context.Context, websiteURL string) (resp *pagemeta.MetadataResponse, err error) {
	defer func(begin time.Time) {
		if err != nil {
			s.logger.Warn("metadata lookup",
				"url", websiteURL,
				"code", pagemeta.ErrorCode(err),
				"duration", time.Since(begin),
				"err", pagemeta.ErrorMessage(err),
			)
			return
		}
		s.logger.Info("metadata lookup",
			"url", websiteURL,
			"title", resp.Metadata.Title != nil,
			"description", resp.Metadata.Description != nil,
			"ogImage", resp.Metadata.OGImage != nil,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.LookupMetadata(ctx, websiteURL)
}
