package echo

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fwojciec/pagemeta"
	"github.com/labstack/echo/v4"
)

// handleWebsiteData handles "GET /api/website-data?websiteUrl=...".
func (s *Server) handleWebsiteData(c echo.Context) error {
	resp, err := s.MetadataService.LookupMetadata(c.Request().Context(), c.QueryParam("websiteUrl"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// httpErrorHandler writes application errors as pagemeta.ErrorResponse.
// Routing errors raised by echo itself keep their status code.
func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		_ = c.JSON(he.Code, &pagemeta.ErrorResponse{
			Error:   http.StatusText(he.Code),
			Details: fmt.Sprint(he.Message),
		})
		return
	}

	status := http.StatusInternalServerError
	if pagemeta.ErrorCode(err) == pagemeta.EINVALID {
		status = http.StatusBadRequest
	}
	if pagemeta.ErrorCode(err) == pagemeta.EINTERNAL {
		s.Logger.Error("internal error", "err", err)
	}
	_ = c.JSON(status, pagemeta.NewErrorResponse(err))
}
