package infra

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	appErrors "github.com/umalmyha/customers-viewer/internal/errors"
	"github.com/umalmyha/customers-viewer/internal/validation"
)

// HTTPErrorHandler logs error and converts known errors to responses with corresponding status
func HTTPErrorHandler(e *echo.Echo, logger logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		entry := logger.WithError(err).WithField("uri", c.Request().RequestURI)

		var pldErr *validation.PayloadError
		if errors.As(err, &pldErr) {
			entry.Debug("request validation failed")
			respond(c, entry, http.StatusBadRequest, pldErr)
			return
		}

		var busErr *appErrors.BusinessErr
		if errors.As(err, &busErr) {
			entry.Debug("action rejected")
			respond(c, entry, http.StatusBadRequest, busErr)
			return
		}

		var queryErr *appErrors.QueryErr
		if errors.As(err, &queryErr) {
			entry.WithField("operation", queryErr.Operation()).Error("customers query failed")
			respond(c, entry, http.StatusBadGateway, queryErr)
			return
		}

		entry.Error("error occurred on request processing")
		e.DefaultHTTPErrorHandler(err, c)
	}
}

func respond(c echo.Context, entry logrus.FieldLogger, code int, body any) {
	var err error
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, body)
	}

	if err != nil {
		entry.WithField("response_error", err.Error()).Error("failed to write error response")
	}
}
