package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthCheck is named probe of a dependency
type HealthCheck struct {
	Name  string
	Probe func(context.Context) error
}

type healthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthHTTPHandler is http handler for health endpoint
type HealthHTTPHandler struct {
	checks []HealthCheck
}

// NewHealthHTTPHandler builds new HealthHTTPHandler
func NewHealthHTTPHandler(checks ...HealthCheck) *HealthHTTPHandler {
	return &HealthHTTPHandler{checks: checks}
}

// Health reports service health
// @Summary     Health
// @Description Probes dependencies of the service
// @Tags        health
// @Produce     json
// @Success     200 {object} healthStatus
// @Failure     503 {object} healthStatus
// @Router      /healthz [get]
func (h *HealthHTTPHandler) Health(c echo.Context) error {
	res := healthStatus{Status: "ok", Checks: make(map[string]string, len(h.checks))}
	code := http.StatusOK

	for _, check := range h.checks {
		if err := check.Probe(c.Request().Context()); err != nil {
			res.Status = "unavailable"
			res.Checks[check.Name] = err.Error()
			code = http.StatusServiceUnavailable
			continue
		}
		res.Checks[check.Name] = "ok"
	}
	return c.JSON(code, &res)
}
