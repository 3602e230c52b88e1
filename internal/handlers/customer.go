package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/customers-viewer/internal/model"
	"github.com/umalmyha/customers-viewer/internal/service"
)

type customersQuery struct {
	Role   string `validate:"omitempty,oneof=ADMIN MANAGER"`
	Search string `validate:"max=256"`
}

func (q customersQuery) filter() model.RoleFilter {
	if q.Role == "" {
		return model.NoRoleFilter()
	}
	return model.RoleFilterOf(model.Role(q.Role))
}

// CustomerHTTPHandler is http handler for customer endpoint
type CustomerHTTPHandler struct {
	customerSvc service.CustomerService
}

// NewCustomerHTTPHandler builds new CustomerHTTPHandler
func NewCustomerHTTPHandler(customerSvc service.CustomerService) *CustomerHTTPHandler {
	return &CustomerHTTPHandler{customerSvc: customerSvc}
}

// GetAll gets customers
// @Summary     List customers
// @Description Returns customers of the given role whose name contains search text
// @Tags        customers
// @Produce     json
// @Param       role   query    string false "Role filter" Enums(ADMIN, MANAGER)
// @Param       search query    string false "Case-insensitive name substring"
// @Success     200    {array}  model.Customer
// @Failure     400    {object} validation.PayloadError
// @Failure     502    {object} errors.QueryErr
// @Failure     500    {object} echo.HTTPError
// @Router      /api/customers [get]
func (h *CustomerHTTPHandler) GetAll(c echo.Context) error {
	q, err := h.bindQuery(c)
	if err != nil {
		return err
	}

	customers, err := h.customerSvc.Search(c.Request().Context(), q.filter(), q.Search)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customers)
}

// Refresh refetches customers
// @Summary     Refresh customers
// @Description Fetches customers of the given role from the network, cached result is replaced
// @Tags        customers
// @Produce     json
// @Param       role   query    string false "Role filter" Enums(ADMIN, MANAGER)
// @Success     200    {array}  model.Customer
// @Failure     400    {object} validation.PayloadError
// @Failure     502    {object} errors.QueryErr
// @Failure     500    {object} echo.HTTPError
// @Router      /api/customers/refresh [post]
func (h *CustomerHTTPHandler) Refresh(c echo.Context) error {
	q, err := h.bindQuery(c)
	if err != nil {
		return err
	}

	customers, err := h.customerSvc.Refresh(c.Request().Context(), q.filter())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customers)
}

func (h *CustomerHTTPHandler) bindQuery(c echo.Context) (customersQuery, error) {
	var q customersQuery
	err := echo.QueryParamsBinder(c).
		String("role", &q.Role).
		String("search", &q.Search).
		BindError()
	if err != nil {
		return q, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	q.Role = strings.ToUpper(strings.TrimSpace(q.Role))
	if err := c.Validate(&q); err != nil {
		return q, err
	}
	return q, nil
}
