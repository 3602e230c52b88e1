package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/customers-viewer/internal/middleware"
	"github.com/umalmyha/customers-viewer/internal/model"
	"github.com/umalmyha/customers-viewer/internal/navigation"
	"github.com/umalmyha/customers-viewer/internal/screen"
	"github.com/umalmyha/customers-viewer/internal/session"
)

var destinationPaths = map[navigation.Destination]string{
	navigation.Home:     "/",
	navigation.UserList: "/users",
}

type page struct {
	Title     string
	CanGoBack bool
	Home      screen.HomeView
	UserList  screen.UserListView
}

type searchQuery struct {
	Search string `query:"search" validate:"max=256"`
}

type roleForm struct {
	Role string `form:"role" validate:"required,oneof=ADMIN MANAGER"`
}

// ScreenHTTPHandler renders app screens for the visitor session
type ScreenHTTPHandler struct {
	logger logrus.FieldLogger
}

// NewScreenHTTPHandler builds new ScreenHTTPHandler
func NewScreenHTTPHandler(logger logrus.FieldLogger) *ScreenHTTPHandler {
	return &ScreenHTTPHandler{logger: logger.WithField("component", "screens")}
}

// Home renders home screen
func (h *ScreenHTTPHandler) Home(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}

	if err := sess.Navigate(c.Request().Context(), navigation.Home); err != nil {
		return err
	}

	return c.Render(http.StatusOK, "home", &page{
		Title:     navigation.Home.Title(),
		CanGoBack: sess.CanGoBack(),
		Home:      screen.Home{}.View(),
	})
}

// UserList renders user list screen, search text is updated when search query parameter is present
func (h *ScreenHTTPHandler) UserList(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}

	var q searchQuery
	if err := echo.QueryParamsBinder(c).String("search", &q.Search).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&q); err != nil {
		return err
	}

	ul, err := h.mountUserList(c, sess)
	if err != nil {
		return err
	}

	if c.QueryParams().Has("search") {
		ul.SetSearch(q.Search)
	}

	return c.Render(http.StatusOK, "userlist", &page{
		Title:     navigation.UserList.Title(),
		CanGoBack: sess.CanGoBack(),
		UserList:  ul.View(),
	})
}

// SelectRole switches role filter of the user list
func (h *ScreenHTTPHandler) SelectRole(c echo.Context) error {
	var rf roleForm
	if err := c.Bind(&rf); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rf.Role = strings.ToUpper(strings.TrimSpace(rf.Role))

	if err := c.Validate(&rf); err != nil {
		return err
	}

	sess, err := h.session(c)
	if err != nil {
		return err
	}

	ul, err := h.mountUserList(c, sess)
	if err != nil {
		return err
	}

	if err := ul.SelectRole(c.Request().Context(), model.Role(rf.Role)); err != nil {
		h.logger.WithError(err).WithField("session", sess.ID).Debug("role query failed")
	}
	return c.Redirect(http.StatusSeeOther, destinationPaths[navigation.UserList])
}

// Refresh refetches records of the user list
func (h *ScreenHTTPHandler) Refresh(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}

	ul, err := h.mountUserList(c, sess)
	if err != nil {
		return err
	}

	if err := ul.Refresh(c.Request().Context()); err != nil {
		h.logger.WithError(err).WithField("session", sess.ID).Debug("refresh failed")
	}
	return c.Redirect(http.StatusSeeOther, destinationPaths[navigation.UserList])
}

// Back navigates to the previous screen
func (h *ScreenHTTPHandler) Back(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, destinationPaths[sess.Back()])
}

func (h *ScreenHTTPHandler) session(c echo.Context) (*session.Session, error) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "visitor session is missing")
	}
	return sess, nil
}

func (h *ScreenHTTPHandler) mountUserList(c echo.Context, sess *session.Session) (*screen.UserList, error) {
	if err := sess.Navigate(c.Request().Context(), navigation.UserList); err != nil {
		return nil, err
	}

	ul := sess.UserList()
	if ul == nil {
		return nil, echo.NewHTTPError(http.StatusConflict, "user list is not mounted")
	}
	return ul, nil
}
