package screen

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	appErrors "github.com/umalmyha/customers-viewer/internal/errors"
	"github.com/umalmyha/customers-viewer/internal/filter"
	"github.com/umalmyha/customers-viewer/internal/metrics"
	"github.com/umalmyha/customers-viewer/internal/model"
	"github.com/umalmyha/customers-viewer/internal/service"
)

// UserListTitle is header title of user list screen
const UserListTitle = "User List"

// RefreshState is state of pull to refresh lifecycle
type RefreshState int

const (
	RefreshIdle RefreshState = iota
	RefreshRefreshing
)

func (s RefreshState) String() string {
	if s == RefreshRefreshing {
		return "refreshing"
	}
	return "idle"
}

// refreshCall is refresh request shared by all callers which joined it
type refreshCall struct {
	done      chan struct{}
	seq       uint64
	customers []model.Customer
	err       error
}

// UserList holds state of customers list screen: selected role, search text and last fetched records.
// Every request gets a sequence number and only the response of the latest issued request is applied.
type UserList struct {
	customerSvc service.CustomerService
	recorder    *metrics.Recorder
	logger      logrus.FieldLogger

	mu         sync.Mutex
	role       *model.Role
	search     string
	records    []model.Customer
	err        error
	loading    bool
	refreshers int
	inflight   *refreshCall
	issued     uint64
	applied    uint64
	closed     bool
}

// NewUserList builds screen with no role selected and empty search
func NewUserList(customerSvc service.CustomerService, recorder *metrics.Recorder, logger logrus.FieldLogger) *UserList {
	return &UserList{
		customerSvc: customerSvc,
		recorder:    recorder,
		logger:      logger.WithField("screen", "UserList"),
	}
}

// Load issues query for currently selected role, it is called once screen is mounted
func (u *UserList) Load(ctx context.Context) error {
	u.mu.Lock()
	f := u.filterLocked()
	seq := u.issueLocked()
	u.loading = true
	u.mu.Unlock()

	return u.fetch(ctx, f, seq)
}

// SelectRole selects role and refetches listing restricted by it.
// Selecting already selected role does nothing.
func (u *UserList) SelectRole(ctx context.Context, role model.Role) error {
	u.mu.Lock()
	if u.role != nil && *u.role == role {
		u.mu.Unlock()
		return nil
	}

	u.role = &role
	f := u.filterLocked()
	seq := u.issueLocked()
	u.loading = true
	u.mu.Unlock()

	u.logger.WithField("role", role).Debug("role filter changed")
	return u.fetch(ctx, f, seq)
}

// SetSearch updates search text, listing is narrowed on the next view without any request
func (u *UserList) SetSearch(text string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.search = text
}

// Refresh refetches listing from backend bypassing cache.
// Refresh requested while another one is in flight joins it instead of sending one more request.
// Refresh state always returns to idle, whether request succeeded or not.
// Cancellation of ctx only stops waiting, the refetch itself completes and is applied.
func (u *UserList) Refresh(ctx context.Context) error {
	u.mu.Lock()
	u.refreshers++
	call := u.inflight
	leader := call == nil
	if leader {
		call = &refreshCall{done: make(chan struct{}), seq: u.issueLocked()}
		u.inflight = call
	}
	f := u.filterLocked()
	u.mu.Unlock()

	defer func() {
		u.mu.Lock()
		u.refreshers--
		u.mu.Unlock()
	}()

	if leader {
		call.customers, call.err = u.customerSvc.Refresh(context.WithoutCancel(ctx), f)

		u.mu.Lock()
		u.inflight = nil
		u.mu.Unlock()
		close(call.done)
	} else {
		select {
		case <-call.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	u.apply(call.seq, call.customers, call.err)
	if leader {
		u.recorder.Refresh(call.err)
	}
	return call.err
}

// RefreshState returns current refresh lifecycle state
func (u *UserList) RefreshState() RefreshState {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.refreshers > 0 {
		return RefreshRefreshing
	}
	return RefreshIdle
}

// SelectedRole returns selected role, nil if none selected
func (u *UserList) SelectedRole() *model.Role {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.role == nil {
		return nil
	}
	r := *u.role
	return &r
}

// Visible returns fetched records narrowed by current search text
func (u *UserList) Visible() []model.Customer {
	u.mu.Lock()
	defer u.mu.Unlock()
	return filter.Visible(u.records, u.search)
}

// Close unmounts screen, fetched records are discarded and late responses are ignored
func (u *UserList) Close() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.closed = true
	u.records = nil
	u.err = nil
}

// View builds snapshot of the screen for rendering
func (u *UserList) View() UserListView {
	u.mu.Lock()
	defer u.mu.Unlock()

	v := UserListView{
		Title:      "All Users",
		Search:     u.search,
		Loading:    u.loading,
		Refreshing: u.refreshers > 0,
	}

	if u.role != nil {
		v.Title = string(*u.role) + " Users"
	}

	for _, r := range model.RoleOptions {
		v.Roles = append(v.Roles, RoleOption{
			Label:    r.Label(),
			Value:    string(r),
			Selected: u.role != nil && strings.EqualFold(string(*u.role), r.Label()),
		})
	}

	if u.err != nil {
		v.Error = errorMessage(u.err)
		return v
	}

	visible := filter.Visible(u.records, u.search)
	v.Items = make([]ItemView, 0, len(visible))
	for _, c := range visible {
		v.Items = append(v.Items, ItemView{
			ID:      c.ID,
			Name:    c.Name,
			Role:    c.Role,
			Initial: initial(c.Name),
		})
	}
	return v
}

// fetch outlives cancellation of the caller, the query itself is bounded by the client timeout
func (u *UserList) fetch(ctx context.Context, f model.RoleFilter, seq uint64) error {
	customers, err := u.customerSvc.FindAll(context.WithoutCancel(ctx), f)
	u.apply(seq, customers, err)
	return err
}

func (u *UserList) apply(seq uint64, customers []model.Customer, err error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.closed || seq < u.issued {
		u.recorder.StaleResponse()
		u.logger.WithFields(logrus.Fields{"seq": seq, "latest": u.issued}).Debug("stale response discarded")
		return
	}

	if seq == u.applied {
		return
	}

	u.applied = seq
	u.loading = false
	if err != nil {
		u.err = err
		u.logger.WithError(err).Error("query failed")
		return
	}

	u.err = nil
	u.records = customers
	u.logger.WithField("count", len(customers)).Debug("data fetched")
}

func (u *UserList) issueLocked() uint64 {
	u.issued++
	return u.issued
}

func (u *UserList) filterLocked() model.RoleFilter {
	if u.role == nil {
		return model.NoRoleFilter()
	}
	return model.RoleFilterOf(*u.role)
}

// errorMessage returns message of the query error as is, wrapping context is dropped
func errorMessage(err error) string {
	var qe *appErrors.QueryErr
	if errors.As(err, &qe) {
		return qe.Error()
	}
	return err.Error()
}

func initial(name string) string {
	if name == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return strings.ToUpper(string(r))
}

// RoleOption is selectable role toggle
type RoleOption struct {
	Label    string
	Value    string
	Selected bool
}

// ItemView is single rendered customer row
type ItemView struct {
	ID      string
	Name    string
	Role    string
	Initial string
}

// UserListView is rendering snapshot of UserList
type UserListView struct {
	Title      string
	Search     string
	Roles      []RoleOption
	Items      []ItemView
	Loading    bool
	Refreshing bool
	Error      string
}

// HasError reports whether error message replaces the list
func (v UserListView) HasError() bool {
	return v.Error != ""
}
