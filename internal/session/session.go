package session

import (
	"context"
	"sync"
	"time"

	"github.com/umalmyha/customers-viewer/internal/navigation"
	"github.com/umalmyha/customers-viewer/internal/screen"
)

// UserListFactory builds fresh user list screen each time it is mounted
type UserListFactory func() *screen.UserList

// Session is state of a single visitor: navigation stack and mounted screens
type Session struct {
	ID string

	mu          sync.Mutex
	nav         *navigation.Navigator
	userList    *screen.UserList
	newUserList UserListFactory
	lastSeen    time.Time
}

func newSession(id string, newUserList UserListFactory, now time.Time) *Session {
	return &Session{
		ID:          id,
		nav:         navigation.NewNavigator(),
		newUserList: newUserList,
		lastSeen:    now,
	}
}

// Current returns destination visitor is looking at
func (s *Session) Current() navigation.Destination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Current()
}

// CanGoBack reports whether back navigation is possible
func (s *Session) CanGoBack() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.CanGoBack()
}

// UserList returns mounted user list screen, nil if it is not on the stack
func (s *Session) UserList() *screen.UserList {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userList
}

// Navigate moves visitor to destination. User list screen is mounted and loaded
// when it appears on the stack and disposed when it leaves it.
func (s *Session) Navigate(ctx context.Context, d navigation.Destination) error {
	s.mu.Lock()
	t, err := s.nav.Navigate(d)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.unmountLocked(t.Unmounted)
	mounted := s.mountLocked(t.To)
	s.mu.Unlock()

	if mounted != nil {
		// query failure is kept by the screen and rendered as its error state
		_ = mounted.Load(ctx)
	}
	return nil
}

// Back returns to previous destination
func (s *Session) Back() navigation.Destination {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.nav.Back()
	s.unmountLocked(t.Unmounted)
	return t.To
}

// Close disposes all mounted screens
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unmountLocked([]navigation.Destination{navigation.UserList})
}

func (s *Session) mountLocked(d navigation.Destination) *screen.UserList {
	if d != navigation.UserList || s.userList != nil {
		return nil
	}
	s.userList = s.newUserList()
	return s.userList
}

func (s *Session) unmountLocked(ds []navigation.Destination) {
	for _, d := range ds {
		if d == navigation.UserList && s.userList != nil {
			s.userList.Close()
			s.userList = nil
		}
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
