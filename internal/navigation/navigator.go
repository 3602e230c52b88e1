// Package navigation implements stack navigation between the app screens
package navigation

import (
	"fmt"

	"github.com/umalmyha/customers-viewer/internal/errors"
)

// Destination is named screen which can be navigated to
type Destination string

const (
	Home     Destination = "Home"
	UserList Destination = "UserList"
)

// InitialRoute is the screen shown when the app starts
const InitialRoute = Home

var titles = map[Destination]string{
	Home:     "Home",
	UserList: "User List",
}

// ParseDestination validates destination name
func ParseDestination(s string) (Destination, error) {
	d := Destination(s)
	if _, ok := titles[d]; !ok {
		return "", errors.NewBusinessErr("destination", fmt.Sprintf("unknown destination %q", s))
	}
	return d, nil
}

// Title returns header title of destination
func (d Destination) Title() string {
	return titles[d]
}

// Transition describes how stack changed after navigation
type Transition struct {
	From Destination
	To   Destination
	// Unmounted are destinations removed from the stack, their screens must be disposed
	Unmounted []Destination
}

// Navigator is stack navigator, it is not safe for concurrent use
type Navigator struct {
	stack []Destination
}

// NewNavigator builds navigator with initial route on the stack
func NewNavigator() *Navigator {
	return &Navigator{stack: []Destination{InitialRoute}}
}

// Current returns destination on top of the stack
func (n *Navigator) Current() Destination {
	return n.stack[len(n.stack)-1]
}

// Stack returns copy of the current stack, bottom first
func (n *Navigator) Stack() []Destination {
	s := make([]Destination, len(n.stack))
	copy(s, n.stack)
	return s
}

// CanGoBack reports whether there is screen to return to
func (n *Navigator) CanGoBack() bool {
	return len(n.stack) > 1
}

// Navigate moves to destination. If destination is already on the stack
// navigator pops back to it, otherwise destination is pushed.
func (n *Navigator) Navigate(d Destination) (Transition, error) {
	if _, ok := titles[d]; !ok {
		return Transition{}, errors.NewBusinessErr("destination", fmt.Sprintf("unknown destination %q", d))
	}

	t := Transition{From: n.Current(), To: d}
	for i := len(n.stack) - 1; i >= 0; i-- {
		if n.stack[i] == d {
			t.Unmounted = append(t.Unmounted, n.stack[i+1:]...)
			n.stack = n.stack[:i+1]
			return t, nil
		}
	}

	n.stack = append(n.stack, d)
	return t, nil
}

// Back pops current destination unless it is the root one
func (n *Navigator) Back() Transition {
	t := Transition{From: n.Current(), To: n.Current()}
	if !n.CanGoBack() {
		return t
	}

	n.stack = n.stack[:len(n.stack)-1]
	t.To = n.Current()
	t.Unmounted = []Destination{t.From}
	return t
}
