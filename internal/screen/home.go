// Package screen contains view models of the app screens
package screen

// HomeTitle is header title of home screen
const HomeTitle = "Home"

// HomeView is rendering snapshot of landing screen
type HomeView struct {
	Welcome     string
	ActionLabel string
}

// Home is landing screen, it only offers navigation to the user list
type Home struct{}

func (Home) View() HomeView {
	return HomeView{
		Welcome:     "Welcome to the Home Screen!",
		ActionLabel: "Go to User List",
	}
}
