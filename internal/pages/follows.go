package pages

import (
	sp "github.com/stickify/stickify-e2e/internal/screenplay"
)

// Follows page, listing other users
var (
	UserSearchInput = sp.NewTarget("user search field", "input.search-input")
	UserCard        = sp.NewTarget("user card", ".user-card")
	UserName        = sp.NewTarget("user name", ".user-card h3, .user-card .user-name")
	UserEmail       = sp.NewTarget("user email", ".user-card p")
	FollowButton    = sp.NewTarget("follow button", ".user-card .follow-button, .user-card .follow-btn")
	NoUsersMessage  = sp.NewTarget("no users message", ".no-users-message")
	FollowsTitle    = sp.NewTarget("search section title", ".search-section h2")
)

// OpenFollows navigates to the page listing other users
func OpenFollows(base string) sp.Action {
	return sp.Task("open the user list",
		sp.Open(URL(base, FollowsPath)),
		sp.WaitFor(FollowsTitle).ToAppear(),
	)
}

// SearchUser filters the user list by name or email
func SearchUser(term string) sp.Action {
	return sp.Requiring(
		sp.Task("search for the user "+term,
			sp.Enter(term).Into(UserSearchInput).ReplacingValue(),
			sp.WaitFor(UserCard).ToAppear(),
		),
		sp.SearchUsers,
	)
}

// ToggleFollow clicks the follow button of the first listed user. It
// follows or unfollows depending on the current state.
func ToggleFollow() sp.Action {
	return sp.Requiring(
		sp.Task("toggle following the first user", sp.Click(FollowButton)),
		sp.FollowUsers,
	)
}
