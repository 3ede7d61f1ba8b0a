package pages

import (
	sp "github.com/stickify/stickify-e2e/internal/screenplay"
)

// Profile page
var (
	ProfileTitle        = sp.NewTarget("profile title", ".profile-header h1")
	VerifiedBadge       = sp.NewTarget("verified account badge", ".security-badge")
	ProfileUsername     = sp.NewTarget("username text", "#userData .data-row:nth-of-type(1) span:last-child")
	ProfileEmail        = sp.NewTarget("email text", "#userData .data-row:nth-of-type(2) span:last-child")
	FollowersInfo       = sp.NewTarget("followers info", ".data-row .follow-info:nth-of-type(1)")
	FollowingInfo       = sp.NewTarget("following info", ".data-row .follow-info:nth-of-type(2)")
	SavedPlaylistsTitle = sp.NewTarget("saved playlists title", ".data-row i.fas.fa-music")
	SavedPlaylistCard   = sp.NewTarget("saved playlist card", ".playlist-grid .playlist-card")
	PremiumButton       = sp.NewTarget("premium button", "#premiumBtn")
	LogoutButton        = sp.NewTarget("logout button", "#logoutBtn")
	HomeButton          = sp.NewTarget("home button", "a.home-btn")
	PremiumModal        = sp.NewTarget("premium modal", "app-premium-payment")
)

// OpenProfile navigates to the signed-in user's profile
func OpenProfile(base string) sp.Action {
	return sp.Task("open the profile",
		sp.Open(URL(base, ProfilePath)),
		sp.WaitFor(ProfileTitle).ToAppear(),
	)
}

// LogOut signs out from the profile page and confirms the alert
func LogOut() sp.Action {
	return sp.Task("log out",
		sp.Click(LogoutButton),
		DismissAlert(),
	)
}

// ProfileShows checks the username and email on the profile
func ProfileShows(username, email string) sp.Action {
	return sp.Task("check the profile of "+username,
		TitleIs(ProfileUsername, username),
		TitleIs(ProfileEmail, email),
	)
}
