package pages

import (
	sp "github.com/stickify/stickify-e2e/internal/screenplay"
)

// Home page and the navigation shared by the signed-in pages
var (
	SongCard       = sp.NewTarget("song card", "app-song-card")
	SongTitle      = sp.NewTarget("song title inside card", "app-song-card h3, app-song-card .song-title")
	NextPage       = sp.NewTarget("next page button", "app-pagination button.next, .pagination-next")
	PreviousPage   = sp.NewTarget("previous page button", "app-pagination button.prev, .pagination-prev")
	MusicResults   = sp.NewTarget("music results section", "#musicResults")
	Header         = sp.NewTarget("header component", "app-header")
	Aside          = sp.NewTarget("aside component", "app-aside")
	Nav            = sp.NewTarget("navigation component", "app-nav")
	SongModal      = sp.NewTarget("song modal", "app-song-modal")
	SearchInput    = sp.NewTarget("search input", "input[type='search']")
	HomeLink       = sp.NewTarget("home link", ".link-home")
	PlaylistLink   = sp.NewTarget("playlist link", ".link-playlist")
	UserFollowLink = sp.NewTarget("user follows link", ".link-user-follows")
)

// SearchFor types a query into the header search box
func SearchFor(query string) sp.Action {
	return sp.Requiring(
		sp.Task("search for "+query,
			sp.Enter(query).Into(SearchInput).ReplacingValue(),
			sp.WaitFor(MusicResults).ToAppear(),
		),
		sp.SearchMusic,
	)
}

// OpenFirstSong opens the modal of the first song card
func OpenFirstSong() sp.Action {
	return sp.Task("open the first song",
		sp.Click(SongCard),
		sp.WaitFor(SongModal).ToAppear(),
	)
}
