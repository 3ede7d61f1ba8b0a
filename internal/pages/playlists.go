package pages

import (
	sp "github.com/stickify/stickify-e2e/internal/screenplay"
)

// Playlists page
var (
	CreatePlaylistButton = sp.NewTarget("create playlist button", ".create-playlist-button")
	PlaylistModal        = sp.NewTarget("playlist creation modal", ".modal")
	CloseModalButton     = sp.NewTarget("close modal button", ".modal .close")
	PlaylistNameInput    = sp.NewTarget("playlist name input", ".playlist-name-input")
	ModalSongCard        = sp.NewTarget("song card in modal", ".songs-grid .song-card")
	SavePlaylistButton   = sp.NewTarget("save playlist button", ".save-playlist")
	UserPlaylistsTitle   = sp.NewTarget("user playlists section title", "h1.playlist-title:nth-of-type(1)")
	UserPlaylistCard     = sp.NewTarget("user playlist card", ".playlist-grid:nth-of-type(1) .playlist-card")
	SaveToProfileButton  = sp.NewTarget("save playlist to profile button", ".save-playlist-profile")
	AutoPlaylistsTitle   = sp.NewTarget("automatic playlists section title", "h1.playlist-title:nth-of-type(2)")
	AutoPlaylistCard     = sp.NewTarget("automatic playlist card", ".playlist-grid:nth-of-type(2) .playlist-card")
)

// OpenPlaylists navigates to the playlists page
func OpenPlaylists(base string) sp.Action {
	return sp.Task("open the playlists page",
		sp.Open(URL(base, PlaylistsPath)),
		sp.WaitFor(UserPlaylistsTitle).ToAppear(),
	)
}

// CreatePlaylist creates a playlist called name holding the first song on
// offer, and confirms the success alert.
func CreatePlaylist(name string) sp.Action {
	return sp.Requiring(
		sp.Task("create the playlist "+name,
			sp.Click(CreatePlaylistButton),
			sp.WaitFor(PlaylistModal).ToAppear(),
			sp.Enter(name).Into(PlaylistNameInput),
			sp.Click(ModalSongCard),
			sp.Click(SavePlaylistButton),
			DismissAlert(),
		),
		sp.ManagePlaylists,
	)
}

// SaveFirstPlaylistToProfile saves the first user playlist to the profile
func SaveFirstPlaylistToProfile() sp.Action {
	return sp.Requiring(
		sp.Task("save a playlist to the profile",
			sp.ScrollTo(SaveToProfileButton),
			sp.Click(SaveToProfileButton),
		),
		sp.SavePlaylistToProfile,
	)
}

// ClosePlaylistModal dismisses the creation modal without saving
func ClosePlaylistModal() sp.Action {
	return sp.Task("close the playlist modal",
		sp.Click(CloseModalButton),
		sp.WaitFor(PlaylistModal).ToDisappear(),
	)
}
