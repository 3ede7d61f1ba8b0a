package pages

import (
	"fmt"
	"maps"
	"slices"

	sp "github.com/stickify/stickify-e2e/internal/screenplay"
)

// Catalog names every target scenarios may refer to, as "<page>.<element>"
var Catalog = map[string]sp.Target{
	"alert":         SweetAlert,
	"alert.title":   SweetAlertTitle,
	"alert.ok":      SweetAlertOKButton,
	"alert.loader":  LoaderAlert,
	"alert.message": FlashMessage,

	"login.email":    EmailField,
	"login.password": PasswordField,
	"login.submit":   LoginButton,
	"login.signup":   SignUpLink,
	"login.back":     BackButton,
	"login.title":    LoginTitle,

	"signup.username":        UsernameField,
	"signup.email":           EmailField,
	"signup.password":        PasswordField,
	"signup.repeat_password": RepeatPasswordField,
	"signup.premium":         PremiumOption,
	"signup.submit":          SignUpButton,
	"signup.login":           LoginLink,
	"signup.title":           SignUpTitle,

	"home.song_card":     SongCard,
	"home.song_title":    SongTitle,
	"home.next":          NextPage,
	"home.previous":      PreviousPage,
	"home.results":       MusicResults,
	"home.header":        Header,
	"home.aside":         Aside,
	"home.nav":           Nav,
	"home.song_modal":    SongModal,
	"home.search":        SearchInput,
	"nav.home":           HomeLink,
	"nav.playlists":      PlaylistLink,
	"nav.follows":        UserFollowLink,
	"upload.form":        UploadForm,
	"upload.title":       UploadTitle,
	"upload.artist":      ArtistInput,
	"upload.track":       TrackInput,
	"upload.album":       AlbumInput,
	"upload.genre":       GenreInput,
	"upload.cover":       CoverFileInput,
	"upload.cover_label": CoverLabel,
	"upload.preview":     PreviewImage,
	"upload.submit":      UploadButton,
	"upload.success":     UploadSuccess,

	"playlists.create":         CreatePlaylistButton,
	"playlists.modal":          PlaylistModal,
	"playlists.modal_close":    CloseModalButton,
	"playlists.name":           PlaylistNameInput,
	"playlists.song_card":      ModalSongCard,
	"playlists.save":           SavePlaylistButton,
	"playlists.user_title":     UserPlaylistsTitle,
	"playlists.user_card":      UserPlaylistCard,
	"playlists.save_profile":   SaveToProfileButton,
	"playlists.auto_title":     AutoPlaylistsTitle,
	"playlists.auto_card":      AutoPlaylistCard,
	"profile.title":            ProfileTitle,
	"profile.verified":         VerifiedBadge,
	"profile.username":         ProfileUsername,
	"profile.email":            ProfileEmail,
	"profile.followers":        FollowersInfo,
	"profile.following":        FollowingInfo,
	"profile.saved_title":      SavedPlaylistsTitle,
	"profile.saved_card":       SavedPlaylistCard,
	"profile.premium":          PremiumButton,
	"profile.logout":           LogoutButton,
	"profile.home":             HomeButton,
	"profile.premium_modal":    PremiumModal,
	"follows.search":           UserSearchInput,
	"follows.user_card":        UserCard,
	"follows.user_name":        UserName,
	"follows.user_email":       UserEmail,
	"follows.follow":           FollowButton,
	"follows.no_users_message": NoUsersMessage,
	"follows.title":            FollowsTitle,
}

// Lookup returns the catalog target called name
func Lookup(name string) (sp.Target, error) {
	t, ok := Catalog[name]
	if !ok {
		return sp.Target{}, fmt.Errorf("unknown target %q", name)
	}
	return t, nil
}

// Names lists the catalog in sorted order
func Names() []string {
	return slices.Sorted(maps.Keys(Catalog))
}
