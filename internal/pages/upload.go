package pages

import (
	"time"

	sp "github.com/stickify/stickify-e2e/internal/screenplay"
)

// Upload page
var (
	UploadForm     = sp.NewTarget("upload form", ".upload-form")
	UploadTitle    = sp.NewTarget("upload title", ".upload-form h2")
	ArtistInput    = sp.NewTarget("artist name input", "#artistName")
	TrackInput     = sp.NewTarget("track name input", "#trackName")
	AlbumInput     = sp.NewTarget("album name input", "#collectionName")
	GenreInput     = sp.NewTarget("genre input", "#primaryGenreName")
	CoverFileInput = sp.NewTarget("cover image file input", "#artworkFile")
	CoverLabel     = sp.NewTarget("cover upload label", ".file-upload-label")
	PreviewImage   = sp.NewTarget("image preview", ".image-preview")
	UploadButton   = sp.NewTarget("upload song button", "#uploadButton")
	UploadSuccess  = sp.NewTarget("upload success message", ".upload-success")
)

// Song is what the upload form asks for
type Song struct {
	Artist string `yaml:"artist"`
	Track  string `yaml:"track"`
	Album  string `yaml:"album"`
	Genre  string `yaml:"genre"`
	Cover  string `yaml:"cover"` // local path of the artwork image
}

// uploadTimeout covers the backend storing the artwork
const uploadTimeout = 30 * time.Second

// OpenUploadForm navigates to the upload page and waits for its form
func OpenUploadForm(base string) sp.Action {
	return sp.Requiring(
		sp.Task("open the upload form",
			sp.Open(URL(base, UploadPath)),
			sp.WaitFor(UploadForm).ToAppear(),
		),
		sp.UploadSongs,
	)
}

// FillUploadForm types the song details and picks the cover. Empty fields
// are left untouched so incomplete uploads can be tried.
func FillUploadForm(song Song) sp.Action {
	var steps []sp.Step
	for _, f := range []struct {
		value  string
		target sp.Target
	}{
		{song.Artist, ArtistInput},
		{song.Track, TrackInput},
		{song.Album, AlbumInput},
		{song.Genre, GenreInput},
	} {
		if f.value != "" {
			steps = append(steps, sp.Enter(f.value).Into(f.target).ReplacingValue())
		}
	}
	if song.Cover != "" {
		steps = append(steps,
			sp.Upload(song.Cover).Into(CoverFileInput),
			sp.WaitFor(PreviewImage).ToAppear(),
		)
	}
	return sp.Requiring(sp.Task("fill in the upload form", steps...), sp.UploadSongs)
}

// UploadSong fills the form, submits it and waits for the backend to
// confirm the upload.
func UploadSong(base string, song Song) sp.Action {
	return sp.Requiring(
		sp.Task("upload the song "+song.Track,
			OpenUploadForm(base),
			FillUploadForm(song),
			sp.Click(UploadButton),
			sp.WaitFor(LoaderAlert).ToDisappear().Within(uploadTimeout),
			sp.WaitFor(SweetAlert).ToAppear(),
		),
		sp.UploadSongs,
	)
}
