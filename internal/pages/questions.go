package pages

import (
	"context"
	"fmt"
	"strings"

	sp "github.com/stickify/stickify-e2e/internal/screenplay"
)

var browsing = []sp.AbilityKind{sp.BrowseTheWeb}

// SongUploadConfirmation answers whether the upload success message is on
// the page
func SongUploadConfirmation() sp.Question[bool] {
	return sp.QuestionFunc[bool]{
		Desc:     "whether the upload success message is shown",
		Requires: browsing,
		Answer: func(ctx context.Context, actor sp.Abilities) (bool, error) {
			n, err := sp.NumberOf(UploadSuccess).AnsweredBy(ctx, actor)
			return n > 0, err
		},
	}
}

// IsFollowingUser answers whether the first listed user whose name contains
// username (ignoring case) shows a "following" button. A user missing from
// the list is not followed.
func IsFollowingUser(username string) sp.Question[bool] {
	return sp.QuestionFunc[bool]{
		Desc:     fmt.Sprintf("whether the user %q is followed", username),
		Requires: browsing,
		Answer: func(ctx context.Context, actor sp.Abilities) (bool, error) {
			names, err := sp.TextOfAll(UserName).AnsweredBy(ctx, actor)
			if err != nil {
				return false, err
			}
			buttons, err := sp.TextOfAll(FollowButton).AnsweredBy(ctx, actor)
			if err != nil {
				return false, err
			}
			want := strings.ToLower(username)
			for i, name := range names {
				if !strings.Contains(strings.ToLower(name), want) {
					continue
				}
				if i >= len(buttons) {
					return false, nil
				}
				switch strings.ToLower(strings.TrimSpace(buttons[i])) {
				case "siguiendo", "following":
					return true, nil
				}
				return false, nil
			}
			return false, nil
		},
	}
}

// PlaylistCount answers how many user playlists are listed
func PlaylistCount() sp.Question[int] {
	count := sp.NumberOf(UserPlaylistCard)
	return sp.QuestionFunc[int]{
		Desc:     "the number of playlists",
		Requires: browsing,
		Answer:   count.AnsweredBy,
	}
}

// SavedPlaylistCount answers how many playlists are saved on the profile
func SavedPlaylistCount() sp.Question[int] {
	count := sp.NumberOf(SavedPlaylistCard)
	return sp.QuestionFunc[int]{
		Desc:     "the number of saved playlists",
		Requires: browsing,
		Answer:   count.AnsweredBy,
	}
}
