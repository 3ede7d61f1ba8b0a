package pages

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"

	sp "github.com/stickify/stickify-e2e/internal/screenplay"
)

// Backend routes, relative to the API base URL
const (
	LoginRoute     = "/auth/login"
	SignUpRoute    = "/auth/sign-up"
	UsersRoute     = "/users"
	PlaylistsRoute = "/playlists"
	RatingsRoute   = "/ratings"
)

// EmailFor maps a bare username to the address sign-up gives it
func EmailFor(username string) string {
	if strings.Contains(username, "@") {
		return username
	}
	return username + "@example.com"
}

// LoginThroughAPI logs in against the backend and authenticates later API
// calls with the returned token. A bare username is taken as
// <username>@example.com.
func LoginThroughAPI(username, password string) sp.Action {
	return sp.Task("log in through the API as "+username,
		sp.Post(LoginRoute, map[string]string{"email": EmailFor(username), "password": password}),
		expectStatus(http.StatusOK, http.StatusCreated),
		sp.AuthenticateWithLastResponse("token"),
	)
}

// SignUpThroughAPI registers an account against the backend. The created
// user is then looked up by email, so the last response holds its record.
func SignUpThroughAPI(username, email, password string, premium bool) sp.Action {
	if email == "" {
		email = EmailFor(username)
	}
	return sp.Task("sign up through the API as "+username,
		sp.Post(SignUpRoute, map[string]any{
			"name":     username,
			"username": username,
			"email":    email,
			"password": password,
			"premium":  premium,
		}),
		expectStatus(http.StatusOK, http.StatusCreated),
		sp.Get(UsersRoute+"/by-email/"+url.PathEscape(email)),
		expectStatus(http.StatusOK),
	)
}

// FollowUserThroughAPI makes the user with id follow the user with email
func FollowUserThroughAPI(followerID, targetEmail string) sp.Action {
	return sp.Requiring(
		sp.Task("follow "+targetEmail+" through the API",
			sp.Put(UsersRoute+"/"+url.PathEscape(followerID)+"/follow", map[string]any{
				"targetEmail": targetEmail,
				"follow":      true,
			}),
			expectStatus(http.StatusOK),
		),
		sp.FollowUsers,
	)
}

// RateSongThroughAPI stores a rating of trackID by userID
func RateSongThroughAPI(userID string, trackID, rating int) sp.Action {
	return sp.Requiring(
		sp.Task(fmt.Sprintf("rate track %d with %d stars", trackID, rating),
			sp.Post(RatingsRoute, map[string]any{"userId": userID, "trackId": trackID, "rating": rating}),
			expectStatus(http.StatusOK, http.StatusCreated),
		),
		sp.RateAndComment,
	)
}

func expectStatus(codes ...int) sp.Step {
	return sp.See(sp.LastResponseStatus(), statusIn(codes))
}

type statusIn []int

func (s statusIn) Description() string { return fmt.Sprintf("to be one of %v", []int(s)) }
func (s statusIn) Expected() any       { return []int(s) }

func (s statusIn) Resolve(code int) bool { return slices.Contains(s, code) }

// CurrentUserID answers the id of the user record in the last response
func CurrentUserID() sp.Question[string] {
	field := sp.LastResponseField("id")
	return sp.QuestionFunc[string]{
		Desc:     "the id of the current user",
		Requires: []sp.AbilityKind{sp.InteractWithAPI},
		Answer: func(ctx context.Context, actor sp.Abilities) (string, error) {
			id, err := field.AnsweredBy(ctx, actor)
			if err == nil && id == "" {
				err = fmt.Errorf("last response has no id")
			}
			return id, err
		},
	}
}
