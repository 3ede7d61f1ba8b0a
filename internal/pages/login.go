package pages

import (
	sp "github.com/stickify/stickify-e2e/internal/screenplay"
)

// Login page
var (
	EmailField    = sp.NewTarget("email field", "input[formControlName='email']")
	PasswordField = sp.NewTarget("password field", "input[formControlName='password']")
	LoginButton   = sp.NewTarget("login button", "button[type='submit']")
	SignUpLink    = sp.NewTarget("sign-up link", "a[routerlink='/sign-up']")
	BackButton    = sp.NewTarget("back button", "a.button.secondary")
	LoginTitle    = sp.NewTarget("login title", "h1")
)

// FillLogin types credentials into the login form without submitting it
func FillLogin(email, password string) sp.Action {
	return sp.Task("fill in the login form as "+email,
		sp.Enter(email).Into(EmailField).ReplacingValue(),
		sp.EnterSecret(password).Into(PasswordField).ReplacingValue(),
	)
}

// LogIn opens the login page of the front end at base, submits the
// credentials and confirms the welcome alert.
func LogIn(base, email, password string) sp.Action {
	return sp.Task("log in as "+email,
		sp.Open(URL(base, LoginPath)),
		FillLogin(email, password),
		sp.Click(LoginButton),
		DismissAlert(),
	)
}

// SubmitLogin fills and submits the form but leaves any alert open, for
// scenarios that inspect the outcome themselves
func SubmitLogin(base, email, password string) sp.Action {
	return sp.Task("submit the login form as "+email,
		sp.Open(URL(base, LoginPath)),
		FillLogin(email, password),
		sp.Click(LoginButton),
	)
}
