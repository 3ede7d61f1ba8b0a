package pages

import (
	sp "github.com/stickify/stickify-e2e/internal/screenplay"
)

// Sign-up page
var (
	UsernameField       = sp.NewTarget("username field", "input[formControlName='username']")
	RepeatPasswordField = sp.NewTarget("repeat password field", "input[formControlName='repeatPassword']")
	PremiumOption       = sp.NewTarget("premium option button", ".premium-option .button")
	SignUpButton        = sp.NewTarget("sign-up button", "button[type='submit']")
	LoginLink           = sp.NewTarget("login link", "a[routerlink='/log-in']")
	SignUpTitle         = sp.NewTarget("sign-up title", "h1")
)

// SignUp registers a new account through the sign-up form. A premium account
// also picks the premium option before submitting.
func SignUp(base, username, email, password string, premium bool) sp.Action {
	steps := []sp.Step{
		sp.Open(URL(base, SignUpPath)),
		sp.Enter(username).Into(UsernameField),
		sp.Enter(email).Into(EmailField),
		sp.EnterSecret(password).Into(PasswordField),
		sp.EnterSecret(password).Into(RepeatPasswordField),
	}
	if premium {
		steps = append(steps, sp.Click(PremiumOption))
	}
	steps = append(steps, sp.Click(SignUpButton))
	return sp.Task("sign up as "+username, steps...)
}
