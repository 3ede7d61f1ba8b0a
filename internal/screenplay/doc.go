// Package screenplay drives a browser on a test author's behalf using the
// Screenplay pattern.
//
// An Actor holds Abilities, attempts Actions and checks Questions against
// Resolutions. Everything an actor does goes through one entry point,
// AttemptsTo, which runs an ordered task list and stops at the first failure.
//
// # Abilities
//
// Ability kinds form a closed set (BrowseTheWeb, UploadSongs, ...). An actor
// holds at most one ability per kind. Some abilities own a resource, such as
// the browser session held by BrowseTheWebAbility; others are markers that
// only gate what the actor may attempt. Every step declares the kinds it
// needs and the actor refuses the step before running it if one is missing.
//
// # Targets
//
// A Target is a named CSS locator resolved against the current page each time
// it is used. Zero matches for a First or Single target is an
// ElementNotFoundError; a driver failure on a found element is an
// ElementNotInteractableError.
//
// # Errors
//
// Each failed step is returned as an *ActionFailedError carrying the step
// index and description. Use errors.As to reach the cause:
// *MissingAbilityError, *AssertionFailedError, *TimeoutError,
// *ElementNotFoundError or *ElementNotInteractableError.
//
// # Example
//
//	actor := screenplay.Named("Tester")
//	if err := actor.WhoCan(screenplay.BrowseTheWebWith(driver)); err != nil {
//	    return err
//	}
//	defer actor.Exit()
//
//	err := actor.AttemptsTo(ctx,
//	    screenplay.Open("http://localhost:4200/log-in"),
//	    screenplay.Enter("pol@correo.com").Into(pages.EmailField),
//	    screenplay.EnterSecret("pol123").Into(pages.PasswordField),
//	    screenplay.Click(pages.LoginButton),
//	    screenplay.See(screenplay.TextOf(pages.FlashMessage), screenplay.ContainsTheText("invalid")),
//	)
package screenplay
