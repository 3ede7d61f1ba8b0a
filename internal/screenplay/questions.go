package screenplay

import (
	"context"
	"fmt"
)

// Roles answered by UserRole
const (
	RolePremium  = "Premium"
	RoleStandard = "Standard"
)

// TextOf answers the text of the first match of target
func TextOf(target Target) Question[string] {
	return QuestionFunc[string]{
		Desc:     fmt.Sprintf("the text of %s", target),
		Requires: browsing,
		Answer: func(ctx context.Context, actor Abilities) (string, error) {
			driver, err := DriverOf(actor)
			if err != nil {
				return "", err
			}
			el, err := target.ResolveOne(ctx, driver)
			if err != nil {
				return "", err
			}
			return el.Text(ctx)
		},
	}
}

// TextOfAll answers the text of every match of target, in page order
func TextOfAll(target Target) Question[[]string] {
	target = target.All()
	return QuestionFunc[[]string]{
		Desc:     fmt.Sprintf("the text of all %s", target.name),
		Requires: browsing,
		Answer: func(ctx context.Context, actor Abilities) ([]string, error) {
			driver, err := DriverOf(actor)
			if err != nil {
				return nil, err
			}
			found, err := target.Resolve(ctx, driver)
			if err != nil {
				return nil, err
			}
			texts := make([]string, 0, len(found))
			for _, el := range found {
				text, err := el.Text(ctx)
				if err != nil {
					return nil, err
				}
				texts = append(texts, text)
			}
			return texts, nil
		},
	}
}

// IsVisible answers whether target is present and visible. A missing
// element is not visible; it is not an error. A Single target matching
// several elements still fails.
func IsVisible(target Target) Question[bool] {
	return QuestionFunc[bool]{
		Desc:     fmt.Sprintf("the visibility of %s", target),
		Requires: browsing,
		Answer: func(ctx context.Context, actor Abilities) (bool, error) {
			driver, err := DriverOf(actor)
			if err != nil {
				return false, err
			}
			el, err := target.ResolveOne(ctx, driver)
			if isMissing(err) {
				return false, nil
			}
			if err != nil {
				return false, err
			}
			return el.Visible(ctx)
		},
	}
}

// NumberOf answers how many elements match target
func NumberOf(target Target) Question[int] {
	target = target.All()
	return QuestionFunc[int]{
		Desc:     fmt.Sprintf("the number of %s", target.name),
		Requires: browsing,
		Answer: func(ctx context.Context, actor Abilities) (int, error) {
			driver, err := DriverOf(actor)
			if err != nil {
				return 0, err
			}
			found, err := target.Resolve(ctx, driver)
			return len(found), err
		},
	}
}

// BrowserURL answers the URL of the current page
func BrowserURL() Question[string] {
	return QuestionFunc[string]{
		Desc:     "the browser URL",
		Requires: browsing,
		Answer: func(ctx context.Context, actor Abilities) (string, error) {
			driver, err := DriverOf(actor)
			if err != nil {
				return "", err
			}
			return driver.CurrentURL(ctx)
		},
	}
}

// PageTitle answers the document title of the current page
func PageTitle() Question[string] {
	return QuestionFunc[string]{
		Desc:     "the page title",
		Requires: browsing,
		Answer: func(ctx context.Context, actor Abilities) (string, error) {
			driver, err := DriverOf(actor)
			if err != nil {
				return "", err
			}
			return driver.Title(ctx)
		},
	}
}

// UserRole answers "Premium" for an actor able to upload songs and
// "Standard" for any other actor. It needs no browser.
func UserRole() Question[string] {
	return QuestionFunc[string]{
		Desc: "the user's role",
		Answer: func(ctx context.Context, actor Abilities) (string, error) {
			if actor.HasAbilityTo(UploadSongs) {
				return RolePremium, nil
			}
			return RoleStandard, nil
		},
	}
}
