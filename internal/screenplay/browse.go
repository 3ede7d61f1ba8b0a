package screenplay

import (
	"github.com/stickify/stickify-e2e/internal/browser"
)

// BrowseTheWebAbility owns the browser session an actor drives. The session
// belongs to exactly one actor and is closed when the ability is forgotten.
type BrowseTheWebAbility struct {
	driver browser.Driver
}

// BrowseTheWebWith grants control of driver
func BrowseTheWebWith(driver browser.Driver) *BrowseTheWebAbility {
	return &BrowseTheWebAbility{driver: driver}
}

func (b *BrowseTheWebAbility) Kind() AbilityKind { return BrowseTheWeb }

func (b *BrowseTheWebAbility) Driver() browser.Driver { return b.driver }

// Forget closes the session. Later calls do nothing.
func (b *BrowseTheWebAbility) Forget() error {
	if b.driver == nil {
		return nil
	}
	d := b.driver
	b.driver = nil
	return d.Close()
}

func (b *BrowseTheWebAbility) String() string { return "<Ability: BrowseTheWeb>" }

// DriverOf returns the browser session held by actor
func DriverOf(actor Abilities) (browser.Driver, error) {
	ab, err := AbilityOf[*BrowseTheWebAbility](actor, BrowseTheWeb)
	if err != nil {
		return nil, err
	}
	if ab.driver == nil {
		return nil, &MissingAbilityError{Actor: actor.Name(), Kind: BrowseTheWeb}
	}
	return ab.driver, nil
}
