package screenplay

import "fmt"

// AbilityKind identifies one kind of ability. An actor holds at most one
// ability per kind.
type AbilityKind string

const (
	BrowseTheWeb          AbilityKind = "browse the web"
	InteractWithAPI       AbilityKind = "interact with the API"
	ManagePlaylists       AbilityKind = "manage playlists"
	UploadSongs           AbilityKind = "upload songs"
	FollowUsers           AbilityKind = "follow users"
	RateAndComment        AbilityKind = "rate and comment"
	SearchMusic           AbilityKind = "search music"
	SearchUsers           AbilityKind = "search users"
	SavePlaylistToProfile AbilityKind = "save playlists to profile"
)

var knownKinds = map[AbilityKind]bool{
	BrowseTheWeb:          true,
	InteractWithAPI:       true,
	ManagePlaylists:       true,
	UploadSongs:           true,
	FollowUsers:           true,
	RateAndComment:        true,
	SearchMusic:           true,
	SearchUsers:           true,
	SavePlaylistToProfile: true,
}

// Known reports whether kind is one of the declared ability kinds
func (k AbilityKind) Known() bool {
	return knownKinds[k]
}

// Kinds returns every declared ability kind
func Kinds() []AbilityKind {
	return []AbilityKind{
		BrowseTheWeb, InteractWithAPI, ManagePlaylists, UploadSongs, FollowUsers,
		RateAndComment, SearchMusic, SearchUsers, SavePlaylistToProfile,
	}
}

// ParseAbilityKind maps a kind name ("upload songs") back to its kind
func ParseAbilityKind(name string) (AbilityKind, error) {
	k := AbilityKind(name)
	if !k.Known() {
		return "", fmt.Errorf("unknown ability %q", name)
	}
	return k, nil
}

// Ability is a capability granted to an actor. Forget releases whatever
// resource the ability owns; it is called when the ability is replaced,
// forgotten or the actor exits.
type Ability interface {
	Kind() AbilityKind
	Forget() error
}

// Abilities is the read-only view of an actor that actions and questions
// run against.
type Abilities interface {
	Name() string
	HasAbilityTo(kind AbilityKind) bool
	AbilityTo(kind AbilityKind) (Ability, error)
}

type marker struct {
	kind AbilityKind
}

// Marker returns an ability that owns no resource. It only gates which
// steps an actor may attempt.
func Marker(kind AbilityKind) Ability {
	return marker{kind: kind}
}

func (m marker) Kind() AbilityKind { return m.kind }
func (m marker) Forget() error     { return nil }
func (m marker) String() string    { return "<Ability: " + string(m.kind) + ">" }

// AbilityOf fetches the ability of kind held by the actor as its concrete type
func AbilityOf[T Ability](actor Abilities, kind AbilityKind) (T, error) {
	var zero T
	ab, err := actor.AbilityTo(kind)
	if err != nil {
		return zero, err
	}
	typed, ok := ab.(T)
	if !ok {
		return zero, fmt.Errorf("ability to %s held by %s is a %T", kind, actor.Name(), ab)
	}
	return typed, nil
}
