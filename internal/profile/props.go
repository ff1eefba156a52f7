package profile

// DetailsState is the load/verification state reported for a profile.
type DetailsState string

const (
	StateChecking     DetailsState = "checking"
	StateValid        DetailsState = "valid"
	StateError        DetailsState = "error"
	StateNeedsUpgrade DetailsState = "needsUpgrade"
	StateBroken       DetailsState = "broken"
	StateRevoked      DetailsState = "revoked"
	StateNotAUserYet  DetailsState = "notAUserYet"
)

// TeamShowcase is a team the user chose to display on their profile.
type TeamShowcase struct {
	Name        string
	Description string
	MemberCount int
}

// Callbacks are the actions a profile screen can trigger. Any of them may be nil.
type Callbacks struct {
	OnFollow           func()
	OnUnfollow         func()
	OnChat             func()
	OnBack             func()
	OnClose            func()
	OnReload           func()
	OnIgnoreFor24Hours func()
	OnAccept           func()
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

// Props is everything a profile screen renders from.
type Props struct {
	Username   string
	Fullname   string
	Bio        string
	Location   string
	FollowThem bool
	FollowsYou bool
	// Self is set when the viewer is looking at their own profile.
	Self            bool
	Followers       []string
	Following       []string
	AssertionKeys   []string
	TeamShowcase    []TeamShowcase
	State           DetailsState
	BackgroundColor string
	Callbacks       Callbacks
}
