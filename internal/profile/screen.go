package profile

import "fmt"

// Action is a button offered in the profile's action row.
type Action string

const (
	ActionFollow    Action = "follow"
	ActionUnfollow  Action = "unfollow"
	ActionChat      Action = "chat"
	ActionReload    Action = "reload"
	ActionIgnore24h Action = "ignore"
	ActionAccept    Action = "accept"
	ActionBack      Action = "back"
	ActionClose     Action = "close"
)

// Label is the text shown on the action's button.
func (a Action) Label() string {
	switch a {
	case ActionFollow:
		return "Follow"
	case ActionUnfollow:
		return "Unfollow"
	case ActionChat:
		return "Chat"
	case ActionReload:
		return "Reload"
	case ActionIgnore24h:
		return "Ignore for 24 hours"
	case ActionAccept:
		return "Accept"
	case ActionBack:
		return "Back"
	case ActionClose:
		return "Close"
	}
	return string(a)
}

// Screen is the view state of one mounted profile screen: the props it was last
// given, the selected tab and the latest measured width.
type Screen struct {
	store     *SelectionStore
	platform  Platform
	tileWidth int

	props     Props
	following bool
	width     int
}

// NewScreen returns a screen bound to store. tileWidth overrides the platform's
// minimum tile size when positive.
func NewScreen(store *SelectionStore, platform Platform, tileWidth int) *Screen {
	return &Screen{store: store, platform: platform, tileWidth: tileWidth}
}

// Mount shows props for the first time and asks for a reload.
func (s *Screen) Mount(props Props) {
	s.props = props
	s.following = s.store.Get(props.Username)
	s.width = 0
	call(props.Callbacks.OnReload)
}

// Update replaces the props. Switching to another username restores that user's
// last tab and asks for a reload.
func (s *Screen) Update(props Props) {
	prev := s.props.Username
	s.props = props
	if props.Username != prev {
		s.following = s.store.Get(props.Username)
		call(props.Callbacks.OnReload)
	}
}

// Props returns the props currently shown.
func (s *Screen) Props() Props { return s.props }

// Width is the latest measured width, 0 before the first measurement.
func (s *Screen) Width() int { return s.width }

// OnMeasured records the container width and reports whether it changed.
func (s *Screen) OnMeasured(width int) bool {
	if width < 0 {
		width = 0
	}
	if width == s.width {
		return false
	}
	s.width = width
	return true
}

// SelectedTab is the tab currently shown.
func (s *Screen) SelectedTab() Tab { return Tab(s.following) }

// ChangeFollowing selects the following (true) or followers (false) tab and
// reports whether anything changed. Selecting the active tab is a no-op.
func (s *Screen) ChangeFollowing(following bool) bool {
	if s.following == following {
		return false
	}
	s.following = !s.following
	s.store.Set(s.props.Username, s.following)
	return true
}

// ToggleTab switches to the other tab.
func (s *Screen) ToggleTab() { s.ChangeFollowing(!s.following) }

// Friends is the list behind the selected tab.
func (s *Screen) Friends() []string {
	if s.following {
		return s.props.Following
	}
	return s.props.Followers
}

func (s *Screen) minItemSize() int {
	if s.tileWidth > 0 {
		return s.tileWidth
	}
	return s.platform.MinItemSize()
}

// Rows partitions the selected friends into grid rows for the latest width.
// There are no rows until a width has been measured.
func (s *Screen) Rows() ([][]string, LayoutMetrics) {
	m := ComputeLayout(s.width, s.minItemSize())
	if s.width == 0 {
		return [][]string{}, m
	}
	return PartitionIntoRows(s.Friends(), m.ItemsPerRow), m
}

// TabLabel is the caption of the followers or following tab.
func (s *Screen) TabLabel(following bool) string {
	if following {
		return fmt.Sprintf("Following (%d)", len(s.props.Following))
	}
	return fmt.Sprintf("Followers (%d)", len(s.props.Followers))
}

// Proofs are the profile's assertion keys in display order.
func (s *Screen) Proofs() []string {
	return SortAssertionKeys(s.props.AssertionKeys)
}

// Actions lists the buttons offered for the current state.
func (s *Screen) Actions() []Action {
	p := s.props
	switch {
	case p.State == StateChecking:
		return nil
	case p.State == StateNotAUserYet:
		return []Action{ActionChat}
	case p.State == StateError:
		return []Action{ActionReload}
	case p.Self:
		// nobody tracks themselves
		return nil
	case p.FollowThem && p.State == StateValid:
		return []Action{ActionUnfollow, ActionChat}
	case p.FollowThem && p.State == StateNeedsUpgrade:
		return []Action{ActionChat, ActionAccept}
	case p.FollowThem:
		return []Action{ActionIgnore24h, ActionAccept}
	default:
		return []Action{ActionFollow, ActionChat}
	}
}

// Offers reports whether a is currently available. Back and close always are.
func (s *Screen) Offers(a Action) bool {
	if a == ActionBack || a == ActionClose {
		return true
	}
	for _, have := range s.Actions() {
		if have == a {
			return true
		}
	}
	return false
}

// Invoke runs the callback for a if the action is offered, reporting whether it ran.
func (s *Screen) Invoke(a Action) bool {
	if !s.Offers(a) {
		return false
	}
	cb := s.props.Callbacks
	switch a {
	case ActionFollow:
		call(cb.OnFollow)
	case ActionUnfollow:
		call(cb.OnUnfollow)
	case ActionChat:
		call(cb.OnChat)
	case ActionReload:
		call(cb.OnReload)
	case ActionIgnore24h:
		call(cb.OnIgnoreFor24Hours)
	case ActionAccept:
		call(cb.OnAccept)
	case ActionBack:
		call(cb.OnBack)
	case ActionClose:
		call(cb.OnClose)
	default:
		return false
	}
	return true
}
