package profile

// Tab is one of the two friend lists shown under a profile.
type Tab bool

const (
	TabFollowers Tab = false
	TabFollowing Tab = true
)

func (t Tab) String() string {
	if t == TabFollowing {
		return "following"
	}
	return "followers"
}

// SelectionStore remembers the last tab chosen per username for the lifetime of a
// session. Entries are never evicted. It is not safe for concurrent use; the UI
// loop is its only caller.
type SelectionStore struct {
	selected map[string]bool
	onChange func(username string, following bool)
}

// NewSelectionStore returns an empty store. onChange, if non-nil, is called after
// every write that actually changes a stored value.
func NewSelectionStore(onChange func(username string, following bool)) *SelectionStore {
	return &SelectionStore{selected: map[string]bool{}, onChange: onChange}
}

// Get reports whether the following tab was last selected for username.
func (s *SelectionStore) Get(username string) bool {
	return s.selected[username]
}

// Set stores the selection for username and reports whether it changed.
func (s *SelectionStore) Set(username string, following bool) bool {
	// an absent entry already reads as followers
	if s.selected[username] == following {
		return false
	}
	s.selected[username] = following
	if s.onChange != nil {
		s.onChange(username, following)
	}
	return true
}

// Len is the number of usernames with a recorded selection.
func (s *SelectionStore) Len() int { return len(s.selected) }
