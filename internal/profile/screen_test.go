package profile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls []string
}

func (r *recorder) callbacks() Callbacks {
	rec := func(name string) func() {
		return func() { r.calls = append(r.calls, name) }
	}
	return Callbacks{
		OnFollow:           rec("follow"),
		OnUnfollow:         rec("unfollow"),
		OnChat:             rec("chat"),
		OnBack:             rec("back"),
		OnClose:            rec("close"),
		OnReload:           rec("reload"),
		OnIgnoreFor24Hours: rec("ignore"),
		OnAccept:           rec("accept"),
	}
}

func sampleProps(r *recorder, username string) Props {
	return Props{
		Username:      username,
		Followers:     []string{"a", "b", "c", "d", "e"},
		Following:     []string{"x", "y"},
		AssertionKeys: []string{"github:" + username, "twitter:" + username},
		State:         StateValid,
		Callbacks:     r.callbacks(),
	}
}

func TestScreenMountReloadsAndWaitsForWidth(t *testing.T) {
	t.Parallel()

	r := &recorder{}
	s := NewScreen(NewSelectionStore(nil), PlatformDesktop, 0)
	s.Mount(sampleProps(r, "chris"))

	require.Equal(t, []string{"reload"}, r.calls)
	require.Equal(t, TabFollowers, s.SelectedTab())
	rows, _ := s.Rows()
	require.Empty(t, rows)

	require.True(t, s.OnMeasured(250))
	require.False(t, s.OnMeasured(250))
	rows, m := s.Rows()
	require.Equal(t, LayoutMetrics{ItemsPerRow: 2, ItemWidth: 125}, m)
	require.Equal(t, [][]string{{"a", "b"}, {"c", "d"}, {"e"}}, rows)
}

func TestScreenLatestWidthWins(t *testing.T) {
	t.Parallel()

	s := NewScreen(NewSelectionStore(nil), PlatformDesktop, 0)
	s.Mount(sampleProps(&recorder{}, "chris"))
	s.OnMeasured(120)
	s.OnMeasured(650)
	rows, m := s.Rows()
	require.Equal(t, 5, m.ItemsPerRow)
	require.Len(t, rows, 1)
}

func TestScreenTabsRememberedPerUsername(t *testing.T) {
	t.Parallel()

	notified := 0
	store := NewSelectionStore(func(string, bool) { notified++ })
	r := &recorder{}
	s := NewScreen(store, PlatformTerminal, 10)
	s.Mount(sampleProps(r, "chris"))
	s.OnMeasured(30)

	require.False(t, s.ChangeFollowing(false))
	require.Equal(t, 0, notified)
	require.True(t, s.ChangeFollowing(true))
	require.False(t, s.ChangeFollowing(true))
	require.Equal(t, 1, notified)
	require.Equal(t, []string{"x", "y"}, s.Friends())
	rows, _ := s.Rows()
	require.Equal(t, [][]string{{"x", "y"}}, rows)

	s.Update(sampleProps(r, "max"))
	require.Equal(t, TabFollowers, s.SelectedTab())
	require.Equal(t, []string{"reload", "reload"}, r.calls)

	s.Update(sampleProps(r, "chris"))
	require.Equal(t, TabFollowing, s.SelectedTab())

	// same username: no reload
	s.Update(sampleProps(r, "chris"))
	require.Len(t, r.calls, 3)
}

func TestScreenTabLabels(t *testing.T) {
	t.Parallel()

	s := NewScreen(NewSelectionStore(nil), PlatformTerminal, 0)
	s.Mount(sampleProps(&recorder{}, "chris"))
	require.Equal(t, "Followers (5)", s.TabLabel(false))
	require.Equal(t, "Following (2)", s.TabLabel(true))
}

func TestScreenProofsSorted(t *testing.T) {
	t.Parallel()

	s := NewScreen(NewSelectionStore(nil), PlatformTerminal, 0)
	s.Mount(sampleProps(&recorder{}, "chris"))
	require.Equal(t, []string{"twitter:chris", "github:chris"}, s.Proofs())
}

func TestScreenActionsByState(t *testing.T) {
	t.Parallel()

	cases := []struct {
		state  DetailsState
		follow bool
		self   bool
		want   []Action
	}{
		{StateChecking, false, false, nil},
		{StateNotAUserYet, false, false, []Action{ActionChat}},
		{StateError, true, false, []Action{ActionReload}},
		{StateValid, true, false, []Action{ActionUnfollow, ActionChat}},
		{StateNeedsUpgrade, true, false, []Action{ActionChat, ActionAccept}},
		{StateBroken, true, false, []Action{ActionIgnore24h, ActionAccept}},
		{StateRevoked, true, false, []Action{ActionIgnore24h, ActionAccept}},
		{StateValid, false, false, []Action{ActionFollow, ActionChat}},
		{StateBroken, false, false, []Action{ActionFollow, ActionChat}},
		{StateValid, false, true, nil},
		{StateBroken, false, true, nil},
		{StateError, false, true, []Action{ActionReload}},
		{StateChecking, false, true, nil},
	}
	for _, tc := range cases {
		s := NewScreen(NewSelectionStore(nil), PlatformTerminal, 0)
		p := sampleProps(&recorder{}, "chris")
		p.State = tc.state
		p.FollowThem = tc.follow
		p.Self = tc.self
		s.Mount(p)
		require.Equal(t, tc.want, s.Actions(), "state=%s follow=%v self=%v", tc.state, tc.follow, tc.self)
	}
}

func TestScreenInvoke(t *testing.T) {
	t.Parallel()

	r := &recorder{}
	s := NewScreen(NewSelectionStore(nil), PlatformTerminal, 0)
	s.Mount(sampleProps(r, "chris"))
	r.calls = nil

	require.True(t, s.Invoke(ActionFollow))
	require.False(t, s.Invoke(ActionUnfollow))
	require.True(t, s.Invoke(ActionBack))
	require.True(t, s.Invoke(ActionClose))
	require.Equal(t, []string{"follow", "back", "close"}, r.calls)
}

func TestScreenNilCallbacks(t *testing.T) {
	t.Parallel()

	s := NewScreen(NewSelectionStore(nil), PlatformTerminal, 0)
	s.Mount(Props{Username: "chris", State: StateValid})
	require.True(t, s.Invoke(ActionFollow))
}
