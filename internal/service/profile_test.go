package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/profileview/internal/database"
	"github.com/jask/profileview/internal/database/repository"
	"github.com/jask/profileview/internal/profile"
)

type fixture struct {
	svc   *ProfileService
	users *repository.UserRepo
	proof *repository.AssertionRepo
	clock time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cards, err := NewCardCache(16)
	require.NoError(t, err)
	f := &fixture{
		users: repository.NewUserRepo(db),
		proof: repository.NewAssertionRepo(db),
		clock: time.Now().UTC().Add(time.Hour),
	}
	f.svc = &ProfileService{
		Users:      f.users,
		Follows:    repository.NewFollowRepo(db),
		Teams:      repository.NewTeamRepo(db),
		Assertions: f.proof,
		Track:      repository.NewTrackRepo(db),
		Cards:      cards,
		Now:        func() time.Time { return f.clock },
	}
	ctx := context.Background()
	for _, n := range []string{"me", "alice", "bob"} {
		require.NoError(t, f.users.Upsert(ctx, repository.User{ID: "id-" + n, Username: n, FullName: "Full " + n}))
	}
	require.NoError(t, f.proof.Upsert(ctx, repository.Assertion{UserID: "id-alice", Key: "github:alice"}))
	return f
}

func TestLoadUnknownUser(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	d, err := f.svc.Load(context.Background(), "me", "ghost")
	require.NoError(t, err)
	require.Equal(t, profile.StateNotAUserYet, d.State)
	require.Empty(t, d.Followers)
}

func TestLoadFollowCycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	d, err := f.svc.Load(ctx, "me", "alice")
	require.NoError(t, err)
	require.Equal(t, profile.StateValid, d.State)
	require.False(t, d.FollowThem)
	require.Equal(t, ColorBlue, d.BackgroundColor)
	require.Equal(t, []string{"github:alice"}, d.AssertionKeys)

	require.NoError(t, f.svc.Follow(ctx, "me", "alice"))
	d, err = f.svc.Load(ctx, "me", "alice")
	require.NoError(t, err)
	require.True(t, d.FollowThem)
	require.Equal(t, []string{"me"}, d.Followers)
	require.Equal(t, ColorGreen, d.BackgroundColor)

	back, err := f.svc.Load(ctx, "alice", "me")
	require.NoError(t, err)
	require.True(t, back.FollowsYou)
	require.Equal(t, []string{"alice"}, back.Following)

	require.NoError(t, f.svc.Unfollow(ctx, "me", "alice"))
	d, err = f.svc.Load(ctx, "me", "alice")
	require.NoError(t, err)
	require.False(t, d.FollowThem)
}

func TestLoadBrokenThenIgnoredThenAccepted(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.proof.Upsert(ctx, repository.Assertion{UserID: "id-bob", Key: "twitter:bob", State: repository.AssertionBroken}))

	d, err := f.svc.Load(ctx, "me", "bob")
	require.NoError(t, err)
	require.Equal(t, profile.StateBroken, d.State)
	require.Equal(t, ColorRed, d.BackgroundColor)

	require.NoError(t, f.svc.IgnoreFor24Hours(ctx, "me", "bob"))
	d, err = f.svc.Load(ctx, "me", "bob")
	require.NoError(t, err)
	require.Equal(t, profile.StateValid, d.State)

	f.clock = f.clock.Add(25 * time.Hour)
	d, err = f.svc.Load(ctx, "me", "bob")
	require.NoError(t, err)
	require.Equal(t, profile.StateBroken, d.State)

	require.NoError(t, f.svc.Accept(ctx, "me", "bob"))
	d, err = f.svc.Load(ctx, "me", "bob")
	require.NoError(t, err)
	require.Equal(t, profile.StateValid, d.State)
}

func TestDeriveStateNeedsUpgrade(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)
	older := repository.Assertion{Key: "github:a", State: repository.AssertionValid}
	newer := repository.Assertion{Key: "twitter:a", State: repository.AssertionValid}
	revoked := repository.Assertion{Key: "dns:a", State: repository.AssertionRevoked}
	seen := map[string]string{"github:a": repository.AssertionValid}

	require.Equal(t, profile.StateValid, deriveState([]repository.Assertion{older}, true, true, seen, time.Time{}, now))
	require.Equal(t, profile.StateNeedsUpgrade, deriveState([]repository.Assertion{older, newer}, true, true, seen, time.Time{}, now))
	require.Equal(t, profile.StateValid, deriveState([]repository.Assertion{newer}, false, false, nil, time.Time{}, now))
	require.Equal(t, profile.StateRevoked, deriveState([]repository.Assertion{newer, revoked}, true, true, seen, time.Time{}, now))
}

func TestDeriveStateAcceptedProofChangedState(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)
	seen := map[string]string{"github:a": repository.AssertionValid}
	broken := repository.Assertion{Key: "github:a", State: repository.AssertionBroken}
	revoked := repository.Assertion{Key: "github:a", State: repository.AssertionRevoked}

	require.Equal(t, profile.StateBroken, deriveState([]repository.Assertion{broken}, true, true, seen, time.Time{}, now))
	require.Equal(t, profile.StateRevoked, deriveState([]repository.Assertion{revoked}, true, true, seen, time.Time{}, now))
	require.Equal(t, profile.StateValid, deriveState([]repository.Assertion{broken}, true, true, seen, now.Add(time.Hour), now))
}

func TestLoadProofBreaksAfterFollow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.svc.Follow(ctx, "me", "alice"))
	d, err := f.svc.Load(ctx, "me", "alice")
	require.NoError(t, err)
	require.Equal(t, profile.StateValid, d.State)

	require.NoError(t, f.proof.Upsert(ctx, repository.Assertion{UserID: "id-alice", Key: "github:alice", State: repository.AssertionBroken}))
	d, err = f.svc.Load(ctx, "me", "alice")
	require.NoError(t, err)
	require.Equal(t, profile.StateBroken, d.State)
	require.Equal(t, ColorRed, d.BackgroundColor)

	require.NoError(t, f.svc.Accept(ctx, "me", "alice"))
	d, err = f.svc.Load(ctx, "me", "alice")
	require.NoError(t, err)
	require.Equal(t, profile.StateValid, d.State)

	require.NoError(t, f.proof.Upsert(ctx, repository.Assertion{UserID: "id-alice", Key: "github:alice", State: repository.AssertionRevoked}))
	d, err = f.svc.Load(ctx, "me", "alice")
	require.NoError(t, err)
	require.Equal(t, profile.StateRevoked, d.State)
}

func TestLoadNewProofAfterFollowNeedsUpgrade(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.svc.Follow(ctx, "me", "alice"))
	require.NoError(t, f.proof.Upsert(ctx, repository.Assertion{UserID: "id-alice", Key: "twitter:alice"}))
	d, err := f.svc.Load(ctx, "me", "alice")
	require.NoError(t, err)
	require.Equal(t, profile.StateNeedsUpgrade, d.State)

	require.NoError(t, f.svc.Accept(ctx, "me", "alice"))
	d, err = f.svc.Load(ctx, "me", "alice")
	require.NoError(t, err)
	require.Equal(t, profile.StateValid, d.State)
}

func TestFriendCardCachedAndInvalidated(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	card, err := f.svc.Friend(ctx, "me", "alice")
	require.NoError(t, err)
	require.Equal(t, FriendCard{Username: "alice", FullName: "Full alice"}, card)

	// rename behind the cache's back; the cached card is still served
	require.NoError(t, f.users.Upsert(ctx, repository.User{ID: "id-alice", Username: "alice", FullName: "Alice A"}))
	card, err = f.svc.Friend(ctx, "me", "alice")
	require.NoError(t, err)
	require.Equal(t, "Full alice", card.FullName)

	require.NoError(t, f.svc.Follow(ctx, "me", "alice"))
	card, err = f.svc.Friend(ctx, "me", "alice")
	require.NoError(t, err)
	require.Equal(t, "Alice A", card.FullName)
	require.True(t, card.FollowThem)

	_, err = f.svc.Friend(ctx, "me", "ghost")
	require.True(t, errors.Is(err, ErrUnknownUser))
}

func TestTrackingYourselfFails(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	require.Error(t, f.svc.Follow(context.Background(), "me", "me"))
	err := f.svc.Follow(context.Background(), "ghost", "alice")
	require.True(t, errors.Is(err, ErrUnknownUser))
}

func TestLoadOwnProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	d, err := f.svc.Load(ctx, "alice", "alice")
	require.NoError(t, err)
	require.True(t, d.Self)
	require.False(t, d.FollowThem)

	s := profile.NewScreen(profile.NewSelectionStore(nil), profile.PlatformTerminal, 0)
	s.Mount(d.Props(profile.Callbacks{}))
	require.Empty(t, s.Actions())

	other, err := f.svc.Load(ctx, "me", "alice")
	require.NoError(t, err)
	require.False(t, other.Self)
}

func TestDetailsProps(t *testing.T) {
	t.Parallel()

	called := false
	d := Details{Username: "a", FullName: "A", Self: true, Followers: []string{"b"}, State: profile.StateValid}
	p := d.Props(profile.Callbacks{OnReload: func() { called = true }})
	require.Equal(t, "a", p.Username)
	require.Equal(t, "A", p.Fullname)
	require.Equal(t, []string{"b"}, p.Followers)
	require.True(t, p.Self)
	p.Callbacks.OnReload()
	require.True(t, called)
}

func TestBackgroundColor(t *testing.T) {
	t.Parallel()

	require.Equal(t, ColorGreen, BackgroundColor(profile.StateValid, true))
	require.Equal(t, ColorBlue, BackgroundColor(profile.StateValid, false))
	require.Equal(t, ColorBlue, BackgroundColor(profile.StateNeedsUpgrade, true))
	require.Equal(t, ColorRed, BackgroundColor(profile.StateRevoked, true))
	require.Equal(t, ColorRed, BackgroundColor(profile.StateError, false))
}
