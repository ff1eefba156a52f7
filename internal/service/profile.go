package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jask/profileview/internal/database"
	"github.com/jask/profileview/internal/database/repository"
	"github.com/jask/profileview/internal/profile"
)

// ErrUnknownUser is returned when an operation names a username that does not exist.
var ErrUnknownUser = errors.New("unknown user")

// Background colours for the profile header.
const (
	ColorBlue  = "#4C8EFF"
	ColorGreen = "#3DCC8E"
	ColorRed   = "#FF4D61"
)

const ignoreWindow = 24 * time.Hour

// Details is everything the profile screen shows about one user, as seen by a viewer.
type Details struct {
	Username        string
	FullName        string
	Bio             string
	Location        string
	FollowThem      bool
	FollowsYou      bool
	Self            bool
	Followers       []string
	Following       []string
	AssertionKeys   []string
	Teams           []profile.TeamShowcase
	State           profile.DetailsState
	BackgroundColor string
}

// Props converts d into screen props wired to cb.
func (d Details) Props(cb profile.Callbacks) profile.Props {
	return profile.Props{
		Username:        d.Username,
		Fullname:        d.FullName,
		Bio:             d.Bio,
		Location:        d.Location,
		FollowThem:      d.FollowThem,
		FollowsYou:      d.FollowsYou,
		Self:            d.Self,
		Followers:       d.Followers,
		Following:       d.Following,
		AssertionKeys:   d.AssertionKeys,
		TeamShowcase:    d.Teams,
		State:           d.State,
		BackgroundColor: d.BackgroundColor,
		Callbacks:       cb,
	}
}

// FriendCard is the little that a friend tile needs.
type FriendCard struct {
	Username   string
	FullName   string
	FollowThem bool
	FollowsYou bool
}

// ProfileService loads profiles and applies the viewer's follow decisions.
type ProfileService struct {
	Users      *repository.UserRepo
	Follows    *repository.FollowRepo
	Teams      *repository.TeamRepo
	Assertions *repository.AssertionRepo
	Track      *repository.TrackRepo

	// Cards caches friend tiles per viewer; nil disables caching.
	Cards *lru.Cache[string, FriendCard]
	// Now defaults to time.Now.
	Now func() time.Time
}

// NewCardCache returns an LRU for ProfileService.Cards.
func NewCardCache(size int) (*lru.Cache[string, FriendCard], error) {
	if size <= 0 {
		size = 512
	}
	return lru.New[string, FriendCard](size)
}

func (s *ProfileService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC().Truncate(time.Second)
	}
	return database.Now()
}

func (s *ProfileService) mustUser(ctx context.Context, username string) (*repository.User, error) {
	u, err := s.Users.ByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", username, err)
	}
	if u == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUser, username)
	}
	return u, nil
}

// Load assembles the profile of username as seen by viewer. A username with no
// account yields a notAUserYet profile rather than an error.
func (s *ProfileService) Load(ctx context.Context, viewer, username string) (Details, error) {
	d := Details{Username: username}
	u, err := s.Users.ByUsername(ctx, username)
	if err != nil {
		return d, fmt.Errorf("lookup %s: %w", username, err)
	}
	if u == nil {
		d.State = profile.StateNotAUserYet
		d.BackgroundColor = ColorBlue
		d.Followers, d.Following = []string{}, []string{}
		return d, nil
	}
	d.FullName, d.Bio, d.Location = u.FullName, u.Bio, u.Location

	if d.Followers, err = s.Follows.Followers(ctx, u.ID); err != nil {
		return d, fmt.Errorf("followers of %s: %w", username, err)
	}
	if d.Following, err = s.Follows.Following(ctx, u.ID); err != nil {
		return d, fmt.Errorf("following of %s: %w", username, err)
	}
	teams, err := s.Teams.ShowcaseFor(ctx, u.ID)
	if err != nil {
		return d, fmt.Errorf("teams of %s: %w", username, err)
	}
	for _, t := range teams {
		d.Teams = append(d.Teams, profile.TeamShowcase{Name: t.Name, Description: t.Description, MemberCount: t.MemberCount})
	}
	proofs, err := s.Assertions.ForUser(ctx, u.ID)
	if err != nil {
		return d, fmt.Errorf("proofs of %s: %w", username, err)
	}
	for _, p := range proofs {
		d.AssertionKeys = append(d.AssertionKeys, p.Key)
	}

	var ignoredUntil, acceptedAt time.Time
	var accepted map[string]string
	if v, err := s.Users.ByUsername(ctx, viewer); err != nil {
		return d, fmt.Errorf("lookup viewer %s: %w", viewer, err)
	} else if v != nil && v.ID == u.ID {
		d.Self = true
	} else if v != nil {
		if d.FollowThem, err = s.Follows.IsFollowing(ctx, v.ID, u.ID); err != nil {
			return d, err
		}
		if d.FollowsYou, err = s.Follows.IsFollowing(ctx, u.ID, v.ID); err != nil {
			return d, err
		}
		if ignoredUntil, err = s.Track.IgnoredUntil(ctx, v.ID, u.ID); err != nil {
			return d, err
		}
		if acceptedAt, err = s.Track.AcceptedAt(ctx, v.ID, u.ID); err != nil {
			return d, err
		}
		if accepted, err = s.Track.AcceptedProofs(ctx, v.ID, u.ID); err != nil {
			return d, err
		}
	}

	d.State = deriveState(proofs, d.FollowThem, !acceptedAt.IsZero(), accepted, ignoredUntil, s.now())
	d.BackgroundColor = BackgroundColor(d.State, d.FollowThem)
	return d, nil
}

// deriveState reports the verification state of a profile. A proof is only
// flagged when its state differs from the one the viewer accepted; valid proofs
// the viewer has not seen yet need an upgrade.
func deriveState(proofs []repository.Assertion, followThem, hasAccepted bool, accepted map[string]string, ignoredUntil, now time.Time) profile.DetailsState {
	if now.Before(ignoredUntil) {
		return profile.StateValid
	}
	state := profile.StateValid
	for _, p := range proofs {
		if seen, ok := accepted[p.Key]; ok && seen == p.State {
			continue
		}
		switch p.State {
		case repository.AssertionBroken:
			return profile.StateBroken
		case repository.AssertionRevoked:
			state = profile.StateRevoked
		default:
			if followThem && hasAccepted && state == profile.StateValid {
				state = profile.StateNeedsUpgrade
			}
		}
	}
	return state
}

// BackgroundColor picks the header colour for a profile state.
func BackgroundColor(state profile.DetailsState, followThem bool) string {
	switch state {
	case profile.StateError, profile.StateBroken, profile.StateRevoked:
		return ColorRed
	case profile.StateValid:
		if followThem {
			return ColorGreen
		}
	}
	return ColorBlue
}

func cardKey(viewer, username string) string { return viewer + "\x00" + username }

// Friend returns the tile data for username as seen by viewer.
func (s *ProfileService) Friend(ctx context.Context, viewer, username string) (FriendCard, error) {
	key := cardKey(viewer, username)
	if s.Cards != nil {
		if c, ok := s.Cards.Get(key); ok {
			return c, nil
		}
	}
	u, err := s.mustUser(ctx, username)
	if err != nil {
		return FriendCard{Username: username}, err
	}
	card := FriendCard{Username: username, FullName: u.FullName}
	v, err := s.Users.ByUsername(ctx, viewer)
	if err != nil {
		return card, fmt.Errorf("lookup viewer %s: %w", viewer, err)
	}
	if v != nil && v.ID != u.ID {
		if card.FollowThem, err = s.Follows.IsFollowing(ctx, v.ID, u.ID); err != nil {
			return card, err
		}
		if card.FollowsYou, err = s.Follows.IsFollowing(ctx, u.ID, v.ID); err != nil {
			return card, err
		}
	}
	if s.Cards != nil {
		s.Cards.Add(key, card)
	}
	return card, nil
}

func (s *ProfileService) pair(ctx context.Context, viewer, username string) (v, u *repository.User, err error) {
	if v, err = s.mustUser(ctx, viewer); err != nil {
		return nil, nil, err
	}
	if u, err = s.mustUser(ctx, username); err != nil {
		return nil, nil, err
	}
	if v.ID == u.ID {
		return nil, nil, fmt.Errorf("%s: cannot track yourself", username)
	}
	return v, u, nil
}

func (s *ProfileService) invalidate(viewer, username string) {
	if s.Cards == nil {
		return
	}
	s.Cards.Remove(cardKey(viewer, username))
	s.Cards.Remove(cardKey(username, viewer))
}

// Follow makes viewer follow username and accepts username's current proofs.
func (s *ProfileService) Follow(ctx context.Context, viewer, username string) error {
	v, u, err := s.pair(ctx, viewer, username)
	if err != nil {
		return err
	}
	if err := s.Follows.Follow(ctx, v.ID, u.ID); err != nil {
		return fmt.Errorf("follow %s: %w", username, err)
	}
	if err := s.Track.Accept(ctx, v.ID, u.ID, s.now()); err != nil {
		return fmt.Errorf("accept %s: %w", username, err)
	}
	s.invalidate(viewer, username)
	return nil
}

func (s *ProfileService) Unfollow(ctx context.Context, viewer, username string) error {
	v, u, err := s.pair(ctx, viewer, username)
	if err != nil {
		return err
	}
	if err := s.Follows.Unfollow(ctx, v.ID, u.ID); err != nil {
		return fmt.Errorf("unfollow %s: %w", username, err)
	}
	s.invalidate(viewer, username)
	return nil
}

// IgnoreFor24Hours hides username's proof problems from viewer for a day.
func (s *ProfileService) IgnoreFor24Hours(ctx context.Context, viewer, username string) error {
	v, u, err := s.pair(ctx, viewer, username)
	if err != nil {
		return err
	}
	if err := s.Track.IgnoreUntil(ctx, v.ID, u.ID, s.now().Add(ignoreWindow)); err != nil {
		return fmt.Errorf("ignore %s: %w", username, err)
	}
	return nil
}

// Accept records username's current proofs as seen by viewer.
func (s *ProfileService) Accept(ctx context.Context, viewer, username string) error {
	v, u, err := s.pair(ctx, viewer, username)
	if err != nil {
		return err
	}
	if err := s.Track.Accept(ctx, v.ID, u.ID, s.now()); err != nil {
		return fmt.Errorf("accept %s: %w", username, err)
	}
	return nil
}

// Usernames lists every known username, for search.
func (s *ProfileService) Usernames(ctx context.Context) ([]string, error) {
	return s.Users.Usernames(ctx)
}
