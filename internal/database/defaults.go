package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jask/profileview/internal/database/repository"
)

// UserID derives the stable id used for a seeded username.
func UserID(username string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("user:"+username)).String()
}

func teamID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("team:"+name)).String()
}

type demoUser struct {
	username, fullName, bio, location string
	proofs                            map[string]string // key -> state
}

var demoUsers = []demoUser{
	{"chris", "Chris Coyne", "Co-founder. Makes things.", "New York", map[string]string{"twitter:malgorithms": "valid", "github:malgorithms": "valid", "https:chriscoyne.com": "valid"}},
	{"max", "Max Krohn", "Also a co-founder.", "New York", map[string]string{"twitter:maxtaco": "valid", "github:maxtaco": "valid", "pgp:8efbe2e4dd56b35273634e8f6052a60cd8d6f5d9": "valid"}},
	{"cecileb", "Cécile Boucheron", "", "Paris", map[string]string{"twitter:cecileboucheron": "valid", "github:cecileb": "broken"}},
	{"jzila", "John Zila", "Server things.", "", map[string]string{"github:jzila": "valid", "reddit:jzila": "valid"}},
	{"oconnor663", "Jack O'Connor", "Rust, crypto, BLAKE3.", "New York", map[string]string{"github:oconnor663": "valid", "hackernews:oconnor663": "valid", "dns:jacko.io": "valid"}},
	{"zapu", "Michał Zochniak", "", "Kraków", map[string]string{"github:zapu": "valid"}},
	{"mlsteele", "Miles Steele", "", "Boston", map[string]string{"github:mlsteele": "valid", "twitter:mlsteele": "revoked"}},
	{"patrick", "Patrick Crosby", "", "", map[string]string{"twitter:patrickxb": "valid", "stellar:GABC": "valid"}},
	{"songgao", "Song Gao", "KBFS and friends.", "", map[string]string{"github:songgao": "valid"}},
	{"strib", "Jeremy Stribling", "", "San Francisco", map[string]string{"github:strib": "valid", "https:jeremy.stribling.org": "valid"}},
	{"akalin", "Fred Akalin", "", "", map[string]string{"github:akalin": "valid"}},
	{"joshblum", "Joshua Blum", "", "", map[string]string{"github:joshblum": "valid", "btc:1Hoh": "valid"}},
	{"mikem", "Mike Maxim", "", "", map[string]string{"github:mmaxim": "valid"}},
	{"buoyad", "Danny Ayoub", "", "", nil},
	{"hoyt", "Hoyt Koepke", "", "", map[string]string{"zcash:t1xyz": "valid"}},
}

var demoTeams = []struct {
	name, description string
	members           int
	showcasedBy       []string
}{
	{"keybase", "The team behind the app.", 42, []string{"chris", "max", "cecileb", "jzila", "strib"}},
	{"keybasefriends", "Friends of the team.", 1200, []string{"chris", "oconnor663"}},
	{"stellar.public", "", 310, []string{"patrick"}},
}

// demoFollows: follower -> followees
var demoFollows = map[string][]string{
	"chris":      {"max", "cecileb", "jzila", "oconnor663", "zapu", "mlsteele", "patrick", "strib"},
	"max":        {"chris", "cecileb", "songgao", "strib", "akalin"},
	"cecileb":    {"chris", "max", "buoyad"},
	"jzila":      {"chris", "max", "oconnor663"},
	"oconnor663": {"chris", "max", "jzila", "zapu", "mlsteele"},
	"zapu":       {"chris", "max", "oconnor663", "mikem"},
	"mlsteele":   {"chris", "max", "oconnor663"},
	"patrick":    {"chris", "max"},
	"songgao":    {"chris", "max", "strib"},
	"strib":      {"chris", "max", "songgao"},
	"akalin":     {"chris", "max"},
	"joshblum":   {"chris", "max", "buoyad", "hoyt"},
	"mikem":      {"chris", "max", "zapu"},
	"buoyad":     {"chris", "joshblum"},
	"hoyt":       {"chris"},
}

// SeedDemo loads a small demo community. It is idempotent and safe to run on
// every startup; existing rows are left as they are.
func SeedDemo(ctx context.Context, db *sql.DB) error {
	users := repository.NewUserRepo(db)
	existing, err := users.Usernames(ctx)
	if err != nil {
		return fmt.Errorf("seed: list users: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	teams := repository.NewTeamRepo(db)
	follows := repository.NewFollowRepo(db)
	assertions := repository.NewAssertionRepo(db)

	for _, u := range demoUsers {
		row := repository.User{ID: UserID(u.username), Username: u.username, FullName: u.fullName, Bio: u.bio, Location: u.location}
		if err := users.Upsert(ctx, row); err != nil {
			return fmt.Errorf("seed user %s: %w", u.username, err)
		}
		for key, state := range u.proofs {
			if err := assertions.Upsert(ctx, repository.Assertion{UserID: row.ID, Key: key, State: state}); err != nil {
				return fmt.Errorf("seed proof %s: %w", key, err)
			}
		}
	}
	for follower, followees := range demoFollows {
		for _, followee := range followees {
			if err := follows.Follow(ctx, UserID(follower), UserID(followee)); err != nil {
				return fmt.Errorf("seed follow %s->%s: %w", follower, followee, err)
			}
		}
	}
	for _, t := range demoTeams {
		id := teamID(t.name)
		if err := teams.Upsert(ctx, repository.Team{ID: id, Name: t.name, Description: t.description, MemberCount: t.members}); err != nil {
			return fmt.Errorf("seed team %s: %w", t.name, err)
		}
		for i, username := range t.showcasedBy {
			if err := teams.Showcase(ctx, id, UserID(username), i); err != nil {
				return fmt.Errorf("seed showcase %s: %w", t.name, err)
			}
		}
	}
	return nil
}
