package models

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Tier thresholds for player classification
const (
	Tier1 = 1
	Tier2 = 2
)

// Player represents one NBA player row in the players table.
// Players are never hard-deleted; they are flagged inactive when absent
// from the latest roster fetch.
type Player struct {
	ID          int    `db:"id"`
	NBAPlayerID int    `db:"nba_player_id"`
	FullName    string `db:"full_name"`
	FirstName   sql.NullString `db:"first_name"`
	LastName    sql.NullString `db:"last_name"`
	Slug        string `db:"slug"`

	TeamID   sql.NullInt32  `db:"team_id"`
	TeamAbbr sql.NullString `db:"team_abbr"`
	TeamName sql.NullString `db:"team_name"`

	Position     sql.NullString `db:"position"`
	JerseyNumber sql.NullString `db:"jersey_number"`
	Height       sql.NullString `db:"height"`
	Weight       sql.NullInt32  `db:"weight"`
	Country      sql.NullString `db:"country"`
	DraftYear    sql.NullInt32  `db:"draft_year"`
	DraftRound   sql.NullInt32  `db:"draft_round"`
	DraftNumber  sql.NullInt32  `db:"draft_number"`
	HeadshotURL  string         `db:"headshot_url"`

	IsActive    bool      `db:"is_active"`
	Tier        int       `db:"tier"`
	LastFetched time.Time `db:"last_fetched"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

var (
	slugStripRe    = regexp.MustCompile(`[.'’]`)
	slugInvalidRe  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaceRe    = regexp.MustCompile(`\s+`)
	slugCollapseRe = regexp.MustCompile(`-+`)
)

// MakeSlug converts a player name to a URL-friendly slug:
// "Stephen Curry" -> "stephen-curry".
func MakeSlug(fullName string) string {
	slug := strings.ToLower(strings.TrimSpace(fullName))
	slug = slugStripRe.ReplaceAllString(slug, "")
	slug = slugInvalidRe.ReplaceAllString(slug, "")
	slug = slugSpaceRe.ReplaceAllString(slug, "-")
	slug = slugCollapseRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// HeadshotURL returns the CDN headshot URL for a player
func HeadshotURL(nbaPlayerID int) string {
	return fmt.Sprintf("https://cdn.nba.com/headshots/nba/latest/1040x760/%d.png", nbaPlayerID)
}
