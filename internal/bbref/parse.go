package bbref

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// PlayerAdvanced is one parsed row of the season advanced table. Nil
// pointers mark cells Basketball-Reference left blank.
type PlayerAdvanced struct {
	Name string
	Team string

	PER  *float64
	OWS  *float64
	DWS  *float64
	WS   *float64
	WS48 *float64
	OBPM *float64
	DBPM *float64
	BPM  *float64
	VORP *float64
}

// totalTeams are the team cells marking a traded player's season total
// row. The per-team rows that follow are skipped.
var totalTeams = map[string]bool{
	"TOT": true, "2TM": true, "3TM": true, "4TM": true, "5TM": true,
}

// ParseAdvancedPage extracts the advanced stats table from a season
// page. Basketball-Reference sometimes ships the table inside an HTML
// comment, so comments are re-parsed when the table is not in the
// visible tree.
func ParseAdvancedPage(pageHTML string) ([]*PlayerAdvanced, error) {
	doc, err := html.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	table := findAdvancedTable(doc)
	if table == nil {
		return nil, fmt.Errorf("advanced stats table not found")
	}

	rows := parseTable(table)
	if len(rows) == 0 {
		return nil, fmt.Errorf("advanced stats table has no player rows")
	}
	return rows, nil
}

func findAdvancedTable(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "table" {
		id := attrValue(n, "id")
		if id == "advanced" || id == "advanced_stats" {
			return n
		}
	}
	if n.Type == html.CommentNode && strings.Contains(n.Data, "<table") {
		if doc, err := html.Parse(strings.NewReader(n.Data)); err == nil {
			if table := findAdvancedTable(doc); table != nil {
				return table
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if table := findAdvancedTable(c); table != nil {
			return table
		}
	}
	return nil
}

func parseTable(table *html.Node) []*PlayerAdvanced {
	var players []*PlayerAdvanced
	seenTotal := map[string]bool{}

	for _, tr := range findAll(table, "tr") {
		if strings.Contains(attrValue(tr, "class"), "thead") {
			continue
		}

		cells := map[string]string{}
		for c := tr.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
				continue
			}
			if stat := attrValue(c, "data-stat"); stat != "" {
				cells[stat] = strings.TrimSpace(nodeText(c))
			}
		}

		name := cells["player"]
		if name == "" {
			name = cells["name_display"]
		}
		if name == "" || name == "League Average" || name == "Player" {
			continue
		}
		name = NormalizeName(name)

		team := cells["team_id"]
		if team == "" {
			team = cells["team_name_abbr"]
		}

		if totalTeams[team] {
			seenTotal[name] = true
			team = "TOT"
		} else if seenTotal[name] {
			// Per-team rows after a traded player's total row
			continue
		}

		players = append(players, &PlayerAdvanced{
			Name: name,
			Team: team,
			PER:  floatCell(cells, "per"),
			OWS:  floatCell(cells, "ows"),
			DWS:  floatCell(cells, "dws"),
			WS:   floatCell(cells, "ws"),
			WS48: floatCell(cells, "ws_per_48"),
			OBPM: floatCell(cells, "obpm"),
			DBPM: floatCell(cells, "dbpm"),
			BPM:  floatCell(cells, "bpm"),
			VORP: floatCell(cells, "vorp"),
		})
	}
	return players
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
	}
	return sb.String()
}

func floatCell(cells map[string]string, stat string) *float64 {
	raw, ok := cells[stat]
	if !ok || raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
