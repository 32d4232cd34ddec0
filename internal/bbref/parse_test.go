package bbref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func advancedTable(rows string) string {
	return `<table id="advanced">
	<thead>
		<tr><th data-stat="player">Player</th><th data-stat="team_id">Tm</th>
		<th data-stat="per">PER</th><th data-stat="ows">OWS</th><th data-stat="dws">DWS</th>
		<th data-stat="ws">WS</th><th data-stat="ws_per_48">WS/48</th>
		<th data-stat="obpm">OBPM</th><th data-stat="dbpm">DBPM</th>
		<th data-stat="bpm">BPM</th><th data-stat="vorp">VORP</th></tr>
	</thead>
	<tbody>` + rows + `</tbody></table>`
}

func playerRow(name, team, per, ws, bpm string) string {
	return `<tr><td data-stat="player">` + name + `</td><td data-stat="team_id">` + team + `</td>
	<td data-stat="per">` + per + `</td><td data-stat="ows">3.1</td><td data-stat="dws">2.0</td>
	<td data-stat="ws">` + ws + `</td><td data-stat="ws_per_48">.221</td>
	<td data-stat="obpm">5.8</td><td data-stat="dbpm">1.1</td>
	<td data-stat="bpm">` + bpm + `</td><td data-stat="vorp">4.9</td></tr>`
}

func TestParseAdvancedPage_ParsesRows(t *testing.T) {
	page := "<html><body>" + advancedTable(
		playerRow("Nikola Jokić", "DEN", "31.2", "14.9", "11.6"),
	) + "</body></html>"

	players, err := ParseAdvancedPage(page)
	require.NoError(t, err)
	require.Len(t, players, 1)

	p := players[0]
	assert.Equal(t, "Nikola Jokic", p.Name)
	assert.Equal(t, "DEN", p.Team)
	require.NotNil(t, p.PER)
	assert.Equal(t, 31.2, *p.PER)
	require.NotNil(t, p.WS)
	assert.Equal(t, 14.9, *p.WS)
	require.NotNil(t, p.WS48)
	assert.Equal(t, 0.221, *p.WS48)
	require.NotNil(t, p.BPM)
	assert.Equal(t, 11.6, *p.BPM)
}

func TestParseAdvancedPage_TableInsideComment(t *testing.T) {
	page := "<html><body><div><!-- " + advancedTable(
		playerRow("Stephen Curry", "GSW", "24.1", "9.8", "6.2"),
	) + " --></div></body></html>"

	players, err := ParseAdvancedPage(page)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Stephen Curry", players[0].Name)
}

func TestParseAdvancedPage_TradedPlayerKeepsTotalRow(t *testing.T) {
	page := "<html><body>" + advancedTable(
		playerRow("James Harden", "2TM", "20.0", "8.0", "4.0")+
			playerRow("James Harden", "PHI", "22.0", "5.0", "5.0")+
			playerRow("James Harden", "LAC", "18.0", "3.0", "3.0")+
			playerRow("Kevin Durant", "PHX", "25.0", "10.0", "6.5"),
	) + "</body></html>"

	players, err := ParseAdvancedPage(page)
	require.NoError(t, err)
	require.Len(t, players, 2)

	harden := players[0]
	assert.Equal(t, "James Harden", harden.Name)
	assert.Equal(t, "TOT", harden.Team)
	require.NotNil(t, harden.PER)
	assert.Equal(t, 20.0, *harden.PER)

	assert.Equal(t, "Kevin Durant", players[1].Name)
}

func TestParseAdvancedPage_SkipsNoiseRows(t *testing.T) {
	rows := `<tr class="thead"><th data-stat="player">Player</th></tr>` +
		playerRow("League Average", "", "15.0", "0", "0") +
		playerRow("Luka Dončić", "DAL", "27.5", "11.2", "8.0")
	page := "<html><body>" + advancedTable(rows) + "</body></html>"

	players, err := ParseAdvancedPage(page)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Luka Doncic", players[0].Name)
}

func TestParseAdvancedPage_EmptyCellsStayNil(t *testing.T) {
	page := "<html><body>" + advancedTable(
		playerRow("Rookie Example", "BOS", "", "0.1", ""),
	) + "</body></html>"

	players, err := ParseAdvancedPage(page)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Nil(t, players[0].PER)
	assert.Nil(t, players[0].BPM)
	assert.NotNil(t, players[0].WS)
}

func TestParseAdvancedPage_NoTable(t *testing.T) {
	_, err := ParseAdvancedPage("<html><body><p>rate limited</p></body></html>")
	assert.Error(t, err)
}
