package statsbomb

import (
	"fmt"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/trentd187/match-explorer/internal/table"
)

const competitionsDoc = `[
  {"competition_id": 16, "season_id": 4, "country_name": "Europe", "competition_name": "Champions League",
   "competition_gender": "male", "season_name": "2018/2019", "match_updated": "2023-03-07T12:20:48.118250"},
  {"competition_id": 11, "season_id": 90, "country_name": "Spain", "competition_name": "La Liga",
   "competition_gender": "male", "season_name": "2020/2021", "match_updated": null}
]`

const matchesDoc = `[{
  "match_id": 3773386,
  "match_date": "2020-10-31",
  "kick_off": "21:00:00.000",
  "competition": {"competition_id": 11, "country_name": "Spain", "competition_name": "La Liga"},
  "season": {"season_id": 90, "season_name": "2020/2021"},
  "home_team": {"home_team_id": 217, "home_team_name": "Barcelona", "managers": [{"id": 5211, "name": "Ronald Koeman"}]},
  "away_team": {"away_team_id": 901, "away_team_name": "Deportivo Alavés", "managers": [{"id": 1, "name": "Pablo Machín"}, {"id": 2, "name": "Abelardo"}]},
  "home_score": 1,
  "away_score": 1,
  "match_status": "available",
  "match_week": 7,
  "competition_stage": {"id": 1, "name": "Regular Season"},
  "stadium": {"id": 342, "name": "Estadio de Mendizorroza"},
  "metadata": {"data_version": "1.1.0", "shot_fidelity_version": "2"}
}]`

const eventsDoc = `[
  {"id": "a1", "index": 1, "period": 1, "timestamp": "00:00:00.000", "minute": 0, "second": 0,
   "type": {"id": 35, "name": "Starting XI"}, "team": {"id": 217, "name": "Barcelona"}},
  {"id": "a2", "index": 2, "period": 1, "minute": 0, "second": 1,
   "type": {"id": 30, "name": "Pass"}, "team": {"id": 217, "name": "Barcelona"},
   "player": {"id": 5503, "name": "Lionel Messi"}, "location": [61.0, 40.1],
   "pass": {"length": 12.5, "height": {"id": 1, "name": "Ground Pass"}, "end_location": [70.2, 35.0]}}
]`

// cellAt returns the JSON the API would send for one cell of tbl.
func cellAt(t *testing.T, tbl *table.Table, row int, col string) gjson.Result {
	t.Helper()
	b, err := json.Marshal(tbl)
	require.NoError(t, err)
	v := gjson.GetBytes(b, fmt.Sprintf("%d.%s", row, col))
	require.True(t, v.Exists(), "row %d has no %q", row, col)
	return v
}

func TestFlattenCompetitionsKeepsDocumentOrder(t *testing.T) {
	tbl, err := flattenRecords([]byte(competitionsDoc))
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, []string{
		"competition_id", "season_id", "country_name", "competition_name",
		"competition_gender", "season_name", "match_updated",
	}, tbl.Columns())

	assert.Equal(t, gjson.Null, cellAt(t, tbl, 1, "match_updated").Type)
	assert.Equal(t, `"Champions League"`, cellAt(t, tbl, 0, "competition_name").Raw)
}

func TestFlattenMatches(t *testing.T) {
	tbl, err := flattenMatches([]byte(matchesDoc))
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	assert.Len(t, tbl.Columns(), len(matchColumns))

	get := func(col string) string {
		return cellAt(t, tbl, 0, col).Raw
	}
	assert.Equal(t, `3773386`, get("match_id"))
	assert.Equal(t, `"Spain - La Liga"`, get("competition"))
	assert.Equal(t, `"2020/2021"`, get("season"))
	assert.Equal(t, `"Barcelona"`, get("home_team"))
	assert.Equal(t, `"Deportivo Alavés"`, get("away_team"))
	assert.Equal(t, `"Ronald Koeman"`, get("home_managers"))
	assert.Equal(t, `"Pablo Machín, Abelardo"`, get("away_managers"))
	assert.Equal(t, `"Regular Season"`, get("competition_stage"))
	assert.Equal(t, `null`, get("referee"))
	assert.Equal(t, `null`, get("xy_fidelity_version"))
}

func TestFlattenEvents(t *testing.T) {
	tbl, err := flattenRecords([]byte(eventsDoc))
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())

	assert.Equal(t, []string{
		"id", "index", "period", "timestamp", "minute", "second",
		"type", "type_id", "team", "team_id",
		"player", "player_id", "location", "pass_length", "pass_height", "pass_end_location",
	}, tbl.Columns())

	// First event has no player; the column is added later and reads as null.
	assert.Equal(t, gjson.Null, cellAt(t, tbl, 0, "player").Type)

	assert.Equal(t, `"Pass"`, cellAt(t, tbl, 1, "type").Raw)
	assert.Equal(t, `30`, cellAt(t, tbl, 1, "type_id").Raw)
	assert.Equal(t, `"Ground Pass"`, cellAt(t, tbl, 1, "pass_height").Raw)
	assert.JSONEq(t, `[61.0, 40.1]`, cellAt(t, tbl, 1, "location").Raw)
	// The second event has no timestamp.
	assert.Equal(t, gjson.Null, cellAt(t, tbl, 1, "timestamp").Type)
}

func TestFlattenKeepsFirstValueOnNameCollision(t *testing.T) {
	const doc = `[{
	  "team": {"id": 217, "name": "Barcelona"},
	  "team_id": 999,
	  "pass": {"height": {"id": 1, "name": "Ground Pass"}},
	  "pass_height": "High Pass"
	}]`

	tbl, err := flattenRecords([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"team", "team_id", "pass_height"}, tbl.Columns())
	assert.Equal(t, `217`, cellAt(t, tbl, 0, "team_id").Raw)
	assert.Equal(t, `"Ground Pass"`, cellAt(t, tbl, 0, "pass_height").Raw)
}

func TestFlattenRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"not json", `<html>rate limited</html>`, errMalformed.Error()},
		{"object instead of array", `{"message": "nope"}`, errNotArray.Error()},
		{"scalar record", `[{"id": 1}, 5]`, "record 1 is Number, not an object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := flattenRecords([]byte(tt.body))
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())

			_, err = flattenMatches([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestFlattenEmptyArray(t *testing.T) {
	tbl, err := flattenRecords([]byte(`[]`))
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())

	b, err := json.Marshal(tbl)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}
