package table

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalKeepsColumnAndRowOrder(t *testing.T) {
	tbl := New("season_name", "competition_id", "country_name")
	tbl.AppendRow("2015/2016", 11, "Spain")
	tbl.AppendRow("2003/2004", 2, "England")

	b, err := json.Marshal(tbl)
	require.NoError(t, err)
	assert.Equal(t,
		`[{"season_name":"2015/2016","competition_id":11,"country_name":"Spain"},`+
			`{"season_name":"2003/2004","competition_id":2,"country_name":"England"}]`,
		string(b))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Len(t, decoded, 2)
	for _, obj := range decoded {
		assert.Len(t, obj, 3)
	}
}

func TestMarshalEmptyTable(t *testing.T) {
	b, err := json.Marshal(New("a", "b"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	var zero Table
	b, err = zero.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	var nilTable *Table
	b, err = nilTable.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestAppendRecordGrowsColumns(t *testing.T) {
	var tbl Table
	tbl.AppendRecord([]Field{{"id", "a"}, {"type", "Pass"}})
	tbl.AppendRecord([]Field{{"id", "b"}, {"type", "Shot"}, {"shot_outcome", "Goal"}})
	tbl.AppendRecord([]Field{{"type", "Pressure"}, {"id", "c"}})

	assert.Equal(t, []string{"id", "type", "shot_outcome"}, tbl.Columns())
	assert.Equal(t, 3, tbl.Len())

	b, err := json.Marshal(&tbl)
	require.NoError(t, err)
	assert.Equal(t,
		`[{"id":"a","type":"Pass","shot_outcome":null},`+
			`{"id":"b","type":"Shot","shot_outcome":"Goal"},`+
			`{"id":"c","type":"Pressure","shot_outcome":null}]`,
		string(b))
}

func TestShortRowsPadWithNull(t *testing.T) {
	tbl := New("x", "y")
	tbl.AppendRow(1)

	b, err := json.Marshal(tbl)
	require.NoError(t, err)
	assert.Equal(t, `[{"x":1,"y":null}]`, string(b))
}

func TestSizeGrowsWithCellText(t *testing.T) {
	assert.Zero(t, (&Table{}).Size())

	small := New("id")
	small.AppendRow(json.RawMessage(`1`))

	large := New("id")
	large.AppendRow(json.RawMessage(`"` + strings.Repeat("x", 4096) + `"`))

	assert.Equal(t, int64(len("id")+16+1), small.Size())
	assert.Greater(t, large.Size(), int64(4096))

	// Scalars only pay the per-cell charge.
	scalars := New("n")
	scalars.AppendRow(42)
	assert.Equal(t, int64(len("n")+16), scalars.Size())
}

func TestAddColumnIsIdempotent(t *testing.T) {
	tbl := New("a")
	assert.Equal(t, 0, tbl.AddColumn("a"))
	assert.Equal(t, 1, tbl.AddColumn("b"))
	assert.Equal(t, []string{"a", "b"}, tbl.Columns())
}

func TestAppendRowPanicsOnExtraValues(t *testing.T) {
	tbl := New("a")
	assert.Panics(t, func() { tbl.AppendRow(1, 2) })
}

func TestRawCellsPassThrough(t *testing.T) {
	tbl := New("location", "under_pressure")
	tbl.AppendRow(json.RawMessage(`[61.5,40.1]`), json.RawMessage(`true`))

	b, err := json.Marshal(tbl)
	require.NoError(t, err)
	assert.Equal(t, `[{"location":[61.5,40.1],"under_pressure":true}]`, string(b))
}
