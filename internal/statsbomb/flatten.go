package statsbomb

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	// gjson walks a JSON document without decoding it into Go maps, and ForEach visits
	// object keys in document order. That order becomes the table's column order.
	"github.com/tidwall/gjson"

	"github.com/trentd187/match-explorer/internal/table"
)

var (
	errMalformed = errors.New("malformed JSON document")
	errNotArray  = errors.New("expected a JSON array of records")
)

// parseRecords validates body and returns its top-level array.
func parseRecords(body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, errMalformed
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsArray() {
		return gjson.Result{}, errNotArray
	}

	// Every element has to be an object; anything else can't become a row.
	var bad error
	i := 0
	doc.ForEach(func(_, rec gjson.Result) bool {
		if !rec.IsObject() {
			bad = fmt.Errorf("record %d is %s, not an object", i, rec.Type)
			return false
		}
		i++
		return true
	})
	if bad != nil {
		return gjson.Result{}, bad
	}
	return doc, nil
}

// cell converts a gjson value into a table cell. Values are kept as raw JSON so numbers,
// arrays and nested objects reach the client exactly as the upstream wrote them.
func cell(v gjson.Result) any {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	return json.RawMessage(v.Raw)
}

// isReference reports whether v is a lookup object such as {"id": 30, "name": "Pass"}.
func isReference(v gjson.Result) bool {
	if !v.IsObject() {
		return false
	}
	hasName, onlyRef := false, true
	v.ForEach(func(k, _ gjson.Result) bool {
		switch k.String() {
		case "name":
			hasName = true
		case "id":
		default:
			onlyRef = false
			return false
		}
		return true
	})
	return hasName && onlyRef
}

// flattenRecord turns one event-style object into ordered fields:
//   - {"type": {"id": 30, "name": "Pass"}} -> type="Pass", type_id=30
//   - {"pass": {"length": 12.1, "height": {"id": 1, "name": "Ground Pass"}}}
//     -> pass_length=12.1, pass_height="Ground Pass"
//   - scalars and arrays pass through unchanged.
//
// Two keys can flatten to the same column, e.g. a "team" reference next to a literal
// "team_id". The first value in document order wins and later ones are dropped.
func flattenRecord(rec gjson.Result) []table.Field {
	var fields []table.Field
	seen := make(map[string]struct{})
	add := func(name string, v any) {
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		fields = append(fields, table.Field{Name: name, Value: v})
	}

	rec.ForEach(func(k, v gjson.Result) bool {
		key := k.String()
		switch {
		case isReference(v):
			add(key, cell(v.Get("name")))
			if id := v.Get("id"); id.Exists() {
				add(key+"_id", cell(id))
			}
		case v.IsObject():
			v.ForEach(func(sk, sv gjson.Result) bool {
				name := key + "_" + sk.String()
				if isReference(sv) {
					add(name, cell(sv.Get("name")))
				} else {
					add(name, cell(sv))
				}
				return true
			})
		default:
			add(key, cell(v))
		}
		return true
	})
	return fields
}

// flattenRecords builds a table from an array of objects. Columns are the union of all
// flattened keys in order of first appearance.
func flattenRecords(body []byte) (*table.Table, error) {
	doc, err := parseRecords(body)
	if err != nil {
		return nil, err
	}
	t := table.New()
	doc.ForEach(func(_, rec gjson.Result) bool {
		t.AppendRecord(flattenRecord(rec))
		return true
	})
	return t, nil
}

// matchColumn derives one column of the matches table from a raw match object.
type matchColumn struct {
	name  string
	value func(m gjson.Result) any
}

func pathColumn(name, path string) matchColumn {
	return matchColumn{name: name, value: func(m gjson.Result) any { return cell(m.Get(path)) }}
}

// managersColumn joins the manager names of one side, e.g. "Ernesto Valverde, Luis Enrique".
func managersColumn(name, path string) matchColumn {
	return matchColumn{name: name, value: func(m gjson.Result) any {
		managers := m.Get(path)
		if !managers.IsArray() {
			return nil
		}
		var names []string
		for _, mgr := range managers.Array() {
			if n := mgr.Get("name"); n.Exists() {
				names = append(names, n.String())
			}
		}
		return strings.Join(names, ", ")
	}}
}

// matchColumns is the fixed shape of the matches table. Team, season and competition
// objects collapse to display strings so the front-end can render a match card directly.
var matchColumns = []matchColumn{
	pathColumn("match_id", "match_id"),
	pathColumn("match_date", "match_date"),
	pathColumn("kick_off", "kick_off"),
	{name: "competition", value: func(m gjson.Result) any {
		c := m.Get("competition")
		if !c.Exists() {
			return nil
		}
		return c.Get("country_name").String() + " - " + c.Get("competition_name").String()
	}},
	pathColumn("season", "season.season_name"),
	pathColumn("home_team", "home_team.home_team_name"),
	pathColumn("away_team", "away_team.away_team_name"),
	pathColumn("home_score", "home_score"),
	pathColumn("away_score", "away_score"),
	pathColumn("match_status", "match_status"),
	pathColumn("match_status_360", "match_status_360"),
	pathColumn("last_updated", "last_updated"),
	pathColumn("last_updated_360", "last_updated_360"),
	pathColumn("match_week", "match_week"),
	pathColumn("competition_stage", "competition_stage.name"),
	pathColumn("stadium", "stadium.name"),
	pathColumn("referee", "referee.name"),
	managersColumn("home_managers", "home_team.managers"),
	managersColumn("away_managers", "away_team.managers"),
	pathColumn("data_version", "metadata.data_version"),
	pathColumn("shot_fidelity_version", "metadata.shot_fidelity_version"),
	pathColumn("xy_fidelity_version", "metadata.xy_fidelity_version"),
}

func flattenMatches(body []byte) (*table.Table, error) {
	doc, err := parseRecords(body)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(matchColumns))
	for i, c := range matchColumns {
		names[i] = c.name
	}
	t := table.New(names...)

	doc.ForEach(func(_, m gjson.Result) bool {
		row := make([]any, len(matchColumns))
		for i, c := range matchColumns {
			row[i] = c.value(m)
		}
		t.AppendRow(row...)
		return true
	})
	return t, nil
}
