// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// The JSON form of a Document is what the pull command writes, what the
// jsonfile source reads back, and what the snapshot cache stores:
//
//	{"title": "...", "sheets": {"Sheet1": [[{"t":"s","v":"hi"}, null], ...]}}
//
// Cell values are tagged objects; absent cells are null.

type jsonValue struct {
	T string `json:"t"`
	V any    `json:"v"`
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Absent:
		return []byte("null"), nil
	case Text:
		return json.Marshal(jsonValue{T: "s", V: v.text})
	case Number:
		return json.Marshal(jsonValue{T: "n", V: v.num})
	case Bool:
		return json.Marshal(jsonValue{T: "b", V: v.b})
	case Time:
		return json.Marshal(jsonValue{T: "d", V: v.t.Format(time.RFC3339Nano)})
	case Image:
		return json.Marshal(jsonValue{T: "i", V: v.url})
	}
	return nil, fmt.Errorf("unknown value kind %d", v.kind)
}

// MarshalJSON implements json.Marshaler.
func (d *Document) MarshalJSON() ([]byte, error) {
	sheets := make(map[string]Grid, len(d.sheets))
	for name, s := range d.sheets {
		sheets[name] = s.Grid
	}
	return json.Marshal(struct {
		Title  string          `json:"title"`
		Sheets map[string]Grid `json:"sheets"`
	}{Title: d.Title, Sheets: sheets})
}

// DecodeDocument parses the JSON form of a Document.
func DecodeDocument(data []byte) (*Document, error) {
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("snapshot document: not a JSON object")
	}

	doc := NewDocument(root.Get("title").String())

	var err error
	root.Get("sheets").ForEach(func(name, rows gjson.Result) bool {
		var grid Grid
		rows.ForEach(func(_, row gjson.Result) bool {
			var r Row
			row.ForEach(func(_, cell gjson.Result) bool {
				var v Value
				v, err = decodeValue(cell)
				if err != nil {
					err = fmt.Errorf("sheet %q: %w", name.String(), err)
					return false
				}
				r = append(r, v)
				return true
			})
			if err != nil {
				return false
			}
			grid = append(grid, r)
			return true
		})
		if err != nil {
			return false
		}
		doc.Add(Sheet{Name: name.String(), Grid: grid})
		return true
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

func decodeValue(cell gjson.Result) (Value, error) {
	if cell.Type == gjson.Null {
		return Value{}, nil
	}

	v := cell.Get("v")
	switch tag := cell.Get("t").String(); tag {
	case "s":
		return TextValue(v.String()), nil
	case "n":
		return NumberValue(v.Float()), nil
	case "b":
		return BoolValue(v.Bool()), nil
	case "d":
		t, err := time.Parse(time.RFC3339Nano, v.String())
		if err != nil {
			return Value{}, fmt.Errorf("bad instant %q: %w", v.String(), err)
		}
		return TimeValue(t), nil
	case "i":
		return ImageValue(v.String()), nil
	default:
		return Value{}, fmt.Errorf("unknown value tag %q", tag)
	}
}
