// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValueEqual(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	noonUTC := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	noonNY := noonUTC.In(ny)

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"absent vs absent", Value{}, Value{}, true},
		{"same text", TextValue("total"), TextValue("total"), true},
		{"different text", TextValue("total"), TextValue("Total"), false},
		{"same number", NumberValue(3), NumberValue(3), true},
		{"different number", NumberValue(3), NumberValue(3.5), false},
		{"text never equals number", TextValue("3"), NumberValue(3), false},
		{"bool vs bool", BoolValue(true), BoolValue(true), true},
		{"bool vs number", BoolValue(true), NumberValue(1), false},
		{"same instant different zone", TimeValue(noonUTC), TimeValue(noonNY), true},
		{"different instant", TimeValue(noonUTC), TimeValue(noonUTC.Add(time.Second)), false},
		{"same image url", ImageValue("https://example.com/a.png"), ImageValue("https://example.com/a.png"), true},
		{"different image url", ImageValue("https://example.com/a.png"), ImageValue("https://example.com/b.png"), false},
		{"image vs text of url", ImageValue("https://example.com/a.png"), TextValue("https://example.com/a.png"), false},
		{"absent vs empty text", Value{}, TextValue(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want, tt.b.Equal(tt.a))
		})
	}
}

func TestValueKind(t *testing.T) {
	assert.Equal(t, Absent, Value{}.Kind())
	assert.True(t, Value{}.IsAbsent())
	assert.Equal(t, Text, TextValue("x").Kind())
	assert.Equal(t, Number, NumberValue(1).Kind())
	assert.Equal(t, Bool, BoolValue(false).Kind())
	assert.Equal(t, Time, TimeValue(time.Now()).Kind())
	assert.Equal(t, Image, ImageValue("u").Kind())
	assert.False(t, TextValue("").IsAbsent())
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "", Value{}.String())
	assert.Equal(t, "total", TextValue("total").String())
	assert.Equal(t, "3.5", NumberValue(3.5).String())
	assert.Equal(t, "42", NumberValue(42).String())
	assert.Equal(t, "true", BoolValue(true).String())
	assert.Equal(t, "image(https://example.com/a.png)", ImageValue("https://example.com/a.png").String())
}

func TestDocumentNamesSorted(t *testing.T) {
	doc := NewDocument("Inventory")
	for _, name := range []string{"Zones", "Alpha", "Mid"} {
		doc.Add(Sheet{Name: name})
	}

	assert.Equal(t, []string{"Alpha", "Mid", "Zones"}, doc.Names())
	assert.Equal(t, 3, doc.Len())
}

func TestDocumentAddReplaces(t *testing.T) {
	doc := NewDocument("Inventory")
	doc.Add(Sheet{Name: "Totals", Grid: Grid{{TextValue("old")}}})
	doc.Add(Sheet{Name: "Totals", Grid: Grid{{TextValue("new")}}})

	s, ok := doc.Sheet("Totals")
	assert.True(t, ok)
	assert.Equal(t, "new", s.Grid[0][0].Text())
	assert.Equal(t, 1, doc.Len())

	_, ok = doc.Sheet("Missing")
	assert.False(t, ok)
}
