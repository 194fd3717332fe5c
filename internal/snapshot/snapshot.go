// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Kind discriminates the closed set of cell value variants.
type Kind int

const (
	// Absent marks a cell beyond the populated extent of a row. The zero
	// Value is Absent.
	Absent Kind = iota
	Text
	Number
	Bool
	// Time is an absolute instant. Two Time values compare by instant,
	// never by display form.
	Time
	// Image is an opaque handle to an image cell, identified by its
	// resolved URL.
	Image
)

// Value is one cell value. Construct with the typed constructors; the zero
// Value means absent.
type Value struct {
	kind Kind
	text string
	num  float64
	b    bool
	t    time.Time
	url  string
}

func TextValue(s string) Value    { return Value{kind: Text, text: s} }
func NumberValue(n float64) Value { return Value{kind: Number, num: n} }
func BoolValue(b bool) Value      { return Value{kind: Bool, b: b} }
func TimeValue(t time.Time) Value { return Value{kind: Time, t: t} }
func ImageValue(url string) Value { return Value{kind: Image, url: url} }

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsAbsent() bool  { return v.kind == Absent }
func (v Value) Text() string    { return v.text }
func (v Value) Number() float64 { return v.num }
func (v Value) Bool() bool      { return v.b }
func (v Value) Time() time.Time { return v.t }
func (v Value) URL() string     { return v.url }

// Equal reports whether two values are the same. Instants compare by
// absolute point in time, images by resolved URL, everything else by strict
// same-kind equality with no coercion. A Text "3" is never equal to a
// Number 3.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case Absent:
		return true
	case Text:
		return v.text == other.text
	case Number:
		return v.num == other.num
	case Bool:
		return v.b == other.b
	case Time:
		return v.t.Equal(other.t)
	case Image:
		return v.url == other.url
	}
	return false
}

func (v Value) String() string {
	switch v.kind {
	case Text:
		return v.text
	case Number:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case Bool:
		return strconv.FormatBool(v.b)
	case Time:
		return v.t.Format(time.RFC3339)
	case Image:
		return fmt.Sprintf("image(%s)", v.url)
	}
	return ""
}

// Row is an ordered sequence of cell values, trimmed to the populated
// extent. Rows within a Grid need not be rectangular.
type Row []Value

// Grid is an ordered sequence of rows. Index 0/0 corresponds to spreadsheet
// cell A1.
type Grid []Row

// Sheet is a named grid. The name is the sheet's identity within its
// document.
type Sheet struct {
	Name string
	Grid Grid
}

// Document is an immutable snapshot of a spreadsheet, keyed by unique sheet
// name. Sources build a Document once; nothing mutates it afterwards.
type Document struct {
	Title  string
	sheets map[string]Sheet
}

func NewDocument(title string) *Document {
	return &Document{
		Title:  title,
		sheets: make(map[string]Sheet),
	}
}

// Add registers a sheet, replacing any previous sheet of the same name.
func (d *Document) Add(s Sheet) {
	d.sheets[s.Name] = s
}

// Sheet returns the named sheet, if present.
func (d *Document) Sheet(name string) (Sheet, bool) {
	s, ok := d.sheets[name]
	return s, ok
}

// Names returns the sheet names in ascending ordinal order.
func (d *Document) Names() []string {
	names := make([]string, 0, len(d.sheets))
	for name := range d.sheets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (d *Document) Len() int {
	return len(d.sheets)
}
