// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"reflect"
	"testing"
)

func TestDeduplicateFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "empty args",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "only program and command",
			args:     []string{"sheetctl", "run"},
			expected: []string{"sheetctl", "run"},
		},
		{
			name:     "no duplicates",
			args:     []string{"sheetctl", "run", "--output", "text", "--force"},
			expected: []string{"sheetctl", "run", "--output", "text", "--force"},
		},
		{
			name:     "duplicate flag with value - last wins",
			args:     []string{"sheetctl", "run", "--output", "json", "--force", "--output", "text"},
			expected: []string{"sheetctl", "run", "--force", "--output", "text"},
		},
		{
			name:     "duplicate boolean flag",
			args:     []string{"sheetctl", "run", "--force", "--dry-run", "--force"},
			expected: []string{"sheetctl", "run", "--dry-run", "--force"},
		},
		{
			name:     "duplicate flag with equals syntax",
			args:     []string{"sheetctl", "run", "--output=json", "--force", "--output=text"},
			expected: []string{"sheetctl", "run", "--force", "--output=text"},
		},
		{
			name:     "mixed equals and space syntax - same flag",
			args:     []string{"sheetctl", "run", "--output=json", "--output", "text"},
			expected: []string{"sheetctl", "run", "--output", "text"},
		},
		{
			name:     "multiple different flags with duplicates",
			args:     []string{"sheetctl", "diff", "--spreadsheet", "abc", "--folder", "foo", "--spreadsheet", "xyz", "--folder", "bar"},
			expected: []string{"sheetctl", "diff", "--spreadsheet", "xyz", "--folder", "bar"},
		},
		{
			name:     "positional args preserved",
			args:     []string{"sheetctl", "diff", "a.xlsx", "--output", "json", "--output", "text"},
			expected: []string{"sheetctl", "diff", "a.xlsx", "--output", "text"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := deduplicateFlags(tt.args)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("deduplicateFlags(%v) = %v, want %v", tt.args, result, tt.expected)
			}
		})
	}
}

func TestDeduplicateFlagsPreservesOrder(t *testing.T) {
	// Ensure non-duplicate flags maintain their relative order.
	args := []string{"sheetctl", "run", "--force", "--dry-run", "--color"}
	result := deduplicateFlags(args)
	expected := []string{"sheetctl", "run", "--force", "--dry-run", "--color"}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Order not preserved: got %v, want %v", result, expected)
	}
}

func TestDeduplicateFlagsWithPositionalAfterFlags(t *testing.T) {
	// Positional args after flags should be preserved.
	args := []string{"sheetctl", "diff", "--output", "json", "a.xlsx", "--output", "text"}
	result := deduplicateFlags(args)
	expected := []string{"sheetctl", "diff", "a.xlsx", "--output", "text"}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("got %v, want %v", result, expected)
	}
}

func TestHandleNakedCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "no command appends help",
			args:     []string{"sheetctl"},
			expected: []string{"sheetctl", "--help"},
		},
		{
			name:     "command present unchanged",
			args:     []string{"sheetctl", "run"},
			expected: []string{"sheetctl", "run"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := handleNakedCommand(tt.args)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("handleNakedCommand(%v) = %v, want %v", tt.args, result, tt.expected)
			}
		})
	}
}
