// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"errors"
	"fmt"
)

// MaxColumns is the widest supported sheet, label "ZZZ".
const MaxColumns = 18278

// ErrInvalidColumn is returned for column numbers outside [1, MaxColumns].
var ErrInvalidColumn = errors.New("invalid column number")

// ColumnLabel converts a 1-based column number to its spreadsheet label
// (A, B, ..., Z, AA, ...). Labels are bijective base-26: there is no zero
// digit, so AA follows Z.
func ColumnLabel(n int) (string, error) {
	if n < 1 || n > MaxColumns {
		return "", fmt.Errorf("%w: %d", ErrInvalidColumn, n)
	}

	var buf [3]byte
	i := len(buf)
	for n > 0 {
		n--
		i--
		buf[i] = byte('A' + n%26)
		n /= 26
	}
	return string(buf[i:]), nil
}

// ParseColumnLabel is the inverse of ColumnLabel.
func ParseColumnLabel(label string) (int, error) {
	if label == "" {
		return 0, fmt.Errorf("%w: empty label", ErrInvalidColumn)
	}

	n := 0
	for _, r := range label {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidColumn, label)
		}
		n = n*26 + int(r-'A') + 1
	}
	if n > MaxColumns {
		return 0, fmt.Errorf("%w: %q", ErrInvalidColumn, label)
	}
	return n, nil
}
