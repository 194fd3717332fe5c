// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputValidator(t *testing.T) {
	for _, v := range []string{"text", "table", "json", "raw", "yaml"} {
		assert.NoError(t, OutputValidator(v), v)
	}

	for _, v := range []string{"", "xml", "TEXT", "csv"} {
		assert.Error(t, OutputValidator(v), v)
	}
}

func TestFlagValidators(t *testing.T) {
	pass := func(any) error { return nil }
	fail := func(any) error { return errors.New("nope") }

	assert.NoError(t, FlagValidators("x"))
	assert.NoError(t, FlagValidators("x", pass, pass))
	assert.Error(t, FlagValidators("x", pass, fail))
	assert.Error(t, FlagValidators("x", fail, pass))
}
