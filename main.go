// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sheetctl/sheetctl/internal/cacheutil"
	"github.com/sheetctl/sheetctl/internal/command"
	"github.com/sheetctl/sheetctl/internal/config"
	"github.com/sheetctl/sheetctl/internal/log"
	"github.com/sheetctl/sheetctl/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	// Pre-create cache directory when caching is enabled.
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil && ok {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("cache ensure err: err=%v", err)
	}

	// Expire stale cache entries per the cache.clean config value (hours).
	if hours, err := config.GetInt("cache.clean", 0); err == nil && hours > 0 {
		if err := cacheutil.Purge(hours); err != nil {
			log.Debugf("cache purge err: err=%v", err)
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip argument processing and let the CLI
	// handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processSetOnly(args)
		log.Debugf("args after set processing: args=%v", args)

		args = deduplicateFlags(args)
		log.Debugf("args after dedup: args=%v", args)
	}

	return initAndRunApp(args)
}

// processSetOnly handles the @set logic for all commands, expanding set
// arguments at the @set position.
func processSetOnly(args []string) []string {
	// Look for an explicit @set argument starting from index 2.
	idx := 2
	set := "defaults"
	removeIdx := -1
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") {
			set = a[1:]
			removeIdx = idx + i
			break
		}
	}
	if removeIdx != -1 {
		// Remove the @set argument.
		args = append(args[:removeIdx], args[removeIdx+1:]...)
		// Expand the set arguments at the removeIdx position.
		setArgs, _ := config.GetStringSlice(args[1] + "." + set)
		for _, arg := range setArgs {
			parts := strings.Fields(arg)
			args = append(args[:removeIdx], append(parts, args[removeIdx:]...)...)
			removeIdx += len(parts)
		}
	}
	return args
}

// deduplicateFlags drops all but the last occurrence of a repeated flag so
// config-set defaults can be overridden on the command line. Positional
// arguments are preserved in order.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type unit struct {
		name   string // empty for positionals
		tokens []string
	}

	var units []unit
	rest := args[2:]
	for i := 0; i < len(rest); i++ {
		a := rest[i]
		if !strings.HasPrefix(a, "-") {
			units = append(units, unit{tokens: []string{a}})
			continue
		}

		name := strings.TrimLeft(a, "-")
		if eq := strings.IndexByte(name, '='); eq != -1 {
			// --flag=value is self-contained.
			units = append(units, unit{name: name[:eq], tokens: []string{a}})
			continue
		}

		// A flag followed by a non-flag token consumes it as its value.
		if i+1 < len(rest) && !strings.HasPrefix(rest[i+1], "-") {
			units = append(units, unit{name: name, tokens: []string{a, rest[i+1]}})
			i++
			continue
		}
		units = append(units, unit{name: name, tokens: []string{a}})
	}

	// Keep only the last occurrence of each named flag, in its last position.
	lastIdx := make(map[string]int, len(units))
	for i, u := range units {
		if u.name != "" {
			lastIdx[u.name] = i
		}
	}

	result := make([]string, 0, len(args))
	result = append(result, args[:2]...)
	for i, u := range units {
		if u.name != "" && lastIdx[u.name] != i {
			continue
		}
		result = append(result, u.tokens...)
	}
	return result
}
