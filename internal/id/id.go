// Package id generates entity identifiers for the dashboard catalog.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Entity prefixes. Stored ids from older data (e.g. "tool_1712345678") keep
// working because ids are opaque strings everywhere else.
const (
	PrefixCategory = "cat"
	PrefixTool     = "tool"
	PrefixPrompt   = "prompt"
)

// Generator produces a fresh id for the given prefix.
type Generator func(prefix string) (string, error)

// Generate creates a prefixed id of the form "prefix-<nanoid>".
//
// The NanoID part carries ~126 bits of randomness and does not depend on the
// wall clock, so entities created in the same tick never collide.
func Generate(prefix string) (string, error) {
	nid, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + nid, nil
}

// Sequence returns a Generator that hands out "prefix-1", "prefix-2", ...
// per prefix. Used where deterministic ids are needed (tests, seeding).
func Sequence() Generator {
	counters := make(map[string]int)
	return func(prefix string) (string, error) {
		counters[prefix]++
		return fmt.Sprintf("%s-%d", prefix, counters[prefix]), nil
	}
}
