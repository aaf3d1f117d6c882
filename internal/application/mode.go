package application

import (
	"fmt"
	"strings"
)

// Mode is a set of independent client flags.
type Mode uint8

const (
	// ModeVerbose logs where every table came from at Info level.
	ModeVerbose Mode = 1 << iota
	// ModeDebug reads tables from the snapshot store before calling the broker.
	ModeDebug
	// ModeDumpToFile saves every table loaded from the broker as a snapshot.
	ModeDumpToFile
)

var modeNames = []struct {
	mode Mode
	name string
}{
	{ModeVerbose, "verbose"},
	{ModeDebug, "debug"},
	{ModeDumpToFile, "dump"},
}

func (m Mode) Has(flag Mode) bool {
	return m&flag == flag
}

func (m Mode) String() string {
	var names []string
	for _, mn := range modeNames {
		if m.Has(mn.mode) {
			names = append(names, mn.name)
		}
	}
	return strings.Join(names, ",")
}

// ParseMode reads a comma separated flag list such as "verbose,debug".
func ParseMode(s string) (Mode, error) {
	var m Mode
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		found := false
		for _, mn := range modeNames {
			if mn.name == part {
				m |= mn.mode
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown mode flag %q", part)
		}
	}
	return m, nil
}
