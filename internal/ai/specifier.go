package ai

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse resolves a CLI AI specifier string to a Driver. Two forms are
// accepted: "follower" (tracking actor id 0) and "follower:<actor-id>"
// (tracking the given id). Any other form is rejected, since Follower is
// currently the only concrete strategy.
func Parse(spec string) (Driver, error) {
	name, arg, hasArg := strings.Cut(spec, ":")
	switch name {
	case "follower":
		if !hasArg {
			return NewFollower(0), nil
		}
		id, err := strconv.ParseUint(arg, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("ai: invalid actor id %q in specifier %q: %w", arg, spec, err)
		}
		return NewFollower(uint32(id)), nil
	default:
		return nil, fmt.Errorf("ai: unknown strategy %q in specifier %q", name, spec)
	}
}
