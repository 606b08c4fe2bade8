package mapper

import (
	"fmt"
	"strings"
)

// Role markers as they appear in catalog staff role labels.
const (
	DirectorRole = "監督"
	StudioRole   = "アニメーション制作"
)

// Match policy names accepted by ParseMatchPolicy.
const (
	MatchExact    = "exact"
	MatchContains = "contains"
)

// RoleMatcher decides whether a staff role label selects that staff member.
type RoleMatcher struct {
	name  string
	match func(roleText string) bool
}

// Match reports whether roleText satisfies the rule.
func (m RoleMatcher) Match(roleText string) bool {
	if m.match == nil {
		return false
	}
	return m.match(roleText)
}

func (m RoleMatcher) String() string {
	return m.name
}

// ExactRole matches role labels equal to marker after trimming surrounding
// whitespace. "助監督" does not match "監督".
func ExactRole(marker string) RoleMatcher {
	return RoleMatcher{
		name: fmt.Sprintf("exact(%s)", marker),
		match: func(roleText string) bool {
			return strings.TrimSpace(roleText) == marker
		},
	}
}

// ContainsRole matches role labels containing marker anywhere.
func ContainsRole(marker string) RoleMatcher {
	return RoleMatcher{
		name: fmt.Sprintf("contains(%s)", marker),
		match: func(roleText string) bool {
			return strings.Contains(roleText, marker)
		},
	}
}

// ParseMatchPolicy builds the matcher for marker under the named policy.
func ParseMatchPolicy(policy, marker string) (RoleMatcher, error) {
	switch strings.ToLower(strings.TrimSpace(policy)) {
	case MatchExact, "":
		return ExactRole(marker), nil
	case MatchContains:
		return ContainsRole(marker), nil
	default:
		return RoleMatcher{}, fmt.Errorf("unknown role match policy %q (want %q or %q)", policy, MatchExact, MatchContains)
	}
}
