/*
match.go - Fuzzy matching cascade for joining ledgers on ingredient identity

PURPOSE:
  Canonicalization alone cannot unify every pair of datasets (a usage-ledger
  name vs an inventory-master name may still differ). Matching runs an
  ordered cascade of strategies, stopping at the first success. The cascade
  is built ONCE and injected everywhere two ledgers are joined; ad hoc
  per-call-site matching drifts and makes waste/viability numbers diverge.

STRATEGY ORDER:
  1. exact       - canonical equality
  2. substring   - containment either direction, length-gated
  3. compound    - one side's compound constituents contain the other
  4. tokens      - any shared word
  5. containment - suffix-stripped raw containment, length-gated

Symmetry: Match(a, b) == Match(b, a) for every strategy.
*/
package ingredient

import (
	"strings"
)

// =============================================================================
// STRATEGY CHAIN
// =============================================================================

// Strategy is one tier of the matching cascade.
type Strategy struct {
	Name string
	Fn   func(a, b string) bool
}

// Matcher runs the cascade in fixed order.
type Matcher struct {
	strategies []Strategy
}

// NewMatcher builds the standard cascade.
func NewMatcher() *Matcher {
	return &Matcher{
		strategies: []Strategy{
			{Name: "exact", Fn: matchExact},
			{Name: "substring", Fn: matchSubstring},
			{Name: "compound", Fn: matchCompound},
			{Name: "tokens", Fn: matchTokens},
			{Name: "containment", Fn: matchContainment},
		},
	}
}

// Match reports whether two raw ingredient names denote the same identity.
func (m *Matcher) Match(a, b string) bool {
	_, ok := m.MatchStrategy(a, b)
	return ok
}

// MatchStrategy additionally reports which tier succeeded.
func (m *Matcher) MatchStrategy(a, b string) (string, bool) {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return "", false
	}
	for _, s := range m.strategies {
		if s.Fn(a, b) {
			return s.Name, true
		}
	}
	return "", false
}

// FindMatch returns the first candidate the cascade matches against name.
// Candidates are tried in slice order per strategy tier, so results are
// deterministic for a fixed candidate ordering.
func (m *Matcher) FindMatch(name string, candidates []string) (string, bool) {
	for _, s := range m.strategies {
		for _, c := range candidates {
			if strings.TrimSpace(name) == "" || strings.TrimSpace(c) == "" {
				continue
			}
			if s.Fn(name, c) {
				return c, true
			}
		}
	}
	return "", false
}

// =============================================================================
// STRATEGIES
// =============================================================================

func matchExact(a, b string) bool {
	return strings.EqualFold(Normalize(a), Normalize(b))
}

// matchSubstring accepts containment in either direction. The shorter side
// must be at least 3 characters so fragments like "g" cannot join unrelated
// ingredients.
func matchSubstring(a, b string) bool {
	la := strings.ToLower(Normalize(a))
	lb := strings.ToLower(Normalize(b))
	shorter := la
	if len(lb) < len(shorter) {
		shorter = lb
	}
	if len(shorter) < 3 {
		return false
	}
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

// matchCompound matches when either side is a compound name and any of its
// constituents equals the other side's canonical form.
func matchCompound(a, b string) bool {
	if IsCompound(a) {
		cb := Normalize(b)
		for _, part := range SplitCompound(a) {
			if strings.EqualFold(part, cb) {
				return true
			}
		}
	}
	if IsCompound(b) {
		ca := Normalize(a)
		for _, part := range SplitCompound(b) {
			if strings.EqualFold(part, ca) {
				return true
			}
		}
	}
	return false
}

// matchTokens accepts any shared word between the two canonical names.
func matchTokens(a, b string) bool {
	ta := strings.Fields(strings.ToLower(Normalize(a)))
	tb := strings.Fields(strings.ToLower(Normalize(b)))
	for _, wa := range ta {
		if len(wa) < 3 {
			continue
		}
		for _, wb := range tb {
			if wa == wb {
				return true
			}
		}
	}
	return false
}

// matchContainment is the last-resort tier: suffix-stripped raw strings,
// containment either direction, shorter side at least 3 characters.
func matchContainment(a, b string) bool {
	la := stripRaw(a)
	lb := stripRaw(b)
	shorter := la
	if len(lb) < len(shorter) {
		shorter = lb
	}
	if len(shorter) < 3 {
		return false
	}
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

func stripRaw(s string) string {
	lowered := strings.ToLower(strings.TrimSpace(s))
	for _, suffix := range strippedSuffixes {
		lowered = strings.ReplaceAll(lowered, suffix, " ")
	}
	return strings.Join(strings.Fields(lowered), " ")
}
