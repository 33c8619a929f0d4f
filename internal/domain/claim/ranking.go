package claim

import (
	"fmt"
	"sort"
)

// NextRank returns the rank a newly active claim takes: one past the
// highest active rank, or PrincipalRank for a property without active claims.
func NextRank(active []*Claim) int {
	highest := 0
	for _, c := range active {
		if c.IsActive() && c.rank > highest {
			highest = c.rank
		}
	}
	return highest + 1
}

// SortByRank orders claims by rank, then by ID for equal ranks.
func SortByRank(claims []*Claim) {
	sort.SliceStable(claims, func(i, j int) bool {
		if claims[i].rank != claims[j].rank {
			return claims[i].rank < claims[j].rank
		}
		return claims[i].id < claims[j].id
	})
}

// Reindex renumbers the active claims of one property to 1..N keeping
// their current relative order. It returns the claims whose rank changed.
func Reindex(active []*Claim) ([]*Claim, error) {
	ordered := make([]*Claim, 0, len(active))
	for _, c := range active {
		if !c.IsActive() {
			return nil, fmt.Errorf("claim %d is not active and cannot be reindexed", c.id)
		}
		ordered = append(ordered, c)
	}
	SortByRank(ordered)

	var changed []*Claim
	for i, c := range ordered {
		want := i + PrincipalRank
		if c.rank == want {
			continue
		}
		if err := c.AssignRank(want); err != nil {
			return nil, err
		}
		changed = append(changed, c)
	}
	return changed, nil
}

// MakeRoomAt shifts every active claim holding rank or higher down by one
// so a new claim can take rank. rank must lie in 1..N+1. It returns the
// claims that moved, highest rank first.
func MakeRoomAt(active []*Claim, rank int) ([]*Claim, error) {
	next := NextRank(active)
	if rank < PrincipalRank || rank > next {
		return nil, fmt.Errorf("rank %d is outside 1..%d", rank, next)
	}

	ordered := make([]*Claim, 0, len(active))
	for _, c := range active {
		if c.IsActive() && c.rank >= rank {
			ordered = append(ordered, c)
		}
	}
	SortByRank(ordered)

	moved := make([]*Claim, 0, len(ordered))
	for i := len(ordered) - 1; i >= 0; i-- {
		c := ordered[i]
		if err := c.AssignRank(c.rank + 1); err != nil {
			return nil, err
		}
		moved = append(moved, c)
	}
	return moved, nil
}

// Promote makes target the principal claim. The previous principal, when
// there is one, takes target's old rank. It returns the claims that changed;
// an empty result means target already was the principal.
func Promote(target *Claim, principal *Claim) ([]*Claim, error) {
	if !target.IsActive() {
		return nil, fmt.Errorf("claim %d is archived and cannot be promoted", target.id)
	}
	if target.IsPrincipal() {
		return nil, nil
	}
	if principal != nil {
		if principal.id == target.id {
			return nil, nil
		}
		if principal.propertyID != target.propertyID {
			return nil, fmt.Errorf("claims %d and %d belong to different properties", target.id, principal.id)
		}
		if !principal.IsActive() || !principal.IsPrincipal() {
			return nil, fmt.Errorf("claim %d is not the active principal", principal.id)
		}
	}

	oldRank := target.rank
	if err := target.AssignRank(PrincipalRank); err != nil {
		return nil, err
	}
	if principal == nil {
		return []*Claim{target}, nil
	}
	if err := principal.AssignRank(oldRank); err != nil {
		return nil, err
	}
	return []*Claim{target, principal}, nil
}

// VerifyRanks checks that the active claims of one property hold the ranks
// 1..N exactly once each.
func VerifyRanks(active []*Claim) error {
	seen := make(map[int]uint, len(active))
	n := 0
	for _, c := range active {
		if !c.IsActive() {
			continue
		}
		n++
		if other, dup := seen[c.rank]; dup {
			return fmt.Errorf("claims %d and %d both hold rank %d", other, c.id, c.rank)
		}
		seen[c.rank] = c.id
	}
	for r := PrincipalRank; r <= n; r++ {
		if _, ok := seen[r]; !ok {
			return fmt.Errorf("active ranks have a gap at %d", r)
		}
	}
	return nil
}
