package claim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ranksOf(claims []*Claim) map[uint]int {
	out := make(map[uint]int, len(claims))
	for _, c := range claims {
		out[c.ID()] = c.Rank()
	}
	return out
}

func TestNextRank(t *testing.T) {
	assert.Equal(t, 1, NextRank(nil))
	assert.Equal(t, 3, NextRank([]*Claim{activeClaim(t, 1, 1), activeClaim(t, 2, 2)}))
	assert.Equal(t, 2, NextRank([]*Claim{activeClaim(t, 1, 1), archivedClaim(t, 2, 5)}),
		"archived ranks are ignored")
}

func TestReindex(t *testing.T) {
	t.Run("closes gaps keeping order", func(t *testing.T) {
		c1 := activeClaim(t, 1, 1)
		c3 := activeClaim(t, 3, 3)
		c4 := activeClaim(t, 4, 5)

		changed, err := Reindex([]*Claim{c4, c1, c3})
		require.NoError(t, err)

		assert.Equal(t, map[uint]int{1: 1, 3: 2, 4: 3}, ranksOf([]*Claim{c1, c3, c4}))
		assert.ElementsMatch(t, []*Claim{c3, c4}, changed)
		assert.NoError(t, VerifyRanks([]*Claim{c1, c3, c4}))
	})

	t.Run("ties broken by id", func(t *testing.T) {
		a := activeClaim(t, 8, 2)
		b := activeClaim(t, 5, 2)

		_, err := Reindex([]*Claim{a, b})
		require.NoError(t, err)
		assert.Equal(t, 1, b.Rank())
		assert.Equal(t, 2, a.Rank())
	})

	t.Run("already contiguous changes nothing", func(t *testing.T) {
		changed, err := Reindex([]*Claim{activeClaim(t, 1, 1), activeClaim(t, 2, 2)})
		require.NoError(t, err)
		assert.Empty(t, changed)
	})

	t.Run("rejects archived claims", func(t *testing.T) {
		_, err := Reindex([]*Claim{activeClaim(t, 1, 1), archivedClaim(t, 2, 2)})
		assert.Error(t, err)
	})
}

func TestMakeRoomAt(t *testing.T) {
	c1 := activeClaim(t, 1, 1)
	c2 := activeClaim(t, 2, 2)
	c3 := activeClaim(t, 3, 3)

	moved, err := MakeRoomAt([]*Claim{c1, c2, c3}, 2)
	require.NoError(t, err)
	assert.Equal(t, []*Claim{c3, c2}, moved)
	assert.Equal(t, map[uint]int{1: 1, 2: 3, 3: 4}, ranksOf([]*Claim{c1, c2, c3}))

	moved, err = MakeRoomAt([]*Claim{c1, c2, c3}, 5)
	require.NoError(t, err)
	assert.Empty(t, moved, "appending moves nothing")

	_, err = MakeRoomAt([]*Claim{c1}, 3)
	assert.Error(t, err)
	_, err = MakeRoomAt([]*Claim{c1}, 0)
	assert.Error(t, err)
}

func TestPromote(t *testing.T) {
	t.Run("swaps with the principal", func(t *testing.T) {
		principal := activeClaim(t, 1, 1)
		target := activeClaim(t, 2, 3)

		changed, err := Promote(target, principal)
		require.NoError(t, err)
		assert.Len(t, changed, 2)
		assert.Equal(t, 1, target.Rank())
		assert.False(t, target.IsConsort())
		assert.Equal(t, 3, principal.Rank())
		assert.True(t, principal.IsConsort())
	})

	t.Run("principal is a no-op", func(t *testing.T) {
		p := activeClaim(t, 1, 1)
		changed, err := Promote(p, p)
		require.NoError(t, err)
		assert.Nil(t, changed)
	})

	t.Run("archived target is rejected", func(t *testing.T) {
		_, err := Promote(archivedClaim(t, 2, 2), activeClaim(t, 1, 1))
		assert.Error(t, err)
	})

	t.Run("principal of another property is rejected", func(t *testing.T) {
		other, err := ReconstructClaim(9, 99, 1, 1, "active", 0, nil, testDate, testDate, testDate)
		require.NoError(t, err)
		_, err = Promote(activeClaim(t, 2, 2), other)
		assert.Error(t, err)
	})
}

func TestVerifyRanks(t *testing.T) {
	assert.NoError(t, VerifyRanks(nil))
	assert.NoError(t, VerifyRanks([]*Claim{activeClaim(t, 2, 2), activeClaim(t, 1, 1), archivedClaim(t, 3, 1)}))
	assert.Error(t, VerifyRanks([]*Claim{activeClaim(t, 1, 1), activeClaim(t, 2, 1)}), "duplicate rank")
	assert.Error(t, VerifyRanks([]*Claim{activeClaim(t, 1, 1), activeClaim(t, 2, 3)}), "gap")
	assert.Error(t, VerifyRanks([]*Claim{activeClaim(t, 1, 2)}), "no principal")
}
