package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/geofoncier/geofoncier/internal/domain/claim"
	"github.com/geofoncier/geofoncier/internal/domain/dossier"
	"github.com/geofoncier/geofoncier/internal/domain/property"
	"github.com/geofoncier/geofoncier/internal/domain/requester"
	"github.com/geofoncier/geofoncier/internal/infrastructure/persistence/testdb"
	db "github.com/geofoncier/geofoncier/internal/shared/db"
	"github.com/geofoncier/geofoncier/internal/shared/errors"
	"github.com/geofoncier/geofoncier/internal/shared/logger"
)

var claimDate = time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)

type ledgerFixture struct {
	db         *gorm.DB
	claims     *ClaimRepository
	properties *PropertyRepository
	dossiers   *DossierRepository
	requesters *RequesterRepository
	dossierID  uint
	propertyID uint
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	gdb := testdb.New(t)
	f := &ledgerFixture{
		db:         gdb,
		claims:     NewClaimRepository(gdb, logger.NewNop()),
		properties: NewPropertyRepository(gdb),
		dossiers:   NewDossierRepository(gdb),
		requesters: NewRequesterRepository(gdb),
	}
	ctx := context.Background()

	d, err := dossier.NewDossier("DOS-1", "Lotissement Sud")
	require.NoError(t, err)
	require.NoError(t, f.dossiers.Create(ctx, d))
	f.dossierID = d.ID()

	p, err := property.NewProperty(d.ID(), "L-1", 120, "nu", "agricole")
	require.NoError(t, err)
	require.NoError(t, f.properties.Create(ctx, p))
	f.propertyID = p.ID()
	return f
}

func (f *ledgerFixture) addClaim(t *testing.T, rank int) *claim.Claim {
	t.Helper()
	ctx := context.Background()
	r, err := requester.NewRequester(f.dossierID, requester.Identity{LastName: "Ndiaye"})
	require.NoError(t, err)
	require.NoError(t, f.requesters.Create(ctx, r))

	c, err := claim.NewClaim(f.propertyID, r.ID(), rank, 1000, claimDate)
	require.NoError(t, err)
	require.NoError(t, f.claims.Create(ctx, c))
	return c
}

func TestClaimRepository_CreateRejectsDuplicateActiveRank(t *testing.T) {
	f := newLedgerFixture(t)
	f.addClaim(t, 1)

	r, err := requester.NewRequester(f.dossierID, requester.Identity{LastName: "Fall"})
	require.NoError(t, err)
	require.NoError(t, f.requesters.Create(context.Background(), r))
	dup, err := claim.NewClaim(f.propertyID, r.ID(), 1, 0, claimDate)
	require.NoError(t, err)

	err = f.claims.Create(context.Background(), dup)
	require.Error(t, err)
	assert.True(t, errors.IsRankConflictError(err))
}

func TestClaimRepository_ArchivedRankDoesNotCollide(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	c1 := f.addClaim(t, 1)

	require.True(t, c1.MarkArchived("sold", 1, claimDate))
	require.NoError(t, f.claims.Update(ctx, c1))

	c2 := f.addClaim(t, 1)

	got, err := f.claims.GetByID(ctx, c1.ID())
	require.NoError(t, err)
	assert.True(t, got.IsArchived())
	assert.Equal(t, 1, got.Rank(), "archived rank is frozen")
	assert.Equal(t, "sold", got.ArchiveReason())

	principal, err := f.claims.FindPrincipal(ctx, f.propertyID)
	require.NoError(t, err)
	require.NotNil(t, principal)
	assert.Equal(t, c2.ID(), principal.ID())
}

func TestClaimRepository_UpdateRanksSwap(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	c1 := f.addClaim(t, 1)
	c2 := f.addClaim(t, 2)

	changed, err := claim.Promote(c2, c1)
	require.NoError(t, err)

	tx := db.NewTransactionManager(f.db)
	require.NoError(t, tx.RunInTransaction(ctx, func(ctx context.Context) error {
		return f.claims.UpdateRanks(ctx, changed)
	}))

	active, err := f.claims.ListActiveByProperty(ctx, f.propertyID)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, c2.ID(), active[0].ID())
	assert.Equal(t, 1, active[0].Rank())
	assert.False(t, active[0].IsConsort())
	assert.Equal(t, c1.ID(), active[1].ID())
	assert.True(t, active[1].IsConsort())
	assert.NoError(t, claim.VerifyRanks(active))
}

func TestClaimRepository_ListAndCount(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	counts, err := f.claims.CountByStatus(ctx, f.propertyID)
	require.NoError(t, err)
	assert.Equal(t, claim.Counts{}, counts)

	c1 := f.addClaim(t, 1)
	c2 := f.addClaim(t, 2)
	c3 := f.addClaim(t, 3)

	require.True(t, c1.MarkArchived("withdrawn", 1, claimDate))
	require.NoError(t, f.claims.Update(ctx, c1))

	counts, err = f.claims.CountByStatus(ctx, f.propertyID)
	require.NoError(t, err)
	assert.Equal(t, claim.Counts{Active: 2, Archived: 1}, counts)

	all, err := f.claims.ListByProperty(ctx, f.propertyID)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uint{c2.ID(), c3.ID(), c1.ID()}, []uint{all[0].ID(), all[1].ID(), all[2].ID()},
		"active claims by rank, then archived")
}

func TestClaimRepository_DeleteAndNotFound(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	c := f.addClaim(t, 1)

	require.NoError(t, f.claims.Delete(ctx, c.ID()))

	_, err := f.claims.GetByID(ctx, c.ID())
	assert.True(t, errors.IsNotFoundError(err))
	assert.True(t, errors.IsNotFoundError(f.claims.Delete(ctx, c.ID())))

	principal, err := f.claims.FindPrincipal(ctx, f.propertyID)
	require.NoError(t, err)
	assert.Nil(t, principal)
}

func TestDossierRepository_ClosureRoundTrip(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	d, err := f.dossiers.GetByIDForUpdate(ctx, f.dossierID)
	require.NoError(t, err)
	require.True(t, d.Close(9, "signed", claimDate))
	require.NoError(t, f.dossiers.Update(ctx, d))

	got, err := f.dossiers.GetByIDForShare(ctx, f.dossierID)
	require.NoError(t, err)
	require.True(t, got.IsClosed())
	assert.Equal(t, uint(9), got.Closure().ClosedBy())
	assert.Equal(t, "signed", got.Closure().Reason())

	require.True(t, got.Reopen(claimDate.Add(time.Hour)))
	require.NoError(t, f.dossiers.Update(ctx, got))

	got, err = f.dossiers.GetByID(ctx, f.dossierID)
	require.NoError(t, err)
	assert.True(t, got.IsOpen())
}

func TestPropertyRepository_UpdateAndDelete(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	p, err := f.properties.GetByIDForUpdate(ctx, f.propertyID)
	require.NoError(t, err)
	title := "TF-77"
	require.NoError(t, p.ApplyDetails(property.Details{TitleNumber: &title}))
	require.NoError(t, f.properties.Update(ctx, p))

	got, err := f.properties.GetByID(ctx, f.propertyID)
	require.NoError(t, err)
	require.NotNil(t, got.TitleNumber())
	assert.Equal(t, "TF-77", *got.TitleNumber())

	list, err := f.properties.ListByDossier(ctx, f.dossierID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, f.properties.Delete(ctx, f.propertyID))
	_, err = f.properties.GetByID(ctx, f.propertyID)
	assert.True(t, errors.IsNotFoundError(err))
}
