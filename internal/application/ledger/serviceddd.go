// Package ledger is the entry point callers use for every claim, property,
// requester and dossier operation.
package ledger

import (
	"context"

	activitydto "github.com/geofoncier/geofoncier/internal/application/activity/dto"
	activityuc "github.com/geofoncier/geofoncier/internal/application/activity/usecases"
	claimdto "github.com/geofoncier/geofoncier/internal/application/claim/dto"
	claimuc "github.com/geofoncier/geofoncier/internal/application/claim/usecases"
	dossierdto "github.com/geofoncier/geofoncier/internal/application/dossier/dto"
	"github.com/geofoncier/geofoncier/internal/application/dossier/gate"
	dossieruc "github.com/geofoncier/geofoncier/internal/application/dossier/usecases"
	propertydto "github.com/geofoncier/geofoncier/internal/application/property/dto"
	propertyuc "github.com/geofoncier/geofoncier/internal/application/property/usecases"
	requesterdto "github.com/geofoncier/geofoncier/internal/application/requester/dto"
	requesteruc "github.com/geofoncier/geofoncier/internal/application/requester/usecases"
	"github.com/geofoncier/geofoncier/internal/domain/claim"
	"github.com/geofoncier/geofoncier/internal/domain/dossier"
	"github.com/geofoncier/geofoncier/internal/domain/property"
	"github.com/geofoncier/geofoncier/internal/domain/requester"
	"github.com/geofoncier/geofoncier/internal/domain/shared/audit"
	"github.com/geofoncier/geofoncier/internal/infrastructure/metrics"
	"github.com/geofoncier/geofoncier/internal/shared/db"
	"github.com/geofoncier/geofoncier/internal/shared/logger"
)

// Dependencies are the ports the service is built from. StatusCache,
// Policy, Recorder, ActivityReader and Metrics are optional.
type Dependencies struct {
	ClaimRepo         claim.Repository
	PropertyRepo      property.Repository
	DossierRepo       dossier.Repository
	RequesterRepo     requester.Repository
	TxMgr             db.Transactor
	StatusCache       property.StatusCache
	Policy            dossier.AccessPolicy
	Recorder          audit.Recorder
	ActivityReader    audit.Reader
	Metrics           *metrics.Metrics
	RankRetryAttempts int
	Logger            logger.Interface
}

type ServiceDDD struct {
	createClaim       *claimuc.CreateClaimUseCase
	archiveClaim      *claimuc.ArchiveClaimUseCase
	unarchiveClaim    *claimuc.UnarchiveClaimUseCase
	removeClaim       *claimuc.RemoveClaimUseCase
	promoteClaim      *claimuc.PromoteClaimUseCase
	archiveProperty   *claimuc.ArchivePropertyUseCase
	unarchiveProperty *claimuc.UnarchivePropertyUseCase
	listClaims        *claimuc.ListClaimsUseCase

	resolveStatus  *propertyuc.ResolvePropertyStatusUseCase
	createProperty *propertyuc.CreatePropertyUseCase
	updateProperty *propertyuc.UpdatePropertyUseCase
	deleteProperty *propertyuc.DeletePropertyUseCase

	createDossier *dossieruc.CreateDossierUseCase
	getDossier    *dossieruc.GetDossierUseCase
	closeDossier  *dossieruc.CloseDossierUseCase
	reopenDossier *dossieruc.ReopenDossierUseCase

	createRequester *requesteruc.CreateRequesterUseCase
	updateRequester *requesteruc.UpdateRequesterUseCase

	listActivity *activityuc.ListActivityUseCase
}

func NewServiceDDD(deps Dependencies) *ServiceDDD {
	log := deps.Logger
	if log == nil {
		log = logger.NewNop()
	}

	recorder := deps.Recorder
	g := gate.New(deps.DossierRepo, deps.Policy, deps.Metrics, log.Named("gate"))

	var invalidator property.StatusInvalidator = deps.StatusCache

	ledgerDeps := claimuc.LedgerDeps{
		ClaimRepo:    deps.ClaimRepo,
		PropertyRepo: deps.PropertyRepo,
		Gate:         g,
		TxMgr:        deps.TxMgr,
		StatusCache:  invalidator,
		Recorder:     recorder,
		Metrics:      deps.Metrics,
		Logger:       log.Named("ledger"),
	}

	return &ServiceDDD{
		createClaim:       claimuc.NewCreateClaimUseCase(ledgerDeps, deps.RequesterRepo, deps.RankRetryAttempts),
		archiveClaim:      claimuc.NewArchiveClaimUseCase(ledgerDeps),
		unarchiveClaim:    claimuc.NewUnarchiveClaimUseCase(ledgerDeps),
		removeClaim:       claimuc.NewRemoveClaimUseCase(ledgerDeps),
		promoteClaim:      claimuc.NewPromoteClaimUseCase(ledgerDeps),
		archiveProperty:   claimuc.NewArchivePropertyUseCase(ledgerDeps),
		unarchiveProperty: claimuc.NewUnarchivePropertyUseCase(ledgerDeps),
		listClaims:        claimuc.NewListClaimsUseCase(deps.ClaimRepo, deps.PropertyRepo, log),

		resolveStatus:  propertyuc.NewResolvePropertyStatusUseCase(deps.PropertyRepo, deps.ClaimRepo, deps.DossierRepo, deps.StatusCache, deps.Metrics, log.Named("status")),
		createProperty: propertyuc.NewCreatePropertyUseCase(deps.PropertyRepo, g, deps.TxMgr, log),
		updateProperty: propertyuc.NewUpdatePropertyUseCase(deps.PropertyRepo, deps.ClaimRepo, deps.DossierRepo, g, deps.TxMgr, recorder, log),
		deleteProperty: propertyuc.NewDeletePropertyUseCase(deps.PropertyRepo, deps.ClaimRepo, deps.DossierRepo, g, deps.TxMgr, invalidator, recorder, log),

		createDossier: dossieruc.NewCreateDossierUseCase(deps.DossierRepo, log),
		getDossier:    dossieruc.NewGetDossierUseCase(deps.DossierRepo, log),
		closeDossier:  dossieruc.NewCloseDossierUseCase(deps.DossierRepo, g, deps.TxMgr, recorder, log),
		reopenDossier: dossieruc.NewReopenDossierUseCase(deps.DossierRepo, g, deps.TxMgr, recorder, log),

		createRequester: requesteruc.NewCreateRequesterUseCase(deps.RequesterRepo, g, deps.TxMgr, log),
		updateRequester: requesteruc.NewUpdateRequesterUseCase(deps.RequesterRepo, g, deps.TxMgr, log),

		listActivity: activityuc.NewListActivityUseCase(deps.ActivityReader, log.Named("activity")),
	}
}

func (s *ServiceDDD) CreateClaim(ctx context.Context, cmd claimuc.CreateClaimCommand) (*claimdto.ClaimDTO, error) {
	return s.createClaim.Execute(ctx, cmd)
}

// Archive returns false when the claim was already archived.
func (s *ServiceDDD) Archive(ctx context.Context, cmd claimuc.ArchiveClaimCommand) (bool, error) {
	return s.archiveClaim.Execute(ctx, cmd)
}

// Unarchive returns false when the claim was already active.
func (s *ServiceDDD) Unarchive(ctx context.Context, cmd claimuc.UnarchiveClaimCommand) (bool, error) {
	return s.unarchiveClaim.Execute(ctx, cmd)
}

func (s *ServiceDDD) RemoveClaim(ctx context.Context, cmd claimuc.RemoveClaimCommand) error {
	return s.removeClaim.Execute(ctx, cmd)
}

// PromoteToMain returns false when the claim already holds rank 1.
func (s *ServiceDDD) PromoteToMain(ctx context.Context, cmd claimuc.PromoteClaimCommand) (bool, error) {
	return s.promoteClaim.Execute(ctx, cmd)
}

func (s *ServiceDDD) ArchiveProperty(ctx context.Context, cmd claimuc.ArchivePropertyCommand) (int, error) {
	return s.archiveProperty.Execute(ctx, cmd)
}

func (s *ServiceDDD) UnarchiveProperty(ctx context.Context, cmd claimuc.UnarchivePropertyCommand) (int, error) {
	return s.unarchiveProperty.Execute(ctx, cmd)
}

func (s *ServiceDDD) ListClaims(ctx context.Context, propertyID uint) ([]*claimdto.ClaimDTO, error) {
	return s.listClaims.Execute(ctx, claimuc.ListClaimsQuery{PropertyID: propertyID})
}

func (s *ServiceDDD) ResolveStatus(ctx context.Context, propertyID uint) (*propertydto.PropertyStatusDTO, error) {
	return s.resolveStatus.Execute(ctx, propertyuc.ResolvePropertyStatusQuery{PropertyID: propertyID})
}

func (s *ServiceDDD) CreateProperty(ctx context.Context, cmd propertyuc.CreatePropertyCommand) (*propertydto.PropertyDTO, error) {
	return s.createProperty.Execute(ctx, cmd)
}

func (s *ServiceDDD) UpdateProperty(ctx context.Context, cmd propertyuc.UpdatePropertyCommand) (*propertydto.PropertyDTO, error) {
	return s.updateProperty.Execute(ctx, cmd)
}

func (s *ServiceDDD) DeleteProperty(ctx context.Context, cmd propertyuc.DeletePropertyCommand) error {
	return s.deleteProperty.Execute(ctx, cmd)
}

func (s *ServiceDDD) CreateDossier(ctx context.Context, cmd dossieruc.CreateDossierCommand) (*dossierdto.DossierDTO, error) {
	return s.createDossier.Execute(ctx, cmd)
}

func (s *ServiceDDD) GetDossier(ctx context.Context, dossierID uint) (*dossierdto.DossierDTO, error) {
	return s.getDossier.Execute(ctx, dossieruc.GetDossierQuery{DossierID: dossierID})
}

// CloseDossier returns false when the dossier was already closed.
func (s *ServiceDDD) CloseDossier(ctx context.Context, cmd dossieruc.CloseDossierCommand) (bool, error) {
	return s.closeDossier.Execute(ctx, cmd)
}

// ReopenDossier returns false when the dossier was already open.
func (s *ServiceDDD) ReopenDossier(ctx context.Context, cmd dossieruc.ReopenDossierCommand) (bool, error) {
	return s.reopenDossier.Execute(ctx, cmd)
}

func (s *ServiceDDD) CreateRequester(ctx context.Context, cmd requesteruc.CreateRequesterCommand) (*requesterdto.RequesterDTO, error) {
	return s.createRequester.Execute(ctx, cmd)
}

// ListActivity returns the recorded events of a dossier, claim or property,
// oldest first.
func (s *ServiceDDD) ListActivity(ctx context.Context, query activityuc.ListActivityQuery) ([]*activitydto.ActivityDTO, error) {
	return s.listActivity.Execute(ctx, query)
}

func (s *ServiceDDD) UpdateRequester(ctx context.Context, cmd requesteruc.UpdateRequesterCommand) (*requesterdto.RequesterDTO, error) {
	return s.updateRequester.Execute(ctx, cmd)
}
