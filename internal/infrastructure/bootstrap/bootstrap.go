// Package bootstrap assembles the ledger service on gorm, Redis, casbin and
// prometheus.
package bootstrap

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/geofoncier/geofoncier/internal/application/ledger"
	"github.com/geofoncier/geofoncier/internal/domain/dossier"
	"github.com/geofoncier/geofoncier/internal/domain/property"
	"github.com/geofoncier/geofoncier/internal/infrastructure/audit"
	"github.com/geofoncier/geofoncier/internal/infrastructure/cache"
	"github.com/geofoncier/geofoncier/internal/infrastructure/metrics"
	"github.com/geofoncier/geofoncier/internal/infrastructure/repository"
	sharedConfig "github.com/geofoncier/geofoncier/internal/shared/config"
	"github.com/geofoncier/geofoncier/internal/shared/db"
	"github.com/geofoncier/geofoncier/internal/shared/logger"
)

// Options carries the optional collaborators. A nil Redis client disables
// the status cache, a nil Registerer disables metrics, and a nil Policy
// lets every actor modify an open dossier. StatusCache, when set, is used
// in place of the Redis-backed cache.
type Options struct {
	Redis       *redis.Client
	StatusCache property.StatusCache
	Registerer  prometheus.Registerer
	Policy      dossier.AccessPolicy
	Ledger      sharedConfig.LedgerConfig
	Cache       sharedConfig.CacheConfig
}

func NewLedgerService(database *gorm.DB, opts Options, log logger.Interface) *ledger.ServiceDDD {
	var statusCache property.StatusCache = cache.NoopPropertyStatusCache{}
	switch {
	case opts.StatusCache != nil:
		statusCache = opts.StatusCache
	case opts.Redis != nil:
		statusCache = cache.NewRedisPropertyStatusCache(opts.Redis, opts.Cache.StatusTTL(), log.Named("status_cache"))
	}

	var m *metrics.Metrics
	if opts.Registerer != nil {
		m = metrics.New(opts.Registerer)
	}

	recorder := audit.NewActivityLogRecorder(database, log.Named("activity_log"))

	return ledger.NewServiceDDD(ledger.Dependencies{
		ClaimRepo:         repository.NewClaimRepository(database, log.Named("claim_repository")),
		PropertyRepo:      repository.NewPropertyRepository(database),
		DossierRepo:       repository.NewDossierRepository(database),
		RequesterRepo:     repository.NewRequesterRepository(database),
		TxMgr:             db.NewTransactionManager(database),
		StatusCache:       statusCache,
		Policy:            opts.Policy,
		Recorder:          recorder,
		ActivityReader:    recorder,
		Metrics:           m,
		RankRetryAttempts: opts.Ledger.RankRetryAttempts,
		Logger:            log,
	})
}
