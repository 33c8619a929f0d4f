package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/geofoncier/geofoncier/internal/domain/property"
	vo "github.com/geofoncier/geofoncier/internal/domain/property/valueobjects"
	"github.com/geofoncier/geofoncier/internal/shared/logger"
)

const (
	statusKeyPrefix      = "property:status:"
	generationKeyPrefix  = "property:statusgen:"
	DefaultStatusTTL     = 60 * time.Second
	fieldStatus          = "status"
	fieldHasActive       = "has_active"
	fieldHasArchived     = "has_archived"
	fieldIsDossierClosed = "dossier_closed"
	fieldCanDelete       = "can_delete"
	fieldCanModify       = "can_modify"
	fieldCanArchive      = "can_archive"
	fieldCanUnarchive    = "can_unarchive"
)

// setStatusIfCurrentScript writes the status hash only when the generation
// counter still holds the value the caller read before computing.
var setStatusIfCurrentScript = redis.NewScript(`
	local current = redis.call('GET', KEYS[2]) or '0'
	if current ~= ARGV[1] then
		return 0
	end

	redis.call('DEL', KEYS[1])
	redis.call('HSET', KEYS[1], unpack(ARGV, 3))
	redis.call('PEXPIRE', KEYS[1], ARGV[2])
	return 1
`)

// RedisPropertyStatusCache stores resolved property statuses as Redis hashes
// with a short TTL, next to a per-property generation counter. Entries are
// dropped by the ledger on every claim write; dossier closure does not touch
// them, so a closed dossier can show a stale CanModify until the TTL runs out.
type RedisPropertyStatusCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

var _ property.StatusCache = (*RedisPropertyStatusCache)(nil)

func NewRedisPropertyStatusCache(client *redis.Client, ttl time.Duration, logger logger.Interface) *RedisPropertyStatusCache {
	if ttl <= 0 {
		ttl = DefaultStatusTTL
	}
	return &RedisPropertyStatusCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisPropertyStatusCache) key(propertyID uint) string {
	return fmt.Sprintf("%s%d", statusKeyPrefix, propertyID)
}

func (c *RedisPropertyStatusCache) generationKey(propertyID uint) string {
	return fmt.Sprintf("%s%d", generationKeyPrefix, propertyID)
}

// GetStatus returns a nil view on a miss. The generation is read in the same
// round trip as the entry; a property never invalidated is at generation 0.
func (c *RedisPropertyStatusCache) GetStatus(ctx context.Context, propertyID uint) (*property.StatusView, int64, error) {
	pipe := c.client.Pipeline()
	entryCmd := pipe.HGetAll(ctx, c.key(propertyID))
	genCmd := pipe.Get(ctx, c.generationKey(propertyID))
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, 0, fmt.Errorf("failed to get property status from cache: %w", err)
	}

	generation, err := genCmd.Int64()
	if err != nil && err != redis.Nil {
		return nil, 0, fmt.Errorf("failed to read property status generation: %w", err)
	}

	result := entryCmd.Val()
	if len(result) == 0 {
		return nil, generation, nil
	}

	status := vo.PropertyStatus(result[fieldStatus])
	if !status.IsValid() {
		c.logger.Warnw("discarding malformed property status cache entry",
			"property_id", propertyID,
			"status", result[fieldStatus],
		)
		return nil, generation, nil
	}

	return &property.StatusView{
		Status:          status,
		HasActive:       result[fieldHasActive] == "1",
		HasArchived:     result[fieldHasArchived] == "1",
		IsDossierClosed: result[fieldIsDossierClosed] == "1",
		CanDelete:       result[fieldCanDelete] == "1",
		CanModify:       result[fieldCanModify] == "1",
		CanArchive:      result[fieldCanArchive] == "1",
		CanUnarchive:    result[fieldCanUnarchive] == "1",
	}, generation, nil
}

// SetStatus stores view unless the property was invalidated after generation
// was read. A skipped write returns false with a nil error.
func (c *RedisPropertyStatusCache) SetStatus(ctx context.Context, propertyID uint, view property.StatusView, generation int64) (bool, error) {
	args := []interface{}{
		generation,
		c.ttl.Milliseconds(),
		fieldStatus, view.Status.String(),
		fieldHasActive, boolToInt(view.HasActive),
		fieldHasArchived, boolToInt(view.HasArchived),
		fieldIsDossierClosed, boolToInt(view.IsDossierClosed),
		fieldCanDelete, boolToInt(view.CanDelete),
		fieldCanModify, boolToInt(view.CanModify),
		fieldCanArchive, boolToInt(view.CanArchive),
		fieldCanUnarchive, boolToInt(view.CanUnarchive),
	}

	keys := []string{c.key(propertyID), c.generationKey(propertyID)}
	stored, err := setStatusIfCurrentScript.Run(ctx, c.client, keys, args...).Int()
	if err != nil {
		return false, fmt.Errorf("failed to set property status in cache: %w", err)
	}

	if stored == 0 {
		c.logger.Debugw("property status invalidated while computing, not cached",
			"property_id", propertyID,
			"generation", generation,
		)
		return false, nil
	}

	c.logger.Debugw("property status cached",
		"property_id", propertyID,
		"status", view.Status,
	)

	return true, nil
}

// InvalidateStatus drops the entry and advances the generation, so a resolve
// that computed before this call cannot write its result back.
func (c *RedisPropertyStatusCache) InvalidateStatus(ctx context.Context, propertyID uint) error {
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, c.key(propertyID))
	pipe.Incr(ctx, c.generationKey(propertyID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to invalidate property status cache: %w", err)
	}

	c.logger.Debugw("property status cache invalidated",
		"property_id", propertyID,
	)

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// NoopPropertyStatusCache never holds anything; every lookup recomputes.
type NoopPropertyStatusCache struct{}

var _ property.StatusCache = NoopPropertyStatusCache{}

func (NoopPropertyStatusCache) GetStatus(context.Context, uint) (*property.StatusView, int64, error) {
	return nil, 0, nil
}

func (NoopPropertyStatusCache) SetStatus(context.Context, uint, property.StatusView, int64) (bool, error) {
	return false, nil
}

func (NoopPropertyStatusCache) InvalidateStatus(context.Context, uint) error {
	return nil
}
