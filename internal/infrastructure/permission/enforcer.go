package permission

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/geofoncier/geofoncier/internal/domain/dossier"
	"github.com/geofoncier/geofoncier/internal/shared/logger"
)

// DefaultModel is an RBAC model whose objects are matched with keyMatch, so
// a policy on "dossier:*" covers every dossier and "dossier:42" only one.
const DefaultModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

var _ dossier.AccessPolicy = (*Enforcer)(nil)

// Enforcer answers dossier capability checks from casbin policies.
type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewEnforcer loads the model from modelPath and policies from the
// casbin_rule table.
func NewEnforcer(db *gorm.DB, modelPath string, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(modelPath, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

// NewMemoryEnforcer builds an enforcer on DefaultModel with no persisted
// policies. Policies added to it live only in memory.
func NewMemoryEnforcer(log logger.Interface) (*Enforcer, error) {
	m, err := model.NewModelFromString(DefaultModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

// Subject is the casbin subject of an actor.
func Subject(actorID uint) string {
	return "user:" + strconv.FormatUint(uint64(actorID), 10)
}

// Object is the casbin object of a dossier.
func Object(dossierID uint) string {
	return "dossier:" + strconv.FormatUint(uint64(dossierID), 10)
}

func (e *Enforcer) Allowed(ctx context.Context, actorID uint, d *dossier.Dossier, action dossier.Action) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(Subject(actorID), Object(d.ID()), string(action))
	if err != nil {
		e.logger.Errorw("permission check failed",
			"error", err,
			"actor_id", actorID,
			"dossier_id", d.ID(),
			"action", action,
		)
		return false, fmt.Errorf("permission check failed: %w", err)
	}

	return allowed, nil
}

func (e *Enforcer) AddPolicy(role string, object string, action dossier.Action) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.AddPolicy(role, object, string(action)); err != nil {
		e.logger.Errorw("failed to add policy", "error", err)
		return fmt.Errorf("failed to add policy: %w", err)
	}

	return nil
}

func (e *Enforcer) AddRoleForActor(actorID uint, role string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.AddRoleForUser(Subject(actorID), role); err != nil {
		e.logger.Errorw("failed to add role for actor", "error", err, "actor_id", actorID, "role", role)
		return fmt.Errorf("failed to add role for actor: %w", err)
	}

	return nil
}

func (e *Enforcer) DeleteRoleForActor(actorID uint, role string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.DeleteRoleForUser(Subject(actorID), role); err != nil {
		e.logger.Errorw("failed to delete role for actor", "error", err, "actor_id", actorID, "role", role)
		return fmt.Errorf("failed to delete role for actor: %w", err)
	}

	return nil
}

func (e *Enforcer) LoadPolicy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}

	e.logger.Infow("policy reloaded successfully")
	return nil
}
