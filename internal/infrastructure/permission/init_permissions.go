package permission

import (
	"github.com/geofoncier/geofoncier/internal/domain/dossier"
)

const (
	RoleRegistrar  = "registrar"
	RoleSupervisor = "supervisor"
)

// InitDossierPermissions seeds the default role grants. Registrars edit and
// close any dossier; only supervisors reopen one.
func InitDossierPermissions(e *Enforcer) error {
	policies := []struct {
		role   string
		object string
		action dossier.Action
	}{
		{RoleRegistrar, "dossier:*", dossier.ActionModify},
		{RoleRegistrar, "dossier:*", dossier.ActionClose},
		{RoleSupervisor, "dossier:*", "*"},
	}

	for _, p := range policies {
		if err := e.AddPolicy(p.role, p.object, p.action); err != nil {
			return err
		}
	}

	e.logger.Infow("dossier permissions initialized", "count", len(policies))
	return nil
}
