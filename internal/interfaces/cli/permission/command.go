package permission

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geofoncier/geofoncier/internal/infrastructure/config"
	"github.com/geofoncier/geofoncier/internal/infrastructure/database"
	"github.com/geofoncier/geofoncier/internal/infrastructure/permission"
	"github.com/geofoncier/geofoncier/internal/shared/logger"
)

var (
	env        string
	configPath string
	actorID    uint
	role       string
)

// NewCommand manages the casbin policies behind dossier access checks.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "permission",
		Short: "Dossier access policy tools",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "seed",
			Short: "Install the default registrar and supervisor grants",
			RunE:  runSeed,
		},
		newGrantCommand(),
		newRevokeCommand(),
	)

	return cmd
}

func newGrantCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grant",
		Short: "Give an actor a role",
		RunE:  runGrant,
	}
	cmd.Flags().UintVar(&actorID, "actor", 0, "Actor ID (required)")
	cmd.Flags().StringVar(&role, "role", permission.RoleRegistrar, "Role to grant")
	_ = cmd.MarkFlagRequired("actor")
	return cmd
}

func newRevokeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revoke",
		Short: "Take a role away from an actor",
		RunE:  runRevoke,
	}
	cmd.Flags().UintVar(&actorID, "actor", 0, "Actor ID (required)")
	cmd.Flags().StringVar(&role, "role", permission.RoleRegistrar, "Role to revoke")
	_ = cmd.MarkFlagRequired("actor")
	return cmd
}

func openEnforcer() (*permission.Enforcer, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return permission.NewEnforcer(database.Get(), cfg.Permission.ModelPath, logger.WithComponent("cli.permission"))
}

func runSeed(cmd *cobra.Command, args []string) error {
	e, err := openEnforcer()
	if err != nil {
		return err
	}
	defer database.Close()

	return permission.InitDossierPermissions(e)
}

func runGrant(cmd *cobra.Command, args []string) error {
	e, err := openEnforcer()
	if err != nil {
		return err
	}
	defer database.Close()

	if err := e.AddRoleForActor(actorID, role); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "granted %s to actor %d\n", role, actorID)
	return nil
}

func runRevoke(cmd *cobra.Command, args []string) error {
	e, err := openEnforcer()
	if err != nil {
		return err
	}
	defer database.Close()

	if err := e.DeleteRoleForActor(actorID, role); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "revoked %s from actor %d\n", role, actorID)
	return nil
}
