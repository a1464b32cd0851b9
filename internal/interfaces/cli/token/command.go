package token

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/edofi/fiwe/internal/infrastructure/auth"
	"github.com/edofi/fiwe/internal/infrastructure/config"
	"github.com/edofi/fiwe/internal/shared/constants"
)

var (
	env    string
	userID uint
	role   string
)

var knownRoles = []string{constants.RoleUser, constants.RoleAdmin, constants.RoleService}

// NewCommand issues access tokens signed with the configured secret, for
// local testing against a running server.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token",
		Long:  `Issue a signed access token for a user and role. Intended for local testing.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().UintVar(&userID, "user-id", 0, "User ID carried by the token (required)")
	cmd.Flags().StringVar(&role, "role", constants.RoleUser, "Role carried by the token (user, admin, service)")
	_ = cmd.MarkFlagRequired("user-id")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if !slices.Contains(knownRoles, role) {
		return fmt.Errorf("unknown role %q, expected one of %v", role, knownRoles)
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	token, err := auth.NewJWTService(cfg.Auth.JWT).Generate(userID, role)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, token.Token)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s (in %ds)\n", token.ExpiresAt.Format("2006-01-02 15:04:05 MST"), token.ExpiresIn)
	return nil
}
