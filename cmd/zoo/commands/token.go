package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"zoo-admin/internal/adapters/auth/jwtauth"
	"zoo-admin/internal/ports/auth"
)

func newTokenCommand() *cobra.Command {
	var (
		ttl  time.Duration
		role string
	)

	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Emite un token Bearer firmado con el JWT secret configurado",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Auth.JWTSecret == "" {
				return errors.New("no JWT secret configured (auth.jwt_secret or JWT_SECRET)")
			}

			token, err := jwtauth.SignRole(jwtauth.Config{
				Secret: cfg.Auth.JWTSecret,
				Issuer: cfg.Auth.Issuer,
			}, args[0], role, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	cmd.Flags().StringVar(&role, "role", auth.RoleAdmin, "role claim (only admin can modify data)")
	return cmd
}
