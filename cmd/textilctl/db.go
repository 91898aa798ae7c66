package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/textil-api/internal/application/auth"
	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/infrastructure/postgres"
	"github.com/jhoicas/textil-api/pkg/config"
	"github.com/jhoicas/textil-api/pkg/logger"
)

func newMigrateCmd(cfg *config.Config, log *logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones SQL pendientes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()
			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				return fmt.Errorf("conexión a PostgreSQL: %w", err)
			}
			defer pool.Close()

			applied, err := postgres.Migrate(ctx, postgres.NewTxRunner(pool))
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				log.Info().Msg("base de datos al día")
				return nil
			}
			log.Info().Strs("aplicadas", applied).Msg("migraciones aplicadas")
			return nil
		},
	}
}

func newCreateAdminCmd(cfg *config.Config, log *logger.Logger) *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "crear-admin",
		Short: "Crea un usuario administrador",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(password) < auth.MinPasswordLen {
				return fmt.Errorf("--password debe tener al menos %d caracteres", auth.MinPasswordLen)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				return fmt.Errorf("conexión a PostgreSQL: %w", err)
			}
			defer pool.Close()

			authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), postgres.NewStoreRepository(pool), auth.JWTConfig{
				Secret:     cfg.JWT.Secret,
				ExpMinutes: cfg.JWT.Expiration,
				Issuer:     cfg.JWT.Issuer,
			})
			user, err := authUC.RegisterUser(ctx, dto.CreateUserRequest{
				Email:    email,
				Password: password,
				Name:     name,
				Role:     entity.RoleAdmin,
			})
			if err != nil {
				return fmt.Errorf("crear administrador: %w", err)
			}
			log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("administrador creado")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email del administrador")
	cmd.Flags().StringVar(&password, "password", "", "contraseña (mínimo 8 caracteres)")
	cmd.Flags().StringVar(&name, "name", "Administrador", "nombre")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
