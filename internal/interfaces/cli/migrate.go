package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jhoicas/product-service/internal/infrastructure/postgres"
)

func newMigrateCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones del esquema PostgreSQL",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Aplica las migraciones pendientes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return e.withMigrator(cmd.Context(), func(m *postgres.Migrator) error { return m.Up() })
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revierte todas las migraciones",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return e.withMigrator(cmd.Context(), func(m *postgres.Migrator) error { return m.Down() })
			},
		},
		&cobra.Command{
			Use:   "steps N",
			Short: "Avanza (N>0) o retrocede (N<0) N migraciones",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil || n == 0 {
					return fmt.Errorf("steps: N debe ser un entero distinto de cero, recibido %q", args[0])
				}
				return e.withMigrator(cmd.Context(), func(m *postgres.Migrator) error { return m.Steps(n) })
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Muestra la versión aplicada",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return e.withMigrator(cmd.Context(), func(m *postgres.Migrator) error {
					version, dirty, err := m.Version()
					if err != nil {
						return err
					}
					e.printf("version=%d dirty=%t\n", version, dirty)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "force V",
			Short: "Fija la versión sin ejecutar scripts",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("force: versión inválida %q", args[0])
				}
				return e.withMigrator(cmd.Context(), func(m *postgres.Migrator) error { return m.Force(v) })
			},
		},
	)
	return cmd
}

// withMigrator abre pool y migrador, ejecuta fn y libera ambos.
func (e *env) withMigrator(ctx context.Context, fn func(*postgres.Migrator) error) error {
	pool, err := postgres.NewPool(ctx, e.cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	m, err := postgres.NewMigrator(pool, e.log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			e.log.Warn().Err(err).Msg("cerrar migrador")
		}
	}()
	return fn(m)
}
