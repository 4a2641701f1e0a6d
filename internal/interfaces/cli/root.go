// Package cli comandos de administración del servicio (migraciones y tokens).
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jhoicas/product-service/pkg/config"
	"github.com/jhoicas/product-service/pkg/logger"
)

// env estado compartido por los subcomandos, cargado en PersistentPreRunE.
type env struct {
	cfg *config.Config
	log *logger.Logger
	out io.Writer
}

// NewRootCommand arma el árbol de comandos. out recibe la salida de los
// comandos (tokens, versión).
func NewRootCommand(out io.Writer) *cobra.Command {
	e := &env{out: out}
	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Administración del servicio de catálogo",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "catalogctl"})
			return nil
		},
	}
	root.SetOut(out)
	root.AddCommand(newMigrateCommand(e), newTokenCommand(e))
	return root
}

func (e *env) printf(format string, args ...any) {
	fmt.Fprintf(e.out, format, args...)
}
