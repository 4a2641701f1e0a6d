package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jhoicas/product-service/pkg/jwt"
)

func newTokenCommand(e *env) *cobra.Command {
	var userID, role string
	var expMinutes int

	issue := &cobra.Command{
		Use:   "issue",
		Short: "Emite un JWT firmado con JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !e.cfg.JWT.Enabled() {
				return errors.New("token: JWT_SECRET no configurado")
			}
			if expMinutes <= 0 {
				expMinutes = e.cfg.JWT.Expiration
			}
			tok, err := jwt.Generate(e.cfg.JWT.Secret, userID, role, e.cfg.JWT.Issuer, expMinutes)
			if err != nil {
				return err
			}
			e.printf("%s\n", tok)
			return nil
		},
	}
	issue.Flags().StringVar(&userID, "user", "", "identificador del operador (sub)")
	issue.Flags().StringVar(&role, "role", "editor", "rol: admin | editor")
	issue.Flags().IntVar(&expMinutes, "exp", 0, "minutos de validez (0 = JWT_EXPIRATION_MINUTES)")
	_ = issue.MarkFlagRequired("user")

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Tokens de acceso para las rutas de escritura",
	}
	cmd.AddCommand(issue)
	return cmd
}
