package http

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/product-service/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// parseBody decodifica el JSON del cuerpo y valida las etiquetas `validate`.
// Cualquier fallo es una petición mal formada (400).
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.Malformedf("cuerpo inválido: %v", err)
	}
	if err := validate.Struct(out); err != nil {
		return validationError(err)
	}
	return nil
}

// parseNameList decodifica un arreglo JSON de nombres; exige al menos uno.
func parseNameList(c *fiber.Ctx) ([]string, error) {
	var names []string
	if err := c.BodyParser(&names); err != nil {
		return nil, domain.Malformedf("se esperaba un arreglo JSON de nombres: %v", err)
	}
	if err := validate.Var(names, "required,min=1,dive,required"); err != nil {
		return nil, domain.Malformedf("la lista de nombres no puede estar vacía ni contener vacíos")
	}
	return names, nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Malformedf("validación: %v", err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return domain.Malformedf("campos inválidos: %s", strings.Join(fields, ", "))
}

// pathParam devuelve el parámetro de ruta decodificado y copiado (fiber reutiliza
// sus buffers entre peticiones).
func pathParam(c *fiber.Ctx, key string) (string, error) {
	v, err := url.PathUnescape(c.Params(key))
	if err != nil {
		return "", domain.Malformedf("parámetro %s inválido", key)
	}
	return strings.Clone(v), nil
}

// pathID igual que pathParam pero exige un UUID y lo devuelve en forma
// canónica (minúsculas con guiones), sea cual sea la variante recibida.
func pathID(c *fiber.Ctx) (string, error) {
	id, err := pathParam(c, "id")
	if err != nil {
		return "", err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", domain.Malformedf("id %q no es un UUID válido", id)
	}
	return parsed.String(), nil
}

// queryList acepta ?k=A&k=B y ?k=A,B (o mezcla).
func queryList(c *fiber.Ctx, key string) []string {
	var out []string
	for _, raw := range c.Context().QueryArgs().PeekMulti(key) {
		for _, part := range strings.Split(string(raw), ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
