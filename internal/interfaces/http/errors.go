package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/product-service/internal/application/dto"
	"github.com/jhoicas/product-service/internal/domain"
	"github.com/jhoicas/product-service/pkg/logger"
)

// internalMessage mensaje para 5xx; el detalle solo va al log.
const internalMessage = "error interno del servidor"

// statusByKind única tabla Kind -> status HTTP.
var statusByKind = map[domain.Kind]int{
	domain.KindNotFound:      fiber.StatusNotFound,
	domain.KindAlreadyExists: fiber.StatusConflict,
	domain.KindNotEmpty:      fiber.StatusConflict,
	domain.KindInvalidInput:  fiber.StatusBadRequest,
	domain.KindMalformed:     fiber.StatusBadRequest,
	domain.KindUnauthorized:  fiber.StatusUnauthorized,
	domain.KindForbidden:     fiber.StatusForbidden,
	domain.KindInternal:      fiber.StatusInternalServerError,
}

// ErrorHandler traduce cualquier error devuelto por un handler al sobre
// dto.ErrorResponse. Se instala como fiber.Config.ErrorHandler.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, code, message := classify(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("request_id", requestID(c)).
				Msg("error no controlado")
		}
		return c.Status(status).JSON(dto.ErrorResponse{
			Status:    status,
			Code:      code,
			Message:   message,
			Path:      c.Path(),
			Timestamp: time.Now().UTC(),
		})
	}
}

func classify(err error) (status int, code, message string) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, fiberCode(fe.Code), fe.Message
	}
	kind := domain.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok || kind == domain.KindInternal {
		return fiber.StatusInternalServerError, domain.KindInternal.String(), internalMessage
	}
	return status, kind.String(), domain.MessageOf(err)
}

// fiberCode código estable para errores propios de fiber (ruta inexistente, método, tamaño).
func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return domain.KindNotFound.String()
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return domain.KindMalformed.String()
	default:
		if status >= fiber.StatusInternalServerError {
			return domain.KindInternal.String()
		}
		return "HTTP_ERROR"
	}
}
