package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/docengine/internal/application/dto"
	"github.com/jhoicas/docengine/internal/application/mapping"
	"github.com/jhoicas/docengine/internal/application/rendering"
	"github.com/jhoicas/docengine/internal/domain"
	"github.com/jhoicas/docengine/internal/domain/calc"
)

// calcDetails detalle de un CalculationError para el cliente.
type calcDetails struct {
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// writeError traduce los errores del caso de uso a un ErrorResponse. Los
// fallos de render y subida responden un mensaje genérico y registran la causa.
func writeError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	var (
		vErr *mapping.ValidationError
		cErr *calc.CalculationError
		rErr *rendering.RenderError
		uErr *rendering.UploadError
	)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrTemplateNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TEMPLATE_NOT_FOUND", Message: "plantilla no encontrada"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "registro no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.As(err, &vErr):
		details := make([]dto.ProblemDTO, 0, len(vErr.Problems))
		for _, p := range vErr.Problems {
			details = append(details, dto.ProblemDTO{Field: p.Field, Message: p.Message})
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "INCOMPLETE_DATA", Message: "faltan datos requeridos del documento", Details: details,
		})
	case errors.As(err, &cErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "INVALID_AMOUNT", Message: "valor numérico inválido en una línea",
			Details: calcDetails{Field: cErr.Field, Value: cErr.Value, Reason: cErr.Reason},
		})
	case errors.As(err, &uErr):
		if errors.Is(uErr, rendering.ErrNoStore) {
			return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "UPLOAD_DISABLED", Message: "almacenamiento no configurado"})
		}
		log.Error().Err(err).Str("path", uErr.Path).Msg("subida de documento fallida")
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPLOAD_FAILED", Message: "no se pudo almacenar el documento"})
	case errors.As(err, &rErr):
		switch rErr.Code {
		case rendering.CodeInvalidMode:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: string(rErr.Code), Message: "modo inválido: download, preview o upload"})
		case rendering.CodeTimeout:
			log.Warn().Err(err).Msg("render excedió el plazo")
			return c.Status(fiber.StatusGatewayTimeout).JSON(dto.ErrorResponse{Code: string(rErr.Code), Message: "la generación del documento excedió el plazo"})
		case rendering.CodeCanceled:
			return c.Status(fiber.StatusRequestTimeout).JSON(dto.ErrorResponse{Code: string(rErr.Code), Message: "petición cancelada"})
		}
		log.Error().Err(err).Str("code", string(rErr.Code)).Msg("render fallido")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: string(rErr.Code), Message: "no se pudo generar el documento"})
	default:
		log.Error().Err(err).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}
