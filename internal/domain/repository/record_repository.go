package repository

import (
	"context"

	"github.com/jhoicas/docengine/internal/domain/entity"
)

// RecordRepository puerto de lectura de registros comerciales con sus líneas.
// Devuelve (nil, nil) si el registro no existe.
type RecordRepository interface {
	GetByID(ctx context.Context, id string) (*entity.BusinessRecord, error)
}
