package repository

import (
	"context"

	"github.com/jhoicas/docengine/internal/domain/entity"
)

// CompanyRepository puerto de lectura del perfil de la empresa emisora (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	GetProfile(ctx context.Context) (*entity.CompanyProfile, error)
}
