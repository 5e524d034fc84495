// Package document orquesta la generación de documentos: carga el registro y
// el perfil de empresa, resuelve la plantilla elegida por el llamador, mapea
// los datos y delega en el pipeline de renderizado.
package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/docengine/internal/application/dto"
	"github.com/jhoicas/docengine/internal/application/mapping"
	"github.com/jhoicas/docengine/internal/application/rendering"
	"github.com/jhoicas/docengine/internal/application/templates"
	"github.com/jhoicas/docengine/internal/domain"
	"github.com/jhoicas/docengine/internal/domain/calc"
	"github.com/jhoicas/docengine/internal/domain/doctemplate"
	"github.com/jhoicas/docengine/internal/domain/entity"
	"github.com/jhoicas/docengine/internal/domain/repository"
	"github.com/jhoicas/docengine/pkg/locale"
)

// TemplateResolver resuelve la selección del llamador a una plantilla.
type TemplateResolver interface {
	Resolve(ctx context.Context, sel templates.Selection) (doctemplate.Template, error)
}

// Renderer produce el documento final.
type Renderer interface {
	RenderDocument(ctx context.Context, tmpl doctemplate.Template, in mapping.DocumentInput,
		mode rendering.Mode, opts rendering.Options) (*rendering.Result, error)
}

// UseCase casos de uso de documentos.
type UseCase struct {
	records   repository.RecordRepository
	company   repository.CompanyRepository
	templates TemplateResolver
	mapper    *mapping.Mapper
	renderer  Renderer
	log       zerolog.Logger
}

// NewUseCase construye el caso de uso inyectando todas sus dependencias.
func NewUseCase(
	records repository.RecordRepository,
	company repository.CompanyRepository,
	resolver TemplateResolver,
	mapper *mapping.Mapper,
	renderer Renderer,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		records:   records,
		company:   company,
		templates: resolver,
		mapper:    mapper,
		renderer:  renderer,
		log:       log,
	}
}

// Render genera el documento de un registro persistido.
//
// Retorna:
//   - domain.ErrNotFound             si el registro no existe.
//   - domain.ErrTemplateNotFound     si la plantilla elegida no existe.
//   - *mapping.ValidationError       si faltan datos requeridos.
//   - *calc.CalculationError         si alguna línea tiene valores inválidos.
//   - *rendering.RenderError / *rendering.UploadError desde el pipeline.
func (uc *UseCase) Render(
	ctx context.Context,
	recordID string,
	sel templates.Selection,
	mode rendering.Mode,
	opts rendering.Options,
) (*rendering.Result, error) {
	rec, company, err := uc.load(ctx, recordID)
	if err != nil {
		return nil, err
	}
	return uc.RenderRecord(ctx, rec, company, sel, mode, opts)
}

// RenderRecord genera el documento de un registro ya cargado (CLI, pruebas).
func (uc *UseCase) RenderRecord(
	ctx context.Context,
	rec *entity.BusinessRecord,
	company *entity.CompanyProfile,
	sel templates.Selection,
	mode rendering.Mode,
	opts rendering.Options,
) (*rendering.Result, error) {
	tmpl, err := uc.templates.Resolve(ctx, sel)
	if err != nil {
		return nil, err
	}

	if err := mapping.ValidateDocumentData(rec); err != nil {
		return nil, err
	}
	in, err := uc.prepare(rec, company, &tmpl)
	if err != nil {
		return nil, err
	}

	res, err := uc.renderer.RenderDocument(ctx, tmpl, in, mode, opts)
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("record_id", rec.ID).
		Str("template_id", tmpl.ID).
		Str("mode", string(res.Mode)).
		Bool("fell_back", res.FellBack).
		Int("bytes", len(res.Bytes)).
		Msg("documento generado")
	return res, nil
}

// Preview resumen JSON del documento. Los datos incompletos no impiden el
// resumen: se informan en Problems.
func (uc *UseCase) Preview(ctx context.Context, recordID string, sel templates.Selection) (*dto.DocumentPreview, error) {
	rec, company, err := uc.load(ctx, recordID)
	if err != nil {
		return nil, err
	}
	return uc.PreviewRecord(ctx, rec, company, sel)
}

// PreviewRecord resumen de un registro ya cargado.
func (uc *UseCase) PreviewRecord(
	ctx context.Context,
	rec *entity.BusinessRecord,
	company *entity.CompanyProfile,
	sel templates.Selection,
) (*dto.DocumentPreview, error) {
	tmpl, err := uc.templates.Resolve(ctx, sel)
	if err != nil {
		return nil, err
	}

	var problems []dto.ProblemDTO
	if err := mapping.ValidateDocumentData(rec); err != nil {
		var vErr *mapping.ValidationError
		if !errors.As(err, &vErr) || rec == nil {
			return nil, err
		}
		for _, p := range vErr.Problems {
			problems = append(problems, dto.ProblemDTO{Field: p.Field, Message: p.Message})
		}
	}

	in, err := uc.prepare(rec, company, &tmpl)
	if err != nil {
		return nil, err
	}

	return &dto.DocumentPreview{
		RecordID:   rec.ID,
		TemplateID: tmpl.ID,
		Filename:   rendering.Filename(tmpl, in),
		Locale:     in.Locale,
		IssuedAt:   in.IssuedAt,
		Fields:     in.Fields,
		Table:      in.Table,
		Totals:     totalsDTO(in),
		Problems:   problems,
	}, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (uc *UseCase) load(ctx context.Context, recordID string) (*entity.BusinessRecord, *entity.CompanyProfile, error) {
	if recordID == "" {
		return nil, nil, fmt.Errorf("%w: id de registro requerido", domain.ErrInvalidInput)
	}
	rec, err := uc.records.GetByID(ctx, recordID)
	if err != nil {
		return nil, nil, fmt.Errorf("document: obtener registro: %w", err)
	}
	if rec == nil {
		return nil, nil, domain.ErrNotFound
	}

	company, err := uc.company.GetProfile(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("document: obtener perfil de empresa: %w", err)
	}
	if company == nil {
		uc.log.Warn().Str("record_id", recordID).Msg("perfil de empresa no configurado; se renderiza sin datos de empresa")
	}
	return rec, company, nil
}

// prepare sanea el esquema de la plantilla (en sitio, sobre la copia del
// llamador) y mapea el registro.
func (uc *UseCase) prepare(rec *entity.BusinessRecord, company *entity.CompanyProfile, tmpl *doctemplate.Template) (mapping.DocumentInput, error) {
	schema, defects := doctemplate.Sanitize(tmpl.Schema)
	for _, d := range defects {
		uc.log.Warn().Err(d).Str("template_id", tmpl.ID).Msg("plantilla con sección inválida")
	}
	tmpl.Schema = schema
	return uc.mapper.MapForTemplate(rec, company, *tmpl)
}

func totalsDTO(in mapping.DocumentInput) dto.DocumentTotalsDTO {
	scale := locale.CurrencyScale(in.Currency)
	money := func(d decimal.Decimal) dto.MoneyDTO {
		return dto.MoneyDTO{
			Amount:    d.StringFixed(scale),
			Minor:     calc.MinorUnits(d, scale),
			Formatted: locale.FormatMoney(d, in.Currency, in.Locale),
		}
	}
	t := in.Totals
	return dto.DocumentTotalsDTO{
		Currency:        in.Currency,
		Scale:           scale,
		Subtotal:        money(t.Subtotal),
		Discount:        money(t.DiscountAmount),
		Tax:             money(t.TaxAmount),
		Total:           money(t.Total),
		RecordDiscount:  money(t.RecordDiscount),
		RecordSurcharge: money(t.RecordSurcharge),
		GrandTotal:      money(t.GrandTotal),
	}
}
