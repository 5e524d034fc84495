package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/docengine/internal/domain/entity"
	"github.com/jhoicas/docengine/internal/domain/repository"
)

var _ repository.RecordRepository = (*RecordRepo)(nil)

// RecordRepo lectura de registros comerciales con cliente, líneas y ajustes.
type RecordRepo struct {
	tx *TxRunner
}

// NewRecordRepository construye el adaptador de registros.
func NewRecordRepository(tx *TxRunner) *RecordRepo {
	return &RecordRepo{tx: tx}
}

// GetByID carga el registro completo en una sola instantánea de lectura.
// Devuelve (nil, nil) si no existe.
func (r *RecordRepo) GetByID(ctx context.Context, id string) (*entity.BusinessRecord, error) {
	var rec *entity.BusinessRecord
	err := r.tx.ReadOnly(ctx, func(q Querier) error {
		var err error
		rec, err = getRecordHeader(ctx, q, id)
		if err != nil || rec == nil {
			return err
		}
		if rec.Lines, err = listLines(ctx, q, id); err != nil {
			return err
		}
		rec.Adjustments, err = listAdjustments(ctx, q, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func getRecordHeader(ctx context.Context, q Querier, id string) (*entity.BusinessRecord, error) {
	query := `
		SELECT r.id, r.number, r.type, r.title, r.currency, r.locale,
		       r.issue_date, r.valid_until, r.selected_terms, r.custom_terms,
		       r.notes, r.created_at, r.updated_at,
		       c.id, COALESCE(c.name, ''), COALESCE(c.company, ''),
		       COALESCE(c.contact_person, ''), COALESCE(c.email, ''),
		       COALESCE(c.phone, ''), COALESCE(c.address, ''),
		       COALESCE(c.tax_id, ''), COALESCE(c.tax_office, '')
		FROM business_records r
		LEFT JOIN customers c ON c.id = r.customer_id
		WHERE r.id = $1`
	var (
		rec        entity.BusinessRecord
		docType    string
		customerID *string
		cust       entity.Customer
	)
	err := q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.Number, &docType, &rec.Title, &rec.Currency, &rec.Locale,
		&rec.IssueDate, &rec.ValidUntil, &rec.SelectedTerms, &rec.CustomTerms,
		&rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
		&customerID, &cust.Name, &cust.Company, &cust.ContactPerson, &cust.Email,
		&cust.Phone, &cust.Address, &cust.TaxID, &cust.TaxOffice,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get record: %w", err)
	}
	rec.Type = entity.DocumentType(docType)
	if customerID != nil {
		cust.ID = *customerID
		rec.Customer = &cust
	}
	return &rec, nil
}

func listLines(ctx context.Context, q Querier, recordID string) ([]entity.LineItem, error) {
	query := `
		SELECT id, position, code, description, unit,
		       quantity, unit_price, discount_rate, tax_rate
		FROM record_lines
		WHERE record_id = $1
		ORDER BY position, id`
	rows, err := q.Query(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("list record lines: %w", err)
	}
	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.LineItem, error) {
		var l entity.LineItem
		err := row.Scan(&l.ID, &l.Position, &l.Code, &l.Description, &l.Unit,
			&l.Quantity, &l.UnitPrice, &l.DiscountRate, &l.TaxRate)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan record lines: %w", err)
	}
	return lines, nil
}

func listAdjustments(ctx context.Context, q Querier, recordID string) ([]entity.Adjustment, error) {
	query := `
		SELECT kind, label, amount, rate
		FROM record_adjustments
		WHERE record_id = $1
		ORDER BY position, id`
	rows, err := q.Query(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("list record adjustments: %w", err)
	}
	adjs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Adjustment, error) {
		var (
			a    entity.Adjustment
			kind string
		)
		err := row.Scan(&kind, &a.Label, &a.Amount, &a.Rate)
		a.Kind = entity.AdjustmentKind(kind)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan record adjustments: %w", err)
	}
	return adjs, nil
}
