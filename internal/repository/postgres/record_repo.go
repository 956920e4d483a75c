package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rachunki/internal/domain"
	"rachunki/internal/port"
)

type recordRepo struct {
	db *sqlx.DB
}

// NewRecordRepo creates a new PostgreSQL-backed RecordStore.
func NewRecordRepo(db *sqlx.DB) port.RecordStore {
	return &recordRepo{db: db}
}

// Save upserts the extraction result keyed by document name, so re-running a
// batch over the same folder replaces earlier results instead of duplicating
// them.
func (r *recordRepo) Save(ctx context.Context, doc domain.SourceDocument, rec *domain.ParsedRecord) (uuid.UUID, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return uuid.Nil, fmt.Errorf("recordRepo.Save marshal: %w", err)
	}

	id := uuid.New()
	now := time.Now().UTC()

	query := `INSERT INTO extraction_records (
		id, document_name, document_path, provider, utility_type, doc_type,
		doc_number, period_start, period_end,
		consumption_kwh, cost_gross, amount_to_pay,
		is_estimate, is_correction, record, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9,
		$10, $11, $12,
		$13, $14, $15, $16, $17
	)
	ON CONFLICT (document_name) DO UPDATE SET
		document_path = EXCLUDED.document_path,
		provider = EXCLUDED.provider,
		utility_type = EXCLUDED.utility_type,
		doc_type = EXCLUDED.doc_type,
		doc_number = EXCLUDED.doc_number,
		period_start = EXCLUDED.period_start,
		period_end = EXCLUDED.period_end,
		consumption_kwh = EXCLUDED.consumption_kwh,
		cost_gross = EXCLUDED.cost_gross,
		amount_to_pay = EXCLUDED.amount_to_pay,
		is_estimate = EXCLUDED.is_estimate,
		is_correction = EXCLUDED.is_correction,
		record = EXCLUDED.record,
		updated_at = EXCLUDED.updated_at
	RETURNING id`

	var storedID uuid.UUID
	err = r.db.GetContext(ctx, &storedID, query,
		id, doc.Name, doc.Path, rec.Provider, rec.UtilityType, rec.DocType,
		rec.DocNumber, rec.PeriodStart, rec.PeriodEnd,
		rec.ConsumptionKWh, rec.CostGross, rec.AmountToPay,
		rec.IsEstimate, rec.IsCorrection, payload, now, now)
	if err != nil {
		return uuid.Nil, fmt.Errorf("recordRepo.Save: %w", err)
	}
	return storedID, nil
}

// FindByDocument returns the stored record for a document name, or nil when
// none exists.
func (r *recordRepo) FindByDocument(ctx context.Context, name string) (*domain.ParsedRecord, error) {
	var payload []byte
	err := r.db.GetContext(ctx, &payload,
		"SELECT record FROM extraction_records WHERE document_name = $1", name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("recordRepo.FindByDocument: %w", err)
	}
	var rec domain.ParsedRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("recordRepo.FindByDocument unmarshal: %w", err)
	}
	return &rec, nil
}
