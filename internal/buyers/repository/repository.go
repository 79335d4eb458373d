package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"buyer_triage_backend/internal/buyers/domain"
	"buyer_triage_backend/internal/buyers/scoring"
)

var ErrNotFound = errors.New("buyer not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// BuyerRecord is the persisted buyer row. Free-text fields are stored as
// given; typed interpretation happens in the domain package at score time.
type BuyerRecord struct {
	ID            uuid.UUID
	FullName      string
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Country       string
	Location      string
	Bedrooms      *int
	Budget        string
	BudgetRange   string
	BudgetMin     *float64
	BudgetMax     *float64
	PaymentMethod string
	MortgageState string
	ProofOfFunds  bool
	Timeline      string
	Purpose       string
	Source        string
	Status        string
	Notes         string
	UKBroker      string
	UKSolicitor   string
	LastContactAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Domain converts the persisted row into the scoring snapshot.
func (rec BuyerRecord) Domain() domain.Buyer {
	created := rec.CreatedAt
	return domain.Buyer{
		FullName:      rec.FullName,
		FirstName:     rec.FirstName,
		LastName:      rec.LastName,
		Email:         rec.Email,
		Phone:         rec.Phone,
		Country:       rec.Country,
		Location:      rec.Location,
		Bedrooms:      rec.Bedrooms,
		Budget:        rec.Budget,
		BudgetRange:   rec.BudgetRange,
		BudgetMin:     rec.BudgetMin,
		BudgetMax:     rec.BudgetMax,
		PaymentMethod: rec.PaymentMethod,
		MortgageState: rec.MortgageState,
		ProofOfFunds:  rec.ProofOfFunds,
		Timeline:      rec.Timeline,
		Purpose:       rec.Purpose,
		Source:        rec.Source,
		Status:        rec.Status,
		Notes:         rec.Notes,
		UKBroker:      rec.UKBroker,
		UKSolicitor:   rec.UKSolicitor,
		LastContactAt: rec.LastContactAt,
		CreatedAt:     &created,
	}
}

type CreateBuyerParams struct {
	FullName      string
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Country       string
	Location      string
	Bedrooms      *int
	Budget        string
	BudgetRange   string
	BudgetMin     *float64
	BudgetMax     *float64
	PaymentMethod string
	MortgageState string
	ProofOfFunds  bool
	Timeline      string
	Purpose       string
	Source        string
	Status        string
	Notes         string
	UKBroker      string
	UKSolicitor   string
	LastContactAt *time.Time
}

const buyerColumns = `id, full_name, first_name, last_name, email, phone, country, location, bedrooms,
	budget, budget_range, budget_min, budget_max, payment_method, mortgage_state, proof_of_funds,
	timeline, purpose, source, status, notes, uk_broker, uk_solicitor, last_contact_at, created_at, updated_at`

func scanBuyer(row pgx.Row) (BuyerRecord, error) {
	var rec BuyerRecord
	err := row.Scan(
		&rec.ID, &rec.FullName, &rec.FirstName, &rec.LastName, &rec.Email, &rec.Phone,
		&rec.Country, &rec.Location, &rec.Bedrooms,
		&rec.Budget, &rec.BudgetRange, &rec.BudgetMin, &rec.BudgetMax,
		&rec.PaymentMethod, &rec.MortgageState, &rec.ProofOfFunds,
		&rec.Timeline, &rec.Purpose, &rec.Source, &rec.Status, &rec.Notes,
		&rec.UKBroker, &rec.UKSolicitor, &rec.LastContactAt, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return BuyerRecord{}, ErrNotFound
	}
	return rec, err
}

func (r *Repository) Create(ctx context.Context, params CreateBuyerParams) (BuyerRecord, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO buyers (
			full_name, first_name, last_name, email, phone, country, location, bedrooms,
			budget, budget_range, budget_min, budget_max, payment_method, mortgage_state, proof_of_funds,
			timeline, purpose, source, status, notes, uk_broker, uk_solicitor, last_contact_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING `+buyerColumns,
		params.FullName, params.FirstName, params.LastName, params.Email, params.Phone,
		params.Country, params.Location, params.Bedrooms,
		params.Budget, params.BudgetRange, params.BudgetMin, params.BudgetMax,
		params.PaymentMethod, params.MortgageState, params.ProofOfFunds,
		params.Timeline, params.Purpose, params.Source, params.Status, params.Notes,
		params.UKBroker, params.UKSolicitor, params.LastContactAt,
	)
	return scanBuyer(row)
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (BuyerRecord, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+buyerColumns+` FROM buyers WHERE id = $1`, id)
	return scanBuyer(row)
}

// ListParams filters the buyer listing. Zero values mean no filter; Limit
// falls back to 50.
type ListParams struct {
	Status string
	Limit  int
	Offset int
}

func (r *Repository) List(ctx context.Context, params ListParams) ([]BuyerRecord, error) {
	limit := params.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := `SELECT ` + buyerColumns + ` FROM buyers`
	args := []any{}
	if params.Status != "" {
		query += ` WHERE status ILIKE '%' || $1 || '%'`
		args = append(args, params.Status)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, params.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]BuyerRecord, 0)
	for rows.Next() {
		rec, err := scanBuyer(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params CreateBuyerParams) (BuyerRecord, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE buyers SET
			full_name = $2, first_name = $3, last_name = $4, email = $5, phone = $6,
			country = $7, location = $8, bedrooms = $9,
			budget = $10, budget_range = $11, budget_min = $12, budget_max = $13,
			payment_method = $14, mortgage_state = $15, proof_of_funds = $16,
			timeline = $17, purpose = $18, source = $19, status = $20, notes = $21,
			uk_broker = $22, uk_solicitor = $23, last_contact_at = $24, updated_at = now()
		WHERE id = $1
		RETURNING `+buyerColumns,
		id,
		params.FullName, params.FirstName, params.LastName, params.Email, params.Phone,
		params.Country, params.Location, params.Bedrooms,
		params.Budget, params.BudgetRange, params.BudgetMin, params.BudgetMax,
		params.PaymentMethod, params.MortgageState, params.ProofOfFunds,
		params.Timeline, params.Purpose, params.Source, params.Status, params.Notes,
		params.UKBroker, params.UKSolicitor, params.LastContactAt,
	)
	return scanBuyer(row)
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM buyers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ScoreRecord is a persisted scoring run. Breakdowns are stored as JSONB so
// the per-factor explanations survive for later review.
type ScoreRecord struct {
	ID             uuid.UUID
	BuyerID        uuid.UUID
	Profile        string
	Spam           bool
	SpamConfidence float64
	Quality        int
	Intent         int
	Confidence     float64
	Classification string
	PriorityCode   string
	RiskFlags      []string
	Budget         float64
	Breakdowns     []byte
	CreatedAt      time.Time
}

// SaveScore appends a scoring run for the buyer. Runs are never updated in
// place; the latest row is the current score.
func (r *Repository) SaveScore(ctx context.Context, buyerID uuid.UUID, result scoring.Result) (ScoreRecord, error) {
	breakdowns, err := json.Marshal([]scoring.Breakdown{
		result.QualityDetail, result.IntentDetail, result.ConfidenceDetail,
	})
	if err != nil {
		return ScoreRecord{}, fmt.Errorf("marshal breakdowns: %w", err)
	}

	var rec ScoreRecord
	err = r.pool.QueryRow(ctx, `
		INSERT INTO lead_scores (
			buyer_id, profile, spam, spam_confidence, quality, intent, confidence,
			classification, priority_code, risk_flags, budget, breakdowns
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, buyer_id, profile, spam, spam_confidence, quality, intent, confidence,
			classification, priority_code, risk_flags, budget, breakdowns, created_at`,
		buyerID, result.Profile, result.Spam.IsSpam, result.Spam.Confidence,
		result.Quality, result.Intent, result.Confidence,
		result.Classification, result.Priority.Code, result.RiskFlags, result.Budget, breakdowns,
	).Scan(
		&rec.ID, &rec.BuyerID, &rec.Profile, &rec.Spam, &rec.SpamConfidence,
		&rec.Quality, &rec.Intent, &rec.Confidence,
		&rec.Classification, &rec.PriorityCode, &rec.RiskFlags, &rec.Budget,
		&rec.Breakdowns, &rec.CreatedAt,
	)
	return rec, err
}

// LatestScore returns the most recent scoring run for the buyer.
func (r *Repository) LatestScore(ctx context.Context, buyerID uuid.UUID) (ScoreRecord, error) {
	var rec ScoreRecord
	err := r.pool.QueryRow(ctx, `
		SELECT id, buyer_id, profile, spam, spam_confidence, quality, intent, confidence,
			classification, priority_code, risk_flags, budget, breakdowns, created_at
		FROM lead_scores
		WHERE buyer_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, buyerID,
	).Scan(
		&rec.ID, &rec.BuyerID, &rec.Profile, &rec.Spam, &rec.SpamConfidence,
		&rec.Quality, &rec.Intent, &rec.Confidence,
		&rec.Classification, &rec.PriorityCode, &rec.RiskFlags, &rec.Budget,
		&rec.Breakdowns, &rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return ScoreRecord{}, ErrNotFound
	}
	return rec, err
}

// ListStale returns buyer IDs whose latest score predates the cutoff or
// that have never been scored. Used by the bulk rescore job.
func (r *Repository) ListStale(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	if limit <= 0 {
		limit = 500
	}
	rows, err := r.pool.Query(ctx, `
		SELECT b.id
		FROM buyers b
		LEFT JOIN LATERAL (
			SELECT created_at FROM lead_scores
			WHERE buyer_id = b.id
			ORDER BY created_at DESC
			LIMIT 1
		) s ON true
		WHERE s.created_at IS NULL OR s.created_at < $1
		ORDER BY b.created_at ASC
		LIMIT $2`, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Ping verifies database connectivity for health checks.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
