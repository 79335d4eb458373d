// Package service orchestrates buyer persistence, scoring, narrative
// generation, and event publication. All scoring is done through the pure
// engine; this layer only decides when to score and what to persist.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"buyer_triage_backend/internal/buyers/domain"
	"buyer_triage_backend/internal/buyers/narrative"
	"buyer_triage_backend/internal/buyers/repository"
	"buyer_triage_backend/internal/buyers/scoring"
	"buyer_triage_backend/internal/buyers/transport"
	"buyer_triage_backend/internal/events"
	"buyer_triage_backend/platform/apperr"
	"buyer_triage_backend/platform/logger"
	"buyer_triage_backend/platform/phone"
)

// saveScoreAttempts bounds the persistence retry for a scoring run. The
// score itself is recomputable, so losing a write is not fatal.
const saveScoreAttempts = 2

// TaskEnqueuer defers a rescore to the background queue. Implemented by the
// scheduler client; a nil enqueuer disables deferred rescoring.
type TaskEnqueuer interface {
	EnqueueRescore(ctx context.Context, buyerID uuid.UUID, profile string) (string, error)
}

// Service provides business logic for buyer triage.
type Service struct {
	repo           *repository.Repository
	bus            events.Bus
	provider       narrative.SummaryProvider
	enhanced       bool
	enqueuer       TaskEnqueuer
	defaultProfile string
	log            *logger.Logger
}

// New creates the buyers service. provider must not be nil; enqueuer and
// bus may be nil in tooling contexts.
func New(repo *repository.Repository, bus events.Bus, provider narrative.SummaryProvider, enhanced bool, enqueuer TaskEnqueuer, defaultProfile string, log *logger.Logger) *Service {
	return &Service{
		repo:           repo,
		bus:            bus,
		provider:       provider,
		enhanced:       enhanced,
		enqueuer:       enqueuer,
		defaultProfile: defaultProfile,
		log:            log,
	}
}

// Create persists a new buyer and scores it immediately under the default
// profile.
func (s *Service) Create(ctx context.Context, req transport.CreateBuyerRequest) (transport.BuyerWithScoreResponse, error) {
	rec, err := s.repo.Create(ctx, payloadToParams(req.BuyerPayload))
	if err != nil {
		s.log.DatabaseError("create buyer", err)
		return transport.BuyerWithScoreResponse{}, apperr.Wrap(apperr.KindInternal, "could not create buyer", err)
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.BuyerCreated{
			BaseEvent: events.NewBaseEvent(),
			BuyerID:   rec.ID,
			Name:      rec.Domain().Name(),
			Email:     rec.Email,
			Phone:     rec.Phone,
			Source:    rec.Source,
		})
	}

	score, err := s.scoreAndPersist(ctx, rec, s.defaultProfile)
	if err != nil {
		return transport.BuyerWithScoreResponse{}, err
	}
	return transport.BuyerWithScoreResponse{Buyer: toBuyerResponse(rec), Score: &score}, nil
}

// Get returns a buyer with its latest persisted score, if one exists.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.BuyerWithScoreResponse, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return transport.BuyerWithScoreResponse{}, mapRepoError(err, "buyer not found")
	}

	resp := transport.BuyerWithScoreResponse{Buyer: toBuyerResponse(rec)}

	stored, err := s.repo.LatestScore(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return resp, nil
	case err != nil:
		s.log.DatabaseError("latest score", err)
		return transport.BuyerWithScoreResponse{}, apperr.Wrap(apperr.KindInternal, "could not load score", err)
	}

	score := scoreResponseFromRecord(rec.Domain(), stored)
	resp.Score = &score
	return resp, nil
}

// List returns buyers matching the filter, newest first.
func (s *Service) List(ctx context.Context, req transport.ListBuyersRequest) ([]transport.BuyerResponse, error) {
	records, err := s.repo.List(ctx, repository.ListParams{
		Status: req.Status,
		Limit:  req.Limit,
		Offset: req.Offset,
	})
	if err != nil {
		s.log.DatabaseError("list buyers", err)
		return nil, apperr.Wrap(apperr.KindInternal, "could not list buyers", err)
	}

	responses := make([]transport.BuyerResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toBuyerResponse(rec))
	}
	return responses, nil
}

// Update replaces the buyer record and rescores it under the default
// profile.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateBuyerRequest) (transport.BuyerWithScoreResponse, error) {
	rec, err := s.repo.Update(ctx, id, payloadToParams(req.BuyerPayload))
	if err != nil {
		return transport.BuyerWithScoreResponse{}, mapRepoError(err, "buyer not found")
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.BuyerUpdated{BaseEvent: events.NewBaseEvent(), BuyerID: rec.ID})
	}

	score, err := s.scoreAndPersist(ctx, rec, s.defaultProfile)
	if err != nil {
		return transport.BuyerWithScoreResponse{}, err
	}
	return transport.BuyerWithScoreResponse{Buyer: toBuyerResponse(rec), Score: &score}, nil
}

// Delete removes the buyer and its score history.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, "buyer not found")
	}
	return nil
}

// Preview scores a payload without touching storage. Used by intake forms
// to show the classification before submission.
func (s *Service) Preview(ctx context.Context, req transport.PreviewScoreRequest) (transport.ScoreResponse, error) {
	profile, err := s.profileFor(req.Profile)
	if err != nil {
		return transport.ScoreResponse{}, err
	}

	buyer := payloadToDomain(req.BuyerPayload)
	result := scoring.Score(buyer, profile)
	return buildScoreResponse(uuid.Nil, buyer, result, time.Now().UTC()), nil
}

// Rescore recomputes the buyer's score, either inline or deferred to the
// background queue.
func (s *Service) Rescore(ctx context.Context, id uuid.UUID, req transport.RescoreRequest) (transport.ScoreResponse, *transport.RescoreAcceptedResponse, error) {
	if req.Deferred {
		if s.enqueuer == nil {
			return transport.ScoreResponse{}, nil, apperr.Unavailable("background rescoring is not configured")
		}
		if _, err := s.profileFor(req.Profile); err != nil {
			return transport.ScoreResponse{}, nil, err
		}
		taskID, err := s.enqueuer.EnqueueRescore(ctx, id, req.Profile)
		if err != nil {
			return transport.ScoreResponse{}, nil, apperr.Wrap(apperr.KindUnavailable, "could not queue rescore", err)
		}
		return transport.ScoreResponse{}, &transport.RescoreAcceptedResponse{
			BuyerID: id.String(),
			TaskID:  taskID,
			Queued:  true,
		}, nil
	}

	score, err := s.RescoreByID(ctx, id, req.Profile)
	if err != nil {
		return transport.ScoreResponse{}, nil, err
	}
	return score, nil, nil
}

// RescoreByID scores the stored buyer and persists the run. It is the
// inline rescore path and the worker entry point.
func (s *Service) RescoreByID(ctx context.Context, id uuid.UUID, profileName string) (transport.ScoreResponse, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return transport.ScoreResponse{}, mapRepoError(err, "buyer not found")
	}
	return s.scoreAndPersist(ctx, rec, profileName)
}

// SummaryFor produces the buyer summary through the configured provider.
// When enhancement is enabled the provider is model-backed but still
// guarantees a summary.
func (s *Service) SummaryFor(ctx context.Context, id uuid.UUID) (transport.SummaryResponse, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return transport.SummaryResponse{}, mapRepoError(err, "buyer not found")
	}

	profile, err := s.profileFor("")
	if err != nil {
		return transport.SummaryResponse{}, err
	}

	buyer := rec.Domain()
	result := scoring.Score(buyer, profile)

	summary, err := s.provider.Summarize(ctx, buyer, result)
	if err != nil {
		return transport.SummaryResponse{}, apperr.Wrap(apperr.KindInternal, "could not generate summary", err)
	}

	return transport.SummaryResponse{
		BuyerID:  id.String(),
		Summary:  summary,
		Enhanced: s.enhanced,
	}, nil
}

// scoreAndPersist runs the engine and saves the result with a bounded
// retry. A failed save is logged and surfaced; the caller decides whether
// the overall operation fails.
func (s *Service) scoreAndPersist(ctx context.Context, rec repository.BuyerRecord, profileName string) (transport.ScoreResponse, error) {
	profile, err := s.profileFor(profileName)
	if err != nil {
		return transport.ScoreResponse{}, err
	}

	buyer := rec.Domain()
	result := scoring.Score(buyer, profile)

	var saveErr error
	for attempt := 1; attempt <= saveScoreAttempts; attempt++ {
		if _, saveErr = s.repo.SaveScore(ctx, rec.ID, result); saveErr == nil {
			break
		}
		s.log.DatabaseError("save score", saveErr)
		if attempt < saveScoreAttempts {
			select {
			case <-ctx.Done():
				return transport.ScoreResponse{}, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}
	}
	if saveErr != nil {
		return transport.ScoreResponse{}, apperr.Wrap(apperr.KindInternal, "could not persist score", saveErr)
	}

	s.log.BuyerScored(rec.ID.String(), result.Profile, result.Classification, result.Quality, result.Intent, result.Spam.IsSpam)

	if s.bus != nil {
		s.bus.Publish(ctx, events.BuyerScored{
			BaseEvent:      events.NewBaseEvent(),
			BuyerID:        rec.ID,
			Profile:        result.Profile,
			Classification: result.Classification,
			PriorityCode:   result.Priority.Code,
			QualityScore:   result.Quality,
			IntentScore:    result.Intent,
			IsSpam:         result.Spam.IsSpam,
		})
	}

	return buildScoreResponse(rec.ID, buyer, result, time.Now().UTC()), nil
}

func (s *Service) profileFor(name string) (scoring.Profile, error) {
	if name == "" {
		name = s.defaultProfile
	}
	profile, ok := scoring.ProfileByName(name)
	if !ok {
		return scoring.Profile{}, apperr.Validation("unknown scoring profile: " + name)
	}
	return profile, nil
}

func buildScoreResponse(buyerID uuid.UUID, b domain.Buyer, r scoring.Result, at time.Time) transport.ScoreResponse {
	resp := transport.ScoreResponse{
		Result:          r,
		NextAction:      narrative.NextAction(b, r),
		Recommendations: narrative.Recommendations(b, r),
		Summary:         narrative.Summary(b, r),
		ScoredAt:        at,
	}
	if buyerID != uuid.Nil {
		resp.BuyerID = buyerID.String()
	}
	return resp
}

// scoreResponseFromRecord rebuilds a response from a persisted run without
// re-running the engine, so Get reflects what was actually scored.
func scoreResponseFromRecord(b domain.Buyer, stored repository.ScoreRecord) transport.ScoreResponse {
	profile, ok := scoring.ProfileByName(stored.Profile)
	if !ok {
		profile = scoring.PipelineProfile
	}
	tier, _ := profile.TierForLabel(stored.Classification)

	result := scoring.Result{
		Profile:        stored.Profile,
		Spam:           scoring.SpamCheck{IsSpam: stored.Spam, Confidence: stored.SpamConfidence},
		Quality:        stored.Quality,
		Intent:         stored.Intent,
		Confidence:     stored.Confidence,
		Tier:           tier,
		Classification: stored.Classification,
		Priority:       scoring.PriorityFor(tier),
		RiskFlags:      stored.RiskFlags,
		Budget:         stored.Budget,
	}

	resp := buildScoreResponse(stored.BuyerID, b, result, stored.CreatedAt)
	return resp
}

func payloadToParams(p transport.BuyerPayload) repository.CreateBuyerParams {
	return repository.CreateBuyerParams{
		FullName:      p.FullName,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Email:         p.Email,
		Phone:         phone.NormalizeE164(p.Phone),
		Country:       p.Country,
		Location:      p.Location,
		Bedrooms:      p.Bedrooms,
		Budget:        p.Budget,
		BudgetRange:   p.BudgetRange,
		BudgetMin:     p.BudgetMin,
		BudgetMax:     p.BudgetMax,
		PaymentMethod: p.PaymentMethod,
		MortgageState: p.MortgageState,
		ProofOfFunds:  p.ProofOfFunds,
		Timeline:      p.Timeline,
		Purpose:       p.Purpose,
		Source:        p.Source,
		Status:        p.Status,
		Notes:         p.Notes,
		UKBroker:      p.UKBroker,
		UKSolicitor:   p.UKSolicitor,
		LastContactAt: p.LastContactAt,
	}
}

func payloadToDomain(p transport.BuyerPayload) domain.Buyer {
	return domain.Buyer{
		FullName:      p.FullName,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Email:         p.Email,
		Phone:         phone.NormalizeE164(p.Phone),
		Country:       p.Country,
		Location:      p.Location,
		Bedrooms:      p.Bedrooms,
		Budget:        p.Budget,
		BudgetRange:   p.BudgetRange,
		BudgetMin:     p.BudgetMin,
		BudgetMax:     p.BudgetMax,
		PaymentMethod: p.PaymentMethod,
		MortgageState: p.MortgageState,
		ProofOfFunds:  p.ProofOfFunds,
		Timeline:      p.Timeline,
		Purpose:       p.Purpose,
		Source:        p.Source,
		Status:        p.Status,
		Notes:         p.Notes,
		UKBroker:      p.UKBroker,
		UKSolicitor:   p.UKSolicitor,
		LastContactAt: p.LastContactAt,
	}
}

func toBuyerResponse(rec repository.BuyerRecord) transport.BuyerResponse {
	return transport.BuyerResponse{
		ID: rec.ID.String(),
		BuyerPayload: transport.BuyerPayload{
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
		},
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func mapRepoError(err error, notFoundMsg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(notFoundMsg)
	}
	return apperr.Wrap(apperr.KindInternal, "storage error", err)
}
