// Package transport defines the request and response shapes of the buyers
// API. Requests carry validation tags; responses are assembled by the
// service layer and never expose internal tiers.
package transport

import (
	"time"

	"buyer_triage_backend/internal/buyers/scoring"
)

// BuyerPayload is the writable buyer shape, shared by create, update, and
// score preview. Every field is optional: partial records are expected and
// scored as-is.
type BuyerPayload struct {
	FullName  string `json:"fullName" validate:"omitempty,max=200"`
	FirstName string `json:"firstName" validate:"omitempty,max=100"`
	LastName  string `json:"lastName" validate:"omitempty,max=100"`

	Email string `json:"email" validate:"omitempty,email,max=254"`
	Phone string `json:"phone" validate:"omitempty,max=32"`

	Country  string `json:"country" validate:"omitempty,max=100"`
	Location string `json:"location" validate:"omitempty,max=200"`
	Bedrooms *int   `json:"bedrooms" validate:"omitempty,min=0,max=20"`

	Budget        string   `json:"budget" validate:"omitempty,max=100"`
	BudgetRange   string   `json:"budgetRange" validate:"omitempty,max=100"`
	BudgetMin     *float64 `json:"budgetMin" validate:"omitempty,min=0"`
	BudgetMax     *float64 `json:"budgetMax" validate:"omitempty,min=0"`
	PaymentMethod string   `json:"paymentMethod" validate:"omitempty,max=100"`
	MortgageState string   `json:"mortgageState" validate:"omitempty,max=100"`
	ProofOfFunds  bool     `json:"proofOfFunds"`

	Timeline string `json:"timeline" validate:"omitempty,max=200"`
	Purpose  string `json:"purpose" validate:"omitempty,max=500"`
	Source   string `json:"source" validate:"omitempty,max=100"`
	Status   string `json:"status" validate:"omitempty,max=200"`
	Notes    string `json:"notes" validate:"omitempty,max=5000"`

	UKBroker    string `json:"ukBroker" validate:"omitempty,max=100"`
	UKSolicitor string `json:"ukSolicitor" validate:"omitempty,max=100"`

	LastContactAt *time.Time `json:"lastContactAt"`
}

// CreateBuyerRequest creates a new buyer record.
type CreateBuyerRequest struct {
	BuyerPayload
}

// UpdateBuyerRequest replaces the buyer record. Updates are full-record
// writes; clients send the complete payload.
type UpdateBuyerRequest struct {
	BuyerPayload
}

// ListBuyersRequest filters the listing via query parameters.
type ListBuyersRequest struct {
	Status string `form:"status"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=200"`
	Offset int    `form:"offset" validate:"omitempty,min=0"`
}

// PreviewScoreRequest scores a payload without persisting anything.
type PreviewScoreRequest struct {
	BuyerPayload
	Profile string `json:"profile" validate:"omitempty,oneof=pipeline intake"`
}

// RescoreRequest triggers a rescore, optionally under a different profile
// and optionally deferred to the background queue.
type RescoreRequest struct {
	Profile  string `json:"profile" validate:"omitempty,oneof=pipeline intake"`
	Deferred bool   `json:"deferred"`
}

// BuyerResponse is the persisted buyer as returned by the API.
type BuyerResponse struct {
	ID string `json:"id"`
	BuyerPayload
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ScoreResponse is a scoring run with its narrative guidance.
type ScoreResponse struct {
	BuyerID string `json:"buyerId,omitempty"`
	scoring.Result
	NextAction      string    `json:"nextAction"`
	Recommendations []string  `json:"recommendations"`
	Summary         string    `json:"summary"`
	ScoredAt        time.Time `json:"scoredAt"`
}

// BuyerWithScoreResponse pairs a buyer with its latest score, if any.
type BuyerWithScoreResponse struct {
	Buyer BuyerResponse  `json:"buyer"`
	Score *ScoreResponse `json:"score,omitempty"`
}

// SummaryResponse is the standalone summary endpoint payload.
type SummaryResponse struct {
	BuyerID  string `json:"buyerId"`
	Summary  string `json:"summary"`
	Enhanced bool   `json:"enhanced"`
}

// RescoreAcceptedResponse acknowledges a deferred rescore.
type RescoreAcceptedResponse struct {
	BuyerID string `json:"buyerId"`
	TaskID  string `json:"taskId"`
	Queued  bool   `json:"queued"`
}
