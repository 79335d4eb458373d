// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"buyer_triage_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Buyer Domain Events
// =============================================================================

// BuyerCreated is published when a new buyer record is created.
type BuyerCreated struct {
	BaseEvent
	BuyerID uuid.UUID `json:"buyerId"`
	Name    string    `json:"name"`
	Email   string    `json:"email,omitempty"`
	Phone   string    `json:"phone,omitempty"`
	Source  string    `json:"source,omitempty"`
}

func (e BuyerCreated) EventName() string { return "buyers.created" }

// BuyerUpdated is published when buyer fields change in a way that should
// trigger a re-score.
type BuyerUpdated struct {
	BaseEvent
	BuyerID uuid.UUID `json:"buyerId"`
}

func (e BuyerUpdated) EventName() string { return "buyers.updated" }

// BuyerScored is published after a scoring run has been persisted.
type BuyerScored struct {
	BaseEvent
	BuyerID        uuid.UUID `json:"buyerId"`
	Profile        string    `json:"profile"`
	Classification string    `json:"classification"`
	PriorityCode   string    `json:"priorityCode"`
	QualityScore   int       `json:"qualityScore"`
	IntentScore    int       `json:"intentScore"`
	IsSpam         bool      `json:"isSpam"`
}

func (e BuyerScored) EventName() string { return "buyers.scored" }
