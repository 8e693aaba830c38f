package anticipation

import (
	"time"

	"github.com/anticipay/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event type names raised by the anticipation request aggregate
const (
	EventTypeAnticipationRequestCreated  = "AnticipationRequestCreated"
	EventTypeAnticipationRequestApproved = "AnticipationRequestApproved"
	EventTypeAnticipationRequestRejected = "AnticipationRequestRejected"
	EventTypeAnticipationFeeRecalculated = "AnticipationFeeRecalculated"
)

// AnticipationRequestCreatedEvent is raised when a new request enters the pipeline
type AnticipationRequestCreatedEvent struct {
	shared.BaseDomainEvent
	RequestID   uuid.UUID       `json:"requestId"`
	CreatorID   uuid.UUID       `json:"creatorId"`
	GrossAmount decimal.Decimal `json:"grossAmount"`
	FeeRate     decimal.Decimal `json:"feeRate"`
	NetAmount   decimal.Decimal `json:"netAmount"`
	RequestedAt time.Time       `json:"requestedAt"`
}

// EventType returns the event type name
func (e *AnticipationRequestCreatedEvent) EventType() string {
	return EventTypeAnticipationRequestCreated
}

// NewAnticipationRequestCreatedEvent creates a new AnticipationRequestCreatedEvent
func NewAnticipationRequestCreatedEvent(request *AnticipationRequest) *AnticipationRequestCreatedEvent {
	return &AnticipationRequestCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAnticipationRequestCreated, "AnticipationRequest", request.ID),
		RequestID:       request.ID,
		CreatorID:       request.CreatorID,
		GrossAmount:     request.GrossAmount,
		FeeRate:         request.FeeRate,
		NetAmount:       request.NetAmount,
		RequestedAt:     request.RequestedAt,
	}
}

// AnticipationRequestApprovedEvent is raised when a request is approved
type AnticipationRequestApprovedEvent struct {
	shared.BaseDomainEvent
	RequestID   uuid.UUID       `json:"requestId"`
	CreatorID   uuid.UUID       `json:"creatorId"`
	GrossAmount decimal.Decimal `json:"grossAmount"`
	NetAmount   decimal.Decimal `json:"netAmount"`
	DecisionAt  time.Time       `json:"decisionAt"`
}

// EventType returns the event type name
func (e *AnticipationRequestApprovedEvent) EventType() string {
	return EventTypeAnticipationRequestApproved
}

// NewAnticipationRequestApprovedEvent creates a new AnticipationRequestApprovedEvent
func NewAnticipationRequestApprovedEvent(request *AnticipationRequest) *AnticipationRequestApprovedEvent {
	decisionAt := time.Now()
	if request.DecisionAt != nil {
		decisionAt = *request.DecisionAt
	}
	return &AnticipationRequestApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAnticipationRequestApproved, "AnticipationRequest", request.ID),
		RequestID:       request.ID,
		CreatorID:       request.CreatorID,
		GrossAmount:     request.GrossAmount,
		NetAmount:       request.NetAmount,
		DecisionAt:      decisionAt,
	}
}

// AnticipationRequestRejectedEvent is raised when a request is rejected
type AnticipationRequestRejectedEvent struct {
	shared.BaseDomainEvent
	RequestID   uuid.UUID       `json:"requestId"`
	CreatorID   uuid.UUID       `json:"creatorId"`
	GrossAmount decimal.Decimal `json:"grossAmount"`
	DecisionAt  time.Time       `json:"decisionAt"`
}

// EventType returns the event type name
func (e *AnticipationRequestRejectedEvent) EventType() string {
	return EventTypeAnticipationRequestRejected
}

// NewAnticipationRequestRejectedEvent creates a new AnticipationRequestRejectedEvent
func NewAnticipationRequestRejectedEvent(request *AnticipationRequest) *AnticipationRequestRejectedEvent {
	decisionAt := time.Now()
	if request.DecisionAt != nil {
		decisionAt = *request.DecisionAt
	}
	return &AnticipationRequestRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAnticipationRequestRejected, "AnticipationRequest", request.ID),
		RequestID:       request.ID,
		CreatorID:       request.CreatorID,
		GrossAmount:     request.GrossAmount,
		DecisionAt:      decisionAt,
	}
}

// AnticipationFeeRecalculatedEvent is raised when the fee rate is overridden
type AnticipationFeeRecalculatedEvent struct {
	shared.BaseDomainEvent
	RequestID   uuid.UUID       `json:"requestId"`
	CreatorID   uuid.UUID       `json:"creatorId"`
	FeeRate     decimal.Decimal `json:"feeRate"`
	GrossAmount decimal.Decimal `json:"grossAmount"`
	NetAmount   decimal.Decimal `json:"netAmount"`
}

// EventType returns the event type name
func (e *AnticipationFeeRecalculatedEvent) EventType() string {
	return EventTypeAnticipationFeeRecalculated
}

// NewAnticipationFeeRecalculatedEvent creates a new AnticipationFeeRecalculatedEvent
func NewAnticipationFeeRecalculatedEvent(request *AnticipationRequest) *AnticipationFeeRecalculatedEvent {
	return &AnticipationFeeRecalculatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAnticipationFeeRecalculated, "AnticipationRequest", request.ID),
		RequestID:       request.ID,
		CreatorID:       request.CreatorID,
		FeeRate:         request.FeeRate,
		GrossAmount:     request.GrossAmount,
		NetAmount:       request.NetAmount,
	}
}
