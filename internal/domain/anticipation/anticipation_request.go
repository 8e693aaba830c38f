package anticipation

import (
	"fmt"
	"time"

	"github.com/anticipay/backend/internal/domain/shared"
	"github.com/anticipay/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Fee policy. These are fixed business constants, not runtime-tunable state:
// every new request starts at DefaultFeeRate, and no request below
// MinimumGrossAmount is accepted.
var (
	MinimumGrossAmount = decimal.NewFromInt(100)
	DefaultFeeRate     = decimal.RequireFromString("0.05")
)

// Domain errors raised by the anticipation request lifecycle
var (
	ErrInvalidCreator     = shared.NewDomainError("INVALID_CREATOR", "Creator id cannot be empty")
	ErrBelowMinimumAmount = shared.NewDomainError("BELOW_MINIMUM_AMOUNT", fmt.Sprintf("Gross amount must be at least %s", MinimumGrossAmount.StringFixed(2)))
	ErrInvalidFeeRate     = shared.NewDomainError("INVALID_FEE_RATE", "Fee rate must be between 0 and 1")
	ErrDuplicatePending   = shared.NewDomainError("DUPLICATE_PENDING_REQUEST", "Creator already has a pending anticipation request")
)

// RequestStatus represents the status of an anticipation request
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"  // Awaiting decision
	RequestStatusApproved RequestStatus = "APPROVED" // Approved, funds released
	RequestStatusRejected RequestStatus = "REJECTED" // Rejected
)

// IsValid checks if the status is a valid RequestStatus
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of RequestStatus
func (s RequestStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the request has been decided
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// CanDecide returns true if the request can still be approved or rejected
func (s RequestStatus) CanDecide() bool {
	return s == RequestStatusPending
}

// AnticipationRequest is the aggregate root for an early-payment request.
// A creator asks to receive GrossAmount ahead of schedule; a fixed-rate fee
// is withheld and NetAmount is what gets paid out once the request is
// approved. The aggregate owns the amount floor, the fee computation, and
// the pending -> approved/rejected state machine.
type AnticipationRequest struct {
	shared.BaseAggregateRoot
	CreatorID   uuid.UUID       `json:"creatorId"`
	GrossAmount decimal.Decimal `json:"grossAmount"`
	FeeRate     decimal.Decimal `json:"feeRate"`
	NetAmount   decimal.Decimal `json:"netAmount"`
	RequestedAt time.Time       `json:"requestedAt"`
	Status      RequestStatus   `json:"status"`
	DecisionAt  *time.Time      `json:"decisionAt"` // Set exactly once, at the terminal transition
}

// NewAnticipationRequest creates a new anticipation request in PENDING
// status with the default fee rate applied. A zero requestedAt means "now".
func NewAnticipationRequest(creatorID uuid.UUID, grossAmount valueobject.Money, requestedAt time.Time) (*AnticipationRequest, error) {
	if creatorID == uuid.Nil {
		return nil, ErrInvalidCreator
	}
	if grossAmount.Amount().LessThan(MinimumGrossAmount) {
		return nil, ErrBelowMinimumAmount
	}
	if requestedAt.IsZero() {
		requestedAt = time.Now()
	}

	request := &AnticipationRequest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CreatorID:         creatorID,
		GrossAmount:       grossAmount.Amount(),
		FeeRate:           DefaultFeeRate,
		NetAmount:         netAfterFee(grossAmount.Amount(), DefaultFeeRate),
		RequestedAt:       requestedAt,
		Status:            RequestStatusPending,
	}

	request.AddDomainEvent(NewAnticipationRequestCreatedEvent(request))

	return request, nil
}

// Approve transitions the request to APPROVED and stamps the decision time
func (r *AnticipationRequest) Approve() error {
	if !r.Status.CanDecide() {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot approve anticipation request in %s status", r.Status))
	}

	now := time.Now()
	r.Status = RequestStatusApproved
	r.DecisionAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewAnticipationRequestApprovedEvent(r))

	return nil
}

// Reject transitions the request to REJECTED and stamps the decision time
func (r *AnticipationRequest) Reject() error {
	if !r.Status.CanDecide() {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot reject anticipation request in %s status", r.Status))
	}

	now := time.Now()
	r.Status = RequestStatusRejected
	r.DecisionAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewAnticipationRequestRejectedEvent(r))

	return nil
}

// RecalculateFee replaces the fee rate and recomputes the net amount from
// the current gross amount. The lifecycle status is untouched.
func (r *AnticipationRequest) RecalculateFee(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return ErrInvalidFeeRate
	}

	r.FeeRate = rate
	r.NetAmount = netAfterFee(r.GrossAmount, rate)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewAnticipationFeeRecalculatedEvent(r))

	return nil
}

// netAfterFee is the single fee-computation routine shared by construction
// and recalculation: net = gross - gross*rate, in exact decimal arithmetic.
func netAfterFee(gross, rate decimal.Decimal) decimal.Decimal {
	return gross.Sub(gross.Mul(rate))
}

// Helper methods

// GetGrossMoney returns the gross amount as Money
func (r *AnticipationRequest) GetGrossMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(r.GrossAmount)
}

// GetNetMoney returns the net amount as Money
func (r *AnticipationRequest) GetNetMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(r.NetAmount)
}

// IsPending returns true if the request is awaiting a decision
func (r *AnticipationRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}

// IsApproved returns true if the request was approved
func (r *AnticipationRequest) IsApproved() bool {
	return r.Status == RequestStatusApproved
}

// IsRejected returns true if the request was rejected
func (r *AnticipationRequest) IsRejected() bool {
	return r.Status == RequestStatusRejected
}
