package models

import (
	"time"

	"github.com/anticipay/backend/internal/domain/anticipation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status codes stored in the anticipation_requests.status column.
// The column is a smallint so the partial unique index on pending
// requests stays cheap; the domain enum is mapped at the boundary.
const (
	StatusCodePending  int16 = 0
	StatusCodeApproved int16 = 1
	StatusCodeRejected int16 = 2
)

// StatusToCode maps a domain request status to its persisted code.
// Unknown values fall back to pending, which is also the zero value.
func StatusToCode(s anticipation.RequestStatus) int16 {
	switch s {
	case anticipation.RequestStatusApproved:
		return StatusCodeApproved
	case anticipation.RequestStatusRejected:
		return StatusCodeRejected
	default:
		return StatusCodePending
	}
}

// StatusFromCode maps a persisted code back to the domain request status.
func StatusFromCode(code int16) anticipation.RequestStatus {
	switch code {
	case StatusCodeApproved:
		return anticipation.RequestStatusApproved
	case StatusCodeRejected:
		return anticipation.RequestStatusRejected
	default:
		return anticipation.RequestStatusPending
	}
}

// AnticipationRequestModel is the GORM persistence model for anticipation.AnticipationRequest.
// Each creator may hold at most one pending request, enforced by a partial
// unique index on creator_id where status = 0.
type AnticipationRequestModel struct {
	AggregateModel
	CreatorID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_anticipation_requests_creator_requested,priority:1;uniqueIndex:ux_anticipation_requests_pending_creator,where:status = 0"`
	GrossAmount decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	FeeRate     decimal.Decimal `gorm:"type:numeric(5,4);not null"`
	NetAmount   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	RequestedAt time.Time       `gorm:"not null;index:idx_anticipation_requests_creator_requested,priority:2"`
	Status      int16           `gorm:"type:smallint;not null;index"`
	DecisionAt  *time.Time
}

// TableName specifies the table name for AnticipationRequestModel
func (AnticipationRequestModel) TableName() string {
	return "anticipation_requests"
}

// ToDomain converts the persistence model to a domain AnticipationRequest
func (m *AnticipationRequestModel) ToDomain() *anticipation.AnticipationRequest {
	r := &anticipation.AnticipationRequest{
		CreatorID:   m.CreatorID,
		GrossAmount: m.GrossAmount,
		FeeRate:     m.FeeRate,
		NetAmount:   m.NetAmount,
		RequestedAt: m.RequestedAt,
		Status:      StatusFromCode(m.Status),
		DecisionAt:  m.DecisionAt,
	}
	m.PopulateAggregateRoot(&r.BaseAggregateRoot)
	return r
}

// FromDomain populates the persistence model from a domain AnticipationRequest.
// Amounts are rounded to the column scales here so the stored row never
// carries more precision than the schema declares.
func (m *AnticipationRequestModel) FromDomain(r *anticipation.AnticipationRequest) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.CreatorID = r.CreatorID
	m.GrossAmount = r.GrossAmount.Round(2)
	m.FeeRate = r.FeeRate.Round(4)
	m.NetAmount = r.NetAmount.Round(2)
	m.RequestedAt = r.RequestedAt
	m.Status = StatusToCode(r.Status)
	m.DecisionAt = r.DecisionAt
}

// AnticipationRequestModelFromDomain creates a persistence model from a domain AnticipationRequest
func AnticipationRequestModelFromDomain(r *anticipation.AnticipationRequest) *AnticipationRequestModel {
	m := &AnticipationRequestModel{}
	m.FromDomain(r)
	return m
}
