package anticipation

import (
	"context"
	"fmt"
	"time"

	"github.com/anticipay/backend/internal/domain/anticipation"
	"github.com/anticipay/backend/internal/domain/shared"
	"github.com/anticipay/backend/internal/domain/shared/valueobject"
	"github.com/anticipay/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AnticipationService provides application-level anticipation request operations
type AnticipationService struct {
	requestRepo     anticipation.AnticipationRequestRepository
	purger          anticipation.AnticipationRequestPurger
	eventPublisher  shared.EventPublisher
	businessMetrics *telemetry.BusinessMetrics
	logger          *zap.Logger
}

// NewAnticipationService creates a new AnticipationService
func NewAnticipationService(requestRepo anticipation.AnticipationRequestRepository, logger *zap.Logger) *AnticipationService {
	return &AnticipationService{
		requestRepo: requestRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *AnticipationService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetPurger enables the administrative purge capability.
// Production wiring leaves this unset, so the capability does not exist there.
func (s *AnticipationService) SetPurger(purger anticipation.AnticipationRequestPurger) {
	s.purger = purger
}

// SetBusinessMetrics sets the business metrics collector
func (s *AnticipationService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// AnticipationRequestResponse represents an anticipation request in API responses
type AnticipationRequestResponse struct {
	ID          uuid.UUID  `json:"id"`
	CreatorID   uuid.UUID  `json:"creatorId"`
	GrossAmount float64    `json:"grossAmount"`
	FeeRate     float64    `json:"feeRate"`
	NetAmount   float64    `json:"netAmount"`
	RequestedAt time.Time  `json:"requestedAt"`
	Status      string     `json:"status"`
	DecisionAt  *time.Time `json:"decisionAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Version     int        `json:"version"`
}

// CreateAnticipationRequest represents a request to create an anticipation request.
// CreatedAt is optional and defaults to the time the request is received.
type CreateAnticipationRequest struct {
	CreatorID   uuid.UUID       `json:"creatorId" binding:"required" swaggertype:"string" format:"uuid"`
	GrossAmount decimal.Decimal `json:"grossAmount" binding:"required" swaggertype:"number"`
	CreatedAt   *time.Time      `json:"createdAt"`
}

// PurgeResult reports the outcome of an administrative purge
type PurgeResult struct {
	CreatorID uuid.UUID `json:"creatorId"`
	Purged    int64     `json:"purged"`
}

// CreateRequest creates a new anticipation request for a creator.
// Validation failures are detected before the store is touched, and the
// duplicate-pending rule is enforced twice: once here as a fast pre-check,
// and once inside the repository transaction to close the race window.
func (s *AnticipationService) CreateRequest(ctx context.Context, req CreateAnticipationRequest) (*AnticipationRequestResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "anticipation", "create_request")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrCreatorID, req.CreatorID.String(),
		telemetry.SpanAttrAmount, req.GrossAmount.String(),
	)

	var response *AnticipationRequestResponse
	var operationErr error
	telemetry.WithProfilingLabels(ctx, telemetry.AnticipationOperationLabels(telemetry.OperationCreateRequest, ""), func(c context.Context) {
		if req.CreatorID == uuid.Nil {
			telemetry.RecordError(span, anticipation.ErrInvalidCreator)
			operationErr = anticipation.ErrInvalidCreator
			return
		}

		// Reject undersized requests before any store access
		if req.GrossAmount.LessThan(anticipation.MinimumGrossAmount) {
			telemetry.RecordError(span, anticipation.ErrBelowMinimumAmount)
			operationErr = anticipation.ErrBelowMinimumAmount
			return
		}

		hasPending, err := s.requestRepo.HasPendingForCreator(c, req.CreatorID)
		if err != nil {
			telemetry.RecordError(span, err)
			operationErr = fmt.Errorf("failed to check pending requests: %w", err)
			return
		}
		if hasPending {
			telemetry.RecordError(span, anticipation.ErrDuplicatePending)
			operationErr = anticipation.ErrDuplicatePending
			return
		}

		var requestedAt time.Time
		if req.CreatedAt != nil {
			requestedAt = *req.CreatedAt
		}

		request, err := anticipation.NewAnticipationRequest(
			req.CreatorID,
			valueobject.NewMoneyBRL(req.GrossAmount),
			requestedAt,
		)
		if err != nil {
			telemetry.RecordError(span, err)
			operationErr = err
			return
		}

		// The repository re-checks pending uniqueness inside its transaction,
		// so a concurrent create surfaces as ErrDuplicatePending here
		if err := s.requestRepo.Create(c, request); err != nil {
			telemetry.RecordError(span, err)
			operationErr = err
			return
		}

		s.logger.Info("Anticipation request created",
			zap.String("anticipation_id", request.ID.String()),
			zap.String("creator_id", request.CreatorID.String()),
			zap.String("gross_amount", request.GrossAmount.String()),
			zap.String("net_amount", request.NetAmount.String()))

		telemetry.AddEvent(span, "anticipation_request_created",
			"anticipation_id", request.ID.String(),
			"net_amount", request.NetAmount.String(),
		)

		// Record business metrics
		if s.businessMetrics != nil {
			s.businessMetrics.RecordRequestWithAmount(c, request.GrossAmount)
		}

		s.publishDomainEvents(c, request)
		response = toAnticipationRequestResponse(request)
	})

	return response, operationErr
}

// ListByCreator returns all anticipation requests for a creator,
// newest requestedAt first
func (s *AnticipationService) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]AnticipationRequestResponse, error) {
	if creatorID == uuid.Nil {
		return nil, anticipation.ErrInvalidCreator
	}

	requests, err := s.requestRepo.FindByCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list anticipation requests: %w", err)
	}

	responses := make([]AnticipationRequestResponse, len(requests))
	for i, r := range requests {
		responses[i] = *toAnticipationRequestResponse(&r)
	}

	return responses, nil
}

// Decide approves or rejects a pending anticipation request
func (s *AnticipationService) Decide(ctx context.Context, requestID uuid.UUID, approve bool) (*AnticipationRequestResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "anticipation", "decide")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrRequestID, requestID.String(),
		telemetry.SpanAttrApprove, approve,
	)

	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to get anticipation request: %w", err)
	}
	if request == nil {
		err := shared.NewDomainError("NOT_FOUND", "Anticipation request not found")
		telemetry.RecordError(span, err)
		return nil, err
	}

	if approve {
		err = request.Approve()
	} else {
		err = request.Reject()
	}
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	// Optimistic locking prevents two concurrent decisions from both landing
	if err := s.requestRepo.SaveWithLock(ctx, request); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Anticipation request decided",
		zap.String("anticipation_id", request.ID.String()),
		zap.String("status", request.Status.String()))

	if s.businessMetrics != nil {
		decision := telemetry.DecisionReject
		if approve {
			decision = telemetry.DecisionApprove
		}
		s.businessMetrics.RecordDecision(ctx, decision)
	}

	s.publishDomainEvents(ctx, request)

	return toAnticipationRequestResponse(request), nil
}

// Simulate computes the fee breakdown for a gross amount without persisting
// anything. The returned id is a throwaway and never reaches the store.
func (s *AnticipationService) Simulate(ctx context.Context, grossAmount decimal.Decimal) (*AnticipationRequestResponse, error) {
	draft, err := anticipation.NewAnticipationRequest(
		uuid.New(),
		valueobject.NewMoneyBRL(grossAmount),
		time.Now(),
	)
	if err != nil {
		return nil, err
	}
	draft.ClearDomainEvents()

	if s.businessMetrics != nil {
		s.businessMetrics.RecordSimulation(ctx)
	}

	return toAnticipationRequestResponse(draft), nil
}

// PurgeByCreator deletes every anticipation request owned by a creator.
// This is an administrative capability and is only available when a purger
// has been wired in.
func (s *AnticipationService) PurgeByCreator(ctx context.Context, creatorID uuid.UUID) (*PurgeResult, error) {
	if creatorID == uuid.Nil {
		return nil, anticipation.ErrInvalidCreator
	}
	if s.purger == nil {
		return nil, shared.NewDomainError("CLEANUP_DISABLED", "Cleanup capability is not enabled")
	}

	purged, err := s.purger.PurgeByCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to purge anticipation requests: %w", err)
	}

	if s.businessMetrics != nil && purged > 0 {
		s.businessMetrics.RecordPurgedRows(ctx, purged)
	}

	s.logger.Info("Anticipation requests purged",
		zap.String("creator_id", creatorID.String()),
		zap.Int64("purged", purged))

	return &PurgeResult{CreatorID: creatorID, Purged: purged}, nil
}

// publishDomainEvents publishes all domain events from the anticipation request
func (s *AnticipationService) publishDomainEvents(ctx context.Context, request *anticipation.AnticipationRequest) {
	if s.eventPublisher == nil {
		return
	}
	events := request.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		// Event delivery is best effort and never fails the operation
		s.logger.Warn("Failed to publish anticipation events",
			zap.String("anticipation_id", request.ID.String()),
			zap.Error(err))
	}
	request.ClearDomainEvents()
}

// toAnticipationRequestResponse maps an aggregate to its API representation
func toAnticipationRequestResponse(request *anticipation.AnticipationRequest) *AnticipationRequestResponse {
	return &AnticipationRequestResponse{
		ID:          request.ID,
		CreatorID:   request.CreatorID,
		GrossAmount: request.GrossAmount.InexactFloat64(),
		FeeRate:     request.FeeRate.InexactFloat64(),
		NetAmount:   request.NetAmount.InexactFloat64(),
		RequestedAt: request.RequestedAt,
		Status:      request.Status.String(),
		DecisionAt:  request.DecisionAt,
		CreatedAt:   request.CreatedAt,
		UpdatedAt:   request.UpdatedAt,
		Version:     request.GetVersion(),
	}
}
