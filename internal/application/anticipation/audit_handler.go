package anticipation

import (
	"context"
	"fmt"

	"github.com/anticipay/backend/internal/domain/anticipation"
	"github.com/anticipay/backend/internal/domain/shared"
	"github.com/anticipay/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// AnticipationAuditHandler writes a structured audit line for every
// anticipation lifecycle event dispatched on the bus. Log entries carry the
// request id and trace ids of the HTTP request that triggered the event, so
// an approval can be traced from the API call to the audit trail.
type AnticipationAuditHandler struct {
	logger *zap.Logger
}

// NewAnticipationAuditHandler creates a new audit handler for anticipation events
func NewAnticipationAuditHandler(log *zap.Logger) *AnticipationAuditHandler {
	return &AnticipationAuditHandler{
		logger: log.Named("audit"),
	}
}

// EventTypes returns the event types this handler is interested in
func (h *AnticipationAuditHandler) EventTypes() []string {
	return []string{
		anticipation.EventTypeAnticipationRequestCreated,
		anticipation.EventTypeAnticipationRequestApproved,
		anticipation.EventTypeAnticipationRequestRejected,
		anticipation.EventTypeAnticipationFeeRecalculated,
	}
}

// Handle writes the audit line for a single lifecycle event
func (h *AnticipationAuditHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	log := logger.WithLogger(ctx, h.logger)

	switch e := event.(type) {
	case *anticipation.AnticipationRequestCreatedEvent:
		log.Info("anticipation request created",
			zap.String("event_id", e.EventID().String()),
			zap.String("anticipation_id", e.RequestID.String()),
			zap.String("creator_id", e.CreatorID.String()),
			zap.String("gross_amount", e.GrossAmount.String()),
			zap.String("fee_rate", e.FeeRate.String()),
			zap.String("net_amount", e.NetAmount.String()),
			zap.Time("requested_at", e.RequestedAt),
		)
	case *anticipation.AnticipationRequestApprovedEvent:
		log.Info("anticipation request approved",
			zap.String("event_id", e.EventID().String()),
			zap.String("anticipation_id", e.RequestID.String()),
			zap.String("creator_id", e.CreatorID.String()),
			zap.String("gross_amount", e.GrossAmount.String()),
			zap.String("net_amount", e.NetAmount.String()),
			zap.Time("decision_at", e.DecisionAt),
		)
	case *anticipation.AnticipationRequestRejectedEvent:
		log.Info("anticipation request rejected",
			zap.String("event_id", e.EventID().String()),
			zap.String("anticipation_id", e.RequestID.String()),
			zap.String("creator_id", e.CreatorID.String()),
			zap.String("gross_amount", e.GrossAmount.String()),
			zap.Time("decision_at", e.DecisionAt),
		)
	case *anticipation.AnticipationFeeRecalculatedEvent:
		log.Info("anticipation fee recalculated",
			zap.String("event_id", e.EventID().String()),
			zap.String("anticipation_id", e.RequestID.String()),
			zap.String("creator_id", e.CreatorID.String()),
			zap.String("fee_rate", e.FeeRate.String()),
			zap.String("net_amount", e.NetAmount.String()),
		)
	default:
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	return nil
}

// Ensure AnticipationAuditHandler implements shared.EventHandler
var _ shared.EventHandler = (*AnticipationAuditHandler)(nil)
