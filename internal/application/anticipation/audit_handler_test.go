package anticipation

import (
	"context"
	"testing"
	"time"

	"github.com/anticipay/backend/internal/domain/anticipation"
	"github.com/anticipay/backend/internal/domain/shared"
	"github.com/anticipay/backend/internal/domain/shared/valueobject"
	"github.com/anticipay/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newAuditTestRequest(t *testing.T) *anticipation.AnticipationRequest {
	t.Helper()

	request, err := anticipation.NewAnticipationRequest(
		uuid.New(),
		valueobject.NewMoneyBRLFromFloat(500),
		time.Now().UTC(),
	)
	require.NoError(t, err)

	return request
}

func TestAnticipationAuditHandler_EventTypes(t *testing.T) {
	handler := NewAnticipationAuditHandler(zap.NewNop())

	eventTypes := handler.EventTypes()
	assert.Len(t, eventTypes, 4)
	assert.Contains(t, eventTypes, anticipation.EventTypeAnticipationRequestCreated)
	assert.Contains(t, eventTypes, anticipation.EventTypeAnticipationRequestApproved)
	assert.Contains(t, eventTypes, anticipation.EventTypeAnticipationRequestRejected)
	assert.Contains(t, eventTypes, anticipation.EventTypeAnticipationFeeRecalculated)
}

func TestAnticipationAuditHandler_Handle_Created(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	handler := NewAnticipationAuditHandler(zap.New(core))

	request := newAuditTestRequest(t)
	event := anticipation.NewAnticipationRequestCreatedEvent(request)

	err := handler.Handle(context.Background(), event)
	require.NoError(t, err)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "anticipation request created", logs[0].Message)
	assert.Contains(t, logs[0].Context, zap.String("anticipation_id", request.ID.String()))
	assert.Contains(t, logs[0].Context, zap.String("creator_id", request.CreatorID.String()))
	assert.Contains(t, logs[0].Context, zap.String("gross_amount", event.GrossAmount.String()))
	assert.Contains(t, logs[0].Context, zap.String("fee_rate", event.FeeRate.String()))
	assert.Contains(t, logs[0].Context, zap.String("net_amount", event.NetAmount.String()))
}

func TestAnticipationAuditHandler_Handle_Approved(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	handler := NewAnticipationAuditHandler(zap.New(core))

	request := newAuditTestRequest(t)
	require.NoError(t, request.Approve())
	event := anticipation.NewAnticipationRequestApprovedEvent(request)

	err := handler.Handle(context.Background(), event)
	require.NoError(t, err)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "anticipation request approved", logs[0].Message)
	assert.Contains(t, logs[0].Context, zap.String("anticipation_id", request.ID.String()))
	assert.Contains(t, logs[0].Context, zap.String("net_amount", event.NetAmount.String()))
	assert.Contains(t, logs[0].Context, zap.Time("decision_at", event.DecisionAt))
}

func TestAnticipationAuditHandler_Handle_Rejected(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	handler := NewAnticipationAuditHandler(zap.New(core))

	request := newAuditTestRequest(t)
	require.NoError(t, request.Reject())
	event := anticipation.NewAnticipationRequestRejectedEvent(request)

	err := handler.Handle(context.Background(), event)
	require.NoError(t, err)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "anticipation request rejected", logs[0].Message)
	assert.Contains(t, logs[0].Context, zap.String("anticipation_id", request.ID.String()))
	assert.Contains(t, logs[0].Context, zap.Time("decision_at", event.DecisionAt))
}

func TestAnticipationAuditHandler_Handle_FeeRecalculated(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	handler := NewAnticipationAuditHandler(zap.New(core))

	request := newAuditTestRequest(t)
	require.NoError(t, request.RecalculateFee(decimal.RequireFromString("0.08")))
	event := anticipation.NewAnticipationFeeRecalculatedEvent(request)

	err := handler.Handle(context.Background(), event)
	require.NoError(t, err)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "anticipation fee recalculated", logs[0].Message)
	assert.Contains(t, logs[0].Context, zap.String("fee_rate", event.FeeRate.String()))
	assert.Contains(t, logs[0].Context, zap.String("net_amount", event.NetAmount.String()))
}

// Audit lines must carry the request id of the HTTP request that produced the
// event, so the trail can be joined against the access log.
func TestAnticipationAuditHandler_Handle_RequestIDEnrichment(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	handler := NewAnticipationAuditHandler(zap.New(core))

	ctx, _ := logger.WithRequestID(context.Background(), zap.NewNop(), "req-audit-123")

	request := newAuditTestRequest(t)
	event := anticipation.NewAnticipationRequestCreatedEvent(request)

	err := handler.Handle(ctx, event)
	require.NoError(t, err)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Context, zap.String("request_id", "req-audit-123"))
}

type unrelatedAuditEvent struct {
	shared.BaseDomainEvent
}

func TestAnticipationAuditHandler_Handle_WrongEventType(t *testing.T) {
	handler := NewAnticipationAuditHandler(zap.NewNop())

	wrongEvent := &unrelatedAuditEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SomethingElse", "Unrelated", uuid.New()),
	}

	err := handler.Handle(context.Background(), wrongEvent)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected event type")
}

func TestNewAnticipationAuditHandler(t *testing.T) {
	handler := NewAnticipationAuditHandler(zap.NewNop())

	assert.NotNil(t, handler)
	assert.NotNil(t, handler.logger)
}
