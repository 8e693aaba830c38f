package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/anticipay/backend/internal/domain/anticipation"
	"github.com/anticipay/backend/internal/domain/shared"
	"github.com/anticipay/backend/internal/domain/shared/valueobject"
	"github.com/anticipay/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// AnticipationRequestModelSQLite is a SQLite-compatible version of
// models.AnticipationRequestModel for testing. SQLite supports partial
// indexes, so the pending-creator uniqueness rule behaves as in production.
type AnticipationRequestModelSQLite struct {
	ID          string `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Version     int             `gorm:"not null;default:1"`
	CreatorID   string          `gorm:"not null;index;uniqueIndex:ux_anticipation_requests_pending_creator,where:status = 0"`
	GrossAmount decimal.Decimal `gorm:"type:numeric;not null"`
	FeeRate     decimal.Decimal `gorm:"type:numeric;not null"`
	NetAmount   decimal.Decimal `gorm:"type:numeric;not null"`
	RequestedAt time.Time       `gorm:"not null"`
	Status      int16           `gorm:"not null"`
	DecisionAt  *time.Time
}

func (AnticipationRequestModelSQLite) TableName() string {
	return "anticipation_requests"
}

func setupAnticipationRequestTestDB(t *testing.T) *gorm.DB {
	// TranslateError matches the production configuration so unique
	// violations surface as gorm.ErrDuplicatedKey here too
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// Auto-migrate the SQLite-compatible model
	err = db.AutoMigrate(&AnticipationRequestModelSQLite{})
	require.NoError(t, err)

	return db
}

func newPendingRequest(t *testing.T, creatorID uuid.UUID, gross float64, requestedAt time.Time) *anticipation.AnticipationRequest {
	t.Helper()
	request, err := anticipation.NewAnticipationRequest(creatorID, valueobject.NewMoneyBRLFromFloat(gross), requestedAt)
	require.NoError(t, err)
	return request
}

func TestAnticipationRequestRepository_Create(t *testing.T) {
	db := setupAnticipationRequestTestDB(t)
	repo := NewGormAnticipationRequestRepository(db)
	ctx := context.Background()

	t.Run("persists a new pending request", func(t *testing.T) {
		creatorID := uuid.New()
		request := newPendingRequest(t, creatorID, 500, time.Time{})

		err := repo.Create(ctx, request)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, request.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, request.ID, found.ID)
		assert.Equal(t, creatorID, found.CreatorID)
		assert.True(t, found.GrossAmount.Equal(decimal.NewFromInt(500)))
		assert.True(t, found.FeeRate.Equal(decimal.RequireFromString("0.05")))
		assert.True(t, found.NetAmount.Equal(decimal.NewFromInt(475)))
		assert.Equal(t, anticipation.RequestStatusPending, found.Status)
		assert.Nil(t, found.DecisionAt)
		assert.Equal(t, 1, found.GetVersion())
	})

	t.Run("rejects a second pending request for the same creator", func(t *testing.T) {
		creatorID := uuid.New()
		first := newPendingRequest(t, creatorID, 300, time.Time{})
		require.NoError(t, repo.Create(ctx, first))

		second := newPendingRequest(t, creatorID, 800, time.Time{})
		err := repo.Create(ctx, second)
		assert.ErrorIs(t, err, anticipation.ErrDuplicatePending)
	})

	t.Run("allows a new request once the pending one is decided", func(t *testing.T) {
		creatorID := uuid.New()
		first := newPendingRequest(t, creatorID, 300, time.Time{})
		require.NoError(t, repo.Create(ctx, first))

		require.NoError(t, first.Approve())
		require.NoError(t, repo.SaveWithLock(ctx, first))

		second := newPendingRequest(t, creatorID, 800, time.Time{})
		assert.NoError(t, repo.Create(ctx, second))
	})

	t.Run("does not block different creators", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, newPendingRequest(t, uuid.New(), 200, time.Time{})))
		require.NoError(t, repo.Create(ctx, newPendingRequest(t, uuid.New(), 200, time.Time{})))
	})
}

func TestAnticipationRequestRepository_PendingUniqueIndex(t *testing.T) {
	db := setupAnticipationRequestTestDB(t)
	ctx := context.Background()

	creatorID := uuid.New()

	insert := func(status int16) error {
		model := models.AnticipationRequestModelFromDomain(
			newPendingRequest(t, creatorID, 500, time.Time{}))
		model.Status = status
		return db.WithContext(ctx).Create(model).Error
	}

	t.Run("second pending insert for a creator violates the index", func(t *testing.T) {
		require.NoError(t, insert(models.StatusCodePending))

		// The insert that loses the race is translated to ErrDuplicatedKey,
		// which Create maps onto ErrDuplicatePending
		err := insert(models.StatusCodePending)
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run("decided rows are outside the index", func(t *testing.T) {
		assert.NoError(t, insert(models.StatusCodeApproved))
		assert.NoError(t, insert(models.StatusCodeRejected))
	})
}

func TestAnticipationRequestRepository_FindByID(t *testing.T) {
	db := setupAnticipationRequestTestDB(t)
	repo := NewGormAnticipationRequestRepository(db)
	ctx := context.Background()

	t.Run("returns nil without error for a non-existent ID", func(t *testing.T) {
		found, err := repo.FindByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestAnticipationRequestRepository_FindByCreator(t *testing.T) {
	db := setupAnticipationRequestTestDB(t)
	repo := NewGormAnticipationRequestRepository(db)
	ctx := context.Background()

	creatorID := uuid.New()
	base := time.Now().UTC().Truncate(time.Second)

	// The creator can only hold one pending request at a time, so earlier
	// requests are decided before the next one is created
	first := newPendingRequest(t, creatorID, 200, base)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, first.Approve())
	require.NoError(t, repo.SaveWithLock(ctx, first))

	second := newPendingRequest(t, creatorID, 300, base.Add(time.Hour))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, second.Reject())
	require.NoError(t, repo.SaveWithLock(ctx, second))

	third := newPendingRequest(t, creatorID, 400, base.Add(2*time.Hour))
	require.NoError(t, repo.Create(ctx, third))

	// Another creator's request must not leak into the listing
	require.NoError(t, repo.Create(ctx, newPendingRequest(t, uuid.New(), 900, base)))

	t.Run("returns the creator's requests newest first", func(t *testing.T) {
		requests, err := repo.FindByCreator(ctx, creatorID)

		require.NoError(t, err)
		require.Len(t, requests, 3)
		assert.Equal(t, third.ID, requests[0].ID)
		assert.Equal(t, second.ID, requests[1].ID)
		assert.Equal(t, first.ID, requests[2].ID)
		assert.Equal(t, anticipation.RequestStatusPending, requests[0].Status)
		assert.Equal(t, anticipation.RequestStatusRejected, requests[1].Status)
		assert.Equal(t, anticipation.RequestStatusApproved, requests[2].Status)
	})

	t.Run("returns empty for a creator without requests", func(t *testing.T) {
		requests, err := repo.FindByCreator(ctx, uuid.New())

		require.NoError(t, err)
		assert.Len(t, requests, 0)
	})
}

func TestAnticipationRequestRepository_HasPendingForCreator(t *testing.T) {
	db := setupAnticipationRequestTestDB(t)
	repo := NewGormAnticipationRequestRepository(db)
	ctx := context.Background()

	creatorID := uuid.New()

	t.Run("false when the creator has no requests", func(t *testing.T) {
		pending, err := repo.HasPendingForCreator(ctx, creatorID)
		require.NoError(t, err)
		assert.False(t, pending)
	})

	request := newPendingRequest(t, creatorID, 500, time.Time{})
	require.NoError(t, repo.Create(ctx, request))

	t.Run("true while a request awaits decision", func(t *testing.T) {
		pending, err := repo.HasPendingForCreator(ctx, creatorID)
		require.NoError(t, err)
		assert.True(t, pending)
	})

	t.Run("false again after the decision", func(t *testing.T) {
		require.NoError(t, request.Reject())
		require.NoError(t, repo.SaveWithLock(ctx, request))

		pending, err := repo.HasPendingForCreator(ctx, creatorID)
		require.NoError(t, err)
		assert.False(t, pending)
	})
}

func TestAnticipationRequestRepository_SaveWithLock(t *testing.T) {
	db := setupAnticipationRequestTestDB(t)
	repo := NewGormAnticipationRequestRepository(db)
	ctx := context.Background()

	t.Run("persists a decision with the incremented version", func(t *testing.T) {
		request := newPendingRequest(t, uuid.New(), 500, time.Time{})
		require.NoError(t, repo.Create(ctx, request))

		require.NoError(t, request.Approve())
		require.NoError(t, repo.SaveWithLock(ctx, request))

		found, err := repo.FindByID(ctx, request.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, anticipation.RequestStatusApproved, found.Status)
		assert.NotNil(t, found.DecisionAt)
		assert.Equal(t, 2, found.GetVersion())
	})

	t.Run("rejects a write carrying a stale version", func(t *testing.T) {
		request := newPendingRequest(t, uuid.New(), 500, time.Time{})
		require.NoError(t, repo.Create(ctx, request))

		// Two copies of the same pending request race to decide it
		copy1, err := repo.FindByID(ctx, request.ID)
		require.NoError(t, err)
		copy2, err := repo.FindByID(ctx, request.ID)
		require.NoError(t, err)

		require.NoError(t, copy1.Approve())
		require.NoError(t, repo.SaveWithLock(ctx, copy1))

		require.NoError(t, copy2.Reject())
		err = repo.SaveWithLock(ctx, copy2)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VERSION_CONFLICT", domainErr.Code)

		// The first decision must still stand, column for column: the losing
		// writer must not have overwritten the status, the version, or the
		// decision timestamp
		found, err := repo.FindByID(ctx, request.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, anticipation.RequestStatusApproved, found.Status)
		assert.Equal(t, 2, found.GetVersion())
		require.NotNil(t, found.DecisionAt)
		assert.WithinDuration(t, *copy1.DecisionAt, *found.DecisionAt, time.Second)
	})

	t.Run("refuses to write a request whose row is gone", func(t *testing.T) {
		creatorID := uuid.New()
		request := newPendingRequest(t, creatorID, 500, time.Time{})
		require.NoError(t, repo.Create(ctx, request))

		// The creator is purged between the load and the decision
		purged, err := repo.PurgeByCreator(ctx, creatorID)
		require.NoError(t, err)
		require.Equal(t, int64(1), purged)

		require.NoError(t, request.Approve())
		err = repo.SaveWithLock(ctx, request)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VERSION_CONFLICT", domainErr.Code)

		// The purged row must stay gone
		found, err := repo.FindByID(ctx, request.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestAnticipationRequestRepository_CountByStatus(t *testing.T) {
	db := setupAnticipationRequestTestDB(t)
	repo := NewGormAnticipationRequestRepository(db)
	ctx := context.Background()

	decide := func(request *anticipation.AnticipationRequest, approve bool) {
		if approve {
			require.NoError(t, request.Approve())
		} else {
			require.NoError(t, request.Reject())
		}
		require.NoError(t, repo.SaveWithLock(ctx, request))
	}

	// Two pending, one approved, one rejected, all on distinct creators
	require.NoError(t, repo.Create(ctx, newPendingRequest(t, uuid.New(), 200, time.Time{})))
	require.NoError(t, repo.Create(ctx, newPendingRequest(t, uuid.New(), 300, time.Time{})))

	approved := newPendingRequest(t, uuid.New(), 400, time.Time{})
	require.NoError(t, repo.Create(ctx, approved))
	decide(approved, true)

	rejected := newPendingRequest(t, uuid.New(), 500, time.Time{})
	require.NoError(t, repo.Create(ctx, rejected))
	decide(rejected, false)

	t.Run("counts each status independently", func(t *testing.T) {
		pending, err := repo.CountByStatus(ctx, anticipation.RequestStatusPending)
		require.NoError(t, err)
		assert.Equal(t, int64(2), pending)

		approvedCount, err := repo.CountByStatus(ctx, anticipation.RequestStatusApproved)
		require.NoError(t, err)
		assert.Equal(t, int64(1), approvedCount)

		rejectedCount, err := repo.CountByStatus(ctx, anticipation.RequestStatusRejected)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rejectedCount)
	})
}

func TestAnticipationRequestRepository_CountRequestsByStatus(t *testing.T) {
	db := setupAnticipationRequestTestDB(t)
	repo := NewGormAnticipationRequestRepository(db)
	ctx := context.Background()

	t.Run("reports zero for every status on an empty store", func(t *testing.T) {
		counts, err := repo.CountRequestsByStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]int64{"pending": 0, "approved": 0, "rejected": 0}, counts)
	})

	t.Run("keys counts by lowercase status name", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, newPendingRequest(t, uuid.New(), 200, time.Time{})))
		require.NoError(t, repo.Create(ctx, newPendingRequest(t, uuid.New(), 300, time.Time{})))

		approved := newPendingRequest(t, uuid.New(), 400, time.Time{})
		require.NoError(t, repo.Create(ctx, approved))
		require.NoError(t, approved.Approve())
		require.NoError(t, repo.SaveWithLock(ctx, approved))

		counts, err := repo.CountRequestsByStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]int64{"pending": 2, "approved": 1, "rejected": 0}, counts)
	})
}

func TestAnticipationRequestRepository_PurgeByCreator(t *testing.T) {
	db := setupAnticipationRequestTestDB(t)
	repo := NewGormAnticipationRequestRepository(db)
	ctx := context.Background()

	creatorID := uuid.New()
	otherCreatorID := uuid.New()

	decided := newPendingRequest(t, creatorID, 300, time.Time{})
	require.NoError(t, repo.Create(ctx, decided))
	require.NoError(t, decided.Approve())
	require.NoError(t, repo.SaveWithLock(ctx, decided))

	require.NoError(t, repo.Create(ctx, newPendingRequest(t, creatorID, 400, time.Time{})))
	require.NoError(t, repo.Create(ctx, newPendingRequest(t, otherCreatorID, 500, time.Time{})))

	t.Run("removes every request owned by the creator", func(t *testing.T) {
		removed, err := repo.PurgeByCreator(ctx, creatorID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), removed)

		requests, err := repo.FindByCreator(ctx, creatorID)
		require.NoError(t, err)
		assert.Len(t, requests, 0)

		// The other creator's data is untouched
		others, err := repo.FindByCreator(ctx, otherCreatorID)
		require.NoError(t, err)
		assert.Len(t, others, 1)
	})

	t.Run("returns zero for a creator without requests", func(t *testing.T) {
		removed, err := repo.PurgeByCreator(ctx, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, int64(0), removed)
	})
}
