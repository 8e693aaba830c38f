package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anticipay/backend/internal/domain/anticipation"
	"github.com/anticipay/backend/internal/domain/shared"
	"github.com/anticipay/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAnticipationRequestRepository implements anticipation.AnticipationRequestRepository
// and anticipation.AnticipationRequestPurger using GORM
type GormAnticipationRequestRepository struct {
	db *gorm.DB
}

// NewGormAnticipationRequestRepository creates a new GormAnticipationRequestRepository
func NewGormAnticipationRequestRepository(db *gorm.DB) *GormAnticipationRequestRepository {
	return &GormAnticipationRequestRepository{db: db}
}

// FindByID finds an anticipation request by ID. Returns nil without an
// error when no row exists; callers decide whether absence is a fault.
func (r *GormAnticipationRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*anticipation.AnticipationRequest, error) {
	var model models.AnticipationRequestModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find anticipation request: %w", err)
	}
	return model.ToDomain(), nil
}

// FindByCreator finds all anticipation requests owned by a creator,
// newest requested_at first with created_at breaking ties
func (r *GormAnticipationRequestRepository) FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]anticipation.AnticipationRequest, error) {
	var requestModels []models.AnticipationRequestModel
	if err := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("requested_at DESC, created_at DESC").
		Find(&requestModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list anticipation requests: %w", err)
	}
	requests := make([]anticipation.AnticipationRequest, len(requestModels))
	for i, model := range requestModels {
		requests[i] = *model.ToDomain()
	}
	return requests, nil
}

// HasPendingForCreator reports whether the creator currently holds a pending request
func (r *GormAnticipationRequestRepository) HasPendingForCreator(ctx context.Context, creatorID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AnticipationRequestModel{}).
		Where("creator_id = ? AND status = ?", creatorID, models.StatusCodePending).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check pending anticipation requests: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new anticipation request. The duplicate-pending check and
// the insert share one transaction, and the partial unique index on pending
// creators backstops the race between two concurrent inserts: whichever
// transaction commits second gets a unique violation, surfaced as
// ErrDuplicatePending just like the in-transaction check.
func (r *GormAnticipationRequestRepository) Create(ctx context.Context, request *anticipation.AnticipationRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.AnticipationRequestModel{}).
			Where("creator_id = ? AND status = ?", request.CreatorID, models.StatusCodePending).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check pending anticipation requests: %w", err)
		}
		if count > 0 {
			return anticipation.ErrDuplicatePending
		}

		model := models.AnticipationRequestModelFromDomain(request)
		if err := tx.Create(model).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return anticipation.ErrDuplicatePending
			}
			return fmt.Errorf("failed to create anticipation request: %w", err)
		}
		return nil
	})
}

// SaveWithLock persists a mutated anticipation request guarded by its
// version: the row is written only when it still carries the version the
// aggregate was loaded with. The guard is a plain UPDATE and can never
// insert, so a writer that lost the race to a competing decision, or whose
// row was purged underneath it, gets VERSION_CONFLICT instead of silently
// overwriting or resurrecting the row.
func (r *GormAnticipationRequestRepository) SaveWithLock(ctx context.Context, request *anticipation.AnticipationRequest) error {
	// The domain model already incremented the version
	expectedVersion := request.GetVersion() - 1

	model := models.AnticipationRequestModelFromDomain(request)
	result := r.db.WithContext(ctx).
		Model(&models.AnticipationRequestModel{}).
		Where("id = ? AND version = ?", request.ID, expectedVersion).
		Select("*").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save anticipation request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("VERSION_CONFLICT", "Anticipation request has been modified by another operation")
	}
	return nil
}

// CountByStatus counts anticipation requests in the given status
func (r *GormAnticipationRequestRepository) CountByStatus(ctx context.Context, status anticipation.RequestStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AnticipationRequestModel{}).
		Where("status = ?", models.StatusToCode(status)).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count anticipation requests: %w", err)
	}
	return count, nil
}

// CountRequestsByStatus reports row counts per lifecycle status, keyed by
// lowercase status name. It backs the telemetry layer's periodic status
// gauge so the status-code mapping stays in this package. Every status is
// always present in the result; a status with no rows reports zero, which
// lets the gauge reset when the last request in a status is decided or
// purged.
func (r *GormAnticipationRequestRepository) CountRequestsByStatus(ctx context.Context) (map[string]int64, error) {
	statuses := []anticipation.RequestStatus{
		anticipation.RequestStatusPending,
		anticipation.RequestStatusApproved,
		anticipation.RequestStatusRejected,
	}

	counts := make(map[string]int64, len(statuses))
	for _, status := range statuses {
		count, err := r.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		counts[strings.ToLower(status.String())] = count
	}
	return counts, nil
}

// PurgeByCreator hard deletes every anticipation request owned by the
// creator and returns the number of rows removed. Deleting a creator
// with no requests is not an error.
func (r *GormAnticipationRequestRepository) PurgeByCreator(ctx context.Context, creatorID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Delete(&models.AnticipationRequestModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge anticipation requests: %w", result.Error)
	}
	return result.RowsAffected, nil
}
