package anticipation

import (
	"context"

	"github.com/google/uuid"
)

// AnticipationRequestRepository defines the persistence contract for
// anticipation requests. The store is responsible for serializing the two
// check-then-act sequences the workflow performs: Create must run the
// duplicate-pending check and the insert in one transaction, and
// SaveWithLock must reject writes carrying a stale version.
type AnticipationRequestRepository interface {
	// FindByID returns the request, or nil when it does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*AnticipationRequest, error)

	// FindByCreator returns every request owned by the creator,
	// ordered newest requestedAt first
	FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]AnticipationRequest, error)

	// HasPendingForCreator reports whether the creator has an undecided request
	HasPendingForCreator(ctx context.Context, creatorID uuid.UUID) (bool, error)

	// Create inserts a new request. The pending-uniqueness check and the
	// insert share a transaction; ErrDuplicatePending is returned when the
	// creator already holds a pending request.
	Create(ctx context.Context, request *AnticipationRequest) error

	// SaveWithLock persists the request with optimistic concurrency control.
	// Every write after Create goes through it; there is no unguarded save.
	SaveWithLock(ctx context.Context, request *AnticipationRequest) error

	// CountByStatus returns the number of requests in the given status
	CountByStatus(ctx context.Context, status RequestStatus) (int64, error)
}

// AnticipationRequestPurger is the administrative capability to bulk-delete
// a creator's requests. It is a separate contract so production wiring can
// omit it entirely.
type AnticipationRequestPurger interface {
	// PurgeByCreator deletes every request owned by the creator and
	// returns the number of rows removed; zero when none exist
	PurgeByCreator(ctx context.Context, creatorID uuid.UUID) (int64, error)
}
