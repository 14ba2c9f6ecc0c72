package repository

import (
	"context"
	"time"

	"swimbooking/internal/infra"
	sqlc "swimbooking/internal/infra/sqlc/generated"
	"swimbooking/internal/pkg/pgconv"
	"swimbooking/internal/usecase/shared"

	"github.com/google/uuid"
)

type IdempotencyWriteQueries interface {
	TryInsertIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.TryInsertIdempotencyKeyParams) (int64, error)
	GetIdempotencyKeyForUpdate(ctx context.Context, db sqlc.DBTX, arg sqlc.GetIdempotencyKeyForUpdateParams) (sqlc.IdempotencyKeys, error)
	ClaimExpiredIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimExpiredIdempotencyKeyParams) (int64, error)
	CompleteIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.CompleteIdempotencyKeyParams) error
	DeleteExpiredIdempotencyKeys(ctx context.Context, db sqlc.DBTX) (int64, error)
}

type IdempotencyRepository struct {
	queries IdempotencyWriteQueries
}

func NewIdempotencyRepository(queries IdempotencyWriteQueries) *IdempotencyRepository {
	return &IdempotencyRepository{queries: queries}
}

// TryInsert reports whether the key was new. A concurrent insert of the same
// key blocks until the first transaction finishes.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	n, err := r.queries.TryInsertIdempotencyKey(ctx, tx, sqlc.TryInsertIdempotencyKeyParams{
		Key:         key,
		UserID:      userID,
		Endpoint:    endpoint,
		RequestHash: requestHash,
		ExpiresAt:   pgconv.TimeToPgtype(expiresAt),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}
	return n == 1, nil
}

func (r *IdempotencyRepository) GetForUpdate(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	row, err := r.queries.GetIdempotencyKeyForUpdate(ctx, tx, sqlc.GetIdempotencyKeyForUpdateParams{
		Key:    key,
		UserID: userID,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}
	return &shared.IdempotencyRecord{
		Key:             row.Key,
		UserID:          row.UserID,
		Endpoint:        row.Endpoint,
		Status:          row.Status,
		RequestHash:     row.RequestHash,
		ResultRequestID: pgconv.UUIDPtrFromPgtype(row.ResultRequestID),
		ExpiresAt:       pgconv.TimeFromPgtype(row.ExpiresAt),
	}, nil
}

func (r *IdempotencyRepository) ClaimExpired(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	n, err := r.queries.ClaimExpiredIdempotencyKey(ctx, tx, sqlc.ClaimExpiredIdempotencyKeyParams{
		Endpoint:    endpoint,
		RequestHash: requestHash,
		ExpiresAt:   pgconv.TimeToPgtype(expiresAt),
		Key:         key,
		UserID:      userID,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim expired idempotency key", err)
	}
	return n == 1, nil
}

func (r *IdempotencyRepository) Complete(ctx context.Context, tx sqlc.DBTX, key, userID, resultRequestID uuid.UUID) error {
	err := r.queries.CompleteIdempotencyKey(ctx, tx, sqlc.CompleteIdempotencyKeyParams{
		ResultRequestID: pgconv.UUIDToPgtype(resultRequestID),
		Key:             key,
		UserID:          userID,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	return nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, db sqlc.DBTX) (int64, error) {
	count, err := r.queries.DeleteExpiredIdempotencyKeys(ctx, db)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return count, nil
}
