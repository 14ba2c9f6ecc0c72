package repository

import (
	"context"
	"time"

	"swimbooking/internal/infra"
	sqlc "swimbooking/internal/infra/sqlc/generated"
	"swimbooking/internal/pkg/pgconv"
	"swimbooking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	JobStatusQueued = "queued"
	JobStatusSent   = "sent"
	JobStatusFailed = "failed"
)

type NotificationWriteQueries interface {
	CreateNotificationJob(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateNotificationJobParams) error
	ListDueNotificationJobs(ctx context.Context, db sqlc.DBTX, arg sqlc.ListDueNotificationJobsParams) ([]sqlc.NotificationJobs, error)
	MarkNotificationJobSent(ctx context.Context, db sqlc.DBTX, id uuid.UUID) error
	MarkNotificationJobFailed(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkNotificationJobFailedParams) error
}

type NotificationRepository struct {
	queries NotificationWriteQueries
}

func NewNotificationRepository(queries NotificationWriteQueries) *NotificationRepository {
	return &NotificationRepository{queries: queries}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx sqlc.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	params := sqlc.CreateNotificationJobParams{
		Kind:    kind,
		Topic:   topic,
		Payload: payload,
		RunAt:   pgconv.TimeToPgtype(runAt),
	}

	if err := r.queries.CreateNotificationJob(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

// ClaimDue locks up to limit queued jobs. Rows already locked by another
// relay are skipped.
func (r *NotificationRepository) ClaimDue(ctx context.Context, tx sqlc.DBTX, now time.Time, limit int32) ([]shared.NotificationJob, error) {
	rows, err := r.queries.ListDueNotificationJobs(ctx, tx, sqlc.ListDueNotificationJobsParams{
		RunAt:    pgconv.TimeToPgtype(now),
		RowLimit: limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list due notification jobs", err)
	}

	jobs := make([]shared.NotificationJob, len(rows))
	for i, row := range rows {
		jobs[i] = shared.NotificationJob{
			ID:       row.ID,
			Kind:     row.Kind,
			Topic:    row.Topic,
			Payload:  row.Payload,
			Attempts: row.Attempts,
		}
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, tx sqlc.DBTX, jobID uuid.UUID) error {
	if err := r.queries.MarkNotificationJobSent(ctx, tx, jobID); err != nil {
		return infra.WrapRepoErr("failed to mark notification job sent", err)
	}
	return nil
}

// MarkFailed either reschedules the job at retryAt or, when final is set,
// parks it as failed.
func (r *NotificationRepository) MarkFailed(ctx context.Context, tx sqlc.DBTX, jobID uuid.UUID, lastError string, retryAt time.Time, final bool) error {
	status := JobStatusQueued
	if final {
		status = JobStatusFailed
	}

	params := sqlc.MarkNotificationJobFailedParams{
		ID:        jobID,
		Status:    status,
		LastError: pgtype.Text{String: lastError, Valid: lastError != ""},
		RunAt:     pgconv.TimeToPgtype(retryAt),
	}
	if err := r.queries.MarkNotificationJobFailed(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to mark notification job failed", err)
	}
	return nil
}
