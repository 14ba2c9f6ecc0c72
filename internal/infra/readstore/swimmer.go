package readstore

import (
	"context"

	"swimbooking/internal/infra"
	sqlc "swimbooking/internal/infra/sqlc/generated"
	"swimbooking/internal/pkg/pgconv"
	"swimbooking/internal/usecase/queries"

	"github.com/google/uuid"
)

type SwimmerReadQueries interface {
	GetSwimmerByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Swimmers, error)
}

type SwimmerReadStore struct {
	queries SwimmerReadQueries
	db      sqlc.DBTX
}

func NewSwimmerReadStore(queries SwimmerReadQueries, db sqlc.DBTX) *SwimmerReadStore {
	return &SwimmerReadStore{queries: queries, db: db}
}

func (r *SwimmerReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SwimmerView, error) {
	row, err := r.queries.GetSwimmerByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("swimmer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get swimmer by id", err)
	}
	return &queries.SwimmerView{
		ID:               row.ID,
		ParentID:         row.ParentID,
		FirstName:        row.FirstName,
		LastName:         row.LastName,
		PaymentType:      row.PaymentType,
		FundingSourceID:  pgconv.UUIDPtrFromPgtype(row.FundingSourceID),
		FlexibleSwimmer:  row.FlexibleSwimmer,
		AssessmentStatus: row.AssessmentStatus,
	}, nil
}
