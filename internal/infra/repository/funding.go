package repository

import (
	"context"
	"time"

	"swimbooking/internal/domain/purchaseorder"
	"swimbooking/internal/domain/swimmer"
	"swimbooking/internal/infra"
	"swimbooking/internal/infra/repository/converter"
	sqlc "swimbooking/internal/infra/sqlc/generated"
	"swimbooking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type SwimmerWriteQueries interface {
	GetSwimmerForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Swimmers, error)
	UpdateSwimmerFlags(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateSwimmerFlagsParams) error
}

type SwimmerRepository struct {
	queries SwimmerWriteQueries
}

func NewSwimmerRepository(queries SwimmerWriteQueries) *SwimmerRepository {
	return &SwimmerRepository{queries: queries}
}

func (r *SwimmerRepository) GetForUpdate(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*swimmer.Swimmer, error) {
	row, err := r.queries.GetSwimmerForUpdate(ctx, tx, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock swimmer", err)
	}
	return converter.SwimmerFromInfra(row), nil
}

func (r *SwimmerRepository) SaveFlags(ctx context.Context, tx sqlc.DBTX, s *swimmer.Swimmer) error {
	err := r.queries.UpdateSwimmerFlags(ctx, tx, sqlc.UpdateSwimmerFlagsParams{
		ID:               s.ID(),
		FlexibleSwimmer:  s.FlexibleSwimmer(),
		AssessmentStatus: string(s.AssessmentStatus()),
		UpdatedAt:        pgconv.TimeToPgtype(s.UpdatedAt()),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update swimmer flags", err)
	}
	return nil
}

type PurchaseOrderWriteQueries interface {
	LockUsablePurchaseOrderForSwimmer(ctx context.Context, db sqlc.DBTX, arg sqlc.LockUsablePurchaseOrderForSwimmerParams) (sqlc.PurchaseOrders, error)
	LockPurchaseOrderForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.PurchaseOrders, error)
	UpdatePurchaseOrderUsage(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdatePurchaseOrderUsageParams) (int64, error)
}

type PurchaseOrderRepository struct {
	queries PurchaseOrderWriteQueries
}

func NewPurchaseOrderRepository(queries PurchaseOrderWriteQueries) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{queries: queries}
}

func (r *PurchaseOrderRepository) LockUsableForSwimmer(ctx context.Context, tx sqlc.DBTX, swimmerID uuid.UUID, on time.Time) (*purchaseorder.PurchaseOrder, error) {
	row, err := r.queries.LockUsablePurchaseOrderForSwimmer(ctx, tx, sqlc.LockUsablePurchaseOrderForSwimmerParams{
		SwimmerID: swimmerID,
		OnDate:    pgconv.DateToPgtype(on),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock usable purchase order", err)
	}
	return converter.PurchaseOrderFromInfra(row), nil
}

func (r *PurchaseOrderRepository) LockForUpdate(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*purchaseorder.PurchaseOrder, error) {
	row, err := r.queries.LockPurchaseOrderForUpdate(ctx, tx, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock purchase order", err)
	}
	return converter.PurchaseOrderFromInfra(row), nil
}

func (r *PurchaseOrderRepository) SaveUsage(ctx context.Context, tx sqlc.DBTX, po *purchaseorder.PurchaseOrder) error {
	n, err := r.queries.UpdatePurchaseOrderUsage(ctx, tx, sqlc.UpdatePurchaseOrderUsageParams{
		ID:             po.ID(),
		SessionsBooked: int32(po.SessionsBooked()), // #nosec G115 -- bounded by sessions_authorized
		UpdatedAt:      pgconv.TimeToPgtype(po.UpdatedAt()),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update purchase order usage", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("purchase order authorization exceeded", nil, infra.KindConflict)
	}
	return nil
}
