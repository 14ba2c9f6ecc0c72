package converter

import (
	"swimbooking/internal/domain/purchaseorder"
	"swimbooking/internal/domain/swimmer"
	sqlc "swimbooking/internal/infra/sqlc/generated"
	"swimbooking/internal/pkg/pgconv"
)

func PurchaseOrderFromInfra(row sqlc.PurchaseOrders) *purchaseorder.PurchaseOrder {
	return purchaseorder.Reconstruct(
		row.ID,
		row.SwimmerID,
		row.FundingSourceID,
		purchaseorder.Status(row.Status),
		int(row.SessionsAuthorized),
		int(row.SessionsBooked),
		int(row.SessionsUsed),
		pgconv.DateFromPgtype(row.StartDate),
		pgconv.DateFromPgtype(row.EndDate),
		row.AuthorizationNumber,
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}

func SwimmerFromInfra(row sqlc.Swimmers) *swimmer.Swimmer {
	return swimmer.Reconstruct(
		row.ID,
		row.ParentID,
		row.FirstName,
		row.LastName,
		swimmer.PaymentType(row.PaymentType),
		pgconv.UUIDPtrFromPgtype(row.FundingSourceID),
		row.FlexibleSwimmer,
		swimmer.AssessmentStatus(row.AssessmentStatus),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}
