package swimmer

import (
	"time"

	"github.com/google/uuid"
)

type PaymentType string

const (
	PaymentPrivatePay    PaymentType = "private_pay"
	PaymentFundingSource PaymentType = "funding_source"
	PaymentScholarship   PaymentType = "scholarship"
	PaymentOther         PaymentType = "other"
)

func (p PaymentType) String() string {
	return string(p)
}

type AssessmentStatus string

const (
	AssessmentNotScheduled AssessmentStatus = "not_scheduled"
	AssessmentScheduled    AssessmentStatus = "scheduled"
	AssessmentCompleted    AssessmentStatus = "completed"
)

type Swimmer struct {
	id               uuid.UUID
	parentID         uuid.UUID
	firstName        string
	lastName         string
	paymentType      PaymentType
	fundingSourceID  *uuid.UUID
	flexibleSwimmer  bool
	assessmentStatus AssessmentStatus
	updatedAt        time.Time
}

func Reconstruct(
	id, parentID uuid.UUID,
	firstName, lastName string,
	paymentType PaymentType,
	fundingSourceID *uuid.UUID,
	flexibleSwimmer bool,
	assessmentStatus AssessmentStatus,
	updatedAt time.Time,
) *Swimmer {
	return &Swimmer{
		id:               id,
		parentID:         parentID,
		firstName:        firstName,
		lastName:         lastName,
		paymentType:      paymentType,
		fundingSourceID:  fundingSourceID,
		flexibleSwimmer:  flexibleSwimmer,
		assessmentStatus: assessmentStatus,
		updatedAt:        updatedAt,
	}
}

// IsFunded reports whether lessons must be drawn from a purchase order.
func (s *Swimmer) IsFunded() bool {
	return s.paymentType == PaymentFundingSource && s.fundingSourceID != nil
}

func (s *Swimmer) MarkFlexible(now time.Time) {
	s.flexibleSwimmer = true
	s.updatedAt = now
}

func (s *Swimmer) ResetAssessment(now time.Time) {
	s.assessmentStatus = AssessmentNotScheduled
	s.updatedAt = now
}

func (s *Swimmer) FullName() string {
	if s.lastName == "" {
		return s.firstName
	}
	return s.firstName + " " + s.lastName
}

func (s *Swimmer) ID() uuid.UUID                      { return s.id }
func (s *Swimmer) ParentID() uuid.UUID                { return s.parentID }
func (s *Swimmer) FirstName() string                  { return s.firstName }
func (s *Swimmer) LastName() string                   { return s.lastName }
func (s *Swimmer) PaymentType() PaymentType           { return s.paymentType }
func (s *Swimmer) FundingSourceID() *uuid.UUID        { return s.fundingSourceID }
func (s *Swimmer) FlexibleSwimmer() bool              { return s.flexibleSwimmer }
func (s *Swimmer) AssessmentStatus() AssessmentStatus { return s.assessmentStatus }
func (s *Swimmer) UpdatedAt() time.Time               { return s.updatedAt }
