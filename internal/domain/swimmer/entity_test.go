//go:build unit

package swimmer_test

import (
	"testing"
	"time"

	"swimbooking/internal/domain/swimmer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSwimmer_IsFunded(t *testing.T) {
	fundingSourceID := uuid.New()

	testCases := []struct {
		name    string
		payment swimmer.PaymentType
		source  *uuid.UUID
		want    bool
	}{
		{name: "funding source with id", payment: swimmer.PaymentFundingSource, source: &fundingSourceID, want: true},
		{name: "funding source without id", payment: swimmer.PaymentFundingSource},
		{name: "private pay", payment: swimmer.PaymentPrivatePay},
		{name: "scholarship with stale id", payment: swimmer.PaymentScholarship, source: &fundingSourceID},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := swimmer.Reconstruct(uuid.New(), uuid.New(), "Ada", "Lee", tc.payment, tc.source, false, swimmer.AssessmentCompleted, time.Now())
			assert.Equal(t, tc.want, s.IsFunded())
		})
	}
}

func TestSwimmer_AdminFlags(t *testing.T) {
	now := time.Now()
	s := swimmer.Reconstruct(uuid.New(), uuid.New(), "Ada", "", swimmer.PaymentPrivatePay, nil, false, swimmer.AssessmentScheduled, now.Add(-time.Hour))

	s.MarkFlexible(now)
	s.ResetAssessment(now)

	assert.True(t, s.FlexibleSwimmer())
	assert.Equal(t, swimmer.AssessmentNotScheduled, s.AssessmentStatus())
	assert.Equal(t, "Ada", s.FullName())
	assert.Equal(t, now, s.UpdatedAt())
}
