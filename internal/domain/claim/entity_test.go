package claim

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStatusClassification(t *testing.T) {
	for _, s := range OpenStatuses {
		assert.True(t, s.IsOpen(), "%s should be open", s)
		assert.False(t, s.IsClosed(), "%s should not be closed", s)
	}
	for _, s := range ClosedStatuses {
		assert.True(t, s.IsClosed(), "%s should be closed", s)
		assert.False(t, s.IsOpen(), "%s should not be open", s)
	}

	// A value outside both enumerations belongs to neither.
	unknown := Status("Pending Review")
	assert.False(t, unknown.IsOpen())
	assert.False(t, unknown.IsClosed())
}

func TestDaysSinceFiled(t *testing.T) {
	c := Claim{ClaimDate: day("2026-06-01")}
	assert.Equal(t, 14, c.DaysSinceFiled(day("2026-06-15")))
	assert.Equal(t, 0, c.DaysSinceFiled(day("2026-06-01")))
}

func TestDetailProjection(t *testing.T) {
	today := day("2026-06-15")

	c := Claim{
		ID:           11,
		PolicyID:     7,
		ClaimNumber:  "CLM-1A2B3C4D",
		ClaimDate:    day("2026-06-01"),
		IncidentDate: day("2026-05-30"),
		Description:  sql.NullString{String: "rear bumper damage", Valid: true},
		ClaimAmount:  2500,
		Status:       StatusSettled,
		ResolutionDate: sql.NullTime{
			Time: day("2026-06-10"), Valid: true,
		},
		SettlementAmount: sql.NullFloat64{Float64: 1800, Valid: true},
		CreatedAt:        time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC),
		UpdatedAt:        time.Date(2026, 6, 10, 14, 0, 0, 0, time.UTC),
		PolicyNumber:     sql.NullString{String: "POL-1001", Valid: true},
		CustomerName:     sql.NullString{String: "Bob Jones", Valid: true},
	}

	d := c.Detail(today)
	assert.Equal(t, int64(11), d.ClaimID)
	assert.Equal(t, "2026-06-01", d.ClaimDate)
	assert.Equal(t, "2026-05-30", d.IncidentDate)
	require.NotNil(t, d.ResolutionDate)
	assert.Equal(t, "2026-06-10", *d.ResolutionDate)
	assert.Equal(t, 1800.0, d.SettlementAmount)
	assert.Equal(t, "2026-06-01 09:30:00", d.CreatedAt)
	assert.Equal(t, 14, d.DaysSinceFiled)
	assert.False(t, d.IsOpen)
	assert.True(t, d.IsClosed)
	require.NotNil(t, d.PolicyNumber)
	assert.Equal(t, "POL-1001", *d.PolicyNumber)

	t.Run("absent settlement projects as zero", func(t *testing.T) {
		open := Claim{ClaimNumber: "CLM-00000000", ClaimDate: today, Status: StatusOpen}
		d := open.Detail(today)
		assert.Equal(t, 0.0, d.SettlementAmount)
		assert.Nil(t, d.ResolutionDate)
		assert.True(t, d.IsOpen)
		assert.False(t, d.IsClosed)
	})
}
