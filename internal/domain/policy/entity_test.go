package policy

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

func nullDay(s string) sql.NullTime {
	return sql.NullTime{Time: day(s), Valid: true}
}

func TestIsActive(t *testing.T) {
	today := day("2026-06-15")

	tests := []struct {
		name   string
		status Status
		start  string
		end    sql.NullTime
		want   bool
	}{
		{"active within range", StatusActive, "2026-01-01", nullDay("2026-12-31"), true},
		{"active with no end date", StatusActive, "2026-01-01", sql.NullTime{}, true},
		{"active ending today", StatusActive, "2026-01-01", nullDay("2026-06-15"), true},
		{"active starting today", StatusActive, "2026-06-15", nullDay("2026-12-31"), true},
		{"ended yesterday", StatusActive, "2026-01-01", nullDay("2026-06-14"), false},
		{"starts tomorrow", StatusActive, "2026-06-16", nullDay("2026-12-31"), false},
		{"non-active status within range", Status("Expired"), "2026-01-01", nullDay("2026-12-31"), false},
		{"cancelled status", Status("Cancelled"), "2026-01-01", sql.NullTime{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Policy{Status: tt.status, StartDate: day(tt.start), EndDate: tt.end}
			assert.Equal(t, tt.want, p.IsActive(today))
		})
	}
}

func TestDaysUntilRenewal(t *testing.T) {
	today := day("2026-06-15")

	p := Policy{EndDate: nullDay("2026-06-25")}
	days, ok := p.DaysUntilRenewal(today)
	require.True(t, ok)
	assert.Equal(t, 10, days)

	p.EndDate = nullDay("2026-06-10")
	days, ok = p.DaysUntilRenewal(today)
	require.True(t, ok)
	assert.Equal(t, -5, days)

	p.EndDate = sql.NullTime{}
	_, ok = p.DaysUntilRenewal(today)
	assert.False(t, ok)
}

func TestRenewalStatus(t *testing.T) {
	today := day("2026-06-15")

	tests := []struct {
		name string
		end  string
		want string
	}{
		{"passed end date", "2026-06-14", RenewalExpired},
		{"due today", "2026-06-15", RenewalCritical},
		{"exactly seven days out", "2026-06-22", RenewalCritical},
		{"eight days out", "2026-06-23", RenewalWarning},
		{"exactly thirty days out", "2026-07-15", RenewalWarning},
		{"thirty one days out", "2026-07-16", RenewalOK},
		{"far future", "2027-06-15", RenewalOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Policy{EndDate: nullDay(tt.end)}
			got, ok := p.RenewalStatus(today)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("no end date has no renewal status", func(t *testing.T) {
		p := Policy{}
		_, ok := p.RenewalStatus(today)
		assert.False(t, ok)
	})
}

func TestDetailProjection(t *testing.T) {
	today := day("2026-06-15")

	p := Policy{
		ID:           7,
		AgentID:      2,
		CustomerID:   3,
		PolicyNumber: "POL-1001",
		PolicyType:   "Auto",
		Premium:      120.50,
		StartDate:    day("2026-01-01"),
		EndDate:      nullDay("2026-06-20"),
		Status:       StatusActive,
		AgentName:    sql.NullString{String: "Jane Smith", Valid: true},
		CustomerName: sql.NullString{String: "Bob Jones", Valid: true},
		ClaimCount:   2,
	}

	d := p.Detail(today)
	assert.Equal(t, int64(7), d.PolicyID)
	assert.Equal(t, "2026-01-01", d.StartDate)
	require.NotNil(t, d.EndDate)
	assert.Equal(t, "2026-06-20", *d.EndDate)
	assert.True(t, d.IsActive)
	require.NotNil(t, d.DaysUntilRenewal)
	assert.Equal(t, 5, *d.DaysUntilRenewal)
	require.NotNil(t, d.RenewalStatus)
	assert.Equal(t, RenewalCritical, *d.RenewalStatus)
	require.NotNil(t, d.AgentName)
	assert.Equal(t, "Jane Smith", *d.AgentName)
	assert.Equal(t, int64(2), d.ClaimCount)

	t.Run("open ended policy omits renewal fields", func(t *testing.T) {
		open := Policy{PolicyNumber: "POL-1002", StartDate: day("2026-01-01"), Status: StatusActive}
		d := open.Detail(today)
		assert.Nil(t, d.EndDate)
		assert.Nil(t, d.DaysUntilRenewal)
		assert.Nil(t, d.RenewalStatus)
		assert.True(t, d.IsActive)
	})
}
