package calculation

import (
	"testing"
	"time"

	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/rgehrsitz/roadmap/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func TestAllocateYearlyCosts_FirstYearScenario(t *testing.T) {
	w := RoadmapWindows(roadmapStart)[0]
	b := AllocateYearlyCosts(mentalHealthPlatform(), w.Start, w.End, roadmapStart)

	assertDecimal(t, "120000", b.ImplementationCost)
	assertDecimal(t, "8575", b.PEPMCost)
	assertDecimal(t, "10000", b.FixedAnnualCost)
	assertDecimal(t, "1500", b.OneTimeFixedFee)
	assertDecimal(t, "140075", b.Total)
}

func TestAllocateRoadmap_ExampleInterventions(t *testing.T) {
	mh := AllocateRoadmap(mentalHealthPlatform(), roadmapStart)
	assertDecimal(t, "140075", mh[0].Total)
	assertDecimal(t, "14700", mh[1].PEPMCost)
	assertDecimal(t, "24700", mh[1].Total)
	assertDecimal(t, "0", mh[2].Total)

	pw := AllocateRoadmap(physicalWellnessProgram(), roadmapStart)
	assertDecimal(t, "0", pw[0].Total)
	assertDecimal(t, "16650", pw[1].PEPMCost)
	assertDecimal(t, "10000", pw[1].OneTimeFixedFee)
	assertDecimal(t, "26650", pw[1].Total)
	assertDecimal(t, "19980", pw[2].PEPMCost)
	assertDecimal(t, "19980", pw[2].Total)
}

func TestAllocateYearlyCosts_OneOffChargesLandOnce(t *testing.T) {
	iv := mentalHealthPlatform()
	years := AllocateRoadmap(iv, roadmapStart)

	impl, oneTime := decimal.Zero, decimal.Zero
	for _, b := range years {
		impl = impl.Add(b.ImplementationCost)
		oneTime = oneTime.Add(b.OneTimeFixedFee)
	}
	assert.True(t, iv.Costs.ImplementationCost.Equal(impl))
	assert.True(t, iv.Costs.OneTimeFixedFee.Equal(oneTime))
}

func TestAllocateYearlyCosts_AnchorOutsideRoadmap(t *testing.T) {
	iv := mentalHealthPlatform()
	iv.Timeline.ImplementationStartDate = dateutil.Date(2024, 1, 1)
	iv.Timeline.OngoingStartDate = dateutil.Date(2024, 6, 1)

	for _, b := range AllocateRoadmap(iv, roadmapStart) {
		assert.True(t, b.ImplementationCost.IsZero())
		assert.True(t, b.OneTimeFixedFee.IsZero())
	}

	// a year outside the roadmap never picks up an anchor that is also outside
	yearStart := dateutil.Date(2030, 1, 1)
	b := AllocateYearlyCosts(iv, yearStart, GetYearEndDate(yearStart), roadmapStart)
	assert.True(t, b.ImplementationCost.IsZero())
	assert.True(t, b.OneTimeFixedFee.IsZero())
}

func TestAllocateYearlyCosts_FixedAnnualOverlap(t *testing.T) {
	tests := []struct {
		name         string
		start, end   string
		chargedYears []bool
	}{
		{"inside one year", "2026-05-01", "2026-08-31", []bool{false, true, false}},
		{"ends on year start", "2025-09-01", "2026-03-13", []bool{true, true, false}},
		{"starts on year end", "2027-03-12", "2027-09-01", []bool{false, true, true}},
		{"spans whole roadmap", "2020-01-01", "2030-01-01", []bool{true, true, true}},
		{"before roadmap", "2020-01-01", "2025-03-12", []bool{false, false, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv := domain.Intervention{
				ID: 9,
				Timeline: domain.InterventionTimeline{
					ImplementationStartDate: dateutil.Date(2020, 1, 1),
					ImplementationEndDate:   dateutil.Date(2020, 1, 1),
					OngoingStartDate:        mustParse(t, tt.start),
					OngoingEndDate:          mustParse(t, tt.end),
				},
				Costs: domain.CostBreakdown{OngoingCostFixed: decimal.NewFromInt(5000)},
			}
			years := AllocateRoadmap(iv, roadmapStart)
			for k, charged := range tt.chargedYears {
				assert.Equal(t, charged, !years[k].FixedAnnualCost.IsZero(), "year %d", k+1)
			}
		})
	}
}

func TestAllocateYearlyCosts_BoundaryDayBillsFullMonth(t *testing.T) {
	iv := domain.Intervention{
		ID: 3,
		Timeline: domain.InterventionTimeline{
			ImplementationStartDate: dateutil.Date(2025, 3, 13),
			ImplementationEndDate:   dateutil.Date(2025, 3, 13),
			OngoingStartDate:        dateutil.Date(2025, 9, 1),
			OngoingEndDate:          dateutil.Date(2026, 3, 13),
		},
		Costs:             domain.CostBreakdown{OngoingCostPEPM: decimal.NewFromInt(10)},
		EligibleEmployees: domain.IntPtr(100),
	}
	years := AllocateRoadmap(iv, roadmapStart)

	assertDecimal(t, "7000", years[0].PEPMCost)
	assertDecimal(t, "1000", years[1].PEPMCost)
}

func TestAllocateYearlyCosts_NoHeadcount(t *testing.T) {
	iv := mentalHealthPlatform()
	iv.EligibleEmployees = nil
	w := RoadmapWindows(roadmapStart)[0]
	assert.True(t, AllocateYearlyCosts(iv, w.Start, w.End, roadmapStart).PEPMCost.IsZero())

	iv.EligibleEmployees = domain.IntPtr(0)
	assert.True(t, AllocateYearlyCosts(iv, w.Start, w.End, roadmapStart).PEPMCost.IsZero())
}

func TestAllocateYearlyCosts_TotalIsSumOfComponents(t *testing.T) {
	for _, iv := range []domain.Intervention{mentalHealthPlatform(), physicalWellnessProgram()} {
		for _, b := range AllocateRoadmap(iv, roadmapStart) {
			sum := b.ImplementationCost.Add(b.PEPMCost).Add(b.FixedAnnualCost).Add(b.OneTimeFixedFee)
			assert.True(t, sum.Equal(b.Total))
		}
	}
}

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := dateutil.Parse(s)
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return d
}
