package calculation

import (
	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/rgehrsitz/roadmap/pkg/dateutil"
	"github.com/shopspring/decimal"
)

func mentalHealthPlatform() domain.Intervention {
	return domain.Intervention{
		ID:   1,
		Name: "Mental Health Platform",
		Timeline: domain.InterventionTimeline{
			ImplementationStartDate: dateutil.Date(2025, 8, 1),
			ImplementationEndDate:   dateutil.Date(2025, 10, 31),
			OngoingStartDate:        dateutil.Date(2025, 9, 1),
			OngoingEndDate:          dateutil.Date(2027, 3, 12),
		},
		Costs: domain.CostBreakdown{
			ImplementationCost: decimal.NewFromInt(120000),
			OngoingCostPEPM:    decimal.RequireFromString("2.45"),
			OngoingCostFixed:   decimal.NewFromInt(10000),
			OneTimeFixedFee:    decimal.NewFromInt(1500),
		},
		EligibleEmployees: domain.IntPtr(500),
	}
}

func physicalWellnessProgram() domain.Intervention {
	return domain.Intervention{
		ID:   2,
		Name: "Physical Wellness Program",
		Timeline: domain.InterventionTimeline{
			ImplementationStartDate: dateutil.Date(2026, 4, 1),
			ImplementationEndDate:   dateutil.Date(2026, 5, 31),
			OngoingStartDate:        dateutil.Date(2026, 6, 1),
			OngoingEndDate:          dateutil.Date(2028, 3, 12),
		},
		Costs: domain.CostBreakdown{
			ImplementationCost: decimal.Zero,
			OngoingCostPEPM:    decimal.RequireFromString("3.33"),
			OngoingCostFixed:   decimal.Zero,
			OneTimeFixedFee:    decimal.NewFromInt(10000),
		},
		EligibleEmployees: domain.IntPtr(500),
	}
}

func exampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Roadmap: domain.Roadmap{
			StartDate:    roadmapStart,
			YearlyBudget: decimal.NewFromInt(500000),
		},
		Interventions: domain.InterventionSet{mentalHealthPlatform(), physicalWellnessProgram()},
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
