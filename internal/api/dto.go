package api

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/rgehrsitz/roadmap/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Dates cross the wire as YYYY-MM-DD strings; the domain model keeps civil time.Time values.

// RoadmapDTO is the roadmap header of a request body
type RoadmapDTO struct {
	StartDate    string            `json:"startDate"`
	YearlyBudget decimal.Decimal   `json:"yearlyBudget"`
	YearBudgets  []decimal.Decimal `json:"yearBudgets,omitempty"`
}

// TimelineDTO carries the two intervention windows
type TimelineDTO struct {
	ImplementationStartDate string `json:"implementationStartDate"`
	ImplementationEndDate   string `json:"implementationEndDate"`
	OngoingStartDate        string `json:"ongoingStartDate"`
	OngoingEndDate          string `json:"ongoingEndDate"`
}

// InterventionDTO is one intervention in a request or response
type InterventionDTO struct {
	ID                int                  `json:"id"`
	Name              string               `json:"name"`
	Description       string               `json:"description,omitempty"`
	Timeline          TimelineDTO          `json:"timeline"`
	Costs             domain.CostBreakdown `json:"costs"`
	EligibleEmployees *int                 `json:"eligibleEmployees,omitempty"`
}

// ConfigurationDTO is a complete roadmap document
type ConfigurationDTO struct {
	Roadmap       RoadmapDTO        `json:"roadmap"`
	Interventions []InterventionDTO `json:"interventions"`
}

// ReplaceInterventionRequest is the body of the edit endpoint
type ReplaceInterventionRequest struct {
	Configuration ConfigurationDTO `json:"configuration"`
	Intervention  InterventionDTO  `json:"intervention"`
}

// YearsRequest asks for the windows of a roadmap start
type YearsRequest struct {
	StartDate string `json:"startDate"`
}

// ResolveRequest asks which year contains Date
type ResolveRequest struct {
	Date         string `json:"date"`
	RoadmapStart string `json:"roadmapStart"`
}

// ResolveResponse reports the resolved year; Index is -1 outside the roadmap
type ResolveResponse struct {
	Date   string     `json:"date"`
	Index  int        `json:"index"`
	Label  string     `json:"label"`
	Window *WindowDTO `json:"window,omitempty"`
}

// CompareRequest evaluates template and ad-hoc variants against the posted roadmap
type CompareRequest struct {
	Configuration ConfigurationDTO `json:"configuration"`
	Templates     []string         `json:"templates"`
	Transforms    []string         `json:"transforms"`
}

// FitRequest asks for the break-even value of one roadmap parameter
type FitRequest struct {
	Configuration  ConfigurationDTO `json:"configuration"`
	Target         string           `json:"target"`
	InterventionID int              `json:"interventionId"`
	MaxDelayMonths *int             `json:"maxDelayMonths,omitempty"`
}

// WindowDTO is a financial year window
type WindowDTO struct {
	Index int    `json:"index"`
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
}

// BudgetDTO is one year's budget comparison
type BudgetDTO struct {
	Year         int             `json:"year"`
	Allocated    decimal.Decimal `json:"allocated"`
	Spent        decimal.Decimal `json:"spent"`
	Variance     decimal.Decimal `json:"variance"`
	Utilization  decimal.Decimal `json:"utilization"`
	IsOverBudget bool            `json:"isOverBudget"`
}

// ReportDTO is the evaluated roadmap returned to clients
type ReportDTO struct {
	Roadmap       RoadmapDTO           `json:"roadmap"`
	Interventions []InterventionDTO    `json:"interventions"`
	Windows       []WindowDTO          `json:"windows"`
	Budgets       []BudgetDTO          `json:"budgets"`
	CostTable     domain.CostTable     `json:"costTable"`
	Timeline      []domain.TimelineRow `json:"timeline"`
	OverBudget    bool                 `json:"overBudget"`
	EndDate       string               `json:"endDate"`
}

// CatalogEntryDTO is one program of the built-in catalog
type CatalogEntryDTO = domain.CatalogEntry

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// HealthResponse reports liveness
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func parseDate(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	t, err := dateutil.Parse(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q (use YYYY-MM-DD)", field, raw)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return dateutil.Format(t)
}

// ToDomain converts the DTO into a domain configuration
func (c ConfigurationDTO) ToDomain() (*domain.Configuration, error) {
	start, err := parseDate("roadmap.startDate", c.Roadmap.StartDate)
	if err != nil {
		return nil, err
	}
	cfg := &domain.Configuration{
		Roadmap: domain.Roadmap{
			StartDate:    start,
			YearlyBudget: c.Roadmap.YearlyBudget,
			YearBudgets:  c.Roadmap.YearBudgets,
		},
		Interventions: make(domain.InterventionSet, 0, len(c.Interventions)),
	}
	for _, dto := range c.Interventions {
		iv, err := dto.ToDomain()
		if err != nil {
			return nil, err
		}
		cfg.Interventions = append(cfg.Interventions, iv)
	}
	return cfg, nil
}

// ToDomain converts the DTO into a domain intervention
func (d InterventionDTO) ToDomain() (domain.Intervention, error) {
	prefix := fmt.Sprintf("intervention %d ", d.ID)
	var tl domain.InterventionTimeline
	var err error
	if tl.ImplementationStartDate, err = parseDate(prefix+"implementationStartDate", d.Timeline.ImplementationStartDate); err != nil {
		return domain.Intervention{}, err
	}
	if tl.ImplementationEndDate, err = parseDate(prefix+"implementationEndDate", d.Timeline.ImplementationEndDate); err != nil {
		return domain.Intervention{}, err
	}
	if tl.OngoingStartDate, err = parseDate(prefix+"ongoingStartDate", d.Timeline.OngoingStartDate); err != nil {
		return domain.Intervention{}, err
	}
	if tl.OngoingEndDate, err = parseDate(prefix+"ongoingEndDate", d.Timeline.OngoingEndDate); err != nil {
		return domain.Intervention{}, err
	}
	return domain.Intervention{
		ID:                d.ID,
		Name:              d.Name,
		Description:       d.Description,
		Timeline:          tl,
		Costs:             d.Costs,
		EligibleEmployees: d.EligibleEmployees,
	}, nil
}

// ConfigurationFromDomain renders cfg as the request body the API accepts
func ConfigurationFromDomain(cfg *domain.Configuration) ConfigurationDTO {
	dto := ConfigurationDTO{
		Roadmap:       toRoadmapDTO(cfg.Roadmap),
		Interventions: make([]InterventionDTO, 0, len(cfg.Interventions)),
	}
	for _, iv := range cfg.Interventions {
		dto.Interventions = append(dto.Interventions, toInterventionDTO(iv))
	}
	return dto
}

func toRoadmapDTO(r domain.Roadmap) RoadmapDTO {
	return RoadmapDTO{
		StartDate:    formatDate(r.StartDate),
		YearlyBudget: r.YearlyBudget,
		YearBudgets:  r.YearBudgets,
	}
}

func toInterventionDTO(iv domain.Intervention) InterventionDTO {
	return InterventionDTO{
		ID:          iv.ID,
		Name:        iv.Name,
		Description: iv.Description,
		Timeline: TimelineDTO{
			ImplementationStartDate: formatDate(iv.Timeline.ImplementationStartDate),
			ImplementationEndDate:   formatDate(iv.Timeline.ImplementationEndDate),
			OngoingStartDate:        formatDate(iv.Timeline.OngoingStartDate),
			OngoingEndDate:          formatDate(iv.Timeline.OngoingEndDate),
		},
		Costs:             iv.Costs,
		EligibleEmployees: iv.EligibleEmployees,
	}
}

func toWindowDTO(w domain.YearWindow) WindowDTO {
	return WindowDTO{
		Index: w.Index,
		Start: formatDate(w.Start),
		End:   formatDate(w.End),
		Label: w.Label(),
	}
}

func toReportDTO(cfg *domain.Configuration, report *domain.RoadmapReport, endDate time.Time) ReportDTO {
	dto := ReportDTO{
		Roadmap:       toRoadmapDTO(report.Roadmap),
		Interventions: make([]InterventionDTO, 0, len(cfg.Interventions)),
		Windows:       make([]WindowDTO, 0, len(report.Windows)),
		Budgets:       make([]BudgetDTO, 0, len(report.Budgets)),
		CostTable:     report.CostTable,
		Timeline:      report.Timeline,
		OverBudget:    report.IsOverBudget(),
		EndDate:       formatDate(endDate),
	}
	for _, iv := range cfg.Interventions {
		dto.Interventions = append(dto.Interventions, toInterventionDTO(iv))
	}
	for _, w := range report.Windows {
		dto.Windows = append(dto.Windows, toWindowDTO(w))
	}
	for k, b := range report.Budgets {
		dto.Budgets = append(dto.Budgets, BudgetDTO{
			Year:         k + 1,
			Allocated:    b.Allocated,
			Spent:        b.Spent,
			Variance:     b.Variance(),
			Utilization:  b.Utilization().Round(1),
			IsOverBudget: b.IsOverBudget,
		})
	}
	if dto.Timeline == nil {
		dto.Timeline = []domain.TimelineRow{}
	}
	if dto.CostTable.Rows == nil {
		dto.CostTable.Rows = []domain.CostRow{}
	}
	return dto
}
