package compare

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/rgehrsitz/roadmap/internal/transform"
)

// Parameters a sensitivity sweep can vary
const (
	ParamPEPM      = "pepm"
	ParamHeadcount = "headcount"
	ParamDelay     = "delay"
	ParamBudget    = "budget"
)

// Risk levels of a sensitivity analysis
const (
	RiskLow      = "LOW"
	RiskMedium   = "MEDIUM"
	RiskHigh     = "HIGH"
	RiskCritical = "CRITICAL"
)

// SensitivityParameter is one roadmap parameter swept across a range
type SensitivityParameter struct {
	Name           string          `json:"name"`
	InterventionID int             `json:"interventionId,omitempty"` // delay: 0 shifts every intervention
	MinValue       decimal.Decimal `json:"minValue"`
	MaxValue       decimal.Decimal `json:"maxValue"`
	Steps          int             `json:"steps"`
}

// SensitivityPoint is the roadmap evaluated at one swept value
type SensitivityPoint struct {
	Value  decimal.Decimal  `json:"value"`
	Result ComparisonResult `json:"result"`
	// Score is the percent change in total cost per percent change in the
	// parameter; for delay it is per month of delay
	Score decimal.Decimal `json:"score"`
}

// SensitivityAnalysis is the outcome of one parameter sweep
type SensitivityAnalysis struct {
	Parameter       SensitivityParameter `json:"parameter"`
	BaseValue       decimal.Decimal      `json:"baseValue"`
	Base            ComparisonResult     `json:"base"`
	Points          []SensitivityPoint   `json:"points"`
	MinFitting      *decimal.Decimal     `json:"minFitting,omitempty"` // smallest swept value within budget
	MaxFitting      *decimal.Decimal     `json:"maxFitting,omitempty"` // largest swept value within budget
	MaxScore        decimal.Decimal      `json:"maxScore"`
	RiskLevel       string               `json:"riskLevel"`
	Recommendations []string             `json:"recommendations"`
}

// Validate checks the sweep bounds
func (p SensitivityParameter) Validate() error {
	switch p.Name {
	case ParamPEPM, ParamHeadcount:
		if p.InterventionID <= 0 {
			return fmt.Errorf("%s sweep requires an intervention id", p.Name)
		}
	case ParamDelay, ParamBudget:
	default:
		return fmt.Errorf("unknown sensitivity parameter %q (valid: %s, %s, %s, %s)", p.Name, ParamPEPM, ParamHeadcount, ParamDelay, ParamBudget)
	}
	if p.Steps < 2 {
		return fmt.Errorf("steps must be at least 2, got %d", p.Steps)
	}
	if p.MinValue.IsNegative() {
		return fmt.Errorf("min cannot be negative, got %s", p.MinValue)
	}
	if p.MinValue.GreaterThan(p.MaxValue) {
		return fmt.Errorf("min %s cannot be greater than max %s", p.MinValue, p.MaxValue)
	}
	return nil
}

// ParseSensitivitySpec parses "name:key=value,..." with keys id, min, max and steps,
// e.g. "pepm:id=2,min=1,max=10,steps=10". Steps defaults to 5.
func ParseSensitivitySpec(spec string) (SensitivityParameter, error) {
	name, rest, _ := strings.Cut(strings.TrimSpace(spec), ":")
	p := SensitivityParameter{Name: strings.ToLower(name), Steps: 5}

	var haveMin, haveMax bool
	for _, pair := range strings.Split(rest, ",") {
		if strings.TrimSpace(pair) == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return p, fmt.Errorf("invalid parameter %q in %q (expected key=value)", pair, spec)
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)

		var err error
		switch key {
		case "id":
			p.InterventionID, err = strconv.Atoi(value)
		case "steps":
			p.Steps, err = strconv.Atoi(value)
		case "min":
			p.MinValue, err = decimal.NewFromString(value)
			haveMin = true
		case "max":
			p.MaxValue, err = decimal.NewFromString(value)
			haveMax = true
		default:
			return p, fmt.Errorf("unknown key %q in %q", key, spec)
		}
		if err != nil {
			return p, fmt.Errorf("invalid %s in %q: %w", key, spec, err)
		}
	}
	if !haveMin || !haveMax {
		return p, fmt.Errorf("%q needs both min and max", spec)
	}
	return p, p.Validate()
}

// AnalyzeSensitivity sweeps one parameter and evaluates every point against the base roadmap
func (ce *CompareEngine) AnalyzeSensitivity(
	ctx context.Context,
	config *domain.Configuration,
	param SensitivityParameter,
) (*SensitivityAnalysis, error) {
	if config == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if err := param.Validate(); err != nil {
		return nil, err
	}

	baseValue, err := sensitivityBaseValue(config, param)
	if err != nil {
		return nil, err
	}

	values := generateParameterValues(param)
	cfgs := make([]*domain.Configuration, 0, len(values)+1)
	cfgs = append(cfgs, config)
	for _, v := range values {
		modified, err := transform.ApplyTransforms(config, []transform.RoadmapTransform{sensitivityTransform(param, v)})
		if err != nil {
			return nil, fmt.Errorf("failed to apply %s=%s: %w", param.Name, v, err)
		}
		cfgs = append(cfgs, modified)
	}

	reports, err := ce.CalcEngine.EvaluateAll(ctx, cfgs)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate roadmaps: %w", err)
	}

	base := ce.MetricsCalculator.CalculateMetrics(DefaultBaseName, reports[0])
	base.Description = "Roadmap as configured"

	analysis := &SensitivityAnalysis{
		Parameter: param,
		BaseValue: baseValue,
		Base:      base,
		Points:    make([]SensitivityPoint, 0, len(values)),
	}

	for i, v := range values {
		name := fmt.Sprintf("%s=%s", param.Name, v.String())
		result := ce.MetricsCalculator.CalculateMetrics(name, reports[i+1])
		result = ce.MetricsCalculator.CalculateComparison(result, base)

		point := SensitivityPoint{Value: v, Result: result, Score: sensitivityScore(param, baseValue, v, result)}
		analysis.Points = append(analysis.Points, point)

		if point.Score.GreaterThan(analysis.MaxScore) {
			analysis.MaxScore = point.Score
		}
		if result.WithinBudget() {
			fitting := v
			if analysis.MinFitting == nil {
				analysis.MinFitting = &fitting
			}
			analysis.MaxFitting = &fitting
		}
	}

	analysis.RiskLevel = analysis.determineRiskLevel()
	analysis.Recommendations = analysis.generateRecommendations()
	return analysis, nil
}

// generateParameterValues spreads Steps values evenly over [MinValue, MaxValue].
// Headcount and delay are whole numbers.
func generateParameterValues(param SensitivityParameter) []decimal.Decimal {
	stepSize := param.MaxValue.Sub(param.MinValue).Div(decimal.NewFromInt(int64(param.Steps - 1)))

	values := make([]decimal.Decimal, 0, param.Steps)
	for i := 0; i < param.Steps; i++ {
		value := param.MinValue.Add(stepSize.Mul(decimal.NewFromInt(int64(i))))
		switch param.Name {
		case ParamHeadcount, ParamDelay:
			value = value.Round(0)
		default:
			value = value.Round(2)
		}
		values = append(values, value)
	}
	return values
}

func sensitivityBaseValue(config *domain.Configuration, param SensitivityParameter) (decimal.Decimal, error) {
	switch param.Name {
	case ParamDelay:
		if param.InterventionID == 0 {
			return decimal.Zero, nil
		}
	case ParamBudget:
		return config.Roadmap.YearlyBudget, nil
	}

	iv, ok := config.Interventions.Find(param.InterventionID)
	if !ok {
		return decimal.Zero, fmt.Errorf("intervention %d: %w", param.InterventionID, domain.ErrInterventionNotFound)
	}
	switch param.Name {
	case ParamPEPM:
		return iv.Costs.OngoingCostPEPM, nil
	case ParamHeadcount:
		return decimal.NewFromInt(int64(iv.Headcount())), nil
	}
	return decimal.Zero, nil
}

func sensitivityTransform(param SensitivityParameter, value decimal.Decimal) transform.RoadmapTransform {
	switch param.Name {
	case ParamPEPM:
		return &transform.SetCost{ID: param.InterventionID, Component: transform.CostPEPM, Amount: value}
	case ParamHeadcount:
		return &transform.SetHeadcount{ID: param.InterventionID, Employees: int(value.IntPart())}
	case ParamDelay:
		if param.InterventionID == 0 {
			return &transform.ShiftAllInterventions{Months: int(value.IntPart())}
		}
		return &transform.ShiftIntervention{ID: param.InterventionID, Months: int(value.IntPart())}
	default:
		return &transform.SetYearlyBudget{Amount: value}
	}
}

func sensitivityScore(param SensitivityParameter, baseValue, value decimal.Decimal, result ComparisonResult) decimal.Decimal {
	if param.Name == ParamDelay {
		if value.IsZero() {
			return decimal.Zero
		}
		return result.TotalPctFromBase.Abs().Div(value.Abs()).Round(4)
	}
	if baseValue.IsZero() || value.Equal(baseValue) {
		return decimal.Zero
	}
	paramChange := value.Sub(baseValue).Div(baseValue).Mul(decimal.NewFromInt(100))
	return result.TotalPctFromBase.Abs().Div(paramChange.Abs()).Round(4)
}

// determineRiskLevel rates how much of the swept range breaks the budget
func (sa *SensitivityAnalysis) determineRiskLevel() string {
	over := 0
	for _, p := range sa.Points {
		if !p.Result.WithinBudget() {
			over++
		}
	}

	switch {
	case !sa.Base.WithinBudget():
		return RiskCritical
	case over*2 > len(sa.Points):
		return RiskHigh
	case over > 0:
		return RiskMedium
	default:
		return RiskLow
	}
}

func (sa *SensitivityAnalysis) generateRecommendations() []string {
	recommendations := []string{}
	name := sa.Parameter.Name

	switch sa.RiskLevel {
	case RiskLow:
		recommendations = append(recommendations, fmt.Sprintf("Roadmap stays within budget across the whole %s range", name))
	case RiskMedium:
		recommendations = append(recommendations, fmt.Sprintf("Part of the %s range breaks the budget; agree limits before committing", name))
	case RiskHigh:
		recommendations = append(recommendations, fmt.Sprintf("⚠️ Most of the %s range breaks the budget", name))
	case RiskCritical:
		recommendations = append(recommendations, "⚠️ Roadmap as configured is already over budget")
	}

	if sa.MaxFitting == nil {
		recommendations = append(recommendations, fmt.Sprintf("No %s value in the swept range fits the budget", name))
		return recommendations
	}

	switch name {
	case ParamPEPM:
		if sa.MaxFitting.LessThan(sa.Parameter.MaxValue) {
			recommendations = append(recommendations, fmt.Sprintf("Negotiate a PEPM ceiling of $%s or less for intervention %d", sa.MaxFitting.StringFixed(2), sa.Parameter.InterventionID))
		}
	case ParamHeadcount:
		if sa.MaxFitting.LessThan(sa.Parameter.MaxValue) {
			recommendations = append(recommendations, fmt.Sprintf("Cap enrolment of intervention %d at %s employees", sa.Parameter.InterventionID, sa.MaxFitting.String()))
		}
	case ParamDelay:
		if !sa.MinFitting.IsZero() {
			recommendations = append(recommendations, fmt.Sprintf("A delay of at least %s months is needed to fit the budget", sa.MinFitting.String()))
		}
	case ParamBudget:
		if sa.MinFitting.GreaterThan(sa.Parameter.MinValue) {
			recommendations = append(recommendations, fmt.Sprintf("Keep the yearly budget at $%s or more", sa.MinFitting.StringFixed(0)))
		}
	}

	if sa.MaxScore.GreaterThan(decimal.NewFromInt(1)) && name != ParamDelay {
		recommendations = append(recommendations, fmt.Sprintf("Total cost moves faster than %s itself; monitor it closely", name))
	}
	return recommendations
}

// FormatSensitivity renders a sensitivity analysis as a console table
func (tf *TableFormatter) FormatSensitivity(sa *SensitivityAnalysis) string {
	var sb strings.Builder

	sb.WriteString("ROADMAP SENSITIVITY ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 90) + "\n")
	sb.WriteString(fmt.Sprintf("Parameter:  %s", sa.Parameter.Name))
	if sa.Parameter.InterventionID != 0 {
		sb.WriteString(fmt.Sprintf(" (intervention %d)", sa.Parameter.InterventionID))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Base value: %s\n", sa.BaseValue.String()))
	sb.WriteString(fmt.Sprintf("Risk level: %s\n\n", sa.RiskLevel))

	sb.WriteString(fmt.Sprintf("%12s %11s %11s %11s %11s %9s %8s\n", "Value", "Year 1", "Year 2", "Year 3", "Total", "Score", "Status"))
	sb.WriteString(strings.Repeat("-", 90) + "\n")
	for _, p := range sa.Points {
		status := "OK"
		if !p.Result.WithinBudget() {
			status = "OVER"
		}
		sb.WriteString(fmt.Sprintf("%12s %11s %11s %11s %11s %9s %8s\n",
			p.Value.String(),
			"$"+tf.formatDecimal(p.Result.YearSpend[0]),
			"$"+tf.formatDecimal(p.Result.YearSpend[1]),
			"$"+tf.formatDecimal(p.Result.YearSpend[2]),
			"$"+tf.formatDecimal(p.Result.TotalInvestment),
			p.Score.StringFixed(2),
			status))
	}
	sb.WriteString("\n")

	if len(sa.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 90) + "\n")
		for _, rec := range sa.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
