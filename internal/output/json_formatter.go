package output

import (
	json "github.com/goccy/go-json"

	"github.com/rgehrsitz/roadmap/internal/domain"
)

// JSONFormatter emits the full report
type JSONFormatter struct {
	Indent bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.RoadmapReport) ([]byte, error) {
	if j.Indent {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}
