package tui

import (
	"github.com/rgehrsitz/roadmap/internal/breakeven"
	"github.com/rgehrsitz/roadmap/internal/compare"
	"github.com/rgehrsitz/roadmap/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneDashboard Scene = iota
	SceneCosts
	SceneCompare
	SceneFit
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case SceneDashboard:
		return "Dashboard"
	case SceneCosts:
		return "Costs"
	case SceneCompare:
		return "Compare"
	case SceneFit:
		return "Fit"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ConfigLoadedMsg signals the roadmap document has been loaded
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}

// ConfigSavedMsg signals the roadmap document has been written back
type ConfigSavedMsg struct {
	Path string
}

// ComparisonCompleteMsg signals a comparison has finished
type ComparisonCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}

// FitCompleteMsg signals a break-even search has finished
type FitCompleteMsg struct {
	InterventionID int
	Result         *breakeven.MultiDimensionalResult
	Err            error
}
