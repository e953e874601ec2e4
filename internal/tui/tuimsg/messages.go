// Package tuimsg holds messages that scenes send back to the root model.
package tuimsg

// CompareRequestedMsg asks the root model to compare the roadmap against templates
type CompareRequestedMsg struct {
	Templates []string
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// FitRequestedMsg asks the root model to run the break-even search for an intervention
type FitRequestedMsg struct {
	InterventionID int
}
