package viewstate

import "github.com/nessydroid1192/may-tejiarte/internal/mediation"

// AnalysisResult is replaced wholesale on every action. A payload is set only
// in StatusSuccess, and at most one payload is ever set.
type AnalysisResult struct {
	Status        Status                   `json:"status"`
	Message       string                   `json:"message"`
	TechnicalData *mediation.TechnicalData `json:"technicalData,omitempty"`
	CulturalData  *mediation.CulturalData  `json:"culturalData,omitempty"`
}

// Messages are the user-facing texts for each status.
type Messages struct {
	Loading  string
	Success  string
	Error    string
	Encoding string
}

func idleResult() AnalysisResult {
	return AnalysisResult{Status: StatusIdle}
}
