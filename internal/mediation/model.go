package mediation

// TechnicalData is the weave technique critique.
type TechnicalData struct {
	Tension     string   `json:"tension"`
	Density     string   `json:"density"`
	Errors      []string `json:"errors"`
	Suggestions []string `json:"suggestions"`
}

// CulturalData is the symbol interpretation.
type CulturalData struct {
	SymbolName string `json:"symbolName"`
	Meaning    string `json:"meaning"`
	Accuracy   string `json:"accuracy"`
	Question   string `json:"question"`
}

// JournalAnalysis is the model's reading of a journal entry.
type JournalAnalysis struct {
	Emotions   []string `json:"emotions"`
	Tags       []string `json:"tags"`
	Reflection string   `json:"reflection"`
}

// DefaultReflection replaces a missing reflection.
const DefaultReflection = "Sigue practicando, cada error es una lección."

const (
	FeatureTechnique = "technique"
	FeatureSymbolism = "symbolism"
	FeatureJournal   = "journal"
)
