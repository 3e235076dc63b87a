package journal

// Entry types.
const (
	TypeAudio = "audio"
	TypeImage = "image"
	TypeText  = "text"
)

// Entry is one analysed reflection.
type Entry struct {
	ID           string   `json:"id"`
	Date         string   `json:"date"`
	Type         string   `json:"type"`
	Content      string   `json:"content"`
	Emotions     []string `json:"emotions"`
	Tags         []string `json:"tags"`
	AIReflection string   `json:"aiReflection"`
}

// Recording is the simulated voice-memo state.
type Recording struct {
	Recording bool   `json:"recording"`
	Draft     string `json:"draft"`
}

// SimulatedTranscript stands in for speech-to-text when a recording stops.
const SimulatedTranscript = "Hoy tuve problemas con el borde de la bufanda. Me sentí frustrada porque el color no quedaba parejo con el teñido de molle."
