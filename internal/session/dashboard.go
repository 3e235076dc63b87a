package session

// Dashboard is the static home screen content.
type Dashboard struct {
	Greeting string    `json:"greeting"`
	Subtitle string    `json:"subtitle"`
	Stats    []Stat    `json:"stats"`
	Tools    []Tool    `json:"tools"`
	Projects []Project `json:"projects"`
}

type Stat struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Tool is a shortcut card that navigates to View.
type Tool struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	View        View   `json:"view"`
}

type Project struct {
	Name     string `json:"name"`
	Progress int    `json:"progress"`
	Note     string `json:"note"`
}

// DashboardData returns the dashboard. Values are fixed.
func DashboardData() Dashboard {
	return Dashboard{
		Greeting: "¡Hola, Maestro! 👋",
		Subtitle: "Hoy es un gran día para tejer historias.",
		Stats: []Stat{
			{Value: 12, Label: "Días"},
			{Value: 5, Label: "Símbolos"},
		},
		Tools: []Tool{
			{Title: "Revisar mi Técnica", Description: "Evaluar tensión y nudos", View: ViewAssistant},
			{Title: "Consultar Símbolos", Description: "Descubre significados ancestrales", View: ViewCulture},
		},
		Projects: []Project{
			{Name: "Bufanda de Alpaca", Progress: 75, Note: "¡Casi terminas! Faltan los acabados."},
			{Name: "Guantes Festivos", Progress: 30, Note: "Recién comenzando la iconografía."},
		},
	}
}
