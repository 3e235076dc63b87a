// Package community serves the static community-feedback chart.
package community

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nessydroid1192/may-tejiarte/internal/shared/server/respond"
)

// FeedbackData is one axis of the radar chart.
type FeedbackData struct {
	Category string   `json:"category"`
	Score    int      `json:"score"`
	Comments []string `json:"comments"`
}

// Highlight is a featured community comment.
type Highlight struct {
	Title string `json:"title"`
	Quote string `json:"quote"`
	Votes int    `json:"votes"`
}

// Report is the whole community view.
type Report struct {
	Piece      string         `json:"piece"`
	Chart      []FeedbackData `json:"chart"`
	TotalScore int            `json:"totalScore"`
	Highlights []Highlight    `json:"highlights"`
}

const (
	warmthQuote = "El grosor es perfecto para las heladas de junio. Se siente el cariño en el hilado."
	beautyQuote = "El rojo cochinilla resalta muy bien los ojos de llama. Muy fiel a la tradición."
)

// Feedback returns the static report. Scores stay within 0..100.
func Feedback() Report {
	chart := []FeedbackData{
		{Category: "Calidez", Score: 90, Comments: []string{warmthQuote}},
		{Category: "Belleza", Score: 85, Comments: []string{beautyQuote}},
		{Category: "Peso", Score: 70, Comments: []string{}},
		{Category: "Color", Score: 95, Comments: []string{}},
		{Category: "Acabados", Score: 80, Comments: []string{}},
	}
	return Report{
		Piece:      "Evaluación del Poncho",
		Chart:      chart,
		TotalScore: totalScore(chart),
		Highlights: []Highlight{
			{Title: "Calidez Sentida", Quote: warmthQuote, Votes: 12},
			{Title: "Belleza Simbólica", Quote: beautyQuote, Votes: 8},
		},
	}
}

func totalScore(chart []FeedbackData) int {
	if len(chart) == 0 {
		return 0
	}
	sum := 0
	for _, d := range chart {
		sum += d.Score
	}
	return int(math.Round(float64(sum) / float64(len(chart))))
}

// Handler serves the community chart.
type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

// RegisterRoutes attaches community routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/community/feedback", h.feedback)
}

func (h *Handler) feedback(c *gin.Context) {
	respond.JSON(c, http.StatusOK, Feedback())
}
