// Package session holds per-client controllers and the navigation shell.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/nessydroid1192/may-tejiarte/internal/assistant"
	"github.com/nessydroid1192/may-tejiarte/internal/community"
	"github.com/nessydroid1192/may-tejiarte/internal/culture"
	"github.com/nessydroid1192/may-tejiarte/internal/journal"
	"github.com/nessydroid1192/may-tejiarte/internal/library"
	"github.com/nessydroid1192/may-tejiarte/internal/viewstate"
)

// Session is one client's set of controllers plus the current view.
type Session struct {
	ID        string
	CreatedAt time.Time

	Assistant *assistant.Controller
	Culture   *culture.Controller
	Journal   *journal.Controller
	Library   *library.Controller

	mu   sync.Mutex
	view View
}

// Snapshot is what the active view renders.
type Snapshot struct {
	SessionID string                    `json:"sessionId"`
	View      View                      `json:"view"`
	Dashboard *Dashboard                `json:"dashboard,omitempty"`
	Analysis  *viewstate.AnalysisResult `json:"analysis,omitempty"`
	Journal   *JournalState             `json:"journal,omitempty"`
	Library   *LibraryState             `json:"library,omitempty"`
	Community *community.Report         `json:"community,omitempty"`
}

type JournalState struct {
	Entries   []journal.Entry   `json:"entries"`
	Recording journal.Recording `json:"recording"`
	Loading   bool              `json:"loading"`
}

type LibraryState struct {
	Items     []library.Item    `json:"items"`
	Recording library.Recording `json:"recording"`
	Loading   bool              `json:"loading"`
}

// View returns the current view.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Navigate switches the current view. Controller state is kept.
func (s *Session) Navigate(name string) (View, error) {
	v, err := ParseView(name)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.view = v
	s.mu.Unlock()
	return v, nil
}

// Dispatch renders the active view's controller state.
func (s *Session) Dispatch(ctx context.Context) Snapshot {
	view := s.View()
	snap := Snapshot{SessionID: s.ID, View: view}
	switch view {
	case ViewAssistant:
		res := s.Assistant.Result()
		snap.Analysis = &res
	case ViewCulture:
		res := s.Culture.Result()
		snap.Analysis = &res
	case ViewJournal:
		snap.Journal = &JournalState{
			Entries:   s.Journal.Entries(),
			Recording: s.Journal.Recording(),
			Loading:   s.Journal.Loading(),
		}
	case ViewLibrary:
		snap.Library = &LibraryState{
			Items:     s.Library.Items(ctx),
			Recording: s.Library.Recording(),
			Loading:   s.Library.Loading(),
		}
	case ViewCommunity:
		report := community.Feedback()
		snap.Community = &report
	default:
		dash := DashboardData()
		snap.Dashboard = &dash
	}
	return snap
}
