package session

import (
	"fmt"
	"strings"
)

// View is the screen the navigation shell shows.
type View string

const (
	ViewDashboard View = "DASHBOARD"
	ViewAssistant View = "ASSISTANT"
	ViewJournal   View = "JOURNAL"
	ViewCulture   View = "CULTURE"
	ViewCommunity View = "COMMUNITY"
	ViewLibrary   View = "LIBRARY"
)

// Views lists every view in navigation order.
var Views = []View{ViewDashboard, ViewAssistant, ViewJournal, ViewCulture, ViewCommunity, ViewLibrary}

// ErrUnknownView is returned by ParseView.
var ErrUnknownView = fmt.Errorf("unknown view")

// ParseView accepts a view name in any case.
func ParseView(s string) (View, error) {
	v := View(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Views {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
}
