package tui

import (
	"github.com/Veraticus/ledgerdeck/internal/model"
	"github.com/Veraticus/ledgerdeck/internal/report"
)

// Message types for TUI communication.
type (
	pageFetchedMsg struct {
		err  error
		page int
	}

	formSubmittedMsg struct {
		err  error
		page int
	}

	deleteDoneMsg struct {
		err     error
		page    int
		removed bool
	}

	exportedMsg struct {
		err      error
		location string
	}

	signedInMsg struct {
		err  error
		user model.User
	}

	dashboardLoadedMsg struct {
		err       error
		dashboard report.Dashboard
	}

	statusClearMsg struct {
		seq int
	}
)
