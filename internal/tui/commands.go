package tui

import (
	"context"
	"time"

	"github.com/Veraticus/ledgerdeck/internal/form"
	"github.com/Veraticus/ledgerdeck/internal/listview"
	"github.com/Veraticus/ledgerdeck/internal/model"
	"github.com/Veraticus/ledgerdeck/internal/service"
	"github.com/Veraticus/ledgerdeck/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

const statusTimeout = 4 * time.Second

// confirmed answers yes; the TUI asks in its own modal before removing.
var confirmed = service.ConfirmFunc(func(context.Context, string) (bool, error) {
	return true, nil
})

func fetchCmd(ctx context.Context, idx int, page listview.Page) tea.Cmd {
	return func() tea.Msg {
		return pageFetchedMsg{page: idx, err: page.Fetch(ctx)}
	}
}

func submitCmd(ctx context.Context, idx int, editor form.Editor) tea.Cmd {
	return func() tea.Msg {
		return formSubmittedMsg{page: idx, err: editor.Submit(ctx)}
	}
}

func removeCmd(ctx context.Context, idx int, page listview.Page, id model.ID) tea.Cmd {
	return func() tea.Msg {
		removed, err := page.Remove(ctx, id, confirmed)
		return deleteDoneMsg{page: idx, removed: removed, err: err}
	}
}

func exportCmd(ctx context.Context, sink service.Sink, page listview.Page) tea.Cmd {
	doc := page.Export()
	return func() tea.Msg {
		location, err := sink.Deliver(ctx, doc)
		return exportedMsg{location: location, err: err}
	}
}

func signInCmd(ctx context.Context, s *session.Session, auth session.Authenticator, creds model.Credentials, signup bool) tea.Cmd {
	return func() tea.Msg {
		user, err := s.SignIn(ctx, auth, creds, signup)
		return signedInMsg{user: user, err: err}
	}
}

func dashboardCmd(ctx context.Context, fn DashboardFunc) tea.Cmd {
	return func() tea.Msg {
		d, err := fn(ctx)
		return dashboardLoadedMsg{dashboard: d, err: err}
	}
}

func clearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}
