package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/racfadmin/internal/common"
	"github.com/dmitrijs2005/racfadmin/internal/models"
)

var (
	green  = lipgloss.Color("#00C853")
	yellow = lipgloss.Color("#FFD600")
	red    = lipgloss.Color("#FF1744")
	muted  = lipgloss.Color("#565F89")

	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	onlineStyle  = lipgloss.NewStyle().Foreground(green).Bold(true)
	offlineStyle = lipgloss.NewStyle().Foreground(yellow).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(red)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	commandStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
)

const rowFormat = "%-8s  %-28s  %-8s  %-8s  %-8s  %s"

func renderUsers(list []models.UserRecord) string {
	if len(list) == 0 {
		return mutedStyle.Render("No users.")
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf(rowFormat, "USERID", "NAME", "GROUP", "OWNER", "STATUS", "ID")))
	for _, u := range list {
		status := string(u.Status)
		if u.Status == models.StatusInactive {
			status = mutedStyle.Render(fmt.Sprintf("%-8s", status))
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf(rowFormat, u.UserID, truncate(u.Name, 28), u.DefaultGroup, u.Owner, status, u.ID))
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func renderMode(m Mode) string {
	switch m {
	case ModeOnline:
		return onlineStyle.Render(string(m))
	case ModeOffline:
		return offlineStyle.Render(string(m))
	}
	return string(m)
}

func renderCommand(cmd string) string {
	return commandStyle.Render(cmd)
}

// formatError turns an error into the text shown to the operator.
func formatError(err error) string {
	var verrs common.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		lines := make([]string, 0, len(verrs)+1)
		lines = append(lines, "Invalid user payload:")
		for _, v := range verrs {
			lines = append(lines, "  - "+v.Error())
		}
		return strings.Join(lines, "\n")
	}
	return "Error: " + err.Error()
}
