// Package status renders the operator view of quotas and sessions.
package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/gptbridge/internal/application"
	"github.com/charmbracelet/lipgloss"
)

const idleBarWidth = 24

func renderView(status application.Status, s styles) string {
	lines := []string{
		s.title.Render("gptbridge status"),
		s.header.Render(fmt.Sprintf("principals: %d  sessions: %d", len(status.Principals), len(status.Sessions))),
		s.section.Render(renderPrincipals(status.Principals, s)),
		s.section.Render(renderSessions(status, s)),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderPrincipals(principals []application.PrincipalStatus, s styles) string {
	lines := []string{s.heading.Render("Quotas")}
	if len(principals) == 0 {
		lines = append(lines, s.empty.Render("No principals provisioned."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	width := 0
	for _, principal := range principals {
		width = max(width, len(principal.Principal))
	}

	for _, principal := range principals {
		name := s.name.Render(fmt.Sprintf("%-*s", width, principal.Principal))
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, name, "  ", quotaLabel(principal, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func quotaLabel(principal application.PrincipalStatus, s styles) string {
	switch principal.State {
	case "unlimited":
		return s.unlimited.Render("unlimited")
	case "exhausted":
		return s.warning.Render("exhausted")
	default:
		suffix := "requests"
		if principal.Remaining == 1 {
			suffix = "request"
		}
		return s.detail.Render(fmt.Sprintf("%d %s left", principal.Remaining, suffix))
	}
}

func renderSessions(status application.Status, s styles) string {
	lines := []string{s.heading.Render("Sessions")}
	if len(status.Sessions) == 0 {
		lines = append(lines, s.empty.Render("No open sessions."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, session := range status.Sessions {
		idlePercent := 100.0
		if status.MaxIdle > 0 {
			idlePercent = 100 * session.Idle.Seconds() / status.MaxIdle.Seconds()
		}

		line := lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.name.Render(string(session.ID)),
			" ",
			renderProgressBar(idlePercent, idleBarWidth, s),
			" ",
			expiryLabel(session, status.GeneratedAt, status.MaxIdle),
		)
		if session.Expired {
			line += " " + s.warning.Render("[expired]")
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func expiryLabel(session application.SessionStatus, now time.Time, maxIdle time.Duration) string {
	text := fmt.Sprintf("(%s)", formatExpiry(session.ExpiresAt, now))
	if now.IsZero() || maxIdle <= 0 {
		return text
	}

	remaining := session.ExpiresAt.Sub(now).Seconds()
	color := interpolateColor(maxIdle.Seconds()-remaining, 0, maxIdle.Seconds())
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

// renderProgressBar fills the bar with the time a session still has before it expires.
func renderProgressBar(usedPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	leftFraction := (100.0 - clampPercent(usedPercent)) / 100.0
	filled := min(max(int(math.Round(float64(width)*leftFraction)), 0), width)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	return min(max(v, 0), 100)
}

func formatExpiry(expiresAt, now time.Time) string {
	if now.IsZero() {
		return "expires " + expiresAt.Format(time.RFC3339)
	}
	if !expiresAt.After(now) {
		return "expired"
	}

	remaining := expiresAt.Sub(now)
	if remaining < time.Hour {
		minutes := max(int(math.Ceil(remaining.Minutes())), 1)
		return fmt.Sprintf("expires in %d %s", minutes, plural(minutes, "minute"))
	}

	hours := int(math.Ceil(remaining.Hours()))
	return fmt.Sprintf("expires in %d %s (%s)", hours, plural(hours, "hour"), expiresAt.Format("15:04 on 02 Jan"))
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

// interpolateColor maps value onto the 240..255 greyscale ramp; closer to max is brighter.
func interpolateColor(value, lo, hi float64) lipgloss.Color {
	if hi == lo {
		return lipgloss.Color("255")
	}

	normalized := min(max((value-lo)/(hi-lo), 0), 1)
	return lipgloss.Color(fmt.Sprintf("%d", int(240+15*normalized)))
}
