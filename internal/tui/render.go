package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"trivia-quiz-service/internal/domain"
)

var (
	colorOK      = lipgloss.Color("42")
	colorBad     = lipgloss.Color("196")
	colorNew     = lipgloss.Color("226")
	colorMuted   = lipgloss.Color("242")
	colorHeading = lipgloss.Color("33")
)

func render(state State, noColor bool) string {
	if state.Finished {
		return lipgloss.JoinVertical(lipgloss.Left,
			renderFinal(state, noColor),
			"",
			stylize("r restart • q quit", noColor, colorMuted),
		)
	}
	if state.Prompt == "" {
		return stylize("Loading questions...", noColor, colorMuted)
	}
	parts := []string{renderHeader(state, noColor), ""}
	parts = append(parts, boldIf(state.Prompt, noColor))
	parts = append(parts, renderAnswers(state)...)
	if banner := renderBanner(state.Resolution, noColor); banner != "" {
		parts = append(parts, "", banner)
	}
	if state.Err != "" {
		parts = append(parts, "", stylize(state.Err, noColor, colorBad))
	}
	parts = append(parts, "", stylize("1-9 select • enter submit • q quit", noColor, colorMuted))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderHeader(state State, noColor bool) string {
	line := stylize(fmt.Sprintf("Question %d/%d", state.Position, state.Total), noColor, colorHeading)
	line += "   Score: " + fmt.Sprint(state.Score)
	if state.UseTimer {
		line += "   " + stylize(fmt.Sprintf("Time: %ds", state.Remaining), noColor, timerColor(state.Remaining, state.TimerSeconds))
	}
	return line
}

// timerColor turns red once less than half of the time is left.
func timerColor(remaining, total int) lipgloss.Color {
	if remaining*2 < total {
		return colorBad
	}
	return colorOK
}

func renderAnswers(state State) []string {
	lines := make([]string, len(state.Answers))
	for i, text := range state.Answers {
		mark := " "
		if state.Selection[i] {
			mark = "x"
		}
		open, closing := "[", "]"
		if state.Mode == domain.SelectionSingle {
			open, closing = "(", ")"
		}
		lines[i] = fmt.Sprintf("%s%s%s %d. %s", open, mark, closing, i+1, text)
	}
	return lines
}

func renderBanner(res *domain.Resolution, noColor bool) string {
	if res == nil {
		return ""
	}
	switch res.Type {
	case domain.ResolutionCorrect:
		return stylize(fmt.Sprintf("CORRECT! +%d", res.ScoreDelta), noColor, colorOK)
	case domain.ResolutionIncorrect:
		return stylize(fmt.Sprintf("WRONG! -%d", res.ScoreDelta), noColor, colorBad)
	}
	return ""
}

func renderFinal(state State, noColor bool) string {
	var b strings.Builder
	b.WriteString(boldIf("Final Score!", noColor))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Score: %d\n", state.Score)
	high := fmt.Sprintf("High Score: %d", state.HighScore)
	if state.NewHigh {
		b.WriteString(stylize("NEW "+high, noColor, colorNew))
	} else {
		b.WriteString(high)
	}
	return b.String()
}

func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func boldIf(text string, noColor bool) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Render(text)
}
