package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/MikeSquared-Agency/Triage/internal/api"
	"github.com/MikeSquared-Agency/Triage/internal/scoring"
)

var (
	headerStyle  = color.New(color.FgCyan, color.Bold)
	highStyle    = color.New(color.FgGreen, color.Bold)
	mediumStyle  = color.New(color.FgYellow)
	lowStyle     = color.New(color.FgHiBlack)
	warningStyle = color.New(color.FgYellow, color.Bold)
	mutedStyle   = color.New(color.FgHiBlack)
)

const (
	idWidth    = 12
	titleWidth = 32
	warnMark   = "!"
	ellipsis   = "…"
)

func renderRanking(w io.Writer, result *scoring.Result) {
	headerStyle.Fprintf(w, "%-4s  %s  %5s  %s  %s\n",
		"RANK", pad("ID", idWidth), "SCORE", pad("TITLE", titleWidth), "EXPLANATION")

	for i, t := range result.Tasks {
		fmt.Fprintf(w, "%4d  %s  %s  %s  %s\n",
			i+1,
			pad(t.ID, idWidth),
			scoreStyle(t.Score).Sprintf("%5.3f", t.Score),
			pad(t.Title, titleWidth),
			t.Explanation,
		)
		for _, warning := range t.Warnings {
			fmt.Fprintf(w, "      %s %s\n", warningStyle.Sprint(warnMark), warning)
		}
		for _, f := range t.Factors {
			mutedStyle.Fprintf(w, "      %-10s %.3f x %.2f = %.3f  %s\n", f.Name, f.Score, f.Weight, f.Weighted, f.Reason)
		}
	}

	if len(result.CycleNodes) > 0 {
		fmt.Fprintf(w, "\n%s circular dependency between: %s\n",
			warningStyle.Sprint(warnMark), strings.Join(result.CycleNodes, ", "))
	}
	if len(result.PhantomDependencies) > 0 {
		mutedStyle.Fprintf(w, "unknown dependency ids: %s\n", strings.Join(result.PhantomDependencies, ", "))
	}
}

func renderStrategies(w io.Writer, infos []api.StrategyInfo) {
	for _, info := range infos {
		name := headerStyle.Sprint(info.Name)
		if info.Default {
			name += mutedStyle.Sprint(" (default)")
		}
		fmt.Fprintln(w, name)
		fmt.Fprintf(w, "  %s\n", info.Description)
		fmt.Fprintf(w, "  urgency %.2f  importance %.2f  effort %.2f  dependency %.2f\n",
			info.Weights.Urgency, info.Weights.Importance, info.Weights.Effort, info.Weights.Dependency)
	}
}

func scoreStyle(score float64) *color.Color {
	switch {
	case score >= 0.7:
		return highStyle
	case score >= 0.4:
		return mediumStyle
	default:
		return lowStyle
	}
}

// pad truncates or right-pads s to exactly width display columns.
func pad(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, ellipsis), width)
}
