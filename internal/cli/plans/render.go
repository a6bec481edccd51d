package plans

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jdmerritt/planweave/internal/cli"
	"github.com/jdmerritt/planweave/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

// renderPlan prints a stored plan with item names resolved from storage.
// Lookups that fail fall back to raw IDs so rendering never blocks output.
func renderPlan(ctx *cli.Context, plan models.DayPlan) {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Plan for %s", plan.Date)) + "\n\n")

	names := resolveNames(ctx, plan)

	if len(plan.Slots) == 0 {
		b.WriteString(noteStyle.Render("Nothing scheduled.") + "\n")
	}
	for _, slot := range plan.Slots {
		name := names[slot.ItemID]
		if name == "" {
			name = slot.ItemID
		}
		marker := " "
		if slot.Fixed {
			marker = "*"
		}
		line := fmt.Sprintf("%s %s%s",
			timeStyle.Render(fmt.Sprintf("%s - %s", slot.Start, slot.End)),
			itemStyle.Render(name),
			marker,
		)
		if slot.Reasoning != "" {
			line += "\n" + strings.Repeat(" ", 15) + noteStyle.Render(slot.Reasoning)
		}
		b.WriteString(line + "\n")
	}

	if len(plan.Unscheduled) > 0 {
		b.WriteString("\n" + warnStyle.Render("Unscheduled:") + "\n")
		for _, u := range plan.Unscheduled {
			name := names[u.ItemID]
			if name == "" {
				name = u.ItemID
			}
			b.WriteString(fmt.Sprintf("  %s (%s)\n", name, u.Reason))
		}
	}

	if plan.Summary != "" {
		b.WriteString("\n" + noteStyle.Render(plan.Summary) + "\n")
	}

	fmt.Print(b.String())
}

// resolveNames maps slot item IDs to display names. Routine slots carry
// occurrence IDs, so those resolve in two hops.
func resolveNames(ctx *cli.Context, plan models.DayPlan) map[string]string {
	names := make(map[string]string)

	routineNames := make(map[string]string)
	if routines, err := ctx.Store.GetAllRoutines(true); err == nil {
		for _, r := range routines {
			routineNames[r.ID] = r.Name
		}
	}

	occByID := make(map[string]models.Occurrence)
	if occurrences, err := ctx.Store.GetOccurrencesForDate(plan.Date); err == nil {
		for _, o := range occurrences {
			occByID[o.ID] = o
		}
	}

	taskNames := make(map[string]string)
	if tasks, err := ctx.Store.GetAllTasks(); err == nil {
		for _, t := range tasks {
			taskNames[t.ID] = t.Title
		}
	}

	collect := func(itemType models.ItemType, id string) {
		switch itemType {
		case models.ItemRoutine:
			if occ, ok := occByID[id]; ok {
				names[id] = routineNames[occ.RoutineID]
			} else {
				// Unscheduled routine entries reference the routine directly.
				names[id] = routineNames[id]
			}
		case models.ItemTask:
			names[id] = taskNames[id]
		}
	}

	for _, slot := range plan.Slots {
		collect(slot.ItemType, slot.ItemID)
	}
	for _, u := range plan.Unscheduled {
		collect(u.ItemType, u.ItemID)
	}
	return names
}
