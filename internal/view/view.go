// Package view renders API resources as plain-text tables for the terminal.
package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"reppi/internal/model"
)

const (
	barWidth   = 20
	dateLayout = "2006-01-02"
)

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func short(id fmt.Stringer) string {
	s := id.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

// ProgressBar draws current/target as a fixed-width bar, e.g. [#####-----] 50%.
func ProgressBar(current, target int) string {
	pct := 0
	if target > 0 {
		pct = current * 100 / target
	}
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	filled := pct * barWidth / 100
	return fmt.Sprintf("[%s%s] %3d%%", strings.Repeat("#", filled), strings.Repeat("-", barWidth-filled), pct)
}

func Categories(w io.Writer, categories []model.Category) error {
	if len(categories) == 0 {
		_, err := fmt.Fprintln(w, "No categories.")
		return err
	}
	tw := table(w)
	fmt.Fprintln(tw, "ID\tTYPE\tNAME")
	for _, c := range categories {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", short(c.ID), c.Type, c.Name)
	}
	return tw.Flush()
}

func Goals(w io.Writer, goals []model.Goal) error {
	if len(goals) == 0 {
		_, err := fmt.Fprintln(w, "No goals yet.")
		return err
	}
	tw := table(w)
	fmt.Fprintln(tw, "ID\tTITLE\tREPS\tPROGRESS\tENDS")
	for _, g := range goals {
		ends := "-"
		if g.EndDate != nil {
			ends = g.EndDate.Format(dateLayout)
		}
		title := g.Title
		if g.Completed {
			title += " (done)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%s\t%s\n", short(g.ID), title, g.CurrentReps, g.TargetReps, ProgressBar(g.CurrentReps, g.TargetReps), ends)
	}
	return tw.Flush()
}

// Goal renders one goal in detail.
func Goal(w io.Writer, g *model.Goal) error {
	tw := table(w)
	fmt.Fprintf(tw, "ID:\t%s\n", g.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", g.Title)
	if g.Description != nil && *g.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", *g.Description)
	}
	fmt.Fprintf(tw, "Progress:\t%s (%d/%d)\n", ProgressBar(g.CurrentReps, g.TargetReps), g.CurrentReps, g.TargetReps)
	fmt.Fprintf(tw, "Started:\t%s\n", g.StartDate.Format(dateLayout))
	if g.EndDate != nil {
		fmt.Fprintf(tw, "Ends:\t%s\n", g.EndDate.Format(dateLayout))
	}
	fmt.Fprintf(tw, "Completed:\t%t\n", g.Completed)
	return tw.Flush()
}

func RepLogs(w io.Writer, logs []model.RepLog) error {
	if len(logs) == 0 {
		_, err := fmt.Fprintln(w, "No reps logged.")
		return err
	}
	tw := table(w)
	fmt.Fprintln(tw, "WHEN\tCOUNT\tNOTES")
	for _, l := range logs {
		notes := ""
		if l.Notes != nil {
			notes = *l.Notes
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", l.CreatedAt.Local().Format(time.DateTime), l.Count, notes)
	}
	return tw.Flush()
}

// Objectives renders a checklist grouped in the order given.
func Objectives(w io.Writer, objectives []model.Objective) error {
	if len(objectives) == 0 {
		_, err := fmt.Fprintln(w, "Nothing planned.")
		return err
	}
	tw := table(w)
	for _, o := range objectives {
		mark := " "
		if o.Completed {
			mark = "x"
		}
		category := ""
		if o.Category != nil {
			category = o.Category.Name
		}
		fmt.Fprintf(tw, "[%s]\t%s\t%s\t%s\t%s\n", mark, short(o.ID), o.Title, category, o.Date.Format(dateLayout))
	}
	return tw.Flush()
}

func Notes(w io.Writer, notes []model.Note) error {
	if len(notes) == 0 {
		_, err := fmt.Fprintln(w, "No notes.")
		return err
	}
	for i, n := range notes {
		if i > 0 {
			fmt.Fprintln(w)
		}
		category := "uncategorized"
		if n.Category != nil {
			category = n.Category.Name
		}
		if _, err := fmt.Fprintf(w, "%s  %s  [%s]\n", short(n.ID), n.Title, category); err != nil {
			return err
		}
		for _, line := range strings.Split(strings.TrimRight(n.Content, "\n"), "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
	return nil
}
