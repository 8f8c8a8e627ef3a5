package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"reppi/internal/model"
	"reppi/internal/service"
	"reppi/internal/view"
)

func today() string { return time.Now().Format("2006-01-02") }

func (a *cli) objectivesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "objectives", Short: "Plan daily objectives"}

	var day string
	cmd.PersistentFlags().StringVar(&day, "date", "", "day (YYYY-MM-DD), defaults to today")
	dayOrToday := func() string {
		if day == "" {
			return today()
		}
		return day
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show the checklist for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func() error { return a.showObjectives(cmd, dayOrToday()) })
		},
	}

	var category string
	add := &cobra.Command{
		Use:   "add TITLE",
		Short: "Plan an objective",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func() error {
				categoryID, err := a.categoryID(cmd, model.CategoryTypeObjective, category)
				if err != nil {
					return err
				}
				date := dayOrToday()
				in := service.CreateObjectiveInput{Title: args[0], CategoryID: categoryID, Date: &date}
				if _, err := a.api.CreateObjective(cmd.Context(), in); err != nil {
					return err
				}
				return a.showObjectives(cmd, date)
			})
		},
	}
	add.Flags().StringVar(&category, "category", "", "category name or id")

	var undo bool
	done := &cobra.Command{
		Use:   "done ID",
		Short: "Tick an objective off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func() error {
				return a.updateObjective(cmd, args[0], model.ObjectivePatch{Completed: model.Some(!undo)})
			})
		},
	}
	done.Flags().BoolVar(&undo, "undo", false, "mark as not done")

	var title, newDate, newCategory string
	edit := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of an objective",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			return a.run(cmd, func() error {
				var patch model.ObjectivePatch
				if flags.Changed("title") {
					patch.Title = model.Some(title)
				}
				if flags.Changed("move-to") {
					patch.Date = model.Some(newDate)
				}
				if flags.Changed("category") {
					categoryID, err := a.categoryID(cmd, model.CategoryTypeObjective, newCategory)
					if err != nil {
						return err
					}
					patch.CategoryID = model.Some(categoryID)
				}
				return a.updateObjective(cmd, args[0], patch)
			})
		},
	}
	edit.Flags().StringVar(&title, "title", "", "new title")
	edit.Flags().StringVar(&newDate, "move-to", "", "new day (YYYY-MM-DD)")
	edit.Flags().StringVar(&newCategory, "category", "", "new category name or id")

	rm := &cobra.Command{
		Use:   "rm ID",
		Short: "Delete an objective",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func() error {
				id, date, err := a.objectiveID(cmd, args[0], dayOrToday())
				if err != nil {
					return err
				}
				if err := a.api.DeleteObjective(cmd.Context(), id); err != nil {
					return err
				}
				return a.showObjectives(cmd, date)
			})
		},
	}

	cmd.AddCommand(list, add, done, edit, rm)
	return cmd
}

func (a *cli) updateObjective(cmd *cobra.Command, ref string, patch model.ObjectivePatch) error {
	day, _ := cmd.Flags().GetString("date")
	if day == "" {
		day = today()
	}
	id, _, err := a.objectiveID(cmd, ref, day)
	if err != nil {
		return err
	}
	objective, err := a.api.UpdateObjective(cmd.Context(), id, patch)
	if err != nil {
		return err
	}
	return a.showObjectives(cmd, objective.Date.Format("2006-01-02"))
}

func (a *cli) showObjectives(cmd *cobra.Command, day string) error {
	objectives, err := a.api.Objectives(cmd.Context(), day)
	if err != nil {
		return err
	}
	return view.Objectives(cmd.OutOrStdout(), objectives)
}

// objectiveID resolves ref among all objectives and returns it with its day.
func (a *cli) objectiveID(cmd *cobra.Command, ref, day string) (string, string, error) {
	if _, err := uuid.Parse(ref); err == nil {
		return ref, day, nil
	}
	objectives, err := a.api.Objectives(cmd.Context(), "")
	if err != nil {
		return "", "", err
	}
	ids := make([]uuid.UUID, 0, len(objectives))
	for _, o := range objectives {
		ids = append(ids, o.ID)
	}
	id, err := matchID("objective", ref, ids)
	if err != nil {
		return "", "", err
	}
	for _, o := range objectives {
		if o.ID.String() == id {
			return id, o.Date.Format("2006-01-02"), nil
		}
	}
	return id, day, nil
}
