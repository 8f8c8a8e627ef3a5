package main

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"reppi/internal/model"
	"reppi/internal/service"
	"reppi/internal/view"
)

func (a *cli) goalsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "goals", Short: "Manage rep goals"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List goals, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd, func() error { return a.showGoals(cmd) })
			},
		},
		&cobra.Command{
			Use:   "show ID",
			Short: "Show one goal",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd, func() error {
					id, err := a.goalID(cmd, args[0])
					if err != nil {
						return err
					}
					goal, err := a.api.Goal(cmd.Context(), id)
					if err != nil {
						return err
					}
					return view.Goal(cmd.OutOrStdout(), goal)
				})
			},
		},
		a.goalAddCmd(),
		a.goalEditCmd(),
		&cobra.Command{
			Use:   "rm ID",
			Short: "Delete a goal and its rep logs",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd, func() error {
					id, err := a.goalID(cmd, args[0])
					if err != nil {
						return err
					}
					if err := a.api.DeleteGoal(cmd.Context(), id); err != nil {
						return err
					}
					return a.showGoals(cmd)
				})
			},
		},
		a.goalLogCmd(),
		&cobra.Command{
			Use:   "logs ID",
			Short: "Show the rep logs of a goal",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd, func() error {
					id, err := a.goalID(cmd, args[0])
					if err != nil {
						return err
					}
					logs, err := a.api.RepLogs(cmd.Context(), id)
					if err != nil {
						return err
					}
					return view.RepLogs(cmd.OutOrStdout(), logs)
				})
			},
		},
	)
	return cmd
}

func (a *cli) goalAddCmd() *cobra.Command {
	var in service.CreateGoalInput
	var description, endDate string
	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Create a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Title = args[0]
			if description != "" {
				in.Description = &description
			}
			if endDate != "" {
				in.EndDate = &endDate
			}
			return a.run(cmd, func() error {
				if _, err := a.api.CreateGoal(cmd.Context(), in); err != nil {
					return err
				}
				return a.showGoals(cmd)
			})
		},
	}
	cmd.Flags().IntVar(&in.TargetReps, "target", 0, "target number of reps")
	cmd.Flags().StringVar(&description, "description", "", "optional description")
	cmd.Flags().StringVar(&endDate, "end", "", "optional end date (YYYY-MM-DD)")
	return cmd
}

func (a *cli) goalEditCmd() *cobra.Command {
	var title, description, endDate string
	var target int
	var clearDescription, clearEnd bool
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var patch model.GoalPatch
			if flags.Changed("title") {
				patch.Title = model.Some(title)
			}
			if flags.Changed("target") {
				patch.TargetReps = model.Some(target)
			}
			switch {
			case clearDescription:
				patch.Description = model.Null[string]()
			case flags.Changed("description"):
				patch.Description = model.Some(description)
			}
			switch {
			case clearEnd:
				patch.EndDate = model.Null[string]()
			case flags.Changed("end"):
				patch.EndDate = model.Some(endDate)
			}
			return a.run(cmd, func() error {
				id, err := a.goalID(cmd, args[0])
				if err != nil {
					return err
				}
				goal, err := a.api.UpdateGoal(cmd.Context(), id, patch)
				if err != nil {
					return err
				}
				return view.Goal(cmd.OutOrStdout(), goal)
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().IntVar(&target, "target", 0, "new target reps")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().BoolVar(&clearDescription, "clear-description", false, "remove the description")
	cmd.Flags().StringVar(&endDate, "end", "", "new end date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&clearEnd, "clear-end", false, "remove the end date")
	return cmd
}

func (a *cli) goalLogCmd() *cobra.Command {
	var notes string
	cmd := &cobra.Command{
		Use:   "log ID COUNT",
		Short: "Log reps against a goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("count must be a number: %q", args[1])
			}
			return a.run(cmd, func() error {
				id, err := a.goalID(cmd, args[0])
				if err != nil {
					return err
				}
				in := service.CreateRepLogInput{GoalID: id, Count: count}
				if notes != "" {
					in.Notes = &notes
				}
				result, err := a.api.LogReps(cmd.Context(), in)
				if err != nil {
					return err
				}
				if result.UpdatedGoal.Completed {
					fmt.Fprintf(cmd.OutOrStdout(), "Goal %q completed!\n", result.UpdatedGoal.Title)
				}
				return a.showGoals(cmd)
			})
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "optional notes")
	return cmd
}

func (a *cli) showGoals(cmd *cobra.Command) error {
	goals, err := a.api.Goals(cmd.Context())
	if err != nil {
		return err
	}
	return view.Goals(cmd.OutOrStdout(), goals)
}

func (a *cli) goalID(cmd *cobra.Command, ref string) (string, error) {
	if _, err := uuid.Parse(ref); err == nil {
		return ref, nil
	}
	goals, err := a.api.Goals(cmd.Context())
	if err != nil {
		return "", err
	}
	ids := make([]uuid.UUID, 0, len(goals))
	for _, g := range goals {
		ids = append(ids, g.ID)
	}
	return matchID("goal", ref, ids)
}
