package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"reppi/internal/model"
	"reppi/internal/service"
	"reppi/internal/view"
)

func (a *cli) notesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "notes", Short: "Manage notes"}

	var listCategory string
	list := &cobra.Command{
		Use:   "list",
		Short: "List notes, optionally in one category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func() error {
				categoryID := ""
				if listCategory != "" {
					id, err := a.categoryID(cmd, model.CategoryTypeNote, listCategory)
					if err != nil {
						return err
					}
					categoryID = id
				}
				return a.showNotes(cmd, categoryID)
			})
		},
	}
	list.Flags().StringVar(&listCategory, "category", "", "category name or id")

	var content, category string
	add := &cobra.Command{
		Use:   "add TITLE",
		Short: "Create a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func() error {
				categoryID, err := a.categoryID(cmd, model.CategoryTypeNote, category)
				if err != nil {
					return err
				}
				in := service.CreateNoteInput{Title: args[0], Content: content, CategoryID: categoryID}
				if _, err := a.api.CreateNote(cmd.Context(), in); err != nil {
					return err
				}
				return a.showNotes(cmd, "")
			})
		},
	}
	add.Flags().StringVar(&content, "content", "", "note text")
	add.Flags().StringVar(&category, "category", "", "category name or id")

	var title, newContent, newCategory string
	edit := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			return a.run(cmd, func() error {
				id, err := a.noteID(cmd, args[0])
				if err != nil {
					return err
				}
				var patch model.NotePatch
				if flags.Changed("title") {
					patch.Title = model.Some(title)
				}
				if flags.Changed("content") {
					patch.Content = model.Some(newContent)
				}
				if flags.Changed("category") {
					categoryID, err := a.categoryID(cmd, model.CategoryTypeNote, newCategory)
					if err != nil {
						return err
					}
					patch.CategoryID = model.Some(categoryID)
				}
				if _, err := a.api.UpdateNote(cmd.Context(), id, patch); err != nil {
					return err
				}
				return a.showNotes(cmd, "")
			})
		},
	}
	edit.Flags().StringVar(&title, "title", "", "new title")
	edit.Flags().StringVar(&newContent, "content", "", "new text")
	edit.Flags().StringVar(&newCategory, "category", "", "new category name or id")

	rm := &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func() error {
				id, err := a.noteID(cmd, args[0])
				if err != nil {
					return err
				}
				if err := a.api.DeleteNote(cmd.Context(), id); err != nil {
					return err
				}
				return a.showNotes(cmd, "")
			})
		},
	}

	cmd.AddCommand(list, add, edit, rm)
	return cmd
}

func (a *cli) showNotes(cmd *cobra.Command, categoryID string) error {
	notes, err := a.api.Notes(cmd.Context(), categoryID)
	if err != nil {
		return err
	}
	return view.Notes(cmd.OutOrStdout(), notes)
}

func (a *cli) noteID(cmd *cobra.Command, ref string) (string, error) {
	if _, err := uuid.Parse(ref); err == nil {
		return ref, nil
	}
	notes, err := a.api.Notes(cmd.Context(), "")
	if err != nil {
		return "", err
	}
	ids := make([]uuid.UUID, 0, len(notes))
	for _, n := range notes {
		ids = append(ids, n.ID)
	}
	return matchID("note", ref, ids)
}
