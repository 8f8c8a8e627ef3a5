package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"reppi/internal/model"
	"reppi/internal/service"
	"reppi/internal/view"
)

func (a *cli) categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "categories", Short: "List and add categories"}

	var listType string
	list := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func() error {
				return a.showCategories(cmd, model.CategoryType(listType))
			})
		},
	}
	list.Flags().StringVar(&listType, "type", "", "objective or note")

	var addType string
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a category (existing names are returned as-is)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func() error {
				if _, err := a.api.CreateCategory(cmd.Context(), service.CreateCategoryInput{Name: args[0], Type: addType}); err != nil {
					return err
				}
				return a.showCategories(cmd, model.CategoryType(addType))
			})
		},
	}
	add.Flags().StringVar(&addType, "type", string(model.CategoryTypeObjective), "objective or note")

	cmd.AddCommand(list, add)
	return cmd
}

func (a *cli) showCategories(cmd *cobra.Command, typ model.CategoryType) error {
	categories, err := a.api.Categories(cmd.Context(), typ)
	if err != nil {
		return err
	}
	return view.Categories(cmd.OutOrStdout(), categories)
}

// categoryID resolves a category of the given type by name or id prefix.
func (a *cli) categoryID(cmd *cobra.Command, typ model.CategoryType, ref string) (string, error) {
	categories, err := a.api.Categories(cmd.Context(), typ)
	if err != nil {
		return "", err
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, ref) {
			return c.ID.String(), nil
		}
	}
	ids := make([]uuid.UUID, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	id, err := matchID(string(typ)+" category", ref, ids)
	if err != nil {
		return "", fmt.Errorf("%w (see `reppi categories list --type %s`)", err, typ)
	}
	return id, nil
}
