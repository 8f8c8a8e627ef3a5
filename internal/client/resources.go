package client

import (
	"context"
	"net/http"
	"net/url"

	"reppi/internal/model"
	"reppi/internal/service"
)

// RepLogResult is the outcome of logging reps.
type RepLogResult struct {
	RepLog      model.RepLog `json:"repLog"`
	UpdatedGoal model.Goal   `json:"updatedGoal"`
}

func (c *Client) Categories(ctx context.Context, typ model.CategoryType) ([]model.Category, error) {
	var query url.Values
	if typ != "" {
		query = url.Values{"type": {string(typ)}}
	}
	var out []model.Category
	err := c.do(ctx, http.MethodGet, "/categories", query, nil, &out, "fetch categories")
	return out, err
}

func (c *Client) CreateCategory(ctx context.Context, in service.CreateCategoryInput) (*model.Category, error) {
	var out model.Category
	if err := c.do(ctx, http.MethodPost, "/categories", nil, in, &out, "create category"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Goals(ctx context.Context) ([]model.Goal, error) {
	var out []model.Goal
	err := c.do(ctx, http.MethodGet, "/goals", nil, nil, &out, "fetch goals")
	return out, err
}

func (c *Client) Goal(ctx context.Context, id string) (*model.Goal, error) {
	var out model.Goal
	if err := c.do(ctx, http.MethodGet, "/goals/"+url.PathEscape(id), nil, nil, &out, "fetch goal"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateGoal(ctx context.Context, in service.CreateGoalInput) (*model.Goal, error) {
	var out model.Goal
	if err := c.do(ctx, http.MethodPost, "/goals", nil, in, &out, "create goal"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateGoal(ctx context.Context, id string, patch model.GoalPatch) (*model.Goal, error) {
	var out model.Goal
	if err := c.do(ctx, http.MethodPatch, "/goals/"+url.PathEscape(id), nil, patch, &out, "update goal"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteGoal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/goals/"+url.PathEscape(id), nil, nil, nil, "delete goal")
}

func (c *Client) RepLogs(ctx context.Context, goalID string) ([]model.RepLog, error) {
	var out []model.RepLog
	err := c.do(ctx, http.MethodGet, "/goals/"+url.PathEscape(goalID)+"/repLogs", nil, nil, &out, "fetch rep logs")
	return out, err
}

func (c *Client) LogReps(ctx context.Context, in service.CreateRepLogInput) (*RepLogResult, error) {
	var out RepLogResult
	if err := c.do(ctx, http.MethodPost, "/repLogs", nil, in, &out, "create rep log"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Notes lists notes, optionally only those in categoryID.
func (c *Client) Notes(ctx context.Context, categoryID string) ([]model.Note, error) {
	var query url.Values
	if categoryID != "" {
		query = url.Values{"categoryId": {categoryID}}
	}
	var out []model.Note
	err := c.do(ctx, http.MethodGet, "/notes", query, nil, &out, "fetch notes")
	return out, err
}

func (c *Client) CreateNote(ctx context.Context, in service.CreateNoteInput) (*model.Note, error) {
	var out model.Note
	if err := c.do(ctx, http.MethodPost, "/notes", nil, in, &out, "create note"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateNote(ctx context.Context, id string, patch model.NotePatch) (*model.Note, error) {
	var out model.Note
	if err := c.do(ctx, http.MethodPatch, "/notes/"+url.PathEscape(id), nil, patch, &out, "update note"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), nil, nil, nil, "delete note")
}

// Objectives lists objectives, optionally only those on day (YYYY-MM-DD).
func (c *Client) Objectives(ctx context.Context, day string) ([]model.Objective, error) {
	var query url.Values
	if day != "" {
		query = url.Values{"date": {day}}
	}
	var out []model.Objective
	err := c.do(ctx, http.MethodGet, "/objectives", query, nil, &out, "fetch objectives")
	return out, err
}

func (c *Client) CreateObjective(ctx context.Context, in service.CreateObjectiveInput) (*model.Objective, error) {
	var out model.Objective
	if err := c.do(ctx, http.MethodPost, "/objectives", nil, in, &out, "create objective"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateObjective(ctx context.Context, id string, patch model.ObjectivePatch) (*model.Objective, error) {
	var out model.Objective
	if err := c.do(ctx, http.MethodPatch, "/objectives/"+url.PathEscape(id), nil, patch, &out, "update objective"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteObjective(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/objectives/"+url.PathEscape(id), nil, nil, nil, "delete objective")
}
