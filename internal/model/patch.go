package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "reppi/internal/errors"
)

// Optional is a JSON field that remembers whether it was present in the payload.
// Set is true when the key was sent at all, Null when it was sent as null.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Null returns an Optional explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// IsZero reports whether the field is absent, so omitzero drops it when encoding.
func (o Optional[T]) IsZero() bool {
	return !o.Set
}

// MarshalJSON implements json.Marshaler.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Present reports whether the field carries a non-null value.
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}

// DateLayouts are accepted for every date field, tried in order.
var DateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses s using DateLayouts. Values without a zone are read in loc.
// The result is always UTC.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// DayBounds returns the first and last instant of the calendar day in loc, in UTC.
func DayBounds(day string, loc *time.Location) (time.Time, time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	start, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(day), loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start.UTC(), end.UTC(), nil
}

func requireText(field string, o Optional[string]) (string, error) {
	if o.Null {
		return "", apperrors.Validation(field + " cannot be null")
	}
	v := strings.TrimSpace(o.Value)
	if v == "" {
		return "", apperrors.Validation(field + " cannot be empty")
	}
	return v, nil
}

func parseCategoryRef(o Optional[string]) (uuid.UUID, bool, error) {
	if !o.Set {
		return uuid.Nil, false, nil
	}
	if o.Null {
		return uuid.Nil, true, apperrors.Validation("Category cannot be null")
	}
	id, err := uuid.Parse(o.Value)
	if err != nil {
		return uuid.Nil, true, apperrors.ErrCategoryNotFound
	}
	return id, true, nil
}

// GoalPatch is a partial update of a goal.
type GoalPatch struct {
	Title       Optional[string] `json:"title,omitzero" swaggertype:"string"`
	Description Optional[string] `json:"description,omitzero" swaggertype:"string"`
	TargetReps  Optional[int]    `json:"targetReps,omitzero" swaggertype:"integer"`
	EndDate     Optional[string] `json:"endDate,omitzero" swaggertype:"string"`
}

// Apply merges the patch into g and re-derives Completed.
func (p GoalPatch) Apply(g *Goal, loc *time.Location) error {
	if p.Title.Set {
		title, err := requireText("Title", p.Title)
		if err != nil {
			return err
		}
		g.Title = title
	}
	if p.Description.Set {
		if p.Description.Null {
			g.Description = nil
		} else {
			d := p.Description.Value
			g.Description = &d
		}
	}
	if p.TargetReps.Set {
		if p.TargetReps.Null || p.TargetReps.Value < 1 {
			return apperrors.Validation("Target reps must be at least 1")
		}
		g.TargetReps = p.TargetReps.Value
	}
	if p.EndDate.Set {
		if p.EndDate.Null {
			g.EndDate = nil
		} else {
			end, err := ParseDate(p.EndDate.Value, loc)
			if err != nil {
				return apperrors.Validation("Invalid end date")
			}
			g.EndDate = &end
		}
	}
	g.Completed = g.CurrentReps >= g.TargetReps
	return nil
}

// NotePatch is a partial update of a note.
type NotePatch struct {
	Title      Optional[string] `json:"title,omitzero" swaggertype:"string"`
	Content    Optional[string] `json:"content,omitzero" swaggertype:"string"`
	CategoryID Optional[string] `json:"categoryId,omitzero" swaggertype:"string"`
}

// CategoryRef returns the category the patch moves the note to, if any.
func (p NotePatch) CategoryRef() (uuid.UUID, bool, error) {
	return parseCategoryRef(p.CategoryID)
}

// Apply merges the patch into n.
func (p NotePatch) Apply(n *Note) error {
	if p.Title.Set {
		title, err := requireText("Title", p.Title)
		if err != nil {
			return err
		}
		n.Title = title
	}
	if p.Content.Set {
		content, err := requireText("Content", p.Content)
		if err != nil {
			return err
		}
		n.Content = content
	}
	id, ok, err := p.CategoryRef()
	if err != nil {
		return err
	}
	if ok && id != n.CategoryID {
		n.CategoryID = id
		n.Category = nil
	}
	return nil
}

// ObjectivePatch is a partial update of an objective.
type ObjectivePatch struct {
	Title      Optional[string] `json:"title,omitzero" swaggertype:"string"`
	Completed  Optional[bool]   `json:"completed,omitzero" swaggertype:"boolean"`
	Date       Optional[string] `json:"date,omitzero" swaggertype:"string"`
	CategoryID Optional[string] `json:"categoryId,omitzero" swaggertype:"string"`
}

// CategoryRef returns the category the patch moves the objective to, if any.
func (p ObjectivePatch) CategoryRef() (uuid.UUID, bool, error) {
	return parseCategoryRef(p.CategoryID)
}

// Apply merges the patch into o.
func (p ObjectivePatch) Apply(o *Objective, loc *time.Location) error {
	if p.Title.Set {
		title, err := requireText("Title", p.Title)
		if err != nil {
			return err
		}
		o.Title = title
	}
	if p.Completed.Set {
		if p.Completed.Null {
			return apperrors.Validation("Completed cannot be null")
		}
		o.Completed = p.Completed.Value
	}
	if p.Date.Set {
		if p.Date.Null {
			return apperrors.Validation("Date cannot be null")
		}
		d, err := ParseDate(p.Date.Value, loc)
		if err != nil {
			return apperrors.Validation("Invalid date")
		}
		o.Date = d
	}
	id, ok, err := p.CategoryRef()
	if err != nil {
		return err
	}
	if ok && id != o.CategoryID {
		o.CategoryID = id
		o.Category = nil
	}
	return nil
}
