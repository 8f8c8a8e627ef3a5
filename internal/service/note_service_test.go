package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "reppi/internal/errors"
	"reppi/internal/model"
	"reppi/internal/repository"
)

type noteFixture struct {
	owner, other *model.User
	noteCat      *model.Category
	objCat       *model.Category
	notes        *MockNoteRepository
	categories   *MockCategoryRepository
	svc          NoteService
}

func newNoteFixture() *noteFixture {
	f := &noteFixture{
		owner:      newUser("owner@example.com"),
		other:      newUser("other@example.com"),
		notes:      new(MockNoteRepository),
		categories: new(MockCategoryRepository),
	}
	f.noteCat = &model.Category{ID: uuid.New(), Name: "Books", Type: model.CategoryTypeNote, UserID: f.owner.ID}
	f.objCat = &model.Category{ID: uuid.New(), Name: "Work", Type: model.CategoryTypeObjective, UserID: f.owner.ID}
	f.categories.On("FindByID", mock.Anything, f.noteCat.ID).Return(f.noteCat, nil).Maybe()
	f.categories.On("FindByID", mock.Anything, f.objCat.ID).Return(f.objCat, nil).Maybe()
	f.svc = NewNoteService(staticOwners{f.owner.Email: f.owner, f.other.Email: f.other}, f.notes, f.categories)
	return f
}

func TestNoteService_Create(t *testing.T) {
	f := newNoteFixture()
	f.notes.On("Create", mock.Anything, mock.MatchedBy(func(n *model.Note) bool {
		return n.Title == "Dune" && n.CategoryID == f.noteCat.ID && n.UserID == f.owner.ID
	})).Return(nil).Once()

	note, err := f.svc.Create(context.Background(), identityOf(f.owner), CreateNoteInput{Title: " Dune ", Content: "Spice\n", CategoryID: f.noteCat.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, "Spice", note.Content)

	_, err = f.svc.Create(context.Background(), identityOf(f.owner), CreateNoteInput{Title: "Dune", CategoryID: f.noteCat.ID.String()})
	assertHTTP(t, err, http.StatusBadRequest, "Title, content, and category are required")

	_, err = f.svc.Create(context.Background(), identityOf(f.owner), CreateNoteInput{Title: "   ", Content: "Spice", CategoryID: f.noteCat.ID.String()})
	assertHTTP(t, err, http.StatusBadRequest, "Title, content, and category are required")

	_, err = f.svc.Create(context.Background(), identityOf(f.owner), CreateNoteInput{Title: "Dune", Content: " \n\t", CategoryID: f.noteCat.ID.String()})
	assertHTTP(t, err, http.StatusBadRequest, "Title, content, and category are required")

	_, err = f.svc.Create(context.Background(), identityOf(f.owner), CreateNoteInput{Title: "Dune", Content: "x", CategoryID: f.objCat.ID.String()})
	assertHTTP(t, err, http.StatusBadRequest, "Category type does not match")

	_, err = f.svc.Create(context.Background(), identityOf(f.other), CreateNoteInput{Title: "Dune", Content: "x", CategoryID: f.noteCat.ID.String()})
	assertHTTP(t, err, http.StatusForbidden, "Not authorized to use this category")

	f.notes.AssertExpectations(t)
}

func TestNoteService_ListFilter(t *testing.T) {
	f := newNoteFixture()
	catID := f.noteCat.ID
	f.notes.On("List", mock.Anything, f.owner.ID, repository.NoteFilter{CategoryID: &catID}).Return([]model.Note{{Title: "Dune"}}, nil)
	f.notes.On("List", mock.Anything, f.owner.ID, repository.NoteFilter{}).Return([]model.Note{{Title: "Dune"}, {Title: "Emma"}}, nil)

	notes, err := f.svc.List(context.Background(), identityOf(f.owner), catID.String())
	require.NoError(t, err)
	assert.Len(t, notes, 1)

	notes, err = f.svc.List(context.Background(), identityOf(f.owner), "")
	require.NoError(t, err)
	assert.Len(t, notes, 2)

	notes, err = f.svc.List(context.Background(), identityOf(f.owner), "not-a-uuid")
	require.NoError(t, err)
	assert.Empty(t, notes)
	f.notes.AssertNumberOfCalls(t, "List", 2)
}

func TestNoteService_UpdateAndDelete(t *testing.T) {
	f := newNoteFixture()
	note := &model.Note{ID: uuid.New(), Title: "Dune", Content: "Spice", CategoryID: f.noteCat.ID, UserID: f.owner.ID}
	missing := uuid.New()
	f.notes.On("FindByID", mock.Anything, note.ID).Return(note, nil)
	f.notes.On("FindByID", mock.Anything, missing).Return(nil, apperrors.ErrNoteNotFound)

	_, err := f.svc.Update(context.Background(), identityOf(f.other), note.ID.String(), model.NotePatch{Title: model.Some("Mine now")})
	assertHTTP(t, err, http.StatusForbidden, "Not authorized to modify this note")

	err = f.svc.Delete(context.Background(), identityOf(f.other), note.ID.String())
	assertHTTP(t, err, http.StatusForbidden, "Not authorized to delete this note")

	_, err = f.svc.Update(context.Background(), identityOf(f.owner), missing.String(), model.NotePatch{})
	assertHTTP(t, err, http.StatusNotFound, "Note not found")

	_, err = f.svc.Update(context.Background(), identityOf(f.owner), note.ID.String(), model.NotePatch{CategoryID: model.Some(f.objCat.ID.String())})
	assertHTTP(t, err, http.StatusBadRequest, "Category type does not match")

	f.notes.On("Update", mock.Anything, mock.MatchedBy(func(n *model.Note) bool {
		return n.Title == "Dune Messiah" && n.Content == "Spice"
	})).Return(nil).Once()
	updated, err := f.svc.Update(context.Background(), identityOf(f.owner), note.ID.String(), model.NotePatch{Title: model.Some("Dune Messiah")})
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", updated.Title)

	f.notes.On("Delete", mock.Anything, note.ID).Return(nil).Once()
	require.NoError(t, f.svc.Delete(context.Background(), identityOf(f.owner), note.ID.String()))
	f.notes.AssertExpectations(t)
}
