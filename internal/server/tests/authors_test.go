package tests

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DiosOne/library-api/internal/domain/models"
	storerrros "github.com/DiosOne/library-api/internal/storage/errors"
)

func TestAllAuthors(t *testing.T) {
	s, mockStorage := newTestServer(t)
	authors := []models.Author{{AuthorID: 1, Name: "Frank Herbert", BirthYear: intPtr(1920)}}
	mockStorage.EXPECT().GetAuthors().Return(authors, nil)

	w := doJSON(s, http.MethodGet, "/authors", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Frank Herbert")
}

func TestAuthorInfo_NotFound(t *testing.T) {
	s, mockStorage := newTestServer(t)
	mockStorage.EXPECT().GetAuthor(9).Return(models.Author{}, storerrros.ErrAuthorNotFound)

	w := doJSON(s, http.MethodGet, "/authors/9", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "Author not found"}`, w.Body.String())
}

func TestCreateAuthor(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s, mockStorage := newTestServer(t)
		mockStorage.EXPECT().
			SaveAuthor(models.Author{Name: "Frank Herbert", BirthYear: intPtr(1920)}).
			Return(3, nil)

		w := doJSON(s, http.MethodPost, "/authors", `{"name": " Frank Herbert ", "birthyear": 1920}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"AuthorID": 3, "message": "Author 3 added successfully"}`, w.Body.String())
	})

	t.Run("blank name rejected", func(t *testing.T) {
		s, _ := newTestServer(t)

		w := doJSON(s, http.MethodPost, "/authors", `{"name": "   "}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error": "Author name is required"}`, w.Body.String())
	})
}

func TestUpdateAuthor(t *testing.T) {
	t.Run("partial update keeps absent fields", func(t *testing.T) {
		s, mockStorage := newTestServer(t)
		mockStorage.EXPECT().
			UpdateAuthor(3, models.AuthorPatch{BirthYear: intPtr(1921)}).
			Return(nil)

		w := doJSON(s, http.MethodPut, "/authors/3", `{"birthyear": 1921}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message": "Author 3 updated successfully"}`, w.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		s, mockStorage := newTestServer(t)
		mockStorage.EXPECT().UpdateAuthor(3, gomockAny).Return(storerrros.ErrAuthorNotFound)

		w := doJSON(s, http.MethodPut, "/authors/3", `{"name": "F. Herbert"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error": "Author not found"}`, w.Body.String())
	})
}

func TestDeleteAuthor(t *testing.T) {
	t.Run("referenced author cannot be deleted", func(t *testing.T) {
		s, mockStorage := newTestServer(t)
		mockStorage.EXPECT().DeleteAuthor(3).Return(storerrros.ErrConstraint)

		w := doJSON(s, http.MethodDelete, "/authors/3", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), storerrros.ErrConstraint.Error())
	})

	t.Run("storage failure stays generic", func(t *testing.T) {
		s, mockStorage := newTestServer(t)
		mockStorage.EXPECT().DeleteAuthor(3).Return(errors.New("tcp reset"))

		w := doJSON(s, http.MethodDelete, "/authors/3", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error": "An internal error occurred"}`, w.Body.String())
	})
}
