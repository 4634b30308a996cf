package tests

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DiosOne/library-api/internal/domain/models"
	storerrros "github.com/DiosOne/library-api/internal/storage/errors"
)

func TestAllBooks(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s, mockStorage := newTestServer(t)
		books := []models.Book{
			{BookID: 1, Title: "Dune", ISBN: "9780441172719"},
			{BookID: 2, Title: "Hyperion", ISBN: "9780553283686"},
		}
		mockStorage.EXPECT().GetBooks().Return(books, nil)

		w := doJSON(s, http.MethodGet, "/books", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Dune")
		assert.Contains(t, w.Body.String(), "Hyperion")
	})

	t.Run("empty list stays an array", func(t *testing.T) {
		s, mockStorage := newTestServer(t)
		mockStorage.EXPECT().GetBooks().Return([]models.Book{}, nil)

		w := doJSON(s, http.MethodGet, "/books", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("storage failure stays generic", func(t *testing.T) {
		s, mockStorage := newTestServer(t)
		mockStorage.EXPECT().GetBooks().Return(nil, errors.New("connection refused"))

		w := doJSON(s, http.MethodGet, "/books", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error": "An internal error occurred"}`, w.Body.String())
	})
}

func TestBookInfo(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s, mockStorage := newTestServer(t)
		mockStorage.EXPECT().GetBook(123).Return(models.Book{BookID: 123, Title: "Dune", ISBN: "9780441172719"}, nil)

		w := doJSON(s, http.MethodGet, "/books/123", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Dune")
	})

	t.Run("not found", func(t *testing.T) {
		s, mockStorage := newTestServer(t)
		mockStorage.EXPECT().GetBook(123).Return(models.Book{}, storerrros.ErrBookNotFound)

		w := doJSON(s, http.MethodGet, "/books/123", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error": "Book not found"}`, w.Body.String())
	})

	t.Run("non-integer id", func(t *testing.T) {
		s, _ := newTestServer(t)

		w := doJSON(s, http.MethodGet, "/books/abc", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error": "invalid book ID"}`, w.Body.String())
	})
}

func TestCreateBook(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s, mockStorage := newTestServer(t)
		mockStorage.EXPECT().SaveBook(models.Book{Title: "Dune", ISBN: "9780441172719"}).Return(5, nil)

		w := doJSON(s, http.MethodPost, "/books", `{"title": "  Dune ", "isbn": "9780441172719"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"BookID": 5, "message": "Book 5 added successfully"}`, w.Body.String())
	})

	t.Run("missing title and isbn accumulate", func(t *testing.T) {
		s, _ := newTestServer(t)

		w := doJSON(s, http.MethodPost, "/books", `{"title": "  ", "genre": "SF"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"errors": ["Title is required.", "ISBN is required."]}`, w.Body.String())
	})

	t.Run("year published must be an integer", func(t *testing.T) {
		s, _ := newTestServer(t)

		w := doJSON(s, http.MethodPost, "/books",
			`{"title": "Dune", "isbn": "9780441172719", "yearpublished": "abc"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "YearPublished must be an integer.")
	})

	t.Run("year published out of range", func(t *testing.T) {
		s, _ := newTestServer(t)

		w := doJSON(s, http.MethodPost, "/books",
			`{"title": "Dune", "isbn": "9780441172719", "yearpublished": 2200}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "YearPublished must be a valid year.")
	})

	t.Run("year published accepted", func(t *testing.T) {
		s, mockStorage := newTestServer(t)
		mockStorage.EXPECT().SaveBook(models.Book{
			Title:         "Dune",
			ISBN:          "9780441172719",
			YearPublished: intPtr(2020),
		}).Return(6, nil)

		w := doJSON(s, http.MethodPost, "/books",
			`{"title": "Dune", "isbn": "9780441172719", "yearpublished": 2020}`)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("unknown author id is a constraint error", func(t *testing.T) {
		s, mockStorage := newTestServer(t)
		mockStorage.EXPECT().SaveBook(gomockAny).Return(0, storerrros.ErrConstraint)

		w := doJSON(s, http.MethodPost, "/books",
			`{"title": "Dune", "isbn": "9780441172719", "authorid": 42}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), storerrros.ErrConstraint.Error())
	})

	t.Run("malformed body", func(t *testing.T) {
		s, _ := newTestServer(t)

		w := doJSON(s, http.MethodPost, "/books", `not json`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error": "invalid JSON body"}`, w.Body.String())
	})
}

func TestUpdateBook(t *testing.T) {
	full := `{"title": "Dune", "isbn": "9780441172719", "genre": "SF", "yearpublished": 1965, "authorid": 3}`

	t.Run("success", func(t *testing.T) {
		s, mockStorage := newTestServer(t)
		mockStorage.EXPECT().UpdateBook(7, models.Book{
			Title:         "Dune",
			ISBN:          "9780441172719",
			Genre:         strPtr("SF"),
			YearPublished: intPtr(1965),
			AuthorID:      intPtr(3),
		}).Return(nil)

		w := doJSON(s, http.MethodPut, "/books/7", full)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message": "Book 7 updated successfully"}`, w.Body.String())
	})

	t.Run("partial payload rejected", func(t *testing.T) {
		s, _ := newTestServer(t)

		w := doJSON(s, http.MethodPut, "/books/7", `{"title": "Dune", "isbn": "9780441172719"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "All fields must be provided; title, isbn, genre, yearpublished, authorId.")
	})

	t.Run("not found", func(t *testing.T) {
		s, mockStorage := newTestServer(t)
		mockStorage.EXPECT().UpdateBook(7, gomockAny).Return(storerrros.ErrBookNotFound)

		w := doJSON(s, http.MethodPut, "/books/7", full)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error": "Book not found"}`, w.Body.String())
	})

	t.Run("storage failure stays generic", func(t *testing.T) {
		s, mockStorage := newTestServer(t)
		mockStorage.EXPECT().UpdateBook(7, gomockAny).Return(errors.New("deadlock detected"))

		w := doJSON(s, http.MethodPut, "/books/7", full)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error": "An internal error occurred"}`, w.Body.String())
		assert.NotContains(t, w.Body.String(), "deadlock")
	})
}

func TestDeleteBook(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s, mockStorage := newTestServer(t)
		mockStorage.EXPECT().DeleteBook(7).Return(nil)

		w := doJSON(s, http.MethodDelete, "/books/7", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message": "Book 7 deleted successfully"}`, w.Body.String())
	})

	t.Run("repeat delete is a 404", func(t *testing.T) {
		s, mockStorage := newTestServer(t)
		mockStorage.EXPECT().DeleteBook(7).Return(storerrros.ErrBookNotFound)

		w := doJSON(s, http.MethodDelete, "/books/7", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error": "Book not found"}`, w.Body.String())
	})
}
