package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DiosOne/library-api/internal/domain/models"
	storerrros "github.com/DiosOne/library-api/internal/storage/errors"
)

func TestAllLoans(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s, mockStorage := newTestServer(t)
		loans := []models.Loan{{LoanID: 1, BookID: 2, MemberID: 3, LoanDate: "2025-01-02"}}
		mockStorage.EXPECT().GetLoans().Return(loans, nil)

		w := doJSON(s, http.MethodGet, "/loans", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "2025-01-02")
	})

	t.Run("empty set gets its own message", func(t *testing.T) {
		s, mockStorage := newTestServer(t)
		mockStorage.EXPECT().GetLoans().Return(nil, storerrros.ErrEmptyLoansList)

		w := doJSON(s, http.MethodGet, "/loans", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message": "No current loans"}`, w.Body.String())
	})
}

func TestCreateLoan(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s, mockStorage := newTestServer(t)
		mockStorage.EXPECT().
			SaveLoan(models.Loan{BookID: 2, MemberID: 3, LoanDate: "2025-01-02"}).
			Return(9, nil)

		w := doJSON(s, http.MethodPost, "/loans", `{"bookid": 2, "memberid": 3, "loandate": "2025-01-02"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"LoanID": 9, "message": "Loan 9 added successfully"}`, w.Body.String())
	})

	t.Run("missing required fields", func(t *testing.T) {
		s, _ := newTestServer(t)

		w := doJSON(s, http.MethodPost, "/loans", `{"bookid": 2}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error": "BookID, MemberID, and LoanDate are required"}`, w.Body.String())
	})

	t.Run("malformed loan date", func(t *testing.T) {
		s, _ := newTestServer(t)

		w := doJSON(s, http.MethodPost, "/loans", `{"bookid": 2, "memberid": 3, "loandate": "02/01/2025"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error": "LoanDate must be a valid date (YYYY-MM-DD)"}`, w.Body.String())
	})

	t.Run("unknown book or member is a constraint error", func(t *testing.T) {
		s, mockStorage := newTestServer(t)
		mockStorage.EXPECT().SaveLoan(gomockAny).Return(0, storerrros.ErrConstraint)

		w := doJSON(s, http.MethodPost, "/loans", `{"bookid": 999, "memberid": 3, "loandate": "2025-01-02"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), storerrros.ErrConstraint.Error())
	})
}

func TestUpdateLoan(t *testing.T) {
	t.Run("closing a loan", func(t *testing.T) {
		s, mockStorage := newTestServer(t)
		mockStorage.EXPECT().
			UpdateLoan(9, models.LoanPatch{ReturnDate: strPtr("2025-02-01")}).
			Return(nil)

		w := doJSON(s, http.MethodPut, "/loans/9", `{"returndate": "2025-02-01"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message": "Loan 9 updated successfully"}`, w.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		s, mockStorage := newTestServer(t)
		mockStorage.EXPECT().UpdateLoan(9, gomockAny).Return(storerrros.ErrLoanNotFound)

		w := doJSON(s, http.MethodPut, "/loans/9", `{"returndate": "2025-02-01"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error": "Loan not found"}`, w.Body.String())
	})
}

func TestDeleteLoan(t *testing.T) {
	s, mockStorage := newTestServer(t)
	mockStorage.EXPECT().DeleteLoan(9).Return(nil)

	w := doJSON(s, http.MethodDelete, "/loans/9", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Loan 9 deleted successfully"}`, w.Body.String())
}

func TestLoanInfo_NotFound(t *testing.T) {
	s, mockStorage := newTestServer(t)
	mockStorage.EXPECT().GetLoan(9).Return(models.Loan{}, storerrros.ErrLoanNotFound)

	w := doJSON(s, http.MethodGet, "/loans/9", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "Loan not found"}`, w.Body.String())
}
