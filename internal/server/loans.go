package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DiosOne/library-api/internal/domain/consts"
	"github.com/DiosOne/library-api/internal/domain/models"
	"github.com/DiosOne/library-api/internal/logger"
	storerrros "github.com/DiosOne/library-api/internal/storage/errors"
)

type loanRequest struct {
	BookID     *int    `json:"bookid" validate:"required"`
	MemberID   *int    `json:"memberid" validate:"required"`
	LoanDate   string  `json:"loandate" validate:"required"`
	ReturnDate *string `json:"returndate"`
}

func validDate(s string) bool {
	_, err := time.Parse(consts.DateLayout, s)
	return err == nil
}

func (s *Server) AllLoans(ctx *gin.Context) {
	log := logger.Get()
	loans, err := s.Storage.GetLoans()
	if err != nil {
		if errors.Is(err, storerrros.ErrEmptyLoansList) {
			ctx.JSON(http.StatusOK, gin.H{"message": "No current loans"})
			return
		}
		log.Error().Err(err).Msg("failed to get loans")
		internalError(ctx)
		return
	}
	ctx.JSON(http.StatusOK, loans)
}

func (s *Server) LoanInfo(ctx *gin.Context) {
	log := logger.Get()
	id, ok := idParam(ctx, "loan")
	if !ok {
		return
	}
	loan, err := s.Storage.GetLoan(id)
	if err != nil {
		if errors.Is(err, storerrros.ErrLoanNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
			return
		}
		log.Error().Err(err).Msg("failed to get loan")
		internalError(ctx)
		return
	}
	ctx.JSON(http.StatusOK, loan)
}

func (s *Server) CreateLoan(ctx *gin.Context) {
	log := logger.Get()
	var req loanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if err := s.valid.Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "BookID, MemberID, and LoanDate are required"})
		return
	}
	if !validDate(req.LoanDate) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "LoanDate must be a valid date (YYYY-MM-DD)"})
		return
	}
	if req.ReturnDate != nil && !validDate(*req.ReturnDate) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "ReturnDate must be a valid date (YYYY-MM-DD)"})
		return
	}
	id, err := s.Storage.SaveLoan(models.Loan{
		BookID:     *req.BookID,
		MemberID:   *req.MemberID,
		LoanDate:   req.LoanDate,
		ReturnDate: req.ReturnDate,
	})
	if err != nil {
		if errors.Is(err, storerrros.ErrConstraint) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error().Err(err).Msg("failed to save loan")
		internalError(ctx)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"LoanID":  id,
		"message": fmt.Sprintf("Loan %d added successfully", id),
	})
}

// UpdateLoan is partial; the usual call sets returndate to close a loan.
func (s *Server) UpdateLoan(ctx *gin.Context) {
	log := logger.Get()
	id, ok := idParam(ctx, "loan")
	if !ok {
		return
	}
	var patch models.LoanPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if patch.LoanDate != nil && !validDate(*patch.LoanDate) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "LoanDate must be a valid date (YYYY-MM-DD)"})
		return
	}
	if patch.ReturnDate != nil && !validDate(*patch.ReturnDate) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "ReturnDate must be a valid date (YYYY-MM-DD)"})
		return
	}
	if err := s.Storage.UpdateLoan(id, patch); err != nil {
		switch {
		case errors.Is(err, storerrros.ErrLoanNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
		case errors.Is(err, storerrros.ErrConstraint):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Error().Err(err).Int("loanid", id).Msg("failed to update loan")
			internalError(ctx)
		}
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Loan %d updated successfully", id)})
}

func (s *Server) DeleteLoan(ctx *gin.Context) {
	log := logger.Get()
	id, ok := idParam(ctx, "loan")
	if !ok {
		return
	}
	if err := s.Storage.DeleteLoan(id); err != nil {
		switch {
		case errors.Is(err, storerrros.ErrLoanNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
		case errors.Is(err, storerrros.ErrConstraint):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Error().Err(err).Int("loanid", id).Msg("failed to delete loan")
			internalError(ctx)
		}
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Loan %d deleted successfully", id)})
}
