package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DiosOne/library-api/internal/domain/models"
	"github.com/DiosOne/library-api/internal/logger"
	storerrros "github.com/DiosOne/library-api/internal/storage/errors"
	"github.com/DiosOne/library-api/internal/validation"
)

func (s *Server) AllBooks(ctx *gin.Context) {
	log := logger.Get()
	books, err := s.Storage.GetBooks()
	if err != nil {
		log.Error().Err(err).Msg("failed to get books")
		internalError(ctx)
		return
	}
	ctx.JSON(http.StatusOK, books)
}

func (s *Server) BookInfo(ctx *gin.Context) {
	log := logger.Get()
	id, ok := idParam(ctx, "book")
	if !ok {
		return
	}
	book, err := s.Storage.GetBook(id)
	if err != nil {
		if errors.Is(err, storerrros.ErrBookNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			return
		}
		log.Error().Err(err).Msg("failed to get book")
		internalError(ctx)
		return
	}
	ctx.JSON(http.StatusOK, book)
}

func (s *Server) CreateBook(ctx *gin.Context) {
	log := logger.Get()
	var req validation.BookInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if errs := validation.ValidateBook(req, false); len(errs) > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}
	id, err := s.Storage.SaveBook(bookFromInput(req))
	if err != nil {
		if errors.Is(err, storerrros.ErrConstraint) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error().Err(err).Msg("failed to save book")
		internalError(ctx)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"BookID":  id,
		"message": fmt.Sprintf("Book %d added successfully", id),
	})
}

// UpdateBook is full replacement: every field must be present, so a partial
// payload cannot silently null out columns.
func (s *Server) UpdateBook(ctx *gin.Context) {
	log := logger.Get()
	id, ok := idParam(ctx, "book")
	if !ok {
		return
	}
	var req validation.BookInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if errs := validation.ValidateBook(req, true); len(errs) > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}
	if err := s.Storage.UpdateBook(id, bookFromInput(req)); err != nil {
		switch {
		case errors.Is(err, storerrros.ErrBookNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		case errors.Is(err, storerrros.ErrConstraint):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Error().Err(err).Int("bookid", id).Msg("failed to update book")
			internalError(ctx)
		}
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Book %d updated successfully", id)})
}

func (s *Server) DeleteBook(ctx *gin.Context) {
	log := logger.Get()
	id, ok := idParam(ctx, "book")
	if !ok {
		return
	}
	if err := s.Storage.DeleteBook(id); err != nil {
		switch {
		case errors.Is(err, storerrros.ErrBookNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		case errors.Is(err, storerrros.ErrConstraint):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Error().Err(err).Int("bookid", id).Msg("failed to delete book")
			internalError(ctx)
		}
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Book %d deleted successfully", id)})
}

// bookFromInput assumes the input already passed validation.
func bookFromInput(in validation.BookInput) models.Book {
	book := models.Book{
		Title: strings.TrimSpace(in.Title),
		ISBN:  strings.TrimSpace(in.ISBN),
	}
	if in.Genre != nil {
		if genre := strings.TrimSpace(*in.Genre); genre != "" {
			book.Genre = &genre
		}
	}
	if in.YearPublished != nil {
		if year, ok := validation.ParseInt(in.YearPublished); ok {
			book.YearPublished = &year
		}
	}
	if in.AuthorID != nil {
		if authorID, ok := validation.ParseInt(in.AuthorID); ok {
			book.AuthorID = &authorID
		}
	}
	return book
}
