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
)

type authorRequest struct {
	Name      string `json:"name" validate:"required"`
	BirthYear *int   `json:"birthyear"`
}

func (s *Server) AllAuthors(ctx *gin.Context) {
	log := logger.Get()
	authors, err := s.Storage.GetAuthors()
	if err != nil {
		log.Error().Err(err).Msg("failed to get authors")
		internalError(ctx)
		return
	}
	ctx.JSON(http.StatusOK, authors)
}

func (s *Server) AuthorInfo(ctx *gin.Context) {
	log := logger.Get()
	id, ok := idParam(ctx, "author")
	if !ok {
		return
	}
	author, err := s.Storage.GetAuthor(id)
	if err != nil {
		if errors.Is(err, storerrros.ErrAuthorNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Author not found"})
			return
		}
		log.Error().Err(err).Msg("failed to get author")
		internalError(ctx)
		return
	}
	ctx.JSON(http.StatusOK, author)
}

func (s *Server) CreateAuthor(ctx *gin.Context) {
	log := logger.Get()
	var req authorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := s.valid.Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Author name is required"})
		return
	}
	id, err := s.Storage.SaveAuthor(models.Author{Name: req.Name, BirthYear: req.BirthYear})
	if err != nil {
		if errors.Is(err, storerrros.ErrConstraint) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error().Err(err).Msg("failed to save author")
		internalError(ctx)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"AuthorID": id,
		"message":  fmt.Sprintf("Author %d added successfully", id),
	})
}

// UpdateAuthor accepts a partial payload: absent fields keep their stored
// value.
func (s *Server) UpdateAuthor(ctx *gin.Context) {
	log := logger.Get()
	id, ok := idParam(ctx, "author")
	if !ok {
		return
	}
	var patch models.AuthorPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Author name is required"})
			return
		}
		patch.Name = &name
	}
	if err := s.Storage.UpdateAuthor(id, patch); err != nil {
		switch {
		case errors.Is(err, storerrros.ErrAuthorNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Author not found"})
		case errors.Is(err, storerrros.ErrConstraint):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Error().Err(err).Int("authorid", id).Msg("failed to update author")
			internalError(ctx)
		}
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Author %d updated successfully", id)})
}

func (s *Server) DeleteAuthor(ctx *gin.Context) {
	log := logger.Get()
	id, ok := idParam(ctx, "author")
	if !ok {
		return
	}
	if err := s.Storage.DeleteAuthor(id); err != nil {
		switch {
		case errors.Is(err, storerrros.ErrAuthorNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Author not found"})
		case errors.Is(err, storerrros.ErrConstraint):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Error().Err(err).Int("authorid", id).Msg("failed to delete author")
			internalError(ctx)
		}
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Author %d deleted successfully", id)})
}
