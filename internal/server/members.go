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

type memberRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
}

func (s *Server) AllMembers(ctx *gin.Context) {
	log := logger.Get()
	members, err := s.Storage.GetMembers()
	if err != nil {
		log.Error().Err(err).Msg("failed to get members")
		internalError(ctx)
		return
	}
	ctx.JSON(http.StatusOK, members)
}

func (s *Server) MemberInfo(ctx *gin.Context) {
	log := logger.Get()
	id, ok := idParam(ctx, "member")
	if !ok {
		return
	}
	member, err := s.Storage.GetMember(id)
	if err != nil {
		if errors.Is(err, storerrros.ErrMemberNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		log.Error().Err(err).Msg("failed to get member")
		internalError(ctx)
		return
	}
	ctx.JSON(http.StatusOK, member)
}

func (s *Server) CreateMember(ctx *gin.Context) {
	log := logger.Get()
	var req memberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := s.valid.Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Name and email are required"})
		return
	}
	id, err := s.Storage.SaveMember(models.Member{Name: req.Name, Email: req.Email})
	if err != nil {
		if errors.Is(err, storerrros.ErrConstraint) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error().Err(err).Msg("failed to save member")
		internalError(ctx)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"MemberID": id,
		"message":  fmt.Sprintf("Member %d added successfully", id),
	})
}

func (s *Server) UpdateMember(ctx *gin.Context) {
	log := logger.Get()
	id, ok := idParam(ctx, "member")
	if !ok {
		return
	}
	var patch models.MemberPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Name and email are required"})
			return
		}
		patch.Name = &name
	}
	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if email == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Name and email are required"})
			return
		}
		patch.Email = &email
	}
	if err := s.Storage.UpdateMember(id, patch); err != nil {
		switch {
		case errors.Is(err, storerrros.ErrMemberNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		case errors.Is(err, storerrros.ErrConstraint):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Error().Err(err).Int("memberid", id).Msg("failed to update member")
			internalError(ctx)
		}
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Member %d updated successfully", id)})
}

func (s *Server) DeleteMember(ctx *gin.Context) {
	log := logger.Get()
	id, ok := idParam(ctx, "member")
	if !ok {
		return
	}
	if err := s.Storage.DeleteMember(id); err != nil {
		switch {
		case errors.Is(err, storerrros.ErrMemberNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		case errors.Is(err, storerrros.ErrConstraint):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Error().Err(err).Int("memberid", id).Msg("failed to delete member")
			internalError(ctx)
		}
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Member %d deleted successfully", id)})
}
