package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/DiosOne/library-api/internal/config"
	"github.com/DiosOne/library-api/internal/domain/models"
	"github.com/DiosOne/library-api/internal/logger"
)

//go:generate mockgen -source=server.go -destination=./mocks/storage_mock.go -package=mocks

// Storage is the data access layer: one parameterized statement per call,
// sentinel errors for not-found and constraint outcomes.
type Storage interface {
	SaveBook(models.Book) (int, error)
	GetBooks() ([]models.Book, error)
	GetBook(int) (models.Book, error)
	UpdateBook(int, models.Book) error
	DeleteBook(int) error

	SaveAuthor(models.Author) (int, error)
	GetAuthors() ([]models.Author, error)
	GetAuthor(int) (models.Author, error)
	UpdateAuthor(int, models.AuthorPatch) error
	DeleteAuthor(int) error

	SaveMember(models.Member) (int, error)
	GetMembers() ([]models.Member, error)
	GetMember(int) (models.Member, error)
	UpdateMember(int, models.MemberPatch) error
	DeleteMember(int) error

	SaveLoan(models.Loan) (int, error)
	GetLoans() ([]models.Loan, error)
	GetLoan(int) (models.Loan, error)
	UpdateLoan(int, models.LoanPatch) error
	DeleteLoan(int) error
}

type Server struct {
	serv    *http.Server
	valid   *validator.Validate
	Storage Storage
}

func New(cfg config.Config, stor Storage) *Server {
	server := http.Server{ //nolint:gosec // not today
		Addr: cfg.Addr,
	}
	valid := validator.New()
	return &Server{
		serv:    &server,
		valid:   valid,
		Storage: stor,
	}
}

func (s *Server) ShutdownServer() error {
	return s.serv.Shutdown(context.Background())
}

func (s *Server) Run(ctx context.Context) error {
	log := logger.Get()
	s.serv.Handler = s.Router()
	log.Info().Str("host", s.serv.Addr).Msg("server started")
	if err := s.serv.ListenAndServe(); err != nil {
		return err
	}
	return nil
}

// Router wires the middleware stack and the four resource groups.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(requestIDMiddleware(), requestLogMiddleware(), recoveryMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "Library API is running. Try /books, /authors, /loans"})
	})
	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":   "Resource not found",
			"message": "The requested URL or resource does not exist.",
		})
	})

	books := router.Group("/books")
	{
		books.GET("", s.AllBooks)
		books.GET("/:id", s.BookInfo)
		books.POST("", s.CreateBook)
		books.PUT("/:id", s.UpdateBook)
		books.DELETE("/:id", s.DeleteBook)
	}
	authors := router.Group("/authors")
	{
		authors.GET("", s.AllAuthors)
		authors.GET("/:id", s.AuthorInfo)
		authors.POST("", s.CreateAuthor)
		authors.PUT("/:id", s.UpdateAuthor)
		authors.DELETE("/:id", s.DeleteAuthor)
	}
	members := router.Group("/members")
	{
		members.GET("", s.AllMembers)
		members.GET("/:id", s.MemberInfo)
		members.POST("", s.CreateMember)
		members.PUT("/:id", s.UpdateMember)
		members.DELETE("/:id", s.DeleteMember)
	}
	loans := router.Group("/loans")
	{
		loans.GET("", s.AllLoans)
		loans.GET("/:id", s.LoanInfo)
		loans.POST("", s.CreateLoan)
		loans.PUT("/:id", s.UpdateLoan)
		loans.DELETE("/:id", s.DeleteLoan)
	}

	return router
}

func (s *Server) Close() error {
	return s.serv.Shutdown(context.TODO())
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		ctx.Set("request_id", requestID)
		ctx.Header("X-Request-ID", requestID)
		ctx.Next()
	}
}

func requestLogMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		log := logger.Get()
		start := time.Now()
		ctx.Next()
		log.Info().
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Int("status", ctx.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", ctx.GetString("request_id")).
			Msg("http request")
	}
}

// recoveryMiddleware is the catch-all translator: panics are logged with
// detail and the client only sees the generic body.
func recoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(ctx *gin.Context, recovered any) {
		log := logger.Get()
		log.Error().
			Any("panic", recovered).
			Str("path", ctx.Request.URL.Path).
			Str("request_id", ctx.GetString("request_id")).
			Msg("panic recovered")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "An unexpected error occurred. Please try again later.",
		})
	})
}
