package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"readinglog/internal/domain"
	"readinglog/internal/identity"
	"readinglog/internal/service"
)

// Handler is the thin HTTP layer over the catalog service and the identity
// provider. No catalog logic lives here.
type Handler struct {
	catalog  *service.CatalogService
	identity *identity.Client
	logger   *slog.Logger
}

func NewHandler(catalog *service.CatalogService, idp *identity.Client, logger *slog.Logger) *Handler {
	return &Handler{
		catalog:  catalog,
		identity: idp,
		logger:   logger.With("component", "http"),
	}
}

func (h *Handler) CreateBook(c *gin.Context) {
	var candidate domain.BookCandidate
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	book, err := h.catalog.CreateBook(c.Request.Context(), candidate)
	if err != nil {
		h.respondError(c, err, "Failed to create book")
		return
	}

	c.JSON(http.StatusCreated, book)
}

func (h *Handler) ListBooks(c *gin.Context) {
	books, err := h.catalog.ListBooks(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to list books")
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *Handler) GetBookByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid integer"})
		return
	}

	book, err := h.catalog.GetBookByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to get book")
		return
	}

	c.JSON(http.StatusOK, book)
}

func (h *Handler) SearchBooks(c *gin.Context) {
	criteria := domain.SearchCriteria{
		Title:           c.Query("title"),
		Author:          c.Query("author"),
		PublicationYear: c.Query("year"),
		ReadYear:        c.Query("readYear"),
		Language:        c.Query("language"),
		Format:          c.Query("format"),
	}

	books, err := h.catalog.Search(c.Request.Context(), criteria)
	if err != nil {
		h.respondError(c, err, "Failed to search books")
		return
	}

	c.JSON(http.StatusOK, books)
}

func (h *Handler) SearchBooksByAuthor(c *gin.Context) {
	books, err := h.catalog.SearchByAuthor(c.Request.Context(), c.Query("author"))
	if err != nil {
		h.respondError(c, err, "Failed to search books")
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *Handler) SearchBooksByReadYear(c *gin.Context) {
	books, err := h.catalog.SearchByReadYear(c.Request.Context(), c.Query("year"))
	if err != nil {
		h.respondError(c, err, "Failed to search books")
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *Handler) CountBooks(c *gin.Context) {
	count, err := h.catalog.CountBooks(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to count books")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *Handler) CountBooksByReadYear(c *gin.Context) {
	count, err := h.catalog.CountByReadYear(c.Request.Context(), c.Query("year"))
	if err != nil {
		h.respondError(c, err, "Failed to count books")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	tokens, err := h.identity.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, identity.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login failed", "message": "Invalid credentials"})
		return
	}
	if err != nil {
		h.logger.Error("login failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Login successful",
		"accessToken": tokens.AccessToken,
		"idToken":     tokens.IDToken,
	})
}

// respondError maps the error taxonomy to statuses: validation failures are
// the client's fault, a missing record is 404, everything else is a
// dependency failure.
func (h *Handler) respondError(c *gin.Context, err error, action string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
	default:
		h.logger.Error(action, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": action})
	}
}
