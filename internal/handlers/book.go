package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/RaajPratap/books-management-system/internal/auth"
	dom "github.com/RaajPratap/books-management-system/internal/domain"
	"github.com/RaajPratap/books-management-system/internal/dto"
	"github.com/RaajPratap/books-management-system/internal/service"

	"github.com/gin-gonic/gin"
)

// BookHandler serves /books. Routes are mounted behind auth.RequireToken,
// so the owner ID is always present in the context.
type BookHandler struct {
	svc *service.BookService
	log *slog.Logger
}

func NewBookHandler(svc *service.BookService, log *slog.Logger) *BookHandler {
	return &BookHandler{svc: svc, log: log}
}

// List godoc
// @Summary      List own books
// @Description  Newest first. search matches title or author, case-insensitive.
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page (default 1)"
// @Param        limit   query     int     false  "Page size (default 5, max 100)"
// @Param        search  query     string  false  "Substring of title or author"
// @Success      200  {object}  dto.ListBooksResponse
// @Failure      401  {object}  dto.MessageResponse
// @Failure      500  {object}  dto.MessageResponse
// @Router       /books [get]
func (h *BookHandler) List(c *gin.Context) {
	page, err := h.svc.List(c.Request.Context(), auth.UserIDFromContext(c), service.ListParams{
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
		Search: c.Query("search"),
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListBooksResponse{
		Books: booksToResponses(page.Items),
		Page:  page.Page,
		Pages: page.Pages,
		Total: page.Total,
	})
}

// GetByID godoc
// @Summary      Get a book by ID
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Book ID"
// @Success      200  {object}  dto.BookResponse
// @Failure      401  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Failure      500  {object}  dto.MessageResponse
// @Router       /books/{id} [get]
func (h *BookHandler) GetByID(c *gin.Context) {
	b, err := h.svc.Get(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, bookToResponse(b))
}

// Create godoc
// @Summary      Create a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateBookRequest  true  "Book"
// @Success      201   {object}  dto.BookResponse
// @Failure      400   {object}  dto.MessageResponse
// @Failure      401   {object}  dto.MessageResponse
// @Failure      500   {object}  dto.MessageResponse
// @Router       /books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.svc.Create(c.Request.Context(), auth.UserIDFromContext(c), service.BookInput{
		Title:       req.Title,
		Author:      req.Author,
		Year:        req.Year,
		Description: req.Description,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, bookToResponse(b))
}

// Update godoc
// @Summary      Update a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Book ID"
// @Param        body  body      dto.UpdateBookRequest  true  "Partial update"
// @Success      200   {object}  dto.BookResponse
// @Failure      400   {object}  dto.MessageResponse
// @Failure      401   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.MessageResponse
// @Failure      500   {object}  dto.MessageResponse
// @Router       /books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.svc.Update(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id"), dom.BookPatch{
		Title:       req.Title,
		Author:      req.Author,
		Year:        req.Year,
		Description: req.Description,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, bookToResponse(b))
}

// Delete godoc
// @Summary      Delete a book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Book ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      401  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Failure      500  {object}  dto.MessageResponse
// @Router       /books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id")); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Book removed"})
}

// queryInt returns the integer query parameter, or 0 when absent or not a number.
func queryInt(c *gin.Context, name string) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return n
}

func bookToResponse(b dom.Book) dto.BookResponse {
	return dto.BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Year:        b.Year,
		Description: b.Description,
		OwnerID:     b.OwnerID,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func booksToResponses(list []dom.Book) []dto.BookResponse {
	out := make([]dto.BookResponse, len(list))
	for i := range list {
		out[i] = bookToResponse(list[i])
	}
	return out
}
