package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/school-admin-api/internal/service"
	appErrors "github.com/campuskit/school-admin-api/pkg/errors"
	"github.com/campuskit/school-admin-api/pkg/response"
)

// LibraryHandler exposes the book catalogue and lending endpoints.
type LibraryHandler struct {
	library *service.LibraryService
}

// NewLibraryHandler constructs LibraryHandler.
func NewLibraryHandler(library *service.LibraryService) *LibraryHandler {
	return &LibraryHandler{library: library}
}

// ListBooks godoc
// @Summary List books
// @Tags Library
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /books [get]
func (h *LibraryHandler) ListBooks(c *gin.Context) {
	books, err := h.library.ListBooks(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, books)
}

// GetBook godoc
// @Summary Get book
// @Tags Library
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} response.Envelope
// @Router /books/{id} [get]
func (h *LibraryHandler) GetBook(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	book, err := h.library.GetBook(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, book)
}

// AddBook godoc
// @Summary Add a book to the catalogue
// @Tags Library
// @Accept json
// @Produce json
// @Param payload body service.AddBookRequest true "Book payload"
// @Success 201 {object} response.Envelope
// @Router /books [post]
func (h *LibraryHandler) AddBook(c *gin.Context) {
	var req service.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	book, err := h.library.AddBook(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, book)
}

// IssueBook godoc
// @Summary Issue a book to a student
// @Tags Library
// @Accept json
// @Produce json
// @Param payload body service.IssueBookRequest true "Issue payload"
// @Success 201 {object} response.Envelope
// @Router /issues [post]
func (h *LibraryHandler) IssueBook(c *gin.Context) {
	var req service.IssueBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	issue, err := h.library.IssueBook(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, issue)
}

// ReturnBook godoc
// @Summary Return an issued book
// @Tags Library
// @Produce json
// @Param issueId path int true "Issue ID"
// @Success 200 {object} response.Envelope
// @Router /returns/{issueId} [post]
func (h *LibraryHandler) ReturnBook(c *gin.Context) {
	issueID, err := pathID(c, "issueId")
	if err != nil {
		response.Error(c, err)
		return
	}
	issue, err := h.library.ReturnBook(c.Request.Context(), issueID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, issue)
}

// StudentIssues godoc
// @Summary List a student's issues
// @Tags Library
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/issues [get]
func (h *LibraryHandler) StudentIssues(c *gin.Context) {
	studentID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	issues, err := h.library.ListStudentIssues(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, issues)
}
