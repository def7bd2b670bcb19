// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerbook/backend/internal/application/usecase/book"
	domainerror "github.com/ledgerbook/backend/internal/domain/error"
	"github.com/ledgerbook/backend/internal/integration/entrypoint/dto"
	"github.com/ledgerbook/backend/internal/integration/entrypoint/middleware"
)

// BookController handles book endpoints.
type BookController struct {
	createUseCase     *book.CreateBookUseCase
	listUseCase       *book.ListBooksUseCase
	getUseCase        *book.GetBookUseCase
	updateUseCase     *book.UpdateBookUseCase
	softDeleteUseCase *book.SoftDeleteBookUseCase
	restoreUseCase    *book.RestoreBookUseCase
	purgeUseCase      *book.PurgeBookUseCase
}

// NewBookController creates a new book controller instance.
func NewBookController(
	createUseCase *book.CreateBookUseCase,
	listUseCase *book.ListBooksUseCase,
	getUseCase *book.GetBookUseCase,
	updateUseCase *book.UpdateBookUseCase,
	softDeleteUseCase *book.SoftDeleteBookUseCase,
	restoreUseCase *book.RestoreBookUseCase,
	purgeUseCase *book.PurgeBookUseCase,
) *BookController {
	return &BookController{
		createUseCase:     createUseCase,
		listUseCase:       listUseCase,
		getUseCase:        getUseCase,
		updateUseCase:     updateUseCase,
		softDeleteUseCase: softDeleteUseCase,
		restoreUseCase:    restoreUseCase,
		purgeUseCase:      purgeUseCase,
	}
}

// Create handles POST /teams/:id/books requests.
func (c *BookController) Create(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	teamID, ok := parseIDParam(ctx, "id", "Invalid team ID format")
	if !ok {
		return
	}

	var req dto.CreateBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingBookFields),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), book.CreateBookInput{
		TeamID:   teamID,
		Name:     req.Name,
		Currency: req.Currency,
		Actor:    actor,
	})
	if err != nil {
		c.handleBookError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBookResponse(output.Book))
}

// List handles GET /teams/:id/books requests.
func (c *BookController) List(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	teamID, ok := parseIDParam(ctx, "id", "Invalid team ID format")
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), book.ListBooksInput{
		TeamID: teamID,
		Actor:  actor,
	})
	if err != nil {
		c.handleBookError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBookListResponse(output.Books))
}

// Get handles GET /books/:id requests.
func (c *BookController) Get(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	bookID, ok := parseIDParam(ctx, "id", "Invalid book ID format")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), book.GetBookInput{
		BookID: bookID,
		Actor:  actor,
	})
	if err != nil {
		c.handleBookError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBookResponse(output.Book))
}

// Update handles PUT /books/:id requests.
func (c *BookController) Update(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	bookID, ok := parseIDParam(ctx, "id", "Invalid book ID format")
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingBookFields),
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), book.UpdateBookInput{
		BookID:   bookID,
		Name:     req.Name,
		Currency: req.Currency,
		Actor:    actor,
	})
	if err != nil {
		c.handleBookError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBookResponse(output.Book))
}

// SoftDelete handles DELETE /books/:id requests.
func (c *BookController) SoftDelete(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	bookID, ok := parseIDParam(ctx, "id", "Invalid book ID format")
	if !ok {
		return
	}

	err := c.softDeleteUseCase.Execute(ctx.Request.Context(), book.SoftDeleteBookInput{
		BookID: bookID,
		Actor:  actor,
	})
	if err != nil {
		c.handleBookError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Restore handles POST /books/:id/restore requests.
func (c *BookController) Restore(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	bookID, ok := parseIDParam(ctx, "id", "Invalid book ID format")
	if !ok {
		return
	}

	output, err := c.restoreUseCase.Execute(ctx.Request.Context(), book.RestoreBookInput{
		BookID: bookID,
		Actor:  actor,
	})
	if err != nil {
		c.handleBookError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBookResponse(output.Book))
}

// Purge handles DELETE /books/:id/purge requests.
func (c *BookController) Purge(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	bookID, ok := parseIDParam(ctx, "id", "Invalid book ID format")
	if !ok {
		return
	}

	err := c.purgeUseCase.Execute(ctx.Request.Context(), book.PurgeBookInput{
		BookID: bookID,
		Actor:  actor,
	})
	if err != nil {
		c.handleBookError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleBookError maps book errors to HTTP responses. Authorization denials
// surface as 403 with the gate's reason.
func (c *BookController) handleBookError(ctx *gin.Context, err error) {
	var authzErr *domainerror.AuthzError
	if errors.As(err, &authzErr) {
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error: authzErr.Reason,
		})
		return
	}

	var bookErr *domainerror.BookError
	if errors.As(err, &bookErr) {
		statusCode := c.getStatusCodeForBookError(bookErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: bookErr.Message,
			Code:  string(bookErr.Code),
		})
		return
	}

	var teamErr *domainerror.TeamError
	if errors.As(err, &teamErr) {
		statusCode := http.StatusInternalServerError
		if teamErr.Code == domainerror.ErrCodeTeamNotFound {
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: teamErr.Message,
			Code:  string(teamErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForBookError maps book error codes to HTTP status codes.
func (c *BookController) getStatusCodeForBookError(code domainerror.BookErrorCode) int {
	switch code {
	case domainerror.ErrCodeBookNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeBookNameRequired,
		domainerror.ErrCodeBookNameTooLong,
		domainerror.ErrCodeMissingBookFields,
		domainerror.ErrCodeBookNotDeleted,
		domainerror.ErrCodeBookNotSoftDeleted:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
