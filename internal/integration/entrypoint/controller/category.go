// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ledgerbook/backend/internal/application/usecase/category"
	"github.com/ledgerbook/backend/internal/domain/entity"
	domainerror "github.com/ledgerbook/backend/internal/domain/error"
	"github.com/ledgerbook/backend/internal/integration/entrypoint/dto"
	"github.com/ledgerbook/backend/internal/integration/entrypoint/middleware"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	createUseCase *category.CreateCategoryUseCase
	listUseCase   *category.ListCategoriesUseCase
	updateUseCase *category.UpdateCategoryUseCase
	deleteUseCase *category.DeleteCategoryUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	createUseCase *category.CreateCategoryUseCase,
	listUseCase *category.ListCategoriesUseCase,
	updateUseCase *category.UpdateCategoryUseCase,
	deleteUseCase *category.DeleteCategoryUseCase,
) *CategoryController {
	return &CategoryController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Create handles POST /books/:id/categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	bookID, ok := parseIDParam(ctx, "id", "Invalid book ID format")
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingCategoryFields),
		})
		return
	}

	var parentID *uuid.UUID
	if req.ParentID != nil {
		parsed, err := uuid.Parse(*req.ParentID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid parent category ID format",
				Code:  string(domainerror.ErrCodeMissingCategoryFields),
			})
			return
		}
		parentID = &parsed
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), category.CreateCategoryInput{
		BookID:   bookID,
		Name:     req.Name,
		Type:     entity.CategoryType(req.Type),
		ParentID: parentID,
		Actor:    actor,
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(output.Category))
}

// List handles GET /books/:id/categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	bookID, ok := parseIDParam(ctx, "id", "Invalid book ID format")
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), category.ListCategoriesInput{
		BookID: bookID,
		Actor:  actor,
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output.Categories))
}

// Update handles PUT /categories/:id requests.
func (c *CategoryController) Update(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	categoryID, ok := parseIDParam(ctx, "id", "Invalid category ID format")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingCategoryFields),
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), category.UpdateCategoryInput{
		CategoryID: categoryID,
		Name:       req.Name,
		Type:       entity.CategoryType(req.Type),
		ParentSet:  req.ParentID.Set,
		ParentID:   req.ParentID.Value,
		Actor:      actor,
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(output.Category))
}

// Delete handles DELETE /categories/:id requests. Deleting a category with
// children is refused until the children are removed or reparented.
func (c *CategoryController) Delete(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	categoryID, ok := parseIDParam(ctx, "id", "Invalid category ID format")
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), category.DeleteCategoryInput{
		CategoryID: categoryID,
		Actor:      actor,
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleCategoryError maps category errors to HTTP responses. Book errors can
// surface here because category operations resolve the owning book first.
func (c *CategoryController) handleCategoryError(ctx *gin.Context, err error) {
	var authzErr *domainerror.AuthzError
	if errors.As(err, &authzErr) {
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error: authzErr.Reason,
		})
		return
	}

	var categoryErr *domainerror.CategoryError
	if errors.As(err, &categoryErr) {
		statusCode := c.getStatusCodeForCategoryError(categoryErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: categoryErr.Message,
			Code:  string(categoryErr.Code),
		})
		return
	}

	var bookErr *domainerror.BookError
	if errors.As(err, &bookErr) {
		statusCode := http.StatusInternalServerError
		if bookErr.Code == domainerror.ErrCodeBookNotFound {
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: bookErr.Message,
			Code:  string(bookErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForCategoryError maps category error codes to HTTP status codes.
func (c *CategoryController) getStatusCodeForCategoryError(code domainerror.CategoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryNotFound,
		domainerror.ErrCodeParentCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryNameRequired,
		domainerror.ErrCodeCategoryNameTooLong,
		domainerror.ErrCodeInvalidCategoryType,
		domainerror.ErrCodeMissingCategoryFields,
		domainerror.ErrCodeParentDifferentBook,
		domainerror.ErrCodeCategoryTooDeep,
		domainerror.ErrCodeCategorySelfParent,
		domainerror.ErrCodeCategoryHasChildren:
		return http.StatusBadRequest
	case domainerror.ErrCodeCategoryChildrenExist:
		return http.StatusPreconditionRequired
	default:
		return http.StatusInternalServerError
	}
}
