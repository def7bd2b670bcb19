// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ledgerbook/backend/internal/application/usecase/account"
	"github.com/ledgerbook/backend/internal/domain/entity"
	domainerror "github.com/ledgerbook/backend/internal/domain/error"
	"github.com/ledgerbook/backend/internal/integration/entrypoint/dto"
	"github.com/ledgerbook/backend/internal/integration/entrypoint/middleware"
)

// dateLayout is the wire format for date-only fields and query parameters.
const dateLayout = "2006-01-02"

// AccountController handles account and balance endpoints.
type AccountController struct {
	createUseCase     *account.CreateAccountUseCase
	listUseCase       *account.ListAccountsUseCase
	getUseCase        *account.GetAccountUseCase
	updateUseCase     *account.UpdateAccountUseCase
	deleteUseCase     *account.DeleteAccountUseCase
	getBalanceUseCase *account.GetBalanceUseCase
}

// NewAccountController creates a new account controller instance.
func NewAccountController(
	createUseCase *account.CreateAccountUseCase,
	listUseCase *account.ListAccountsUseCase,
	getUseCase *account.GetAccountUseCase,
	updateUseCase *account.UpdateAccountUseCase,
	deleteUseCase *account.DeleteAccountUseCase,
	getBalanceUseCase *account.GetBalanceUseCase,
) *AccountController {
	return &AccountController{
		createUseCase:     createUseCase,
		listUseCase:       listUseCase,
		getUseCase:        getUseCase,
		updateUseCase:     updateUseCase,
		deleteUseCase:     deleteUseCase,
		getBalanceUseCase: getBalanceUseCase,
	}
}

// Create handles POST /books/:id/accounts requests.
func (c *AccountController) Create(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	bookID, ok := parseIDParam(ctx, "id", "Invalid book ID format")
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingAccountFields),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), account.CreateAccountInput{
		BookID: bookID,
		Name:   req.Name,
		Type:   entity.AccountType(req.Type),
		Actor:  actor,
	})
	if err != nil {
		c.handleAccountError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAccountResponse(output.Account))
}

// List handles GET /books/:id/accounts requests.
func (c *AccountController) List(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	bookID, ok := parseIDParam(ctx, "id", "Invalid book ID format")
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), account.ListAccountsInput{
		BookID: bookID,
		Actor:  actor,
	})
	if err != nil {
		c.handleAccountError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountListResponse(output.Accounts))
}

// Get handles GET /accounts/:id requests.
func (c *AccountController) Get(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	accountID, ok := parseIDParam(ctx, "id", "Invalid account ID format")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), account.GetAccountInput{
		AccountID: accountID,
		Actor:     actor,
	})
	if err != nil {
		c.handleAccountError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountResponse(output.Account))
}

// Update handles PUT /accounts/:id requests.
func (c *AccountController) Update(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	accountID, ok := parseIDParam(ctx, "id", "Invalid account ID format")
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingAccountFields),
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), account.UpdateAccountInput{
		AccountID: accountID,
		Name:      req.Name,
		Type:      entity.AccountType(req.Type),
		Actor:     actor,
	})
	if err != nil {
		c.handleAccountError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountResponse(output.Account))
}

// Delete handles DELETE /accounts/:id requests.
func (c *AccountController) Delete(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	accountID, ok := parseIDParam(ctx, "id", "Invalid account ID format")
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), account.DeleteAccountInput{
		AccountID: accountID,
		Actor:     actor,
	})
	if err != nil {
		c.handleAccountError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetBalance handles GET /accounts/:id/balance requests. An optional up_to
// query parameter (YYYY-MM-DD) bounds the calculation; transactions dated
// after it are ignored.
func (c *AccountController) GetBalance(ctx *gin.Context) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	accountID, ok := parseIDParam(ctx, "id", "Invalid account ID format")
	if !ok {
		return
	}

	var upTo *time.Time
	if raw := ctx.Query("up_to"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid date format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDateFormat),
			})
			return
		}
		upTo = &parsed
	}

	output, err := c.getBalanceUseCase.Execute(ctx.Request.Context(), account.GetBalanceInput{
		AccountID: accountID,
		UpTo:      upTo,
		Actor:     actor,
	})
	if err != nil {
		c.handleAccountError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBalanceResponse(output.Balance))
}

// handleAccountError maps account errors to HTTP responses. Book errors can
// surface here because account operations resolve the owning book first.
func (c *AccountController) handleAccountError(ctx *gin.Context, err error) {
	var authzErr *domainerror.AuthzError
	if errors.As(err, &authzErr) {
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error: authzErr.Reason,
		})
		return
	}

	var accountErr *domainerror.AccountError
	if errors.As(err, &accountErr) {
		statusCode := c.getStatusCodeForAccountError(accountErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: accountErr.Message,
			Code:  string(accountErr.Code),
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

// getStatusCodeForAccountError maps account error codes to HTTP status codes.
func (c *AccountController) getStatusCodeForAccountError(code domainerror.AccountErrorCode) int {
	switch code {
	case domainerror.ErrCodeAccountNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeAccountNameRequired,
		domainerror.ErrCodeInvalidAccountType,
		domainerror.ErrCodeInvalidDateFormat,
		domainerror.ErrCodeMissingAccountFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeAccountHasTransactions:
		return http.StatusPreconditionRequired
	default:
		return http.StatusInternalServerError
	}
}
