package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/ledger-api/internal/application/usecase/transaction"
	domainerror "github.com/finance-tracker/ledger-api/internal/domain/error"
	"github.com/finance-tracker/ledger-api/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase       *transaction.ListTransactionsUseCase
	getUseCase        *transaction.GetTransactionUseCase
	createUseCase     *transaction.CreateTransactionUseCase
	bulkCreateUseCase *transaction.BulkCreateTransactionsUseCase
	updateUseCase     *transaction.UpdateTransactionUseCase
	deleteUseCase     *transaction.DeleteTransactionsUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	getUseCase *transaction.GetTransactionUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	bulkCreateUseCase *transaction.BulkCreateTransactionsUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionsUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:       listUseCase,
		getUseCase:        getUseCase,
		createUseCase:     createUseCase,
		bulkCreateUseCase: bulkCreateUseCase,
		updateUseCase:     updateUseCase,
		deleteUseCase:     deleteUseCase,
	}
}

// List handles GET /transactions requests.
// It accepts the same from, to and accountId filters as the summary.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	accountID, err := parseAccountIDQuery(ctx)
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsInput{
		UserID:    userID,
		From:      ctx.Query("from"),
		To:        ctx.Query("to"),
		AccountID: accountID,
	})
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.ToTransactionListResponse(output.Transactions)))
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	transactionID, ok := parseTransactionIDParam(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), transaction.GetTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.ToTransactionResponse(output.Transaction)))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidTransactionBody(ctx, err)
		return
	}

	draft, err := req.ToDraft()
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
		UserID:           userID,
		TransactionDraft: draft,
	})
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(dto.ToTransactionResponse(output.Transaction)))
}

// BulkCreate handles POST /transactions/bulk-create requests.
// The body is a JSON array of transactions; all of them are stored or none.
func (c *TransactionController) BulkCreate(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req []dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidTransactionBody(ctx, err)
		return
	}

	drafts := make([]transaction.TransactionDraft, 0, len(req))
	for _, item := range req {
		draft, err := item.ToDraft()
		if err != nil {
			handleTransactionError(ctx, err)
			return
		}
		drafts = append(drafts, draft)
	}

	output, err := c.bulkCreateUseCase.Execute(ctx.Request.Context(), transaction.BulkCreateTransactionsInput{
		UserID: userID,
		Drafts: drafts,
	})
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(dto.ToTransactionResponses(output.Transactions)))
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	transactionID, ok := parseTransactionIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidTransactionBody(ctx, err)
		return
	}

	input, err := req.ToInput(transactionID, userID)
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.ToTransactionResponse(output.Transaction)))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	transactionID, ok := parseTransactionIDParam(ctx)
	if !ok {
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionsInput{
		TransactionIDs: []uuid.UUID{transactionID},
		UserID:         userID,
	})
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.IDResponse{ID: output.DeletedIDs[0].String()}))
}

// BulkDelete handles POST /transactions/bulk-delete requests.
func (c *TransactionController) BulkDelete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.BulkDeleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidTransactionBody(ctx, err)
		return
	}

	ids, err := req.ParseIDs()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID format",
			Code:  string(domainerror.ErrCodeInvalidTransactionID),
		})
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionsInput{
		TransactionIDs: ids,
		UserID:         userID,
	})
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.ToIDResponses(output.DeletedIDs)))
}

func parseTransactionIDParam(ctx *gin.Context) (uuid.UUID, bool) {
	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID format",
			Code:  string(domainerror.ErrCodeInvalidTransactionID),
		})
		return uuid.Nil, false
	}
	return transactionID, true
}

func respondInvalidTransactionBody(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request body",
		Code:    string(domainerror.ErrCodeMissingTransactionFields),
		Details: err.Error(),
	})
}

// handleTransactionError maps transaction domain errors to HTTP responses.
// Range and storage failures from the listing carry summary codes.
func handleTransactionError(ctx *gin.Context, err error) {
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		ctx.JSON(getStatusCodeForTransactionError(txnErr.Code), dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}

	var summaryErr *domainerror.SummaryError
	if errors.As(err, &summaryErr) {
		handleSummaryError(ctx, err)
		return
	}

	respondInternalError(ctx)
}

// getStatusCodeForTransactionError returns the HTTP status code for a transaction error code.
func getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodePayeeRequired,
		domainerror.ErrCodePayeeTooLong,
		domainerror.ErrCodeNotesTooLong,
		domainerror.ErrCodeEmptyTransactionIDs,
		domainerror.ErrCodeEmptyTransactionBatch,
		domainerror.ErrCodeInvalidTransactionID,
		domainerror.ErrCodeMissingTransactionFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeTxnAccountNotOwned,
		domainerror.ErrCodeTxnCategoryNotOwned:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
