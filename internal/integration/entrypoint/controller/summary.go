package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/ledger-api/internal/application/usecase/summary"
	domainerror "github.com/finance-tracker/ledger-api/internal/domain/error"
	"github.com/finance-tracker/ledger-api/internal/integration/entrypoint/dto"
)

// SummaryController handles the period summary endpoint.
type SummaryController struct {
	getSummaryUseCase *summary.GetSummaryUseCase
}

// NewSummaryController creates a new summary controller instance.
func NewSummaryController(getSummaryUseCase *summary.GetSummaryUseCase) *SummaryController {
	return &SummaryController{
		getSummaryUseCase: getSummaryUseCase,
	}
}

// Get handles GET /summary requests.
// Query parameters: from, to (yyyy-MM-dd, optional) and accountId (uuid, optional).
func (c *SummaryController) Get(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	accountID, err := parseAccountIDQuery(ctx)
	if err != nil {
		handleSummaryError(ctx, err)
		return
	}

	output, err := c.getSummaryUseCase.Execute(ctx.Request.Context(), summary.GetSummaryInput{
		UserID:    userID,
		From:      ctx.Query("from"),
		To:        ctx.Query("to"),
		AccountID: accountID,
	})
	if err != nil {
		handleSummaryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.ToSummaryResponse(output.Summary)))
}

// parseAccountIDQuery reads the optional accountId filter shared by the summary and transaction listing.
func parseAccountIDQuery(ctx *gin.Context) (*uuid.UUID, error) {
	raw := ctx.Query("accountId")
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domainerror.NewSummaryError(
			domainerror.ErrCodeSummaryInvalidAccountID,
			"accountId must be a valid UUID",
			errors.Join(domainerror.ErrInvalidAccountID, err),
		)
	}
	return &id, nil
}

// handleSummaryError maps summary domain errors to HTTP responses.
func handleSummaryError(ctx *gin.Context, err error) {
	var summaryErr *domainerror.SummaryError
	if errors.As(err, &summaryErr) {
		statusCode := getStatusCodeForSummaryError(summaryErr.Code)
		if statusCode >= http.StatusInternalServerError {
			slog.Error("Summary request failed", "code", summaryErr.Code, "error", err)
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: summaryErr.Message,
			Code:  string(summaryErr.Code),
		})
		return
	}

	slog.Error("Unexpected summary error", "error", err)
	respondInternalError(ctx)
}

// getStatusCodeForSummaryError returns the HTTP status code for a summary error code.
func getStatusCodeForSummaryError(code domainerror.SummaryErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidDateFormat,
		domainerror.ErrCodeInvalidRange,
		domainerror.ErrCodeSummaryInvalidAccountID:
		return http.StatusBadRequest
	case domainerror.ErrCodeStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
