package handlers

import (
	stderrors "errors"
	"net/http"

	"ledgerview/internal/dto"
	"ledgerview/internal/errors"
	"ledgerview/internal/ledger"
	"ledgerview/internal/services"

	"github.com/labstack/echo/v4"
)

// UploadHandler handles the CSV bulk-upload pipeline: preview, submit, and
// batch inspection
type UploadHandler struct {
	ingest         services.IngestServiceInterface
	maxUploadBytes int64
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(ingest services.IngestServiceInterface, maxUploadBytes int64) *UploadHandler {
	return &UploadHandler{
		ingest:         ingest,
		maxUploadBytes: maxUploadBytes,
	}
}

// PreviewUpload parses a CSV file and stores the candidate batch
// @Summary Preview CSV upload
// @Description Parse and validate a CSV of transactions for one account; validation is all-or-nothing
// @Tags Uploads
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param accountId path int true "Account ID"
// @Param file formData file true "CSV file with amount, description, category, currency columns"
// @Success 201 {object} dto.PreviewResponse "Previewed batch awaiting confirmation"
// @Failure 400 {object} errors.ErrorResponse "UPLOAD_001..003 - Rejected file"
// @Failure 422 {object} errors.ErrorResponse "UPLOAD_004 - Rejected rows"
// @Router /accounts/{accountId}/uploads [post]
func (h *UploadHandler) PreviewUpload(c echo.Context) error {
	accountID, err := getAccountIDParam(c)
	if err != nil {
		return SendError(c, errors.AccountInvalidID)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return SendError(c, errors.ValidationRequiredField, errors.WithDetails("file is required"))
	}

	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("file exceeds the upload size limit"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return SendSystemError(c, err)
	}
	defer file.Close()

	result, err := h.ingest.PreviewUpload(c.Request().Context(), accountID, fileHeader.Filename, file)
	if err != nil {
		return h.sendIngestError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.NewPreviewResponse(result))
}

// SubmitBatch replays a previewed batch against the backend
// @Summary Submit upload batch
// @Description Submit a previewed batch strictly sequentially in file order; stops at the first backend rejection
// @Tags Uploads
// @Security BearerAuth
// @Produce json
// @Param batchId path string true "Batch ID"
// @Success 200 {object} dto.SubmitResponse "All records committed"
// @Failure 404 {object} errors.ErrorResponse "UPLOAD_005 - Batch not found"
// @Failure 409 {object} errors.ErrorResponse "UPLOAD_006 - Batch already submitted"
// @Failure 422 {object} dto.SubmitResponse "Partial failure: committed, failed, and skipped row indices"
// @Router /uploads/{batchId}/submit [post]
func (h *UploadHandler) SubmitBatch(c echo.Context) error {
	batchID := c.Param("batchId")

	result, err := h.ingest.SubmitBatch(c.Request().Context(), batchID)
	if err != nil {
		if stderrors.Is(err, ledger.ErrBatchNotFound) {
			return SendError(c, errors.UploadBatchNotFound)
		}
		if stderrors.Is(err, ledger.ErrBatchNotPending) {
			return SendError(c, errors.UploadBatchNotPending)
		}
		return SendSystemError(c, err)
	}

	response := dto.NewSubmitResponse(result)

	// A mid-batch rejection is not a plain error: rows before the failure
	// are committed upstream and stay committed. The structured body tells
	// the client exactly which rows landed, which failed, and which were
	// never sent.
	if result.FailedIndex >= 0 {
		return c.JSON(http.StatusUnprocessableEntity, response)
	}

	return c.JSON(http.StatusOK, response)
}

// GetBatch retrieves one batch with its per-record outcome
// @Summary Get upload batch
// @Description Fetch a batch and the status of every record in it
// @Tags Uploads
// @Security BearerAuth
// @Produce json
// @Param batchId path string true "Batch ID"
// @Success 200 {object} dto.BatchDetailResponse "Batch with records"
// @Failure 404 {object} errors.ErrorResponse "UPLOAD_005 - Batch not found"
// @Router /uploads/{batchId} [get]
func (h *UploadHandler) GetBatch(c echo.Context) error {
	batchID := c.Param("batchId")

	batch, err := h.ingest.GetBatch(batchID)
	if err != nil {
		if stderrors.Is(err, ledger.ErrBatchNotFound) {
			return SendError(c, errors.UploadBatchNotFound)
		}
		return SendSystemError(c, err)
	}

	records := make([]dto.UploadRecordView, 0, len(batch.Records))
	for _, record := range batch.Records {
		records = append(records, dto.NewUploadRecordView(record))
	}

	return c.JSON(http.StatusOK, dto.BatchDetailResponse{
		BatchSummary: dto.NewBatchSummary(batch),
		Records:      records,
	})
}

// ListBatches lists recent upload batches
// @Summary List upload batches
// @Description List recent batches, optionally scoped to one account
// @Tags Uploads
// @Security BearerAuth
// @Produce json
// @Param account_id query int false "Scope to one account"
// @Param limit query int false "Number of batches" default(20)
// @Success 200 {object} dto.ListBatchesResponse "Recent batches"
// @Router /uploads [get]
func (h *UploadHandler) ListBatches(c echo.Context) error {
	accountID := getInt64Param(c, "account_id", 0)
	limit := getIntParam(c, "limit", 20)

	batches, err := h.ingest.ListBatches(accountID, limit)
	if err != nil {
		return SendSystemError(c, err)
	}

	summaries := make([]dto.BatchSummary, 0, len(batches))
	for i := range batches {
		summaries = append(summaries, dto.NewBatchSummary(&batches[i]))
	}

	return c.JSON(http.StatusOK, dto.ListBatchesResponse{Batches: summaries})
}

// sendIngestError maps pipeline rejection errors onto UPLOAD_* codes
func (h *UploadHandler) sendIngestError(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, services.ErrNotCSV):
		return SendError(c, errors.UploadNotCSV)
	case stderrors.Is(err, services.ErrEmptyFile):
		return SendError(c, errors.UploadEmptyFile)
	case stderrors.Is(err, services.ErrSchemaMismatch):
		return SendError(c, errors.UploadSchemaMismatch)
	}

	var batchErr *services.BatchValidationError
	if stderrors.As(err, &batchErr) {
		details := make([]string, 0, len(batchErr.RowErrors))
		for _, rowErr := range batchErr.RowErrors {
			details = append(details, rowErr.Error())
		}
		return SendError(c, errors.UploadBatchRejected, errors.WithDetails(details...))
	}

	return SendSystemError(c, err)
}
