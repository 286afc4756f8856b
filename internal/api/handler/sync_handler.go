package handler

import (
	"github.com/gin-gonic/gin"

	"awesome-index/internal/dto"
	"awesome-index/internal/service"
	"awesome-index/pkg/constants"
	"awesome-index/pkg/responses"
	"awesome-index/pkg/utils"
)

type SyncHandler struct {
	syncService service.SyncService
}

func NewSyncHandler(syncService service.SyncService) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
	}
}

// Trigger starts a manual ingestion run. A run already in flight yields
// started=false with the reason, not an error.
func (h *SyncHandler) Trigger(c *gin.Context) {
	result, err := h.syncService.Trigger(constants.SyncTriggerManual, c.GetString("username"))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, result)
}

// Stop requests a cooperative stop of the running ingestion run.
func (h *SyncHandler) Stop(c *gin.Context) {
	if err := h.syncService.Stop(); err != nil {
		responses.Error(c, err)
		return
	}

	responses.SuccessWithMessage(c, constants.StopMessage, nil)
}

// Status returns the latest run and its per-registry log.
func (h *SyncHandler) Status(c *gin.Context) {
	status, err := h.syncService.Status()
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, status)
}

// History lists recent runs, newest first.
func (h *SyncHandler) History(c *gin.Context) {
	var query dto.SyncHistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.ErrorWithDetail(c, responses.CodeBadRequest, "invalid query parameters", utils.FormatValidationError(err))
		return
	}

	history, err := h.syncService.History(query.Limit)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, history)
}
