package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"travelplanner/internal/models/request_models"
	"travelplanner/internal/models/response_models"
	"travelplanner/internal/services"
	"travelplanner/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PlannerController struct {
	dialogueService services.DialogueServiceInterface
	exportService   services.ExportServiceInterface
	logger          *zap.Logger
}

func NewPlannerController(
	dialogueService services.DialogueServiceInterface,
	exportService services.ExportServiceInterface,
	logger *zap.Logger,
) *PlannerController {
	return &PlannerController{
		dialogueService: dialogueService,
		exportService:   exportService,
		logger:          logger,
	}
}

// POST /api/chat
func (pc *PlannerController) ChatHandler(c *gin.Context) {
	var req request_models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		utils.HandleServiceError(c, pc.logger, utils.ErrInvalidInput)
		return
	}

	reply := pc.dialogueService.HandleTurn(c.Request.Context(), req.Message)

	utils.RespondSuccess(c, response_models.ChatResponse{
		Reply:    reply,
		Profile:  pc.dialogueService.Profile(),
		NextSlot: pc.dialogueService.NextSlot(),
	}, "Message processed")
}

// GET /api/chat/history
func (pc *PlannerController) HistoryHandler(c *gin.Context) {
	utils.RespondSuccess(c, response_models.HistoryResponse{
		Messages: pc.dialogueService.History(),
	}, "Fetched conversation successfully")
}

// GET /api/profile
func (pc *PlannerController) ProfileHandler(c *gin.Context) {
	utils.RespondSuccess(c, pc.dialogueService.Profile(), "Fetched profile successfully")
}

// POST /api/chat/reset
func (pc *PlannerController) ResetHandler(c *gin.Context) {
	pc.dialogueService.Reset()
	utils.RespondSuccess(c, response_models.HistoryResponse{
		Messages: pc.dialogueService.History(),
	}, "Conversation reset")
}

// GET /api/itinerary/export?format=txt|ics
func (pc *PlannerController) ExportHandler(c *gin.Context) {
	var query request_models.ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query")
		return
	}

	itinerary, err := pc.dialogueService.Itinerary()
	if err != nil {
		utils.HandleServiceError(c, pc.logger, err)
		return
	}

	export, err := pc.exportService.Export(itinerary, query.Format)
	if err != nil {
		utils.HandleServiceError(c, pc.logger, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	c.Data(http.StatusOK, export.ContentType, export.Body)
}
