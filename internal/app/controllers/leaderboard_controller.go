package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/merts/countdown-rsvp/internal/app/models/dto"
	"github.com/merts/countdown-rsvp/internal/app/services"
	"github.com/merts/countdown-rsvp/internal/middleware"
	"github.com/merts/countdown-rsvp/internal/pkg/apperrors"
)

// LeaderboardController handles the read-only queries polled by the landing page
type LeaderboardController struct {
	leaderboardService *services.LeaderboardService
}

// NewLeaderboardController creates a new LeaderboardController
func NewLeaderboardController(leaderboardService *services.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{
		leaderboardService: leaderboardService,
	}
}

// GetLeaderboard retrieves the top referrers
// @Summary Get the referral leaderboard
// @Description Retrieves up to N participants ordered by recruit count descending, earliest signup first among ties
// @Tags leaderboard
// @Accept json
// @Produce json
// @Param limit query int false "Maximum number of entries" default(10)
// @Success 200 {object} dto.APIResponse{data=[]dto.LeaderboardEntryResponse} "Leaderboard retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid limit parameter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /leaderboard [get]
func (c *LeaderboardController) GetLeaderboard(ctx *gin.Context) {
	limit := 0
	if limitStr := ctx.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Limit must be a positive number"))
			return
		}
		limit = parsed
	}

	participants, err := c.leaderboardService.ListTopReferrers(ctx, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewLeaderboardResponse(participants),
		Timestamp: time.Now(),
	})
}

// GetParticipantCount retrieves the total number of RSVPs
// @Summary Get total participant count
// @Description Returns the total number of participants who have RSVPed
// @Tags leaderboard
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ParticipantCountResponse} "Count retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /participants/count [get]
func (c *LeaderboardController) GetParticipantCount(ctx *gin.Context) {
	count, err := c.leaderboardService.CountParticipants(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.ParticipantCountResponse{Count: count},
		Timestamp: time.Now(),
	})
}
