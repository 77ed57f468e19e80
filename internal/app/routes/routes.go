package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/merts/countdown-rsvp/internal/app/controllers"
	"github.com/merts/countdown-rsvp/internal/app/models/dto"
)

// SetupRouter configures all application routes. Every route is public: the
// write capability is deliberately anonymous and scoped to a single insert
// plus the referrer counter update it triggers.
func SetupRouter(
	router *gin.Engine,
	rsvpController *controllers.RSVPController,
	leaderboardController *controllers.LeaderboardController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// RSVP intake
	rsvps := v1.Group("/rsvps")
	{
		rsvps.POST("", rsvpController.CreateRSVP)
	}

	// Participant lookups for the landing page
	participants := v1.Group("/participants")
	{
		participants.GET("/count", leaderboardController.GetParticipantCount)
		participants.GET("/:code", rsvpController.GetReferrer)
		participants.GET("/:code/poster", rsvpController.GetPoster)
	}

	// Leaderboard, polled by the landing page
	v1.GET("/leaderboard", leaderboardController.GetLeaderboard)

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data:      gin.H{"status": "ok"},
			Timestamp: time.Now(),
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
