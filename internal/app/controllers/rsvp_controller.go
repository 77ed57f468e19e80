package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/merts/countdown-rsvp/internal/app/models/dto"
	"github.com/merts/countdown-rsvp/internal/app/services"
	"github.com/merts/countdown-rsvp/internal/middleware"
	"github.com/merts/countdown-rsvp/internal/pkg/poster"
)

// RSVPController handles RSVP intake and participant lookups
type RSVPController struct {
	rsvpService *services.RSVPService
	poster      *poster.Generator
}

// NewRSVPController creates a new RSVPController
func NewRSVPController(rsvpService *services.RSVPService, posterGen *poster.Generator) *RSVPController {
	return &RSVPController{
		rsvpService: rsvpService,
		poster:      posterGen,
	}
}

// CreateRSVP handles an RSVP form submission
// @Summary Submit an RSVP
// @Description Registers a participant for the event, generates their referral code and credits the referrer when a valid referral code is supplied
// @Tags rsvps
// @Accept json
// @Produce json
// @Param request body dto.CreateRSVPRequest true "RSVP form fields"
// @Success 201 {object} dto.APIResponse{data=dto.ParticipantResponse} "RSVP created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid form data or self-referral"
// @Failure 409 {object} dto.ErrorResponse "Contact already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /rsvps [post]
func (c *RSVPController) CreateRSVP(ctx *gin.Context) {
	var req dto.CreateRSVPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid RSVP data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	participant, err := c.rsvpService.CreateRSVP(ctx, services.CreateRSVPInput{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Contact:             req.Contact,
		Grade:               req.Grade,
		ReferrerName:        req.ReferrerName,
		DietaryRestrictions: req.DietaryRestrictions,
		ReferredByCode:      req.ReferredByCode,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.NewParticipantResponse(participant),
		Timestamp: time.Now(),
	})
}

// GetReferrer resolves a referral code to its owner's public profile
// @Summary Look up a referrer
// @Description Returns the public view of the participant owning a referral code, used to show "invited by" on the landing page
// @Tags participants
// @Accept json
// @Produce json
// @Param code path string true "Referral code"
// @Success 200 {object} dto.APIResponse{data=dto.ReferrerResponse} "Referrer found"
// @Failure 404 {object} dto.ErrorResponse "Unknown referral code"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /participants/{code} [get]
func (c *RSVPController) GetReferrer(ctx *gin.Context) {
	participant, err := c.rsvpService.GetByReferralCode(ctx, ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewReferrerResponse(participant),
		Timestamp: time.Now(),
	})
}

// GetPoster renders the share poster QR image for a referral code
// @Summary Download a share poster QR image
// @Description Returns a PNG QR code encoding the invite link for an existing referral code
// @Tags participants
// @Produce png
// @Param code path string true "Referral code"
// @Param size query int false "QR size in pixels" default(420)
// @Success 200 {file} file "PNG image"
// @Failure 404 {object} dto.ErrorResponse "Unknown referral code"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /participants/{code}/poster [get]
func (c *RSVPController) GetPoster(ctx *gin.Context) {
	// Only persisted codes get a poster
	participant, err := c.rsvpService.GetByReferralCode(ctx, ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	png, err := c.poster.RenderQR(participant.ReferralCode, posterSize(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+c.poster.FileName(participant.ReferralCode)+`"`)
	ctx.Data(http.StatusOK, "image/png", png)
}

// posterSize reads the size query param, falling back to the default on a
// missing or unparseable value
func posterSize(ctx *gin.Context) int {
	raw := ctx.Query("size")
	if raw == "" {
		return poster.DefaultQRSize
	}

	size, err := strconv.Atoi(raw)
	if err != nil {
		return poster.DefaultQRSize
	}
	return size
}
