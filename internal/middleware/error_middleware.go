package middleware

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/merts/countdown-rsvp/internal/app/models/dto"
	"github.com/merts/countdown-rsvp/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto the standard response envelope.
// Every taxonomy entry gets one generic user-facing message; raw internal
// error detail is never echoed back.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
		var custom *apperrors.CustomError
		if errors.As(err, &custom) {
			detail = detail.WithDetails(custom.Message)
			if field := custom.Field(); field != "" {
				detail = detail.WithField(field)
			}
		}
		c.JSON(400, dto.APIResponse{
			Error:     detail,
			Timestamp: time.Now(),
		})
		return
	case errors.Is(err, apperrors.ErrBadRequest):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request")
		var custom *apperrors.CustomError
		if errors.As(err, &custom) {
			detail = detail.WithDetails(custom.Message)
		}
		c.JSON(400, dto.APIResponse{
			Error:     detail,
			Timestamp: time.Now(),
		})
		return
	case errors.Is(err, apperrors.ErrSelfReferral):
		c.JSON(400, dto.APIResponse{
			Error:     dto.NewErrorDetail(dto.ErrorCodeSelfReferral, "You cannot use your own referral code").WithField("referredByCode"),
			Timestamp: time.Now(),
		})
		return
	case errors.Is(err, apperrors.ErrDuplicateContact):
		c.JSON(409, dto.APIResponse{
			Error:     dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "This contact is already registered").WithField("contact"),
			Timestamp: time.Now(),
		})
		return
	case errors.Is(err, apperrors.ErrParticipantNotFound), errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(404, dto.APIResponse{
			Error:     dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found"),
			Timestamp: time.Now(),
		})
		return
	case errors.Is(err, apperrors.ErrReferralCodeTaken), errors.Is(err, apperrors.ErrConflict):
		c.JSON(409, dto.APIResponse{
			Error:     dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Conflicting record, please try again"),
			Timestamp: time.Now(),
		})
		return
	default:
		// Storage failures and anything unclassified
		c.JSON(500, dto.APIResponse{
			Error:     dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Something went wrong, please try again"),
			Timestamp: time.Now(),
		})
		return
	}
}
