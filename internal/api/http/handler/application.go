package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Finure/app-gateway/internal/apperrors"
	"github.com/Finure/app-gateway/internal/model"
	"github.com/Finure/app-gateway/internal/validation"
)

const maxBodySize = 1 << 20

type ApplicationService interface {
	Submit(ctx context.Context, record model.ApplicationRecord) error
}

type ApplicationHandler struct {
	log *zap.Logger
	svc ApplicationService
}

func NewApplicationHandler(log *zap.Logger, svc ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		log: log,
		svc: svc,
	}
}

// Apply
// @Summary Submit a loan application.
// @Description Validates the form and publishes it to the applications topic, keyed by its id.
// @Description Returns once the broker has acknowledged the record.
// @Tags Applications
// @Accept json
// @Produce json
// @Param payload body model.ApplicationRecord true "Application form"
// @Success 200 {object} ResponseWithStatus "Accepted"
// @Failure 413 {object} ResponseWithMessage "Body too large"
// @Failure 422 {object} ResponseWithValidationDetail "Rejected fields"
// @Failure 500 {object} ResponseWithDetail "Broker error"
// @Router /apply [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	ctx := c.Request.Context()

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)

	body, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ResponseWithMessage{
				Status:  StatusErr,
				Message: "request body is too large",
			})

			return
		}

		c.JSON(http.StatusBadRequest, ResponseWithMessage{
			Status:  StatusErr,
			Message: "failed to read request body",
		})

		return
	}

	record, err := validation.DecodeApplication(body)
	if err != nil {
		var validationErr *apperrors.ValidationError
		if errors.As(err, &validationErr) {
			h.log.Debug("application rejected", zap.Error(err))

			c.JSON(apperrors.HTTPStatus(apperrors.KindValidation), ResponseWithValidationDetail{
				Detail: validationErr.Fields,
			})

			return
		}

		h.internalError(c, err)

		return
	}

	if err := h.svc.Submit(ctx, record); err != nil {
		if apperrors.KindOf(err) != apperrors.KindBroker {
			h.internalError(c, err)
			return
		}

		h.log.Error("failed to publish application", zap.String("id", record.ID.String()), zap.Error(err))

		c.JSON(apperrors.HTTPStatus(apperrors.KindBroker), ResponseWithDetail{
			Detail: "Broker error: " + err.Error(),
		})

		return
	}

	c.JSON(http.StatusOK, ResponseWithStatus{
		Status: StatusOK,
	})
}

func (h *ApplicationHandler) internalError(c *gin.Context, err error) {
	h.log.Error("failed to handle application", zap.Error(err))

	c.JSON(http.StatusInternalServerError, ResponseWithDetail{
		Detail: "Internal error: " + err.Error(),
	})
}
