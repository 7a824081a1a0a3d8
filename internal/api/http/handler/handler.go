package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Finure/app-gateway/internal/apperrors"
)

const (
	StatusErr          = "error"
	StatusSuccess      = "success"
	StatusNotAvailable = "not available"
	StatusOK           = "ok"
)

// ResponseWithMessage
// @Description Generic response carrying only a human readable message.
type ResponseWithMessage struct {
	Status  string `json:"status"`  // Request result
	Message string `json:"message"` // Human readable message
} // @Name _ResponseWithMessage

// ResponseWithStatus
// @Description Bare acknowledgment of an accepted request.
type ResponseWithStatus struct {
	Status string `json:"status" example:"ok"` // Always "ok"
} // @Name _ResponseWithStatus

// ResponseWithDetail
// @Description Failure described by a single message.
type ResponseWithDetail struct {
	Detail string `json:"detail" example:"Broker error: kafka: client has run out of available brokers to talk to"` // Failure description
} // @Name _ResponseWithDetail

// ResponseWithValidationDetail
// @Description Every rejected field of the request body.
type ResponseWithValidationDetail struct {
	Detail []apperrors.FieldError `json:"detail"` // One entry per rejected field
} // @Name _ResponseWithValidationDetail

func NoMethod(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, ResponseWithMessage{
		Status:  StatusNotAvailable,
		Message: "method not allowed on this endpoint",
	})
}

func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, ResponseWithMessage{
		Status:  StatusNotAvailable,
		Message: "page not found",
	})
}
