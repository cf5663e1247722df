package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"parseai/internal/domain"
	"parseai/internal/middleware"
)

// RespondError sends the backend's error body, {"error": msg}, with the given status.
func RespondError(c *gin.Context, status int, msg string) {
	c.JSON(status, domain.ErrorResponse{Error: msg})
}

// MapDomainError translates domain errors to an HTTP status and client message.
// A *domain.MessageError overrides the default message for its sentinel.
func MapDomainError(err error) (status int, msg string) {
	status, msg = mapSentinel(err)
	var me *domain.MessageError
	if status < http.StatusInternalServerError && errors.As(err, &me) {
		msg = me.Msg
	}
	return status, msg
}

func mapSentinel(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNoFileProvided):
		return http.StatusBadRequest, "No file provided"
	case errors.Is(err, domain.ErrNoFileSelected):
		return http.StatusBadRequest, "No file selected"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "Invalid file type"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "File exceeds maximum allowed size"
	case errors.Is(err, domain.ErrNoDocuments):
		return http.StatusBadRequest, "No documents provided"
	case errors.Is(err, domain.ErrNoDocument):
		return http.StatusBadRequest, "No document provided"
	case errors.Is(err, domain.ErrBillAndRecords):
		return http.StatusBadRequest, "Bill and medical records required"
	case errors.Is(err, domain.ErrTwoDocuments):
		return http.StatusBadRequest, "Two documents required"
	case errors.Is(err, domain.ErrInstructionsMissing):
		return http.StatusBadRequest, "Custom instructions are required"
	case errors.Is(err, domain.ErrInvalidCategory):
		return http.StatusBadRequest, "Invalid category"
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, "Invalid request body"
	case errors.Is(err, domain.ErrJobNotCompleted):
		return http.StatusBadRequest, "Analysis not completed"
	case errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound, "Document not found"
	case errors.Is(err, domain.ErrJobNotFound):
		return http.StatusNotFound, "Job not found"
	case errors.Is(err, domain.ErrCustomerNotFound):
		return http.StatusNotFound, "Customer not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "Upload failed"
	default:
		return http.StatusInternalServerError, "An internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, msg := MapDomainError(err)
	if status >= http.StatusInternalServerError {
		requestID, _ := c.Get(middleware.RequestIDKey)
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, msg)
}

func uploadResponse(doc *domain.Document) domain.UploadResponse {
	return domain.UploadResponse{
		DocumentID: doc.ID,
		FileName:   doc.FileName,
		FileSize:   doc.FileSize,
		UploadedAt: domain.NewTimestamp(doc.UploadedAt),
		Source:     string(doc.Source),
	}
}
