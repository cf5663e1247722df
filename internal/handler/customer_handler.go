package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"parseai/internal/domain"
	"parseai/internal/service"
)

// CustomerHandler serves the customer directory and customer documents.
type CustomerHandler struct {
	customerService service.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles GET /customers
// @Summary List customers
// @Tags customers
// @Produce json
// @Success 200 {object} domain.CustomersResponse
// @Router /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customerService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.CustomersResponse{Customers: customers, Count: len(customers)})
}

// Get handles GET /customers/:id
// @Summary Get a customer
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} domain.Customer
// @Failure 404 {object} domain.ErrorResponse "Customer not found"
// @Router /customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	id := c.Param("id")
	customer, err := h.customerService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleCustomerError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// Documents handles GET /customers/:id/documents
// @Summary List a customer's documents
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} domain.CustomerDocumentsResponse
// @Failure 404 {object} domain.ErrorResponse "Customer not found"
// @Router /customers/{id}/documents [get]
func (h *CustomerHandler) Documents(c *gin.Context) {
	id := c.Param("id")
	resp, err := h.customerService.Documents(c.Request.Context(), id)
	if err != nil {
		h.handleCustomerError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Download handles GET /customers/:id/documents/*blobPath where the path ends in /download.
// @Summary Import a customer document
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Param blobPath path string true "Blob path relative to the customer directory"
// @Success 200 {object} domain.UploadResponse
// @Failure 404 {object} domain.ErrorResponse "Customer or document not found"
// @Router /customers/{id}/documents/{blobPath}/download [get]
func (h *CustomerHandler) Download(c *gin.Context) {
	id := c.Param("id")
	blobPath, ok := downloadTarget(c.Param("blobPath"))
	if !ok {
		RespondError(c, http.StatusNotFound, "Not found")
		return
	}

	doc, err := h.customerService.DownloadDocument(c.Request.Context(), id, blobPath)
	if err != nil {
		h.handleCustomerError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, uploadResponse(doc))
}

func (h *CustomerHandler) handleCustomerError(c *gin.Context, id string, err error) {
	if errors.Is(err, domain.ErrCustomerNotFound) {
		err = domain.WithMessage(domain.ErrCustomerNotFound, "Customer %s not found", id)
	}
	HandleError(c, err)
}
