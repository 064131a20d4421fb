package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yourusername/invoice-api/apierr"
	"github.com/yourusername/invoice-api/models"
	"github.com/yourusername/invoice-api/services"
	"github.com/yourusername/invoice-api/utils"
)

type InvoiceHandler struct {
	service *services.InvoiceService
}

func NewInvoiceHandler(service *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	var draft models.InvoiceDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.Error(bindError(err))
		c.Abort()
		return
	}

	inv, err := h.service.Create(c.Request.Context(), &draft)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusCreated, utils.OK(inv, "invoice created"))
}

func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	inv, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, utils.OK(inv, "invoice fetched"))
}

func (h *InvoiceHandler) Search(c *gin.Context) {
	invoices, err := h.service.SearchByClient(c.Request.Context(), c.Query("client"))
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, utils.OK(invoices, "search completed"))
}

func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		c.Abort()
		return
	}

	inv, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, utils.OK(inv, "invoice status updated"))
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apierr.WithError(err).
			WithHintf("invalid invoice id %q", raw).
			Mark(apierr.ErrBadRequest)
	}
	return uint(id), nil
}

// bindError turns a request-body binding failure into a BadRequest with the
// collected per-field messages.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fmt.Sprintf("%s failed on the %s rule", fe.Field(), fe.Tag()))
		}
		return apierr.WithError(err).
			WithHint("invalid request body").
			WithDetails(details).
			Mark(apierr.ErrBadRequest)
	}
	return apierr.WithError(err).
		WithHint("invalid request body").
		Mark(apierr.ErrBadRequest)
}
