package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/SscSPs/settlement_ledger/internal/dto"
	"github.com/SscSPs/settlement_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// postingHandler posts source documents to the general ledger.
type postingHandler struct {
	invoicePoster portssvc.InvoicePosterSvc
	paymentPoster portssvc.PaymentPosterSvc
}

func newPostingHandler(invoicePoster portssvc.InvoicePosterSvc, paymentPoster portssvc.PaymentPosterSvc) *postingHandler {
	return &postingHandler{invoicePoster: invoicePoster, paymentPoster: paymentPoster}
}

func registerPostingRoutes(rg *gin.RouterGroup, invoicePoster portssvc.InvoicePosterSvc, paymentPoster portssvc.PaymentPosterSvc) {
	h := newPostingHandler(invoicePoster, paymentPoster)
	post := middleware.RequireScope(middleware.ScopePost)

	rg.POST("/invoices/:invoiceID/post", post, h.postInvoice)
	rg.POST("/payments/:paymentID/post", post, h.postPayment)
}

// postInvoice godoc
// @Summary Post an invoice to the general ledger
// @Description Creates the invoice's journal entry. Posting an already posted invoice returns the existing entry with created=false.
// @Tags posting
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Success 201 {object} dto.PostInvoiceResponse "Entry created"
// @Success 200 {object} dto.PostInvoiceResponse "Invoice was already posted"
// @Failure 400 {object} map[string]string "Invoice cannot be posted"
// @Failure 403 {object} map[string]string "Posting not approved"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 422 {object} map[string]string "Fiscal period closed"
// @Failure 503 {object} map[string]string "Exchange rate unavailable"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/post [post]
func (h *postingHandler) postInvoice(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	invoiceID := c.Param("invoiceID")

	entry, created, err := h.invoicePoster.PostInvoiceToGL(c.Request.Context(), invoiceID, actor)
	if err != nil {
		respondError(c, err, "Failed to post invoice")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Invoice posted",
		slog.String("invoice_id", invoiceID), slog.String("journal_id", entry.EntryID), slog.Bool("created", created))
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.PostInvoiceResponse{Created: created, Entry: dto.ToJournalEntryResponse(entry)})
}

// postPayment godoc
// @Summary Post a payment to the general ledger
// @Description Creates the payment's journal entry including realized FX gain or loss and updates invoice payment status.
// @Tags posting
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Success 201 {object} dto.PostPaymentResponse "Entry created"
// @Success 200 {object} dto.PostPaymentResponse "Payment was already posted"
// @Failure 400 {object} map[string]string "Invalid allocations"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 422 {object} map[string]string "Fiscal period closed"
// @Failure 503 {object} map[string]string "Exchange rate unavailable"
// @Security BearerAuth
// @Router /payments/{paymentID}/post [post]
func (h *postingHandler) postPayment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	paymentID := c.Param("paymentID")

	result, err := h.paymentPoster.PostPaymentToGL(c.Request.Context(), paymentID, actor)
	if err != nil {
		respondError(c, err, "Failed to post payment")
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.ToPostPaymentResponse(result))
}
