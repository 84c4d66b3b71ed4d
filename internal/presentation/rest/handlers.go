package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerline/credit-engine/internal/application/dto"
	"github.com/ledgerline/credit-engine/internal/application/usecase"
	"github.com/ledgerline/credit-engine/internal/domain/port"
)

// CreditHandler exposes the engine's operations over HTTP.
type CreditHandler struct {
	submitApp   *usecase.SubmitApplicationUseCase
	eligibility *usecase.ComputeEligibilityUseCase
	disburse    *usecase.DisburseLoanUseCase
	payment     *usecase.RecordPaymentUseCase
	refresh     *usecase.RefreshCreditScoreUseCase
	limit       *usecase.ComputeCreditLimitUseCase
	sweep       *usecase.RunDelinquencySweepUseCase
	appRepo     port.LoanApplicationRepository
	loanRepo    port.LoanRepository
	paymentRepo port.PaymentRepository
}

// NewCreditHandler creates a handler with all use-case dependencies.
func NewCreditHandler(
	submitApp *usecase.SubmitApplicationUseCase,
	eligibility *usecase.ComputeEligibilityUseCase,
	disburse *usecase.DisburseLoanUseCase,
	payment *usecase.RecordPaymentUseCase,
	refresh *usecase.RefreshCreditScoreUseCase,
	limit *usecase.ComputeCreditLimitUseCase,
	sweep *usecase.RunDelinquencySweepUseCase,
	appRepo port.LoanApplicationRepository,
	loanRepo port.LoanRepository,
	paymentRepo port.PaymentRepository,
) *CreditHandler {
	return &CreditHandler{
		submitApp:   submitApp,
		eligibility: eligibility,
		disburse:    disburse,
		payment:     payment,
		refresh:     refresh,
		limit:       limit,
		sweep:       sweep,
		appRepo:     appRepo,
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
	}
}

func (h *CreditHandler) submitApplication(c *gin.Context) {
	var req dto.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := h.submitApp.Execute(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CreditHandler) getApplication(c *gin.Context) {
	app, err := h.appRepo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, applicationView(app))
}

func (h *CreditHandler) computeEligibility(c *gin.Context) {
	resp, err := h.eligibility.Execute(c.Request.Context(), dto.ComputeEligibilityRequest{
		ApplicationID: c.Param("id"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CreditHandler) disburseLoan(c *gin.Context) {
	var req dto.DisburseLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ApplicationID = c.Param("id")
	resp, err := h.disburse.Execute(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CreditHandler) recordPayment(c *gin.Context) {
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.LoanID = c.Param("id")
	resp, err := h.payment.Execute(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CreditHandler) getLoan(c *gin.Context) {
	loan, err := h.loanRepo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, loanView(loan))
}

func (h *CreditHandler) listLoanPayments(c *gin.Context) {
	payments, err := h.paymentRepo.ListByLoanID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	views := make([]gin.H, 0, len(payments))
	for _, p := range payments {
		views = append(views, gin.H{
			"payment_id":     p.ID(),
			"loan_id":        p.LoanID(),
			"amount":         p.Amount(),
			"late_fee":       p.LateFee(),
			"payment_date":   p.PaymentDate(),
			"due_date":       p.DueDate(),
			"days_late":      p.DaysLate(),
			"status":         p.Status().String(),
			"receipt_number": p.ReceiptNumber(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"payments": views})
}

func (h *CreditHandler) refreshCreditScore(c *gin.Context) {
	resp, err := h.refresh.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CreditHandler) getCreditLimit(c *gin.Context) {
	resp, err := h.limit.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CreditHandler) runDelinquencySweep(c *gin.Context) {
	resp, err := h.sweep.Execute(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// writeError maps the domain error taxonomy to HTTP status codes.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, port.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, port.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, port.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
