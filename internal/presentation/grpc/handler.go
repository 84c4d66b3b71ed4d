package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ledgerline/credit-engine/internal/application/dto"
	"github.com/ledgerline/credit-engine/internal/application/usecase"
	"github.com/ledgerline/credit-engine/internal/domain/port"
)

// CreditHandler implements CreditServiceServer on top of the use cases.
type CreditHandler struct {
	UnimplementedCreditServiceServer

	submitApp   *usecase.SubmitApplicationUseCase
	eligibility *usecase.ComputeEligibilityUseCase
	disburse    *usecase.DisburseLoanUseCase
	payment     *usecase.RecordPaymentUseCase
	refresh     *usecase.RefreshCreditScoreUseCase
	limit       *usecase.ComputeCreditLimitUseCase
	sweep       *usecase.RunDelinquencySweepUseCase
}

// NewCreditHandler creates a new handler with all use-case dependencies.
func NewCreditHandler(
	submitApp *usecase.SubmitApplicationUseCase,
	eligibility *usecase.ComputeEligibilityUseCase,
	disburse *usecase.DisburseLoanUseCase,
	payment *usecase.RecordPaymentUseCase,
	refresh *usecase.RefreshCreditScoreUseCase,
	limit *usecase.ComputeCreditLimitUseCase,
	sweep *usecase.RunDelinquencySweepUseCase,
) *CreditHandler {
	return &CreditHandler{
		submitApp:   submitApp,
		eligibility: eligibility,
		disburse:    disburse,
		payment:     payment,
		refresh:     refresh,
		limit:       limit,
		sweep:       sweep,
	}
}

// SubmitApplication handles a new loan application submission.
func (h *CreditHandler) SubmitApplication(ctx context.Context, req *SubmitApplicationRequest) (*ApplicationReply, error) {
	amount, err := parseDecimal(req.RequestedAmount, "requested_amount")
	if err != nil {
		return nil, err
	}
	collateral, err := parseOptionalDecimal(req.CollateralValue, "collateral_value")
	if err != nil {
		return nil, err
	}
	rate, err := parseOptionalDecimal(req.InterestRatePercent, "interest_rate_percent")
	if err != nil {
		return nil, err
	}
	penaltyRate, err := parseOptionalDecimal(req.PenaltyRatePercent, "penalty_rate_percent")
	if err != nil {
		return nil, err
	}
	penaltyFlat, err := parseOptionalDecimal(req.PenaltyFlat, "penalty_flat")
	if err != nil {
		return nil, err
	}

	resp, err := h.submitApp.Execute(ctx, dto.SubmitApplicationRequest{
		BorrowerID:          req.BorrowerID,
		RequestedAmount:     amount,
		CollateralValue:     collateral,
		HasCollateral:       req.HasCollateral,
		Purpose:             req.Purpose,
		TermMonths:          req.TermMonths,
		InterestRatePercent: rate,
		InterestType:        req.InterestType,
		GracePeriodDays:     req.GracePeriodDays,
		PenaltyRatePercent:  penaltyRate,
		PenaltyFlat:         penaltyFlat,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return applicationReply(resp), nil
}

// ComputeEligibility re-evaluates an application.
func (h *CreditHandler) ComputeEligibility(ctx context.Context, req *ComputeEligibilityRequest) (*ApplicationReply, error) {
	resp, err := h.eligibility.Execute(ctx, dto.ComputeEligibilityRequest{
		ApplicationID: req.ApplicationID,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return applicationReply(resp), nil
}

// DisburseLoan disburses an approved application.
func (h *CreditHandler) DisburseLoan(ctx context.Context, req *DisburseLoanRequest) (*LoanReply, error) {
	resp, err := h.disburse.Execute(ctx, dto.DisburseLoanRequest{
		ApplicationID:      req.ApplicationID,
		DisbursementMethod: req.DisbursementMethod,
		Reference:          req.Reference,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &LoanReply{
		ID:                 resp.ID,
		ApplicationID:      resp.ApplicationID,
		BorrowerID:         resp.BorrowerID,
		Principal:          resp.Principal.String(),
		MonthlyPayment:     resp.MonthlyPayment.String(),
		TotalAmount:        resp.TotalAmount.String(),
		OutstandingBalance: resp.OutstandingBalance.String(),
		Status:             resp.Status,
		ReceiptNumber:      resp.ReceiptNumber,
	}, nil
}

// RecordPayment applies a payment to a loan.
func (h *CreditHandler) RecordPayment(ctx context.Context, req *RecordPaymentRequest) (*PaymentReply, error) {
	amount, err := parseDecimal(req.Amount, "amount")
	if err != nil {
		return nil, err
	}
	var paymentDate time.Time
	if req.PaymentDate != "" {
		paymentDate, err = time.Parse(time.RFC3339, req.PaymentDate)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid payment_date: %v", err)
		}
	}

	resp, err := h.payment.Execute(ctx, dto.RecordPaymentRequest{
		LoanID:      req.LoanID,
		Amount:      amount,
		PaymentDate: paymentDate,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &PaymentReply{
		PaymentID:          resp.PaymentID,
		LoanID:             resp.LoanID,
		LateFee:            resp.LateFee.String(),
		DaysLate:           resp.DaysLate,
		Status:             resp.Status,
		ReceiptNumber:      resp.ReceiptNumber,
		OutstandingBalance: resp.OutstandingBalance.String(),
		LoanStatus:         resp.LoanStatus,
	}, nil
}

// RefreshCreditScore recomputes a borrower's score.
func (h *CreditHandler) RefreshCreditScore(ctx context.Context, req *RefreshCreditScoreRequest) (*CreditScoreReply, error) {
	resp, err := h.refresh.Execute(ctx, req.BorrowerID)
	if err != nil {
		return nil, mapError(err)
	}
	return &CreditScoreReply{BorrowerID: resp.BorrowerID, Score: resp.Score}, nil
}

// GetCreditLimit reports a borrower's credit ceiling.
func (h *CreditHandler) GetCreditLimit(ctx context.Context, req *GetCreditLimitRequest) (*CreditLimitReply, error) {
	resp, err := h.limit.Execute(ctx, req.BorrowerID)
	if err != nil {
		return nil, mapError(err)
	}
	return &CreditLimitReply{
		BorrowerID:      resp.BorrowerID,
		MaxCredit:       resp.MaxCredit.String(),
		AvailableCredit: resp.AvailableCredit.String(),
	}, nil
}

// RunDelinquencySweep runs one sweep pass.
func (h *CreditHandler) RunDelinquencySweep(ctx context.Context, _ *RunDelinquencySweepRequest) (*SweepReply, error) {
	summary, err := h.sweep.Execute(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return &SweepReply{
		LoansScanned:      summary.LoansScanned,
		PenaltiesApplied:  summary.PenaltiesApplied,
		NotificationsSent: summary.NotificationsSent,
		CasesOpened:       summary.CasesOpened,
		LoansDefaulted:    summary.LoansDefaulted,
		Errors:            summary.Errors,
	}, nil
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func applicationReply(resp dto.ApplicationResponse) *ApplicationReply {
	return &ApplicationReply{
		ID:                resp.ID,
		BorrowerID:        resp.BorrowerID,
		Status:            resp.Status,
		CreditScore:       resp.CreditScore,
		EligibilityStatus: resp.EligibilityStatus,
		EligibilityScore:  resp.EligibilityScore,
		RiskTier:          resp.RiskTier,
		Recommendation:    resp.Recommendation,
	}
}

func parseDecimal(s, field string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, status.Errorf(codes.InvalidArgument, "invalid %s: %v", field, err)
	}
	return d, nil
}

func parseOptionalDecimal(s, field string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return parseDecimal(s, field)
}

func mapError(err error) error {
	switch {
	case errors.Is(err, port.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, port.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, port.ErrVersionConflict):
		return status.Error(codes.Aborted, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
