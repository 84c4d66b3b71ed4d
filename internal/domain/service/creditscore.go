package service

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/credit-engine/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// CreditScoreEngine – domain service computing the 300-850 borrower score
// ---------------------------------------------------------------------------

// Factor weights. They sum to 1.
const (
	weightPaymentHistory  = 0.35
	weightUtilization     = 0.30
	weightCreditAge       = 0.15
	weightTotalDebt       = 0.10
	weightRecentInquiries = 0.10

	// creditAgeHorizonMonths is the tenure at which the age factor maxes out.
	creditAgeHorizonMonths = 120

	// defaultOnTimeRatio applies to borrowers with no payment history.
	defaultOnTimeRatio = 0.6

	inquiryWindow = 6 * 30 * 24 * time.Hour
)

// LoanSummary is the slice of a loan the score engine needs.
type LoanSummary struct {
	Principal   decimal.Decimal
	Outstanding decimal.Decimal
	Status      valueobject.LoanStatus
}

// PaymentRecord is the slice of a payment the score engine needs.
type PaymentRecord struct {
	PaymentDate time.Time
	DueDate     time.Time
	Status      valueobject.PaymentStatus
}

// CreditHistory is the full borrower history the engine scores.
type CreditHistory struct {
	Loans            []LoanSummary
	Payments         []PaymentRecord
	ApplicationDates []time.Time
	MonthlyIncome    decimal.Decimal
	RegisteredAt     time.Time
}

// FactorScores is the per-factor breakdown returned for display.
type FactorScores struct {
	PaymentHistory  int `json:"payment_history"`
	Utilization     int `json:"utilization"`
	CreditAge       int `json:"credit_age"`
	TotalDebt       int `json:"total_debt"`
	RecentInquiries int `json:"recent_inquiries"`
}

// CreditScoreResult is the engine output: the 300-850 score and its factors.
type CreditScoreResult struct {
	Score   int          `json:"score"`
	Factors FactorScores `json:"factors"`
}

// CreditScoreEngine computes borrower credit scores from ledger history.
// It is the single source of truth for Borrower.CreditScore; callers persist
// the result after every payment, disbursement, and on-demand refresh.
type CreditScoreEngine struct{}

// NewCreditScoreEngine returns a new engine instance.
func NewCreditScoreEngine() *CreditScoreEngine {
	return &CreditScoreEngine{}
}

// Compute scores a borrower's history as of now. The result is always within
// [300, 850], including for borrowers with no history at all.
func (e *CreditScoreEngine) Compute(history CreditHistory, now time.Time) CreditScoreResult {
	payment := e.paymentHistoryScore(history)
	utilization := e.utilizationScore(history.Loans)
	age := e.creditAgeScore(history.RegisteredAt, now)
	debt := e.totalDebtScore(history)
	inquiries := e.recentInquiryScore(history.ApplicationDates, now)

	weighted := weightPaymentHistory*payment +
		weightUtilization*utilization +
		weightCreditAge*age +
		weightTotalDebt*debt +
		weightRecentInquiries*inquiries

	score := int(math.Round(300 + weighted*5.5))
	if score < 300 {
		score = 300
	}
	if score > 850 {
		score = 850
	}

	return CreditScoreResult{
		Score: score,
		Factors: FactorScores{
			PaymentHistory:  int(math.Round(payment)),
			Utilization:     int(math.Round(utilization)),
			CreditAge:       int(math.Round(age)),
			TotalDebt:       int(math.Round(debt)),
			RecentInquiries: int(math.Round(inquiries)),
		},
	}
}

// paymentHistoryScore rewards on-time payments and penalizes average
// lateness and defaulted loans.
func (e *CreditScoreEngine) paymentHistoryScore(history CreditHistory) float64 {
	onTimeRatio := defaultOnTimeRatio
	avgLateDays := 0.0

	if len(history.Payments) > 0 {
		onTime := 0
		lateCount := 0
		lateDaysTotal := 0.0
		for _, p := range history.Payments {
			daysLate := p.PaymentDate.Sub(p.DueDate).Hours() / 24
			if daysLate <= 0 || p.Status.Equal(valueobject.PaymentStatusPaid) {
				onTime++
			} else {
				lateCount++
				lateDaysTotal += daysLate
			}
		}
		onTimeRatio = float64(onTime) / float64(len(history.Payments))
		if lateCount > 0 {
			avgLateDays = lateDaysTotal / float64(lateCount)
		}
	}

	defaulted := 0
	for _, l := range history.Loans {
		if l.Status.Equal(valueobject.LoanStatusDefaulted) {
			defaulted++
		}
	}

	latePenalty := clampFloat(avgLateDays*0.5, 0, 30)
	defaultPenalty := clampFloat(float64(defaulted)*20, 0, 40)

	return clampFloat(onTimeRatio*100-latePenalty-defaultPenalty, 0, 100)
}

// utilizationScore measures how much of the principal ever issued is still
// outstanding. A borrower with no loans surfaces as zero utilization.
func (e *CreditScoreEngine) utilizationScore(loans []LoanSummary) float64 {
	totalPrincipal := decimal.Zero
	totalOutstanding := decimal.Zero
	for _, l := range loans {
		totalPrincipal = totalPrincipal.Add(l.Principal)
		totalOutstanding = totalOutstanding.Add(l.Outstanding)
	}
	if totalPrincipal.LessThanOrEqual(decimal.Zero) {
		return 100
	}
	utilization := finiteOrZero(totalOutstanding.InexactFloat64() / totalPrincipal.InexactFloat64())
	return clampFloat((1-utilization)*100, 0, 100)
}

// creditAgeScore scales tenure linearly against a ten-year horizon.
func (e *CreditScoreEngine) creditAgeScore(registeredAt, now time.Time) float64 {
	if registeredAt.IsZero() || registeredAt.After(now) {
		return 0
	}
	months := now.Sub(registeredAt).Hours() / 24 / 30
	return clampFloat(months/creditAgeHorizonMonths*100, 0, 100)
}

// totalDebtScore penalizes outstanding debt relative to annual income.
func (e *CreditScoreEngine) totalDebtScore(history CreditHistory) float64 {
	totalOutstanding := decimal.Zero
	for _, l := range history.Loans {
		totalOutstanding = totalOutstanding.Add(l.Outstanding)
	}

	annualIncome := history.MonthlyIncome.InexactFloat64() * 12
	debtToIncome := 1.0
	if annualIncome > 0 {
		debtToIncome = finiteOrZero(totalOutstanding.InexactFloat64() / annualIncome)
	}
	return clampFloat(100-debtToIncome*80, 0, 100)
}

// recentInquiryScore penalizes application churn in the trailing six months.
func (e *CreditScoreEngine) recentInquiryScore(applicationDates []time.Time, now time.Time) float64 {
	cutoff := now.Add(-inquiryWindow)
	recent := 0
	for _, d := range applicationDates {
		if d.After(cutoff) {
			recent++
		}
	}
	return clampFloat(100-float64(recent)*10, 0, 100)
}
