package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ledgerline/credit-engine/internal/domain/service"
	"github.com/ledgerline/credit-engine/internal/domain/valueobject"
)

var scoreNow = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

func TestCreditScoreEngine_EmptyHistory(t *testing.T) {
	engine := service.NewCreditScoreEngine()

	result := engine.Compute(service.CreditHistory{}, scoreNow)

	// No payments fall back to the default on-time ratio, no loans means
	// zero utilization, no income means full debt penalty.
	assert.Equal(t, 60, result.Factors.PaymentHistory)
	assert.Equal(t, 100, result.Factors.Utilization)
	assert.Equal(t, 0, result.Factors.CreditAge)
	assert.Equal(t, 20, result.Factors.TotalDebt)
	assert.Equal(t, 100, result.Factors.RecentInquiries)
	assert.Equal(t, 647, result.Score)
}

func TestCreditScoreEngine_PerfectHistoryMaxesOut(t *testing.T) {
	engine := service.NewCreditScoreEngine()
	due := scoreNow.AddDate(0, -2, 0)

	result := engine.Compute(service.CreditHistory{
		Loans: []service.LoanSummary{
			{
				Principal:   decimal.NewFromInt(10000),
				Outstanding: decimal.Zero,
				Status:      valueobject.LoanStatusCompleted,
			},
		},
		Payments: []service.PaymentRecord{
			{PaymentDate: due.AddDate(0, 0, -1), DueDate: due, Status: valueobject.PaymentStatusPaid},
			{PaymentDate: due, DueDate: due, Status: valueobject.PaymentStatusPaid},
		},
		MonthlyIncome: decimal.NewFromInt(8000),
		RegisteredAt:  scoreNow.AddDate(-11, 0, 0),
	}, scoreNow)

	assert.Equal(t, 850, result.Score)
}

func TestCreditScoreEngine_DefaultedLoanPenalized(t *testing.T) {
	engine := service.NewCreditScoreEngine()
	due := scoreNow.AddDate(0, -1, 0)

	clean := service.CreditHistory{
		Loans: []service.LoanSummary{
			{Principal: decimal.NewFromInt(10000), Outstanding: decimal.Zero, Status: valueobject.LoanStatusCompleted},
		},
		Payments: []service.PaymentRecord{
			{PaymentDate: due, DueDate: due, Status: valueobject.PaymentStatusPaid},
		},
		MonthlyIncome: decimal.NewFromInt(8000),
		RegisteredAt:  scoreNow.AddDate(-5, 0, 0),
	}

	dirty := clean
	dirty.Loans = append([]service.LoanSummary{}, clean.Loans...)
	dirty.Loans = append(dirty.Loans, service.LoanSummary{
		Principal:   decimal.NewFromInt(5000),
		Outstanding: decimal.NewFromInt(5000),
		Status:      valueobject.LoanStatusDefaulted,
	})

	cleanScore := engine.Compute(clean, scoreNow).Score
	dirtyScore := engine.Compute(dirty, scoreNow).Score

	assert.Less(t, dirtyScore, cleanScore)
}

func TestCreditScoreEngine_RecentInquiriesPenalized(t *testing.T) {
	engine := service.NewCreditScoreEngine()

	base := service.CreditHistory{
		MonthlyIncome: decimal.NewFromInt(8000),
		RegisteredAt:  scoreNow.AddDate(-5, 0, 0),
	}

	churned := base
	for i := 0; i < 3; i++ {
		churned.ApplicationDates = append(churned.ApplicationDates, scoreNow.AddDate(0, -1, -i))
	}

	baseResult := engine.Compute(base, scoreNow)
	churnedResult := engine.Compute(churned, scoreNow)

	assert.Equal(t, 70, churnedResult.Factors.RecentInquiries)
	assert.Less(t, churnedResult.Score, baseResult.Score)
}

func TestCreditScoreEngine_OldInquiriesIgnored(t *testing.T) {
	engine := service.NewCreditScoreEngine()

	result := engine.Compute(service.CreditHistory{
		ApplicationDates: []time.Time{scoreNow.AddDate(-1, 0, 0)},
	}, scoreNow)

	assert.Equal(t, 100, result.Factors.RecentInquiries)
}

func TestCreditScoreEngine_ScoreStaysInBounds(t *testing.T) {
	engine := service.NewCreditScoreEngine()
	due := scoreNow.AddDate(0, -6, 0)

	worst := service.CreditHistory{
		Loans: []service.LoanSummary{
			{Principal: decimal.NewFromInt(10000), Outstanding: decimal.NewFromInt(10000), Status: valueobject.LoanStatusDefaulted},
			{Principal: decimal.NewFromInt(8000), Outstanding: decimal.NewFromInt(8000), Status: valueobject.LoanStatusDefaulted},
		},
		Payments: []service.PaymentRecord{
			{PaymentDate: due.AddDate(0, 0, 100), DueDate: due, Status: valueobject.PaymentStatusLate},
			{PaymentDate: due.AddDate(0, 0, 120), DueDate: due, Status: valueobject.PaymentStatusLate},
		},
	}
	for i := 0; i < 12; i++ {
		worst.ApplicationDates = append(worst.ApplicationDates, scoreNow.AddDate(0, 0, -i))
	}

	result := engine.Compute(worst, scoreNow)

	assert.GreaterOrEqual(t, result.Score, 300)
	assert.LessOrEqual(t, result.Score, 850)
	assert.Less(t, result.Score, 400)
}
