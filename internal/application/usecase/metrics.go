package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sweepLoansScanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "credit_engine_sweep_loans_scanned_total",
		Help: "Active loans examined by the delinquency sweep.",
	})
	sweepPenaltiesApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "credit_engine_sweep_penalties_applied_total",
		Help: "Penalty accruals actually inserted by the delinquency sweep.",
	})
	sweepNotificationsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "credit_engine_sweep_notifications_sent_total",
		Help: "Delinquency notifications newly delivered by the sweep.",
	})
	sweepCasesOpened = promauto.NewCounter(prometheus.CounterOpts{
		Name: "credit_engine_sweep_collection_cases_opened_total",
		Help: "Collection cases opened by the delinquency sweep.",
	})
	paymentsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "credit_engine_payments_recorded_total",
		Help: "Payments successfully applied to loans.",
	})
	loansDisbursed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "credit_engine_loans_disbursed_total",
		Help: "Loans disbursed from approved applications.",
	})
)
