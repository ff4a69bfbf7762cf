package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "hakedis_"

	resultSuccess = "success"
	resultError   = "error"

	approvalApproved = "approved"
	approvalSkipped  = "skipped"
)

var (
	registerOnce sync.Once

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	ledgerEvaluations   *prometheus.CounterVec
	eligibilityCrossing prometheus.Counter
	frozenEntries       prometheus.Counter

	approvalsTotal   *prometheus.CounterVec
	payoutHookErrors prometheus.Counter

	statementBuildTotal    *prometheus.CounterVec
	statementExportTotal   *prometheus.CounterVec
	statementExportLatency *prometheus.HistogramVec
)

// Init registers the metrics with the default registry. Calling it more than once is a no-op.
func Init() {
	registerOnce.Do(func() {
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_latency_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		)

		ledgerEvaluations = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "ledger_evaluations_total",
				Help: "Total ledger evaluations by resulting eligibility status",
			},
			[]string{"status"},
		)
		eligibilityCrossing = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "eligibility_crossings_total",
				Help: "Total merchants that became eligible for settlement",
			},
		)
		frozenEntries = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "ledger_frozen_entries_total",
				Help: "Total daily entries ignored because the cycle was already frozen",
			},
		)

		approvalsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "settlement_approvals_total",
				Help: "Total requested settlement approvals by result",
			},
			[]string{"result"},
		)
		payoutHookErrors = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "payout_hook_errors_total",
				Help: "Total payout hook failures after an approval",
			},
		)

		statementBuildTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "statement_build_total",
				Help: "Total statement builds by result",
			},
			[]string{"result"},
		)
		statementExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "statement_export_total",
				Help: "Total statement exports by format and result",
			},
			[]string{"format", "result"},
		)
		statementExportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "statement_export_latency_seconds",
				Help:    "Statement export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			httpRequests,
			httpLatency,
			ledgerEvaluations,
			eligibilityCrossing,
			frozenEntries,
			approvalsTotal,
			payoutHookErrors,
			statementBuildTotal,
			statementExportTotal,
			statementExportLatency,
		)
	})
}

// ObserveHTTPRequest records one served request.
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	if httpRequests != nil {
		httpRequests.WithLabelValues(method, route, status).Inc()
	}
	if httpLatency != nil {
		httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
	}
}

// ObserveLedgerEvaluation records the outcome of an accumulator run.
// crossed is true when the run moved the merchant from no settlement to eligible.
func ObserveLedgerEvaluation(status string, crossed bool, frozen int) {
	if ledgerEvaluations != nil {
		ledgerEvaluations.WithLabelValues(status).Inc()
	}
	if crossed && eligibilityCrossing != nil {
		eligibilityCrossing.Inc()
	}
	if frozen > 0 && frozenEntries != nil {
		frozenEntries.Add(float64(frozen))
	}
}

// ObserveApprovals records a bulk approval outcome.
func ObserveApprovals(approved, skipped int) {
	if approvalsTotal == nil {
		return
	}
	if approved > 0 {
		approvalsTotal.WithLabelValues(approvalApproved).Add(float64(approved))
	}
	if skipped > 0 {
		approvalsTotal.WithLabelValues(approvalSkipped).Add(float64(skipped))
	}
}

// IncPayoutHookError increments the payout hook failure counter.
func IncPayoutHookError() {
	if payoutHookErrors != nil {
		payoutHookErrors.Inc()
	}
}

// ObserveStatementBuild records a statement derivation.
func ObserveStatementBuild(result string) {
	if result == "" {
		result = resultSuccess
	}
	if statementBuildTotal != nil {
		statementBuildTotal.WithLabelValues(result).Inc()
	}
}

// ObserveStatementExport records export latency and result.
func ObserveStatementExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if statementExportTotal != nil {
		statementExportTotal.WithLabelValues(format, result).Inc()
	}
	if statementExportLatency != nil {
		statementExportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
