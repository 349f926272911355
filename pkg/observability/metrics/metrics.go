package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

var (
	assessmentsTotal   atomic.Int64
	highRiskTotal      atomic.Int64
	lowRiskTotal       atomic.Int64
	cacheHitsTotal     atomic.Int64
	rejectedTotal      atomic.Int64
	failedTotal        atomic.Int64
	unmatchedKeysTotal atomic.Int64
	latencyMicrosTotal atomic.Int64
)

func ObserveAssessment(highRisk, cached bool, latencyMicros int64) {
	assessmentsTotal.Add(1)
	if highRisk {
		highRiskTotal.Add(1)
	} else {
		lowRiskTotal.Add(1)
	}
	if cached {
		cacheHitsTotal.Add(1)
	}
	latencyMicrosTotal.Add(latencyMicros)
}

func ObserveRejected() {
	rejectedTotal.Add(1)
}

func ObserveFailed() {
	failedTotal.Add(1)
}

func ObserveUnmatched(keys int) {
	unmatchedKeysTotal.Add(int64(keys))
}

type Snapshot struct {
	Assessments   int64
	HighRisk      int64
	LowRisk       int64
	CacheHits     int64
	Rejected      int64
	Failed        int64
	UnmatchedKeys int64
}

func Read() Snapshot {
	return Snapshot{
		Assessments:   assessmentsTotal.Load(),
		HighRisk:      highRiskTotal.Load(),
		LowRisk:       lowRiskTotal.Load(),
		CacheHits:     cacheHitsTotal.Load(),
		Rejected:      rejectedTotal.Load(),
		Failed:        failedTotal.Load(),
		UnmatchedKeys: unmatchedKeysTotal.Load(),
	}
}

func WritePrometheus(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	writeCounter(w, "heartrisk_assessments_total", "Number of completed risk assessments.", assessmentsTotal.Load())
	writeCounter(w, "heartrisk_assessments_high_risk_total", "Number of assessments labelled HIGH.", highRiskTotal.Load())
	writeCounter(w, "heartrisk_assessments_low_risk_total", "Number of assessments labelled LOW.", lowRiskTotal.Load())
	writeCounter(w, "heartrisk_result_cache_hits_total", "Number of assessments served from the result cache.", cacheHitsTotal.Load())
	writeCounter(w, "heartrisk_assessments_rejected_total", "Number of submissions rejected by input validation.", rejectedTotal.Load())
	writeCounter(w, "heartrisk_assessments_failed_total", "Number of submissions that failed during inference.", failedTotal.Load())
	writeCounter(w, "heartrisk_unmatched_columns_total", "Number of one-hot keys dropped because the schema has no column for them.", unmatchedKeysTotal.Load())

	fmt.Fprintf(w, "# HELP heartrisk_assessment_latency_seconds_sum Total time spent on completed assessments.\n")
	fmt.Fprintf(w, "# TYPE heartrisk_assessment_latency_seconds_sum counter\n")
	fmt.Fprintf(w, "heartrisk_assessment_latency_seconds_sum %f\n", float64(latencyMicrosTotal.Load())/1e6)
}

func writeCounter(w http.ResponseWriter, name, help string, value int64) {
	fmt.Fprintf(w, "# HELP %s %s\n", name, help)
	fmt.Fprintf(w, "# TYPE %s counter\n", name)
	fmt.Fprintf(w, "%s %d\n", name, value)
}
