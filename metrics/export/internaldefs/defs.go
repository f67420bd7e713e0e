package internaldefs

import (
	"github.com/infinitysurge/pentaauth"
)

// CounterDef names one engine counter for exporters.
type CounterDef struct {
	ID   pentaauth.MetricID
	Name string
	Help string
}

// HistogramDef names one engine histogram for exporters.
type HistogramDef struct {
	ID   pentaauth.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in output order.
var CounterDefs = []CounterDef{
	{ID: pentaauth.MetricLoginSuccess, Name: "pentaauth_login_success_total", Help: "Successful login attempts."},
	{ID: pentaauth.MetricLoginFailure, Name: "pentaauth_login_failure_total", Help: "Login attempts rejected for invalid credentials."},
	{ID: pentaauth.MetricLoginInFlightRejected, Name: "pentaauth_login_in_flight_rejected_total", Help: "Login attempts refused while another was in flight."},
	{ID: pentaauth.MetricLoginBackendUnavailable, Name: "pentaauth_login_backend_unavailable_total", Help: "Login attempts that failed because the credential backend could not answer."},
	{ID: pentaauth.MetricLoginRateLimited, Name: "pentaauth_login_rate_limited_total", Help: "Login attempts refused by the throttle."},
	{ID: pentaauth.MetricLoginCanceled, Name: "pentaauth_login_canceled_total", Help: "Login attempts canceled by a logout before they resolved."},
	{ID: pentaauth.MetricLogout, Name: "pentaauth_logout_total", Help: "Logouts that cleared a principal."},
	{ID: pentaauth.MetricSessionRestored, Name: "pentaauth_session_restored_total", Help: "Sessions restored from storage."},
	{ID: pentaauth.MetricSessionRecordCorrupt, Name: "pentaauth_session_record_corrupt_total", Help: "Corrupt persisted session records discarded."},
	{ID: pentaauth.MetricPermissionGranted, Name: "pentaauth_permission_granted_total", Help: "Permission checks that allowed the action."},
	{ID: pentaauth.MetricPermissionDenied, Name: "pentaauth_permission_denied_total", Help: "Permission checks that denied the action."},
	{ID: pentaauth.MetricPageDenied, Name: "pentaauth_page_denied_total", Help: "Page access checks that denied the page."},
}

// HistogramDefs lists every exported histogram.
var HistogramDefs = []HistogramDef{
	{ID: pentaauth.MetricLoginLatency, Name: "pentaauth_login_latency_seconds", Help: "Credential check latency."},
}

// AuditDroppedName is the counter for audit events lost to backpressure.
const (
	AuditDroppedName = "pentaauth_audit_dropped_total"
	AuditDroppedHelp = "Dropped audit events due to dispatcher backpressure."
)

// HistogramBounds are the bucket upper bounds as Prometheus labels.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is HistogramBounds made safe for instrument names.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// HistogramUpperBounds are the finite bucket upper bounds in seconds.
var HistogramUpperBounds = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5}

func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
