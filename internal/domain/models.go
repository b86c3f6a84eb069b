package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Endpoint is a target URL as it was configured.
type Endpoint string

type Outcome int

const (
	Failure Outcome = iota
	Success
)

func (o Outcome) String() string {
	if o == Success {
		return "success"
	}
	return "failure"
}

// CheckResult is the outcome of a single check.
//
// StatusCode is set only when Outcome is Success. Reason and CheckedAt are
// kept for logs and the API; the legacy document does not carry them.
type CheckResult struct {
	URL        Endpoint
	StatusCode *int
	Outcome    Outcome
	Reason     string
	CheckedAt  time.Time
}

func Succeeded(url Endpoint, code int, at time.Time) CheckResult {
	return CheckResult{URL: url, StatusCode: &code, Outcome: Success, CheckedAt: at}
}

func Failed(url Endpoint, reason string, at time.Time) CheckResult {
	return CheckResult{URL: url, Outcome: Failure, Reason: reason, CheckedAt: at}
}

// ResultSet holds one CheckResult per target, in target order.
type ResultSet []CheckResult

// Matches reports whether rs lines up index by index with targets.
func (rs ResultSet) Matches(targets []Endpoint) error {
	if len(rs) != len(targets) {
		return fmt.Errorf("result set has %d entries, want %d", len(rs), len(targets))
	}
	for i, t := range targets {
		if rs[i].URL != t {
			return fmt.Errorf("result %d is for %q, want %q", i, rs[i].URL, t)
		}
	}
	return nil
}

// Schema selects the JSON shape of a result document.
type Schema string

const (
	// SchemaLegacy writes {"url","status_code"} for successes and
	// {"url","status":"Failed"} for failures.
	SchemaLegacy Schema = "legacy"
	// SchemaTagged writes {"url","outcome"} plus "status_code" on success.
	SchemaTagged Schema = "tagged"
)

const failedMarker = "Failed"

type legacySuccess struct {
	URL        Endpoint `json:"url"`
	StatusCode int      `json:"status_code"`
}

type legacyFailure struct {
	URL    Endpoint `json:"url"`
	Status string   `json:"status"`
}

type taggedResult struct {
	URL        Endpoint `json:"url"`
	Outcome    string   `json:"outcome"`
	StatusCode *int     `json:"status_code,omitempty"`
}

// Document returns the serializable form of rs in the given schema.
// Unknown schemas fall back to legacy.
func (rs ResultSet) Document(s Schema) []any {
	out := make([]any, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.view(s))
	}
	return out
}

func (r CheckResult) view(s Schema) any {
	if s == SchemaTagged {
		return taggedResult{URL: r.URL, Outcome: r.Outcome.String(), StatusCode: r.StatusCode}
	}
	if r.Outcome == Success && r.StatusCode != nil {
		return legacySuccess{URL: r.URL, StatusCode: *r.StatusCode}
	}
	return legacyFailure{URL: r.URL, Status: failedMarker}
}

// MarshalJSON encodes r in the legacy schema.
func (r CheckResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.view(SchemaLegacy))
}

// UnmarshalJSON accepts either schema.
func (r *CheckResult) UnmarshalJSON(b []byte) error {
	var raw struct {
		URL        Endpoint `json:"url"`
		StatusCode *int     `json:"status_code"`
		Status     string   `json:"status"`
		Outcome    string   `json:"outcome"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.URL == "" {
		return fmt.Errorf("result without url: %s", b)
	}
	*r = CheckResult{URL: raw.URL, Outcome: Failure}
	switch {
	case raw.Outcome == Failure.String() || raw.Status == failedMarker:
	case raw.StatusCode != nil:
		code := *raw.StatusCode
		r.StatusCode = &code
		r.Outcome = Success
	default:
		return fmt.Errorf("result for %q has neither status_code nor failure marker", raw.URL)
	}
	return nil
}
