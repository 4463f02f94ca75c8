package validation

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/julianstephens/vanguard/internal/constants"
	"github.com/julianstephens/vanguard/internal/errors"
	"github.com/julianstephens/vanguard/internal/models"
	"github.com/julianstephens/vanguard/internal/utils"
)

const maxAllyNameLength = 100

// Problem is one rejected field.
type Problem struct {
	Field       string
	Description string
}

// Result collects every problem found in one input.
type Result struct {
	Problems []Problem
}

func (r *Result) add(field, format string, args ...interface{}) {
	r.Problems = append(r.Problems, Problem{Field: field, Description: fmt.Sprintf(format, args...)})
}

func (r Result) HasProblems() bool {
	return len(r.Problems) > 0
}

// FormatReport returns a human-readable list of the problems.
func (r Result) FormatReport() string {
	if !r.HasProblems() {
		return "No problems detected."
	}
	var b strings.Builder
	b.WriteString("Invalid input:\n")
	for _, p := range r.Problems {
		fmt.Fprintf(&b, "- %s: %s\n", p.Field, p.Description)
	}
	return b.String()
}

// Err returns nil when there are no problems, otherwise an error wrapping
// errors.ErrInvalidInput that names each field.
func (r Result) Err() error {
	if !r.HasProblems() {
		return nil
	}
	parts := make([]string, len(r.Problems))
	for i, p := range r.Problems {
		parts[i] = p.Field + ": " + p.Description
	}
	return errors.Invalid("%s", strings.Join(parts, "; "))
}

// CheckIn validates a habit day before it is recorded.
func CheckIn(d models.HabitDay) Result {
	var r Result
	if _, err := time.Parse(constants.DateFormat, d.Day); err != nil {
		r.add("day", "must be a YYYY-MM-DD date, got %q", d.Day)
	}
	if d.Mood < 0 || d.Mood > constants.MaxMood {
		r.add("mood", "must be between 0 and %d, got %d", constants.MaxMood, d.Mood)
	}
	if n := utf8.RuneCountInString(d.Summary); n > constants.MaxSummaryLength {
		r.add("summary", "must be at most %d characters, got %d", constants.MaxSummaryLength, n)
	}
	return r
}

// Ally validates a new or edited ally.
func Ally(a models.Ally) Result {
	var r Result
	name := strings.TrimSpace(a.Name)
	switch {
	case name == "":
		r.add("name", "is required")
	case utf8.RuneCountInString(name) > maxAllyNameLength:
		r.add("name", "must be at most %d characters", maxAllyNameLength)
	}
	if a.FrequencyDays < 1 {
		r.add("frequency", "must be at least 1 day, got %d", a.FrequencyDays)
	}
	if a.ContactMethod != "" && !validContactMethod(a.ContactMethod) {
		r.add("contact", "must be a tel:, mailto:, http: or https: link, got %q", a.ContactMethod)
	}
	return r
}

func validContactMethod(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "tel", "mailto":
		return u.Opaque != ""
	case "http", "https":
		return u.Host != ""
	default:
		return false
	}
}

// Settings validates persisted settings.
func Settings(s models.Settings) Result {
	var r Result
	if !utils.ValidateTimezone(s.Timezone) {
		r.add("timezone", "unknown timezone %q", s.Timezone)
	}
	if s.WindowDays < 1 {
		r.add("window_days", "must be at least 1, got %d", s.WindowDays)
	}
	if s.IntelBatchCeiling < 1 {
		r.add("intel_batch_ceiling", "must be at least 1, got %d", s.IntelBatchCeiling)
	}
	switch s.LLMProvider {
	case constants.LLMProviderOllama, constants.LLMProviderGemini, constants.LLMProviderMock:
	default:
		r.add("llm_provider", "must be one of %s, %s, %s; got %q",
			constants.LLMProviderOllama, constants.LLMProviderGemini, constants.LLMProviderMock, s.LLMProvider)
	}
	if s.LLMURL != "" {
		if u, err := url.Parse(s.LLMURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			r.add("llm_url", "must be an http(s) URL, got %q", s.LLMURL)
		}
	}
	if s.LLMTimeoutSec < 1 {
		r.add("llm_timeout_sec", "must be at least 1, got %d", s.LLMTimeoutSec)
	}
	return r
}
