package judge

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/valpere/lullaby/internal/rubric"
)

// ErrNoJSON is wrapped by ParseError when the response holds no JSON object.
var ErrNoJSON = errors.New("no JSON object in judge response")

// ParseError reports a judge response that is not a well-formed verdict.
// It never escapes Judge; it is recorded on the Evaluation.
type ParseError struct {
	Raw string
	err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid judge response: %v", e.err)
}

func (e *ParseError) Unwrap() error {
	return e.err
}

// parseVerdict decodes a judge response into a Verdict. Every category must
// be present as a string equal to "pass" or "fail" (case and surrounding
// whitespace are ignored). suggestions may be absent or null, otherwise it
// must be an array of strings.
func parseVerdict(response string) (rubric.Verdict, error) {
	payload := extractJSON(response)
	if payload == "" {
		return rubric.Verdict{}, &ParseError{Raw: response, err: ErrNoJSON}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return rubric.Verdict{}, &ParseError{Raw: response, err: err}
	}

	verdict := rubric.Verdict{Suggestions: []string{}}
	for _, c := range rubric.Categories {
		raw, ok := fields[string(c)]
		if !ok {
			return rubric.Verdict{}, &ParseError{Raw: response, err: fmt.Errorf("missing key %q", c)}
		}
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return rubric.Verdict{}, &ParseError{Raw: response, err: fmt.Errorf("key %q: expected string, got %s", c, raw)}
		}
		status := rubric.Status(cases.Fold().String(strings.TrimSpace(value)))
		if !status.Valid() {
			return rubric.Verdict{}, &ParseError{Raw: response, err: fmt.Errorf("key %q: invalid status %q", c, value)}
		}
		verdict = verdict.With(c, status)
	}

	if raw, ok := fields["suggestions"]; ok && string(raw) != "null" {
		var suggestions []string
		if err := json.Unmarshal(raw, &suggestions); err != nil {
			return rubric.Verdict{}, &ParseError{Raw: response, err: fmt.Errorf("suggestions: expected list of strings, got %s", raw)}
		}
		if suggestions != nil {
			verdict.Suggestions = suggestions
		}
	}

	return verdict, nil
}
