// Package report defines the stored report record whose content field
// carries a field stream.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Report mirrors one row of the reports table. Content is the raw field
// stream; in JSON it travels base64 encoded.
type Report struct {
	ID                      int64  `json:"id,omitempty"`
	ReportVersion           int    `json:"report_version"`
	ModelVersion            int    `json:"model_version"`
	Timestamp               string `json:"timestamp"`
	Type                    int    `json:"type"`
	Sender                  string `json:"sender"`
	Content                 []byte `json:"content"`
	Reason                  string `json:"reason"`
	SuggestedClassification string `json:"suggested_classification"`
}

// RequiredFields lists the keys every stored report carries.
var RequiredFields = []string{
	"report_version",
	"model_version",
	"timestamp",
	"type",
	"sender",
	"content",
	"reason",
	"suggested_classification",
}

type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("report: missing required fields: %s", strings.Join(e.Fields, ", "))
}

// MissingFields returns the required keys absent from raw, in
// RequiredFields order.
func MissingFields(raw map[string]json.RawMessage) []string {
	missing := make([]string, 0)
	for _, name := range RequiredFields {
		if _, ok := raw[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Parse decodes one JSON record and checks required keys.
func Parse(data []byte) (Report, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Report{}, fmt.Errorf("report: parse: %w", err)
	}
	if missing := MissingFields(raw); len(missing) > 0 {
		return Report{}, &MissingFieldsError{Fields: missing}
	}
	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return Report{}, fmt.Errorf("report: parse: %w", err)
	}
	return rep, nil
}

// Field returns the string value of a text column by its JSON name.
func (r Report) Field(name string) (string, bool) {
	switch name {
	case "timestamp":
		return r.Timestamp, true
	case "sender":
		return r.Sender, true
	case "reason":
		return r.Reason, true
	case "suggested_classification":
		return r.SuggestedClassification, true
	default:
		return "", false
	}
}
