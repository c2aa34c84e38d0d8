package report

import (
	"bytes"
	"errors"
	"testing"
)

const validRecord = `{
	"id": 7,
	"report_version": 1,
	"model_version": 3,
	"timestamp": "2024-05-01T10:00:00Z",
	"type": 2,
	"sender": "+15550100",
	"content": "QQIAAlgDQg==",
	"reason": "c3BhbQ==",
	"suggested_classification": "junk"
}`

func TestParseValidRecord(t *testing.T) {
	rep, err := Parse([]byte(validRecord))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rep.ID != 7 || rep.ModelVersion != 3 || rep.Sender != "+15550100" {
		t.Fatalf("unexpected report: %+v", rep)
	}
	want := []byte{0x41, 0x02, 0x00, 0x02, 0x58, 0x03, 0x42}
	if !bytes.Equal(rep.Content, want) {
		t.Fatalf("unexpected content: % x", rep.Content)
	}
}

func TestParseMissingFields(t *testing.T) {
	_, err := Parse([]byte(`{"report_version": 1, "sender": "x", "reason": ""}`))
	var missing *MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldsError, got %v", err)
	}
	want := []string{"model_version", "timestamp", "type", "content", "suggested_classification"}
	if len(missing.Fields) != len(want) {
		t.Fatalf("unexpected missing fields: %v", missing.Fields)
	}
	for i := range want {
		if missing.Fields[i] != want[i] {
			t.Fatalf("missing[%d]=%q want %q", i, missing.Fields[i], want[i])
		}
	}
	if err.Error() != "report: missing required fields: model_version, timestamp, type, content, suggested_classification" {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"report_version":`)); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestFieldLookup(t *testing.T) {
	rep := Report{Reason: "r", SuggestedClassification: "s"}
	if v, ok := rep.Field("reason"); !ok || v != "r" {
		t.Fatalf("reason lookup: %q %v", v, ok)
	}
	if _, ok := rep.Field("content"); ok {
		t.Fatalf("content is not a text column")
	}
}
