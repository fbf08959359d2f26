package format

import (
	"bytes"
	"strings"
	"testing"
)

type sample struct {
	ID    string  `json:"id"`
	Port  *string `json:"port"`
	Count int     `json:"count"`
}

func TestWriteEDN_UsesJSONTagsAsKeywords(t *testing.T) {
	var buf bytes.Buffer
	v := Envelope{Data: []sample{{ID: "0", Count: 2}}}
	if err := WriteEDN(&buf, v, false); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	want := `{:data [{:count 2 :id "0" :port nil}]}` + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected edn:\n got: %q\nwant: %q", got, want)
	}
}

func TestWriteEDN_PrettyIndents(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEDN(&buf, map[string]any{"a": []any{1, "x"}}, true); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	want := "{\n  :a [\n    1\n    \"x\"\n  ]\n}\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected pretty edn:\n got: %q\nwant: %q", got, want)
	}
}

func TestWriteEDN_KeywordSanitizesKeys(t *testing.T) {
	if got := ednKeyword("store id"); got != ":store-id" {
		t.Fatalf("ednKeyword = %q", got)
	}
}

func TestWrite_RejectsUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, 1, "yaml", false)
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
}

func TestWrite_DefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Envelope{Data: "ok"}, "", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := buf.String(); got != "{\"data\":\"ok\"}\n" {
		t.Fatalf("unexpected json: %q", got)
	}
}
