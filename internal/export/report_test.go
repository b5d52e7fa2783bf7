package export

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNormalizeReportFormat(t *testing.T) {
	if got := NormalizeReportFormat(""); got != ReportOff {
		t.Fatalf("expected off, got %s", got)
	}
	if got := NormalizeReportFormat("JSON"); got != ReportJSON {
		t.Fatalf("expected json, got %s", got)
	}
	if got := NormalizeReportFormat("bad"); got != "" {
		t.Fatalf("expected empty for invalid report format, got %s", got)
	}
}

func TestRenderReportTXT(t *testing.T) {
	summary := Summary{
		Total:     2,
		Succeeded: 1,
		Skipped:   1,
		Failed:    0,
		Duration:  2 * time.Second,
	}
	results := []SegmentResult{
		{Job: SegmentJob{InputPath: "a.mp4", OutputPath: "a_dondurulmus.mp4"}, Success: true, Attempts: 1, Duration: time.Second},
		{Job: SegmentJob{InputPath: "b.mp4", OutputPath: "b_dondurulmus.mp4"}, Skipped: true, SkipReason: "output_exists"},
	}

	out, err := RenderReport(ReportTXT, summary, results, time.Unix(0, 0), time.Unix(2, 0))
	if err != nil {
		t.Fatalf("RenderReport failed: %v", err)
	}
	if !strings.Contains(out, "Batch Report") {
		t.Fatalf("missing report header")
	}
	if !strings.Contains(out, "[success] a.mp4 -> a_dondurulmus.mp4") {
		t.Fatalf("missing success item:\n%s", out)
	}
	if !strings.Contains(out, "[skipped] b.mp4 -> b_dondurulmus.mp4") {
		t.Fatalf("missing skipped item:\n%s", out)
	}
}

func TestRenderReportTXTFallsBackToIndex(t *testing.T) {
	results := []SegmentResult{
		{Job: SegmentJob{Index: 3, OutputPath: "parca_003.mp4"}, Success: true, Attempts: 1},
	}

	out, err := RenderReport(ReportTXT, Summary{Total: 1, Succeeded: 1}, results, time.Unix(0, 0), time.Unix(1, 0))
	if err != nil {
		t.Fatalf("RenderReport failed: %v", err)
	}
	if !strings.Contains(out, "segment 3 -> parca_003.mp4") {
		t.Fatalf("missing index fallback:\n%s", out)
	}
}

func TestRenderReportJSON(t *testing.T) {
	summary := Summary{
		Total:     1,
		Succeeded: 0,
		Skipped:   0,
		Failed:    1,
		Duration:  time.Second,
	}
	results := []SegmentResult{
		{Job: SegmentJob{InputPath: "x", OutputPath: "y"}, Attempts: 3, Error: errStub("boom")},
	}
	out, err := RenderReport(ReportJSON, summary, results, time.Unix(0, 0), time.Unix(1, 0))
	if err != nil {
		t.Fatalf("RenderReport failed: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid json output: %v", err)
	}

	if payload["total"] != float64(1) {
		t.Fatalf("unexpected total: %v", payload["total"])
	}

	items, ok := payload["items"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("unexpected items: %v", payload["items"])
	}

	first, ok := items[0].(map[string]any)
	if !ok {
		t.Fatalf("unexpected first item type")
	}
	if first["status"] != "failed" {
		t.Fatalf("unexpected status: %v", first["status"])
	}
	if first["error"] != "boom" {
		t.Fatalf("unexpected error: %v", first["error"])
	}
}

type errStub string

func (e errStub) Error() string { return string(e) }
