package metrics

import (
	"math"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func TestRecorderObserveRequest(t *testing.T) {
	rec := NewRecorder(nil)
	rec.ObserveRequest("youtube", "search", SourceFallback, 250*time.Millisecond)

	families := gather(t, rec, "contentd_content_requests_total", "contentd_content_request_duration_seconds")

	counter := findMetric(t, families["contentd_content_requests_total"], map[string]string{
		"provider":  "youtube",
		"operation": "search",
		"source":    "fallback",
	})
	if counter.GetCounter() == nil {
		t.Fatalf("expected counter metric for content requests")
	}
	if got := counter.GetCounter().GetValue(); got != 1 {
		t.Fatalf("expected counter value 1, got %v", got)
	}

	histMetric := findMetric(t, families["contentd_content_request_duration_seconds"], map[string]string{
		"provider":  "youtube",
		"operation": "search",
	})
	hist := histMetric.GetHistogram()
	if hist == nil {
		t.Fatalf("expected histogram metric for request latency")
	}
	if hist.GetSampleCount() != 1 {
		t.Fatalf("expected histogram count 1, got %d", hist.GetSampleCount())
	}
	want := 0.25
	if diff := math.Abs(hist.GetSampleSum() - want); diff > 0.001 {
		t.Fatalf("expected histogram sum near %v, got %v", want, hist.GetSampleSum())
	}
}

func TestRecorderObserveCacheOperations(t *testing.T) {
	rec := NewRecorder(nil)
	rec.ObserveCacheLookup("trivia", CacheLookupHit, 10*time.Millisecond)
	rec.ObserveCacheStore("trivia", CacheStoreStored, 5*time.Millisecond)

	families := gather(t, rec, "contentd_cache_operations_total", "contentd_cache_operation_duration_seconds")

	lookupMetric := findMetric(t, families["contentd_cache_operations_total"], map[string]string{
		"provider":  "trivia",
		"operation": string(CacheOperationLookup),
		"result":    string(CacheLookupHit),
	})
	if lookupMetric.GetCounter() == nil || lookupMetric.GetCounter().GetValue() != 1 {
		t.Fatalf("expected lookup counter value 1")
	}

	storeMetric := findMetric(t, families["contentd_cache_operations_total"], map[string]string{
		"provider":  "trivia",
		"operation": string(CacheOperationStore),
		"result":    string(CacheStoreStored),
	})
	if storeMetric.GetCounter() == nil || storeMetric.GetCounter().GetValue() != 1 {
		t.Fatalf("expected store counter value 1")
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.ObserveRequest("youtube", "search", SourceLive, time.Millisecond)
	rec.ObserveCacheLookup("youtube", CacheLookupMiss, time.Millisecond)
	rec.ObserveCacheStore("youtube", CacheStoreStored, time.Millisecond)
	if rec.Handler() == nil {
		t.Fatalf("nil recorder must still provide a handler")
	}
	if rec.Gatherer() == nil {
		t.Fatalf("nil recorder must still provide a gatherer")
	}
}

func gather(t *testing.T, rec *Recorder, names ...string) map[string][]*dto.Metric {
	t.Helper()
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}
	families, err := rec.Gatherer().Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	collected := make(map[string][]*dto.Metric, len(names))
	for _, mf := range families {
		if !wanted[mf.GetName()] {
			continue
		}
		collected[mf.GetName()] = append(collected[mf.GetName()], mf.GetMetric()...)
	}
	for _, name := range names {
		if len(collected[name]) == 0 {
			t.Fatalf("metric %q not collected", name)
		}
	}
	return collected
}

func findMetric(t *testing.T, metrics []*dto.Metric, labels map[string]string) *dto.Metric {
	t.Helper()
	for _, metric := range metrics {
		if matchLabels(metric, labels) {
			return metric
		}
	}
	t.Fatalf("metric with labels %v not found", labels)
	return nil
}

func matchLabels(metric *dto.Metric, labels map[string]string) bool {
	if len(metric.GetLabel()) < len(labels) {
		return false
	}
	for key, expected := range labels {
		found := false
		for _, label := range metric.GetLabel() {
			if label.GetName() == key && label.GetValue() == expected {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
