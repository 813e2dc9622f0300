package main

import (
	"fmt"
	"io"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// printer renders results either as plain text lines or as one indented JSON document.
type printer struct {
	out  io.Writer
	json bool
}

func newPrinter(out io.Writer, json bool) *printer {
	return &printer{out: out, json: json}
}

// print writes value as JSON in JSON mode, otherwise it calls text.
func (p *printer) print(value any, text func(w io.Writer)) error {
	if p.json {
		return writeJSON(p.out, value)
	}

	text(p.out)

	return nil
}

func writeJSON(w io.Writer, value any) error {
	encoded, err := jsonAPI.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(encoded))

	return err
}

func writeLine(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format+"\n", args...)
}

type metricPoint struct {
	Name       string            `json:"name"`
	Kind       string            `json:"kind"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Count      uint64            `json:"count,omitempty"`
	Sum        float64           `json:"sum"`
}

// summarizeMetrics flattens the collected OpenTelemetry metrics into one point per attribute set.
func summarizeMetrics(collected metricdata.ResourceMetrics) []metricPoint {
	points := make([]metricPoint, 0)

	for _, scope := range collected.ScopeMetrics {
		for _, m := range scope.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					points = append(points, metricPoint{
						Name:       m.Name,
						Kind:       "histogram",
						Attributes: attributesOf(dp.Attributes.ToSlice()),
						Count:      dp.Count,
						Sum:        dp.Sum,
					})
				}
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					points = append(points, metricPoint{
						Name:       m.Name,
						Kind:       "counter",
						Attributes: attributesOf(dp.Attributes.ToSlice()),
						Sum:        float64(dp.Value),
					})
				}
			case metricdata.Gauge[float64]:
				for _, dp := range data.DataPoints {
					points = append(points, metricPoint{
						Name:       m.Name,
						Kind:       "gauge",
						Attributes: attributesOf(dp.Attributes.ToSlice()),
						Sum:        dp.Value,
					})
				}
			}
		}
	}

	return points
}

func attributesOf(kvs []attribute.KeyValue) map[string]string {
	if len(kvs) == 0 {
		return nil
	}

	attrs := make(map[string]string, len(kvs))
	for _, kv := range kvs {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}

	return attrs
}

// syncWriter serializes writes of the main goroutine and the notification worker.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.w.Write(p)
}
