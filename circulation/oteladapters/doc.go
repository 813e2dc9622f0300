// Package oteladapters bridges the backend-free observability interfaces of the circulation
// package to OpenTelemetry.
//
// The store engines and the feature handlers only know circulation.ContextualLogger,
// circulation.MetricsCollector and circulation.TracingCollector. This package provides
// implementations of those interfaces that delegate to an OpenTelemetry Meter, Tracer and
// Logger, so a librarian binary can export spans and metrics without the domain packages
// importing any OpenTelemetry code.
package oteladapters
