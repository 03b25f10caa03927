/*
Package observability provides tools for monitoring machine runs.

It turns the engine's lifecycle hooks into Prometheus metrics and structured
log records, and combines several hook sets into one.
*/
package observability
