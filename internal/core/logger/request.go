package logger

import (
	"context"
	"time"
)

// Request is one served HTTP request as both deployments report it.
type Request struct {
	Method    string
	Path      string
	Route     string
	Status    int
	Duration  time.Duration
	ClientIP  string
	UserAgent string
	Size      int64
	Errors    string
}

// LogRequest logs r at info level, warn for 4xx and error for 5xx.
func LogRequest(ctx context.Context, r Request) {
	attrs := attributes{
		"http.method":        r.Method,
		"http.path":          r.Path,
		"http.route":         r.Route,
		"http.status_code":   r.Status,
		"http.duration_ms":   r.Duration.Milliseconds(),
		"http.client_ip":     r.ClientIP,
		"http.response_size": r.Size,
	}
	if r.UserAgent != "" {
		attrs["http.user_agent"] = r.UserAgent
	}
	if r.Errors != "" {
		attrs["http.errors"] = r.Errors
	}

	level := LogLevelInfo
	switch {
	case r.Status >= 500:
		level = LogLevelError
	case r.Status >= 400:
		level = LogLevelWarn
	}
	Log(ctx, LogEntry{Level: level, Message: "HTTP Request", Attributes: attrs})
}
