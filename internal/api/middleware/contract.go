package middleware

import "time"

// HTTPRecorder получатель HTTP-метрик
type HTTPRecorder interface {
	ObserveHTTP(method, path string, status int, duration time.Duration)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
