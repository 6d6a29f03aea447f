package logger

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
// If id is empty, it returns an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// KeyKind records the PIX key kind under the key "key_kind".
func KeyKind(kind fmt.Stringer) slog.Attr {
	if kind == nil {
		return slog.Attr{}
	}
	return slog.String("key_kind", kind.String())
}

// PayloadChecksum records the trailing CRC of a payload under the key
// "checksum". Payloads shorter than four characters produce an empty Attr.
func PayloadChecksum(payload string) slog.Attr {
	if len(payload) < 4 {
		return slog.Attr{}
	}
	return slog.String("checksum", payload[len(payload)-4:])
}

// Amount records a monetary amount under the key "amount".
func Amount(amount fmt.Stringer) slog.Attr {
	if amount == nil {
		return slog.Attr{}
	}
	return slog.String("amount", amount.String())
}

// HTTPRequest groups the usual request log fields under the key "http".
func HTTPRequest(method, path string, status int, d time.Duration) slog.Attr {
	return Group("http",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		Duration(d),
	)
}
