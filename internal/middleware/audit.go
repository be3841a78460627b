package middleware

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// Audit returns a middleware that appends one line per request to
// logs/<service>_audit.log: method, path, acting user, status code and
// processing time. The user is taken from the request context when an
// auth middleware has run, otherwise from the raw bearer token, otherwise
// "anonymous". Audit failures are swallowed; auditing must never break
// request handling.
func Audit(service string) echo.MiddlewareFunc {
	fpath := filepath.Join("logs", service+"_audit.log")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			durationMS := float64(time.Since(start).Microseconds()) / 1000.0

			status := c.Response().Status
			if err != nil {
				// Let echo's error handler decide the final status.
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			line := fmt.Sprintf("%s - INFO - method=%s path=%s user=%s status=%d duration_ms=%.2f\n",
				time.Now().UTC().Format(time.RFC3339), c.Request().Method,
				c.Request().URL.Path, auditUser(c), status, durationMS)
			_ = appendLine(fpath, line)
			return err
		}
	}
}

// auditUser names the request's actor for the audit trail.
func auditUser(c echo.Context) string {
	if v, ok := c.Get("username").(string); ok && v != "" {
		return v
	}
	header := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(header), "bearer ") {
		if tok := strings.TrimSpace(header[len("bearer "):]); tok != "" {
			return tok
		}
	}
	return "anonymous"
}

func appendLine(fpath, line string) error {
	if err := os.MkdirAll(filepath.Dir(fpath), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(line)
	return err
}
