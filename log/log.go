package log

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/k0kubun/pp/v3"
	"github.com/mattn/go-isatty"
	"github.com/motemen/go-loghttp"
)

// Logger is the global logger instance
var Logger *slog.Logger

// Output is where logs and diagnostic dumps are written
var Output io.Writer = os.Stderr

// InitLogger initializes the global logger
// It sets the log level to Debug if UFVDATA_DEBUG is set.
// Logs are written as text on a terminal and as JSON otherwise.
func InitLogger() {
	opts := &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelInfo,
	}

	if os.Getenv("UFVDATA_DEBUG") != "" {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if f, ok := Output.(*os.File); ok && !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		handler = slog.NewJSONHandler(Output, opts)
	} else {
		handler = slog.NewTextHandler(Output, opts)
	}
	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	loghttp.DefaultTransport.LogRequest = func(req *http.Request) {
		Debug("HTTP request",
			"method", req.Method,
			"url", req.URL.String(),
			"headers", req.Header,
		)
	}

	loghttp.DefaultTransport.LogResponse = func(resp *http.Response) {
		Debug("HTTP response",
			"method", resp.Request.Method,
			"url", resp.Request.URL.String(),
			"status", resp.Status,
			"status_code", resp.StatusCode,
			"headers", resp.Header,
		)
	}
}

// init initializes the logger when the package is imported
func init() {
	InitLogger()
}

// Transport returns the round tripper that logs every request and response.
func Transport() http.RoundTripper {
	return loghttp.DefaultTransport
}

// Dump pretty-prints v inside a collapsible GitHub Actions log group.
func Dump(title string, v any) {
	printer := pp.New()
	printer.SetOutput(Output)
	printer.SetColoringEnabled(false)
	fmt.Fprintf(Output, "::group::%s\n", title)
	printer.Println(v)
	fmt.Fprintln(Output, "::endgroup::")
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}
