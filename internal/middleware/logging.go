package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// logCtxKey はコンテキストにロガーを格納するためのキーです。
type logCtxKey struct{}

// sensitiveHeaders はログ出力時に値をマスキングするヘッダー名のリストです (小文字で定義)。
var sensitiveHeaders = map[string]bool{
	"authorization":    true,
	"cookie":           true,
	"set-cookie":       true,
	"x-api-key":        true,
	"x-moondream-auth": true,
}

// maxLoggedBody はリクエストボディを覗き見る上限です。これを超える分はログに載せません
const maxLoggedBody = 4 << 10

// usernamePaths は GET でパス末尾がユーザー名になるルートです
var usernamePaths = []string{"/user_bricks/", "/user_steps/"}

// statusRecorder はステータスコードと書き込みバイト数を記録します。
// captureBody が true のときだけレスポンスボディを保持します。
type statusRecorder struct {
	http.ResponseWriter
	statusCode  int
	bytesOut    int
	captureBody bool
	body        bytes.Buffer
}

func (sr *statusRecorder) WriteHeader(statusCode int) {
	sr.statusCode = statusCode
	sr.ResponseWriter.WriteHeader(statusCode)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	n, err := sr.ResponseWriter.Write(b)
	sr.bytesOut += n
	if sr.captureBody && sr.body.Len() < maxLoggedBody {
		sr.body.Write(b[:n])
	}
	return n, err
}

// LoggingMiddleware はリクエストごとのロガーをコンテキストに載せ、完了時にアクセスログを出力します。
// アクセスログには分かる範囲でユーザー名を付けます。
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()

			requestLogger := logger.With("req_id", middleware.GetReqID(r.Context()))
			r = r.WithContext(context.WithValue(r.Context(), logCtxKey{}, requestLogger))
			debug := logger.Enabled(r.Context(), slog.LevelDebug)

			requestLogger.Debug("Request started",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)

			reqBody := peekBody(r)

			sr := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK, captureBody: debug}
			next.ServeHTTP(sr, r)

			logLevel := slog.LevelInfo
			if sr.statusCode >= 500 {
				logLevel = slog.LevelError
			} else if sr.statusCode >= 400 {
				logLevel = slog.LevelWarn
			}

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", sr.statusCode,
				"latency_ms", float64(time.Since(startTime).Nanoseconds()) / 1e6,
				"bytes_out", sr.bytesOut,
			}
			if name := usernameFromRequest(r, reqBody); name != "" {
				attrs = append(attrs, "username", name)
			}
			requestLogger.Log(r.Context(), logLevel, "Request completed", attrs...)

			if debug {
				requestLogger.Debug("Request detail",
					"headers", formatHeaders(r.Header),
					"body", truncate(reqBody),
				)
				requestLogger.Debug("Response detail",
					"status", sr.statusCode,
					"headers", formatHeaders(sr.Header()),
					"body", truncate(sr.body.Bytes()),
				)
			}
		})
	}
}

// GetLogger はコンテキストから slog.Logger を取得します。
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(logCtxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// peekBody はリクエストボディの先頭 maxLoggedBody+1 バイトを読み、r.Body を読む前の状態に戻します。
// multipart (画像アップロード) は読みません。
func peekBody(r *http.Request) []byte {
	if r.Body == nil || r.Body == http.NoBody || isMultipart(r) {
		return nil
	}
	peeked, _ := io.ReadAll(io.LimitReader(r.Body, maxLoggedBody+1))
	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(peeked), r.Body), r.Body}
	return peeked
}

// usernameFromRequest はパス、クエリ、JSON ボディの順にユーザー名を探します
func usernameFromRequest(r *http.Request, body []byte) string {
	if r.Method == http.MethodGet {
		for _, prefix := range usernamePaths {
			if rest, ok := strings.CutPrefix(r.URL.Path, prefix); ok && rest != "" && !strings.Contains(rest, "/") {
				return strings.TrimSpace(rest)
			}
		}
	}
	if name := strings.TrimSpace(r.URL.Query().Get("username")); name != "" {
		return name
	}
	if len(body) == 0 || len(body) > maxLoggedBody {
		return ""
	}
	var payload struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Username)
}

// formatHeaders はヘッダー情報をログ出力用に整形・マスキングします
func formatHeaders(headers http.Header) map[string]string {
	result := make(map[string]string, len(headers))
	for key, values := range headers {
		if sensitiveHeaders[strings.ToLower(key)] {
			result[key] = "[SENSITIVE]"
			continue
		}
		result[key] = strings.Join(values, ", ")
	}
	return result
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/")
}

func truncate(b []byte) string {
	if len(b) > maxLoggedBody {
		return string(b[:maxLoggedBody]) + "...(truncated)"
	}
	return string(b)
}
