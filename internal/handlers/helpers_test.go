// helpers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go_duduolingo/internal/config"
	"go_duduolingo/internal/handlers"
	"go_duduolingo/internal/media"
	"go_duduolingo/internal/model"
	"go_duduolingo/internal/repository"
	"go_duduolingo/internal/service"
	"go_duduolingo/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// httpRequestDetails はHTTPリクエストの送信に必要な情報をまとめます。
type httpRequestDetails struct {
	Method  string
	Path    string
	Body    interface{}
	Headers map[string]string
}

// sendRequest はHTTPリクエストを送信し、ステータスコードを検証してボディを返します。
func sendRequest(t *testing.T, server *httptest.Server, details httpRequestDetails, expectedCode int) []byte {
	t.Helper()

	var reqBodyReader io.Reader
	if details.Body != nil {
		if strPayload, ok := details.Body.(string); ok {
			reqBodyReader = strings.NewReader(strPayload)
		} else {
			reqBodyBytes, err := json.Marshal(details.Body)
			require.NoError(t, err, "Failed to marshal request body")
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	req, err := http.NewRequest(details.Method, server.URL+details.Path, reqBodyReader)
	require.NoError(t, err, "Failed to create request")
	if reqBodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range details.Headers {
		req.Header.Set(key, value)
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err, "Failed to execute request")
	defer resp.Body.Close()

	respBodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")
	assert.Equal(t, expectedCode, resp.StatusCode, "Status code mismatch: %s", string(respBodyBytes))

	return respBodyBytes
}

// decodeInto はレスポンスボディを dst にデコードします
func decodeInto(t *testing.T, body []byte, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(body, dst), "Failed to decode response: %s", string(body))
}

func jsonDecode(resp *http.Response, dst interface{}) error {
	return json.NewDecoder(resp.Body).Decode(dst)
}

// verifyErrorResponse は共通エラー形式の code と field を検証します。
func verifyErrorResponse(t *testing.T, body []byte, expectedCode, expectedField string) model.ErrorDetail {
	t.Helper()
	var errResp model.APIErrorResponse
	decodeInto(t, body, &errResp)
	assert.Equal(t, expectedCode, errResp.Error.Code)
	if expectedField != "" {
		assert.Equal(t, expectedField, errResp.Error.Field)
	}
	return errResp.Error
}

// newTestServer は実DB (sqlite) につないだアプリ全体を httptest.Server で起動します
func newTestServer(t *testing.T, db *gorm.DB, detector service.ObjectDetector) *httptest.Server {
	t.Helper()

	cfg := config.Config{
		App:   config.AppConfig{LeaderboardLimit: config.DefaultLeaderboardLimit, LeaderboardMax: config.DefaultLeaderboardMax},
		Media: config.MediaConfig{ImagePrefix: config.DefaultImagePrefix, VideoPrefix: config.DefaultVideoPrefix},
	}

	userRepo := repository.NewGormUserRepository()
	progRepo := repository.NewGormProgressRepository()
	contentRepo := repository.NewGormContentRepository()
	resolver := media.NewResolver(cfg.Media.ImagePrefix, cfg.Media.VideoPrefix)

	router := handlers.NewRouter(cfg, db, handlers.Services{
		User:        service.NewUserService(db, userRepo),
		Progress:    service.NewProgressService(db, userRepo, progRepo, contentRepo),
		Leaderboard: service.NewLeaderboardService(db, userRepo, cfg.App),
		Content:     service.NewContentService(db, contentRepo, progRepo, resolver),
		Detect:      service.NewDetectService(detector),
	}, testutil.DiscardLogger())

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}
