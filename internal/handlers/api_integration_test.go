package handlers_test

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"

	"go_duduolingo/internal/model"
	"go_duduolingo/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPI_ScoreLifecycle(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	testutil.SeedBricks(t, db,
		testutil.Brick(1, "en", 1, "data/images/apple.png", "apple", "りんご", "noun"),
		testutil.Brick(2, "en", 1, "banana.png", "banana", "バナナ", "noun"),
		testutil.Brick(3, "ja", 1, "", "ねこ", "cat", "noun"),
	)
	server := newTestServer(t, db, nil)

	// ログイン: 初回は new、2回目以降は existing
	var login model.LoginResponse
	decodeInto(t, sendRequest(t, server, httpRequestDetails{Method: http.MethodPost, Path: "/login", Body: map[string]any{"username": "  alice "}}, http.StatusOK), &login)
	assert.Equal(t, model.LoginStatusNew, login.Status)
	assert.Equal(t, "alice", login.Username)

	decodeInto(t, sendRequest(t, server, httpRequestDetails{Method: http.MethodPost, Path: "/login", Body: map[string]any{"username": "alice"}}, http.StatusOK), &login)
	assert.Equal(t, model.LoginStatusExisting, login.Status)

	// 記録なしの進捗は全グループがスコア0
	var progress model.BrickProgressResponse
	decodeInto(t, sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/user_bricks/alice"}, http.StatusOK), &progress)
	assert.Equal(t, []model.GroupScore{{GroupID: 1, Score: 0}, {GroupID: 2, Score: 0}, {GroupID: 3, Score: 0}}, progress.Bricks)
	assert.Equal(t, 0.0, progress.TotalScore)

	// スコア登録は上書き (加算ではない)
	var upsert model.UpsertScoreResponse
	decodeInto(t, sendRequest(t, server, httpRequestDetails{Method: http.MethodPost, Path: "/user_brick", Body: map[string]any{"username": "alice", "group_id": 1, "score": 5}}, http.StatusOK), &upsert)
	assert.Equal(t, model.UpsertScoreResponse{Success: true, Score: 5, TotalScore: 5}, upsert)

	decodeInto(t, sendRequest(t, server, httpRequestDetails{Method: http.MethodPost, Path: "/user_brick", Body: map[string]any{"username": "alice", "group_id": 1, "score": 3}}, http.StatusOK), &upsert)
	assert.Equal(t, model.UpsertScoreResponse{Success: true, Score: 3, TotalScore: 3}, upsert)

	decodeInto(t, sendRequest(t, server, httpRequestDetails{Method: http.MethodPost, Path: "/user_brick", Body: map[string]any{"username": "alice", "group_id": 3, "score": "4.5"}}, http.StatusOK), &upsert)
	assert.Equal(t, 4.5, upsert.Score)
	assert.Equal(t, 7.5, upsert.TotalScore)

	decodeInto(t, sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/user_bricks/alice"}, http.StatusOK), &progress)
	assert.Equal(t, []model.GroupScore{{GroupID: 1, Score: 3}, {GroupID: 2, Score: 0}, {GroupID: 3, Score: 4.5}}, progress.Bricks)
	assert.Equal(t, 7.5, progress.TotalScore)

	// 言語指定のリセットは en のグループだけ
	var success model.SuccessResponse
	decodeInto(t, sendRequest(t, server, httpRequestDetails{Method: http.MethodPost, Path: "/user_bricks/reset", Body: map[string]any{"username": "alice", "language": "en"}}, http.StatusOK), &success)
	assert.True(t, success.Success)

	decodeInto(t, sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/user_bricks/alice"}, http.StatusOK), &progress)
	assert.Equal(t, []model.GroupScore{{GroupID: 1, Score: 0}, {GroupID: 2, Score: 0}, {GroupID: 3, Score: 4.5}}, progress.Bricks)
	assert.Equal(t, 4.5, progress.TotalScore)

	// 全体リセット後は合計0
	sendRequest(t, server, httpRequestDetails{Method: http.MethodPost, Path: "/user_bricks/reset", Body: map[string]any{"username": "alice"}}, http.StatusOK)

	var board model.LeaderboardResponse
	decodeInto(t, sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/leaderboard"}, http.StatusOK), &board)
	assert.Equal(t, []model.LeaderboardEntry{{Username: "alice", TotalScore: 0}}, board.Leaderboard)
}

func TestAPI_ValidationAndErrors(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	testutil.SeedBricks(t, db, testutil.Brick(1, "en", 1, "", "apple", "りんご", "noun"))
	server := newTestServer(t, db, nil)

	tests := []struct {
		name          string
		details       httpRequestDetails
		expectedCode  int
		expectedError string
		expectedField string
	}{
		{
			name:          "異常系: 空白のみのユーザー名でログイン",
			details:       httpRequestDetails{Method: http.MethodPost, Path: "/login", Body: map[string]any{"username": "   "}},
			expectedCode:  http.StatusBadRequest,
			expectedError: model.CodeValidation,
			expectedField: "username",
		},
		{
			name:          "異常系: 存在しないグループへのスコア",
			details:       httpRequestDetails{Method: http.MethodPost, Path: "/user_brick", Body: map[string]any{"username": "alice", "group_id": 42, "score": 1}},
			expectedCode:  http.StatusNotFound,
			expectedError: model.CodeNotFound,
			expectedField: "group_id",
		},
		{
			name:          "異常系: Step テーブルにないグループ",
			details:       httpRequestDetails{Method: http.MethodPost, Path: "/user_step", Body: map[string]any{"username": "alice", "group_id": 1, "score": 1}},
			expectedCode:  http.StatusNotFound,
			expectedError: model.CodeNotFound,
		},
		{
			name:          "異常系: 空ボディ",
			details:       httpRequestDetails{Method: http.MethodPost, Path: "/user_bricks/reset", Body: ""},
			expectedCode:  http.StatusBadRequest,
			expectedError: model.CodeInvalidBody,
		},
		{
			name:          "異常系: 長すぎるユーザー名",
			details:       httpRequestDetails{Method: http.MethodPost, Path: "/login", Body: map[string]any{"username": strings.Repeat("x", 256)}},
			expectedCode:  http.StatusBadRequest,
			expectedError: model.CodeValidation,
			expectedField: "username",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := sendRequest(t, server, tt.details, tt.expectedCode)
			verifyErrorResponse(t, body, tt.expectedError, tt.expectedField)
		})
	}

	// 失敗したスコア登録はユーザーを作らない
	var board model.LeaderboardResponse
	decodeInto(t, sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/leaderboard"}, http.StatusOK), &board)
	assert.Empty(t, board.Leaderboard)
}

func TestAPI_LeaderboardOrder(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	testutil.SeedBricks(t, db,
		testutil.Brick(1, "en", 1, "", "apple", "りんご", "noun"),
		testutil.Brick(2, "en", 1, "", "banana", "バナナ", "noun"),
	)
	server := newTestServer(t, db, nil)

	scores := map[string]float64{"alice": 10, "bob": 30, "carol": 20}
	for _, name := range []string{"alice", "bob", "carol"} {
		sendRequest(t, server, httpRequestDetails{Method: http.MethodPost, Path: "/user_brick", Body: map[string]any{"username": name, "group_id": 1, "score": scores[name]}}, http.StatusOK)
	}

	var board model.LeaderboardResponse
	decodeInto(t, sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/leaderboard"}, http.StatusOK), &board)
	require.Len(t, board.Leaderboard, 3)
	assert.Equal(t, []string{"bob", "carol", "alice"}, []string{board.Leaderboard[0].Username, board.Leaderboard[1].Username, board.Leaderboard[2].Username})

	decodeInto(t, sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/leaderboard?limit=2"}, http.StatusOK), &board)
	assert.Len(t, board.Leaderboard, 2)
}

func TestAPI_StepsShowVideoPerUser(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	testutil.SeedSteps(t, db,
		testutil.Step(1, "en", 1, "day1.png", "day1.mp4", "hello", "こんにちは", "phrase"),
		testutil.Step(2, "en", 2, "day2.png", "day2.mp4", "bye", "さようなら", "phrase"),
	)
	server := newTestServer(t, db, nil)

	sendRequest(t, server, httpRequestDetails{Method: http.MethodPost, Path: "/user_step", Body: map[string]any{"username": "alice", "group_id": 1, "score": 1}}, http.StatusOK)

	var steps []model.StepView
	decodeInto(t, sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/steps?language=en&username=alice"}, http.StatusOK), &steps)
	require.Len(t, steps, 2)
	assert.True(t, steps[0].ShowVideo)
	require.NotNil(t, steps[0].Video)
	assert.Equal(t, "/data/videos/day1.mp4", *steps[0].Video)
	assert.False(t, steps[1].ShowVideo)

	// 他のユーザーには完了状態が見えない
	decodeInto(t, sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/api/steps?username=bob"}, http.StatusOK), &steps)
	require.Len(t, steps, 2)
	assert.False(t, steps[0].ShowVideo)
	assert.False(t, steps[1].ShowVideo)
}

func TestAPI_ConcurrentUpserts(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	var bricks []*model.Brick
	for i := int64(1); i <= 10; i++ {
		bricks = append(bricks, testutil.Brick(i, "en", 1, "", fmt.Sprintf("w%d", i), "def", "noun"))
	}
	testutil.SeedBricks(t, db, bricks...)
	server := newTestServer(t, db, nil)

	var wg sync.WaitGroup
	statuses := make([]int, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := fmt.Sprintf(`{"username":"alice","group_id":%d,"score":2}`, i+1)
			resp, err := server.Client().Post(server.URL+"/user_brick", "application/json", strings.NewReader(body))
			if !assert.NoError(t, err) {
				return
			}
			resp.Body.Close()
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()
	for _, code := range statuses {
		assert.Equal(t, http.StatusOK, code)
	}

	var progress model.BrickProgressResponse
	decodeInto(t, sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/user_bricks/alice"}, http.StatusOK), &progress)
	assert.Equal(t, 20.0, progress.TotalScore)

	var board model.LeaderboardResponse
	decodeInto(t, sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/leaderboard"}, http.StatusOK), &board)
	assert.Equal(t, []model.LeaderboardEntry{{Username: "alice", TotalScore: 20}}, board.Leaderboard)
}

func TestAPI_Health(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	server := newTestServer(t, db, nil)

	body := sendRequest(t, server, httpRequestDetails{Method: http.MethodGet, Path: "/health"}, http.StatusOK)
	assert.Equal(t, "OK", string(body))
}
