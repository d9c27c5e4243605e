package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"go_duduolingo/internal/config"
	"go_duduolingo/internal/model"
	"go_duduolingo/internal/repository"
	"go_duduolingo/internal/testutil"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// LedgerTestSuite はログインから進捗・ランキングまでを実DB (sqlite) で通しで検証します
type LedgerTestSuite struct {
	suite.Suite
	ctx         context.Context
	db          *gorm.DB
	users       UserService
	progress    ProgressService
	leaderboard LeaderboardService
}

func (s *LedgerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutil.NewSQLiteDB(s.T())

	userRepo := repository.NewGormUserRepository()
	progRepo := repository.NewGormProgressRepository()
	contentRepo := repository.NewGormContentRepository()
	s.users = NewUserService(s.db, userRepo)
	s.progress = NewProgressService(s.db, userRepo, progRepo, contentRepo)
	s.leaderboard = NewLeaderboardService(s.db, userRepo, config.AppConfig{LeaderboardLimit: 10, LeaderboardMax: 100})

	var bricks []*model.Brick
	for i := int64(1); i <= 4; i++ {
		lang := "en"
		if i%2 == 0 {
			lang = "fr"
		}
		bricks = append(bricks, testutil.Brick(i, lang, 1, "", fmt.Sprintf("w%d", i), "def", "noun"))
	}
	testutil.SeedBricks(s.T(), s.db, bricks...)
}

func TestLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

func (s *LedgerTestSuite) upsert(username string, groupID int64, raw string) *model.ScoreResult {
	res, err := s.progress.UpsertScore(s.ctx, model.KindBrick, username, int64Ptr(groupID), json.RawMessage(raw))
	s.Require().NoError(err)
	return res
}

func (s *LedgerTestSuite) TestLoginNewExactlyOnce() {
	for _, name := range []string{"alice", " alice", "alice\t"} {
		resp, err := s.users.Login(s.ctx, name)
		s.Require().NoError(err)
		s.Equal("alice", resp.Username)
		if name == "alice" {
			s.Equal(model.LoginStatusNew, resp.Status)
		} else {
			s.Equal(model.LoginStatusExisting, resp.Status)
		}
	}
	var count int64
	s.Require().NoError(s.db.Model(&model.User{}).Where("username = ?", "alice").Count(&count).Error)
	s.Equal(int64(1), count)
}

func (s *LedgerTestSuite) TestUpsertThenReadShowsScoreAndSum() {
	s.upsert("alice", 1, `2.5`)
	s.upsert("alice", 2, `"4"`)
	s.upsert("alice", 3, `true`)

	p, err := s.progress.GetUserProgress(s.ctx, model.KindBrick, "alice")
	s.Require().NoError(err)

	sum := 0.0
	for _, g := range p.Groups {
		sum += g.State.Value()
	}
	s.Equal(7.5, sum)
	s.Equal(sum, p.TotalScore)
	s.Equal(model.Recorded(4), scoreOf(p, 2))
	s.Equal(model.Absent(), scoreOf(p, 4))
}

func (s *LedgerTestSuite) TestUpsertIdempotent() {
	first := s.upsert("alice", 1, `5`)
	second := s.upsert("alice", 1, `5`)
	s.Equal(first, second)
	s.Equal(5.0, storedTotal(s.T(), s.db, "alice"))
}

func (s *LedgerTestSuite) TestResetAllLeavesZeroTotal() {
	s.upsert("alice", 1, `5`)
	s.upsert("alice", 2, `6`)

	s.Require().NoError(s.progress.ResetProgress(s.ctx, model.KindBrick, "alice", nil))

	s.Equal(0.0, storedTotal(s.T(), s.db, "alice"))
	entries, err := s.leaderboard.Top(s.ctx, 0)
	s.Require().NoError(err)
	s.Equal([]model.LeaderboardEntry{{Username: "alice", TotalScore: 0}}, entries)

	// 行は削除されずスコア0で残る
	var rows int64
	s.Require().NoError(s.db.Table(model.KindBrick.ProgressTable()).Where("username = ?", "alice").Count(&rows).Error)
	s.Equal(int64(2), rows)
}

func (s *LedgerTestSuite) TestLeaderboardDescending() {
	s.upsert("alice", 1, `3`)
	s.upsert("bob", 1, `9`)
	s.upsert("carol", 1, `6`)

	entries, err := s.leaderboard.Top(s.ctx, 2)
	s.Require().NoError(err)
	s.Equal([]model.LeaderboardEntry{
		{Username: "bob", TotalScore: 9},
		{Username: "carol", TotalScore: 6},
	}, entries)
}
