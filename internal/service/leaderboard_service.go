package service

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sbasnet/pscprep/internal/dto"
	"github.com/sbasnet/pscprep/internal/model"
	"github.com/sbasnet/pscprep/internal/repository"
)

// LeaderboardService rebuilds ranked standings per (period, branch,
// sub-branch) scope and keeps the ALL_TIME running totals fresh between
// recalculations.
type LeaderboardService interface {
	Recalculate(period model.TimePeriod, branchID uint, subBranchID *uint) error
	RecalculateAll() error
	UpdateScore(userID, branchID uint, scoreDelta float64) error
	Top(query dto.LeaderboardQuery) ([]dto.LeaderboardEntryDTO, error)
}

type leaderboardService struct {
	leaderboardRepo repository.LeaderboardRepository
	branchRepo      repository.BranchRepository
}

func NewLeaderboardService(
	leaderboardRepo repository.LeaderboardRepository,
	branchRepo repository.BranchRepository,
) LeaderboardService {
	return &leaderboardService{
		leaderboardRepo: leaderboardRepo,
		branchRepo:      branchRepo,
	}
}

// Recalculate rebuilds one scope from qualifying completed attempts.
// A zero branch id is a designed no-op: the schema requires a branch, so
// there is no aggregation target to rebuild.
func (s *leaderboardService) Recalculate(period model.TimePeriod, branchID uint, subBranchID *uint) error {
	if branchID == 0 {
		log.Debug().Str("period", string(period)).Msg("Recalculate called without branch, skipping")
		return nil
	}

	windowStart := period.WindowStart(time.Now())

	// Snapshot current ranks before the old entries are dropped, so survivors
	// keep their delta source.
	oldEntries, err := s.leaderboardRepo.FindScope(period, branchID, subBranchID)
	if err != nil {
		return err
	}
	previousRanks := make(map[uint]int, len(oldEntries))
	for _, entry := range oldEntries {
		previousRanks[entry.UserID] = entry.Rank
	}

	aggregates, err := s.leaderboardRepo.AggregateQualifying(windowStart, branchID, subBranchID)
	if err != nil {
		return err
	}

	entries := AssignRanks(aggregates, previousRanks, period, branchID, subBranchID)
	if err := s.leaderboardRepo.ReplaceScope(period, branchID, subBranchID, entries); err != nil {
		return err
	}

	log.Info().
		Str("period", string(period)).
		Uint("branchID", branchID).
		Int("entries", len(entries)).
		Msg("Leaderboard recalculated")
	return nil
}

// RecalculateAll walks every active branch and period. One branch failing
// does not stop the remaining branches; failures are logged per scope.
func (s *leaderboardService) RecalculateAll() error {
	branches, err := s.branchRepo.FindActive()
	if err != nil {
		return err
	}
	for _, branch := range branches {
		for _, period := range model.AllPeriods {
			if err := s.Recalculate(period, branch.ID, nil); err != nil {
				log.Error().Err(err).
					Str("period", string(period)).
					Uint("branchID", branch.ID).
					Msg("Leaderboard recalculation failed for branch")
			}
		}
	}
	return nil
}

// UpdateScore is the incremental ALL_TIME fast path invoked after each
// completed attempt. It only ever adds; ranks are corrected by the next full
// recalculation regardless of interleaving.
func (s *leaderboardService) UpdateScore(userID, branchID uint, scoreDelta float64) error {
	return s.leaderboardRepo.IncrementAllTime(userID, branchID, scoreDelta)
}

func (s *leaderboardService) Top(query dto.LeaderboardQuery) ([]dto.LeaderboardEntryDTO, error) {
	limit := query.Limit
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	entries, err := s.leaderboardRepo.TopOfScope(model.TimePeriod(query.TimePeriod), query.BranchID, query.SubBranchID, limit)
	if err != nil {
		return nil, err
	}

	result := make([]dto.LeaderboardEntryDTO, len(entries))
	for i, entry := range entries {
		result[i] = dto.LeaderboardEntryDTO{
			UserID:             entry.UserID,
			Rank:               entry.Rank,
			PreviousRank:       entry.PreviousRank,
			RankChange:         entry.RankChange(),
			TotalScore:         entry.TotalScore,
			TestsCompleted:     entry.TestsCompleted,
			AccuracyPercentage: entry.AccuracyPercentage,
			UpdatedAt:          entry.UpdatedAt,
		}
	}
	return result, nil
}
