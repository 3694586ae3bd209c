package service

import (
	"sort"

	"github.com/sbasnet/pscprep/internal/model"
	"github.com/sbasnet/pscprep/internal/repository"
)

// AssignRanks turns per-user aggregates into the full entry set for one
// leaderboard scope. Ordering is total score descending, accuracy descending,
// then user id ascending so exact ties resolve the same way on every run.
// Ranks are dense and 1-based: K users always receive ranks 1..K, ties
// included. previousRanks carries the user→rank snapshot taken before the old
// entries were dropped; absent users are new entrants and keep a nil
// previous_rank.
func AssignRanks(
	aggregates []repository.UserAggregate,
	previousRanks map[uint]int,
	period model.TimePeriod,
	branchID uint,
	subBranchID *uint,
) []model.LeaderboardEntry {
	sorted := make([]repository.UserAggregate, len(aggregates))
	copy(sorted, aggregates)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].TotalScore != sorted[j].TotalScore {
			return sorted[i].TotalScore > sorted[j].TotalScore
		}
		if sorted[i].AvgAccuracy != sorted[j].AvgAccuracy {
			return sorted[i].AvgAccuracy > sorted[j].AvgAccuracy
		}
		return sorted[i].UserID < sorted[j].UserID
	})

	entries := make([]model.LeaderboardEntry, 0, len(sorted))
	for i, agg := range sorted {
		entry := model.LeaderboardEntry{
			UserID:             agg.UserID,
			TimePeriod:         period,
			BranchID:           branchID,
			SubBranchID:        subBranchID,
			Rank:               i + 1,
			TotalScore:         agg.TotalScore,
			TestsCompleted:     agg.TestsCompleted,
			AccuracyPercentage: agg.AvgAccuracy,
		}
		if prev, ok := previousRanks[agg.UserID]; ok {
			p := prev
			entry.PreviousRank = &p
		}
		entries = append(entries, entry)
	}
	return entries
}
