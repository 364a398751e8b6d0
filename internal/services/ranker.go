package services

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"alfredoptarigan/resume-screener/internal/models"
)

// Semantic match dominates the final score; experience is a bounded secondary
// signal worth at most 30 points.
const (
	matchWeight            = 0.7
	experienceBonusPerYear = 10.0
	experienceBonusCap     = 30.0
)

// CompositeRanker combines the match score with the experience bonus and
// orders the result set.
type CompositeRanker interface {
	FinalScore(matchScore float64, experience string) float64
	Rank(candidates []models.ScoredCandidate) []models.ScoredCandidate
}

type compositeRanker struct{}

func NewCompositeRanker() CompositeRanker {
	return &compositeRanker{}
}

// FinalScore implements CompositeRanker.
func (r *compositeRanker) FinalScore(matchScore float64, experience string) float64 {
	bonus := math.Min(parseExperienceYears(experience)*experienceBonusPerYear, experienceBonusCap)
	return round2(matchWeight*matchScore + bonus)
}

// Rank implements CompositeRanker. Stable sort by final score descending, so
// equal scores keep their input order, then 1-based dense ranks.
func (r *compositeRanker) Rank(candidates []models.ScoredCandidate) []models.ScoredCandidate {
	ranked := make([]models.ScoredCandidate, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore > ranked[j].FinalScore
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked
}

// parseExperienceYears reads the leading numeric token of an experience label
// like "5 years". Unspecified or unparsable labels count as 0 years.
func parseExperienceYears(experience string) float64 {
	fields := strings.Fields(experience)
	if len(fields) == 0 {
		return 0
	}

	years, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || years < 0 {
		return 0
	}

	return years
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
