package standingsservice

import (
	"math"
	"sort"

	"github.com/greenside-club/scoring/app/modules/scorecard/scorecardtypes"
	"github.com/greenside-club/scoring/app/modules/standings/standingstypes"
	"github.com/greenside-club/scoring/app/shared/sharedtypes"
)

// pointsEpsilon absorbs the floating error from summing 1/N hole splits.
const pointsEpsilon = 1e-9

// ComputeMatchPlay runs per-hole best-ball comparisons over the event's
// persisted scores. Only records with a group, a team, and a complete
// 18-hole stroke array participate; everything else narrows the population
// silently. The engine is symmetric over any number of teams per group.
func ComputeMatchPlay(records []scorecardtypes.ScoreRecord) *standingstypes.MatchPlayResult {
	eligible := make([]scorecardtypes.ScoreRecord, 0, len(records))
	for _, r := range records {
		if r.GroupNumber == nil || r.TeamName == "" || len(r.HoleScores) != sharedtypes.HoleCount {
			continue
		}
		eligible = append(eligible, r)
	}

	groups := make(map[int][]scorecardtypes.ScoreRecord)
	var groupOrder []int
	for _, r := range eligible {
		g := *r.GroupNumber
		if _, seen := groups[g]; !seen {
			groupOrder = append(groupOrder, g)
		}
		groups[g] = append(groups[g], r)
	}
	sort.Ints(groupOrder)

	result := &standingstypes.MatchPlayResult{}
	totals := make(map[string]int)
	var totalOrder []string

	for _, g := range groupOrder {
		outcome := computeGroup(g, groups[g])
		result.PerGroup = append(result.PerGroup, outcome)

		for _, team := range outcome.Teams {
			if _, seen := totals[team.TeamName]; !seen {
				totalOrder = append(totalOrder, team.TeamName)
			}
			totals[team.TeamName] += int(math.Round(team.Points))
		}
	}

	for _, name := range totalOrder {
		result.TotalScores = append(result.TotalScores, standingstypes.TeamTotal{
			TeamName:    name,
			TotalPoints: totals[name],
		})
	}
	sort.SliceStable(result.TotalScores, func(i, j int) bool {
		return result.TotalScores[i].TotalPoints > result.TotalScores[j].TotalPoints
	})

	return result
}

func computeGroup(group int, records []scorecardtypes.ScoreRecord) standingstypes.GroupOutcome {
	teams := make(map[string][]scorecardtypes.ScoreRecord)
	var teamOrder []string
	for _, r := range records {
		if _, seen := teams[r.TeamName]; !seen {
			teamOrder = append(teamOrder, r.TeamName)
		}
		teams[r.TeamName] = append(teams[r.TeamName], r)
	}

	points := make(map[string]float64, len(teamOrder))

	for h := 0; h < sharedtypes.HoleCount; h++ {
		best := make(map[string]int)
		holeMin := 0
		for _, name := range teamOrder {
			b, ok := teamBestAtHole(teams[name], h)
			if !ok {
				// No player on this team has valid data at this hole;
				// the team sits the hole out.
				continue
			}
			best[name] = b
			if holeMin == 0 || b < holeMin {
				holeMin = b
			}
		}
		if len(best) == 0 {
			// Nobody has data: the hole contributes no points at all.
			continue
		}

		var winners []string
		for _, name := range teamOrder {
			if b, ok := best[name]; ok && b == holeMin {
				winners = append(winners, name)
			}
		}
		share := 1.0 / float64(len(winners))
		for _, name := range winners {
			points[name] += share
		}
	}

	outcome := standingstypes.GroupOutcome{Group: group}
	maxPoints := math.Inf(-1)
	for _, name := range teamOrder {
		outcome.Teams = append(outcome.Teams, standingstypes.TeamScore{
			TeamName:    name,
			Points:      points[name],
			PlayerCount: len(teams[name]),
		})
		if points[name] > maxPoints {
			maxPoints = points[name]
		}
	}

	var leaders []string
	for _, name := range teamOrder {
		if math.Abs(points[name]-maxPoints) < pointsEpsilon {
			leaders = append(leaders, name)
		}
	}
	if len(leaders) == 1 {
		outcome.Winner = leaders[0]
	} else {
		outcome.Winner = standingstypes.WinnerTie
	}
	return outcome
}

// teamBestAtHole returns the minimum actual stroke count among the team's
// players at the hole, skipping players with no valid value there.
func teamBestAtHole(players []scorecardtypes.ScoreRecord, hole int) (int, bool) {
	best := 0
	found := false
	for _, p := range players {
		s := p.HoleScores[hole]
		if s <= 0 {
			continue
		}
		if !found || s < best {
			best = s
			found = true
		}
	}
	return best, found
}
