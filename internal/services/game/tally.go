package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/imposterparty/imposterd/internal/models"
)

// tallyVotes counts votes per target and returns every player ID holding the
// maximum count, sorted. More than one ID means a tie.
func tallyVotes(votes map[string]string) []string {
	if len(votes) == 0 {
		return nil
	}

	counts := make(map[string]int, len(votes))
	for _, targetID := range votes {
		counts[targetID]++
	}

	max := 0
	for _, n := range counts {
		if n > max {
			max = n
		}
	}

	var votedOut []string
	for targetID, n := range counts {
		if n == max {
			votedOut = append(votedOut, targetID)
		}
	}
	sort.Strings(votedOut)
	return votedOut
}

// buildResult classifies a round outcome. The imposter is caught only when it
// is among the voted-out set; a tie that misses the imposter is an imposter
// win even though players were voted out.
func buildResult(votedOutIDs, votedOutNames []string, imposterID string) *models.GameResult {
	caught := false
	for _, id := range votedOutIDs {
		if id == imposterID {
			caught = true
			break
		}
	}

	result := &models.GameResult{
		VotedOutIDs:      votedOutIDs,
		VotedOutNames:    votedOutNames,
		VotedOutID:       votedOutIDs[0],
		VotedOutName:     votedOutNames[0],
		IsTie:            len(votedOutIDs) > 1,
		IsImposterCaught: caught,
		ImposterID:       imposterID,
	}

	switch {
	case caught:
		result.Winners = models.WinnersOtherPlayers
		result.Message = "Imposter caught!"
	case result.IsTie:
		result.Winners = models.WinnersImposter
		result.Message = fmt.Sprintf(
			"Tie! %s were all voted out, but the imposter was not among them. Imposter wins!",
			strings.Join(votedOutNames, ", "))
	default:
		result.Winners = models.WinnersImposter
		result.Message = "Imposter escaped!"
	}

	return result
}
