package game

import "github.com/covidslayer/covidslayer-go/internal/model"

// Outcome is the decision produced by evaluating a game's current health and
// timer values.
type Outcome struct {
	Status model.GameStatus
	Winner model.Winner
}

// Ended reports whether the outcome is terminal
func (o Outcome) Ended() bool {
	return o.Status != model.StatusInProgress
}

// EvaluateOutcome decides whether a game has ended and who won. Rules apply
// in strict priority order: the player dying beats covid dying when both
// healths are simultaneously zero, and only then is timer expiry consulted.
// While the game is still running the winner field carries the "draw"
// placeholder, which callers must not persist.
func EvaluateOutcome(playerHealth, covidHealth, timer int) Outcome {
	if playerHealth <= 0 {
		return Outcome{Status: model.StatusPlayerLost, Winner: model.WinnerCovid}
	}

	if covidHealth <= 0 {
		return Outcome{Status: model.StatusPlayerWon, Winner: model.WinnerPlayer}
	}

	if timer <= 0 {
		switch {
		case playerHealth > covidHealth:
			return Outcome{Status: model.StatusPlayerWon, Winner: model.WinnerPlayer}
		case covidHealth > playerHealth:
			return Outcome{Status: model.StatusPlayerLost, Winner: model.WinnerCovid}
		default:
			return Outcome{Status: model.StatusDraw, Winner: model.WinnerDraw}
		}
	}

	return Outcome{Status: model.StatusInProgress, Winner: model.WinnerDraw}
}
