package engine

import (
	"github.com/tatianab/climate-quest/internal/models"
)

// Loss thresholds.
const (
	MaxSafeTemperature = 85 // loss at or above
	MinBiodiversity    = 30 // loss below
	MinCommunity       = 40 // loss below
)

// Status is the overall state of a game.
type Status int

const (
	StatusPlaying Status = iota
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "PLAYING"
	case StatusWon:
		return "WON"
	case StatusLost:
		return "LOST"
	}
	return "UNKNOWN"
}

func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// LossReason names the meter that ended the game.
type LossReason string

const (
	ReasonNone         LossReason = ""
	ReasonTemperature  LossReason = "temperature too high"
	ReasonBiodiversity LossReason = "biodiversity collapsed"
	ReasonCommunity    LossReason = "community support lost"
)

// Message is the end-screen text for the reason.
func (r LossReason) Message() string {
	switch r {
	case ReasonTemperature:
		return "Temperature too high! The neighborhood overheated."
	case ReasonBiodiversity:
		return "Biodiversity collapsed! The ecosystem can't recover."
	case ReasonCommunity:
		return "Community support lost! People gave up on climate action."
	}
	return ""
}

// Verdict is the evaluator's judgement of a set of meters.
type Verdict struct {
	Status Status
	Reason LossReason
}

// Evaluate checks the loss thresholds in priority order; the first match wins.
// Winning is decided by the season controller, never here.
func Evaluate(m models.Meters) Verdict {
	switch {
	case m.Temperature >= MaxSafeTemperature:
		return Verdict{Status: StatusLost, Reason: ReasonTemperature}
	case m.Biodiversity < MinBiodiversity:
		return Verdict{Status: StatusLost, Reason: ReasonBiodiversity}
	case m.Community < MinCommunity:
		return Verdict{Status: StatusLost, Reason: ReasonCommunity}
	}
	return Verdict{Status: StatusPlaying}
}

// Achievement is an award shown on the win screen.
type Achievement struct {
	Icon  string
	Title string
	Note  string
}

func (a Achievement) String() string {
	return a.Icon + " " + a.Title + ": " + a.Note
}

// Achievements lists the awards earned by the final meters and location progress.
func Achievements(m models.Meters, completed, total int) []Achievement {
	var out []Achievement
	if m.Temperature < 75 {
		out = append(out, Achievement{"❄️", "Cool Master", "Kept temperature below 75°F"})
	}
	if m.Biodiversity > 70 {
		out = append(out, Achievement{"🦋", "Biodiversity Champion", "Achieved 70%+ biodiversity"})
	}
	if m.Community > 70 {
		out = append(out, Achievement{"👥", "Community Hero", "Maintained 70%+ support"})
	}
	if m.Resources > 80 {
		out = append(out, Achievement{"💰", "Resource Manager", "Ended with 80+ resources"})
	}
	if total > 0 && completed == total {
		out = append(out, Achievement{"🌍", "Neighborhood Transformer", "Helped every location!"})
	}
	return out
}
