package progress

import "github.com/julianstephens/habitlit/internal/models"

// Band is the calendar colour bucket of a day's completion rate.
type Band int

const (
	BandEmpty Band = iota // nothing due
	BandNone              // 0
	BandLow               // (0, 0.5)
	BandHigh              // [0.5, 1)
	BandFull              // 1
)

func (b Band) String() string {
	switch b {
	case BandNone:
		return "none"
	case BandLow:
		return "low"
	case BandHigh:
		return "high"
	case BandFull:
		return "full"
	default:
		return "empty"
	}
}

// BandFor classifies a day by its completion rate.
func BandFor(p models.DayProgress) Band {
	if p.TotalHabits == 0 {
		return BandEmpty
	}
	switch rate := p.Rate(); {
	case p.CompletedHabits == 0:
		return BandNone
	case p.CompletedHabits >= p.TotalHabits:
		return BandFull
	case rate < 0.5:
		return BandLow
	default:
		return BandHigh
	}
}
