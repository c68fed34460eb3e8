package constraints

import "github.com/jakechorley/nursery-shifts/pkg/core/model"

// Shortage is a band whose same-day headcount is below its floor
type Shortage struct {
	Pattern  model.ShiftCode `json:"pattern"`
	Current  int             `json:"current"`
	Required int             `json:"required"`
}

// Deficit returns how many more staff the band needs
func (s Shortage) Deficit() int {
	return s.Required - s.Current
}

// FindShortages compares the earliest and latest band counts on a day against their floors
func FindShortages(ctx *Context, day int) []Shortage {
	date := ctx.DateKey(day)
	shortages := []Shortage{}
	for _, band := range []model.ShiftCode{model.EarliestBand, model.LatestBand} {
		required := ctx.Settings.Minimum(band)
		current := CountOnDay(ctx.Schedule, date, band)
		if current < required {
			shortages = append(shortages, Shortage{Pattern: band, Current: current, Required: required})
		}
	}
	return shortages
}

// Coverage reports every band below its configured minimum on date, counting
// part-time credit from the context's time ranges, plus the total headcount
// (reported with an empty pattern) when it is below the daily target.
func Coverage(ctx *Context, date string) []Shortage {
	shortages := []Shortage{}
	for _, p := range ctx.Settings.Patterns {
		current := EffectiveCount(ctx, ctx.TimeRanges, date, p.Code)
		if current < p.Minimum {
			shortages = append(shortages, Shortage{Pattern: p.Code, Current: current, Required: p.Minimum})
		}
	}
	if headcount := Headcount(ctx, ctx.TimeRanges, date); headcount < ctx.Settings.DailyHeadcount {
		shortages = append(shortages, Shortage{Current: headcount, Required: ctx.Settings.DailyHeadcount})
	}
	return shortages
}
