package domain

import "time"

// Season is a meteorological season of the northern hemisphere.
type Season int

const (
	Winter Season = iota
	Spring
	Summer
	Fall
)

// Seasons lists every Season in reporting order.
var Seasons = []Season{Winter, Spring, Summer, Fall}

func (s Season) String() string {
	switch s {
	case Winter:
		return "Winter"
	case Spring:
		return "Spring"
	case Summer:
		return "Summer"
	case Fall:
		return "Fall"
	default:
		return "Unknown"
	}
}

// SeasonOf maps a calendar month to its season: Winter={Dec,Jan,Feb},
// Spring={Mar,Apr,May}, Summer={Jun,Jul,Aug}, Fall={Sep,Oct,Nov}.
func SeasonOf(m time.Month) Season {
	switch m {
	case time.December, time.January, time.February:
		return Winter
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	default:
		return Fall
	}
}
