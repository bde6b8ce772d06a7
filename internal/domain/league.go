package domain

import "fmt"

// League is the clan battle tier, 0 being the highest.
type League int

const (
	LeagueHurricane League = iota
	LeagueTyphoon
	LeagueStorm
	LeagueGale
	LeagueSquall
)

var leagueNames = map[League]string{
	LeagueHurricane: "hurricane",
	LeagueTyphoon:   "typhoon",
	LeagueStorm:     "storm",
	LeagueGale:      "gale",
	LeagueSquall:    "squall",
}

// clan portal display colors
var leagueColors = map[int64]League{
	0xcda4ff: LeagueHurricane,
	0xbee7bd: LeagueTyphoon,
	0xe3d6a0: LeagueStorm,
	0xcce4e4: LeagueGale,
	0xb3b3b3: LeagueSquall,
}

func (l League) String() string {
	if name, ok := leagueNames[l]; ok {
		return name
	}
	return fmt.Sprintf("league(%d)", int(l))
}

func (l League) Valid() bool {
	_, ok := leagueNames[l]
	return ok
}

func LeagueForColor(color int64) (League, error) {
	league, ok := leagueColors[color]
	if !ok {
		return 0, fmt.Errorf("%w: %#06x", ErrUnknownLeagueColor, color)
	}
	return league, nil
}
