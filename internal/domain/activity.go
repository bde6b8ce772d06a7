package domain

import "time"

// activeLevelSteps maps "days since last battle" ceilings to a level,
// starting at level 2. Anything older than the last step is level 8.
var activeLevelSteps = []int64{1, 3, 7, 30, 90, 180}

// ActiveLevel grades how recently a player has played:
// 0 hidden profile, 1 no battles, 2..8 from most to least recent.
func ActiveLevel(isPublic bool, totalBattles, lastBattleTime int64, now time.Time) int {
	if !isPublic {
		return 0
	}
	if totalBattles == 0 || lastBattleTime == 0 {
		return 1
	}
	elapsed := now.Unix() - lastBattleTime
	for i, days := range activeLevelSteps {
		if elapsed <= days*86400 {
			return i + 2
		}
	}
	return len(activeLevelSteps) + 2
}
