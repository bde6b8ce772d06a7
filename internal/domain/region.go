package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type Region int

const (
	RegionAsia Region = iota + 1
	RegionEU
	RegionNA
	RegionRU
	RegionCN
)

var regionNames = map[Region]string{
	RegionAsia: "asia",
	RegionEU:   "eu",
	RegionNA:   "na",
	RegionRU:   "ru",
	RegionCN:   "cn",
}

func (r Region) String() string {
	if name, ok := regionNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

func (r Region) Valid() bool {
	_, ok := regionNames[r]
	return ok
}

// ParseRegion accepts either the numeric region id or its short name.
func ParseRegion(s string) (Region, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if id, err := strconv.Atoi(s); err == nil {
		if r := Region(id); r.Valid() {
			return r, nil
		}
		return 0, fmt.Errorf("%w: %s", ErrInvalidRegion, s)
	}
	for r, name := range regionNames {
		if name == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrInvalidRegion, s)
}
