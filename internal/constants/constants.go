package constants

import "time"

const (
	ClanCacheTTL = 3 * 24 * time.Hour
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
	JobTimeout         = 10 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	RemoteMaxConnsPerHost     = 100
	RemoteMaxIdleConnDuration = 1 * time.Minute
)

const (
	DefaultWorkerCount = 4
	DefaultQueueSize   = 1024
	DefaultJobMaxTries = 5
	JobInitialBackoff  = 200 * time.Millisecond
	JobMaxBackoff      = 5 * time.Second
)

const (
	ShutdownTimeout = 5 * time.Second
)

// recent battle tracking window, in days
const (
	DefaultRecentClass = 30
	MaxRecentClass     = 365
)

// regional vortex API hosts, keyed by region id
var VortexBaseURLs = map[int]string{
	1: "https://vortex.worldofwarships.asia",
	2: "https://vortex.worldofwarships.eu",
	3: "https://vortex.worldofwarships.com",
	4: "https://vortex.korabli.su",
	5: "https://vortex.wowsgame.cn",
}

// regional clan portal hosts, keyed by region id
var ClanBaseURLs = map[int]string{
	1: "https://clans.worldofwarships.asia",
	2: "https://clans.worldofwarships.eu",
	3: "https://clans.worldofwarships.com",
	4: "https://clans.korabli.su",
	5: "https://clans.wowsgame.cn",
}
