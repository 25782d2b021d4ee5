package tlock

import (
	"time"

	"github.com/ardents-project/tlock/beacon"
)

// TimeForRound maps a round number to the wall-clock instant at which
// the beacon network is scheduled to publish it.
func TimeForRound(chain beacon.ChainInfo, round uint64) time.Time {
	offset := int64(round-1) * int64(chain.PeriodSeconds)
	return time.Unix(chain.GenesisTimeUnix+offset, 0)
}

// RoundForTime maps a wall-clock instant to the round in progress at
// it: the latest round whose scheduled time is at or before t, so an
// exact period boundary yields the boundary round. Any instant at or
// before genesis maps to round 1.
func RoundForTime(chain beacon.ChainInfo, t time.Time) uint64 {
	delta := t.Unix() - chain.GenesisTimeUnix
	if delta <= 0 {
		return 1
	}
	return uint64(delta/int64(chain.PeriodSeconds)) + 1
}
