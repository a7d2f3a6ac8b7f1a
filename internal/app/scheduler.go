package app

import (
	"time"

	"github.com/robfig/cron/v3"
)

// RolloverSpec fires at local midnight, when "today" changes
const RolloverSpec = "@midnight"

// StartScheduler starts a cron job that purges the response cache when the
// date rolls over, so cached pages never report yesterday's status for a
// full TTL. The returned cron must be stopped by the caller.
func (s *Server) StartScheduler(loc *time.Location) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc(RolloverSpec, s.rollover); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}

// rollover drops cached responses computed for the previous day
func (s *Server) rollover() {
	n := s.cache.Len()
	s.cache.Purge()
	s.log.Infow("Date rolled over, response cache purged",
		"today", s.today().String(),
		"entries", n,
	)
}
