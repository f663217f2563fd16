package service

import (
	"time"

	"prepos_backend/internal/util"
)

// Calendar 业务时区下的“现在”和“今天”，测试可替换 Now
type Calendar struct {
	Location *time.Location
	Now      func() time.Time
}

func NewCalendar(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{Location: loc, Now: time.Now}
}

func (c *Calendar) Current() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return now().In(c.Location)
}

// Today YYYY-MM-DD
func (c *Calendar) Today() string {
	return c.Current().Format(util.DateFormat)
}
