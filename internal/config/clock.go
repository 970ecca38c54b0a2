package config

import (
	"fmt"
	"time"
)

type ClockConfig struct {
	Location   *time.Location
	DateLayout string
	TimeLayout string
}

func NewClockConfig() (*ClockConfig, error) {
	tz := getEnv("TIMEZONE", "Local")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
	}
	return &ClockConfig{
		Location:   loc,
		DateLayout: getEnv("DATE_LAYOUT", "2006-01-02"),
		TimeLayout: getEnv("TIME_LAYOUT", "15:04:05"),
	}, nil
}
