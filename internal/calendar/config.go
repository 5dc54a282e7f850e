package calendar

import (
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/horizon/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML shape of a calendar definition file:
//
//	non_working_weekdays: [6, 7]
//	non_working_dates:
//	  - 2025-12-25
//	  - 2025-12-26
type FileConfig struct {
	NonWorkingWeekdays []int    `yaml:"non_working_weekdays"`
	NonWorkingDates    []string `yaml:"non_working_dates"`
}

// LoadFileConfig reads the raw YAML config without building a Calendar,
// for callers that manage weekdays and date exceptions separately.
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading calendar file: %w", err)
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing calendar yaml: %w", err)
	}
	return &cfg, nil
}

// ParseDates converts the config's date strings, rejecting malformed ones.
func (c *FileConfig) ParseDates() ([]time.Time, error) {
	dates := make([]time.Time, 0, len(c.NonWorkingDates))
	for _, s := range c.NonWorkingDates {
		d, err := domain.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("calendar non_working_dates: invalid date %q (expected YYYY-MM-DD)", s)
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// Parse builds a Calendar from YAML bytes.
func Parse(data []byte) (*Calendar, error) {
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing calendar yaml: %w", err)
	}
	dates, err := cfg.ParseDates()
	if err != nil {
		return nil, err
	}
	cal, err := NewWithNonWorking(cfg.NonWorkingWeekdays, dates)
	if err != nil {
		return nil, fmt.Errorf("calendar non_working_weekdays: %w", err)
	}
	return cal, nil
}
