package store

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	UnitKg  = "kg"
	UnitLbs = "lbs"

	defaultWeeklyGoal = 4
)

// GetProfile reads the profile from settings, falling back to defaults for
// missing or malformed values.
func (s *Store) GetProfile() (Profile, error) {
	settings, err := s.GetAllSettings()
	if err != nil {
		return Profile{}, err
	}
	vals := make(map[string]string, len(settings))
	for _, st := range settings {
		vals[st.Key] = st.Value
	}

	p := Profile{
		Name:       vals["profile_name"],
		Age:        vals["profile_age"],
		Gender:     vals["profile_gender"],
		Unit:       vals["unit"],
		WeeklyGoal: defaultWeeklyGoal,
	}
	if p.Unit != UnitLbs {
		p.Unit = UnitKg
	}
	if n, err := strconv.Atoi(vals["weekly_goal"]); err == nil && n > 0 {
		p.WeeklyGoal = n
	}
	return p, nil
}

// SaveProfile validates and writes every profile field.
func (s *Store) SaveProfile(p Profile) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	if p.Unit != UnitKg && p.Unit != UnitLbs {
		return fmt.Errorf("unknown unit %q", p.Unit)
	}
	if p.WeeklyGoal < 1 || p.WeeklyGoal > 14 {
		return fmt.Errorf("weekly goal %d out of range 1-14", p.WeeklyGoal)
	}
	if p.Age != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(p.Age)); err != nil || n <= 0 || n > 120 {
			return fmt.Errorf("invalid age %q", p.Age)
		}
	}

	pairs := [][2]string{
		{"profile_name", p.Name},
		{"profile_age", strings.TrimSpace(p.Age)},
		{"profile_gender", p.Gender},
		{"unit", p.Unit},
		{"weekly_goal", strconv.Itoa(p.WeeklyGoal)},
	}
	for _, kv := range pairs {
		if err := s.SetSetting(kv[0], kv[1]); err != nil {
			return fmt.Errorf("save %s: %w", kv[0], err)
		}
	}
	s.log.Info("profile saved", "unit", p.Unit, "weekly_goal", p.WeeklyGoal)
	return nil
}

// DefaultUnit sets the display unit until the user saves a profile of their
// own. Once a profile exists it is left alone.
func (s *Store) DefaultUnit(unit string) error {
	if unit != UnitKg && unit != UnitLbs {
		return fmt.Errorf("unknown unit %q", unit)
	}
	if s.SettingOr("profile_name", "") != "" {
		return nil
	}
	return s.SetSetting("unit", unit)
}
