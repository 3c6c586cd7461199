package store

import (
	"fmt"
	"time"
)

// GetDailyVolume aggregates finished workouts per UTC day in [from, to).
func (s *Store) GetDailyVolume(from, to time.Time) ([]DailyVolume, error) {
	rows, err := s.db.Query(`
		SELECT date(w.finished_at) AS day, COUNT(*),
		       COALESCE(SUM(v.sets), 0), COALESCE(SUM(v.volume), 0), COALESCE(SUM(w.elapsed), 0)
		FROM workouts w
		LEFT JOIN (
			SELECT e.workout_id AS workout_id,
			       COUNT(st.id) AS sets,
			       SUM(COALESCE(st.reps, 0) * COALESCE(st.weight, 0)) AS volume
			FROM workout_exercises e
			JOIN workout_sets st ON st.workout_exercise_id = e.id
			GROUP BY e.workout_id
		) v ON v.workout_id = w.id
		WHERE w.finished_at >= ? AND w.finished_at < ?
		GROUP BY day
		ORDER BY day`,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("daily volume: %w", err)
	}
	defer rows.Close()

	var days []DailyVolume
	for rows.Next() {
		var d DailyVolume
		if err := rows.Scan(&d.Date, &d.Workouts, &d.Sets, &d.Volume, &d.TotalSeconds); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// CountWorkouts counts workouts finished in [from, to).
func (s *Store) CountWorkouts(from, to time.Time) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM workouts WHERE finished_at >= ? AND finished_at < ?`,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count workouts: %w", err)
	}
	return n, nil
}

// GetTodayStats returns today's (UTC) aggregate, zero-valued when empty.
func (s *Store) GetTodayStats() (DailyVolume, error) {
	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days, err := s.GetDailyVolume(dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return DailyVolume{}, err
	}
	if len(days) == 0 {
		return DailyVolume{Date: dayStart.Format("2006-01-02")}, nil
	}
	return days[0], nil
}

// WeekStart returns the Monday 00:00 UTC of the week containing t.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	weekday := day.Weekday()
	if weekday == time.Sunday {
		weekday = 7
	}
	return day.AddDate(0, 0, -int(weekday-time.Monday))
}

// Streak counts consecutive UTC days with at least one workout, ending today.
// A day without a workout yet does not break a streak that ended yesterday.
func (s *Store) Streak(now time.Time) (int, error) {
	rows, err := s.db.Query(`SELECT DISTINCT date(finished_at) FROM workouts ORDER BY 1 DESC`)
	if err != nil {
		return 0, fmt.Errorf("streak: %w", err)
	}
	defer rows.Close()

	now = now.UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	streak := 0
	first := true
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return 0, err
		}
		if d > day.Format("2006-01-02") {
			continue
		}
		if first && d != day.Format("2006-01-02") {
			day = day.AddDate(0, 0, -1)
		}
		first = false
		if d != day.Format("2006-01-02") {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak, rows.Err()
}
