package service

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"golfacademy/internal/database"
)

// BackupService exports and imports the full dataset as JSON. Sessions and
// reset tokens are transient and are not carried across.
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

type backupUser struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"passwordHash"`
	Name          string    `json:"name"`
	Handicap      float64   `json:"handicap"`
	HomeCourse    string    `json:"homeCourse"`
	OAuthProvider string    `json:"oauthProvider,omitempty"`
	OAuthSubject  string    `json:"oauthSubject,omitempty"`
	WeeklyEmail   bool      `json:"weeklyEmail"`
	CreatedAt     time.Time `json:"createdAt"`
}

type backupRound struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"userId"`
	PlayedAt          time.Time `json:"playedAt"`
	CourseName        string    `json:"courseName"`
	Holes             int       `json:"holes"`
	Score             int       `json:"score"`
	Handicap          float64   `json:"handicap"`
	NettScore         int       `json:"nettScore"`
	Eagles            int       `json:"eagles"`
	Birdies           int       `json:"birdies"`
	Pars              int       `json:"pars"`
	Bogeys            int       `json:"bogeys"`
	DoubleBogeys      int       `json:"doubleBogeys"`
	FairwaysHit       int       `json:"fairwaysHit"`
	FairwaysTotal     int       `json:"fairwaysTotal"`
	GreensHit         int       `json:"greensHit"`
	GreensTotal       int       `json:"greensTotal"`
	UpAndDownsMade    int       `json:"upAndDownsMade"`
	UpAndDownAttempts int       `json:"upAndDownAttempts"`
	TotalPutts        int       `json:"totalPutts"`
	MissedShortPutts  int       `json:"missedShortPutts"`
	PenaltyStrokes    int       `json:"penaltyStrokes"`
}

type backupPlan struct {
	UserID  int64           `json:"userId"`
	Payload json.RawMessage `json:"payload"`
}

type backupProgress struct {
	UserID          int64           `json:"userId"`
	TotalXP         int             `json:"totalXp"`
	TotalMinutes    int             `json:"totalMinutes"`
	CompletedDrills json.RawMessage `json:"completedDrills"`
	DrillCounts     json.RawMessage `json:"drillCounts"`
}

type backupActivity struct {
	ID         string    `json:"id"`
	UserID     int64     `json:"userId"`
	DrillID    int64     `json:"drillId"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	XPEarned   int       `json:"xpEarned"`
	Minutes    int       `json:"minutes"`
	OccurredAt time.Time `json:"occurredAt"`
}

type backupFreestyle struct {
	UserID int64  `json:"userId"`
	Day    string `json:"day"`
	XP     int    `json:"xp"`
}

type backupData struct {
	ExportedAt time.Time         `json:"exportedAt"`
	Users      []backupUser      `json:"users"`
	Rounds     []backupRound     `json:"rounds"`
	Plans      []backupPlan      `json:"plans"`
	Progress   []backupProgress  `json:"progress"`
	Activity   []backupActivity  `json:"activity"`
	Freestyle  []backupFreestyle `json:"freestyle"`
}

// Export writes the full dataset as indented JSON
func (s *BackupService) Export(w io.Writer) error {
	data := backupData{ExportedAt: time.Now()}

	rows, err := s.db.Query(`SELECT id, email, password_hash, name, handicap, home_course,
		COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''), weekly_email, created_at FROM users`)
	if err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	for rows.Next() {
		var u backupUser
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Handicap, &u.HomeCourse,
			&u.OAuthProvider, &u.OAuthSubject, &u.WeeklyEmail, &u.CreatedAt); err != nil {
			rows.Close()
			return err
		}
		data.Users = append(data.Users, u)
	}
	rows.Close()

	rows, err = s.db.Query(`SELECT id, user_id, played_at, course_name, holes, score, handicap, nett_score,
		eagles, birdies, pars, bogeys, double_bogeys,
		fairways_hit, fairways_total, greens_hit, greens_total,
		up_and_downs_made, up_and_down_attempts, total_putts, missed_short_putts, penalty_strokes FROM rounds`)
	if err != nil {
		return fmt.Errorf("failed to export rounds: %w", err)
	}
	for rows.Next() {
		var r backupRound
		if err := rows.Scan(&r.ID, &r.UserID, &r.PlayedAt, &r.CourseName, &r.Holes, &r.Score,
			&r.Handicap, &r.NettScore, &r.Eagles, &r.Birdies, &r.Pars, &r.Bogeys, &r.DoubleBogeys,
			&r.FairwaysHit, &r.FairwaysTotal, &r.GreensHit, &r.GreensTotal,
			&r.UpAndDownsMade, &r.UpAndDownAttempts, &r.TotalPutts, &r.MissedShortPutts,
			&r.PenaltyStrokes); err != nil {
			rows.Close()
			return err
		}
		data.Rounds = append(data.Rounds, r)
	}
	rows.Close()

	rows, err = s.db.Query("SELECT user_id, payload FROM weekly_plans")
	if err != nil {
		return fmt.Errorf("failed to export plans: %w", err)
	}
	for rows.Next() {
		var p backupPlan
		var payload string
		if err := rows.Scan(&p.UserID, &payload); err != nil {
			rows.Close()
			return err
		}
		p.Payload = json.RawMessage(payload)
		data.Plans = append(data.Plans, p)
	}
	rows.Close()

	rows, err = s.db.Query("SELECT user_id, total_xp, total_minutes, completed_drills, drill_counts FROM user_progress")
	if err != nil {
		return fmt.Errorf("failed to export progress: %w", err)
	}
	for rows.Next() {
		var p backupProgress
		var completed, counts string
		if err := rows.Scan(&p.UserID, &p.TotalXP, &p.TotalMinutes, &completed, &counts); err != nil {
			rows.Close()
			return err
		}
		p.CompletedDrills = json.RawMessage(completed)
		p.DrillCounts = json.RawMessage(counts)
		data.Progress = append(data.Progress, p)
	}
	rows.Close()

	rows, err = s.db.Query("SELECT id, user_id, drill_id, title, category, xp_earned, minutes, occurred_at FROM activity_history")
	if err != nil {
		return fmt.Errorf("failed to export activity: %w", err)
	}
	for rows.Next() {
		var a backupActivity
		if err := rows.Scan(&a.ID, &a.UserID, &a.DrillID, &a.Title, &a.Category, &a.XPEarned, &a.Minutes, &a.OccurredAt); err != nil {
			rows.Close()
			return err
		}
		data.Activity = append(data.Activity, a)
	}
	rows.Close()

	rows, err = s.db.Query("SELECT user_id, day, xp FROM freestyle_xp")
	if err != nil {
		return fmt.Errorf("failed to export freestyle counters: %w", err)
	}
	for rows.Next() {
		var f backupFreestyle
		if err := rows.Scan(&f.UserID, &f.Day, &f.XP); err != nil {
			rows.Close()
			return err
		}
		data.Freestyle = append(data.Freestyle, f)
	}
	rows.Close()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// Import loads a previously exported dataset. Existing rows with the same
// keys are replaced; the drill catalog is left alone.
func (s *BackupService) Import(r io.Reader) error {
	var data backupData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	for _, u := range data.Users {
		if _, err := s.db.Exec("DELETE FROM users WHERE id = ?", u.ID); err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
		if _, err := s.db.Exec(`INSERT INTO users (id, email, password_hash, name, handicap, home_course,
			oauth_provider, oauth_subject, weekly_email, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			u.ID, u.Email, u.PasswordHash, u.Name, u.Handicap, u.HomeCourse,
			u.OAuthProvider, u.OAuthSubject, u.WeeklyEmail, u.CreatedAt); err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
	}

	for _, r := range data.Rounds {
		if _, err := s.db.Exec("DELETE FROM rounds WHERE id = ?", r.ID); err != nil {
			return fmt.Errorf("failed to import round %d: %w", r.ID, err)
		}
		if _, err := s.db.Exec(`INSERT INTO rounds (id, user_id, played_at, course_name, holes, score, handicap, nett_score,
			eagles, birdies, pars, bogeys, double_bogeys,
			fairways_hit, fairways_total, greens_hit, greens_total,
			up_and_downs_made, up_and_down_attempts, total_putts, missed_short_putts, penalty_strokes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.UserID, r.PlayedAt, r.CourseName, r.Holes, r.Score, r.Handicap, r.NettScore,
			r.Eagles, r.Birdies, r.Pars, r.Bogeys, r.DoubleBogeys,
			r.FairwaysHit, r.FairwaysTotal, r.GreensHit, r.GreensTotal,
			r.UpAndDownsMade, r.UpAndDownAttempts, r.TotalPutts, r.MissedShortPutts,
			r.PenaltyStrokes); err != nil {
			return fmt.Errorf("failed to import round %d: %w", r.ID, err)
		}
	}

	for _, p := range data.Plans {
		if _, err := s.db.Exec("DELETE FROM weekly_plans WHERE user_id = ?", p.UserID); err != nil {
			return fmt.Errorf("failed to import plan for user %d: %w", p.UserID, err)
		}
		if _, err := s.db.Exec("INSERT INTO weekly_plans (user_id, payload) VALUES (?, ?)",
			p.UserID, string(p.Payload)); err != nil {
			return fmt.Errorf("failed to import plan for user %d: %w", p.UserID, err)
		}
	}

	for _, p := range data.Progress {
		if _, err := s.db.Exec("DELETE FROM user_progress WHERE user_id = ?", p.UserID); err != nil {
			return fmt.Errorf("failed to import progress for user %d: %w", p.UserID, err)
		}
		if _, err := s.db.Exec(`INSERT INTO user_progress (user_id, total_xp, total_minutes, completed_drills, drill_counts)
			VALUES (?, ?, ?, ?, ?)`,
			p.UserID, p.TotalXP, p.TotalMinutes, string(p.CompletedDrills), string(p.DrillCounts)); err != nil {
			return fmt.Errorf("failed to import progress for user %d: %w", p.UserID, err)
		}
	}

	for _, a := range data.Activity {
		if _, err := s.db.Exec("DELETE FROM activity_history WHERE id = ?", a.ID); err != nil {
			return fmt.Errorf("failed to import activity %s: %w", a.ID, err)
		}
		if _, err := s.db.Exec(`INSERT INTO activity_history (id, user_id, drill_id, title, category, xp_earned, minutes, occurred_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.UserID, a.DrillID, a.Title, a.Category, a.XPEarned, a.Minutes, a.OccurredAt); err != nil {
			return fmt.Errorf("failed to import activity %s: %w", a.ID, err)
		}
	}

	for _, f := range data.Freestyle {
		if _, err := s.db.Exec("DELETE FROM freestyle_xp WHERE user_id = ? AND day = ?", f.UserID, f.Day); err != nil {
			return fmt.Errorf("failed to import freestyle counter: %w", err)
		}
		if _, err := s.db.Exec("INSERT INTO freestyle_xp (user_id, day, xp) VALUES (?, ?, ?)",
			f.UserID, f.Day, f.XP); err != nil {
			return fmt.Errorf("failed to import freestyle counter: %w", err)
		}
	}

	return nil
}
