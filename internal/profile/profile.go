// Package profile manages user preference profiles as JSON files, one file
// per user. Profiles are a lighter-weight companion to the relational store:
// reminder settings, streaks, and display preferences live here.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Profile holds a user's preferences and activity metadata.
type Profile struct {
	UserID      string         `json:"user_id"`
	Name        string         `json:"name"`
	CreatedAt   time.Time      `json:"created_at"`
	LastActive  time.Time      `json:"last_active"`
	Preferences map[string]any `json:"preferences"`
}

// Manager reads and writes profiles under a directory.
type Manager struct {
	dir string
}

// NewManager creates the profile directory if needed.
func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create profile dir: %w", err)
	}
	return &Manager{dir: dir}, nil
}

func (m *Manager) path(userID string) string {
	return filepath.Join(m.dir, userID+"_profile.json")
}

// Create writes a new profile with default preferences.
func (m *Manager) Create(userID, name string) (*Profile, error) {
	now := time.Now().UTC()
	p := &Profile{
		UserID:     userID,
		Name:       name,
		CreatedAt:  now,
		LastActive: now,
		Preferences: map[string]any{
			"reminder_enabled": false,
			"reminder_time":    "20:00",
			"check_in_streak":  0,
			"show_tips":        true,
		},
	}
	if err := m.save(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get loads a profile, or returns nil when none exists.
func (m *Manager) Get(userID string) (*Profile, error) {
	b, err := os.ReadFile(m.path(userID))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	return &p, nil
}

// Touch updates the last-active timestamp.
func (m *Manager) Touch(userID string) error {
	p, err := m.Get(userID)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("profile not found: %s", userID)
	}
	p.LastActive = time.Now().UTC()
	return m.save(p)
}

// GetPreference returns one preference value, or the default when the
// profile or key is missing.
func (m *Manager) GetPreference(userID, key string, def any) any {
	p, err := m.Get(userID)
	if err != nil || p == nil {
		return def
	}
	if v, ok := p.Preferences[key]; ok {
		return v
	}
	return def
}

// SetPreference sets one preference value.
func (m *Manager) SetPreference(userID, key string, value any) error {
	p, err := m.Get(userID)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("profile not found: %s", userID)
	}
	if p.Preferences == nil {
		p.Preferences = map[string]any{}
	}
	p.Preferences[key] = value
	p.LastActive = time.Now().UTC()
	return m.save(p)
}

// IncrementStreak bumps the check-in streak and returns the new count.
func (m *Manager) IncrementStreak(userID string) (int, error) {
	p, err := m.Get(userID)
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, fmt.Errorf("profile not found: %s", userID)
	}
	if p.Preferences == nil {
		p.Preferences = map[string]any{}
	}

	streak := 0
	if v, ok := p.Preferences["check_in_streak"].(float64); ok {
		streak = int(v)
	} else if v, ok := p.Preferences["check_in_streak"].(int); ok {
		streak = v
	}
	streak++

	p.Preferences["check_in_streak"] = streak
	p.LastActive = time.Now().UTC()
	if err := m.save(p); err != nil {
		return 0, err
	}
	return streak, nil
}

// Delete removes a profile. Deleting an absent profile is not an error.
func (m *Manager) Delete(userID string) error {
	err := os.Remove(m.path(userID))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (m *Manager) save(p *Profile) error {
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := os.WriteFile(m.path(p.UserID), b, 0o644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}
