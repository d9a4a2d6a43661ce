package store

import (
	"context"
	"fmt"
	"time"

	"soundcrate/internal/apperr"
)

var (
	// ErrNoPlaylistActivities covers both an unknown playlist and a
	// playlist with an empty history; reads cannot tell them apart.
	ErrNoPlaylistActivities = apperr.NotFound("playlist not found or has no activities")

	errInvalidActivityAction = apperr.Invariant("activity action must be add or delete")
)

// ActivityAction labels a playlist membership change.
type ActivityAction string

const (
	ActivityAdd    ActivityAction = "add"
	ActivityDelete ActivityAction = "delete"
)

// Activity is one immutable record of a playlist membership change,
// joined with display names for history rendering.
type Activity struct {
	Username string         `json:"username"`
	Title    string         `json:"title"`
	Action   ActivityAction `json:"action"`
	Time     time.Time      `json:"time"`
}

// AddActivity appends one event with a server-generated timestamp.
// Events are write-once; no update or delete path exists.
func (s *Store) AddActivity(ctx context.Context, playlistID, songID, userID string, action ActivityAction) error {
	if action != ActivityAdd && action != ActivityDelete {
		return errInvalidActivityAction
	}

	id := newID("activity")
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO playlist_song_activities (id, playlist_id, song_id, user_id, action, time)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, playlistID, songID, userID, string(action), time.Now().UTC()); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}

	return nil
}

// ListActivities returns the playlist's events ordered by stored
// timestamp ascending. The absence of any row fails with
// ErrNoPlaylistActivities.
func (s *Store) ListActivities(ctx context.Context, playlistID string) ([]Activity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(users.username, ''), COALESCE(songs.title, ''), psa.action, psa.time
		FROM playlist_song_activities psa
		LEFT JOIN users ON psa.user_id = users.id
		LEFT JOIN songs ON psa.song_id = songs.id
		WHERE psa.playlist_id = $1
		ORDER BY psa.time ASC
	`, playlistID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		var activity Activity
		var action string
		if err := rows.Scan(&activity.Username, &activity.Title, &action, &activity.Time); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activity.Action = ActivityAction(action)
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}

	if len(activities) == 0 {
		return nil, ErrNoPlaylistActivities
	}
	return activities, nil
}
