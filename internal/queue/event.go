// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types published by the activity handlers.
const (
	EventShowQueued     = "show.queued"
	EventEpisodeWatched = "episode.watched"
)

// ActivityQueueName is the broker queue carrying customer activity events.
const ActivityQueueName = "activity.events"

// ActivityEvent is published when a customer queues a show or watches an
// episode. It carries enough information for downstream consumers to log or
// trigger analytics without querying the primary database. Episode fields
// are empty for show.queued events.
type ActivityEvent struct {
	Type         string `json:"type"`
	CustomerID   string `json:"customer_id"`
	Username     string `json:"username"`
	ShowID       string `json:"show_id"`
	ShowTitle    string `json:"show_title"`
	EpisodeID    string `json:"episode_id,omitempty"`
	EpisodeTitle string `json:"episode_title,omitempty"`
	Date         string `json:"date"`
	OccurredAt   string `json:"occurred_at"`
}
