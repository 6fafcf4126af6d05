package ports

import "github.com/feedstream/feed-api/internal/core/domain"

// Event actions published on the posts channel.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Event is a post lifecycle notification. Post is set for create and
// update; delete events carry only the id.
type Event struct {
	Action string       `json:"action"`
	Post   *domain.Post `json:"post,omitempty"`
	PostID string       `json:"post_id"`
}

// Publisher fans events out to realtime subscribers. Publish is
// fire-and-forget: it never blocks and never fails the originating domain
// call. A subscriber connecting after an event misses it permanently.
type Publisher interface {
	Publish(event Event)
}
