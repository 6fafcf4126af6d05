package realtime

import (
	"encoding/json"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/net/websocket"

	"github.com/feedstream/feed-api/internal/core/ports"
)

// wsFrame is the wire shape pushed to clients: the post object for create
// and update, just the id string for delete.
type wsFrame struct {
	Action string `json:"action"`
	Post   any    `json:"post"`
}

func newFrame(event ports.Event) wsFrame {
	if event.Action == ports.ActionDelete {
		return wsFrame{Action: event.Action, Post: event.PostID}
	}
	return wsFrame{Action: event.Action, Post: event.Post}
}

// WSHandler returns the echo handler for GET /socket: it subscribes the
// connection to the hub and streams JSON frames until either side closes.
func WSHandler(hub *Hub, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		handler := websocket.Handler(func(conn *websocket.Conn) {
			defer conn.Close()

			sub := hub.Subscribe()
			defer hub.Unsubscribe(sub)

			// Drain inbound traffic so a client close is noticed even
			// though the feed is push-only.
			closed := make(chan struct{})
			go func() {
				defer close(closed)
				_, _ = io.Copy(io.Discard, conn)
			}()

			enc := json.NewEncoder(conn)
			for {
				select {
				case <-closed:
					return
				case event, ok := <-sub.Events():
					if !ok {
						return
					}
					if err := enc.Encode(newFrame(event)); err != nil {
						log.Debug().Err(err).Msg("websocket write failed")
						return
					}
				}
			}
		})

		handler.ServeHTTP(c.Response(), c.Request())
		return nil
	}
}
