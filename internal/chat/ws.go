package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Responder lets the movie bot answer slash commands inside rooms.
type Responder interface {
	Reply(ctx context.Context, text string) []string
}

type incomingMessage struct {
	Text string `json:"text"`
	User string `json:"user"`
}

func HistoryHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		room := strings.TrimSpace(c.Query("room"))
		if room == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "room is required"})
			return
		}

		c.JSON(http.StatusOK, hub.History(room))
	}
}

func WSHandler(hub *Hub, responder Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		room := strings.TrimSpace(c.Query("room"))
		if room == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "room is required"})
			return
		}

		user := strings.TrimSpace(c.Query("user"))
		if user == "" {
			user = "anon"
		}

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		history := hub.Join(room, ws, user)
		for _, msg := range history {
			_ = ws.WriteJSON(msg)
		}

		for {
			_, payload, err := ws.ReadMessage()
			if err != nil {
				break
			}

			text, msgUser := parseIncoming(payload)
			if text == "" {
				continue
			}
			if msgUser == "" {
				msgUser = hub.User(room, ws)
			}

			hub.Broadcast(Message{
				Type: "message",
				Room: room,
				User: msgUser,
				Text: text,
				At:   time.Now().UTC(),
			})

			// slash commands get an in-room answer from the bot
			if responder != nil && strings.HasPrefix(text, "/") {
				for _, line := range responder.Reply(c.Request.Context(), text) {
					hub.Broadcast(Message{
						Type: "message",
						Room: room,
						User: BotUser,
						Text: line,
						At:   time.Now().UTC(),
					})
				}
			}
		}

		hub.Leave(room, ws)
	}
}

func parseIncoming(payload []byte) (text, user string) {
	var incoming incomingMessage
	if err := json.Unmarshal(payload, &incoming); err != nil {
		return strings.TrimSpace(string(payload)), ""
	}
	return strings.TrimSpace(incoming.Text), strings.TrimSpace(incoming.User)
}
