package chat

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"receptari/internal/chatbot"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type incomingMessage struct {
	Text string `json:"text"`
}

type outgoingMessage struct {
	Message
	Recipe *chatbot.RecipeView `json:"recepta,omitempty"`
}

func HistoryHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := strings.TrimSpace(c.Query("session"))
		if session == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session is required"})
			return
		}
		c.JSON(http.StatusOK, hub.History(session))
	}
}

// WSHandler upgrades the connection and runs a read loop that pipes every
// incoming message through the chatbot and writes the reply back. Sessions
// without a client-provided id get a fresh one.
func WSHandler(hub *Hub, bot *chatbot.Bot, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := strings.TrimSpace(c.Query("session"))
		if session == "" {
			session = uuid.NewString()
		}

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		hub.Connect()
		defer func() {
			hub.Disconnect()
			_ = ws.Close()
		}()

		for _, msg := range hub.History(session) {
			_ = ws.WriteJSON(outgoingMessage{Message: msg})
		}

		for {
			_, payload, err := ws.ReadMessage()
			if err != nil {
				break
			}

			text := decodeText(payload)
			if text == "" {
				continue
			}
			hub.Append(session, Message{From: "user", Text: text, At: time.Now().UTC()})

			resp, err := bot.Respond(c.Request.Context(), text)
			if err != nil {
				logger.Warn("chat respond failed", zap.String("session", session), zap.Error(err))
				continue
			}

			reply := Message{From: "bot", Text: resp.Text, At: time.Now().UTC()}
			hub.Append(session, reply)
			if err := ws.WriteJSON(outgoingMessage{Message: reply, Recipe: resp.Recipe}); err != nil {
				break
			}
		}
	}
}

// decodeText accepts either {"text": "..."} frames or raw text frames.
func decodeText(payload []byte) string {
	var incoming incomingMessage
	if err := json.Unmarshal(payload, &incoming); err == nil {
		return strings.TrimSpace(incoming.Text)
	}
	return strings.TrimSpace(string(payload))
}
