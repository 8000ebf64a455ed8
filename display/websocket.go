package kinetic

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const wsWriteWait = 5 * time.Second

// WSRequest asks for the options from a position
type WSRequest struct {
	Position string `json:"position"`
}

// WSResponse answers one WSRequest
type WSResponse struct {
	Position string       `json:"position"`
	Options  []OptionView `json:"options"`
	Error    string       `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebsocketHandler answers each position the client sends
// with its next options, until the client goes away
func (v *View) WebsocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	for {
		var req WSRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Error("Websocket read failed", slog.Any("error", err))
			}
			return
		}

		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(v.GetOptionsWS(req)); err != nil {
			return // Connection closed
		}
	}
}

// GetOptionsWS builds the reply for one request
func (v *View) GetOptionsWS(req WSRequest) WSResponse {
	if req.Position == "" {
		return WSResponse{Options: []OptionView{}, Error: "position is required"}
	}

	svc := v.CurrentService()
	opts := svc.NextOptions(req.Position)
	v.Stats.RecLookup("ws", len(opts))

	resp := WSResponse{
		Position: req.Position,
		Options:  make([]OptionView, 0, len(opts)),
	}
	for _, o := range opts {
		resp.Options = append(resp.Options, NewOptionView(o, svc.Letters))
	}
	return resp
}
