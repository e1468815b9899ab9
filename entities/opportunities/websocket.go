package opportunities

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

const (
	BOARD_ACTION_CREATED       = "opportunity_created"
	BOARD_ACTION_UPDATED       = "opportunity_updated"
	BOARD_ACTION_STAGE_CHANGED = "stage_changed"
)

type BoardMessage struct {
	Action      string `json:"action"`
	Opportunity any    `json:"opportunity"`
	Details     string `json:"details,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

var wsClients = make(map[*websocket.Conn]bool)
var wsMutex sync.Mutex

// BroadcastBoardUpdate pushes a pipeline board event to every connected
// client. Dead connections are pruned on write failure.
func BroadcastBoardUpdate(msg BoardMessage) {
	wsMutex.Lock()
	defer wsMutex.Unlock()
	for client := range wsClients {
		err := client.WriteJSON(msg)
		if err != nil {
			client.Close()
			delete(wsClients, client)
		}
	}
}

func PipelineWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "Could not upgrade to websocket", http.StatusInternalServerError)
		return
	}
	defer conn.Close()

	wsMutex.Lock()
	wsClients[conn] = true
	wsMutex.Unlock()

	for {
		msg := BoardMessage{}
		err := conn.ReadJSON(&msg)
		if err != nil {
			break
		}

		BroadcastBoardUpdate(msg)
	}

	wsMutex.Lock()
	delete(wsClients, conn)
	wsMutex.Unlock()
}
