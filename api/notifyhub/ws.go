package notifyhub

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/wrenko/ragsend-go/notify"
	"github.com/wrenko/ragsend-go/tasks"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // OnlyAllowLocal middleware already restricts to localhost
	},
}

// HandleEventsWS upgrades the request and feeds the client snapshots.
// The initial state goes out before registration so the pump is the
// only writer once the connection is in the hub.
func HandleEventsWS(hub *Hub, store *tasks.Store, queue *notify.Queue) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		if err := writeFrame(conn, Frame{Type: FrameTaskSnapshot, Tasks: store.Snapshot()}); err != nil {
			return
		}
		if err := writeFrame(conn, Frame{Type: FrameNotificationSnapshot, Notifications: queue.Snapshot()}); err != nil {
			return
		}

		hub.Register(conn)
		defer hub.Unregister(conn)

		// Read loop to detect client close and keep connection alive
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}

func writeFrame(conn *websocket.Conn, frame Frame) error {
	payload, err := sonic.Marshal(frame)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}
