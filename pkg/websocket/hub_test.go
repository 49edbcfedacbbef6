package websocket

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cybertrax/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	. "github.com/smartystreets/goconvey/convey"
)

func readMessage(conn *websocket.Conn) (Message, error) {
	var msg Message
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		return msg, err
	}
	err = json.Unmarshal(data, &msg)
	return msg, err
}

func TestAdminFeed(t *testing.T) {
	gin.SetMode(gin.TestMode)

	Convey("Given a running hub behind a gin route", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		hub := NewHub(logger.NewNop())
		go hub.Run(ctx)

		handler := NewHandler(hub, DefaultOptions())
		router := gin.New()
		router.GET("/ws/admin", func(c *gin.Context) {
			c.Set("admin_id", int64(1))
			handler.HandleWebSocket(c)
		})
		server := httptest.NewServer(router)
		defer server.Close()

		url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/admin"
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		So(err, ShouldBeNil)
		defer conn.Close()

		welcome, err := readMessage(conn)
		So(err, ShouldBeNil)
		So(welcome.Type, ShouldEqual, "welcome")
		So(welcome.AdminID, ShouldEqual, 1)

		Convey("Order events reach connected admins", func() {
			hub.PublishOrderEvent("order.created", 7, map[string]interface{}{"order_id": 7})

			msg, err := readMessage(conn)
			So(err, ShouldBeNil)
			So(msg.Type, ShouldEqual, "order.created")
			So(msg.RoomID, ShouldEqual, RoomAdmins)
			So(msg.Data["order_id"], ShouldEqual, 7)
		})

		Convey("Followers of an order also get the per-order copy", func() {
			follow, _ := json.Marshal(Message{Type: "follow_order", Data: map[string]interface{}{"order_id": 9}})
			So(conn.WriteMessage(websocket.TextMessage, follow), ShouldBeNil)

			// The follow request is processed asynchronously; poll until the room exists.
			deadline := time.Now().Add(2 * time.Second)
			for time.Now().Before(deadline) {
				hub.mutex.RLock()
				_, joined := hub.rooms[OrderRoom(9)]
				hub.mutex.RUnlock()
				if joined {
					break
				}
				time.Sleep(10 * time.Millisecond)
			}

			hub.PublishOrderEvent("order.paid", 9, nil)

			first, err := readMessage(conn)
			So(err, ShouldBeNil)
			second, err := readMessage(conn)
			So(err, ShouldBeNil)
			So([]string{first.RoomID, second.RoomID}, ShouldResemble, []string{RoomAdmins, OrderRoom(9)})
		})
	})
}

func TestHandlerRequiresAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	Convey("Connections without an admin id are rejected", t, func() {
		handler := NewHandler(NewHub(logger.NewNop()), DefaultOptions())
		router := gin.New()
		router.GET("/ws/admin", handler.HandleWebSocket)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ws/admin", nil)
		router.ServeHTTP(w, req)

		So(w.Code, ShouldEqual, 401)
	})
}
