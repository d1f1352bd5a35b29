package handler

import (
	"net/http"

	"faultproducer/src/feed"

	"github.com/gorilla/websocket"
	logger "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// FaultFeedHandler upgrades the request and streams acknowledged fault records until
// the client disconnects.
func FaultFeedHandler(hub *feed.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.WithError(err).Warn("websocket upgrade failed")
			return
		}

		client := feed.NewClient(conn)
		hub.Register(client)
		defer hub.Unregister(client)
		defer client.Close()

		logger.WithField("remote", r.RemoteAddr).Info("Feed client connected")

		// the feed is one-way; reading only detects the peer going away
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				logger.WithField("remote", r.RemoteAddr).Info("Feed client disconnected")
				return
			}
		}
	}
}
