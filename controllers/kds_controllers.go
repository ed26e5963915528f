package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // terminal lokal, semua view dipercaya
	},
}

// KDSHandler -> endpoint WebSocket untuk grid meja dan panel order.
// ?view= menandai jenis client, default "pos".
func KDSHandler(c *gin.Context) {
	view := c.DefaultQuery("view", "pos")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	kds.RegisterClient(ws, view)
	utils.InfoLogger.Printf("View %s connected (%d clients)", view, kds.ClientCount())

	// Baca pesan sampai client disconnect
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	kds.UnregisterClient(ws)
}
