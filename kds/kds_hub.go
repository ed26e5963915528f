package kds

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// Event types
const (
	EventBillUpdate     = "bill_update"
	EventBillClosed     = "bill_closed"
	EventTableUpdate    = "table_update"
	EventCatalogRefresh = "catalog_refresh"
	EventCheckoutFailed = "checkout_failed"
)

// writeWait membatasi satu tulis ke client yang lambat
const writeWait = 5 * time.Second

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub menampung semua client presentasi (grid meja, panel order)
type Hub struct {
	clients map[*websocket.Conn]string // conn -> view
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient -> menambahkan connection beserta nama view
func RegisterClient(conn *websocket.Conn, view string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = view
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

func ClientCount() int {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	return len(hub.clients)
}

// BroadcastBillUpdate -> bill aktif berubah
func BroadcastBillUpdate(bill models.Bill) {
	broadcast(Message{
		Event: EventBillUpdate,
		Data:  bill.View(),
	})
}

// BroadcastBillClosed -> bill ditutup, meja kembali kosong
func BroadcastBillClosed(bill models.Bill, title, message string) {
	broadcast(Message{
		Event: EventBillClosed,
		Data: map[string]interface{}{
			"bill":    bill.View(),
			"title":   title,
			"message": message,
		},
	})
}

func BroadcastCheckoutFailed(tableID, reason string) {
	broadcast(Message{
		Event: EventCheckoutFailed,
		Data: map[string]interface{}{
			"table_id": tableID,
			"reason":   reason,
		},
	})
}

func BroadcastTableUpdate(table models.TableSummary) {
	broadcast(Message{
		Event: EventTableUpdate,
		Data:  table,
	})
}

// BroadcastCatalogRefresh -> katalog diperbarui; warnings untuk banner
func BroadcastCatalogRefresh(itemCount int, warnings []string) {
	broadcast(Message{
		Event: EventCatalogRefresh,
		Data: map[string]interface{}{
			"item_count": itemCount,
			"warnings":   warnings,
		},
	})
}

// broadcast -> fungsi internal untuk mengirim pesan
func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	if len(hub.clients) == 0 {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling %s message: %v", msg.Event, err)
		return
	}

	var dead []*websocket.Conn
	for conn, view := range hub.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending %s to %s client, dropping: %v", msg.Event, view, err)
			dead = append(dead, conn)
		}
	}
	// Client yang gagal ditulis langsung dilepas, jangan tunggu read loop
	for _, conn := range dead {
		delete(hub.clients, conn)
		conn.Close()
	}
	utils.InfoLogger.Debugf("Broadcast %s to %d clients", msg.Event, len(hub.clients))
}
