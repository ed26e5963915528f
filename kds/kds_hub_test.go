package kds

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

var upgrader = websocket.Upgrader{}

// startHub menjalankan server WS yang mendaftarkan tiap koneksi ke hub.
// closeAfterRegister mensimulasikan client yang socket-nya sudah mati.
func startHub(t *testing.T, closeAfterRegister bool) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if !assert.NoError(t, err) {
			return
		}
		RegisterClient(ws, "grid")
		if closeAfterRegister {
			ws.Close()
			return
		}
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}
		UnregisterClient(ws)
	}))
	t.Cleanup(server.Close)
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestBroadcast_DeliversToClients(t *testing.T) {
	conn := dial(t, startHub(t, false))
	require.Eventually(t, func() bool { return ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	BroadcastCheckoutFailed("T1", "backend timeout")

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, EventCheckoutFailed, msg.Event)

	conn.Close()
	assert.Eventually(t, func() bool { return ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestBroadcast_DropsDeadClients(t *testing.T) {
	conn := dial(t, startHub(t, true))
	defer conn.Close()
	require.Eventually(t, func() bool { return ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	BroadcastBillUpdate(models.Bill{ID: "b-1", TableID: "T1", Status: models.BillStatusActive})
	assert.Equal(t, 0, ClientCount())

	// broadcast berikutnya tidak lagi menulis ke socket mati
	BroadcastBillUpdate(models.Bill{ID: "b-1", TableID: "T1", Status: models.BillStatusActive})
	assert.Equal(t, 0, ClientCount())
}
