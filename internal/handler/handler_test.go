package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ticket-chain/config"
	"ticket-chain/internal/handler"
	"ticket-chain/internal/ledger"
	"ticket-chain/internal/queue"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter() (*gin.Engine, *ledger.Ledger) {
	gin.SetMode(gin.TestMode)

	l := ledger.New(config.LoadTestConfig())
	q := queue.NewMineQueue(10)

	router := gin.New()
	handler.NewEventHandler(l).RegisterRoutes(router)
	handler.NewTicketHandler(l).RegisterRoutes(router)
	handler.NewChainHandler(l, q).RegisterRoutes(router)
	return router, l
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createEvent(t *testing.T, router *gin.Engine, regularCount int) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/events", gin.H{
		"name":  "Handler Test Concert",
		"venue": "Test Arena",
		"date":  time.Now().Add(30 * 24 * time.Hour).Format(time.RFC3339),
		"ticket_types": gin.H{
			"regular": regularCount,
		},
		"prices": gin.H{
			"regular": "100",
		},
		"organizer_address":    "organizer-1",
		"max_tickets_per_user": 4,
		"refundable_until":     time.Now().Add(29 * 24 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		EventID string `json:"event_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.EventID
}

func mintTicket(t *testing.T, router *gin.Engine, eventID, buyer string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/tickets", gin.H{
		"event_id":      eventID,
		"buyer_address": buyer,
		"ticket_type":   "regular",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		TicketID string `json:"ticket_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.TicketID
}

func TestEventHandler_CreateAndGet(t *testing.T) {
	router, _ := setupRouter()

	eventID := createEvent(t, router, 10)

	w := doJSON(t, router, http.MethodGet, "/api/v1/events/"+eventID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Name            string         `json:"name"`
		Available       map[string]int `json:"available_tickets"`
		MinResalePrices map[string]any `json:"min_resale_prices"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Handler Test Concert", resp.Name)
	assert.Equal(t, 10, resp.Available["regular"])

	w = doJSON(t, router, http.MethodGet, "/api/v1/events", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEventHandler_NotFound(t *testing.T) {
	router, _ := setupRouter()

	w := doJSON(t, router, http.MethodGet, "/api/v1/events/9f2c8e1a-0000-4000-8000-000000000000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/events/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketHandler_MintAndSellOut(t *testing.T) {
	router, _ := setupRouter()
	eventID := createEvent(t, router, 1)

	mintTicket(t, router, eventID, "alice")

	w := doJSON(t, router, http.MethodPost, "/api/v1/tickets", gin.H{
		"event_id":      eventID,
		"buyer_address": "bob",
		"ticket_type":   "regular",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// 售罄失敗也要進候補名單
	w = doJSON(t, router, http.MethodGet, "/api/v1/events/"+eventID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		WaitlistSize int `json:"waitlist_size"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.WaitlistSize)
}

func TestTicketHandler_VerifyAndQR(t *testing.T) {
	router, _ := setupRouter()
	eventID := createEvent(t, router, 5)
	ticketID := mintTicket(t, router, eventID, "alice")

	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/tickets/%s/verify?address=alice", ticketID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"valid": true}`, w.Body.String())

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/tickets/%s/verify?address=bob", ticketID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"valid": false}`, w.Body.String())

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/tickets/%s/qr", ticketID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestTicketHandler_UserTickets(t *testing.T) {
	router, _ := setupRouter()
	eventID := createEvent(t, router, 5)
	mintTicket(t, router, eventID, "alice")
	mintTicket(t, router, eventID, "alice")

	w := doJSON(t, router, http.MethodGet, "/api/v1/users/alice/tickets", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tickets []json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tickets))
	assert.Len(t, tickets, 2)
}

func TestChainHandler(t *testing.T) {
	router, l := setupRouter()
	eventID := createEvent(t, router, 5)
	mintTicket(t, router, eventID, "alice")

	w := doJSON(t, router, http.MethodGet, "/api/v1/chain", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var chainResp struct {
		Length int `json:"length"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &chainResp))
	assert.Equal(t, 1, chainResp.Length)

	w = doJSON(t, router, http.MethodGet, "/api/v1/chain/verify", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"valid": true}`, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/v1/chain/pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"pending": 2}`, w.Body.String())

	// 挖礦走隊列，回 202 不等封塊
	w = doJSON(t, router, http.MethodPost, "/api/v1/chain/mine", gin.H{
		"miner_address": "miner-1",
	})
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, 2, l.PendingCount())
}
