package main

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"brandoraBack/internal/models"
)

// JobHub fans scrape job status changes out to connected dashboard clients.
type JobHub struct {
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan models.JobEvent

	mu      sync.Mutex
	clients map[*websocket.Conn]bool

	errorLog *log.Logger
}

func NewJobHub(errorLog *log.Logger) *JobHub {
	return &JobHub{
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan models.JobEvent, 64),
		clients:    make(map[*websocket.Conn]bool),
		errorLog:   errorLog,
	}
}

func (h *JobHub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for conn := range h.clients {
				conn.Close()
				delete(h.clients, conn)
			}
			h.mu.Unlock()
			return
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()
		case conn := <-h.unregister:
			h.mu.Lock()
			if h.clients[conn] {
				conn.Close()
				delete(h.clients, conn)
			}
			h.mu.Unlock()
		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteJSON(ev); err != nil {
					h.errorLog.Printf("websocket write: %v", err)
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastJob satisfies services.JobBroadcaster. A full channel drops the
// event; clients reconcile from the jobs listing anyway.
func (h *JobHub) BroadcastJob(ev models.JobEvent) {
	select {
	case h.broadcast <- ev:
	default:
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// JobStreamHandler upgrades a dashboard connection. The stream is
// server-to-client only; reads are drained to detect disconnects.
func (app *application) JobStreamHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.errorLog.Printf("websocket upgrade: %v", err)
		return
	}
	app.jobHub.register <- conn

	go func() {
		defer func() {
			app.jobHub.unregister <- conn
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
