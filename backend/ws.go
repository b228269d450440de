package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/khodemetamir/Reversi/engine"
	"go.uber.org/zap"
)

const (
	wsIdlePingInterval = 30 * time.Second
	wsWriteTimeout     = 5 * time.Second
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

type wsMovePayload struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func serveWS(hub *Hub, controller *GameController, logger *zap.Logger, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)
	client.sendJSON(wsMessage{Type: msgStatus, Payload: mustMarshal(controllerStatus(controller))})

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send); err != nil {
			logger.Debug("websocket writer stopped", zap.Error(err))
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_status":
			client.sendJSON(wsMessage{Type: msgStatus, Payload: mustMarshal(controllerStatus(controller))})
		case "move":
			var payload wsMovePayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				continue
			}
			controller.OnCellClicked(engine.NewMove(payload.Row, payload.Col))
		}
	}
}

// writeWSWithHeartbeat drains send into conn and pings when the
// connection has been quiet for wsIdlePingInterval.
func writeWSWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()
	pingPayload := mustMarshal(wsMessage{Type: msgPing})

	write := func(data []byte) error {
		if err := conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
			return err
		}
		return conn.WriteMessage(websocket.TextMessage, data)
	}

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return nil
			}
			if err := write(msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			if err := write(pingPayload); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
