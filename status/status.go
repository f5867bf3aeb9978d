// Package status broadcasts scene-edit and load events to websocket clients,
// so viewer pages can refresh without polling.
package status

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gibibite/vega/scene"
)

const (
	INFO = iota
	ERROR
	EDIT
)

type event struct {
	Message string
	Object  scene.ID `json:",omitempty"`
	Field   string   `json:",omitempty"`
	Time    time.Time
	Type    int
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func (c *client) writePump() {
	ticker := time.NewTicker(time.Second * 30)
	defer func() {
		ticker.Stop()
		unregisterClient(c)
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(40 * time.Second)); err != nil {
				return
			}
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("[status] ws write msg error: %v", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(40 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[status] ws write ping error: %v", err)
				return
			}
		}
	}
}

// NewClient attaches a websocket connection to the broadcast hub and replays
// the most recent event to it.
func NewClient(conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan []byte, 32)}
	registerClient(c)
	go c.writePump()
	globalLock.Lock()
	defer globalLock.Unlock()
	if lastMessage != nil {
		c.send <- lastMessage
	}
}

var eventBroadcast chan *event
var broadcastList map[*client]bool
var globalLock sync.Mutex
var lastMessage []byte

func registerClient(c *client) {
	globalLock.Lock()
	defer globalLock.Unlock()
	broadcastList[c] = true
}

func unregisterClient(c *client) {
	globalLock.Lock()
	defer globalLock.Unlock()
	delete(broadcastList, c)
}

func init() {
	eventBroadcast = make(chan *event, 16)
	broadcastList = make(map[*client]bool)
	go func() {
		for e := range eventBroadcast {
			data, err := json.Marshal(e)
			if err != nil {
				log.Printf("[status] failed to marshal event: %v", err)
				continue
			}
			globalLock.Lock()
			lastMessage = data
			for c := range broadcastList {
				select {
				case c.send <- data:
				default:
				}
			}
			globalLock.Unlock()
		}
	}()
}

func broadcast(e *event) {
	e.Time = time.Now()
	eventBroadcast <- e
}

func Info(format string, a ...interface{}) {
	broadcast(&event{Message: fmt.Sprintf(format, a...), Type: INFO})
}

func Error(format string, a ...interface{}) {
	broadcast(&event{Message: fmt.Sprintf(format, a...), Type: ERROR})
}

// FieldEdited reports a successful write through an object's field handle.
func FieldEdited(id scene.ID, field string) {
	broadcast(&event{
		Message: fmt.Sprintf("object %v field %q edited", id, field),
		Object:  id,
		Field:   field,
		Type:    EDIT,
	})
}
