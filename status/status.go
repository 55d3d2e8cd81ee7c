// Package status keeps the messages a conversion reports to the user.
//
// Every message goes to zap and into a small ring of recent messages. When the
// web server runs, messages are also pushed to websocket clients as JSON.
package status

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	INFO = iota
	WARNING
	ERROR
)

const historySize = 32

type Message struct {
	Text string
	Time time.Time
	Type int
}

func (m Message) TypeName() string {
	switch m.Type {
	case WARNING:
		return "warning"
	case ERROR:
		return "error"
	default:
		return "info"
	}
}

// MarshalJSON adds Level with the readable type name for web clients
func (m Message) MarshalJSON() ([]byte, error) {
	type message Message
	return json.Marshal(struct {
		message
		Level string
	}{message(m), m.TypeName()})
}

type Logger struct {
	log *zap.SugaredLogger

	lock     sync.Mutex
	messages [historySize]*Message
	next     int
	clients  map[*client]bool
}

func NewLogger(l *zap.Logger) *Logger {
	return &Logger{
		log:     l.Sugar(),
		clients: make(map[*client]bool),
	}
}

func (l *Logger) Infof(format string, a ...interface{}) {
	msg := l.push(fmt.Sprintf(format, a...), INFO)
	l.log.Info(msg.Text)
}

func (l *Logger) Warnf(format string, a ...interface{}) {
	msg := l.push(fmt.Sprintf(format, a...), WARNING)
	l.log.Warn(msg.Text)
}

func (l *Logger) Errorf(format string, a ...interface{}) {
	msg := l.push(fmt.Sprintf(format, a...), ERROR)
	l.log.Error(msg.Text)
}

func (l *Logger) Sync() error {
	return l.log.Sync()
}

func (l *Logger) push(text string, _type int) *Message {
	msg := &Message{Text: text, Time: time.Now(), Type: _type}

	l.lock.Lock()
	defer l.lock.Unlock()

	l.messages[l.next%historySize] = msg
	l.next++

	if len(l.clients) != 0 {
		data, err := json.Marshal(msg)
		if err != nil {
			panic(err)
		}
		for c := range l.clients {
			select {
			case c.send <- data:
			default:
				// client is too slow, drop it
				delete(l.clients, c)
				close(c.send)
			}
		}
	}
	return msg
}

// Messages returns recent messages, oldest first
func (l *Logger) Messages() []Message {
	l.lock.Lock()
	defer l.lock.Unlock()

	result := make([]Message, 0, historySize)
	start := 0
	if l.next > historySize {
		start = l.next - historySize
	}
	for i := start; i < l.next; i++ {
		result = append(result, *l.messages[i%historySize])
	}
	return result
}

func (l *Logger) Count(_type int) int {
	count := 0
	for _, m := range l.Messages() {
		if m.Type == _type {
			count++
		}
	}
	return count
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func (l *Logger) writePump(c *client) {
	ticker := time.NewTicker(time.Second * 30)
	defer func() {
		ticker.Stop()
		l.unregisterClient(c)
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(40 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				l.log.Debugf("[status] ws write msg error: %v", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(40 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				l.log.Debugf("[status] ws write ping error: %v", err)
				return
			}
		}
	}
}

// Subscribe streams every following message to conn until the connection fails.
// The last known message is sent right away.
func (l *Logger) Subscribe(conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan []byte, historySize)}

	l.lock.Lock()
	l.clients[c] = true
	if l.next != 0 {
		if data, err := json.Marshal(l.messages[(l.next-1)%historySize]); err == nil {
			c.send <- data
		}
	}
	l.lock.Unlock()

	go l.writePump(c)
	go l.readPump(c)
}

// readPump discards incoming frames so close and pong frames are processed
func (l *Logger) readPump(c *client) {
	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			l.log.Debugf("[status] ws read error: %v", err)
			l.unregisterClient(c)
			return
		}
	}
}

func (l *Logger) unregisterClient(c *client) {
	l.lock.Lock()
	defer l.lock.Unlock()
	if _, ok := l.clients[c]; ok {
		delete(l.clients, c)
		close(c.send)
	}
}
