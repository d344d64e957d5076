package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// connWrapper serializes writers on a connection. gorilla allows one
// concurrent reader and one concurrent writer.
type connWrapper struct {
	conn      *websocket.Conn
	mutex     sync.Mutex
	closeOnce sync.Once
}

func newConnWrapper(c *websocket.Conn) *connWrapper {
	return &connWrapper{conn: c}
}

func (w *connWrapper) WriteJSON(v any, wait time.Duration) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if err := w.conn.SetWriteDeadline(time.Now().Add(wait)); err != nil {
		return err
	}
	return w.conn.WriteJSON(v)
}

func (w *connWrapper) WriteControl(messageType int, data []byte, wait time.Duration) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.conn.WriteControl(messageType, data, time.Now().Add(wait))
}

func (w *connWrapper) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.mutex.Lock()
		defer w.mutex.Unlock()
		err = w.conn.Close()
	})
	return err
}
