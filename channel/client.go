package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/tvuforum/syncGo/logger"
	"github.com/tvuforum/syncGo/models"
	"go.uber.org/zap"
)

const (
	joinRoomEvent  = "joinPostRoom"
	leaveRoomEvent = "leavePostRoom"

	reconnectMinDelay = time.Second
	reconnectMaxDelay = 30 * time.Second
)

// SocketClient is the process-wide realtime connection, shared by all open
// projections. It is explicitly constructed and injected; room join/leave
// keyed by post id is the only coordination point between consumers.
//
// One handler per room: every join must be matched by exactly one leave
// before the same post can be joined again.
type SocketClient struct {
	url      string
	token    string
	deviceId string

	mu     sync.Mutex // guards conn, rooms, closed
	wmu    sync.Mutex // serializes socket writes
	conn   *websocket.Conn
	rooms  map[string]func(models.Event)
	closed bool
}

func NewSocketClient(url, token string) *SocketClient {
	return &SocketClient{
		url:      url,
		token:    token,
		deviceId: uuid.NewString(),
		rooms:    make(map[string]func(models.Event)),
	}
}

// Connect dials the socket endpoint and starts the read loop. Dropped
// connections are redialed with backoff and all joined rooms are re-joined;
// event-id dedup in the projections absorbs any replays.
func (c *SocketClient) Connect(ctx context.Context) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return fmt.Errorf("connecting socket: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	go c.readLoop(conn)
	return nil
}

// Close tears the connection down for good. No reconnect is attempted after
// Close.
func (c *SocketClient) Close() {
	c.mu.Lock()
	c.closed = true
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
}

// JoinPostRoom registers interest in one post's event scope. Events already
// in flight for other posts are filtered both here and defensively in the
// projection.
func (c *SocketClient) JoinPostRoom(postId string, handler func(models.Event)) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return fmt.Errorf("socket client is closed")
	}
	if _, joined := c.rooms[postId]; joined {
		c.mu.Unlock()
		return fmt.Errorf("post room %s already joined", postId)
	}
	c.rooms[postId] = handler
	c.mu.Unlock()

	if err := c.sendRoomFrame(joinRoomEvent, postId); err != nil {
		// a failed join leaves no registration behind, the caller may retry
		c.mu.Lock()
		delete(c.rooms, postId)
		c.mu.Unlock()
		return err
	}
	return nil
}

func (c *SocketClient) LeavePostRoom(postId string) error {
	c.mu.Lock()
	if _, joined := c.rooms[postId]; !joined {
		c.mu.Unlock()
		return nil
	}
	delete(c.rooms, postId)
	c.mu.Unlock()

	return c.sendRoomFrame(leaveRoomEvent, postId)
}

func (c *SocketClient) dial(ctx context.Context) (*websocket.Conn, error) {
	header := http.Header{}
	if len(c.token) > 0 {
		header.Set("Authorization", "bearer "+c.token)
	}
	header.Set("X-Device-Id", c.deviceId)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, header)
	return conn, err
}

func (c *SocketClient) readLoop(conn *websocket.Conn) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}
		c.dispatch(raw)
	}

	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return
	}

	logger.Warn("Socket connection lost, reconnecting")
	c.reconnect()
}

func (c *SocketClient) reconnect() {
	delay := reconnectMinDelay
	for {
		time.Sleep(delay)

		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()

		conn, err := c.dial(context.Background())
		if err != nil {
			logger.Warn("Socket redial failed", zap.Error(err), zap.Duration("nextDelay", delay))
			if delay *= 2; delay > reconnectMaxDelay {
				delay = reconnectMaxDelay
			}
			continue
		}

		c.mu.Lock()
		if c.closed {
			// Close raced the redial, the fresh conn must not outlive it
			c.mu.Unlock()
			conn.Close()
			return
		}
		c.conn = conn
		rooms := make([]string, 0, len(c.rooms))
		for postId := range c.rooms {
			rooms = append(rooms, postId)
		}
		c.mu.Unlock()

		for _, postId := range rooms {
			if err := c.sendRoomFrame(joinRoomEvent, postId); err != nil {
				logger.Error("Failed re-joining post room", zap.String("postId", postId), zap.Error(err))
			}
		}

		logger.Info("Socket reconnected", zap.Int("rooms", len(rooms)))
		go c.readLoop(conn)
		return
	}
}

// dispatch decodes one inbound message and routes it to the joined room's
// handler. Undecodable messages and events for rooms nobody joined are
// dropped.
func (c *SocketClient) dispatch(raw []byte) {
	event, err := DecodeEvent(raw)
	if err != nil {
		logger.Debug("Dropping undecodable socket message", zap.Error(err))
		return
	}

	c.mu.Lock()
	handler := c.rooms[event.Post()]
	c.mu.Unlock()

	if handler == nil {
		logger.Debug("Dropping event for unjoined room", zap.String("postId", event.Post()))
		return
	}
	handler(event)
}

func (c *SocketClient) sendRoomFrame(event, postId string) error {
	data, err := json.Marshal(roomPayload{PostId: postId})
	if err != nil {
		return err
	}

	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		// not connected yet, the room is re-joined on reconnect
		return nil
	}

	c.wmu.Lock()
	defer c.wmu.Unlock()
	if err := conn.WriteJSON(frame{Event: event, Data: data}); err != nil {
		return fmt.Errorf("sending %s: %w", event, err)
	}
	return nil
}
