package ws

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/vladkorolev/hoopshot/internal/middleware"
)

// Conn wraps one client websocket with a buffered outbound queue and a
// decoded inbound stream. Frame messages arrive at display refresh rate,
// so a slow client sheds outbound snapshots rather than stalling the
// session goroutine.
type Conn struct {
	ws      *websocket.Conn
	sendCh  chan []byte
	done    chan struct{}
	once    sync.Once
	log     *zap.Logger
	ID      string
	IP      string
	limiter *middleware.IPRateLimiter
}

func NewConn(wsc *websocket.Conn, id, ip string, limiter *middleware.IPRateLimiter, log *zap.Logger) *Conn {
	return &Conn{
		ws:      wsc,
		sendCh:  make(chan []byte, 64),
		done:    make(chan struct{}),
		log:     log.With(zap.String("conn", id)),
		ID:      id,
		IP:      ip,
		limiter: limiter,
	}
}

// Send queues a message for delivery, dropping it if the client has
// fallen behind. State snapshots are resent every frame anyway.
func (c *Conn) Send(msg Message) {
	data, err := Encode(msg)
	if err != nil {
		c.log.Error("encode failed", zap.Error(err))
		return
	}
	select {
	case c.sendCh <- data:
	default:
		c.log.Debug("send buffer full, dropping message", zap.Uint8("type", msg.Type))
	}
}

// ReadLoop decodes inbound messages onto a channel until the connection
// drops or ctx is canceled. The channel closes on exit.
func (c *Conn) ReadLoop(ctx context.Context) <-chan Message {
	ch := make(chan Message, 64)
	go func() {
		defer close(ch)
		for {
			_, data, err := c.ws.Read(ctx)
			if err != nil {
				c.log.Debug("read loop ended", zap.Error(err))
				c.Close()
				return
			}
			// Per-IP message rate limiting; drop silently rather than
			// disconnecting a client whose frame loop runs hot.
			if c.limiter != nil && !c.limiter.MessageAllowed(c.IP) {
				continue
			}
			msg, err := Decode(data)
			if err != nil {
				c.log.Warn("decode failed", zap.Error(err))
				continue
			}
			select {
			case ch <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

func (c *Conn) WriteLoop(ctx context.Context) {
	for {
		select {
		case data := <-c.sendCh:
			wctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := c.ws.Write(wctx, websocket.MessageText, data)
			cancel()
			if err != nil {
				c.log.Debug("write failed", zap.Error(err))
				c.Close()
				return
			}
		case <-c.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (c *Conn) Close() {
	c.once.Do(func() {
		close(c.done)
		c.ws.Close(websocket.StatusNormalClosure, "")
	})
}

func (c *Conn) Done() <-chan struct{} {
	return c.done
}
