package rewriter

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/iw2rmb/lispedit/requires"
)

// ErrSourceSyntax is returned when the collaborator reports that the
// source file does not parse. Callers abort without mutating the buffer.
var ErrSourceSyntax = errors.New("syntax error in source")

// Client is the require-rewriter collaborator. Each call sends one request
// and returns the replacement require-block text, possibly empty.
type Client interface {
	Tidy(ctx context.Context, forms []requires.Form) (string, error)
	Trim(ctx context.Context, path string, forms []requires.Form) (string, error)
	BaseConvert(ctx context.Context, path string, forms []requires.Form) (string, error)
}

// WSClient speaks JSON request/reply to the analysis backend over a
// websocket. One request is in flight at a time; replies are matched to
// requests by ID and strays are dropped.
type WSClient struct {
	conn *websocket.Conn
	log  *zap.Logger

	mu sync.Mutex
}

// Dial connects to the backend at url (a ws:// or wss:// endpoint).
func Dial(ctx context.Context, url string, log *zap.Logger) (*WSClient, error) {
	if log == nil {
		log = zap.NewNop()
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial rewriter %s: %w", url, err)
	}
	log.Debug("connected to rewriter", zap.String("url", url))
	return &WSClient{conn: conn, log: log}, nil
}

func (c *WSClient) Close() error {
	return c.conn.Close()
}

func (c *WSClient) Tidy(ctx context.Context, forms []requires.Form) (string, error) {
	return c.roundTrip(ctx, Request{Op: OpTidy, Requires: serialize(forms)})
}

func (c *WSClient) Trim(ctx context.Context, path string, forms []requires.Form) (string, error) {
	return c.roundTrip(ctx, Request{Op: OpTrim, Path: path, Requires: serialize(forms)})
}

func (c *WSClient) BaseConvert(ctx context.Context, path string, forms []requires.Form) (string, error) {
	return c.roundTrip(ctx, Request{Op: OpBase, Path: path, Requires: serialize(forms)})
}

func (c *WSClient) roundTrip(ctx context.Context, req Request) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	req.ID = uuid.New()
	if deadline, ok := ctx.Deadline(); ok {
		_ = c.conn.SetWriteDeadline(deadline)
		_ = c.conn.SetReadDeadline(deadline)
	}

	c.log.Debug("rewriter request",
		zap.String("op", string(req.Op)),
		zap.String("id", req.ID.String()),
		zap.Int("requires", len(req.Requires)))

	if err := c.conn.WriteJSON(&req); err != nil {
		return "", fmt.Errorf("send %s request: %w", req.Op, err)
	}

	for {
		var rep Reply
		if err := c.conn.ReadJSON(&rep); err != nil {
			return "", fmt.Errorf("read %s reply: %w", req.Op, err)
		}
		if rep.ID != req.ID {
			c.log.Warn("dropping reply for unknown request",
				zap.String("id", rep.ID.String()))
			continue
		}
		if rep.SyntaxError {
			return "", ErrSourceSyntax
		}
		if rep.Error != "" {
			return "", fmt.Errorf("%s: %s", req.Op, rep.Error)
		}
		return rep.Block, nil
	}
}

func serialize(forms []requires.Form) []string {
	out := make([]string, 0, len(forms))
	for _, f := range forms {
		out = append(out, f.String())
	}
	return out
}
