package rpcclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/vesna-dev/vesna-go/pkg/vesnarpc"
	"github.com/vesna-dev/vesna-go/pkg/vesnarpc/result"
	"go.uber.org/atomic"
)

// WSClient is a websocket-enabled RPC client that can be used with
// appropriate servers. It's supposed to be created using NewWS, and it
// needs to be explicitly closed via Close to release the connection. It
// exposes the same one-shot requests as Client (routed over the websocket
// connection) plus event subscriptions, which is what the confirmation
// protocol is built on: events matching a subscribed query are pushed by
// the node into the receiver channel given to Subscribe.
type WSClient struct {
	Client

	ws          *websocket.Conn
	done        chan struct{}
	requests    chan *vesnarpc.Request
	shutdown    chan struct{}
	closeCalled atomic.Bool

	closeErrLock sync.Mutex
	closeErr     error

	subscriptionsLock sync.RWMutex
	// subscriptions tracks active subscriptions by their local IDs.
	subscriptions map[string]*subscription
	// routes maps a subscribe request's ID to its subscription, events for
	// the query are pushed by the node under that same ID.
	routes map[uint64]*subscription

	respLock     sync.RWMutex
	respChannels map[uint64]chan *vesnarpc.Response
}

// subscription binds one event query to a caller-provided receiver channel.
type subscription struct {
	id        string
	query     string
	requestID uint64
	rcvr      chan<- *result.Event
}

const (
	// Pongs are expected within this interval, reads time out without them.
	wsPongLimit = 60 * time.Second
	// Pings are sent no less frequently than pongs are expected.
	wsPingPeriod = wsPongLimit / 2
	wsWriteLimit = wsPingPeriod / 2

	// wsReadLimit is the incoming message size limit, enough for any event
	// the ledger can emit.
	wsReadLimit = 10 * 1024 * 1024
)

// errConnClosedByUser is a closure error for when the connection is closed
// by the user's Close call rather than by a network failure.
var errConnClosedByUser = errors.New("connection closed by user")

// NewWS returns a new WSClient ready to use (with an established websocket
// connection). The endpoint must use the "ws" or "wss" scheme. The caller is
// responsible for calling Close when finished.
func NewWS(ctx context.Context, endpoint string, opts Options) (*WSClient, error) {
	dialer := websocket.Dialer{HandshakeTimeout: opts.DialTimeout}
	ws, resp, err := dialer.DialContext(ctx, endpoint, nil)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}
	wsc := &WSClient{
		Client: Client{},

		ws:            ws,
		done:          make(chan struct{}),
		shutdown:      make(chan struct{}),
		requests:      make(chan *vesnarpc.Request),
		subscriptions: make(map[string]*subscription),
		routes:        make(map[uint64]*subscription),
		respChannels:  make(map[uint64]chan *vesnarpc.Response),
	}

	err = initClient(ctx, &wsc.Client, endpoint, opts)
	if err != nil {
		ws.Close()
		return nil, err
	}
	wsc.Client.cli = nil
	wsc.Client.requestF = wsc.makeWsRequest
	go wsc.wsReader()
	go wsc.wsWriter()
	return wsc, nil
}

// Close closes the connection and releases both I/O goroutines. It returns
// the error the connection was closed with, nil when closed by this call
// alone.
func (c *WSClient) Close() error {
	if c.closeCalled.CAS(false, true) {
		c.setCloseErr(errConnClosedByUser)
		// Closing the connection makes the reader quit, closing shutdown
		// releases the writer.
		close(c.shutdown)
		c.ws.Close()
	}
	<-c.done
	err := c.getCloseErr()
	if errors.Is(err, errConnClosedByUser) {
		return nil
	}
	return err
}

func (c *WSClient) setCloseErr(err error) {
	c.closeErrLock.Lock()
	defer c.closeErrLock.Unlock()

	if c.closeErr == nil {
		c.closeErr = err
	}
}

func (c *WSClient) getCloseErr() error {
	c.closeErrLock.Lock()
	defer c.closeErrLock.Unlock()

	return c.closeErr
}

func (c *WSClient) wsReader() {
	c.ws.SetReadLimit(wsReadLimit)
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(wsPongLimit))
	})
	var connCloseErr error
readloop:
	for {
		rr := new(vesnarpc.Response)
		err := c.ws.SetReadDeadline(time.Now().Add(wsPongLimit))
		if err == nil {
			err = c.ws.ReadJSON(rr)
		}
		if err != nil {
			// Timeout/connection loss/malformed response.
			connCloseErr = fmt.Errorf("failed to read JSON response: %w", err)
			break readloop
		}
		if rr.ID == nil {
			connCloseErr = errors.New("response has no ID")
			break readloop
		}
		var id uint64
		if err = json.Unmarshal(rr.ID, &id); err != nil {
			connCloseErr = fmt.Errorf("response has unexpected ID: %w", err)
			break readloop
		}

		// A pending request with this ID takes priority: the subscribe ack
		// arrives under the same ID events are then pushed with. Every
		// request gets exactly one response, so the channel is dropped
		// right here and the next message with this ID routes as an event.
		c.respLock.Lock()
		resp := c.respChannels[id]
		delete(c.respChannels, id)
		c.respLock.Unlock()
		if resp != nil {
			select {
			case <-c.shutdown:
				break readloop
			case resp <- rr:
			}
			continue
		}

		c.subscriptionsLock.RLock()
		sub := c.routes[id]
		c.subscriptionsLock.RUnlock()
		if sub == nil {
			connCloseErr = fmt.Errorf("unexpected response ID %d", id)
			break readloop
		}
		if rr.Error != nil {
			connCloseErr = fmt.Errorf("event error for %s: %w", sub.query, rr.Error)
			break readloop
		}
		event := new(result.Event)
		if err = json.Unmarshal(rr.Result, event); err != nil {
			connCloseErr = fmt.Errorf("failed to decode event: %w", err)
			break readloop
		}
		select {
		case <-c.shutdown:
			break readloop
		case sub.rcvr <- event:
		}
	}
	if connCloseErr != nil {
		c.setCloseErr(connCloseErr)
	}
	close(c.done)
	c.respLock.Lock()
	for _, ch := range c.respChannels {
		close(ch)
	}
	c.respChannels = nil
	c.respLock.Unlock()
	c.Close()
}

func (c *WSClient) wsWriter() {
	pingTicker := time.NewTicker(wsPingPeriod)
	defer c.ws.Close()
	defer pingTicker.Stop()
	var connCloseErr error
writeloop:
	for {
		select {
		case <-c.shutdown:
			return
		case req, ok := <-c.requests:
			if !ok {
				return
			}
			if err := c.ws.SetWriteDeadline(time.Now().Add(c.opts.RequestTimeout)); err != nil {
				connCloseErr = fmt.Errorf("failed to set request write deadline: %w", err)
				break writeloop
			}
			if err := c.ws.WriteJSON(req); err != nil {
				connCloseErr = fmt.Errorf("failed to write JSON request: %w", err)
				break writeloop
			}
		case <-pingTicker.C:
			if err := c.ws.SetWriteDeadline(time.Now().Add(wsWriteLimit)); err != nil {
				connCloseErr = fmt.Errorf("failed to set ping write deadline: %w", err)
				break writeloop
			}
			if err := c.ws.WriteMessage(websocket.PingMessage, []byte{}); err != nil {
				connCloseErr = fmt.Errorf("failed to write ping message: %w", err)
				break writeloop
			}
		}
	}
	if connCloseErr != nil {
		c.setCloseErr(connCloseErr)
	}
}

func (c *WSClient) makeWsRequest(r *vesnarpc.Request) (*vesnarpc.Response, error) {
	ch := make(chan *vesnarpc.Response)
	c.respLock.Lock()
	select {
	case <-c.done:
		c.respLock.Unlock()
		return nil, errors.New("connection lost before registering response channel")
	default:
		c.respChannels[r.ID] = ch
		c.respLock.Unlock()
	}
	select {
	case <-c.done:
		return nil, errors.New("connection lost before sending the request")
	case c.requests <- r:
	}
	select {
	case <-c.done:
		return nil, errors.New("connection lost while waiting for the response")
	case resp, ok := <-ch:
		if !ok {
			return nil, errors.New("connection lost while waiting for the response")
		}
		return resp, nil
	}
}

// Subscribe registers the given event query on the node and routes matching
// events into rcvr. The route is set up before the request goes out, so an
// event pushed right after the node registers the query cannot be missed.
// Returns the ID of the subscription, to be used with Unsubscribe. The
// receiver channel must be serviced, event delivery blocks on it.
func (c *WSClient) Subscribe(q string, rcvr chan<- *result.Event) (string, error) {
	if rcvr == nil {
		return "", errors.New("bad receiver channel")
	}
	sub := &subscription{
		id:        uuid.NewString(),
		query:     q,
		requestID: c.getNextRequestID(),
		rcvr:      rcvr,
	}
	c.subscriptionsLock.Lock()
	c.subscriptions[sub.id] = sub
	c.routes[sub.requestID] = sub
	c.subscriptionsLock.Unlock()

	var v json.RawMessage
	if err := c.performRequestID(sub.requestID, vesnarpc.MethodSubscribe, map[string]any{"query": q}, &v); err != nil {
		c.dropSubscription(sub)
		return "", err
	}
	return sub.id, nil
}

// Unsubscribe removes the subscription with the given ID from the node and
// stops routing its events.
func (c *WSClient) Unsubscribe(id string) error {
	c.subscriptionsLock.RLock()
	sub, ok := c.subscriptions[id]
	c.subscriptionsLock.RUnlock()
	if !ok {
		return errors.New("unknown subscription ID")
	}
	var v json.RawMessage
	if err := c.performRequest(vesnarpc.MethodUnsubscribe, map[string]any{"query": sub.query}, &v); err != nil {
		return err
	}
	c.dropSubscription(sub)
	return nil
}

func (c *WSClient) dropSubscription(sub *subscription) {
	c.subscriptionsLock.Lock()
	delete(c.subscriptions, sub.id)
	delete(c.routes, sub.requestID)
	c.subscriptionsLock.Unlock()
}
