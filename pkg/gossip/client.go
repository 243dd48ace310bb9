package gossip

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
)

const serviceName = "vesna.gossip.Gossip"

// Client talks to a single gossip node.
type Client struct {
	cc *grpc.ClientConn
}

// Dial connects to a gossip node. The connection uses the binary codec for
// every call, extra options are passed through to gRPC.
func Dial(ctx context.Context, addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append(opts, grpc.WithDefaultCallOptions(
		grpc.ForceCodec(BinaryCodec{}),
	))
	cc, err := grpc.DialContext(ctx, addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("gossip client: dial %s: %w", addr, err)
	}
	return &Client{cc: cc}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.cc.Close()
}

// SendMessage submits one message envelope and returns the node's response.
func (c *Client) SendMessage(ctx context.Context, msg *Message) (*Response, error) {
	resp := new(Response)
	if err := c.cc.Invoke(ctx, fullMethod("SendMessage"), msg, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// SendIntent gossips an encoded signed intent under the given topic.
func (c *Client) SendIntent(ctx context.Context, data []byte, topic string) (*Response, error) {
	return c.SendMessage(ctx, NewIntentMessage(data, topic))
}

// SubscribeTopic asks the node to join the given topic so that intents
// published under it reach its matchmakers.
func (c *Client) SubscribeTopic(ctx context.Context, topic string) (*Response, error) {
	return c.SendMessage(ctx, NewSubscribeMessage(topic))
}

func fullMethod(method string) string {
	return fmt.Sprintf("/%s/%s", serviceName, method)
}
