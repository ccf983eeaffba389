package mqtt

import (
	"strings"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

type doneToken struct{}

func (doneToken) Wait() bool { return true }
func (doneToken) WaitTimeout(time.Duration) bool { return true }
func (doneToken) Error() error { return nil }

func (doneToken) Done() <-chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}

// recordingClient stands in for the paho client. Only the methods the
// publisher calls are implemented.
type recordingClient struct {
	paho.Client
	open      bool
	sent      []string
	onPublish func(n int)
}

func (c *recordingClient) IsConnectionOpen() bool { return c.open }

func (c *recordingClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	c.sent = append(c.sent, string(payload.([]byte)))
	if c.onPublish != nil {
		c.onPublish(len(c.sent))
	}
	return doneToken{}
}

func newTestPublisher(c *recordingClient) *RealPublisher {
	p := newPublisher(Topic, TopicSystem)
	p.client = c
	return p
}

func raw(s string) SystemEvent {
	return SystemEvent{Event: "PHASE", RawPayload: []byte(s)}
}

func TestRealPublisherSendsDirectlyWhenIdle(t *testing.T) {
	c := &recordingClient{open: true}
	p := newTestPublisher(c)

	if err := p.PublishSystem(raw("A")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(c.sent, ",") != "A" {
		t.Errorf("sent: got %v", c.sent)
	}
}

func TestRealPublisherQueuesWhileDisconnected(t *testing.T) {
	c := &recordingClient{}
	p := newTestPublisher(c)

	p.PublishSystem(raw("A"))
	p.PublishSystem(raw("B"))
	if len(c.sent) != 0 {
		t.Fatalf("nothing should be sent while disconnected, got %v", c.sent)
	}

	// Connected but not yet replayed: new results queue behind the backlog.
	c.open = true
	p.PublishSystem(raw("C"))
	if len(c.sent) != 0 {
		t.Fatalf("result overtook the backlog: %v", c.sent)
	}

	p.replay()
	if strings.Join(c.sent, ",") != "A,B,C" {
		t.Errorf("sent: got %v, want [A B C]", c.sent)
	}
}

func TestRealPublisherKeepsOrderDuringReplay(t *testing.T) {
	c := &recordingClient{}
	p := newTestPublisher(c)

	p.PublishSystem(raw("A"))
	p.PublishSystem(raw("B"))
	c.open = true

	// A result produced while the backlog drains must wait its turn.
	c.onPublish = func(n int) {
		if n == 1 {
			p.PublishSystem(raw("C"))
		}
	}
	p.replay()

	if strings.Join(c.sent, ",") != "A,B,C" {
		t.Errorf("sent: got %v, want [A B C]", c.sent)
	}
	if p.replaying {
		t.Error("replay should finish with the flag cleared")
	}

	p.PublishSystem(raw("D"))
	if c.sent[len(c.sent)-1] != "D" {
		t.Errorf("after replay, sends should go direct: %v", c.sent)
	}
}
