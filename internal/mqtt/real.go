package mqtt

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/sweeney/panel-test/internal/logic"
)

// backlogCapacity bounds the messages kept while the broker is unreachable.
// One full LED cycle plus a minute of switch snapshots fits.
const backlogCapacity = 256

// RealPublisher publishes to an actual MQTT broker. Messages published while
// the connection is down are queued and replayed on (re)connect.
type RealPublisher struct {
	client paho.Client
	topic  string
	system string

	mu        sync.Mutex
	queue     *backlog
	replaying bool // backlog is being drained; new sends queue behind it
}

// NewRealPublisher creates a publisher for the given broker. If the broker
// does not answer within the connect timeout the publisher is still returned;
// the client keeps retrying in the background and results are queued.
func NewRealPublisher(broker, clientID, topic, systemTopic string) (*RealPublisher, error) {
	p := newPublisher(topic, systemTopic)

	will, err := FormatSystemPayload(SystemEvent{Timestamp: time.Now(), Event: "LWT"})
	if err != nil {
		return nil, fmt.Errorf("format will: %w", err)
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5*time.Second).
		SetWill(systemTopic, string(will), 1, false).
		SetOnConnectHandler(func(paho.Client) { p.replay() }).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Printf("mqtt: connection lost: %v", err)
		})

	p.client = paho.NewClient(opts)
	token := p.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		log.Printf("mqtt: broker %s not reachable yet, queueing results", broker)
		return p, nil
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}
	return p, nil
}

func newPublisher(topic, systemTopic string) *RealPublisher {
	return &RealPublisher{
		topic:  topic,
		system: systemTopic,
		queue:  newBacklog(backlogCapacity),
	}
}

// Publish sends a result at QoS 0.
func (p *RealPublisher) Publish(event logic.Event) error {
	payload, err := FormatPayload(event)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}
	return p.send(queuedMsg{topic: p.topic, payload: payload})
}

// PublishSystem sends a lifecycle event at QoS 1.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	return p.send(queuedMsg{topic: p.system, payload: payload, qos: 1})
}

// send publishes directly only when connected and nothing is waiting in the
// backlog, so results reach the broker in the order they were produced.
func (p *RealPublisher) send(msg queuedMsg) error {
	p.mu.Lock()
	if p.replaying || p.queue.size() > 0 || !p.client.IsConnectionOpen() {
		p.queue.add(msg)
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	token := p.client.Publish(msg.topic, msg.qos, msg.retained, msg.payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish to %s: timeout", msg.topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", msg.topic, err)
	}
	return nil
}

// replay publishes the queued messages in order. It runs on every connect
// and keeps draining until no message queued during the replay is left.
func (p *RealPublisher) replay() {
	for {
		p.mu.Lock()
		msgs, dropped := p.queue.take()
		if len(msgs) == 0 {
			p.replaying = false
			p.mu.Unlock()
			return
		}
		p.replaying = true
		p.mu.Unlock()

		log.Printf("mqtt: connected, replaying %d queued messages (%d dropped)", len(msgs), dropped)
		for _, m := range msgs {
			token := p.client.Publish(m.topic, m.qos, m.retained, m.payload)
			if token.WaitTimeout(5*time.Second) && token.Error() != nil {
				log.Printf("mqtt: replay to %s failed: %v", m.topic, token.Error())
			}
		}
	}
}

// IsConnected reports whether the client currently has a broker connection.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnectionOpen()
}

// Close disconnects from the broker, waiting up to a second for in-flight work.
func (p *RealPublisher) Close() error {
	p.mu.Lock()
	n := p.queue.size()
	p.mu.Unlock()
	if n > 0 {
		log.Printf("mqtt: closing with %d unsent messages", n)
	}
	p.client.Disconnect(1000)
	return nil
}
