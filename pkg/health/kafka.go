package health

import (
	"context"
	"fmt"
	"strings"

	"github.com/segmentio/kafka-go"
)

// KafkaChecker dials every configured broker. One reachable broker is enough
// for the webhook publisher and consumer; the rest are reported in the message.
type KafkaChecker struct {
	brokers []string
	dial    func(ctx context.Context, broker string) error
}

func NewKafkaChecker(brokers []string) *KafkaChecker {
	return &KafkaChecker{brokers: brokers, dial: dialBroker}
}

func (c *KafkaChecker) Name() string {
	return "kafka"
}

func (c *KafkaChecker) Check(ctx context.Context) Result {
	if len(c.brokers) == 0 {
		return Result{Status: StatusDown, Message: "no brokers configured"}
	}

	var unreachable []string
	for _, broker := range c.brokers {
		if err := c.dial(ctx, broker); err != nil {
			unreachable = append(unreachable, broker)
		}
	}

	switch {
	case len(unreachable) == len(c.brokers):
		return Result{Status: StatusDown, Message: "all brokers unreachable"}
	case len(unreachable) > 0:
		return Result{Status: StatusUp, Message: fmt.Sprintf("unreachable brokers: %s", strings.Join(unreachable, ","))}
	default:
		return Result{Status: StatusUp}
	}
}

func dialBroker(ctx context.Context, broker string) error {
	conn, err := kafka.DialContext(ctx, "tcp", broker)
	if err != nil {
		return err
	}
	return conn.Close()
}
