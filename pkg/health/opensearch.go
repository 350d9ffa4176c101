package health

import (
	"context"
	"fmt"

	"github.com/opensearch-project/opensearch-go"
)

// OpensearchChecker checks OpenSearch cluster reachability.
type OpensearchChecker struct {
	client *opensearch.Client
}

func NewOpensearchChecker(client *opensearch.Client) *OpensearchChecker {
	return &OpensearchChecker{client: client}
}

// Name returns "opensearch".
func (c *OpensearchChecker) Name() string {
	return "opensearch"
}

// Check pings the cluster.
func (c *OpensearchChecker) Check(ctx context.Context) Result {
	res, err := c.client.Ping(c.client.Ping.WithContext(ctx))
	if err != nil {
		return Result{Status: StatusDown, Message: err.Error()}
	}
	defer res.Body.Close()

	if res.IsError() {
		return Result{Status: StatusDown, Message: fmt.Sprintf("ping status %d", res.StatusCode)}
	}
	return Result{Status: StatusUp}
}
