// Package events publishes issue lifecycle events to Kafka so other
// systems can react to mutations without polling the API.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"issue-tracker/internal/entity"
)

// Publisher writes issue events. A Publisher with a nil writer drops
// events silently, which keeps Kafka optional.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(writer *kafka.Writer) *Publisher {
	return &Publisher{writer: writer}
}

// PublishIssueEvent emits one message keyed issue-<action>-<id>. Failures
// are returned to the caller, who decides how to report them; the mutation
// has already been persisted by the time this runs.
func (p *Publisher) PublishIssueEvent(ctx context.Context, issue *entity.Issue, action string) error {
	if p == nil || p.writer == nil {
		return nil
	}

	issueJSON, err := json.Marshal(issue)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("issue-%s-%d", action, issue.ID)),
		Value: issueJSON,
	}

	return p.writer.WriteMessages(ctx, msg)
}
