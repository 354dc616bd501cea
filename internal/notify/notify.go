// Package notify publishes run summaries to an SQS queue.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"
	"go.uber.org/zap"
)

// MessageType is sent as the "type" message attribute.
const MessageType = "keyword-merge-summary"

// Publisher sends JSON messages to one queue.
type Publisher struct {
	svc      sqsiface.SQSAPI
	queueURL string
}

// New creates a Publisher for queueURL.
func New(svc sqsiface.SQSAPI, queueURL string) *Publisher {
	return &Publisher{svc: svc, queueURL: queueURL}
}

// Publish marshals v as JSON and sends it, returning the SQS message id.
func (p *Publisher) Publish(ctx context.Context, v any) (string, error) {
	if p.svc == nil || p.queueURL == "" {
		return "", errors.New("results queue is not configured")
	}
	body, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode message: %w", err)
	}

	out, err := p.svc.SendMessageWithContext(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]*sqs.MessageAttributeValue{
			"type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(MessageType),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("send message to %s: %w", p.queueURL, err)
	}
	id := aws.StringValue(out.MessageId)
	zap.S().Infow("published run summary", "queue", p.queueURL, "message_id", id)
	return id, nil
}
