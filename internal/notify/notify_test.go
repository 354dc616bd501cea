package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSQS struct {
	sqsiface.SQSAPI
	sent []*sqs.SendMessageInput
	err  error
}

func (f *fakeSQS) SendMessageWithContext(_ aws.Context, in *sqs.SendMessageInput, _ ...request.Option) (*sqs.SendMessageOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, in)
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-1")}, nil
}

func TestPublish(t *testing.T) {
	fake := &fakeSQS{}
	p := New(fake, "https://sqs.eu-west-1.amazonaws.com/123/results")

	id, err := p.Publish(context.Background(), map[string]any{"keyword_rows": 12, "output": "RP12.xlsx"})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)

	require.Len(t, fake.sent, 1)
	msg := fake.sent[0]
	assert.Equal(t, "https://sqs.eu-west-1.amazonaws.com/123/results", *msg.QueueUrl)
	assert.Equal(t, MessageType, *msg.MessageAttributes["type"].StringValue)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(*msg.MessageBody), &body))
	assert.Equal(t, float64(12), body["keyword_rows"])
	assert.Equal(t, "RP12.xlsx", body["output"])
}

func TestPublishErrors(t *testing.T) {
	_, err := New(nil, "queue").Publish(context.Background(), 1)
	assert.Error(t, err)

	_, err = New(&fakeSQS{}, "").Publish(context.Background(), 1)
	assert.Error(t, err)

	boom := errors.New("throttled")
	_, err = New(&fakeSQS{err: boom}, "queue").Publish(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
}
