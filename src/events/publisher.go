package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bankweb/src/models"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher records transfer submissions for auditing.
type Publisher interface {
	PublishTransfer(ctx context.Context, req models.TransferRequest) error
	Close() error
}

// TransferRequestedEvent is the wire payload of a transfer audit message.
type TransferRequestedEvent struct {
	Event string                 `json:"event"`
	Data  models.TransferRequest `json:"data"`
}

const EventTransferRequested = "transfer.requested"

func transferPayload(req models.TransferRequest) ([]byte, error) {
	return json.Marshal(TransferRequestedEvent{Event: EventTransferRequested, Data: req})
}

type KafkaPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewKafkaPublisher(brokerURLs []string, topic string, logger *zap.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokerURLs...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		Async:        true,
		Logger:       kafka.LoggerFunc(func(msg string, args ...interface{}) { logger.Debug(fmt.Sprintf(msg, args...)) }),
		ErrorLogger:  kafka.LoggerFunc(func(msg string, args ...interface{}) { logger.Error(fmt.Sprintf(msg, args...)) }),
	}
	return &KafkaPublisher{writer: writer, logger: logger}
}

// PublishTransfer keys messages by user so one user's transfers stay ordered
// within a partition.
func (p *KafkaPublisher) PublishTransfer(ctx context.Context, req models.TransferRequest) error {
	payload, err := transferPayload(req)
	if err != nil {
		return fmt.Errorf("marshal transfer event: %w", err)
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(fmt.Sprintf("%d", req.UserID)),
		Value: payload,
		Time:  req.RequestedAt,
	})
	if err != nil {
		return fmt.Errorf("write transfer event: %w", err)
	}
	p.logger.Info("Transfer event queued",
		zap.String("transfer_id", req.ID),
		zap.String("topic", p.writer.Topic))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher writes transfer submissions to the log only. It is used when
// no broker is configured.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) PublishTransfer(_ context.Context, req models.TransferRequest) error {
	p.logger.Info("Transfer requested",
		zap.String("transfer_id", req.ID),
		zap.Int64("user_id", req.UserID),
		zap.String("kind", string(req.Kind)),
		zap.String("from_account", req.FromAccount),
		zap.String("to_account", req.ToAccount),
		zap.String("amount", req.Amount.StringFixed(2)),
		zap.String("frequency", string(req.Frequency)),
		zap.String("notes", req.Notes))
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
