package event

import (
	"context"

	"github.com/IBM/sarama"
)

type Producer interface {
	Produce(ctx context.Context, msg *sarama.ProducerMessage) (partition int32, offset int64, err error)
}

type SaramaProducer struct {
	producer sarama.SyncProducer
}

var _ Producer = (*SaramaProducer)(nil)

func NewSaramaProducer(producer sarama.SyncProducer) *SaramaProducer {
	return &SaramaProducer{producer: producer}
}

func (p *SaramaProducer) Produce(_ context.Context, msg *sarama.ProducerMessage) (int32, int64, error) {
	return p.producer.SendMessage(msg)
}
