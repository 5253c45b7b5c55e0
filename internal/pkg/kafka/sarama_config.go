package kafka

import (
	"Murmur/internal/api/config"
	"time"

	"github.com/IBM/sarama"
)

// newSaramaConfig 生产者配置，同步发送要求 leader 与 ISR 全部确认
func newSaramaConfig(kafkaCfg config.KafkaConfig) *sarama.Config {
	c := sarama.NewConfig()

	if kafkaCfg.Sasl.Enable {
		c.Net.SASL.Enable = true
		c.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		c.Net.SASL.User = kafkaCfg.Sasl.Username
		c.Net.SASL.Password = kafkaCfg.Sasl.Password
	}

	c.Producer.RequiredAcks = sarama.WaitForAll
	c.Producer.Return.Successes = true
	c.Producer.Return.Errors = true
	c.Producer.Retry.Max = 3
	c.Producer.Timeout = 5 * time.Second
	c.Producer.Partitioner = sarama.NewHashPartitioner
	c.Producer.Idempotent = false

	return c
}
