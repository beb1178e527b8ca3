package ioc

import (
	"github.com/codearena/contest_relay/event"
)

// InitNilKafka 补偿任务不发布判题事件
func InitNilKafka() event.Producer {
	return nil
}
