package usecase

import "context"

// ExternalCondition - внешний реестр, проверяющий бизнес-условие по параметру.
// Реестр не владеет им и получает ссылку на каждый вызов.
type ExternalCondition interface {
	VerifyCondition(ctx context.Context, param int64) (bool, error)
}

// MessageProducer публикует события журнала во внешний брокер.
type MessageProducer interface {
	WriteMessages(ctx context.Context, reqs ...WriteMessageReq) error
}
