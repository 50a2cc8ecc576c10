// Package condition содержит реализации внешнего реестра условий, к которому
// обращается реестр продуктов перед выдачей результата.
package condition

import (
	"context"
	"time"

	"github.com/DRSN-tech/product-registry/internal/usecase"
)

// Func позволяет использовать обычную функцию как внешний реестр.
type Func func(ctx context.Context, param int64) (bool, error)

func (f Func) VerifyCondition(ctx context.Context, param int64) (bool, error) {
	return f(ctx, param)
}

// AllowList - статический реестр: условие выполняется для заранее одобренных параметров.
type AllowList struct {
	params map[int64]struct{}
}

func NewAllowList(params ...int64) *AllowList {
	set := make(map[int64]struct{}, len(params))
	for _, p := range params {
		set[p] = struct{}{}
	}

	return &AllowList{params: set}
}

func (a *AllowList) VerifyCondition(ctx context.Context, param int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, ok := a.params[param]
	return ok, nil
}

// timeoutCondition ограничивает время одного обращения к внешнему реестру.
type timeoutCondition struct {
	next    usecase.ExternalCondition
	timeout time.Duration
}

// WithTimeout оборачивает реестр так, что каждая проверка выполняется не дольше timeout.
// При timeout <= 0 реестр возвращается без изменений.
func WithTimeout(next usecase.ExternalCondition, timeout time.Duration) usecase.ExternalCondition {
	if timeout <= 0 {
		return next
	}

	return &timeoutCondition{next: next, timeout: timeout}
}

func (t *timeoutCondition) VerifyCondition(ctx context.Context, param int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	return t.next.VerifyCondition(ctx, param)
}
