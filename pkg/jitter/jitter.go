// Package jitter добавляет случайность в интервалы повторных попыток (backoff),
// чтобы клиенты не повторяли запросы синхронно после общего сбоя.
package jitter

import (
	"math/rand/v2"
	"time"
)

// DefaultJitter - стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

// Duration возвращает продолжительность с применённым джиттером.
// Результат находится в диапазоне [d, d*(1+jitterFactor)].
func Duration(d time.Duration, jitterFactor float64) time.Duration {
	return DurationWithRand(d, jitterFactor, rand.Float64)
}

// DurationWithRand как Duration, но с заданным источником случайных чисел из [0, 1).
// Полезно для тестов, где нужен детерминированный результат.
func DurationWithRand(d time.Duration, jitterFactor float64, float64Fn func() float64) time.Duration {
	if d <= 0 || jitterFactor <= 0 {
		return d
	}

	return d + time.Duration(float64Fn()*jitterFactor*float64(d))
}

// ExponentialBackoff вычисляет экспоненциальную задержку с джиттером.
// base - начальная задержка, max - верхняя граница без учёта джиттера,
// attempt - номер попытки с нуля.
func ExponentialBackoff(base, max time.Duration, attempt int, jitterFactor float64) time.Duration {
	return Duration(Backoff(base, max, attempt), jitterFactor)
}

// Backoff вычисляет экспоненциальную задержку без джиттера: base * 2^attempt, но не больше max.
func Backoff(base, max time.Duration, attempt int) time.Duration {
	backoff := base
	for i := 0; i < attempt; i++ {
		backoff *= 2
		if backoff >= max {
			return max
		}
	}

	return min(backoff, max)
}
