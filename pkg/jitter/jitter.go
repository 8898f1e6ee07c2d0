// Package jitter добавляет случайный разброс к интервалам повторных попыток,
// чтобы параллельные ретраи не выстреливали одновременно (thundering herd).
package jitter

import (
	"math/rand"
	"sync"
	"time"
)

// DefaultJitter — коэффициент разброса по умолчанию (50%)
const DefaultJitter = 0.5

var (
	globalRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	randMutex  sync.Mutex
)

// Duration возвращает длительность со случайной добавкой.
// Результат лежит в диапазоне [d, d*(1+jitterFactor)].
func Duration(d time.Duration, jitterFactor float64) time.Duration {
	randMutex.Lock()
	extra := globalRand.Float64() * jitterFactor * float64(d)
	randMutex.Unlock()
	return d + time.Duration(extra)
}

// DurationWithSeed — вариант Duration с внешним генератором случайных чисел,
// нужен тестам и детерминированным сценариям.
func DurationWithSeed(d time.Duration, jitterFactor float64, rng *rand.Rand) time.Duration {
	return d + time.Duration(rng.Float64()*jitterFactor*float64(d))
}

// ExponentialBackoff считает экспоненциальную задержку с разбросом.
// base — стартовая задержка, max — потолок, attempt — номер попытки (с нуля).
func ExponentialBackoff(base, max time.Duration, attempt int, jitterFactor float64) time.Duration {
	backoff := base
	for i := 0; i < attempt && backoff < max; i++ {
		backoff *= 2
	}
	if backoff > max {
		backoff = max
	}
	return Duration(backoff, jitterFactor)
}
