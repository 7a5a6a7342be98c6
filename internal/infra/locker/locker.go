package locker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

const (
	keyPrefix = "slot-booking:date-lock:"

	// retryInterval пауза между попытками захвата занятой блокировки
	retryInterval = 25 * time.Millisecond
)

var (
	// ErrLockTimeout блокировку не удалось взять за отведенное время
	ErrLockTimeout = errors.New("locker: lock wait timeout")

	// ErrLockBackend ошибка обращения к Redis
	ErrLockBackend = errors.New("locker: redis error")
)

// releaseScript удаляет ключ, только если он принадлежит нам
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// DateLocker взаимное исключение заявок на одну дату между процессами.
// Блокировка живет не дольше ttl, даже если владелец упал.
type DateLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	logger Logger
}

// NewDateLocker создает блокировщик поверх клиента Redis
func NewDateLocker(client *redis.Client, ttl, wait time.Duration, logger Logger) *DateLocker {
	return &DateLocker{
		client: client,
		ttl:    ttl,
		wait:   wait,
		logger: logger,
	}
}

// Lock ждет блокировку даты не дольше wait.
// Возвращенную функцию нужно вызвать после завершения транзакции.
func (l *DateLocker) Lock(ctx context.Context, date types.Date) (func(), error) {
	key := keyPrefix + date.String()
	token := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	for {
		acquired, err := l.client.SetNX(waitCtx, key, token, l.ttl).Result()
		if err != nil {
			if waitCtx.Err() != nil && ctx.Err() == nil {
				return nil, fmt.Errorf("%w: date=%s", ErrLockTimeout, date)
			}
			return nil, fmt.Errorf("%w: Lock - setnx: %w", ErrLockBackend, err)
		}
		if acquired {
			break
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: date=%s", ErrLockTimeout, date)
		case <-time.After(retryInterval):
		}
	}

	return func() {
		// Отпускаем даже если контекст запроса уже отменен
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		deleted, err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Int()
		if err != nil {
			l.logger.Error("DateLocker: failed to release lock key=%s: %v", key, err)
			return
		}
		if deleted == 0 {
			l.logger.Warn("DateLocker: lock key=%s expired before release", key)
		}
	}, nil
}

// NopLocker блокировка не нужна: один процесс или сериализация средствами БД
type NopLocker struct{}

// Lock ничего не делает
func (NopLocker) Lock(context.Context, types.Date) (func(), error) {
	return func() {}, nil
}
