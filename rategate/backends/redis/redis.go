package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

// Backend stores admission logs in Redis so one quota can be shared by
// several processes talking to the same upstream service.
type Backend struct {
	client *redis.Client
}

func (r *Backend) GetClient() *redis.Client {
	return r.client
}

// New initializes a new Redis storage with the given configuration.
func New(config Config) (*Backend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
		PoolSize: config.PoolSize,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, NewConnectionFailedError(config.Addr, err)
	}

	return &Backend{client: client}, nil
}

func (r *Backend) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil // Key doesn't exist, return empty string with no error
	}
	if err != nil {
		return "", NewGetFailedError(key, err)
	}
	return val, nil
}

func (r *Backend) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	if err := r.client.Set(ctx, key, value, expiration).Err(); err != nil {
		return NewSetFailedError(key, err)
	}
	return nil
}

func (r *Backend) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return NewDeleteFailedError(key, err)
	}
	return nil
}

func (r *Backend) Close() error {
	if err := r.client.Close(); err != nil {
		return NewCloseFailedError(err)
	}
	return nil
}

// checkAndSetScript implements compare-and-swap server side. An empty
// oldValue only sets the key when it is absent.
const checkAndSetScript = `
local current = redis.call('GET', KEYS[1])

if ARGV[1] == '' then
	if current == false then
		if ARGV[3] == '0' then
			redis.call('SET', KEYS[1], ARGV[2])
		else
			redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
		end
		return 1
	end
	return 0
end

if current == ARGV[1] then
	if ARGV[3] == '0' then
		redis.call('SET', KEYS[1], ARGV[2])
	else
		redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
	end
	return 1
end

return 0
`

// CheckAndSet atomically sets key to newValue only if current value matches oldValue.
func (r *Backend) CheckAndSet(ctx context.Context, key, oldValue, newValue string, expiration time.Duration) (bool, error) {
	var expMs string
	if expiration == 0 {
		expMs = "0"
	} else {
		expMs = strconv.FormatInt(expiration.Milliseconds(), 10)
	}

	result, err := r.client.Eval(ctx, checkAndSetScript, []string{key}, oldValue, newValue, expMs).Result()
	if err != nil {
		return false, NewEvalFailedError(err)
	}

	return result.(int64) == 1, nil
}
