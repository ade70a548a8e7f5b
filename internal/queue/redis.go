package queue

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisQueue dispatches job ids through a redis list so a standalone worker
// process can consume them. Requires the durable job store, since both
// processes must see the same records.
type RedisQueue struct {
	rdb       *redis.Client
	queueName string
}

func NewRedisQueue(rdb *redis.Client, queueName string) *RedisQueue {
	return &RedisQueue{rdb: rdb, queueName: queueName}
}

func (q *RedisQueue) Enqueue(ctx context.Context, jobID string) error {
	return q.rdb.LPush(ctx, q.queueName, jobID).Err()
}

// Pop blocks until an element exists (BRPOP).
func (q *RedisQueue) Pop(ctx context.Context) (string, error) {
	res, err := q.rdb.BRPop(ctx, 0, q.queueName).Result()
	if err != nil {
		return "", err
	}
	if len(res) < 2 {
		return "", nil
	}
	return res[1], nil
}

var _ Queue = (*RedisQueue)(nil)
