package jobs

import (
	"github.com/vytor/nihaocards/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool     *worker.Pool
	unlocker worker.StickerUnlocker
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, unlocker worker.StickerUnlocker) JobQueue {
	return &WorkerQueue{pool: pool, unlocker: unlocker}
}

func (q *WorkerQueue) EnqueueStickerUnlock(userID string) error {
	return q.pool.Submit(&worker.UnlockStickersJob{
		Unlocker: q.unlocker,
		UserID:   userID,
	})
}
