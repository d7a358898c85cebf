package app

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

const workerStopTimeout = 5 * time.Second

// startWorker запускает run в отдельной горутине с собственной отменой.
// done закрывается, когда run вернулся.
func startWorker(parent context.Context, run func(context.Context)) (context.CancelFunc, <-chan struct{}) {
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	go func() {
		defer close(done)
		run(ctx)
	}()
	return cancel, done
}

// shutdownWorker отменяет воркер и ждёт его завершения не дольше workerStopTimeout.
func shutdownWorker(name string, cancel context.CancelFunc, done <-chan struct{}, logger *log.Entry) {
	if cancel != nil {
		cancel()
	}
	if done == nil {
		return
	}

	select {
	case <-done:
		logger.WithField("worker", name).Debug("worker stopped")
	case <-time.After(workerStopTimeout):
		logger.WithField("worker", name).Warn("worker did not stop in time")
	}
}
