package analytics

import (
	"context"
	"sync"
)

// JobRegistry tracks cancel functions for running import jobs so they can
// be stopped by run ID.
type JobRegistry struct {
	mu      sync.RWMutex
	cancels map[string]context.CancelFunc
}

func NewJobRegistry() *JobRegistry {
	return &JobRegistry{cancels: make(map[string]context.CancelFunc)}
}

// Register stores a cancel function for a job.
func (jr *JobRegistry) Register(runID string, cancel context.CancelFunc) {
	jr.mu.Lock()
	defer jr.mu.Unlock()
	jr.cancels[runID] = cancel
}

// Cancel invokes the cancel function for a job if it exists. Returns true
// if the job was found and cancelled.
func (jr *JobRegistry) Cancel(runID string) bool {
	jr.mu.Lock()
	defer jr.mu.Unlock()
	if cancel, ok := jr.cancels[runID]; ok {
		cancel()
		delete(jr.cancels, runID)
		return true
	}
	return false
}

// Unregister removes a job's cancel function once it completes.
func (jr *JobRegistry) Unregister(runID string) {
	jr.mu.Lock()
	defer jr.mu.Unlock()
	delete(jr.cancels, runID)
}

// IsRunning checks if a job is currently registered.
func (jr *JobRegistry) IsRunning(runID string) bool {
	jr.mu.RLock()
	defer jr.mu.RUnlock()
	_, ok := jr.cancels[runID]
	return ok
}
