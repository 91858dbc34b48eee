package service

import "context"

// JobDispatcher abstracts the Redis-backed queue so services can enqueue
// async work without depending on the worker package.
type JobDispatcher interface {
	EnqueueFacturacion(ctx context.Context, payload interface{}) error
	EnqueueEmail(ctx context.Context, payload interface{}) error
	EnqueuePDF(ctx context.Context, payload interface{}) error
}
