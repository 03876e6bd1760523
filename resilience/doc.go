// Package resilience guards calls to the outbound backends.
//
//   - CircuitBreaker fails fast after repeated backend failures. It never
//     retries: a rejected or failed call surfaces to the caller unchanged.
//   - Bulkhead caps how many transcriptions run at once.
//
//	bh := resilience.NewBulkhead(resilience.BulkheadConfig{Name: "transcribe", MaxConcurrent: 4})
//	res, err := resilience.ExecuteWithResult(bh, ctx, func() (*Result, error) { ... })
package resilience
