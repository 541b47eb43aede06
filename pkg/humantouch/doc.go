// Package humantouch is a client for the HumanTouch text humanization API.
//
// # Overview
//
// The service rewrites AI-generated text so that it reads as human written and
// reports how AI detectors score the result. The client wraps its REST API:
//
//	POST   /api/v1/process       Process          synchronous rewrite
//	POST   /api/v1/batch         Batch            up to 10 texts per call
//	POST   /api/v1/async         CreateAsyncTask  background rewrite
//	GET    /api/v1/status/{id}   GetTaskStatus    task state and result
//	DELETE /api/v1/status/{id}   CancelTask       cancellation request
//	GET    /api/v1/tasks         ListTasks        task listing and stats
//	DELETE /api/v1/tasks         CleanupTasks     remove finished tasks
//	GET    /api/v1/async         ServiceConfig    service limits
//	POST   /api/v1/validate      Validate         detector scores only
//
// WaitForTask polls GetTaskStatus until a task completes, fails or times out.
//
// # Usage
//
//	cfg := humantouch.DefaultConfig()
//	cfg.APIKey = os.Getenv("HUMANTOUCH_API_KEY")
//
//	client, err := humantouch.New(cfg)
//	if err != nil {
//		return err
//	}
//
//	resp, err := client.Process(ctx, text, &humantouch.ProcessOptions{
//		Style: humantouch.StyleAcademic,
//	})
//
// Unset option fields take the service defaults: 3 rounds, casual style and a
// target score of 0.1. A nil options pointer leaves the choice to the service.
// An explicit zero target score is sent with humantouch.Float64(0).
//
// # Errors
//
// Every failure from the service, the transport or task polling is an *Error.
// Its Kind identifies the failure; use errors.Is with the sentinels to branch:
//
//	switch {
//	case errors.Is(err, humantouch.ErrRateLimit):
//		// retries were exhausted
//	case errors.Is(err, humantouch.ErrTaskNotFound):
//		// unknown task ID
//	}
//
// # Retries
//
// Rate limited requests are retried with exponential backoff, honouring
// Retry-After. Network failures are retried only for GET, HEAD, DELETE and
// OPTIONS, since a POST may already have been accepted by the service.
package humantouch
