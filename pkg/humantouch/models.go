package humantouch

import "time"

// TaskStatus is the lifecycle state of an asynchronous task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// IsTerminal reports whether no further transition is expected. Unknown
// values are not terminal.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusFailed
}

// Detector names accepted by Validate.
const (
	DetectorZeroGPT   = "zerogpt"
	DetectorGPTZero   = "gptzero"
	DetectorCopyleaks = "copyleaks"
)

// DetectionScores holds the per-detector AI likelihood in [0,1].
type DetectionScores struct {
	ZeroGPT   float64 `json:"zerogpt" yaml:"zerogpt"`
	GPTZero   float64 `json:"gptzero" yaml:"gptzero"`
	Copyleaks float64 `json:"copyleaks" yaml:"copyleaks"`
}

// ProcessResponse is the outcome of processing one text.
type ProcessResponse struct {
	ProcessedText   string          `json:"processed_text" yaml:"processed_text"`
	OriginalLength  int             `json:"original_length" yaml:"original_length"`
	ProcessedLength int             `json:"processed_length" yaml:"processed_length"`
	DetectionScores DetectionScores `json:"detection_scores" yaml:"detection_scores"`
	ProcessingTime  float64         `json:"processing_time" yaml:"processing_time"`
	RoundsUsed      int             `json:"rounds_used" yaml:"rounds_used"`
	ModelUsed       string          `json:"model_used,omitempty" yaml:"model_used,omitempty"`
	Provider        string          `json:"provider,omitempty" yaml:"provider,omitempty"`
}

// BatchResponse is the outcome of Batch. Per-item ProcessingTime and
// RoundsUsed are always zero; lengths are computed client-side.
type BatchResponse struct {
	Results        []ProcessResponse `json:"results" yaml:"results"`
	TotalProcessed int               `json:"total_processed" yaml:"total_processed"`
	TotalTime      float64           `json:"total_time" yaml:"total_time"`
}

// AsyncTaskResponse describes a freshly submitted task.
type AsyncTaskResponse struct {
	TaskID        string     `json:"task_id" yaml:"task_id"`
	Status        TaskStatus `json:"status" yaml:"status"`
	EstimatedTime int        `json:"estimated_time" yaml:"estimated_time"`
	WebhookURL    string     `json:"webhook_url,omitempty" yaml:"webhook_url,omitempty"`
}

// TaskStatusResponse is one observation of a task. Result is set only when
// Status is completed; Error only when failed.
type TaskStatusResponse struct {
	TaskID      string           `json:"task_id" yaml:"task_id"`
	Status      TaskStatus       `json:"status" yaml:"status"`
	Result      *ProcessResponse `json:"result,omitempty" yaml:"result,omitempty"`
	Error       string           `json:"error,omitempty" yaml:"error,omitempty"`
	CreatedAt   *time.Time       `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt   *time.Time       `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	StartedAt   *time.Time       `json:"started_at,omitempty" yaml:"started_at,omitempty"`
	CompletedAt *time.Time       `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	// Progress is the service's completion estimate as a percentage, 0-100.
	Progress *float64 `json:"progress,omitempty" yaml:"progress,omitempty"`
}

// ValidateResponse carries detector scores for an unmodified text. Summary
// omits entries the service could not compute.
type ValidateResponse struct {
	Text            string             `json:"text" yaml:"text"`
	DetectionScores map[string]float64 `json:"detection_scores" yaml:"detection_scores"`
	Summary         map[string]float64 `json:"summary" yaml:"summary"`
}

// ServiceConfig describes server-side limits and capabilities.
type ServiceConfig struct {
	MaxTextLength      int      `json:"max_text_length" yaml:"max_text_length"`
	SupportedStyles    []string `json:"supported_styles" yaml:"supported_styles"`
	DefaultRounds      int      `json:"default_rounds" yaml:"default_rounds"`
	MaxConcurrentTasks int      `json:"max_concurrent_tasks" yaml:"max_concurrent_tasks"`
	WebhookSupport     bool     `json:"webhook_support" yaml:"webhook_support"`
	PollingSupport     bool     `json:"polling_support" yaml:"polling_support"`
}
