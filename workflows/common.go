package workflows

import (
	"time"

	"github.com/subtide/subtitle-flows/environment"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

var DefaultActivityOptions = workflow.ActivityOptions{
	RetryPolicy: &temporal.RetryPolicy{
		InitialInterval: time.Minute * 1,
		MaximumAttempts: 10,
		MaximumInterval: time.Hour * 1,
	},
	StartToCloseTimeout:    time.Hour * 4,
	ScheduleToCloseTimeout: time.Hour * 48,
	HeartbeatTimeout:       time.Minute * 1,
	TaskQueue:              environment.GetWorkerQueue(),
}

func TranscodeActivityOptions() workflow.ActivityOptions {
	options := DefaultActivityOptions
	options.TaskQueue = environment.GetTranscodeQueue()
	return options
}
