package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/subtide/subtitle-flows/activities"
	"github.com/subtide/subtitle-flows/environment"
	"github.com/subtide/subtitle-flows/workflows"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

var utilActivities = []any{
	activities.MoveFile,
	activities.CreateFolder,
	activities.DeletePath,
	activities.StandardizeFileName,
	activities.TranscribeActivity,
}

var transcodeActivities = []any{
	activities.ExtractAudioActivity,
	activities.SubtitleBurnInActivity,
}

func main() {
	c, err := client.Dial(client.Options{
		HostPort:  os.Getenv("TEMPORAL_HOST_PORT"),
		Namespace: os.Getenv("TEMPORAL_NAMESPACE"),
	})

	if err != nil {
		panic(err)
	}

	defer c.Close()

	identity := os.Getenv("IDENTITY")
	if identity == "" {
		identity = "worker"
	}

	activityCountString := os.Getenv("ACTIVITY_COUNT")
	if activityCountString == "" {
		activityCountString = "5"
	}

	activityCount, err := strconv.Atoi(activityCountString)
	if err != nil {
		panic(err)
	}

	workerOptions := worker.Options{
		DeadlockDetectionTimeout:           time.Hour * 3,
		DisableRegistrationAliasing:        true, // Recommended according to readme, default false for backwards compatibility
		EnableSessionWorker:                true,
		Identity:                           identity,
		LocalActivityWorkerOnly:            false,
		MaxConcurrentActivityExecutionSize: activityCount,
	}

	registerWorker(c, environment.GetQueue(), workerOptions)
}

func registerWorker(c client.Client, queue string, options worker.Options) {
	w := worker.New(c, queue, options)

	switch queue {
	case environment.QueueDebug:
		for _, a := range utilActivities {
			w.RegisterActivity(a)
		}

		for _, a := range transcodeActivities {
			w.RegisterActivity(a)
		}

		for _, wf := range workflows.WorkerWorkflows {
			w.RegisterWorkflow(wf)
		}
	case environment.QueueWorker:
		for _, a := range utilActivities {
			w.RegisterActivity(a)
		}

		for _, wf := range workflows.WorkerWorkflows {
			w.RegisterWorkflow(wf)
		}
	case environment.QueueTranscode:
		for _, a := range transcodeActivities {
			w.RegisterActivity(a)
		}
	}

	err := w.Run(worker.InterruptCh())

	log.Printf("Worker finished: %v", err)
}
