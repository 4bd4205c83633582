package workflows

var TriggerableWorkflows = []any{
	GenerateSubtitlesFile,
	SubtitleBurnInFile,
}

var WorkerWorkflows = []any{
	GenerateSubtitlesFile,
	SubtitleBurnInFile,
}
