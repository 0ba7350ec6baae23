package hermes

const (
	SubjectAnalyzeRequest = "triage.rpc.analyze"

	StreamName     = "TRIAGE_EVENTS"
	StreamSubjects = "triage.events.>"
	StreamMaxAge   = "720h" // 30 days
)

func SubjectAnalysisCompleted(runID string) string {
	return "triage.events.analysis." + runID + ".completed"
}

func SubjectAnalysisFailed(runID string) string {
	return "triage.events.analysis." + runID + ".failed"
}
