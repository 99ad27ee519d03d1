// Package transcribe is the seam for the transcription module. The system
// this is modeled on treats transcription as a distinct, independently
// toggled stage occupying the [85,100] progress partition, but its actual
// speech-to-text engine is out of scope here; Stub satisfies the interface
// so the pipeline can wire the stage without depending on a concrete model.
package transcribe

import "github.com/lecturevod/slidedeck/progress"

// Transcriber turns a job's source video into a transcript file.
// Implementations report progress through reporter exactly like every other
// stage.
type Transcriber interface {
	Transcribe(jobID, videoPath, outPath string, reporter *progress.Reporter) error
}

// Stub is a no-op Transcriber: it writes nothing and reports immediate
// completion. It exists so EnableTranscription can be wired end-to-end
// without a real speech-to-text dependency.
type Stub struct{}

func (Stub) Transcribe(jobID, videoPath, outPath string, reporter *progress.Reporter) error {
	if reporter != nil {
		reporter.Set("transcription skipped (not configured)", 1.0)
	}
	return nil
}
