package subprocess

import (
	"bufio"
	"io"
	"os"
	"os/exec"

	"github.com/lecturevod/slidedeck/log"
)

func streamOutput(jobID string, src io.Reader, out io.Writer) {
	s := bufio.NewReader(src)
	for {
		var line []byte
		line, err := s.ReadSlice('\n')
		if err == io.EOF && len(line) == 0 {
			break
		}
		if err == io.EOF {
			log.Log(jobID, "streamOutput() improper termination", "line", string(line))
			return
		}
		if err != nil {
			log.LogError(jobID, "streamOutput ReadSlice error", err)
			return
		}
		if _, err := out.Write(line); err != nil {
			log.LogError(jobID, "streamOutput out.Write error", err)
			return
		}
	}
}

// LogStdout streams cmd's stdout to our own stdout, tagging any logged
// errors with jobID.
func LogStdout(jobID string, cmd *exec.Cmd) error {
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	go streamOutput(jobID, stdoutPipe, os.Stdout)
	return nil
}

// LogStderr streams cmd's stderr to our own stderr. ffmpeg writes its
// progress lines (`frame=`, `time=`) to stderr, so callers that want to
// parse progress should use StderrPipe directly instead of this helper.
func LogStderr(jobID string, cmd *exec.Cmd) error {
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return err
	}
	go streamOutput(jobID, stderrPipe, os.Stderr)
	return nil
}

// LogOutputs starts goroutines to mirror cmd's stdout & stderr to ours.
func LogOutputs(jobID string, cmd *exec.Cmd) error {
	if err := LogStderr(jobID, cmd); err != nil {
		return err
	}
	return LogStdout(jobID, cmd)
}
