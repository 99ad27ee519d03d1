package funnel

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strconv"
	"time"

	"github.com/lecturevod/slidedeck/config"
)

// Frame is one decoded grayscale frame with its decoder-reported
// presentation timestamp. Per §4.3 the pipeline never derives timestamps
// from frame index / fps, because variable-frame-rate sources would
// desynchronize all downstream logic; FrameSource always carries the real
// decoder-reported pts.
type Frame struct {
	Timestamp     time.Duration
	Width, Height int
	// Luma is a row-major grayscale plane normalized to [0,1].
	Luma []float64
}

// FrameSource yields decoded frames in order. Next returns ok=false once
// the stream is exhausted.
type FrameSource interface {
	Next() (frame Frame, ok bool, err error)
	Close() error
}

var ptsRe = regexp.MustCompile(`pts_time:([0-9.]+)`)

// ffmpegFrameSource decodes a video to single-channel rawvideo on stdout
// while the `showinfo` filter writes one `pts_time:` line per frame to
// stderr. Frames arrive on stdout in the same order showinfo logs them, so
// the two streams are correlated positionally rather than by timestamp
// parsing on the video side — ffmpeg itself is the only component that
// ever touches frame decoding.
type ffmpegFrameSource struct {
	cmd           *exec.Cmd
	stdout        io.ReadCloser
	width, height int
	frameBytes    int
	ptsCh         <-chan time.Duration
	ptsErrCh      <-chan error
}

// NewFFmpegFrameSource starts ffmpeg against path, producing gray8 frames
// of the given width/height.
func NewFFmpegFrameSource(path string, width, height int) (FrameSource, error) {
	cmd := exec.Command(config.PathFFmpeg,
		"-i", path,
		"-vf", "format=gray,showinfo",
		"-f", "rawvideo",
		"-pix_fmt", "gray",
		"pipe:1",
	)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	ptsCh := make(chan time.Duration, 64)
	errCh := make(chan error, 1)
	go func() {
		defer close(ptsCh)
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			m := ptsRe.FindStringSubmatch(scanner.Text())
			if m == nil {
				continue
			}
			seconds, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			ptsCh <- time.Duration(seconds * float64(time.Second))
		}
		if err := scanner.Err(); err != nil {
			errCh <- err
		}
	}()

	return &ffmpegFrameSource{
		cmd:        cmd,
		stdout:     stdout,
		width:      width,
		height:     height,
		frameBytes: width * height,
		ptsCh:      ptsCh,
		ptsErrCh:   errCh,
	}, nil
}

func (s *ffmpegFrameSource) Next() (Frame, bool, error) {
	buf := make([]byte, s.frameBytes)
	_, err := io.ReadFull(s.stdout, buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return Frame{}, false, nil
	}
	if err != nil {
		return Frame{}, false, fmt.Errorf("reading raw frame: %w", err)
	}

	pts, ok := <-s.ptsCh
	if !ok {
		return Frame{}, false, nil
	}

	luma := make([]float64, len(buf))
	for i, b := range buf {
		luma[i] = float64(b) / 255
	}
	return Frame{Timestamp: pts, Width: s.width, Height: s.height, Luma: luma}, true, nil
}

func (s *ffmpegFrameSource) Close() error {
	_ = s.stdout.Close()
	return s.cmd.Wait()
}
