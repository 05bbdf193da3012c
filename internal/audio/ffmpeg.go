package audio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"
)

// FFmpegConfig configures the external codec binary.
type FFmpegConfig struct {
	// Command is the ffmpeg invocation prefix, e.g. "ffmpeg -hide_banner -loglevel error".
	Command    string
	SampleRate int
	Channels   int
	Bitrate    string
	TempDir    string
}

// FFmpegJoiner joins MP3 buffers with ffmpeg's concat demuxer and stream copy,
// so segments are never re-encoded.
type FFmpegJoiner struct {
	cmd        []string
	sampleRate int
	channels   int
	bitrate    string
	tempDir    string
}

func NewFFmpegJoiner(cfg FFmpegConfig) (*FFmpegJoiner, error) {
	parser := shellwords.NewParser()
	parser.ParseEnv = true
	args, err := parser.Parse(cfg.Command)
	if err != nil {
		return nil, fmt.Errorf("parse ffmpeg command: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("ffmpeg command empty")
	}

	j := &FFmpegJoiner{
		cmd:        args,
		sampleRate: cfg.SampleRate,
		channels:   cfg.Channels,
		bitrate:    cfg.Bitrate,
		tempDir:    cfg.TempDir,
	}
	if j.sampleRate == 0 {
		j.sampleRate = 24000
	}
	if j.channels == 0 {
		j.channels = 1
	}
	if j.bitrate == "" {
		j.bitrate = "64k"
	}
	return j, nil
}

// Silence encodes seconds of silence as MP3 matching the provider output.
func (j *FFmpegJoiner) Silence(ctx context.Context, seconds float64) ([]byte, error) {
	layout := "mono"
	if j.channels == 2 {
		layout = "stereo"
	}
	return j.run(ctx,
		"-f", "lavfi",
		"-i", fmt.Sprintf("anullsrc=r=%d:cl=%s", j.sampleRate, layout),
		"-t", strconv.FormatFloat(seconds, 'f', 3, 64),
		"-c:a", "libmp3lame",
		"-b:a", j.bitrate,
		"-f", "mp3",
		"pipe:1",
	)
}

// Join writes every input to a temp dir and concatenates them with stream copy.
func (j *FFmpegJoiner) Join(ctx context.Context, inputs [][]byte) ([]byte, error) {
	dir, err := os.MkdirTemp(j.tempDir, "storycast-join-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	paths := make([]string, len(inputs))
	for i, input := range inputs {
		paths[i] = filepath.Join(dir, fmt.Sprintf("part_%04d.mp3", i))
		if err := os.WriteFile(paths[i], input, 0o600); err != nil {
			return nil, fmt.Errorf("write part %d: %w", i, err)
		}
	}

	listPath := filepath.Join(dir, "parts.txt")
	if err := os.WriteFile(listPath, []byte(concatList(paths)), 0o600); err != nil {
		return nil, fmt.Errorf("write concat list: %w", err)
	}

	return j.run(ctx,
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		"-f", "mp3",
		"pipe:1",
	)
}

// concatList renders paths in the concat demuxer's list format. Inside single
// quotes a literal quote is written as '\''.
func concatList(paths []string) string {
	var list strings.Builder
	for _, path := range paths {
		fmt.Fprintf(&list, "file '%s'\n", strings.ReplaceAll(path, "'", `'\''`))
	}
	return list.String()
}

func (j *FFmpegJoiner) run(ctx context.Context, args ...string) ([]byte, error) {
	full := append(append([]string{}, j.cmd[1:]...), args...)
	cmd := exec.CommandContext(ctx, j.cmd[0], full...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("ffmpeg failed: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("ffmpeg failed: %w", err)
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg produced no output")
	}
	return stdout.Bytes(), nil
}
