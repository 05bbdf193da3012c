package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storycast/internal/domain"
	"storycast/internal/retry"
)

func TestObserveCall(t *testing.T) {
	m := New(nil)

	m.ObserveCall("openai", "outline", 120*time.Millisecond, nil)
	m.ObserveCall("openai", "outline", 80*time.Millisecond, errors.New("boom"))
	m.ObserveCall("openai", "speech", time.Second, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.providerCalls.WithLabelValues("openai", "outline", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.providerCalls.WithLabelValues("openai", "outline", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.providerDuration))
}

func TestRetryObserver(t *testing.T) {
	m := New(nil)
	observe := m.RetryObserver()

	observe(retry.Event{Type: retry.EventRetry, Operation: "speech"})
	observe(retry.Event{Type: retry.EventRetry, Operation: "speech"})
	observe(retry.Event{Type: retry.EventExhausted, Operation: "speech"})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.retries.WithLabelValues("speech", string(retry.EventRetry))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.retries.WithLabelValues("speech", string(retry.EventExhausted))))
}

func TestEpisodeAndAudioCounters(t *testing.T) {
	m := New(nil)

	m.EpisodeFinished(domain.FormatDebate, domain.StatusReady)
	m.EpisodeFinished(domain.FormatDebate, domain.StatusFailed)
	m.AudioFallback(errors.New("ffmpeg missing"))
	m.ObserveStage(domain.StageAudio, 3*time.Second, nil)
	m.JourneyChoice("invalid")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.episodes.WithLabelValues("debate", "READY")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.audioFallbacks))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.journeyChoices.WithLabelValues("invalid")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.stageDuration))
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New(nil)
	m.AudioFallback(nil)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "storycast_audio_assembly_fallbacks_total 1"))
}
