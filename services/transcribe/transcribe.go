// Package transcribe talks to the external speech-recognition service. The
// service is an opaque collaborator: audio goes in, a timed-text transcript
// comes back. Endpoint fallback/retry beyond simple HTTP retries is a
// caller concern.
package transcribe

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ansel1/merry/v2"
	"github.com/go-resty/resty/v2"
	"github.com/subtide/subtitle-flows/environment"
)

var (
	ErrNoAudio       = merry.Sentinel("no audio data")
	ErrJobFailed     = merry.Sentinel("transcription job failed")
	ErrRequestFailed = merry.Sentinel("transcription request failed")
)

type Job struct {
	ID       string `json:"id"`
	Language string `json:"language"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	Result   string `json:"result"`
}

type Client struct {
	resty        *resty.Client
	baseURL      string
	PollInterval time.Duration
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = environment.GetTranscribeBaseURL()
	}

	restyClient := resty.New()
	restyClient.RetryCount = 3
	restyClient.RetryWaitTime = time.Second * 10
	restyClient.RetryMaxWaitTime = time.Second * 30

	return &Client{
		resty:        restyClient,
		baseURL:      baseURL,
		PollInterval: time.Second * 10,
	}
}

var supportedLanguages = map[string]bool{
	"en": true,
	"zh": true,
	"de": true,
	"es": true,
	"ru": true,
	"ko": true,
	"fr": true,
	"ja": true,
	"pt": true,
	"nl": true,
	"it": true,
	"sv": true,
	"da": true,
	"no": true,
	"fi": true,
}

func normalizeLanguage(language string) string {
	language = strings.ToLower(language)

	if language == "auto" || language == "" {
		return "auto"
	}

	if supportedLanguages[language] {
		return language
	}

	// Let the service guess
	return "auto"
}

// Transcribe submits the audio, polls until the job settles and returns the
// timed-text transcript.
func (c *Client) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	if len(audio) == 0 {
		return "", merry.Wrap(ErrNoAudio)
	}

	resp, err := c.resty.R().
		SetContext(ctx).
		SetFileReader("audio", "audio.m4a", bytes.NewReader(audio)).
		SetFormData(map[string]string{
			"language": normalizeLanguage(language),
			"format":   "srt",
		}).
		SetResult(&Job{}).
		Post(fmt.Sprintf("%s/transcription/job", c.baseURL))
	if err != nil {
		return "", merry.Wrap(err)
	}
	if resp.IsError() {
		return "", merry.Wrap(ErrRequestFailed, merry.AppendMessagef("submit: status %s", resp.Status()))
	}

	job := resp.Result().(*Job)
	if job.ID == "" {
		// 2xx but not the expected payload (proxy error page and the like)
		return "", merry.Wrap(ErrRequestFailed, merry.AppendMessagef("submit: no job id in response"))
	}

	for {
		select {
		case <-ctx.Done():
			return "", merry.Wrap(ctx.Err())
		case <-time.After(c.PollInterval):
		}

		resp, err := c.resty.R().
			SetContext(ctx).
			SetResult(&Job{}).
			Get(fmt.Sprintf("%s/transcription/job/%s", c.baseURL, job.ID))
		if err != nil {
			return "", merry.Wrap(err)
		}
		if resp.IsError() {
			return "", merry.Wrap(ErrRequestFailed, merry.AppendMessagef("poll job %s: status %s", job.ID, resp.Status()))
		}

		polled := resp.Result().(*Job)
		if polled.ID == "" {
			return "", merry.Wrap(ErrRequestFailed, merry.AppendMessagef("poll job %s: unparseable response", job.ID))
		}

		switch polled.Status {
		case "COMPLETED":
			return polled.Result, nil
		case "FAILED":
			return "", merry.Wrap(ErrJobFailed, merry.AppendMessagef("job %s", polled.ID))
		}
	}
}
