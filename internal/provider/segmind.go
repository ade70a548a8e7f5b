package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"clipgen/internal/pkg/errors"
)

// errPreviewLen bounds provider error bodies recorded on jobs.
const errPreviewLen = 200

// SegmindClient calls the Segmind wan-2.2 image-to-video endpoint. One call
// generates one video; the binary payload is returned in the response body
// with metadata in headers.
type SegmindClient struct {
	apiURL string
	apiKey string
	client *http.Client
}

func NewSegmindClient(apiURL, apiKey string, timeout time.Duration) *SegmindClient {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &SegmindClient{
		apiURL: apiURL,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

type segmindPayload struct {
	Image           string `json:"image"`
	Prompt          string `json:"prompt"`
	NumFrames       int    `json:"num_frames"`
	Resolution      string `json:"resolution"`
	AspectRatio     string `json:"aspect_ratio"`
	FramesPerSecond int    `json:"frames_per_second"`

	// Fixed model tuning, applied to every request.
	SampleShift        int  `json:"sample_shift"`
	HighNoiseLoraScale int  `json:"high_noise_lora_scale"`
	LowNoiseLoraScale  int  `json:"low_noise_lora_scale"`
	GoFast             bool `json:"go_fast"`
}

func (c *SegmindClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	payload := segmindPayload{
		Image:           req.ImageURL,
		Prompt:          req.Prompt,
		NumFrames:       req.Config.NumFrames,
		Resolution:      req.Config.Resolution,
		AspectRatio:     req.Config.AspectRatio,
		FramesPerSecond: req.Config.FramesPerSecond,

		SampleShift:        12,
		HighNoiseLoraScale: 1,
		LowNoiseLoraScale:  1,
		GoFast:             true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeProvider, "segmind.generate", "request failed")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		preview, _ := io.ReadAll(io.LimitReader(res.Body, errPreviewLen))
		return nil, errors.Providerf("HTTP %d: %s", res.StatusCode, string(preview))
	}

	if ct := res.Header.Get("Content-Type"); ct != "video/mp4" {
		preview, _ := io.ReadAll(io.LimitReader(res.Body, errPreviewLen))
		return nil, errors.Providerf("unexpected content type: %s: %s", ct, string(preview))
	}

	video, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeProvider, "segmind.generate", "reading video body")
	}

	return &GenerateResult{
		Video:            video,
		Metadata:         parseMetadata(res.Header.Get("x-output-metadata")),
		GenerationTime:   res.Header.Get("x-generation-time"),
		CreditsRemaining: res.Header.Get("x-remaining-credits"),
	}, nil
}

// parseMetadata decodes the x-output-metadata header, keeping the raw string
// when it is not valid JSON.
func parseMetadata(raw string) map[string]any {
	if raw == "" {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return map[string]any{"raw_metadata": raw}
	}
	return m
}

var _ Generator = (*SegmindClient)(nil)
