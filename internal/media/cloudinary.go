// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

// Package media uploads daily-update photos to the image host. Uploads are
// unsigned: the preset on the host side constrains what lands in the folder.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/Ireshudayanga/coconut-farm-application/internal/config"
	"github.com/Ireshudayanga/coconut-farm-application/internal/logging"
	"github.com/Ireshudayanga/coconut-farm-application/internal/metrics"
)

// ErrNotConfigured is returned when no cloud name is set. Updates still
// save without images in that case.
var ErrNotConfigured = errors.New("image host not configured")

// UploadResult is the subset of the host's response the app keeps.
type UploadResult struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// Uploader posts images to the host behind a circuit breaker, so a slow or
// down image service cannot stall daily-update submissions for long.
type Uploader struct {
	cloudName    string
	uploadPreset string
	folder       string
	httpClient   *http.Client
	baseURL      string
	cb           *gobreaker.CircuitBreaker[*UploadResult]
}

// NewUploader builds an uploader from config.
// Breaker: opens after 60% failures over at least 5 requests, retries after
// 30 seconds, allows 2 trial requests half-open.
func NewUploader(cfg *config.MediaConfig) *Uploader {
	cb := gobreaker.NewCircuitBreaker[*UploadResult](gobreaker.Settings{
		Name:        "image-upload",
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Image upload breaker state change")
			metrics.UploadBreakerState.Set(stateToFloat(to))
		},
	})

	return &Uploader{
		cloudName:    cfg.CloudName,
		uploadPreset: cfg.UploadPreset,
		folder:       cfg.Folder,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		baseURL:      "https://api.cloudinary.com/v1_1",
		cb:           cb,
	}
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}

// Upload sends one image and returns its hosted URL.
func (u *Uploader) Upload(ctx context.Context, filename string, r io.Reader) (*UploadResult, error) {
	if u.cloudName == "" {
		return nil, ErrNotConfigured
	}

	result, err := u.cb.Execute(func() (*UploadResult, error) {
		return u.post(ctx, filename, r)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.UploadRequests.WithLabelValues("rejected").Inc()
			logging.Warn().Err(err).Msg("Image upload rejected by open breaker")
		} else {
			metrics.UploadRequests.WithLabelValues("failure").Inc()
		}
		return nil, err
	}
	metrics.UploadRequests.WithLabelValues("success").Inc()
	return result, nil
}

func (u *Uploader) post(ctx context.Context, filename string, r io.Reader) (*UploadResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if err := mw.WriteField("upload_preset", u.uploadPreset); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if u.folder != "" {
		if err := mw.WriteField("folder", u.folder); err != nil {
			return nil, fmt.Errorf("build upload form: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}

	url := fmt.Sprintf("%s/%s/image/upload", u.baseURL, u.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("image host returned %d: %s", resp.StatusCode, snippet)
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	if result.SecureURL == "" {
		return nil, errors.New("image host response missing secure_url")
	}
	return &result, nil
}
