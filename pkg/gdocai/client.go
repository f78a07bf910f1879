package gdocai

import (
	"context"
	"fmt"
	"os"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/avast/retry-go/v4"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ProcessDocument sends PDF bytes to Google Document AI for processing
// and returns the raw Document proto response.
// Transient failures are retried up to cfg.MaxAttempts times.
func ProcessDocument(ctx context.Context, pdfBytes []byte, cfg *Config) (*documentaipb.Document, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []option.ClientOption{option.WithEndpoint(cfg.endpoint())}
	if creds := credentialsFile(cfg); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}

	client, err := documentai.NewDocumentProcessorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Document AI client: %w", err)
	}
	defer client.Close()

	req := &documentaipb.ProcessRequest{
		Name: cfg.processorName(),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  pdfBytes,
				MimeType: "application/pdf",
			},
		},
		SkipHumanReview: true,
	}

	var resp *documentaipb.ProcessResponse
	err = withRetry(ctx, cfg, func() error {
		var callErr error
		resp, callErr = client.ProcessDocument(ctx, req)
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to process document: %w", err)
	}

	return resp.GetDocument(), nil
}

// credentialsFile returns the configured key file, or the one named by
// GOOGLE_APPLICATION_CREDENTIALS. Empty means application default credentials.
func credentialsFile(cfg *Config) string {
	if cfg.CredentialsFile != "" {
		return cfg.CredentialsFile
	}
	return os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
}

// withRetry runs fn until it succeeds, returns a permanent error or runs out of attempts
func withRetry(ctx context.Context, cfg *Config, fn func() error) error {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(uint(attempts)),
		retry.Delay(cfg.RetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(isTransient),
		retry.LastErrorOnly(true),
	)
}

// isTransient reports whether a gRPC error is worth another attempt
func isTransient(err error) bool {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted:
		return true
	default:
		return false
	}
}
