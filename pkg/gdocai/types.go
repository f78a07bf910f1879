package gdocai

import (
	"fmt"
	"time"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/gardar/hybridoc/pkg/layout"
	"github.com/gardar/hybridoc/pkg/raster"
)

// Config holds the settings needed to reach a Document AI processor
type Config struct {
	ProjectID       string        // Google Cloud project ID
	Location        string        // Processor location, e.g. "us" or "eu"
	ProcessorID     string        // Document AI processor ID
	CredentialsFile string        // Service account key; falls back to GOOGLE_APPLICATION_CREDENTIALS
	MaxAttempts     int           // Attempts per request, including the first one
	RetryDelay      time.Duration // Base delay between attempts
}

// DefaultConfig returns a Config with the default location and retry settings.
// ProjectID and ProcessorID must still be filled in.
func DefaultConfig() *Config {
	return &Config{
		Location:    "us",
		MaxAttempts: 3,
		RetryDelay:  2 * time.Second,
	}
}

// Validate checks that the processor can be addressed
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("document ai config is nil")
	}
	if c.ProjectID == "" {
		return fmt.Errorf("document ai project_id is required")
	}
	if c.Location == "" {
		return fmt.Errorf("document ai location is required")
	}
	if c.ProcessorID == "" {
		return fmt.Errorf("document ai processor_id is required")
	}
	return nil
}

// processorName builds the resource name of the processor
func (c *Config) processorName() string {
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s", c.ProjectID, c.Location, c.ProcessorID)
}

// endpoint returns the regional API endpoint for the configured location
func (c *Config) endpoint() string {
	return fmt.Sprintf("%s-documentai.googleapis.com:443", c.Location)
}

// Analysis is the result of running a PDF through Document AI
type Analysis struct {
	Raw    *documentaipb.Document // Raw Document AI response
	Layout *layout.Result         // Canonical layout model
	Images map[int]raster.Image   // Page images keyed by page number
}
