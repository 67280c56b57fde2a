package ocr

import (
	"context"
	"fmt"
	"image"
	"os"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

var _ Engine = (*GoogleVision)(nil)

// GoogleVision recognizes text through the Google Cloud Vision API
// using document text detection.
type GoogleVision struct {
	client *vision.ImageAnnotatorClient
}

// NewGoogleVision creates a Vision API engine. Credentials come from
// the environment: inline JSON in GOOGLE_CREDENTIALS first, then a
// file path in GOOGLE_APPLICATION_CREDENTIALS, then application
// default credentials. When none of the three yields a client the
// error wraps ErrEngineUnavailable.
func NewGoogleVision(ctx context.Context) (*GoogleVision, error) {
	var client *vision.ImageAnnotatorClient
	var err error

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, fmt.Errorf("create client with GOOGLE_CREDENTIALS: %w", err)
		}
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credFile))
		if err != nil {
			return nil, fmt.Errorf("create client with GOOGLE_APPLICATION_CREDENTIALS: %w", err)
		}
	} else {
		client, err = vision.NewImageAnnotatorClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("no Google credentials in environment: %w", ErrEngineUnavailable)
		}
	}

	return &GoogleVision{client: client}, nil
}

// NewGoogleVisionWithClient creates the engine around an existing
// client. The caller stays responsible for closing the client.
func NewGoogleVisionWithClient(client *vision.ImageAnnotatorClient) *GoogleVision {
	return &GoogleVision{client: client}
}

// Name implements Engine.
func (g *GoogleVision) Name() string {
	return "google-vision"
}

// Recognize implements Engine. The image is sent inline as PNG with a
// single DOCUMENT_TEXT_DETECTION feature.
func (g *GoogleVision) Recognize(ctx context.Context, img image.Image) (Result, error) {
	data, err := encodePNG(img)
	if err != nil {
		return Result{}, err
	}

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: data},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := g.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("vision API call: %w", err)
	}
	if len(resp.Responses) == 0 {
		return Result{}, fmt.Errorf("vision API returned no responses")
	}

	annotated := resp.Responses[0]
	if annotated.Error != nil {
		return Result{}, fmt.Errorf("vision API: %s", annotated.Error.Message)
	}

	var result Result
	if annotated.FullTextAnnotation != nil {
		result.Text = strings.TrimSpace(annotated.FullTextAnnotation.Text)

		var sum float32
		var count int
		for _, page := range annotated.FullTextAnnotation.Pages {
			if page.Confidence > 0 {
				sum += page.Confidence
				count++
			}
		}
		if count > 0 {
			result.Confidence = float64(sum / float32(count))
		}
	}
	return result, nil
}

// Close closes the underlying Vision client.
func (g *GoogleVision) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
