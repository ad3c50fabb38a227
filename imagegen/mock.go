package imagegen

import (
	"context"
	"encoding/base64"
)

// 1x1 PNG, enough for offline runs and tests.
const mockPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

// MockClient is a placeholder implementation for local debugging that never
// calls the image API.
type MockClient struct{}

func (MockClient) Generate(_ context.Context, prompt string) (*Image, error) {
	data, err := base64.StdEncoding.DecodeString(mockPNG)
	if err != nil {
		return nil, err
	}
	return &Image{Data: data, MIME: "image/png", Prompt: prompt}, nil
}
