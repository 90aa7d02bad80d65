package llm

import (
	"context"

	apperrors "github.com/yanqian/diveplanner/pkg/errors"
)

// Unavailable is installed when no provider credentials are configured.
// Every call fails with llm_unavailable.
type Unavailable struct {
	Reason string
}

func (u Unavailable) GenerateText(context.Context, TextRequest) (TextResult, error) {
	return TextResult{}, apperrors.Wrap(apperrors.CodeLLMUnavailable, u.message(), nil)
}

func (u Unavailable) GenerateImage(context.Context, ImageRequest) (ImageResult, error) {
	return ImageResult{}, apperrors.Wrap(apperrors.CodeLLMUnavailable, u.message(), nil)
}

func (u Unavailable) message() string {
	if u.Reason != "" {
		return u.Reason
	}
	return "generative AI provider is not configured"
}

var _ Generator = Unavailable{}
