package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/RangiraDave/Test-copilot/internal/apperror"
	"github.com/RangiraDave/Test-copilot/pkg/llm"
)

// advisorPrompt frames the assistant before the user's question is appended.
const advisorPrompt = "I am looking for a university in Africa that suits my desires. Can you help me?"

// rateLimitedMessage is shown verbatim to callers when the upstream throttles.
const rateLimitedMessage = "Sorry, the search feature is currently unavailable due to high demand. Please try again later."

// Completer is the LLM surface AdvisorService depends on.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// AdvisorService proxies free-text questions to the LLM advisor.
type AdvisorService struct {
	LLM    Completer
	Logger *logrus.Logger
}

// Ask forwards the question and returns the model's answer.
func (s *AdvisorService) Ask(ctx context.Context, question string) (string, error) {
	if question == "" {
		return "", apperror.NewValidation("question is required", nil)
	}
	answer, err := s.LLM.Complete(ctx, advisorPrompt, question)
	if err != nil {
		if errors.Is(err, llm.ErrRateLimited) {
			return "", apperror.NewExternal(rateLimitedMessage, err)
		}
		if s.Logger != nil {
			s.Logger.WithError(err).Error("advisor completion failed")
		}
		return "", apperror.NewExternal("search is temporarily unavailable", err)
	}
	return answer, nil
}
