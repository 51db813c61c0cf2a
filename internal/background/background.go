package background

import (
	"context"
	"errors"
	"fmt"

	"github.com/discontent/discontent/internal/utils"
	"github.com/discontent/discontent/pkg/messaging"
	"github.com/discontent/discontent/pkg/scores"
)

var ErrUnknownMessageType = errors.New("unknown message type")

// ScoresFetcher is the remote scoring API as seen by the privileged side.
// *api.Client implements it.
type ScoresFetcher interface {
	FetchScores(ctx context.Context, req scores.ScoresRequest) (scores.ScoresResponse, error)
}

// Handler answers bridge messages on behalf of page contexts.
type Handler struct {
	Scores ScoresFetcher
}

func NewHandler(f ScoresFetcher) *Handler {
	return &Handler{Scores: f}
}

// HandleMessage dispatches on the message type. There is no fallback for
// types it does not know.
func (h *Handler) HandleMessage(ctx context.Context, msg messaging.Message) (messaging.Message, error) {
	switch msg.Type {
	case messaging.TypeScoresRequest:
		req, err := msg.ScoresRequest()
		if err != nil {
			return messaging.Message{}, err
		}
		resp, err := h.fetch(ctx, req)
		if err != nil {
			return messaging.Message{}, err
		}
		return messaging.NewScoresResponseMessage(resp)
	default:
		return messaging.Message{}, fmt.Errorf("%w: %q", ErrUnknownMessageType, msg.Type)
	}
}

func (h *Handler) fetch(ctx context.Context, req scores.ScoresRequest) (scores.ScoresResponse, error) {
	// The API rejects empty requests; nothing to score is an empty answer.
	if req.Len() == 0 {
		return scores.ScoresResponse{}, nil
	}
	utils.Log.Debugf("Fetching scores for %d hostnames", req.Len())
	resp, err := h.Scores.FetchScores(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetch scores: %w", err)
	}
	return resp, nil
}
