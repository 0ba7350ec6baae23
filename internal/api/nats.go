package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Triage/internal/hermes"
	"github.com/MikeSquared-Agency/Triage/internal/store"
)

const natsHandlerTimeout = 10 * time.Second

// RegisterNATSHandlers subscribes the analysis request/reply subject. The
// request payload is the same JSON body the HTTP endpoint accepts.
func RegisterNATSHandlers(h hermes.Client, svc *Service, subject string, logger *slog.Logger) error {
	if subject == "" {
		subject = hermes.SubjectAnalyzeRequest
	}
	return h.Subscribe(subject, func(subj string, data []byte) []byte {
		return handleAnalyzeMessage(svc, logger, subj, data)
	})
}

func handleAnalyzeMessage(svc *Service, logger *slog.Logger, subject string, data []byte) []byte {
	ctx, cancel := context.WithTimeout(context.Background(), natsHandlerTimeout)
	defer cancel()

	req, err := decodeAnalyzeRequest(bytes.NewReader(data))
	if err != nil {
		return errorReply(err)
	}

	result, err := svc.Analyze(ctx, req.engineRequest(), RunMeta{
		Source:    store.SourceNATS,
		RequestID: uuid.NewString(),
	})
	if err != nil {
		logger.Debug("nats analysis rejected", "subject", subject, "error", err)
		return errorReply(err)
	}

	reply, err := json.Marshal(AnalyzeResponse{Tasks: result.Tasks})
	if err != nil {
		logger.Error("failed to marshal analysis reply", "subject", subject, "error", err)
		return errorReply(errors.New("internal error"))
	}
	return reply
}

func errorReply(err error) []byte {
	reply, _ := json.Marshal(map[string]string{"error": err.Error()})
	return reply
}
