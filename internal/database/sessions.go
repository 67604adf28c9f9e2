package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/votervision/backend/internal/models"
)

// Redis key patterns for per-session conversation state.
const (
	ChatHistoryKey = "chat:history:%s"
	LabHistoryKey  = "lab:history:%s"
	LabContextKey  = "lab:context:%s"
	LabResultKey   = "lab:result:%s"
)

const (
	chatHistoryCap = 10
	labHistoryCap  = 6
	sessionTTL     = 24 * time.Hour
)

// SessionStore keeps conversation histories and lab document context in
// Redis, one key per session. Histories are stored as JSON arrays and
// trimmed oldest-first at the namespace cap.
type SessionStore struct {
	client *redis.Client
	logger *logrus.Logger
}

func NewSessionStore(client *redis.Client, logger *logrus.Logger) *SessionStore {
	return &SessionStore{
		client: client,
		logger: logger,
	}
}

func historyKey(namespace models.ConversationNamespace, session string) string {
	if namespace == models.NamespaceLab {
		return fmt.Sprintf(LabHistoryKey, session)
	}
	return fmt.Sprintf(ChatHistoryKey, session)
}

func historyCap(namespace models.ConversationNamespace) int {
	if namespace == models.NamespaceLab {
		return labHistoryCap
	}
	return chatHistoryCap
}

func (s *SessionStore) History(ctx context.Context, namespace models.ConversationNamespace, session string) ([]models.ConversationTurn, error) {
	data, err := s.client.Get(ctx, historyKey(namespace, session)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	var turns []models.ConversationTurn
	if err := json.Unmarshal([]byte(data), &turns); err != nil {
		// A corrupt blob should not poison the session forever.
		s.logger.WithError(err).Warn("Discarding unreadable conversation history")
		return nil, nil
	}
	return turns, nil
}

// AppendExchange records one user/assistant turn pair and trims the
// history to the namespace cap, dropping oldest turns first.
func (s *SessionStore) AppendExchange(ctx context.Context, namespace models.ConversationNamespace, session, query, response string) error {
	turns, err := s.History(ctx, namespace, session)
	if err != nil {
		return err
	}

	turns = append(turns,
		models.ConversationTurn{Role: "user", Content: query},
		models.ConversationTurn{Role: "assistant", Content: response},
	)

	if limit := historyCap(namespace); len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}

	data, err := json.Marshal(turns)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	return s.client.Set(ctx, historyKey(namespace, session), data, sessionTTL).Err()
}

func (s *SessionStore) LabContext(ctx context.Context, session string) (string, error) {
	data, err := s.client.Get(ctx, fmt.Sprintf(LabContextKey, session)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load lab context: %w", err)
	}
	return data, nil
}

// SetLabContext replaces the session's document context. New documents
// invalidate the running lab conversation, so history and the cached
// result are cleared alongside.
func (s *SessionStore) SetLabContext(ctx context.Context, session, content string) error {
	if err := s.client.Set(ctx, fmt.Sprintf(LabContextKey, session), content, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store lab context: %w", err)
	}

	if err := s.client.Del(ctx,
		fmt.Sprintf(LabHistoryKey, session),
		fmt.Sprintf(LabResultKey, session),
	).Err(); err != nil {
		return fmt.Errorf("failed to reset lab session: %w", err)
	}
	return nil
}

func (s *SessionStore) LabResult(ctx context.Context, session string) (string, error) {
	data, err := s.client.Get(ctx, fmt.Sprintf(LabResultKey, session)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load lab result: %w", err)
	}
	return data, nil
}

func (s *SessionStore) SetLabResult(ctx context.Context, session, result string) error {
	return s.client.Set(ctx, fmt.Sprintf(LabResultKey, session), result, sessionTTL).Err()
}
