package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"lost-found/internal/domain"
	"lost-found/internal/pkg/logger"
	"lost-found/internal/push"
	"lost-found/internal/repository"
)

// DefaultProfileTTL bounds how long a token or language change made by the
// account service can go unnoticed.
const DefaultProfileTTL = time.Minute

// recipient is the cached slice of a user profile the dispatcher needs.
type recipient struct {
	Token    string          `json:"token"`
	Language domain.Language `json:"language"`
}

type Dispatcher struct {
	userRepo  repository.UserRepository
	notifRepo repository.NotificationRepository
	sender    push.Sender
	redis     *redis.Client
	ttl       time.Duration
	log       *logger.Logger
}

func NewDispatcher(userRepo repository.UserRepository, notifRepo repository.NotificationRepository, sender push.Sender, redis *redis.Client, ttl time.Duration, log *logger.Logger) *Dispatcher {
	if ttl <= 0 {
		ttl = DefaultProfileTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{
		userRepo:  userRepo,
		notifRepo: notifRepo,
		sender:    sender,
		redis:     redis,
		ttl:       ttl,
		log:       log,
	}
}

// Dispatch pushes msg to the user in their language and then records it in the
// inbox. A user without a profile or delivery token is skipped without error.
// Nothing is recorded when the push fails.
func (d *Dispatcher) Dispatch(ctx context.Context, userID uuid.UUID, msg domain.Message) error {
	to, err := d.resolve(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolve recipient %s: %w", userID, err)
	}
	if to == nil || to.Token == "" {
		d.log.Debug("Skipping notification, no delivery token", "user_id", userID, "type", msg.Type)
		return nil
	}

	content := msg.In(to.Language)

	pm := push.Message{Token: to.Token, Title: content.Title, Body: content.Body}
	if content.Action != nil {
		pm.Action = *content.Action
	}
	if err := d.sender.Send(ctx, pm); err != nil {
		return fmt.Errorf("push %s to %s: %w", msg.Type, userID, err)
	}

	notif := &domain.Notification{
		ID:     uuid.New(),
		UserID: userID,
		Type:   content.Type,
		Title:  content.Title,
		Body:   content.Body,
		Action: content.Action,
		IsRead: false,
	}
	if err := d.notifRepo.Create(ctx, notif); err != nil {
		return fmt.Errorf("record %s for %s: %w", msg.Type, userID, err)
	}
	return nil
}

func (d *Dispatcher) resolve(ctx context.Context, userID uuid.UUID) (*recipient, error) {
	cacheKey := "user:push:" + userID.String()

	if d.redis != nil {
		if cached, err := d.redis.Get(ctx, cacheKey).Result(); err == nil {
			var r recipient
			if json.Unmarshal([]byte(cached), &r) == nil && r.Token != "" {
				return &r, nil
			}
		}
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	r := &recipient{Token: user.DeliveryToken(), Language: user.PreferredLanguage()}

	// Tokenless recipients are not cached so a newly registered token is used at once.
	if d.redis != nil && r.Token != "" {
		if data, err := json.Marshal(r); err == nil {
			if err := d.redis.Set(ctx, cacheKey, data, d.ttl).Err(); err != nil {
				d.log.Debug("Failed to cache recipient", "user_id", userID, "error", err)
			}
		}
	}
	return r, nil
}
