package notification_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lost-found/internal/domain"
	"lost-found/internal/mocks"
	"lost-found/internal/push"
	"lost-found/internal/service/notification"
)

const cacheTTL = 30 * time.Second

func newCachedDispatcher(t *testing.T) (*notification.Dispatcher, dispatchDeps, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	deps := dispatchDeps{
		users:  new(mocks.UserRepository),
		notifs: new(mocks.NotificationRepository),
		sender: new(mocks.PushSender),
	}
	return notification.NewDispatcher(deps.users, deps.notifs, deps.sender, client, cacheTTL, nil), deps, mr
}

func cacheKey(userID uuid.UUID) string {
	return "user:push:" + userID.String()
}

func TestDispatch_CacheHitSkipsUserLookup(t *testing.T) {
	d, deps, mr := newCachedDispatcher(t)
	ctx := context.Background()
	userID := uuid.New()

	deps.users.On("GetByID", mock.Anything, userID).Return(&domain.User{
		ID: userID, FCMToken: strPtr("tok-1"), Language: "en",
	}, nil).Once()
	deps.sender.On("Send", mock.Anything, mock.MatchedBy(func(m push.Message) bool {
		return m.Token == "tok-1" && m.Title == "Title"
	})).Return(nil).Twice()
	deps.notifs.On("Create", mock.Anything, mock.Anything).Return(nil).Twice()

	require.NoError(t, d.Dispatch(ctx, userID, testMessage()))
	require.NoError(t, d.Dispatch(ctx, userID, testMessage()))

	deps.users.AssertNumberOfCalls(t, "GetByID", 1)
	deps.sender.AssertExpectations(t)

	cached, err := mr.Get(cacheKey(userID))
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"tok-1","language":"en"}`, cached)
	assert.Equal(t, cacheTTL, mr.TTL(cacheKey(userID)))
}

func TestDispatch_NewTokenIsUsedImmediately(t *testing.T) {
	d, deps, mr := newCachedDispatcher(t)
	ctx := context.Background()
	userID := uuid.New()

	deps.users.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID}, nil).Once()

	require.NoError(t, d.Dispatch(ctx, userID, testMessage()))
	assert.False(t, mr.Exists(cacheKey(userID)))
	deps.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)

	deps.users.On("GetByID", mock.Anything, userID).Return(&domain.User{
		ID: userID, FCMToken: strPtr("new-token"), Language: "ar",
	}, nil).Once()
	deps.sender.On("Send", mock.Anything, mock.MatchedBy(func(m push.Message) bool {
		return m.Token == "new-token"
	})).Return(nil).Once()
	deps.notifs.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	require.NoError(t, d.Dispatch(ctx, userID, testMessage()))

	deps.users.AssertNumberOfCalls(t, "GetByID", 2)
	deps.sender.AssertExpectations(t)
	deps.notifs.AssertExpectations(t)
}

func TestDispatch_LanguageChangeVisibleAfterTTL(t *testing.T) {
	d, deps, mr := newCachedDispatcher(t)
	ctx := context.Background()
	userID := uuid.New()

	deps.users.On("GetByID", mock.Anything, userID).Return(&domain.User{
		ID: userID, FCMToken: strPtr("tok-1"), Language: "ar",
	}, nil).Once()
	deps.sender.On("Send", mock.Anything, mock.MatchedBy(func(m push.Message) bool {
		return m.Title == "عنوان"
	})).Return(nil).Once()
	deps.notifs.On("Create", mock.Anything, mock.Anything).Return(nil).Twice()

	require.NoError(t, d.Dispatch(ctx, userID, testMessage()))

	mr.FastForward(cacheTTL + time.Second)

	deps.users.On("GetByID", mock.Anything, userID).Return(&domain.User{
		ID: userID, FCMToken: strPtr("tok-1"), Language: "en",
	}, nil).Once()
	deps.sender.On("Send", mock.Anything, mock.MatchedBy(func(m push.Message) bool {
		return m.Title == "Title"
	})).Return(nil).Once()

	require.NoError(t, d.Dispatch(ctx, userID, testMessage()))

	deps.users.AssertNumberOfCalls(t, "GetByID", 2)
	deps.sender.AssertExpectations(t)
}

func TestDispatch_UnusableCacheEntryFallsBackToRepository(t *testing.T) {
	tests := []struct {
		name  string
		entry string
	}{
		{"corrupt json", "{not json"},
		{"empty token", `{"token":"","language":"en"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, deps, mr := newCachedDispatcher(t)
			ctx := context.Background()
			userID := uuid.New()
			require.NoError(t, mr.Set(cacheKey(userID), tt.entry))

			deps.users.On("GetByID", mock.Anything, userID).Return(&domain.User{
				ID: userID, FCMToken: strPtr("tok-2"), Language: "en",
			}, nil).Once()
			deps.sender.On("Send", mock.Anything, mock.MatchedBy(func(m push.Message) bool {
				return m.Token == "tok-2"
			})).Return(nil).Once()
			deps.notifs.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

			require.NoError(t, d.Dispatch(ctx, userID, testMessage()))

			cached, err := mr.Get(cacheKey(userID))
			require.NoError(t, err)
			var entry map[string]string
			require.NoError(t, json.Unmarshal([]byte(cached), &entry))
			assert.Equal(t, "tok-2", entry["token"])
			deps.users.AssertExpectations(t)
		})
	}
}
