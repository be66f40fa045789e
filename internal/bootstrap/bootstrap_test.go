package bootstrap

import (
	"context"
	"testing"
	"time"

	"neighborhub/internal/config"
	"neighborhub/internal/models"
	"neighborhub/internal/utils"
	"neighborhub/internal/validators"
	"neighborhub/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig(policy string) *config.Config {
	return &config.Config{
		App:       &config.AppConfig{Name: "NeighborHub", Version: "test"},
		Log:       &config.LogConfig{Level: "info", Format: "text"},
		Database:  &config.DatabaseConfig{Driver: config.DriverMemory},
		Redis:     &config.RedisConfig{},
		WebSocket: &config.WebSocketConfig{Enabled: true, Path: "/ws"},
		Security:  &config.SecurityConfig{JWTSecret: "secret"},
		Lifecycle: &config.LifecycleConfig{
			CompletionPolicy:   policy,
			StatsCacheTTL:      time.Minute,
			LockTTL:            time.Second,
			LockWait:           time.Second,
			RecentRatingsLimit: 3,
		},
		Events: &config.EventsConfig{},
		Sentry: &config.SentryConfig{},
	}
}

func TestNewWithMemoryDriver(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := New(ctx, memoryConfig("owner_or_helper"), logger.NewNopLogger())
	require.NoError(t, err)
	defer app.Close()
	app.Run(ctx)

	assert.Empty(t, app.HealthChecks)
	assert.Nil(t, app.Relay)
	require.NotNil(t, app.Hub)

	alice := &models.User{Name: "Alice", Email: "alice@example.com", Role: models.RoleResident}
	bob := &models.User{Name: "Bob", Email: "bob@example.com", Role: models.RolePlumber}
	require.NoError(t, app.Repositories.Users.Create(ctx, alice))
	require.NoError(t, app.Repositories.Users.Create(ctx, bob))

	request, err := app.Requests.CreateRequest(ctx, alice.ID, &validators.CreateRequestInput{
		Category:      "plumbing",
		Description:   "Leak",
		Urgency:       "high",
		PreferredTime: "14:00",
	})
	require.NoError(t, err)

	_, err = app.Requests.OfferHelp(ctx, request.ID, bob.ID)
	require.NoError(t, err)

	// owner_or_helper lets the helper close the request.
	result, err := app.Requests.MarkCompleted(ctx, request.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, result.RatingPrompt)

	_, err = app.Ratings.SubmitRating(ctx, alice.ID, &validators.SubmitRatingInput{RequestID: request.ID.Hex(), Stars: 4})
	require.NoError(t, err)

	stats, err := app.Ratings.GetUserRatingStats(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, stats.AverageRating)

	activities, total, err := app.Activity.ListForUser(ctx, alice.ID, utils.NewPaginationParams(50))
	require.NoError(t, err)
	assert.EqualValues(t, len(activities), total)
	assert.NotZero(t, total)
}

func TestNewRejectsUnknownCompletionPolicy(t *testing.T) {
	_, err := New(context.Background(), memoryConfig("anyone"), logger.NewNopLogger())
	assert.Error(t, err)
}

func TestSchemaEnumsMirrorModels(t *testing.T) {
	enums := SchemaEnums()
	assert.Len(t, enums.Categories, len(models.ServiceCategories))
	assert.Contains(t, enums.Statuses, string(models.RequestStatusInProgress))
	assert.Equal(t, models.MinStars, enums.MinStars)
	assert.Equal(t, models.MaxStars, enums.MaxStars)
}
