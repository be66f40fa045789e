// Command seed loads demo residents, helpers and requests and prints access
// tokens for them. With -reconcile it only rebuilds every user's rating
// aggregate from the stored ratings.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"neighborhub/internal/bootstrap"
	"neighborhub/internal/config"
	"neighborhub/internal/models"
	"neighborhub/internal/repositories/interfaces"
	"neighborhub/internal/utils"
	"neighborhub/internal/validators"
	"neighborhub/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var demoUsers = []models.User{
	{Name: "Alice Resident", Email: "alice@neighborhub.local", Role: models.RoleResident},
	{Name: "Bob Plumber", Email: "bob@neighborhub.local", Role: models.RolePlumber, Job: "Plumber"},
	{Name: "Carol Volunteer", Email: "carol@neighborhub.local", Role: models.RoleVolunteer},
	{Name: "Dana Manager", Email: "dana@neighborhub.local", Role: models.RoleManager},
}

func main() {
	configFile := flag.String("c", "", "path to the configuration file")
	reconcile := flag.Bool("reconcile", false, "rebuild rating aggregates instead of seeding")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Database.Driver == config.DriverMemory {
		log.Fatal("Seeding the in-memory store has no lasting effect; use the mongodb driver")
	}

	appLogger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	ctx := context.Background()
	app, err := bootstrap.New(ctx, cfg, appLogger)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialise application")
	}
	defer app.Close()

	if *reconcile {
		err = reconcileAll(ctx, app, appLogger)
	} else {
		err = seed(ctx, app, cfg.Security.JWTSecret)
	}
	if err != nil {
		appLogger.WithError(err).Error("Seed failed")
		app.Close()
		os.Exit(1)
	}
}

func seed(ctx context.Context, app *bootstrap.App, secret string) error {
	users := make(map[string]*models.User, len(demoUsers))
	for i := range demoUsers {
		user, err := ensureUser(ctx, app.Repositories.Users, demoUsers[i])
		if err != nil {
			return err
		}
		users[user.Email] = user
	}

	alice := users["alice@neighborhub.local"]
	bob := users["bob@neighborhub.local"]
	carol := users["carol@neighborhub.local"]

	// One rated request and one open request.
	leak, err := app.Requests.CreateRequest(ctx, alice.ID, &validators.CreateRequestInput{
		Category:      string(models.CategoryPlumbing),
		Description:   "Kitchen sink is leaking",
		Urgency:       string(models.UrgencyHigh),
		PreferredTime: "14:00",
		AddressNote:   "Flat 4B",
	})
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if _, err := app.Requests.OfferHelp(ctx, leak.ID, bob.ID); err != nil {
		return fmt.Errorf("offer help: %w", err)
	}
	if _, err := app.Requests.MarkCompleted(ctx, leak.ID, alice.ID); err != nil {
		return fmt.Errorf("complete request: %w", err)
	}
	if _, err := app.Ratings.SubmitRating(ctx, alice.ID, &validators.SubmitRatingInput{
		RequestID:     leak.ID.Hex(),
		Stars:         5,
		Review:        "Fixed within the hour",
		QualityOfWork: utils.IntPtr(5),
		Communication: utils.IntPtr(4),
	}); err != nil {
		return fmt.Errorf("submit rating: %w", err)
	}

	if _, err := app.Requests.CreateRequest(ctx, carol.ID, &validators.CreateRequestInput{
		Category:       string(models.CategoryGardening),
		Description:    "Hedge trimming in the shared garden",
		Urgency:        string(models.UrgencyLow),
		PreferredTime:  "Saturday morning",
		TargetHelperID: bob.ID.Hex(),
	}); err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	fmt.Println("Seeded users:")
	for _, u := range demoUsers {
		user := users[u.Email]
		tokens, err := utils.GenerateTokenPair(user.ID, string(user.Role), user.Email, secret)
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
		fmt.Printf("  %-16s %-12s %s\n    %s\n", user.Name, user.Role, user.ID.Hex(), tokens.AccessToken)
	}
	return nil
}

func ensureUser(ctx context.Context, repo interfaces.UserRepository, user models.User) (*models.User, error) {
	existing, err := repo.GetByEmail(ctx, user.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, fmt.Errorf("lookup %s: %w", user.Email, err)
	}

	user.ID = primitive.NewObjectID()
	if err := repo.Create(ctx, &user); err != nil {
		return nil, fmt.Errorf("create %s: %w", user.Email, err)
	}
	return &user, nil
}

func reconcileAll(ctx context.Context, app *bootstrap.App, log *logger.Logger) error {
	users, err := app.Repositories.Users.List(ctx)
	if err != nil {
		return err
	}

	for _, user := range users {
		aggregate, err := app.Ratings.ReconcileUserAggregate(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("reconcile %s: %w", user.ID.Hex(), err)
		}
		log.WithFields(map[string]interface{}{
			"user_id":       user.ID.Hex(),
			"average":       aggregate.Average,
			"total_ratings": aggregate.TotalRatings,
		}).Info("Rating aggregate reconciled")
	}
	return nil
}
