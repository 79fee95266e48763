package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fitlog/internal/database"
	"fitlog/models"
	"fitlog/utils"
)

var (
	// ErrUserNotFound reports that no user document matched the lookup.
	ErrUserNotFound = errors.New("unknown userId")
	// ErrNameRequired is the schema-level required-field violation for name.
	// The message is what clients of the original service saw, so it stays.
	ErrNameRequired = errors.New("Path `name` is required.")
)

// Service translates domain operations into reads and writes against the
// users collection.
type Service struct {
	users *mongo.Collection
	log   *slog.Logger
}

// NewService returns a store adapter bound to the given database handle.
func NewService(db *database.DB, log *slog.Logger) *Service {
	return &Service{
		users: db.Users,
		log:   log.With("component", "users"),
	}
}

// FindByName looks up a user by exact username match.
func (s *Service) FindByName(ctx context.Context, name string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"name": name}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by name: %w", err)
	}
	return &user, nil
}

// Create inserts a new user with a generated id, zero count and an empty
// exercise log. When a concurrent create for the same name wins the unique
// index race, the already-stored document is returned instead, so
// create-or-get stays idempotent.
func (s *Service) Create(ctx context.Context, name string) (*models.User, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	user := &models.User{
		ID:        utils.GenerateID(),
		Name:      name,
		Count:     0,
		Exercises: []models.Exercise{},
	}

	_, err := s.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		s.log.Warn("create lost insert race, returning existing user", "name", name)
		return s.FindByName(ctx, name)
	}
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	s.log.Info("user created", "id", user.ID, "name", user.Name)
	return user, nil
}

// FindByID fetches a user projected to the fields the log endpoint needs.
func (s *Service) FindByID(ctx context.Context, id string) (*models.User, error) {
	projection := options.FindOne().SetProjection(bson.D{
		{Key: "_id", Value: 1},
		{Key: "name", Value: 1},
		{Key: "count", Value: 1},
		{Key: "exercises", Value: 1},
	})

	var user models.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}, projection).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// AppendExercise pushes the exercise onto the user's log and increments count
// in a single atomic update, then returns the post-update document. A missing
// id or date on the exercise is filled in here, mirroring the schema defaults.
func (s *Service) AppendExercise(ctx context.Context, userID string, exercise models.Exercise) (*models.User, error) {
	if exercise.ID == "" {
		exercise.ID = utils.GenerateID()
	}
	if exercise.Date.IsZero() {
		exercise.Date = time.Now().UTC()
	}

	update := bson.M{
		"$push": bson.M{"exercises": exercise},
		"$inc":  bson.M{"count": 1},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := s.users.FindOneAndUpdate(ctx, bson.M{"_id": userID}, update, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("append exercise: %w", err)
	}

	s.log.Info("exercise appended", "userId", userID, "exerciseId", exercise.ID, "count", user.Count)
	return &user, nil
}

// List returns every user projected to id and name, in store-native order.
func (s *Service) List(ctx context.Context) ([]models.UserSummary, error) {
	opts := options.Find().SetProjection(bson.D{
		{Key: "_id", Value: 1},
		{Key: "name", Value: 1},
	})

	cursor, err := s.users.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	summaries := []models.UserSummary{}
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return summaries, nil
}
