package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"

	"applyapi/internal/apperr"
	"applyapi/internal/model"
	"applyapi/internal/repository"
)

// NotificationMongo writes notification documents.
type NotificationMongo struct {
	db *mongod.Database
}

func NewNotificationMongo(db *mongod.Database) *NotificationMongo {
	return &NotificationMongo{db: db}
}

var _ repository.NotificationRepository = (*NotificationMongo)(nil)

func (r *NotificationMongo) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	if _, err := r.db.Collection(colNotifications).InsertOne(ctx, toNotificationModel(n)); err != nil {
		return nil, apperr.Persistence("failed to create notification", err)
	}
	out := *n
	return &out, nil
}

// JobMongo reads job postings.
type JobMongo struct {
	db *mongod.Database
}

func NewJobMongo(db *mongod.Database) *JobMongo {
	return &JobMongo{db: db}
}

var _ repository.JobProvider = (*JobMongo)(nil)

func (r *JobMongo) GetJob(ctx context.Context, id string) (*model.Job, error) {
	var m jobModel
	if err := r.db.Collection(colJobs).FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if isNoDocuments(err) {
			return nil, apperr.NotFound("job not found")
		}
		return nil, apperr.Persistence("failed to load job", err)
	}
	return fromJobModel(&m), nil
}

// UserMongo reads accounts.
type UserMongo struct {
	db *mongod.Database
}

func NewUserMongo(db *mongod.Database) *UserMongo {
	return &UserMongo{db: db}
}

var _ repository.UserProvider = (*UserMongo)(nil)

func (r *UserMongo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return r.getOne(ctx, bson.M{"_id": id})
}

func (r *UserMongo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, bson.M{"email": email})
}

func (r *UserMongo) getOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var m userModel
	if err := r.db.Collection(colUsers).FindOne(ctx, filter).Decode(&m); err != nil {
		if isNoDocuments(err) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Persistence("failed to load user", err)
	}
	return fromUserModel(&m), nil
}
