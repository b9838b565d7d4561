// Package mongo implements the repository interfaces on MongoDB. It is selected with
// STORE_DRIVER=mongo and mirrors the PostgreSQL layout: applications, notifications,
// jobs and users each live in their own collection.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"applyapi/internal/repository"
)

// Collection names.
const (
	colApplications  = "applications"
	colNotifications = "notifications"
	colJobs          = "jobs"
	colUsers         = "users"
)

// EnsureIndexes creates the indexes every collection relies on, including the unique
// (job_id, applicant_id) index that backs duplicate detection. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongod.Database) error {
	for col, models := range migrationIndexes() {
		if len(models) == 0 {
			continue
		}
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("mongo: migrate %s indexes: %w", col, err)
		}
	}
	return nil
}

func migrationIndexes() map[string][]mongod.IndexModel {
	return map[string][]mongod.IndexModel{
		colApplications: {
			{
				Keys:    bson.D{{Key: "job_id", Value: 1}, {Key: "applicant_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("applications_job_applicant_key"),
			},
			{Keys: bson.D{{Key: "job_id", Value: 1}, {Key: "applied_at", Value: -1}}},
			{Keys: bson.D{{Key: "applicant_id", Value: 1}, {Key: "applied_at", Value: -1}}},
		},
		colNotifications: {
			{Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		colUsers: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
	}
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongod.ErrNoDocuments)
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return mongod.IsDuplicateKeyError(err) || strings.Contains(err.Error(), "E11000")
}

// listOptions applies the newest-first ordering and optional paging shared by list queries.
// Attachment bytes are projected out.
func listOptions(pq repository.PageQuery) *options.FindOptionsBuilder {
	opts := options.Find().
		SetSort(bson.D{{Key: "applied_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetProjection(bson.M{"resume.data": 0})
	if pq.Bounded() {
		opts.SetLimit(int64(pq.Limit))
	}
	if pq.Offset > 0 {
		opts.SetSkip(int64(pq.Offset))
	}
	return opts
}

// uniqueIDs returns the distinct non-empty values in input order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
