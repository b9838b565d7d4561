package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"applyapi/internal/apperr"
	"applyapi/internal/model"
	"applyapi/internal/repository"
)

// ApplicationMongo is a MongoDB implementation of repository.ApplicationRepository.
type ApplicationMongo struct {
	db *mongod.Database
}

func NewApplicationMongo(db *mongod.Database) *ApplicationMongo {
	return &ApplicationMongo{db: db}
}

var _ repository.ApplicationRepository = (*ApplicationMongo)(nil)

func (r *ApplicationMongo) col() *mongod.Collection { return r.db.Collection(colApplications) }

func (r *ApplicationMongo) FindDuplicate(ctx context.Context, jobID, applicantID string) (*model.Application, error) {
	var m applicationModel
	opts := options.FindOne().SetProjection(bson.M{"resume.data": 0})
	err := r.col().FindOne(ctx, bson.M{"job_id": jobID, "applicant_id": applicantID}, opts).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, apperr.Persistence("failed to check existing application", err)
	}
	return fromApplicationModel(&m), nil
}

func (r *ApplicationMongo) Create(ctx context.Context, app *model.Application) (*model.Application, error) {
	if err := app.Validate(); err != nil {
		return nil, err
	}
	if _, err := r.col().InsertOne(ctx, toApplicationModel(app)); err != nil {
		if isDuplicateKey(err) {
			return nil, apperr.Duplicate("you have already applied for this job", err)
		}
		return nil, apperr.Persistence("failed to create application", err)
	}
	out := *app
	att := *app.Attachment
	out.Attachment = &att
	return &out, nil
}

func (r *ApplicationMongo) FindByID(ctx context.Context, id string) (*model.Application, error) {
	var m applicationModel
	if err := r.col().FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if isNoDocuments(err) {
			return nil, apperr.NotFound("application not found")
		}
		return nil, apperr.Persistence("failed to load application", err)
	}
	return fromApplicationModel(&m), nil
}

func (r *ApplicationMongo) FindByJob(ctx context.Context, jobID string, pq repository.PageQuery) ([]model.Application, error) {
	models, err := r.find(ctx, bson.M{"job_id": jobID}, pq)
	if err != nil {
		return nil, apperr.Persistence("failed to list job applications", err)
	}

	ids := make([]string, 0, len(models))
	for i := range models {
		ids = append(ids, models[i].ApplicantID)
	}
	users, err := loadUsers(ctx, r.db, ids)
	if err != nil {
		return nil, apperr.Persistence("failed to load applicant profiles", err)
	}

	items := make([]model.Application, 0, len(models))
	for i := range models {
		app := fromApplicationModel(&models[i])
		if u, ok := users[app.ApplicantID]; ok {
			app.Applicant = u.profile()
		}
		items = append(items, *app)
	}
	return items, nil
}

func (r *ApplicationMongo) FindByApplicant(ctx context.Context, applicantID string, pq repository.PageQuery) ([]model.Application, error) {
	models, err := r.find(ctx, bson.M{"applicant_id": applicantID}, pq)
	if err != nil {
		return nil, apperr.Persistence("failed to list applicant applications", err)
	}

	jobIDs := make([]string, 0, len(models))
	for i := range models {
		jobIDs = append(jobIDs, models[i].JobID)
	}
	jobs, err := loadJobs(ctx, r.db, jobIDs)
	if err != nil {
		return nil, apperr.Persistence("failed to load jobs", err)
	}
	employerIDs := make([]string, 0, len(jobs))
	for _, j := range jobs {
		employerIDs = append(employerIDs, j.EmployerID)
	}
	employers, err := loadUsers(ctx, r.db, employerIDs)
	if err != nil {
		return nil, apperr.Persistence("failed to load employers", err)
	}

	items := make([]model.Application, 0, len(models))
	for i := range models {
		app := fromApplicationModel(&models[i])
		if j, ok := jobs[app.JobID]; ok {
			app.Job = j.summary()
			if e, ok := employers[j.EmployerID]; ok {
				app.Job.EmployerName = e.Name
				app.Job.CompanyName = e.CompanyName
			}
		}
		items = append(items, *app)
	}
	return items, nil
}

// SetStatus runs a pipeline update so updated_at is clamped to applied_at server side.
func (r *ApplicationMongo) SetStatus(ctx context.Context, id string, status model.Status, notes *string, updatedAt time.Time) (*model.Application, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"resume.data": 0})

	var m applicationModel
	err := r.col().FindOneAndUpdate(ctx, bson.M{"_id": id}, statusUpdate(status, notes, updatedAt), opts).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, apperr.NotFound("application not found")
		}
		return nil, apperr.Persistence("failed to update application", err)
	}
	return fromApplicationModel(&m), nil
}

func statusUpdate(status model.Status, notes *string, updatedAt time.Time) mongod.Pipeline {
	set := bson.D{
		{Key: "status", Value: bson.D{{Key: "$literal", Value: string(status)}}},
		{Key: "updated_at", Value: bson.D{{Key: "$max", Value: bson.A{updatedAt, "$applied_at"}}}},
	}
	if notes != nil {
		set = append(set, bson.E{Key: "notes", Value: bson.D{{Key: "$literal", Value: *notes}}})
	}
	return mongod.Pipeline{{{Key: "$set", Value: set}}}
}

func (r *ApplicationMongo) find(ctx context.Context, filter bson.M, pq repository.PageQuery) ([]applicationModel, error) {
	cursor, err := r.col().Find(ctx, filter, listOptions(pq))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var models []applicationModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, err
	}
	return models, nil
}

func loadUsers(ctx context.Context, db *mongod.Database, ids []string) (map[string]*userModel, error) {
	out := make(map[string]*userModel)
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}
	cursor, err := db.Collection(colUsers).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []userModel
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	for i := range users {
		out[users[i].ID] = &users[i]
	}
	return out, nil
}

func loadJobs(ctx context.Context, db *mongod.Database, ids []string) (map[string]*jobModel, error) {
	out := make(map[string]*jobModel)
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}
	cursor, err := db.Collection(colJobs).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var jobs []jobModel
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}
	for i := range jobs {
		out[jobs[i].ID] = &jobs[i]
	}
	return out, nil
}
