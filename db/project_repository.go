package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	dbmodels "cityagent/db/models"
	appmodels "cityagent/models"
)

const projectsCollection = "projects"

// ProjectStore is the Mongo-backed persistence collaborator for the
// planning pipeline.
type ProjectStore struct{}

// NewProjectStore returns a store over the shared Mongo connection.
func NewProjectStore() *ProjectStore {
	return &ProjectStore{}
}

// projectFilter scopes lookups to the requesting identity when one is
// supplied; an empty ownerID matches any project.
func projectFilter(id int, ownerID string) bson.M {
	filter := bson.M{"project_id": id}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	}
	return filter
}

// GetProject loads a project by integer id, scoped to the requesting
// identity. Missing or foreign projects both surface as
// ErrProjectNotFound.
func (s *ProjectStore) GetProject(ctx context.Context, id int, ownerID string) (*appmodels.Project, error) {
	var doc dbmodels.ProjectDocument
	err := GetCollection(projectsCollection).FindOne(ctx, projectFilter(id, ownerID)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, appmodels.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load project %d: %w", id, err)
	}
	return doc.ToModel(), nil
}

// MergeCityData appends features to the project's stored CityData. The
// merge is strictly additive: existing features are never removed,
// deduplicated or overwritten.
//
// The city document is stored as a JSON string and merged
// read-modify-write without a transaction, so two concurrent merges
// against the same project race and the later write wins. Known
// limitation, kept deliberately.
func (s *ProjectStore) MergeCityData(ctx context.Context, id int, ownerID string, features []appmodels.Feature) error {
	if len(features) == 0 {
		return nil
	}

	collection := GetCollection(projectsCollection)

	var doc dbmodels.ProjectDocument
	err := collection.FindOne(ctx, projectFilter(id, ownerID)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return appmodels.ErrProjectNotFound
	}
	if err != nil {
		return fmt.Errorf("load project %d for merge: %w", id, err)
	}

	city := appmodels.ParseCityData(doc.CityData)
	city.Append(features)

	raw, err := json.Marshal(city)
	if err != nil {
		return fmt.Errorf("encode city data: %w", err)
	}

	update := bson.M{"$set": bson.M{
		"city_data":  string(raw),
		"updated_at": time.Now(),
	}}

	// Retry transient write failures, as elsewhere in the db layer.
	var lastErr error
	for i := 0; i < 3; i++ {
		_, err = collection.UpdateOne(ctx, projectFilter(id, ownerID), update)
		if err == nil {
			return nil
		}
		lastErr = err
		time.Sleep(time.Millisecond * 100 * time.Duration(i+1))
	}
	return fmt.Errorf("merge city data for project %d: %w", id, lastErr)
}

// CreateProject inserts a new project document and returns its integer id.
func (s *ProjectStore) CreateProject(ctx context.Context, doc *dbmodels.ProjectDocument) (int, error) {
	collection := GetCollection(projectsCollection)

	if doc.ProjectID == 0 {
		next, err := nextProjectID(ctx, collection)
		if err != nil {
			return 0, err
		}
		doc.ProjectID = next
	}
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = time.Now()

	if _, err := collection.InsertOne(ctx, doc); err != nil {
		return 0, fmt.Errorf("create project: %w", err)
	}
	return doc.ProjectID, nil
}

// ListProjects returns the projects visible to the identity, newest first.
func (s *ProjectStore) ListProjects(ctx context.Context, ownerID string) ([]*appmodels.Project, error) {
	filter := bson.M{}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := GetCollection(projectsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []dbmodels.ProjectDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}

	projects := make([]*appmodels.Project, 0, len(docs))
	for _, d := range docs {
		projects = append(projects, d.ToModel())
	}
	return projects, nil
}

// nextProjectID allocates a best-effort sequential id. Not safe against
// concurrent creates; acceptable for this plumbing surface.
func nextProjectID(ctx context.Context, collection *mongo.Collection) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "project_id", Value: -1}})
	var top dbmodels.ProjectDocument
	err := collection.FindOne(ctx, bson.M{}, opts).Decode(&top)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("allocate project id: %w", err)
	}
	return top.ProjectID + 1, nil
}

// CreateProjectIndexes creates necessary indexes for performance
func CreateProjectIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "project_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "owner_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
	}

	if _, err := GetCollection(projectsCollection).Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("[INDEX_ERROR] Failed to create project indexes: %v", err)
	}
}
