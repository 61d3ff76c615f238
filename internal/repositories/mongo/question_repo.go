package mongo

import (
	"context"
	"errors"
	"time"

	"interviewai/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrQuestionNotFound = errors.New("question not found")

// Repo wraps the question bank collection
type Repo struct{ col *mongo.Collection }

func NewQuestionRepo(c *Client) (*Repo, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}
	col := db.Collection("questions")
	r := &Repo{col: col}

	_, _ = r.col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}, {Key: "isActive", Value: 1}},
	})
	return r, nil
}

func activeFilter(extra bson.D) bson.D {
	return append(bson.D{{Key: "isActive", Value: true}}, extra...)
}

// List retrieves all active questions
func (r *Repo) List(ctx context.Context) ([]models.Question, error) {
	return r.find(ctx, activeFilter(nil))
}

// ListByCategory retrieves active questions in one category
func (r *Repo) ListByCategory(ctx context.Context, category string) ([]models.Question, error) {
	return r.find(ctx, activeFilter(bson.D{{Key: "category", Value: category}}))
}

func (r *Repo) find(ctx context.Context, filter bson.D) ([]models.Question, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Question{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*models.Question, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrQuestionNotFound
	}
	var q models.Question
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&q); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return &q, nil
}

func (r *Repo) Create(ctx context.Context, q *models.Question) (*models.Question, error) {
	if q.Question == "" {
		return nil, errors.New("question text required")
	}
	now := time.Now().UTC()
	q.CreatedAt, q.UpdatedAt = now, now
	q.IsActive = true
	res, err := r.col.InsertOne(ctx, q)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		q.ID = oid
	}
	return q, nil
}

func (r *Repo) Update(ctx context.Context, id string, patch bson.M) (*models.Question, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrQuestionNotFound
	}
	patch["updatedAt"] = time.Now().UTC()
	var updated models.Question
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": patch}, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// SoftDelete clears isActive; the document stays.
func (r *Repo) SoftDelete(ctx context.Context, id string) error {
	_, err := r.Update(ctx, id, bson.M{"isActive": false})
	return err
}

// Seed replaces the collection contents with the given questions.
func (r *Repo) Seed(ctx context.Context, questions []models.Question) (int, error) {
	if _, err := r.col.DeleteMany(ctx, bson.M{}); err != nil {
		return 0, err
	}
	docs := make([]interface{}, 0, len(questions))
	now := time.Now().UTC()
	for i := range questions {
		q := questions[i]
		q.ID = primitive.NilObjectID
		q.IsActive = true
		q.CreatedAt, q.UpdatedAt = now, now
		docs = append(docs, q)
	}
	if len(docs) == 0 {
		return 0, nil
	}
	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}
