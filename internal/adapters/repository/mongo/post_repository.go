package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/blog/internal/core/domain"
	"github.com/vncsmyrnk/blog/internal/core/ports"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type postDocument struct {
	ID        string    `bson:"_id"`
	Title     string    `bson:"title"`
	Content   string    `bson:"content"`
	Author    string    `bson:"author"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (d postDocument) toDomain() (*domain.Post, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("bad post id %q: %w", d.ID, err)
	}
	author, err := uuid.Parse(d.Author)
	if err != nil {
		return nil, fmt.Errorf("bad author id %q: %w", d.Author, err)
	}
	return &domain.Post{
		ID:        id,
		Title:     d.Title,
		Content:   d.Content,
		Author:    author,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

type postRepository struct {
	coll  *mongo.Collection
	clock clock
}

func NewPostRepository(db *mongo.Database) ports.PostRepository {
	return &postRepository{coll: db.Collection(postsCollection), clock: time.Now}
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	now := r.clock.now()

	doc := postDocument{
		ID:        post.ID.String(),
		Title:     post.Title,
		Content:   post.Content,
		Author:    post.Author.String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	post.CreatedAt = now
	post.UpdatedAt = now
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	var doc postDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return doc.toDomain()
}

func (r *postRepository) List(ctx context.Context, filter domain.PostFilter, limit, offset int) ([]*domain.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, toFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}

	posts := make([]*domain.Post, 0, len(docs))
	for _, doc := range docs {
		post, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (r *postRepository) Count(ctx context.Context, filter domain.PostFilter) (int64, error) {
	total, err := r.coll.CountDocuments(ctx, toFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return total, nil
}

func (r *postRepository) Update(ctx context.Context, post *domain.Post) error {
	update := bson.M{"$set": bson.M{
		"title":     post.Title,
		"content":   post.Content,
		"updatedAt": r.clock.now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc postDocument
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": post.ID.String()}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrPostNotFound
		}
		return fmt.Errorf("failed to update post: %w", err)
	}

	updated, err := doc.toDomain()
	if err != nil {
		return err
	}
	*post = *updated
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func toFilter(filter domain.PostFilter) bson.M {
	if filter.Author == nil {
		return bson.M{}
	}
	return bson.M{"author": filter.Author.String()}
}
