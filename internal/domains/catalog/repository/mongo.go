package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookocean-backend/internal/domains/catalog/model"
)

// bookDocument is the stored shape in the books collection
type bookDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Title    string             `bson:"title"`
	Author   string             `bson:"author"`
	Category string             `bson:"category"`
	Image    string             `bson:"image"`
	Quantity int                `bson:"quantity"`
	Rating   float64            `bson:"rating"`
}

func (d bookDocument) toModel() model.Book {
	return model.Book{
		ID:       d.ID.Hex(),
		Title:    d.Title,
		Author:   d.Author,
		Category: d.Category,
		Image:    d.Image,
		Quantity: d.Quantity,
		Rating:   d.Rating,
	}
}

func newBookDocument(b *model.Book) bookDocument {
	return bookDocument{
		Title:    b.Title,
		Author:   b.Author,
		Category: b.Category,
		Image:    b.Image,
		Quantity: b.Quantity,
		Rating:   b.Rating,
	}
}

type mongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository - Constructor, collection là "books"
func NewMongoRepository(collection *mongo.Collection) RepositoryInterface {
	return &mongoRepository{collection: collection}
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, model.NewInvalidBookIDError(id)
	}
	return oid, nil
}

// buildMongoFilter converts equality conditions into a bson filter document
func buildMongoFilter(filter model.BookFilter) bson.D {
	doc := bson.D{}
	for _, cond := range filter.Conditions {
		doc = append(doc, bson.E{Key: cond.Field, Value: cond.Value})
	}
	return doc
}

// ============================================
// CREATE / READ
// ============================================

func (r *mongoRepository) Create(ctx context.Context, book *model.Book) (*model.Book, error) {
	doc := newBookDocument(book)
	doc.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}

	created := doc.toModel()
	return &created, nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id string) (*model.Book, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc bookDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.NewBookNotFoundError(id)
		}
		return nil, fmt.Errorf("find book: %w", err)
	}

	book := doc.toModel()
	return &book, nil
}

func (r *mongoRepository) List(ctx context.Context, filter model.BookFilter) ([]model.Book, error) {
	cursor, err := r.collection.Find(ctx, buildMongoFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bookDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}

	books := make([]model.Book, 0, len(docs))
	for _, d := range docs {
		books = append(books, d.toModel())
	}
	return books, nil
}

func (r *mongoRepository) ListImages(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 0, model.FieldImage: 1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find images: %w", err)
	}
	defer cursor.Close(ctx)

	images := make([]string, 0)
	for cursor.Next(ctx) {
		var row struct {
			Image string `bson:"image"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
		images = append(images, row.Image)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return images, nil
}

// ============================================
// WRITES
// ============================================

func (r *mongoRepository) Update(ctx context.Context, id string, book *model.Book) (*model.UpdateAck, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		model.FieldTitle:    book.Title,
		model.FieldAuthor:   book.Author,
		model.FieldCategory: book.Category,
		model.FieldImage:    book.Image,
		model.FieldQuantity: book.Quantity,
		model.FieldRating:   book.Rating,
	}}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, model.NewBookNotFoundError(id)
	}

	return &model.UpdateAck{
		ID:       oid.Hex(),
		Matched:  true,
		Modified: res.ModifiedCount > 0,
	}, nil
}

// IncrementQuantity uses $inc so concurrent adjustments never lose updates
func (r *mongoRepository) IncrementQuantity(ctx context.Context, id string, delta int) (*model.Book, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	return r.findAndInc(ctx, id, bson.M{"_id": oid}, delta)
}

// DecrementIfAvailable puts the quantity > 0 guard in the same filter as $inc.
// On no match a second read tells a missing book from an exhausted one.
func (r *mongoRepository) DecrementIfAvailable(ctx context.Context, id string) (*model.Book, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"_id": oid, model.FieldQuantity: bson.M{"$gt": 0}}
	book, err := r.findAndInc(ctx, id, filter, -1)
	if err == nil || !model.IsNotFoundError(err) {
		return book, err
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, model.NewOutOfStockError(id)
}

func (r *mongoRepository) findAndInc(ctx context.Context, id string, filter bson.M, delta int) (*model.Book, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$inc": bson.M{model.FieldQuantity: delta}}

	var doc bookDocument
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.NewBookNotFoundError(id)
		}
		return nil, fmt.Errorf("increment quantity: %w", err)
	}

	book := doc.toModel()
	return &book, nil
}

func (r *mongoRepository) Ping(ctx context.Context) error {
	return r.collection.Database().Client().Ping(ctx, nil)
}
