package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bookocean-backend/internal/domains/loan/model"
)

// loanDocument is the stored shape in the borrowed collection.
// bookId is kept as the hex string the client sent.
type loanDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	BookID     string             `bson:"bookId"`
	Email      string             `bson:"email"`
	BorrowDate time.Time          `bson:"borrowDate"`
	ReturnDate time.Time          `bson:"returnDate"`
}

func (d loanDocument) toModel() model.Loan {
	return model.Loan{
		ID:         d.ID.Hex(),
		BookID:     d.BookID,
		Email:      d.Email,
		BorrowDate: d.BorrowDate.UTC(),
		ReturnDate: d.ReturnDate.UTC(),
	}
}

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(collection *mongo.Collection) RepositoryInterface {
	return &mongoRepository{collection: collection}
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, model.NewInvalidLoanIDError(id)
	}
	return oid, nil
}

func (r *mongoRepository) Create(ctx context.Context, loan *model.Loan) (*model.Loan, error) {
	doc := loanDocument{
		ID:         primitive.NewObjectID(),
		BookID:     loan.BookID,
		Email:      loan.Email,
		BorrowDate: loan.BorrowDate,
		ReturnDate: loan.ReturnDate,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert loan: %w", err)
	}

	created := doc.toModel()
	return &created, nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id string) (*model.Loan, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc loanDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.NewLoanNotFoundError(id)
		}
		return nil, fmt.Errorf("find loan: %w", err)
	}

	loan := doc.toModel()
	return &loan, nil
}

func (r *mongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete loan: %w", err)
	}
	if res.DeletedCount == 0 {
		return model.NewLoanNotFoundError(id)
	}
	return nil
}

func (r *mongoRepository) ListByEmail(ctx context.Context, email string) ([]model.Loan, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("find loans: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []loanDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode loans: %w", err)
	}

	loans := make([]model.Loan, 0, len(docs))
	for _, d := range docs {
		loans = append(loans, d.toModel())
	}
	return loans, nil
}

func (r *mongoRepository) Ping(ctx context.Context) error {
	return r.collection.Database().Client().Ping(ctx, nil)
}
