package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sweetshop/inventory-system/internal/core/domain"
	"github.com/sweetshop/inventory-system/internal/core/ports"
)

const collectionSweets = "sweets"

type SweetRepository struct {
	col *mongo.Collection
}

func NewSweetRepository(db *mongo.Database) *SweetRepository {
	return &SweetRepository{col: db.Collection(collectionSweets)}
}

// sweetDoc is the persisted layout. Field names keep the original
// collection's camelCase so the service can run against an existing database.
type sweetDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Name            string             `bson:"name"`
	Category        string             `bson:"category"`
	Price           float64            `bson:"price"`
	QuantityInStock int                `bson:"quantityInStock"`
	Image           string             `bson:"image"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

func (d *sweetDoc) toDomain() *domain.Sweet {
	return &domain.Sweet{
		ID:              d.ID.Hex(),
		Name:            d.Name,
		Category:        d.Category,
		Price:           d.Price,
		QuantityInStock: d.QuantityInStock,
		Image:           d.Image,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// parseID converts an external id into an ObjectID. Malformed ids are
// reported as not-found, matching the API contract.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrSweetNotFound
	}
	return oid, nil
}

// Create inserts a new sweet. A duplicate (name, category) pair is rejected
// by the unique compound index and translated to domain.ErrSweetExists.
func (r *SweetRepository) Create(ctx context.Context, s *domain.Sweet) (*domain.Sweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := sweetDoc{
		Name:            s.Name,
		Category:        s.Category,
		Price:           s.Price,
		QuantityInStock: s.QuantityInStock,
		Image:           s.Image,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSweetExists
		}
		return nil, err
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *SweetRepository) FindByID(ctx context.Context, id string) (*domain.Sweet, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc sweetDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSweetNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *SweetRepository) ExistsByNameCategory(ctx context.Context, name, category string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"name": name, "category": category}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SweetRepository) FindAll(ctx context.Context) ([]*domain.Sweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur)
}

// Search applies the filter as a disjunction: case-insensitive substring on
// name or category, plus exact price equality when present.
func (r *SweetRepository) Search(ctx context.Context, filter ports.SearchFilter) ([]*domain.Sweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Text), Options: "i"}
	or := bson.A{
		bson.M{"name": pattern},
		bson.M{"category": pattern},
	}
	if filter.Price != nil {
		or = append(or, bson.M{"price": *filter.Price})
	}

	cur, err := r.col.Find(ctx, bson.M{"$or": or})
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur)
}

func decodeAll(ctx context.Context, cur *mongo.Cursor) ([]*domain.Sweet, error) {
	defer cur.Close(ctx)

	var sweets []*domain.Sweet
	for cur.Next(ctx) {
		var doc sweetDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		sweets = append(sweets, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return sweets, nil
}

// Update applies the non-nil fields in a single findOneAndUpdate and returns
// the post-update document. A rename that collides with an existing
// (name, category) pair trips the unique index and maps to ErrSweetExists.
func (r *SweetRepository) Update(ctx context.Context, id string, fields ports.UpdateFields) (*domain.Sweet, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updatedAt": time.Now().UTC()}
	if fields.Name != nil {
		set["name"] = *fields.Name
	}
	if fields.Category != nil {
		set["category"] = *fields.Category
	}
	if fields.Price != nil {
		set["price"] = *fields.Price
	}
	if fields.Quantity != nil {
		set["quantityInStock"] = *fields.Quantity
	}
	if fields.Image != nil {
		set["image"] = *fields.Image
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc sweetDoc
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSweetNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSweetExists
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *SweetRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrSweetNotFound
	}
	return nil
}

// AdjustStock adds delta to quantityInStock in one conditional update. For a
// decrement the filter requires sufficient stock, so two racing purchases can
// never drive the counter negative. ErrSweetNotFound covers both a missing
// document and a failed stock condition; callers disambiguate via FindByID.
func (r *SweetRepository) AdjustStock(ctx context.Context, id string, delta int) (*domain.Sweet, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid}
	if delta < 0 {
		filter["quantityInStock"] = bson.M{"$gte": -delta}
	}

	update := bson.M{
		"$inc": bson.M{"quantityInStock": delta},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc sweetDoc
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSweetNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the unique compound index backing the
// (name, category) invariant. The pre-insert check in the service is only a
// fast path; this index is the final authority.
func (r *SweetRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}, {Key: "category", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
