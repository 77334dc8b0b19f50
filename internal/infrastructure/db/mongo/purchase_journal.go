package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thumbtack/onlineshop/internal/core/domain"
)

const collectionPurchases = "purchases"

type lineDocument struct {
	ProductID int64  `bson:"product_id"`
	Name      string `bson:"name"`
	Price     int    `bson:"price"`
	Count     int    `bson:"count"`
}

type purchaseDocument struct {
	AccountID   int64          `bson:"account_id"`
	Source      string         `bson:"source"`
	Lines       []lineDocument `bson:"lines"`
	Total       int            `bson:"total"`
	PurchasedAt time.Time      `bson:"purchased_at"`
}

// PurchaseJournal is the audit trail of committed purchases.
type PurchaseJournal struct {
	col *mongo.Collection
}

func NewPurchaseJournal(db *mongo.Database) *PurchaseJournal {
	return &PurchaseJournal{col: db.Collection(collectionPurchases)}
}

// Append inserts one purchase document.
func (j *PurchaseJournal) Append(ctx context.Context, p domain.Purchase) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := j.col.InsertOne(ctx, toDocument(p)); err != nil {
		return fmt.Errorf("append purchase: %w", err)
	}
	return nil
}

// History returns the most recent purchases of an account, newest first.
func (j *PurchaseJournal) History(ctx context.Context, accountID int64, limit int64) ([]domain.Purchase, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "purchased_at", Value: -1}}).SetLimit(limit)
	cur, err := j.col.Find(ctx, bson.M{"account_id": accountID}, opts)
	if err != nil {
		return nil, fmt.Errorf("purchase history: %w", err)
	}
	defer cur.Close(ctx)

	var docs []purchaseDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode purchase history: %w", err)
	}

	out := make([]domain.Purchase, 0, len(docs))
	for _, d := range docs {
		out = append(out, fromDocument(d))
	}
	return out, nil
}

// Clear drops every journal entry.
func (j *PurchaseJournal) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := j.col.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear purchases: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes the journal is queried by.
func (j *PurchaseJournal) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "account_id", Value: 1}, {Key: "purchased_at", Value: -1}}},
	}

	_, err := j.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func toDocument(p domain.Purchase) purchaseDocument {
	lines := make([]lineDocument, 0, len(p.Lines))
	for _, l := range p.Lines {
		lines = append(lines, lineDocument{ProductID: l.ProductID, Name: l.Name, Price: l.Price, Count: l.Count})
	}
	return purchaseDocument{
		AccountID:   p.AccountID,
		Source:      string(p.Source),
		Lines:       lines,
		Total:       p.Total,
		PurchasedAt: p.PurchasedAt.UTC(),
	}
}

func fromDocument(d purchaseDocument) domain.Purchase {
	lines := make([]domain.OrderLine, 0, len(d.Lines))
	for _, l := range d.Lines {
		lines = append(lines, domain.OrderLine{ProductID: l.ProductID, Name: l.Name, Price: l.Price, Count: l.Count})
	}
	return domain.Purchase{
		AccountID:   d.AccountID,
		Source:      domain.OrderSource(d.Source),
		Lines:       lines,
		Total:       d.Total,
		PurchasedAt: d.PurchasedAt,
	}
}
