package checkout

import (
	"context"

	"readira/db"
	"readira/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCommitter writes order and subscription rows inside one Mongo
// transaction so a failure persists nothing.
type MongoCommitter struct{}

func NewMongoCommitter() *MongoCommitter { return &MongoCommitter{} }

func (mc *MongoCommitter) Commit(ctx context.Context, orders []models.Order, sub *models.Subscription) error {
	txnSession, err := db.Client.StartSession()
	if err != nil {
		return err
	}
	defer txnSession.EndSession(ctx)

	_, err = txnSession.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if len(orders) > 0 {
			docs := make([]interface{}, 0, len(orders))
			for _, o := range orders {
				docs = append(docs, o)
			}
			if _, err := db.OrderCollection.InsertMany(sc, docs); err != nil {
				return nil, err
			}
		}
		if sub != nil {
			if _, err := db.SubscriptionCollection.InsertOne(sc, sub); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}
