// Package catalog gives read-only access to reading materials and
// subscription plans by primary key. Cart, checkout and plan selection all go
// through here so a deleted or disabled record degrades to ErrNotFound
// instead of leaking partial data.
package catalog

import (
	"context"
	"errors"

	"readira/db"
	"readira/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("not found")

type Source interface {
	Material(ctx context.Context, materialID string) (models.ReadingMaterial, error)
	Plan(ctx context.Context, planID string) (models.SubscriptionPlan, error)
}

// Mongo reads the live catalog collections.
type Mongo struct{}

func NewMongo() *Mongo { return &Mongo{} }

func (m *Mongo) Material(ctx context.Context, materialID string) (models.ReadingMaterial, error) {
	var material models.ReadingMaterial
	err := db.MaterialsCollection.FindOne(ctx, bson.M{"materialid": materialID}).Decode(&material)
	if err == mongo.ErrNoDocuments {
		return models.ReadingMaterial{}, ErrNotFound
	}
	if err != nil {
		return models.ReadingMaterial{}, err
	}
	if !material.Enabled {
		return models.ReadingMaterial{}, ErrNotFound
	}
	return material, nil
}

func (m *Mongo) Plan(ctx context.Context, planID string) (models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := db.PlansCollection.FindOne(ctx, bson.M{"planid": planID}).Decode(&plan)
	if err == mongo.ErrNoDocuments {
		return models.SubscriptionPlan{}, ErrNotFound
	}
	if err != nil {
		return models.SubscriptionPlan{}, err
	}
	return plan, nil
}

// Memory is an in-process Source for tests.
type Memory struct {
	Materials map[string]models.ReadingMaterial
	Plans     map[string]models.SubscriptionPlan
}

func NewMemory() *Memory {
	return &Memory{
		Materials: make(map[string]models.ReadingMaterial),
		Plans:     make(map[string]models.SubscriptionPlan),
	}
}

func (m *Memory) Material(ctx context.Context, materialID string) (models.ReadingMaterial, error) {
	material, ok := m.Materials[materialID]
	if !ok || !material.Enabled {
		return models.ReadingMaterial{}, ErrNotFound
	}
	return material, nil
}

func (m *Memory) Plan(ctx context.Context, planID string) (models.SubscriptionPlan, error) {
	plan, ok := m.Plans[planID]
	if !ok {
		return models.SubscriptionPlan{}, ErrNotFound
	}
	return plan, nil
}
