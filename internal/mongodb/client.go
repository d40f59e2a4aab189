// Package mongodb stores library records in MongoDB.
//
// Each record kind lives in its own collection. Identifiers are generated
// by the driver as ObjectIDs and exposed to callers as 24 character hex
// strings; an identifier that is not valid hex is reported as
// entities.ErrNotFound, exactly like an unknown one.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	BooksCollection       = "books"
	MembersCollection     = "members"
	StaffCollection       = "staff"
	AuditEventsCollection = "audit_events"
)

type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect creates a client for uri and selects database. The driver
// connects lazily, so a reachable server is only confirmed by Ping.
func Connect(ctx context.Context, uri, database string, timeout time.Duration) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	return &Client{client: client, db: client.Database(database)}, nil
}

func (c *Client) Books() *mongo.Collection       { return c.db.Collection(BooksCollection) }
func (c *Client) Members() *mongo.Collection     { return c.db.Collection(MembersCollection) }
func (c *Client) Staff() *mongo.Collection       { return c.db.Collection(StaffCollection) }
func (c *Client) AuditEvents() *mongo.Collection { return c.db.Collection(AuditEventsCollection) }

// EnsureIndexes creates the unique email indexes and the audit lookup indexes.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	uniqueEmail := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	}

	if _, err := c.Members().Indexes().CreateOne(ctx, uniqueEmail); err != nil {
		return fmt.Errorf("failed to create members index: %w", err)
	}
	if _, err := c.Staff().Indexes().CreateOne(ctx, uniqueEmail); err != nil {
		return fmt.Errorf("failed to create staff index: %w", err)
	}

	_, err := c.AuditEvents().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "entityType", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create audit_events indexes: %w", err)
	}
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
