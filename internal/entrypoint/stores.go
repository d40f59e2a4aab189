package entrypoint

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/digital-library/internal/audit"
	"github.com/mrlokans/digital-library/internal/config"
	"github.com/mrlokans/digital-library/internal/database"
	auditRepo "github.com/mrlokans/digital-library/internal/database/audit"
	"github.com/mrlokans/digital-library/internal/database/books"
	"github.com/mrlokans/digital-library/internal/database/members"
	"github.com/mrlokans/digital-library/internal/database/staff"
	http_controllers "github.com/mrlokans/digital-library/internal/http"
	"github.com/mrlokans/digital-library/internal/mongodb"
)

const minIndexRetryInterval = time.Second

// Stores groups the repositories of the configured backend.
type Stores struct {
	Books   http_controllers.BookStore
	Members http_controllers.MemberStore
	Staff   http_controllers.StaffStore
	Audit   audit.Repository
	Pinger  http_controllers.Pinger

	close func(ctx context.Context) error
}

func (s *Stores) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// OpenStores connects to the backend selected by cfg.Database.Driver.
//
// With strict unset, an unreachable MongoDB server is logged and the
// stores are returned anyway: the driver keeps reconnecting, requests
// fail with the server selection error until it comes back, and the
// unique indexes are retried in the background. Member and staff writes
// are refused until those indexes exist. init-db sets strict so that it
// fails instead.
func OpenStores(ctx context.Context, cfg config.Database, logger *zap.Logger, strict bool) (*Stores, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return openSQLite(cfg, logger)
	case config.DriverMongo:
		return openMongo(ctx, cfg, logger, strict)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func openSQLite(cfg config.Database, logger *zap.Logger) (*Stores, error) {
	db, err := database.NewDatabase(cfg.Path, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to SQLite", zap.String("path", cfg.Path))

	return &Stores{
		Books:   books.NewRepository(db.DB),
		Members: members.NewRepository(db.DB),
		Staff:   staff.NewRepository(db.DB),
		Audit:   auditRepo.NewRepository(db.DB),
		Pinger:  db,
		close: func(context.Context) error {
			return db.Close()
		},
	}, nil
}

func openMongo(ctx context.Context, cfg config.Database, logger *zap.Logger, strict bool) (*Stores, error) {
	client, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.ConnectTimeout)
	if err != nil {
		return nil, err
	}

	gate := mongodb.NewIndexGate(client, logger)
	stores := &Stores{
		Books:   mongodb.NewBookRepository(client.Books()),
		Members: mongodb.NewMemberRepository(client.Members(), mongodb.WithIndexGate(gate)),
		Staff:   mongodb.NewStaffRepository(client.Staff(), mongodb.WithIndexGate(gate)),
		Audit:   mongodb.NewAuditRepository(client.AuditEvents()),
		Pinger:  client,
		close:   client.Close,
	}

	if err := prepareMongo(ctx, client, gate, cfg.ConnectTimeout); err != nil {
		if strict {
			_ = client.Close(ctx)
			return nil, err
		}
		logger.Error("MongoDB is not ready, serving anyway", zap.Error(err))
		logger.Warn("member and staff writes are rejected until the unique email indexes exist")
		stores.close = retryIndexes(gate, cfg.ConnectTimeout, client.Close)
		return stores, nil
	}
	logger.Info("connected to MongoDB", zap.String("database", cfg.MongoDatabase))
	return stores, nil
}

func prepareMongo(ctx context.Context, client *mongodb.Client, gate *mongodb.IndexGate, timeout time.Duration) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		return fmt.Errorf("mongodb is not reachable: %w", err)
	}

	indexCtx, cancelIndexes := context.WithTimeout(ctx, timeout)
	defer cancelIndexes()
	return gate.Ensure(indexCtx)
}

// retryIndexes keeps building the indexes in the background and returns a
// close func that stops the retries before calling closeStore.
func retryIndexes(gate *mongodb.IndexGate, interval time.Duration, closeStore func(context.Context) error) func(context.Context) error {
	if interval < minIndexRetryInterval {
		interval = minIndexRetryInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		gate.Run(ctx, interval)
	}()

	return func(closeCtx context.Context) error {
		cancel()
		<-done
		return closeStore(closeCtx)
	}
}
