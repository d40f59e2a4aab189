// Package database provides the SQLite data access layer used when
// DATABASE_DRIVER=sqlite.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup, migrations, error translation
//	├── books/           # Book CRUD operations
//	├── members/         # Member CRUD operations
//	├── staff/           # Staff CRUD operations
//	└── audit/           # Audit event persistence and retention
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./library.db", "warn")
//	booksRepo := books.NewRepository(db.DB)
//	book, err := booksRepo.GetBookByID(ctx, id)
//
// Every repository returns entities.ErrNotFound for a missing identifier and
// wraps entities.ErrDuplicateKey when a unique index rejects a write, so the
// HTTP layer never sees gorm errors directly. The MongoDB implementations in
// internal/mongodb follow the same contract.
//
// # Adding a New Record Kind
//
//  1. Add the entity with gorm and bson tags to internal/entities
//  2. Register it in Database.Migrate
//  3. Create internal/database/<kind>/repository.go with NewRepository(db *gorm.DB)
//  4. Add compile-time interface checks in internal/interfaces
package database
