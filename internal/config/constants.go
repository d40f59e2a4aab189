package config

// Default locations of the backing stores
const (
	// DefaultDatabasePath is the SQLite file used when DATABASE_DRIVER=sqlite
	DefaultDatabasePath = "./digital-library.db"

	// DefaultMongoURI and DefaultMongoDatabase match the original deployment
	DefaultMongoURI      = "mongodb://localhost:27017"
	DefaultMongoDatabase = "digitalLibrary"
)
