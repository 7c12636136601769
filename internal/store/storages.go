package store

import (
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/logger"
)

// Storages aggregates all repository implementations over a single
// database connection.
type Storages struct {
	UserRepository            UserRepository
	GroupRepository           GroupRepository
	AccessLogRepository       AccessLogRepository
	DirectoryConfigRepository DirectoryConfigRepository
	DirectorySyncRepository   DirectorySyncRepository
}

// NewStorages wires every repository to the given database connection.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:            NewUserRepository(db, logger),
		GroupRepository:           NewGroupRepository(db, logger),
		AccessLogRepository:       NewAccessLogRepository(db, logger),
		DirectoryConfigRepository: NewDirectoryConfigRepository(db, logger),
		DirectorySyncRepository:   NewDirectorySyncRepository(db, logger),
	}
}
