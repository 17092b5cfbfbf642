package repository

import (
	"github.com/runwayrivets/pictopost-api/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User    UserRepository
	Listing ListingRepository
	AIUsage AIUsageRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Listing: NewListingRepository(db),
		AIUsage: NewAIUsageRepository(db),
	}
}
