package repository

import (
	"github.com/nutriacai/wellness-api/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User       UserRepository
	Profile    ProfileRepository
	Completion CompletionRepository
	Goal       GoalRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Profile:    NewProfileRepository(db),
		Completion: NewCompletionRepository(db),
		Goal:       NewGoalRepository(db),
	}
}
