package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/NJ-LDS/reading-service/internal/repositories"
)

// PostgreSQLRepository implements the aggregate Repository interface.
type PostgreSQLRepository struct {
	db *gorm.DB

	user       repositories.UserRepository
	material   repositories.MaterialRepository
	form       repositories.FormRepository
	assignment repositories.AssignmentRepository
	formConfig repositories.FormConfigRepository
	response   repositories.ResponseRepository
	log        repositories.LogRepository
}

// NewPostgreSQLRepository creates the repository aggregate over one gorm
// handle. The handle may itself be a transaction; all sub-repositories share
// it.
func NewPostgreSQLRepository(db *gorm.DB) repositories.Repository {
	return &PostgreSQLRepository{
		db:         db,
		user:       NewUserPostgreSQL(db),
		material:   NewMaterialPostgreSQL(db),
		form:       NewFormPostgreSQL(db),
		assignment: NewAssignmentPostgreSQL(db),
		formConfig: NewFormConfigPostgreSQL(db),
		response:   NewResponsePostgreSQL(db),
		log:        NewLogPostgreSQL(db),
	}
}

func (r *PostgreSQLRepository) User() repositories.UserRepository             { return r.user }
func (r *PostgreSQLRepository) Material() repositories.MaterialRepository     { return r.material }
func (r *PostgreSQLRepository) Form() repositories.FormRepository             { return r.form }
func (r *PostgreSQLRepository) Assignment() repositories.AssignmentRepository { return r.assignment }
func (r *PostgreSQLRepository) FormConfig() repositories.FormConfigRepository { return r.formConfig }
func (r *PostgreSQLRepository) Response() repositories.ResponseRepository     { return r.response }
func (r *PostgreSQLRepository) Log() repositories.LogRepository               { return r.log }

// Ping checks the health of the database connection.
func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
