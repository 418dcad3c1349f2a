package repository

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/user/alternovafilms/internal/model"
)

// InitDB opens the database through lib/pq, wraps it with GORM and runs the
// schema migration. The composite unique indexes on the engagement tables are
// created here, so duplicate (user, film) rows are rejected by the storage
// layer itself.
func InitDB(databaseURL string) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("init gorm: %w", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Genre{},
		&model.FilmType{},
		&model.Film{},
		&model.UserFilmVisualization{},
		&model.UserFilmRating{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return db, nil
}

// Repositories bundles every repository around a shared GORM handle.
type Repositories struct {
	DB       *gorm.DB
	User     *UserRepository
	Film     *FilmRepository
	Genre    *GenreRepository
	FilmType *FilmTypeRepository
}

// NewRepositories creates the repository bundle.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:       db,
		User:     NewUserRepository(db),
		Film:     NewFilmRepository(db),
		Genre:    NewGenreRepository(db),
		FilmType: NewFilmTypeRepository(db),
	}
}
