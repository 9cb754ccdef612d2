package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"student-groups/config"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq" // драйвер PostgreSQL
	"gorm.io/gorm"
)

// Код ошибки PostgreSQL unique_violation
const uniqueViolation = "23505"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS groups (
        id UUID PRIMARY KEY,
        name VARCHAR(100) NOT NULL,
        group_number VARCHAR(50) NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS students (
        id UUID PRIMARY KEY,
        name VARCHAR(100) NOT NULL,
        student_number VARCHAR(50) NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS group_students (
        id UUID PRIMARY KEY,
        group_id UUID NOT NULL REFERENCES groups(id),
        student_id UUID NOT NULL REFERENCES students(id),
        UNIQUE (group_id, student_id)
    )`,
	`CREATE INDEX IF NOT EXISTS idx_group_students_student_id ON group_students(student_id)`,
}

// InitDB открывает соединение sqlx поверх lib/pq и создает таблицы
func InitDB(cfg *config.Config) (*sqlx.DB, error) {
	// Сначала используем стандартный database/sql
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Затем оборачиваем в sqlx
	dbx := sqlx.NewDb(db, "postgres")

	if err := dbx.Ping(); err != nil {
		dbx.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	if err := CreateSchema(dbx); err != nil {
		dbx.Close()
		return nil, fmt.Errorf("error creating tables: %w", err)
	}

	log.Println("✅ Successfully connected to PostgreSQL (sqlx)!")
	return dbx, nil
}

// CreateSchema создает таблицы groups, students и group_students, если их нет
func CreateSchema(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("error executing schema statement: %w", err)
		}
	}

	log.Println("✅ Tables verified (groups, students, group_students)")
	return nil
}

// IsDuplicateKey сообщает, что запись с таким ключом уже существует
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}
