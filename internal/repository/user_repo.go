package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"buddy/internal/database"
	"buddy/internal/models"
)

// UserRepository handles database operations for parents and children
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateParent creates a new parent account
func (r *UserRepository) CreateParent(email, username, passwordHash, firstName, lastName string) (*models.Parent, error) {
	parent := &models.Parent{
		ParentID:     uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		CreatedAt:    time.Now().UTC(),
	}

	query := `
		INSERT INTO parents (parent_id, email, username, password_hash, first_name, last_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		parent.ParentID, parent.Email, parent.Username, parent.PasswordHash,
		parent.FirstName, parent.LastName, parent.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create parent: %w", err)
	}

	return parent, nil
}

// GetParentByID retrieves a parent by ID
func (r *UserRepository) GetParentByID(parentID string) (*models.Parent, error) {
	query := `
		SELECT parent_id, email, username, password_hash, first_name, last_name, created_at
		FROM parents WHERE parent_id = ?
	`
	return r.scanParent(r.db.QueryRow(query, parentID))
}

// GetParentByEmail retrieves a parent by email
func (r *UserRepository) GetParentByEmail(email string) (*models.Parent, error) {
	query := `
		SELECT parent_id, email, username, password_hash, first_name, last_name, created_at
		FROM parents WHERE email = ?
	`
	return r.scanParent(r.db.QueryRow(query, email))
}

// GetParentByUsername retrieves a parent by username
func (r *UserRepository) GetParentByUsername(username string) (*models.Parent, error) {
	query := `
		SELECT parent_id, email, username, password_hash, first_name, last_name, created_at
		FROM parents WHERE username = ?
	`
	return r.scanParent(r.db.QueryRow(query, username))
}

func (r *UserRepository) scanParent(row *sql.Row) (*models.Parent, error) {
	parent := &models.Parent{}
	err := row.Scan(
		&parent.ParentID,
		&parent.Email,
		&parent.Username,
		&parent.PasswordHash,
		&parent.FirstName,
		&parent.LastName,
		&parent.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get parent: %w", err)
	}
	return parent, nil
}

// CreateChild creates a new child account under a parent
func (r *UserRepository) CreateChild(child *models.Child) (*models.Child, error) {
	child.ChildID = uuid.NewString()
	child.CreatedAt = time.Now().UTC()
	if child.Status == "" {
		child.Status = models.ChildActive
	}

	query := `
		INSERT INTO children (child_id, parent_id, first_name, last_name, birth_date, nickname, username, password_hash, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		child.ChildID, child.ParentID, child.FirstName, child.LastName,
		child.BirthDate, child.Nickname, child.Username, child.PasswordHash,
		child.Status, child.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create child: %w", err)
	}

	return child, nil
}

// GetChildByID retrieves a child by ID
func (r *UserRepository) GetChildByID(childID string) (*models.Child, error) {
	query := `
		SELECT child_id, parent_id, first_name, last_name, birth_date, nickname, username, password_hash, status, created_at
		FROM children WHERE child_id = ?
	`
	return r.scanChild(r.db.QueryRow(query, childID))
}

// GetChildByUsername retrieves a child by username
func (r *UserRepository) GetChildByUsername(username string) (*models.Child, error) {
	query := `
		SELECT child_id, parent_id, first_name, last_name, birth_date, nickname, username, password_hash, status, created_at
		FROM children WHERE username = ?
	`
	return r.scanChild(r.db.QueryRow(query, username))
}

func (r *UserRepository) scanChild(row *sql.Row) (*models.Child, error) {
	child := &models.Child{}
	err := row.Scan(
		&child.ChildID,
		&child.ParentID,
		&child.FirstName,
		&child.LastName,
		&child.BirthDate,
		&child.Nickname,
		&child.Username,
		&child.PasswordHash,
		&child.Status,
		&child.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	return child, nil
}

// GetParentChildren retrieves all children of a parent
func (r *UserRepository) GetParentChildren(parentID string) ([]models.Child, error) {
	query := `
		SELECT child_id, parent_id, first_name, last_name, birth_date, nickname, username, password_hash, status, created_at
		FROM children
		WHERE parent_id = ?
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(query, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query children: %w", err)
	}
	defer rows.Close()

	var children []models.Child
	for rows.Next() {
		var child models.Child
		if err := rows.Scan(
			&child.ChildID,
			&child.ParentID,
			&child.FirstName,
			&child.LastName,
			&child.BirthDate,
			&child.Nickname,
			&child.Username,
			&child.PasswordHash,
			&child.Status,
			&child.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan child: %w", err)
		}
		children = append(children, child)
	}

	return children, rows.Err()
}

// UpdateChildStatus sets a child's status
func (r *UserRepository) UpdateChildStatus(childID string, status models.ChildStatus) error {
	query := "UPDATE children SET status = ? WHERE child_id = ?"
	result, err := r.db.Exec(query, status, childID)
	if err != nil {
		return fmt.Errorf("failed to update child status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
