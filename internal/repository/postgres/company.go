package postgres

import (
	"context"
	"database/sql"
	"errors"

	"teso/internal/domain"
	"teso/internal/repository"
)

// CompanyRepository is a PostgreSQL implementation of repository.CompanyRepository.
type CompanyRepository struct {
	q Querier
}

// NewCompanyRepository creates a new PostgreSQL company repository.
func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{q: db}
}

// NewCompanyRepositoryWithTx creates a company repository using a transaction.
func NewCompanyRepositoryWithTx(tx *sql.Tx) *CompanyRepository {
	return &CompanyRepository{q: tx}
}

// Create persists a new company.
func (r *CompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	query := `INSERT INTO companies (id, name, created_at) VALUES ($1, $2, $3)`

	_, err := r.q.ExecContext(ctx, query, company.ID, company.Name, company.CreatedAt)
	return err
}

// GetByName retrieves a company by its unique name.
func (r *CompanyRepository) GetByName(ctx context.Context, name string) (*domain.Company, error) {
	query := `SELECT id, name, created_at FROM companies WHERE name = $1`

	var company domain.Company
	err := r.q.QueryRowContext(ctx, query, name).Scan(&company.ID, &company.Name, &company.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &company, nil
}

// GetAll retrieves all companies.
func (r *CompanyRepository) GetAll(ctx context.Context) ([]*domain.Company, error) {
	query := `SELECT id, name, created_at FROM companies ORDER BY name`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []*domain.Company
	for rows.Next() {
		var company domain.Company
		if err := rows.Scan(&company.ID, &company.Name, &company.CreatedAt); err != nil {
			return nil, err
		}
		companies = append(companies, &company)
	}

	return companies, rows.Err()
}
