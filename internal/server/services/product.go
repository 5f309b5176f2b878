package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/coursework/internal/common"
	"github.com/dmitrijs2005/coursework/internal/server/models"
	"github.com/dmitrijs2005/coursework/internal/server/repositories/repomanager"
)

// Column limits of the products table.
const (
	maxNameLength        = 200
	maxDescriptionLength = 1200
)

// ProductService lists, reads and adds products.
type ProductService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProductService(db *sql.DB, m repomanager.RepositoryManager) *ProductService {
	return &ProductService{db: db, repomanager: m}
}

// List returns every product ordered by id.
func (s *ProductService) List(ctx context.Context) ([]*models.Product, error) {
	return s.repomanager.Products(s.db).List(ctx)
}

// Get returns one product or common.ErrorNotFound.
func (s *ProductService) Get(ctx context.Context, id int64) (*models.Product, error) {
	return s.repomanager.Products(s.db).GetByID(ctx, id)
}

// Add creates a product. The name is trimmed and must not be empty
// afterwards; the description is stored as given. A duplicate name yields
// common.ErrorConflict.
func (s *ProductService) Add(ctx context.Context, name string, description *string, price float64) (*models.Product, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", common.ErrorValidation)
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, fmt.Errorf("%w: name longer than %d characters", common.ErrorValidation, maxNameLength)
	}
	if description != nil && utf8.RuneCountInString(*description) > maxDescriptionLength {
		return nil, fmt.Errorf("%w: description longer than %d characters", common.ErrorValidation, maxDescriptionLength)
	}

	p := &models.Product{Name: name, Description: description, Price: price}
	return s.repomanager.Products(s.db).Create(ctx, p)
}
