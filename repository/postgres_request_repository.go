package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog/log"

	"merch-intake/models"
)

// PostgresRequestRepository handles database operations for merch requests
type PostgresRequestRepository struct {
	db      *sql.DB
	typeMap *pgtype.Map
}

// NewPostgresRequestRepository creates a repository over an open pgx-backed *sql.DB
func NewPostgresRequestRepository(db *sql.DB) *PostgresRequestRepository {
	return &PostgresRequestRepository{db: db, typeMap: pgtype.NewMap()}
}

// Ensure PostgresRequestRepository implements MerchRequestRepositoryInterface
var _ MerchRequestRepositoryInterface = (*PostgresRequestRepository)(nil)

const requestColumns = `
	id, zip_code, deadline, budget, products, colorways, custom_colors,
	print_method, print_locations, files, contact_name, contact_email,
	contact_phone, company, message, created_at`

// Create inserts a new merch request; id and created_at are assigned by the database
func (r *PostgresRequestRepository) Create(ctx context.Context, req *models.CreateMerchRequestRequest) (*models.MerchRequest, error) {
	log.Info().Str("zip", req.ZipCode).Int("products", len(req.Products)).Msg("📦 Create: inserting merch request")

	products, err := json.Marshal(req.Products)
	if err != nil {
		return nil, fmt.Errorf("failed to encode products: %w", err)
	}
	customColors, err := nullableJSON(req.CustomColors, req.CustomColors == nil)
	if err != nil {
		return nil, fmt.Errorf("failed to encode custom colors: %w", err)
	}
	files, err := nullableJSON(req.Files, req.Files == nil)
	if err != nil {
		return nil, fmt.Errorf("failed to encode files: %w", err)
	}

	query := `
		INSERT INTO merch_requests (
			zip_code, deadline, budget, products, colorways, custom_colors,
			print_method, print_locations, files, contact_name, contact_email,
			contact_phone, company, message
		)
		VALUES ($1, $2, $3, $4::jsonb, $5, $6::jsonb, $7, $8, $9::jsonb, $10, $11, $12, $13, $14)
		RETURNING` + requestColumns

	row := r.db.QueryRowContext(ctx, query,
		req.ZipCode,
		nullString(req.Deadline),
		nullString(req.Budget),
		products,
		nullableArray(req.Colorways),
		customColors,
		nullString(req.PrintMethod),
		nullableArray(req.PrintLocations),
		files,
		req.ContactName,
		req.ContactEmail,
		nullString(req.ContactPhone),
		nullString(req.Company),
		nullString(req.Message),
	)

	record, err := r.scanRequest(row)
	if err != nil {
		log.Error().Err(err).Msg("❌ Create: error inserting merch request")
		return nil, fmt.Errorf("failed to create merch request: %w", err)
	}

	log.Info().Str("id", record.ID).Msg("✅ Create: merch request stored")
	return record, nil
}

// GetByID fetches a merch request
func (r *PostgresRequestRepository) GetByID(ctx context.Context, id string) (*models.MerchRequest, error) {
	query := `SELECT` + requestColumns + ` FROM merch_requests WHERE id = $1`

	record, err := r.scanRequest(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch merch request: %w", err)
	}
	return record, nil
}

// AddFiles appends files to the jsonb files column in a single statement,
// so concurrent uploads to the same request never drop entries.
func (r *PostgresRequestRepository) AddFiles(ctx context.Context, id string, files []models.UploadedFile) (*models.MerchRequest, error) {
	log.Info().Str("id", id).Int("files", len(files)).Msg("📎 AddFiles: appending files")

	if files == nil {
		files = []models.UploadedFile{}
	}
	encoded, err := json.Marshal(files)
	if err != nil {
		return nil, fmt.Errorf("failed to encode files: %w", err)
	}

	query := `
		UPDATE merch_requests
		SET files = COALESCE(files, '[]'::jsonb) || $1::jsonb
		WHERE id = $2
		RETURNING` + requestColumns

	record, err := r.scanRequest(r.db.QueryRowContext(ctx, query, encoded, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().Str("id", id).Msg("❌ AddFiles: request not found")
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to add files: %w", err)
	}

	log.Info().Str("id", id).Int("total", len(record.Files)).Msg("✅ AddFiles: files appended")
	return record, nil
}

func (r *PostgresRequestRepository) scanRequest(row *sql.Row) (*models.MerchRequest, error) {
	var (
		record                                models.MerchRequest
		deadline, budget, printMethod         sql.NullString
		contactPhone, company, message        sql.NullString
		productsJSON, customColorsJSON, files []byte
	)

	err := row.Scan(
		&record.ID,
		&record.ZipCode,
		&deadline,
		&budget,
		&productsJSON,
		r.typeMap.SQLScanner(&record.Colorways),
		&customColorsJSON,
		&printMethod,
		r.typeMap.SQLScanner(&record.PrintLocations),
		&files,
		&record.ContactName,
		&record.ContactEmail,
		&contactPhone,
		&company,
		&message,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := unmarshalNullable(productsJSON, &record.Products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	if err := unmarshalNullable(customColorsJSON, &record.CustomColors); err != nil {
		return nil, fmt.Errorf("failed to decode custom colors: %w", err)
	}
	if err := unmarshalNullable(files, &record.Files); err != nil {
		return nil, fmt.Errorf("failed to decode files: %w", err)
	}

	record.Deadline = stringFromNull(deadline)
	record.Budget = stringFromNull(budget)
	record.PrintMethod = stringFromNull(printMethod)
	record.ContactPhone = stringFromNull(contactPhone)
	record.Company = stringFromNull(company)
	record.Message = stringFromNull(message)
	return &record, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringFromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

// nullableArray passes nil through as SQL NULL instead of an empty text[]
func nullableArray(s []string) interface{} {
	if s == nil {
		return nil
	}
	return s
}

func nullableJSON(v interface{}, isNull bool) (interface{}, error) {
	if isNull {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func unmarshalNullable(data []byte, dst interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dst)
}
