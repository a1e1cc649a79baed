package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/repository"
)

var _ repository.TemplateRepository = (*TemplateRepo)(nil)

// TemplateRepo implements TemplateRepository. The structured config blocks
// (line items, page settings, header, footer, field mappings) are stored as
// JSONB so the template editor can evolve without migrations.
type TemplateRepo struct {
	q Querier
}

// NewTemplateRepository builds the adapter. Pass a pool or tx (Querier).
func NewTemplateRepository(q Querier) *TemplateRepo {
	return &TemplateRepo{q: q}
}

const templateColumns = `
	id, company_id, name, document_type, is_default,
	line_items_config, page_settings, header_config, footer_config, field_mappings,
	created_at, updated_at`

// Create persists a new template.
func (r *TemplateRepo) Create(tpl *entity.UnifiedTemplate) error {
	if tpl.ID == "" {
		tpl.ID = uuid.New().String()
	}
	now := time.Now()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now

	cols, err := encodeTemplateConfigs(tpl)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO unified_templates (` + templateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(context.Background(), query,
		tpl.ID, tpl.CompanyID, tpl.Name, string(tpl.DocumentType), tpl.IsDefault,
		cols.lineItems, cols.pageSettings, cols.header, cols.footer, cols.fieldMappings,
		tpl.CreatedAt, tpl.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert template: %w", err)
	}
	return nil
}

// Update rewrites a template's name and config blocks.
func (r *TemplateRepo) Update(tpl *entity.UnifiedTemplate) error {
	tpl.UpdatedAt = time.Now()
	cols, err := encodeTemplateConfigs(tpl)
	if err != nil {
		return err
	}
	query := `
		UPDATE unified_templates
		SET name = $2, line_items_config = $3, page_settings = $4,
		    header_config = $5, footer_config = $6, field_mappings = $7, updated_at = $8
		WHERE id = $1`
	_, err = r.q.Exec(context.Background(), query,
		tpl.ID, tpl.Name,
		cols.lineItems, cols.pageSettings, cols.header, cols.footer, cols.fieldMappings,
		tpl.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	return nil
}

// GetByID returns the template, or nil when it does not exist.
func (r *TemplateRepo) GetByID(id string) (*entity.UnifiedTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM unified_templates WHERE id = $1`
	tpl, err := scanTemplate(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get template: %w", err)
	}
	return tpl, nil
}

// GetDefault returns the default template for the company and document type,
// or nil when none is flagged.
func (r *TemplateRepo) GetDefault(companyID string, docType entity.DocumentType) (*entity.UnifiedTemplate, error) {
	query := `SELECT ` + templateColumns + `
		FROM unified_templates
		WHERE company_id = $1 AND document_type = $2 AND is_default
		LIMIT 1`
	tpl, err := scanTemplate(r.q.QueryRow(context.Background(), query, companyID, string(docType)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get default template: %w", err)
	}
	return tpl, nil
}

// SetDefault flags one template as default, clearing the flag from the rest
// of the company's templates of that document type.
func (r *TemplateRepo) SetDefault(id, companyID string, docType entity.DocumentType) error {
	clear := `
		UPDATE unified_templates SET is_default = false, updated_at = $3
		WHERE company_id = $1 AND document_type = $2 AND is_default`
	now := time.Now()
	if _, err := r.q.Exec(context.Background(), clear, companyID, string(docType), now); err != nil {
		return fmt.Errorf("clear default template: %w", err)
	}
	set := `
		UPDATE unified_templates SET is_default = true, updated_at = $4
		WHERE id = $1 AND company_id = $2 AND document_type = $3`
	tag, err := r.q.Exec(context.Background(), set, id, companyID, string(docType), now)
	if err != nil {
		return fmt.Errorf("set default template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set default template: no matching template")
	}
	return nil
}

// ListByCompany lists templates for a company, optionally filtered by type.
func (r *TemplateRepo) ListByCompany(companyID string, docType entity.DocumentType) ([]*entity.UnifiedTemplate, error) {
	query := `SELECT ` + templateColumns + `
		FROM unified_templates
		WHERE company_id = $1 AND ($2 = '' OR document_type = $2)
		ORDER BY document_type, name`
	rows, err := r.q.Query(context.Background(), query, companyID, string(docType))
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()
	var list []*entity.UnifiedTemplate
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		list = append(list, tpl)
	}
	return list, rows.Err()
}

// Delete removes a template by ID.
func (r *TemplateRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM unified_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

type templateConfigColumns struct {
	lineItems     []byte
	pageSettings  []byte
	header        []byte
	footer        []byte
	fieldMappings []byte
}

func encodeTemplateConfigs(tpl *entity.UnifiedTemplate) (templateConfigColumns, error) {
	var cols templateConfigColumns
	var err error
	if cols.lineItems, err = marshalJSONB(tpl.LineItemsConfig, tpl.LineItemsConfig == nil); err != nil {
		return cols, err
	}
	if cols.pageSettings, err = marshalJSONB(tpl.PageSettings, tpl.PageSettings == nil); err != nil {
		return cols, err
	}
	if cols.header, err = marshalJSONB(tpl.Header, tpl.Header == nil); err != nil {
		return cols, err
	}
	if cols.footer, err = marshalJSONB(tpl.Footer, tpl.Footer == nil); err != nil {
		return cols, err
	}
	if cols.fieldMappings, err = marshalJSONB(tpl.FieldMappings, len(tpl.FieldMappings) == 0); err != nil {
		return cols, err
	}
	return cols, nil
}

func scanTemplate(row pgx.Row) (*entity.UnifiedTemplate, error) {
	var tpl entity.UnifiedTemplate
	var docType string
	var lineItems, pageSettings, header, footer, fieldMappings []byte

	err := row.Scan(
		&tpl.ID, &tpl.CompanyID, &tpl.Name, &docType, &tpl.IsDefault,
		&lineItems, &pageSettings, &header, &footer, &fieldMappings,
		&tpl.CreatedAt, &tpl.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	tpl.DocumentType = entity.DocumentType(docType)

	if len(lineItems) > 0 {
		tpl.LineItemsConfig = &entity.LineItemsConfig{}
		if err := json.Unmarshal(lineItems, tpl.LineItemsConfig); err != nil {
			return nil, fmt.Errorf("decode line_items_config: %w", err)
		}
	}
	if len(pageSettings) > 0 {
		tpl.PageSettings = &entity.PageSettings{}
		if err := json.Unmarshal(pageSettings, tpl.PageSettings); err != nil {
			return nil, fmt.Errorf("decode page_settings: %w", err)
		}
	}
	if len(header) > 0 {
		tpl.Header = &entity.HeaderConfig{}
		if err := json.Unmarshal(header, tpl.Header); err != nil {
			return nil, fmt.Errorf("decode header_config: %w", err)
		}
	}
	if len(footer) > 0 {
		tpl.Footer = &entity.FooterConfig{}
		if err := json.Unmarshal(footer, tpl.Footer); err != nil {
			return nil, fmt.Errorf("decode footer_config: %w", err)
		}
	}
	if len(fieldMappings) > 0 {
		if err := json.Unmarshal(fieldMappings, &tpl.FieldMappings); err != nil {
			return nil, fmt.Errorf("decode field_mappings: %w", err)
		}
	}
	return &tpl, nil
}
