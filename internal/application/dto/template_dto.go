package dto

import (
	"time"

	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/entity"
)

// SaveTemplateRequest input to create or update a template. The config blocks
// reuse the entity types directly: they are already plain data with JSON tags.
type SaveTemplateRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	DocumentType string `json:"document_type" validate:"required,oneof=quote invoice purchase_order field_report"`
	IsDefault    bool   `json:"is_default"`

	LineItemsConfig *entity.LineItemsConfig `json:"line_items_config" validate:"required"`
	PageSettings    *entity.PageSettings    `json:"page_settings" validate:"required"`
	Header          *entity.HeaderConfig    `json:"header,omitempty"`
	Footer          *entity.FooterConfig    `json:"footer,omitempty"`
	FieldMappings   map[string]string       `json:"field_mappings,omitempty"`
}

// TemplateResponse template output.
type TemplateResponse struct {
	ID           string `json:"id"`
	CompanyID    string `json:"company_id"`
	Name         string `json:"name"`
	DocumentType string `json:"document_type"`
	IsDefault    bool   `json:"is_default"`

	LineItemsConfig *entity.LineItemsConfig `json:"line_items_config,omitempty"`
	PageSettings    *entity.PageSettings    `json:"page_settings,omitempty"`
	Header          *entity.HeaderConfig    `json:"header,omitempty"`
	Footer          *entity.FooterConfig    `json:"footer,omitempty"`
	FieldMappings   map[string]string       `json:"field_mappings,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
