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

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implements DocumentRepository (usable with pool or tx).
// Party/location snapshots and the shipping address live in JSONB columns:
// they are immutable copies, never joined against.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository builds the adapter. Pass a pool or tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `
	id, company_id, doc_type, number, date, status,
	notes, terms_conditions,
	subtotal, tax_amount, discount_amount, total,
	title, valid_until,
	due_date, payment_terms, amount_paid, balance_due,
	delivery_date, shipping_address,
	site_location, technician_name, service_date, findings, recommendations,
	customer, supplier, location, source_service_order, source_project,
	created_at, updated_at`

// Create persists the document and its line items. Run inside a transaction
// (via TxRunner) so a failing item insert rolls back the header.
func (r *DocumentRepo) Create(doc *entity.DocumentData, items []*entity.LineItem) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	now := time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	shipping, err := marshalJSONB(doc.ShippingAddress, doc.ShippingAddress.IsZero())
	if err != nil {
		return err
	}
	customer, err := marshalJSONB(doc.Customer, doc.Customer == nil)
	if err != nil {
		return err
	}
	supplier, err := marshalJSONB(doc.Supplier, doc.Supplier == nil)
	if err != nil {
		return err
	}
	location, err := marshalJSONB(doc.Location, doc.Location == nil)
	if err != nil {
		return err
	}
	sourceSO, err := marshalJSONB(doc.SourceServiceOrder, doc.SourceServiceOrder == nil)
	if err != nil {
		return err
	}
	sourceProject, err := marshalJSONB(doc.SourceProject, doc.SourceProject == nil)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32)`
	_, err = r.q.Exec(context.Background(), query,
		doc.ID, doc.CompanyID, string(doc.Type), doc.Number, doc.Date, doc.Status,
		nullIfEmpty(doc.Notes), nullIfEmpty(doc.TermsConditions),
		doc.Subtotal, doc.TaxAmount, doc.DiscountAmount, doc.Total,
		nullIfEmpty(doc.Title), doc.ValidUntil,
		doc.DueDate, nullIfEmpty(doc.PaymentTerms), doc.AmountPaid, doc.BalanceDue,
		doc.DeliveryDate, shipping,
		nullIfEmpty(doc.SiteLocation), nullIfEmpty(doc.TechnicianName), doc.ServiceDate,
		nullIfEmpty(doc.Findings), nullIfEmpty(doc.Recommendations),
		customer, supplier, location, sourceSO, sourceProject,
		doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("document number already exists: %w", err)
		}
		return fmt.Errorf("insert document: %w", err)
	}

	for _, item := range items {
		if err := r.createLineItem(doc.ID, item); err != nil {
			return err
		}
	}
	return nil
}

func (r *DocumentRepo) createLineItem(documentID string, item *entity.LineItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.DocumentID = documentID
	query := `
		INSERT INTO document_line_items (id, document_id, parent_line_item_id, description, quantity, unit_price, line_total, cost_price, margin_percentage, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.DocumentID, nullIfEmpty(item.ParentLineItemID),
		item.Description, item.Quantity, item.UnitPrice, item.LineTotal,
		item.CostPrice, item.MarginPercentage, item.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("insert line item: %w", err)
	}
	return nil
}

// GetByID returns the full document, or nil when it does not exist.
func (r *DocumentRepo) GetByID(id string) (*entity.DocumentData, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	doc, err := scanDocument(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// GetLineItems returns all line items of a document ordered by sort_order.
func (r *DocumentRepo) GetLineItems(documentID string) ([]*entity.LineItem, error) {
	query := `
		SELECT id, document_id, COALESCE(parent_line_item_id, ''), description, quantity, unit_price, line_total, cost_price, margin_percentage, sort_order
		FROM document_line_items WHERE document_id = $1 ORDER BY sort_order, id`
	rows, err := r.q.Query(context.Background(), query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list line items: %w", err)
	}
	defer rows.Close()
	var list []*entity.LineItem
	for rows.Next() {
		var it entity.LineItem
		if err := rows.Scan(&it.ID, &it.DocumentID, &it.ParentLineItemID, &it.Description,
			&it.Quantity, &it.UnitPrice, &it.LineTotal, &it.CostPrice, &it.MarginPercentage, &it.SortOrder); err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListByCompany lists documents for a company, optionally filtered by type,
// newest first.
func (r *DocumentRepo) ListByCompany(companyID string, docType entity.DocumentType, limit, offset int) ([]*entity.DocumentData, error) {
	query := `SELECT ` + documentColumns + `
		FROM documents
		WHERE company_id = $1 AND ($2 = '' OR doc_type = $2)
		ORDER BY date DESC, created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, string(docType), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.DocumentData
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, doc)
	}
	return list, rows.Err()
}

// Update rewrites the mutable header fields of a document. Line items are
// replaced wholesale by the use case, not patched here.
func (r *DocumentRepo) Update(doc *entity.DocumentData) error {
	doc.UpdatedAt = time.Now()
	query := `
		UPDATE documents
		SET status = $2, notes = $3, terms_conditions = $4,
		    subtotal = $5, tax_amount = $6, discount_amount = $7, total = $8,
		    updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		doc.ID, doc.Status, nullIfEmpty(doc.Notes), nullIfEmpty(doc.TermsConditions),
		doc.Subtotal, doc.TaxAmount, doc.DiscountAmount, doc.Total, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}

// Delete removes a document; line items cascade via FK.
func (r *DocumentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// scanDocument reads one row with documentColumns order into an entity.
func scanDocument(row pgx.Row) (*entity.DocumentData, error) {
	var doc entity.DocumentData
	var docType string
	var notes, terms, title, paymentTerms, siteLocation, technicianName, findings, recommendations *string
	var shipping, customer, supplier, location, sourceSO, sourceProject []byte

	err := row.Scan(
		&doc.ID, &doc.CompanyID, &docType, &doc.Number, &doc.Date, &doc.Status,
		&notes, &terms,
		&doc.Subtotal, &doc.TaxAmount, &doc.DiscountAmount, &doc.Total,
		&title, &doc.ValidUntil,
		&doc.DueDate, &paymentTerms, &doc.AmountPaid, &doc.BalanceDue,
		&doc.DeliveryDate, &shipping,
		&siteLocation, &technicianName, &doc.ServiceDate, &findings, &recommendations,
		&customer, &supplier, &location, &sourceSO, &sourceProject,
		&doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	doc.Type = entity.DocumentType(docType)
	doc.Notes = derefStr(notes)
	doc.TermsConditions = derefStr(terms)
	doc.Title = derefStr(title)
	doc.PaymentTerms = derefStr(paymentTerms)
	doc.SiteLocation = derefStr(siteLocation)
	doc.TechnicianName = derefStr(technicianName)
	doc.Findings = derefStr(findings)
	doc.Recommendations = derefStr(recommendations)

	if err := unmarshalJSONB(shipping, &doc.ShippingAddress); err != nil {
		return nil, fmt.Errorf("decode shipping_address: %w", err)
	}
	if doc.Customer, err = decodeParty(customer); err != nil {
		return nil, fmt.Errorf("decode customer: %w", err)
	}
	if doc.Supplier, err = decodeParty(supplier); err != nil {
		return nil, fmt.Errorf("decode supplier: %w", err)
	}
	if len(location) > 0 {
		var loc entity.LocationSnapshot
		if err := json.Unmarshal(location, &loc); err != nil {
			return nil, fmt.Errorf("decode location: %w", err)
		}
		doc.Location = &loc
	}
	if doc.SourceServiceOrder, err = decodeSourceRef(sourceSO); err != nil {
		return nil, fmt.Errorf("decode source_service_order: %w", err)
	}
	if doc.SourceProject, err = decodeSourceRef(sourceProject); err != nil {
		return nil, fmt.Errorf("decode source_project: %w", err)
	}
	return &doc, nil
}

func decodeParty(raw []byte) (*entity.PartySnapshot, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var p entity.PartySnapshot
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func decodeSourceRef(raw []byte) (*entity.SourceRef, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var ref entity.SourceRef
	if err := json.Unmarshal(raw, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

// marshalJSONB encodes v for a JSONB column, storing NULL for absent values.
func marshalJSONB(v any, absent bool) ([]byte, error) {
	if absent {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode jsonb: %w", err)
	}
	return raw, nil
}

func unmarshalJSONB(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func derefStr(p *string) string {
	if p != nil {
		return *p
	}
	return ""
}
