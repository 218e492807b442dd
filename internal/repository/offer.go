package repository

import (
	"context"
	"strings"

	"gigmarket/internal/models"
	"gigmarket/internal/query"

	"gorm.io/gorm"
)

// Correlated subqueries projecting the derived per-offer minimums. Computed
// in the store so min_price ordering and filtering happen before pagination,
// never by loading the collection into memory.
const (
	minPriceExpr    = "(SELECT MIN(price) FROM offer_details WHERE offer_details.offer_id = offers.id)"
	minDeliveryExpr = "(SELECT MIN(delivery_time_in_days) FROM offer_details WHERE offer_details.offer_id = offers.id)"
)

// OfferRepository defines the interface for offer data operations
type OfferRepository interface {
	Create(ctx context.Context, offer *models.Offer) error
	GetByID(ctx context.Context, id uint) (*models.Offer, error)
	List(ctx context.Context, params *query.OfferListParams) ([]*models.Offer, int64, error)
	Save(ctx context.Context, offer *models.Offer) error
	SaveDetail(ctx context.Context, detail *models.OfferDetail) error
	Delete(ctx context.Context, id uint) error
	GetDetailByID(ctx context.Context, id uint) (*models.OfferDetail, error)
	DetailIDs(ctx context.Context, offerID uint) ([]uint, error)
}

// offerRepository implements OfferRepository
type offerRepository struct {
	db *gorm.DB
}

// NewOfferRepository creates a new offer repository
func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &offerRepository{db: db}
}

// Create inserts the offer together with its detail rows in one transaction.
// GORM cascades the Details association, so a failure on any tier rolls back
// the offer row as well.
func (r *offerRepository) Create(ctx context.Context, offer *models.Offer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(offer).Error
	})
}

// escapeLike neutralizes LIKE metacharacters so a search value only ever
// matches as a literal substring.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// withAggregates projects the derived minimums as SELECT aliases, the same
// way post list queries project their counters.
func (r *offerRepository) withAggregates(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Offer{}).
		Select("offers.*, " + minPriceExpr + " AS min_price, " + minDeliveryExpr + " AS min_delivery_time")
}

// applyFilters adds the validated predicates conjunctively. Derived-field
// predicates repeat the aggregate subquery in the WHERE clause because SELECT
// aliases are not referencable there.
func (r *offerRepository) applyFilters(db *gorm.DB, params *query.OfferListParams) *gorm.DB {
	if params.CreatorID != nil {
		db = db.Where("creator_id = ?", *params.CreatorID)
	}
	if params.Search != "" {
		pattern := "%" + escapeLike(params.Search) + "%"
		db = db.Where("LOWER(title) LIKE LOWER(?) ESCAPE '\\' OR LOWER(description) LIKE LOWER(?) ESCAPE '\\'", pattern, pattern)
	}
	if params.MinPrice != nil {
		db = db.Where(minPriceExpr+" >= ?", *params.MinPrice)
	}
	if params.MaxDeliveryTime != nil {
		db = db.Where(minDeliveryExpr+" <= ?", *params.MaxDeliveryTime)
	}
	return db
}

// applyOrdering appends the ORDER BY for the requested sort. min_price is a
// SELECT alias from withAggregates; both PostgreSQL and SQLite allow
// referencing it in ORDER BY at the same query level. The id tie-breaker
// keeps pagination stable.
func (r *offerRepository) applyOrdering(db *gorm.DB, ordering string) *gorm.DB {
	switch ordering {
	case query.OrderingUpdatedAt:
		return db.Order("offers.updated_at ASC, offers.id ASC")
	case query.OrderingUpdatedAtDesc:
		return db.Order("offers.updated_at DESC, offers.id ASC")
	case query.OrderingMinPrice:
		return db.Order("min_price ASC, offers.id ASC")
	case query.OrderingMinPriceDesc:
		return db.Order("min_price DESC, offers.id ASC")
	default:
		return db.Order("offers.id ASC")
	}
}

func (r *offerRepository) GetByID(ctx context.Context, id uint) (*models.Offer, error) {
	var offer models.Offer
	err := r.withAggregates(r.db.WithContext(ctx)).
		Preload("Details").
		Preload("Creator").
		First(&offer, "offers.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// List runs the full pipeline: filter, count, order, paginate. The count is
// taken over the filtered set before slicing so the envelope reports total
// matches.
func (r *offerRepository) List(ctx context.Context, params *query.OfferListParams) ([]*models.Offer, int64, error) {
	var count int64
	countQuery := r.applyFilters(r.db.WithContext(ctx).Model(&models.Offer{}), params)
	if err := countQuery.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var offers []*models.Offer
	listQuery := r.applyFilters(r.withAggregates(r.db.WithContext(ctx)), params)
	listQuery = r.applyOrdering(listQuery, params.Ordering)
	err := listQuery.
		Preload("Details").
		Preload("Creator").
		Limit(params.PageSize).
		Offset(params.Offset()).
		Find(&offers).Error
	if err != nil {
		return nil, 0, err
	}
	return offers, count, nil
}

func (r *offerRepository) Save(ctx context.Context, offer *models.Offer) error {
	// Omit the association: details are saved individually so a tier can
	// never be added or removed through an offer update.
	return r.db.WithContext(ctx).Omit("Details").Save(offer).Error
}

func (r *offerRepository) SaveDetail(ctx context.Context, detail *models.OfferDetail) error {
	return r.db.WithContext(ctx).Save(detail).Error
}

// Delete removes the offer and cascades to its details. Orders referencing
// the offer keep their snapshots; the FK goes null at the store level.
func (r *offerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).
			Where("offer_id = ?", id).
			Updates(map[string]interface{}{"offer_id": nil, "offer_detail_id": nil}).Error; err != nil {
			return err
		}
		if err := tx.Where("offer_id = ?", id).Delete(&models.OfferDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Offer{}, id).Error
	})
}

func (r *offerRepository) GetDetailByID(ctx context.Context, id uint) (*models.OfferDetail, error) {
	var detail models.OfferDetail
	if err := r.db.WithContext(ctx).First(&detail, id).Error; err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *offerRepository) DetailIDs(ctx context.Context, offerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.OfferDetail{}).
		Where("offer_id = ?", offerID).
		Pluck("id", &ids).Error
	return ids, err
}
