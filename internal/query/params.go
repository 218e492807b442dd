// Package query validates collection query parameters before any filtering
// is applied. Every recognized parameter has a declared type; a value that
// fails to parse rejects the whole request, never a partial or silently
// unfiltered result.
package query

import (
	"strconv"
	"strings"

	"gigmarket/internal/models"
)

// Pagination bounds for all paginated collections.
const (
	DefaultPageSize = 6
	MaxPageSize     = 100
)

// Offer list orderings. The empty string means the default: ascending by id.
const (
	OrderingUpdatedAt     = "updated_at"
	OrderingUpdatedAtDesc = "-updated_at"
	OrderingMinPrice      = "min_price"
	OrderingMinPriceDesc  = "-min_price"
	OrderingRating        = "rating"
	OrderingRatingDesc    = "-rating"
)

// OfferListParams holds the validated filter, ordering, and pagination
// parameters of the offers collection. Nil pointer fields impose no
// constraint.
type OfferListParams struct {
	CreatorID       *uint
	Search          string
	MinPrice        *float64
	MaxDeliveryTime *int
	Ordering        string
	Page            int
	PageSize        int
}

// ReviewListParams holds the validated parameters of the reviews collection.
// PageSize is nil unless pagination was explicitly requested; without it the
// endpoint returns the full filtered set.
type ReviewListParams struct {
	BusinessUserID *uint
	ReviewerID     *uint
	Ordering       string
	Page           int
	PageSize       *int
}

// clean strips surrounding whitespace and stray quotes that some clients
// send around query values.
func clean(v string) string {
	return strings.Trim(strings.TrimSpace(v), `"'`)
}

func parseUintParam(params map[string]string, name string) (*uint, error) {
	raw, ok := params[name]
	if !ok {
		return nil, nil
	}
	raw = clean(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return nil, models.NewInvalidParameterError(name, "must be a valid integer")
	}
	u := uint(v)
	return &u, nil
}

func parsePage(params map[string]string) (int, error) {
	raw, ok := params["page"]
	if !ok {
		return 1, nil
	}
	raw = clean(raw)
	if raw == "" {
		return 1, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, models.NewInvalidParameterError("page", "must be a positive integer")
	}
	return v, nil
}

func parsePageSize(params map[string]string) (*int, error) {
	raw, ok := params["page_size"]
	if !ok {
		return nil, nil
	}
	raw = clean(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return nil, models.NewInvalidParameterError("page_size", "must be a positive integer")
	}
	if v > MaxPageSize {
		v = MaxPageSize
	}
	return &v, nil
}

func parseOrdering(params map[string]string, allowed ...string) (string, error) {
	raw, ok := params["ordering"]
	if !ok {
		return "", nil
	}
	raw = clean(raw)
	if raw == "" {
		return "", nil
	}
	for _, a := range allowed {
		if raw == a {
			return raw, nil
		}
	}
	return "", models.NewInvalidParameterError("ordering",
		"must be one of "+strings.Join(allowed, ", "))
}

// ParseOfferListParams validates the offers collection query parameters.
func ParseOfferListParams(params map[string]string) (*OfferListParams, error) {
	out := &OfferListParams{Page: 1, PageSize: DefaultPageSize}

	creatorID, err := parseUintParam(params, "creator_id")
	if err != nil {
		return nil, err
	}
	out.CreatorID = creatorID

	out.Search = clean(params["search"])

	if raw, ok := params["min_price"]; ok {
		raw = clean(raw)
		if raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || v < 0 {
				return nil, models.NewInvalidParameterError("min_price", "must be a non-negative number")
			}
			out.MinPrice = &v
		}
	}

	if raw, ok := params["max_delivery_time"]; ok {
		raw = clean(raw)
		if raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil || v < 1 {
				return nil, models.NewInvalidParameterError("max_delivery_time", "must be a positive integer")
			}
			out.MaxDeliveryTime = &v
		}
	}

	ordering, err := parseOrdering(params,
		OrderingUpdatedAt, OrderingUpdatedAtDesc, OrderingMinPrice, OrderingMinPriceDesc)
	if err != nil {
		return nil, err
	}
	out.Ordering = ordering

	page, err := parsePage(params)
	if err != nil {
		return nil, err
	}
	out.Page = page

	pageSize, err := parsePageSize(params)
	if err != nil {
		return nil, err
	}
	if pageSize != nil {
		out.PageSize = *pageSize
	}

	return out, nil
}

// ParseReviewListParams validates the reviews collection query parameters.
func ParseReviewListParams(params map[string]string) (*ReviewListParams, error) {
	out := &ReviewListParams{Page: 1}

	businessUserID, err := parseUintParam(params, "business_user_id")
	if err != nil {
		return nil, err
	}
	out.BusinessUserID = businessUserID

	reviewerID, err := parseUintParam(params, "reviewer_id")
	if err != nil {
		return nil, err
	}
	out.ReviewerID = reviewerID

	ordering, err := parseOrdering(params,
		OrderingUpdatedAt, OrderingUpdatedAtDesc, OrderingRating, OrderingRatingDesc)
	if err != nil {
		return nil, err
	}
	out.Ordering = ordering

	page, err := parsePage(params)
	if err != nil {
		return nil, err
	}
	out.Page = page

	out.PageSize, err = parsePageSize(params)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Offset converts the validated page/page_size pair to a slice offset.
func (p *OfferListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Page is the envelope returned by paginated collection endpoints. Next and
// Previous are page numbers, nil at the edges. A page past the end yields an
// empty Results slice, not an error.
type Page struct {
	Count    int64       `json:"count"`
	Next     *int        `json:"next"`
	Previous *int        `json:"previous"`
	Results  interface{} `json:"results"`
}

// NewPage assembles the pagination envelope for the given total count.
func NewPage(count int64, page, pageSize int, results interface{}) Page {
	out := Page{Count: count, Results: results}
	if int64(page*pageSize) < count {
		next := page + 1
		out.Next = &next
	}
	if page > 1 {
		prev := page - 1
		out.Previous = &prev
	}
	return out
}
