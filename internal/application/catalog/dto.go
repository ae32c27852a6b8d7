package catalog

import (
	"github.com/orderpad/backend/internal/domain/catalog"
)

// UpdateRecommendationRequest sets one recommended quantity
type UpdateRecommendationRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	DayType  string `json:"day_type" binding:"required"`
	Quantity int    `json:"quantity"`
}

// AddItemRequest appends an item to the catalog
type AddItemRequest struct {
	Name        string         `json:"name" binding:"required,max=200"`
	Category    string         `json:"category" binding:"max=20"`
	Recommended map[string]int `json:"recommended"`
}

// MoveItemRequest moves the item at From to position To (0-based)
type MoveItemRequest struct {
	From *int `json:"from" binding:"required,min=0"`
	To   *int `json:"to" binding:"required,min=0"`
}

// ReorderItemsRequest lists every item name in the desired order
type ReorderItemsRequest struct {
	Names []string `json:"names" binding:"required,min=1,dive,required"`
}

// ItemResponse represents a catalog item in API responses
type ItemResponse struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Category     string         `json:"category"`
	CategoryName string         `json:"category_name"`
	Recommended  map[string]int `json:"recommended"`
}

// CategoryResponse is one category in catalog order
type CategoryResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// DayTypeResponse is one selectable day type
type DayTypeResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// CatalogResponse is the effective catalog
type CatalogResponse struct {
	FileName   string             `json:"file_name"`
	Items      []ItemResponse     `json:"items"`
	Categories []CategoryResponse `json:"categories"`
	DayTypes   []DayTypeResponse  `json:"day_types"`
}

// ToItemResponse converts a domain Item
func ToItemResponse(item catalog.Item) ItemResponse {
	rec := make(map[string]int, len(catalog.AllDayTypes()))
	for _, day := range catalog.AllDayTypes() {
		rec[day.String()] = item.RecommendedFor(day)
	}
	return ItemResponse{
		ID:           item.ID,
		Name:         item.Name,
		Category:     item.Category.String(),
		CategoryName: item.Category.DisplayName(),
		Recommended:  rec,
	}
}

// ToCatalogResponse converts a domain Catalog
func ToCatalogResponse(c catalog.Catalog, fileName string) CatalogResponse {
	items := make([]ItemResponse, len(c))
	for i, item := range c {
		items[i] = ToItemResponse(item)
	}
	categories := make([]CategoryResponse, 0)
	for _, cat := range c.Categories() {
		categories = append(categories, CategoryResponse{Code: cat.String(), Name: cat.DisplayName()})
	}
	days := make([]DayTypeResponse, 0, len(catalog.AllDayTypes()))
	for _, day := range catalog.AllDayTypes() {
		days = append(days, DayTypeResponse{Key: day.String(), Label: day.Label()})
	}
	return CatalogResponse{
		FileName:   fileName,
		Items:      items,
		Categories: categories,
		DayTypes:   days,
	}
}

func (r AddItemRequest) toItem() (catalog.Item, error) {
	rec := catalog.Recommendation{}
	for raw, qty := range r.Recommended {
		day, ok := catalog.ParseDayType(raw)
		if !ok {
			return catalog.Item{}, errUnknownDayType(raw)
		}
		rec[day] = qty
	}
	return catalog.NewItem("", r.Name, catalog.ParseCategory(r.Category), rec)
}
