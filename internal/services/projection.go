package services

import (
	"strings"
	"time"

	"github.com/asg0d/billboards-live/internal/models"
)

// MediaResolver turns a stored image path into the absolute URL a client can
// fetch. The handlers build one per request from the configured media base.
type MediaResolver func(path string) string

// Location is the latitude/longitude pair embedded in list items
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CategoryRef is the compact category object embedded in projections
type CategoryRef struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// BillboardListItem is the map-oriented list projection: display strings are
// precomputed and at most two image URLs are included.
type BillboardListItem struct {
	ID           uint         `json:"id"`
	Title        string       `json:"title"`
	Category     *uint        `json:"category"`
	CategoryData *CategoryRef `json:"category_data"`
	Images       []string     `json:"images"`
	Employee     string       `json:"employee"`
	Size         string       `json:"size"`
	Address      string       `json:"address"`
	Location     Location     `json:"location"`
	Period       string       `json:"period"`
	Status       string       `json:"status"`
}

// ImageDetail is the full image object included in the detail projection
type ImageDetail struct {
	ID        uint   `json:"id"`
	Image     string `json:"image"`
	AltText   string `json:"alt_text"`
	SortOrder int    `json:"order"`
	IsPrimary bool   `json:"is_primary"`
}

// BillboardDetail is the detail projection: raw fields alongside the same
// display strings the list carries.
type BillboardDetail struct {
	ID              uint          `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	EmployeeID      uint          `json:"employee"`
	EmployeeName    string        `json:"employee_name"`
	Category        *uint         `json:"category"`
	CategoryData    *CategoryRef  `json:"category_data"`
	Contractor      string        `json:"contractor"`
	Width           float64       `json:"width"`
	Height          float64       `json:"height"`
	Size            string        `json:"size"`
	Address         string        `json:"address"`
	Latitude        float64       `json:"latitude"`
	Longitude       float64       `json:"longitude"`
	Location        Location      `json:"location"`
	StartDate       models.Date   `json:"start_date"`
	EndDate         *models.Date  `json:"end_date"`
	Period          string        `json:"period"`
	Status          string        `json:"status"`
	Price           *float64      `json:"price"`
	Notes           string        `json:"notes"`
	Images          []ImageDetail `json:"images"`
	IsExpired       bool          `json:"is_expired"`
	DaysUntilExpiry *int          `json:"days_until_expiry"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// CategorySummary is the category list projection with a live billboard count
type CategorySummary struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	Description     string `json:"description"`
	Icon            string `json:"icon"`
	Color           string `json:"color"`
	SortOrder       int    `json:"order"`
	BillboardsCount int64  `json:"billboards_count"`
}

// ContractorSummary is the contractor list projection
type ContractorSummary struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	ContactPerson   string `json:"contact_person"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	ContractNumber  string `json:"contract_number"`
	DisplayContact  string `json:"display_contact"`
	BillboardsCount int64  `json:"billboards_count"`
}

// EmployeeSummary is the employee list projection
type EmployeeSummary struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Position string `json:"position"`
}

func categoryRef(c *models.Category) *CategoryRef {
	if c == nil || c.ID == 0 {
		return nil
	}
	return &CategoryRef{ID: c.ID, Name: c.Name, Slug: c.Slug, Icon: c.Icon, Color: c.Color}
}

// ProjectListItem builds the list projection for one billboard. Relations
// must already be preloaded.
func ProjectListItem(b *models.Billboard, resolve MediaResolver) BillboardListItem {
	item := BillboardListItem{
		ID:       b.ID,
		Title:    b.Title,
		Category: b.CategoryID,
		Images:   []string{},
		Employee: b.Employee.FullName(),
		Size:     b.SizeDisplay(),
		Address:  b.Address,
		Location: Location{Lat: b.Latitude, Lng: b.Longitude},
		Period:   b.PeriodDisplay(),
		Status:   b.Status,
	}
	if b.Category != nil {
		item.CategoryData = categoryRef(b.Category)
	}
	for _, img := range b.Images {
		if len(item.Images) == 2 {
			break
		}
		item.Images = append(item.Images, resolve(img.Image))
	}
	return item
}

// ProjectList builds list projections for a preloaded billboard slice
func ProjectList(billboards []models.Billboard, resolve MediaResolver) []BillboardListItem {
	items := make([]BillboardListItem, 0, len(billboards))
	for i := range billboards {
		items = append(items, ProjectListItem(&billboards[i], resolve))
	}
	return items
}

// ProjectDetail builds the detail projection for one billboard. Relations
// must already be preloaded; now anchors the expiry countdown.
func ProjectDetail(b *models.Billboard, resolve MediaResolver, now time.Time) BillboardDetail {
	detail := BillboardDetail{
		ID:              b.ID,
		Title:           b.Title,
		Description:     b.Description,
		EmployeeID:      b.EmployeeID,
		EmployeeName:    b.Employee.FullName(),
		Category:        b.CategoryID,
		Width:           b.Width,
		Height:          b.Height,
		Size:            b.SizeDisplay(),
		Address:         b.Address,
		Latitude:        b.Latitude,
		Longitude:       b.Longitude,
		Location:        Location{Lat: b.Latitude, Lng: b.Longitude},
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		Period:          b.PeriodDisplay(),
		Status:          b.Status,
		Price:           b.Price,
		Notes:           b.Notes,
		Images:          []ImageDetail{},
		IsExpired:       b.IsExpired(now),
		DaysUntilExpiry: b.DaysUntilExpiry(now),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if b.Category != nil {
		detail.CategoryData = categoryRef(b.Category)
	}
	if b.Contractor != nil {
		detail.Contractor = b.Contractor.Name
	}
	for _, img := range b.Images {
		detail.Images = append(detail.Images, ImageDetail{
			ID:        img.ID,
			Image:     resolve(img.Image),
			AltText:   img.AltText,
			SortOrder: img.SortOrder,
			IsPrimary: img.IsPrimary,
		})
	}
	return detail
}

// ProjectCategories decorates categories with their billboard counts
func ProjectCategories(categories []models.Category, counts map[uint]int64) []CategorySummary {
	out := make([]CategorySummary, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategorySummary{
			ID:              c.ID,
			Name:            c.Name,
			Slug:            c.Slug,
			Description:     c.Description,
			Icon:            c.Icon,
			Color:           c.Color,
			SortOrder:       c.SortOrder,
			BillboardsCount: counts[c.ID],
		})
	}
	return out
}

// ProjectContractors decorates contractors with their billboard counts
func ProjectContractors(contractors []models.Contractor, counts map[uint]int64) []ContractorSummary {
	out := make([]ContractorSummary, 0, len(contractors))
	for _, c := range contractors {
		out = append(out, ContractorSummary{
			ID:              c.ID,
			Name:            c.Name,
			ContactPerson:   c.ContactPerson,
			Phone:           c.Phone,
			Email:           c.Email,
			ContractNumber:  c.ContractNumber,
			DisplayContact:  c.DisplayContact(),
			BillboardsCount: counts[c.ID],
		})
	}
	return out
}

// ProjectEmployees builds the employee list projection
func ProjectEmployees(employees []models.Employee) []EmployeeSummary {
	out := make([]EmployeeSummary, 0, len(employees))
	for _, e := range employees {
		out = append(out, EmployeeSummary{
			ID:       e.ID,
			FullName: e.FullName(),
			Email:    e.Email,
			Phone:    e.Phone,
			Position: e.Position,
		})
	}
	return out
}

// MediaURLResolver builds a resolver that prefixes stored paths with the
// media base URL. Absolute URLs pass through untouched.
func MediaURLResolver(base string) MediaResolver {
	base = strings.TrimRight(base, "/")
	return func(path string) string {
		if path == "" {
			return ""
		}
		if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
			return path
		}
		return base + "/" + strings.TrimLeft(path, "/")
	}
}
