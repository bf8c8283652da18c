package property

import "staylocal/internal/domain"

type CreatePropertyRequest struct {
	Title       string             `json:"title" validate:"required,max=100"`
	Description string             `json:"description" validate:"required,max=2000"`
	Type        string             `json:"type" validate:"required"`
	Address     domain.Address     `json:"address" validate:"required"`
	Location    domain.GeoPoint    `json:"location"`
	Price       domain.Price       `json:"price" validate:"required"`
	Capacity    domain.Capacity    `json:"capacity" validate:"required"`
	Amenities   []domain.Amenity   `json:"amenities"`
	Images      []domain.Image     `json:"images"`
	Rules       *domain.HouseRules `json:"rules"`
}

// UpdatePropertyRequest carries only the fields the caller wants to change.
type UpdatePropertyRequest struct {
	Title       *string            `json:"title" validate:"omitempty,max=100"`
	Description *string            `json:"description" validate:"omitempty,max=2000"`
	Type        *string            `json:"type"`
	Address     *domain.Address    `json:"address"`
	Location    *domain.GeoPoint   `json:"location"`
	Price       *domain.Price      `json:"price"`
	Capacity    *domain.Capacity   `json:"capacity"`
	Amenities   *[]domain.Amenity  `json:"amenities"`
	Images      *[]domain.Image    `json:"images"`
	Rules       *domain.HouseRules `json:"rules"`
	IsAvailable *bool              `json:"is_available"`
}

type ListQuery struct {
	Search    string
	City      string
	Type      string
	MinPrice  float64
	MaxPrice  float64
	Guests    int
	Bedrooms  int
	Amenities []string
	Sort      string
	Page      int
	Limit     int
}
