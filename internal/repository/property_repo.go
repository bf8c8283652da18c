package repository

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"staylocal/internal/domain"
)

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) DB() *gorm.DB { return r.db }

type propertyModel struct {
	ID          int64  `gorm:"column:id;primaryKey"`
	Title       string `gorm:"column:title"`
	Description string `gorm:"column:description"`
	Type        string `gorm:"column:type;index"`
	HostID      int64  `gorm:"column:host_id;index"`

	City        string `gorm:"column:city;index"`
	State       *string `gorm:"column:state"`
	Country     string  `gorm:"column:country"`
	ZipCode     *string `gorm:"column:zip_code"`
	FullAddress *string `gorm:"column:full_address"`

	Lat float64 `gorm:"column:lat"`
	Lng float64 `gorm:"column:lng"`

	PricePerNight float64 `gorm:"column:price_per_night;index"`
	Currency      string  `gorm:"column:currency"`

	Guests    int `gorm:"column:guests"`
	Bedrooms  int `gorm:"column:bedrooms"`
	Beds      int `gorm:"column:beds"`
	Bathrooms int `gorm:"column:bathrooms"`

	Amenities []byte `gorm:"column:amenities"`
	Images    []byte `gorm:"column:images"`

	CheckInTime    string `gorm:"column:check_in_time"`
	CheckOutTime   string `gorm:"column:check_out_time"`
	SmokingAllowed bool   `gorm:"column:smoking_allowed"`
	PetsAllowed    bool   `gorm:"column:pets_allowed"`
	PartiesAllowed bool   `gorm:"column:parties_allowed"`

	RatingAverage float64 `gorm:"column:rating_average"`
	RatingCount   int     `gorm:"column:rating_count"`

	IsAvailable bool `gorm:"column:is_available"`
	IsApproved  bool `gorm:"column:is_approved;index"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (propertyModel) TableName() string { return "properties" }

func toDomainProperty(m propertyModel) *domain.Property {
	var state, zip, full string
	if m.State != nil {
		state = *m.State
	}
	if m.ZipCode != nil {
		zip = *m.ZipCode
	}
	if m.FullAddress != nil {
		full = *m.FullAddress
	}

	var amenities []domain.Amenity
	if len(m.Amenities) > 0 {
		_ = json.Unmarshal(m.Amenities, &amenities)
	}
	var images []domain.Image
	if len(m.Images) > 0 {
		_ = json.Unmarshal(m.Images, &images)
	}

	return &domain.Property{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Type:        domain.PropertyType(m.Type),
		HostID:      m.HostID,
		Address: domain.Address{
			City:        m.City,
			State:       state,
			Country:     m.Country,
			ZipCode:     zip,
			FullAddress: full,
		},
		Location: domain.GeoPoint{Lat: m.Lat, Lng: m.Lng},
		Price:    domain.Price{PerNight: m.PricePerNight, Currency: m.Currency},
		Capacity: domain.Capacity{
			Guests:    m.Guests,
			Bedrooms:  m.Bedrooms,
			Beds:      m.Beds,
			Bathrooms: m.Bathrooms,
		},
		Amenities: amenities,
		Images:    images,
		Rules: domain.HouseRules{
			CheckInTime:    m.CheckInTime,
			CheckOutTime:   m.CheckOutTime,
			SmokingAllowed: m.SmokingAllowed,
			PetsAllowed:    m.PetsAllowed,
			PartiesAllowed: m.PartiesAllowed,
		},
		Rating:      domain.Rating{Average: m.RatingAverage, Count: m.RatingCount},
		IsAvailable: m.IsAvailable,
		IsApproved:  m.IsApproved,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toPropertyModel(p *domain.Property) propertyModel {
	var state, zip, full *string
	if p.Address.State != "" {
		v := p.Address.State
		state = &v
	}
	if p.Address.ZipCode != "" {
		v := p.Address.ZipCode
		zip = &v
	}
	if p.Address.FullAddress != "" {
		v := p.Address.FullAddress
		full = &v
	}

	var amenities, images []byte
	if len(p.Amenities) > 0 {
		amenities, _ = json.Marshal(p.Amenities)
	}
	if len(p.Images) > 0 {
		images, _ = json.Marshal(p.Images)
	}

	return propertyModel{
		ID:             p.ID,
		Title:          p.Title,
		Description:    p.Description,
		Type:           string(p.Type),
		HostID:         p.HostID,
		City:           p.Address.City,
		State:          state,
		Country:        p.Address.Country,
		ZipCode:        zip,
		FullAddress:    full,
		Lat:            p.Location.Lat,
		Lng:            p.Location.Lng,
		PricePerNight:  p.Price.PerNight,
		Currency:       p.Price.Currency,
		Guests:         p.Capacity.Guests,
		Bedrooms:       p.Capacity.Bedrooms,
		Beds:           p.Capacity.Beds,
		Bathrooms:      p.Capacity.Bathrooms,
		Amenities:      amenities,
		Images:         images,
		CheckInTime:    p.Rules.CheckInTime,
		CheckOutTime:   p.Rules.CheckOutTime,
		SmokingAllowed: p.Rules.SmokingAllowed,
		PetsAllowed:    p.Rules.PetsAllowed,
		PartiesAllowed: p.Rules.PartiesAllowed,
		RatingAverage:  p.Rating.Average,
		RatingCount:    p.Rating.Count,
		IsAvailable:    p.IsAvailable,
		IsApproved:     p.IsApproved,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	m := toPropertyModel(p)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*p = *toDomainProperty(m)
	return nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	var m propertyModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainProperty(m), nil
}

func (r *PropertyRepository) Save(ctx context.Context, p *domain.Property) error {
	m := toPropertyModel(p)
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return err
	}
	*p = *toDomainProperty(m)
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&propertyModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PropertyRepository) GetByHost(ctx context.Context, hostID int64) ([]domain.Property, error) {
	var rows []propertyModel
	err := r.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Property, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainProperty(m))
	}
	return out, nil
}

type PropertyFilters struct {
	Search    string
	City      string
	Type      string
	MinPrice  float64
	MaxPrice  float64
	Guests    int
	Bedrooms  int
	Amenities []string
	Sort      string
	Limit     int
	Offset    int
}

// List returns available, approved properties matching the filters. Amenity
// matching goes through the JSON column with per-tag LIKE, which is portable
// across sqlite and postgres.
func (r *PropertyRepository) List(ctx context.Context, f PropertyFilters) ([]domain.Property, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&propertyModel{}).
		Where("is_available = ? AND is_approved = ?", true, true)

	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("title LIKE ? OR description LIKE ? OR city LIKE ?", like, like, like)
	}
	if f.City != "" {
		q = q.Where("city LIKE ?", "%"+f.City+"%")
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.MinPrice > 0 {
		q = q.Where("price_per_night >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("price_per_night <= ?", f.MaxPrice)
	}
	if f.Guests > 0 {
		q = q.Where("guests >= ?", f.Guests)
	}
	if f.Bedrooms > 0 {
		q = q.Where("bedrooms >= ?", f.Bedrooms)
	}
	for _, a := range f.Amenities {
		q = q.Where("amenities LIKE ?", `%"`+a+`"%`)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch f.Sort {
	case "price_asc":
		q = q.Order("price_per_night ASC")
	case "price_desc":
		q = q.Order("price_per_night DESC")
	case "rating":
		q = q.Order("rating_average DESC")
	default:
		q = q.Order("created_at DESC")
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var rows []propertyModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Property, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainProperty(m))
	}
	return out, total, nil
}

func (r *PropertyRepository) ListPendingApproval(ctx context.Context, limit, offset int) ([]domain.Property, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&propertyModel{}).
		Where("is_approved = ?", false)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []propertyModel
	q = q.Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Property, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainProperty(m))
	}
	return out, total, nil
}

func (r *PropertyRepository) SetApproval(ctx context.Context, id int64, approved bool) error {
	tx := r.db.WithContext(ctx).
		Model(&propertyModel{}).
		Where("id = ?", id).
		Update("is_approved", approved)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateRating writes the recomputed aggregate back to the property.
func (r *PropertyRepository) UpdateRating(ctx context.Context, id int64, average float64, count int) error {
	return r.db.WithContext(ctx).
		Model(&propertyModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"rating_average": average,
			"rating_count":   count,
		}).Error
}
