package domain

import "time"

type PropertyType string

const (
	TypeVilla     PropertyType = "villa"
	TypeApartment PropertyType = "apartment"
	TypeSuite     PropertyType = "suite"
	TypeEcoLodge  PropertyType = "eco-lodge"
	TypeCabin     PropertyType = "cabin"
	TypeHotel     PropertyType = "hotel"
	TypeHouse     PropertyType = "house"
	TypeCottage   PropertyType = "cottage"
	TypeRoom      PropertyType = "room"
	TypeEco       PropertyType = "eco"
)

func (t PropertyType) Valid() bool {
	switch t {
	case TypeVilla, TypeApartment, TypeSuite, TypeEcoLodge, TypeCabin,
		TypeHotel, TypeHouse, TypeCottage, TypeRoom, TypeEco:
		return true
	}
	return false
}

type Amenity string

const (
	AmenityWifi         Amenity = "wifi"
	AmenityParking      Amenity = "parking"
	AmenityPool         Amenity = "pool"
	AmenityKitchen      Amenity = "kitchen"
	AmenityAC           Amenity = "ac"
	AmenityHeating      Amenity = "heating"
	AmenityTV           Amenity = "tv"
	AmenityWasher       Amenity = "washer"
	AmenityDryer        Amenity = "dryer"
	AmenityBalcony      Amenity = "balcony"
	AmenityGarden       Amenity = "garden"
	AmenityBBQ          Amenity = "bbq"
	AmenityGym          Amenity = "gym"
	AmenityHotTub       Amenity = "hot-tub"
	AmenityFireplace    Amenity = "fireplace"
	AmenityBeachAccess  Amenity = "beach-access"
	AmenityMountainView Amenity = "mountain-view"
	AmenityPetFriendly  Amenity = "pet-friendly"
)

type Address struct {
	City        string `json:"city" validate:"required"`
	State       string `json:"state,omitempty"`
	Country     string `json:"country"`
	ZipCode     string `json:"zip_code,omitempty"`
	FullAddress string `json:"full_address,omitempty"`
}

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Price struct {
	PerNight float64 `json:"per_night" validate:"gte=0"`
	Currency string  `json:"currency"`
}

type Capacity struct {
	Guests    int `json:"guests" validate:"gte=1"`
	Bedrooms  int `json:"bedrooms"`
	Beds      int `json:"beds"`
	Bathrooms int `json:"bathrooms"`
}

type HouseRules struct {
	CheckInTime    string `json:"check_in_time"`
	CheckOutTime   string `json:"check_out_time"`
	SmokingAllowed bool   `json:"smoking_allowed"`
	PetsAllowed    bool   `json:"pets_allowed"`
	PartiesAllowed bool   `json:"parties_allowed"`
}

// Rating is the denormalized review aggregate on the property. Average stays
// within [0,5]; it is recomputed from reservation reviews, never written
// directly by user input.
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type Image struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

type Property struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title" validate:"required,max=100"`
	Description string       `json:"description" validate:"required,max=2000"`
	Type        PropertyType `json:"type"`
	HostID      int64        `json:"host_id"`
	Address     Address      `json:"address"`
	Location    GeoPoint     `json:"location"`
	Price       Price        `json:"price"`
	Capacity    Capacity     `json:"capacity"`
	Amenities   []Amenity    `json:"amenities,omitempty"`
	Images      []Image      `json:"images,omitempty"`
	Rules       HouseRules   `json:"rules"`
	Rating      Rating       `json:"rating"`
	IsAvailable bool         `json:"is_available"`
	IsApproved  bool         `json:"is_approved"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	Host *User `json:"host,omitempty"`
}
