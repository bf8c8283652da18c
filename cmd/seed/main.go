package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"staylocal/internal/database"
	"staylocal/internal/domain"
	"staylocal/internal/modules/reservation"
	"staylocal/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "staylocal.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM ticket_messages")
	db.Exec("DELETE FROM tickets")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM properties")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	properties := repository.NewPropertyRepository(db)
	reservations := repository.NewReservationRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	admin := createUser(ctx, users, "Admin", "admin@staylocal.dev", "admin123", domain.RoleAdmin)
	log.Println("Admin created: admin@staylocal.dev / admin123")

	hosts := make([]*domain.User, 0, 2)
	for i, name := range []string{"Marta Silva", "Jonas Berg"} {
		h := createUser(ctx, users,
			name,
			fmt.Sprintf("host%d@staylocal.dev", i+1),
			"host1234",
			domain.RoleHost)
		hosts = append(hosts, h)
	}

	travelers := make([]*domain.User, 0, 3)
	for i, name := range []string{"Anna Keller", "Tom Ricci", "Yuki Sato"} {
		tr := createUser(ctx, users,
			name,
			fmt.Sprintf("traveler%d@staylocal.dev", i+1),
			"travel123",
			domain.RoleTraveler)
		travelers = append(travelers, tr)
	}

	// ================== PROPERTIES ==================
	log.Println("Creating properties...")

	listings := []*domain.Property{
		{
			Title:       "Sunset Beach Villa",
			Description: "A bright villa two minutes from the beach, with a private pool.",
			Type:        domain.TypeVilla,
			HostID:      hosts[0].ID,
			Address:     domain.Address{City: "Lagos", Country: "Portugal"},
			Location:    domain.GeoPoint{Lat: 37.102, Lng: -8.673},
			Price:       domain.Price{PerNight: 180, Currency: "EUR"},
			Capacity:    domain.Capacity{Guests: 6, Bedrooms: 3, Beds: 4, Bathrooms: 2},
			Amenities:   []domain.Amenity{domain.AmenityWifi, domain.AmenityPool, domain.AmenityKitchen, domain.AmenityAC},
			Rules:       domain.HouseRules{CheckInTime: "15:00", CheckOutTime: "11:00", PetsAllowed: true},
			IsAvailable: true,
			IsApproved:  true,
		},
		{
			Title:       "Old Town Loft",
			Description: "Quiet loft in the historic center, walking distance to everything.",
			Type:        domain.TypeApartment,
			HostID:      hosts[0].ID,
			Address:     domain.Address{City: "Porto", Country: "Portugal"},
			Price:       domain.Price{PerNight: 95, Currency: "EUR"},
			Capacity:    domain.Capacity{Guests: 2, Bedrooms: 1, Beds: 1, Bathrooms: 1},
			Amenities:   []domain.Amenity{domain.AmenityWifi, domain.AmenityHeating, domain.AmenityWasher},
			IsAvailable: true,
			IsApproved:  true,
		},
		{
			Title:       "Fjord View Cabin",
			Description: "Wood cabin overlooking the fjord. Sauna and fireplace included.",
			Type:        domain.TypeCabin,
			HostID:      hosts[1].ID,
			Address:     domain.Address{City: "Bergen", Country: "Norway"},
			Price:       domain.Price{PerNight: 140, Currency: "EUR"},
			Capacity:    domain.Capacity{Guests: 4, Bedrooms: 2, Beds: 3, Bathrooms: 1},
			Amenities:   []domain.Amenity{domain.AmenityFireplace, domain.AmenityMountainView, domain.AmenityHotTub},
			IsAvailable: true,
			IsApproved:  true,
		},
		{
			Title:       "Rooftop Studio",
			Description: "Freshly renovated studio with a rooftop terrace. Awaiting review.",
			Type:        domain.TypeRoom,
			HostID:      hosts[1].ID,
			Address:     domain.Address{City: "Barcelona", Country: "Spain"},
			Price:       domain.Price{PerNight: 75, Currency: "EUR"},
			Capacity:    domain.Capacity{Guests: 2, Bedrooms: 1, Beds: 1, Bathrooms: 1},
			IsAvailable: true,
			IsApproved:  false,
		},
	}
	for _, p := range listings {
		if err := properties.Create(ctx, p); err != nil {
			log.Fatal("property seed failed:", err)
		}
	}

	// ================== RESERVATIONS ==================
	log.Println("Creating reservations...")

	base := time.Now().UTC().AddDate(0, 1, 0)
	checkIn := time.Date(base.Year(), base.Month(), 10, 0, 0, 0, 0, time.UTC)
	checkOut := checkIn.AddDate(0, 0, 4)

	pending := &domain.Reservation{
		PropertyID:    listings[0].ID,
		GuestID:       travelers[0].ID,
		HostID:        listings[0].HostID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Guests:        4,
		Pricing:       reservation.Quote(listings[0].Price.PerNight, 4, listings[0].Price.Currency),
		Status:        domain.ReservationPending,
		PaymentStatus: domain.PaymentPending,
	}
	if err := reservations.Create(ctx, pending); err != nil {
		log.Fatal("reservation seed failed:", err)
	}

	pastIn := time.Now().UTC().AddDate(0, -2, 0)
	pastOut := pastIn.AddDate(0, 0, 3)
	completed := &domain.Reservation{
		PropertyID:    listings[2].ID,
		GuestID:       travelers[1].ID,
		HostID:        listings[2].HostID,
		CheckIn:       pastIn,
		CheckOut:      pastOut,
		Guests:        2,
		Pricing:       reservation.Quote(listings[2].Price.PerNight, 3, listings[2].Price.Currency),
		Status:        domain.ReservationCompleted,
		PaymentStatus: domain.PaymentPaid,
		Review: &domain.Review{
			Rating:    5,
			Comment:   "The fjord view alone is worth it.",
			CreatedAt: pastOut.AddDate(0, 0, 2),
		},
	}
	if err := reservations.Create(ctx, completed); err != nil {
		log.Fatal("reservation seed failed:", err)
	}
	if err := properties.UpdateRating(ctx, listings[2].ID, 5.0, 1); err != nil {
		log.Fatal("rating seed failed:", err)
	}

	log.Printf("Seed complete: admin=%d hosts=%d travelers=%d properties=%d",
		admin.ID, len(hosts), len(travelers), len(listings))
}

func createUser(ctx context.Context, users *repository.UserRepository, name, email, password string, role domain.Role) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	u := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatal("user seed failed:", err)
	}
	return u
}
