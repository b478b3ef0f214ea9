package main

import (
	"context"
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"marketplace-orders/internal/config"
	"marketplace-orders/internal/db"
	"marketplace-orders/internal/domain"
	catalogrepo "marketplace-orders/internal/repository/catalog"
	userrepo "marketplace-orders/internal/repository/user"
)

// Dev fixtures: one account per role and a small catalog for the vendor.
func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	users := userrepo.NewPostgres(pool)
	catalog := catalogrepo.NewPostgres(pool)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatalf("hash password: %v", err)
	}

	seedUsers := []userrepo.CreateUserInput{
		{Email: "admin@example.com", Name: "Admin", PasswordHash: string(hash), Role: domain.RoleAdmin},
		{Email: "vendor@example.com", Name: "Vendor One", PasswordHash: string(hash), Role: domain.RoleVendor},
		{Email: "buyer@example.com", Name: "Buyer One", PasswordHash: string(hash), Role: domain.RoleBuyer},
	}

	var vendorID string
	for _, in := range seedUsers {
		u, err := users.Create(ctx, in)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				logger.Printf("user %s already present, skipping", in.Email)
				if existing, getErr := users.GetByEmail(ctx, in.Email); getErr == nil && in.Role == domain.RoleVendor {
					vendorID = existing.ID
				}
				continue
			}
			logger.Fatalf("create user %s: %v", in.Email, err)
		}
		logger.Printf("created user %s role=%s", u.Email, u.Role)
		if in.Role == domain.RoleVendor {
			vendorID = u.ID
		}
	}

	if vendorID == "" {
		logger.Fatalf("no vendor to own seed products")
	}

	products := []catalogrepo.CreateProductInput{
		{VendorID: vendorID, Name: "Ceramic Mug", Description: "Hand-glazed 350ml mug", PriceCents: 1250},
		{VendorID: vendorID, Name: "Walnut Cutting Board", Description: "End-grain walnut board", PriceCents: 5400},
		{VendorID: vendorID, Name: "Linen Tea Towel", PriceCents: 900},
	}
	for _, in := range products {
		p, err := catalog.Create(ctx, in)
		if err != nil {
			logger.Fatalf("create product %s: %v", in.Name, err)
		}
		logger.Printf("created product %s price=%d", p.Name, p.PriceCents)
	}
}
