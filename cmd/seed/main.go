package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/ecommerce-backend/config"
	"github.com/oksasatya/ecommerce-backend/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@example.com"
	password := "Admin123!"
	name := "Store Admin"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var adminID string
	err = db.QueryRow(`
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, 'admin')
		ON CONFLICT (email) DO UPDATE SET role='admin'
		RETURNING id
	`, name, email, hash).Scan(&adminID)
	if err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", adminID, email, password)

	type demo struct {
		name, description, category string
		price                       float64
		stock                       int
	}
	demos := []demo{
		{"Wireless Headphones", "Over-ear bluetooth headphones with noise cancelling", "electronics", 129.99, 25},
		{"Running Shoes", "Lightweight trail running shoes", "sports", 89.50, 4},
		{"Ceramic Mug", "350ml glazed ceramic mug", "home", 12.00, 0},
	}
	for _, d := range demos {
		var productID string
		err = db.QueryRow(`
			INSERT INTO products (name, description, price, category, stock, images, created_by)
			VALUES ($1, $2, $3, $4, $5, '[]'::jsonb, $6)
			RETURNING id
		`, d.name, d.description, d.price, d.category, d.stock, adminID).Scan(&productID)
		if err != nil {
			log.Fatalf("failed to seed product %q: %v", d.name, err)
		}
		fmt.Printf("seeded product: id=%s name=%s\n", productID, d.name)
	}
}
