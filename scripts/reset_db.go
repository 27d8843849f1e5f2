package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("========================================")
	fmt.Println("   Reset Database for Testing")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("WARNING: This will DELETE ALL PG DATA!")
	fmt.Println()
	fmt.Println("This will:")
	fmt.Println("  - Delete all users (except admin)")
	fmt.Println("  - Delete all tenants, rooms and beds")
	fmt.Println("  - Delete all rent cycles and payments")
	fmt.Println("  - Delete all advance payments")
	fmt.Println("  - Reset all ID sequences")
	fmt.Println()
	fmt.Print("Type 'yes' to confirm: ")

	var confirm string
	fmt.Scanln(&confirm)

	if confirm != "yes" {
		fmt.Println("Reset cancelled.")
		return
	}

	godotenv.Load()

	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := getEnv("DB_PASSWORD", "postgres")
	dbName := getEnv("DB_NAME", "pg_db")

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		dbUser, dbPassword, dbHost, dbPort, dbName)

	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	ctx := context.Background()

	fmt.Println()
	fmt.Println("Resetting database...")

	statements := []string{
		`DELETE FROM rent_payments`,
		`DELETE FROM advance_payments`,
		`DELETE FROM rent_cycles`,
		`UPDATE beds SET tenant_id = NULL`,
		`DELETE FROM tenants`,
		`DELETE FROM beds`,
		`DELETE FROM rooms`,
		`DELETE FROM subscription_orders`,
		`DELETE FROM user_totp WHERE user_id NOT IN (SELECT id FROM users WHERE role = 'admin')`,
		`DELETE FROM users WHERE role <> 'admin'`,
		`ALTER SEQUENCE tenants_id_seq RESTART WITH 1`,
		`ALTER SEQUENCE rooms_id_seq RESTART WITH 1`,
		`ALTER SEQUENCE beds_id_seq RESTART WITH 1`,
		`ALTER SEQUENCE rent_cycles_id_seq RESTART WITH 1`,
		`ALTER SEQUENCE rent_payments_id_seq RESTART WITH 1`,
		`ALTER SEQUENCE advance_payments_id_seq RESTART WITH 1`,
		`ALTER SEQUENCE receipt_number_sequence RESTART WITH 1`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			log.Fatalf("Failed: %s: %v", stmt, err)
		}
	}

	fmt.Println("Done. Database reset to a clean state.")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
