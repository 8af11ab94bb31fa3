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
	fmt.Println("WARNING: This will DELETE ALL ORDER DATA!")
	fmt.Println()
	fmt.Println("This will:")
	fmt.Println("  - Delete all orders")
	fmt.Println("  - Delete all audit logs")
	fmt.Println("  - Delete all rates, drivers and import records")
	fmt.Println("  - Delete all users except super admins")
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
	dbName := getEnv("DB_NAME", "crane_db")

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		dbUser, dbPassword, dbHost, dbPort, dbName)

	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	fmt.Println()
	fmt.Println("Resetting database...")

	ctx := context.Background()

	statements := []string{
		`DELETE FROM orders`,
		`DELETE FROM audit_logs`,
		`DELETE FROM rates`,
		`DELETE FROM drivers`,
		`DELETE FROM import_records`,
		`DELETE FROM users WHERE role <> 'super_admin'`,
		`ALTER SEQUENCE audit_logs_id_seq RESTART WITH 1`,
		`ALTER SEQUENCE rates_id_seq RESTART WITH 1`,
		`ALTER SEQUENCE drivers_id_seq RESTART WITH 1`,
		`ALTER SEQUENCE import_records_id_seq RESTART WITH 1`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			log.Fatalf("Failed: %s: %v", stmt, err)
		}
	}

	fmt.Println("Database reset complete.")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
