package main

import (
	"database/sql"
	"errors"
	"fmt"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	"os"
)

func main() {
	log.SetLevel(log.InfoLevel)
	log.Println("starting migrate")

	dbConn := os.Getenv("APP_DB_CONN")
	if dbConn == "" {
		dbConn = "user=ps_user password=ps_password dbname=portal sslmode=disable host=0.0.0.0"
	}

	source := os.Getenv("APP_MIGRATIONS")
	if source == "" {
		source = "file://./migrations"
	}

	db, err := sql.Open("postgres", dbConn)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {
			log.Errorf("closing the db: %v", err)
		}
	}(db)

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal(err)
	}

	m, err := migrate.NewWithDatabaseInstance(source, "postgres", driver)
	if err != nil {
		log.Fatal(err)
	}

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	default:
		log.Fatalf("unknown direction %q, expected up or down", direction)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal(err)
	}

	fmt.Printf("Migrations %s complete!\n", direction)
}
