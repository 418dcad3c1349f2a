package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/user/alternovafilms/internal/config"
	"github.com/user/alternovafilms/internal/repository"
	"github.com/user/alternovafilms/internal/service"
)

// seed imports films from an HTML film-list export into the catalog.
// Usage: seed -file films.html
func main() {
	file := flag.String("file", "", "path to the HTML film list to import")
	flag.Parse()

	if *file == "" {
		log.Fatal("usage: seed -file <films.html>")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using the system environment")
	}

	cfg := config.Load()

	db, err := repository.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	repos := repository.NewRepositories(db)
	importer := service.NewImporter(repos, service.NewCatalogService(repos))

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("open %s: %v", *file, err)
	}
	defer f.Close()

	created, err := importer.ImportHTML(f)
	if err != nil {
		log.Fatalf("import failed after %d films: %v", created, err)
	}

	log.Printf("imported %d films", created)
}
