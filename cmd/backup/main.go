package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golfacademy/internal/config"
	"golfacademy/internal/database"
	"golfacademy/internal/service"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  backup export -out <file>    Export the full dataset to a JSON file
  backup import -in <file>     Import a previously exported JSON file
`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg := config.Load()
	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	backup := service.NewBackupService(db)

	switch os.Args[1] {
	case "export":
		fs := flag.NewFlagSet("export", flag.ExitOnError)
		out := fs.String("out", "golfacademy-backup.json", "output file")
		fs.Parse(os.Args[2:])

		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", *out, err)
		}
		defer f.Close()

		if err := backup.Export(f); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		log.Printf("Exported dataset to %s", *out)

	case "import":
		fs := flag.NewFlagSet("import", flag.ExitOnError)
		in := fs.String("in", "", "input file")
		fs.Parse(os.Args[2:])

		if *in == "" {
			usage()
		}
		f, err := os.Open(*in)
		if err != nil {
			log.Fatalf("Failed to open %s: %v", *in, err)
		}
		defer f.Close()

		if err := backup.Import(f); err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		log.Printf("Imported dataset from %s", *in)

	default:
		usage()
	}
}
