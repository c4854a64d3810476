package main

import (
	"context"
	"log"
	"time"

	"github.com/shimotmr/Pudu-cases/internal/admins"
	"github.com/shimotmr/Pudu-cases/internal/cases"
	"github.com/shimotmr/Pudu-cases/internal/config"
	"github.com/shimotmr/Pudu-cases/internal/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Fatal(err)
	}

	casesService := cases.NewService(cases.NewRepository(cols.Cases), cfg.Timezone)
	adminsService := admins.NewService(admins.NewRepository(cols.Admins), cfg.Timezone)

	existing, err := casesService.List(ctx)
	if err != nil {
		log.Fatal(err)
	}

	if len(existing) == 0 {
		drafts := []cases.Draft{
			{
				Category:    "Catering",
				Subcategory: "Fast Food",
				Region:      "USA",
				RobotType:   "BellaBot",
				ClientName:  "McDonald's",
				VideoURL:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
				Rating:      4,
				Keywords:    []string{"delivery", "fastfood"},
			},
			{
				Category:    "Catering",
				Subcategory: "Hotpot",
				Region:      "China",
				RobotType:   "KettyBot",
				ClientName:  "Haidilao",
				VideoURL:    "https://www.youtube.com/watch?v=9bZkp7q19f0",
				Rating:      5,
				Keywords:    []string{"hotpot", "greeting", "busy hours"},
			},
			{
				Category:    "Cleaning",
				Region:      "Germany",
				RobotType:   "PUDU CC1",
				ClientName:  "EDEKA",
				VideoURL:    "https://www.youtube.com/watch?v=oHg5SJYRHA0",
				Rating:      4,
				Keywords:    []string{"supermarket", "floor care"},
			},
			{
				Category:    "Retail",
				Region:      "Japan",
				RobotType:   "FlashBot",
				ClientName:  "FamilyMart",
				VideoURL:    "https://youtu.be/J---aiyznGQ",
				Rating:      3,
				Keywords:    []string{"convenience", "restocking"},
			},
		}

		for _, d := range drafts {
			if _, err := casesService.Create(ctx, d); err != nil {
				log.Fatalf("seed case %s: %v", d.ClientName, err)
			}
		}
		log.Printf("seeded %d cases", len(drafts))
	} else {
		log.Printf("cases already present (%d), skipping", len(existing))
	}

	// Bootstrap admin; Add is an upsert no-op if the email exists.
	if cfg.SeedAdminEmail != "" {
		if err := adminsService.Add(ctx, cfg.SeedAdminEmail, "System"); err != nil {
			log.Fatalf("seed admin: %v", err)
		}
		log.Printf("admin ensured: %s", cfg.SeedAdminEmail)
	}

	log.Println("seed completed")
}
