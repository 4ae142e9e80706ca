// Command seed fills a development database with the category catalog and a set of
// sample listings that can be edited and booked.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"eventify/config"
	"eventify/database"
	categoryRepo "eventify/database/repository/category"
	"eventify/models"
	"eventify/services/catalog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

func main() {
	catalogFile := flag.String("catalog", "config/catalog.yaml", "category catalog to load")
	perCategory := flag.Int("n", 5, "sample listings per category")
	flag.Parse()

	config.LoadConfig()
	database.InitDB()
	defer database.Close(context.Background())
	db := database.DB()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	categories, err := catalog.LoadFile(*catalogFile)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	if err := categoryRepo.NewMongoCategoryRepo(db).Upsert(ctx, categories); err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}

	// Clear existing sample listings.
	servicesColl := db.Collection("services")
	if _, err := servicesColl.DeleteMany(ctx, bson.M{"vendorId": "seed"}); err != nil {
		log.Fatalf("Failed to clear services collection: %v", err)
	}

	var docs []interface{}
	for _, cat := range categories {
		for i := 1; i <= *perCategory; i++ {
			docs = append(docs, sampleService(cat, i))
		}
	}
	if len(docs) > 0 {
		if _, err := servicesColl.InsertMany(ctx, docs); err != nil {
			log.Fatalf("Failed to insert services: %v", err)
		}
	}
	fmt.Printf("Seeded %d categories and %d listings\n", len(categories), len(docs))
}

func sampleService(cat models.CategoryConfig, n int) models.Service {
	now := time.Now()
	sub := ""
	if len(cat.SubCategories) > 0 {
		sub = cat.SubCategories[rand.Intn(len(cat.SubCategories))]
	}

	details := map[string]models.DetailValue{}
	for _, f := range cat.Fields {
		switch f.Type {
		case models.FieldTypeText:
			details[f.Key] = models.TextValue(fmt.Sprintf("Sample %s", f.Label))
		case models.FieldTypeNumber:
			details[f.Key] = models.NumberValue(float64(10 * (rand.Intn(50) + 1)))
		case models.FieldTypeBoolean:
			details[f.Key] = models.BoolValue(rand.Intn(2) == 0)
		}
	}

	base := float64(500 * (rand.Intn(20) + 1))
	return models.Service{
		ID:          uuid.New().String(),
		VendorID:    "seed",
		Title:       fmt.Sprintf("%s listing %d", cat.Name, n),
		Description: fmt.Sprintf("A sample %s listing for local development.", cat.Name),
		Category:    cat.ID,
		SubCategory: sub,
		Tags:        []string{cat.ID, "sample"},
		Location:    "Bengaluru",
		Details:     details,
		FAQs:        []models.FAQ{{Question: "Is this a real listing?", Answer: "No, it is seed data."}},
		Variants: []models.Variant{
			{ID: uuid.New().String(), Name: "Standard", Unit: "day", Price: models.Float(base), MinQty: models.Int(1), MaxQty: models.Int(5)},
			{ID: uuid.New().String(), Name: "Setup", Unit: models.CheckboxUnit, Price: models.Float(base / 10), IsCheckbox: true, MinQty: models.Int(1), MaxQty: models.Int(1), DefaultChecked: true},
		},
		Images:    []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
