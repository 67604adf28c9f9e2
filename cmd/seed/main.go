package main

import (
	"github.com/joho/godotenv"

	"github.com/votervision/backend/internal/config"
	"github.com/votervision/backend/internal/database"
	"github.com/votervision/backend/internal/models"
	"github.com/votervision/backend/internal/repository"
	"github.com/votervision/backend/pkg/utils"
)

// Seed data: prominent figures across parties and provinces so a fresh
// install has something to browse. Idempotent on candidate name.
var seedCandidates = []models.Candidate{
	{
		Name:       "KP Sharma Oli",
		Party:      "CPN-UML",
		Province:   models.ProvinceKoshi,
		Bio:        "Former Prime Minister and Chairman of CPN-UML. Known for his nationalist stance and infrastructure projects like the Melamchi water project and cross-border connectivity.",
		PastWork:   "Served as PM multiple times. Led the 2015 blockade response. Focused on 'Prosperous Nepal, Happy Nepali'. Pushed for railway connectivity with China and India. Initiated social security schemes for workers.",
		IsActive:   true,
		IsFeatured: true,
	},
	{
		Name:       "Pushpa Kamal Dahal (Prachanda)",
		Party:      "CPN (Maoist Centre)",
		Province:   models.ProvinceBagmati,
		Bio:        "Current Prime Minister and Chairman of Maoist Centre. Former rebel leader who led the 10-year People's War before joining mainstream politics.",
		PastWork:   "Key architect of the Comprehensive Peace Agreement. Focused on inclusion, federalism, and secularism in the 2015 Constitution. Currently leading a coalition government focusing on economic recovery and good governance.",
		IsActive:   true,
		IsFeatured: true,
	},
	{
		Name:     "Sher Bahadur Deuba",
		Party:    "Nepali Congress",
		Province: models.ProvinceSudurpashchim,
		Bio:      "President of Nepali Congress and former multi-time Prime Minister. A veteran politician with deep roots in democratic movements.",
		PastWork: "Led several coalition governments. Historically focused on democratic consolidation and international relations. Known for his pragmatism in coalition politics.",
		IsActive: true,
	},
	{
		Name:       "Rabi Lamichhane",
		Party:      "Rastriya Swatantra Party",
		Province:   models.ProvinceBagmati,
		Bio:        "Former journalist and Chairman of Rastriya Swatantra Party (RSP). Entered politics with a platform of anti-corruption and service delivery reform.",
		PastWork:   "Hosted 'Sidha Kura Janata Sanga' which exposed corruption and administrative failures. As Home Minister, initiated crackdowns on gold smuggling and forged documents. Strong advocate for digital governance.",
		IsActive:   true,
		IsFeatured: true,
	},
	{
		Name:     "Balen Shah",
		Party:    "Independent",
		Province: models.ProvinceBagmati,
		Bio:      "Mayor of Kathmandu Metropolitan City. A structural engineer and rapper who won as an independent candidate, sparking a nationwide independent movement.",
		PastWork: "Transformed waste management in Kathmandu. Initiated digital mapping of city services. Led the demolition of illegal structures on public land. Focused on cultural heritage preservation and 'Clean Kathmandu' initiative.",
		IsActive: true,
	},
	{
		Name:     "Gagan Thapa",
		Party:    "Nepali Congress",
		Province: models.ProvinceBagmati,
		Bio:      "General Secretary of Nepali Congress and former Health Minister. A popular youth leader known for his oratory skills and advocacy for healthcare reforms.",
		PastWork: "Initiated the health insurance scheme in Nepal as Health Minister. Vocal advocate for democratic reforms within the party. Active in earthquake reconstruction and COVID-19 response planning.",
		IsActive: true,
	},
	{
		Name:     "Harka Sampang",
		Party:    "Independent",
		Province: models.ProvinceKoshi,
		Bio:      "Mayor of Dharan Sub-Metropolitan City. Emerged from grass-roots activism, specifically focusing on water supply issues in Dharan.",
		PastWork: "Led massive tree-planting campaigns. Mobilized voluntary labor (Shramdaan) for water projects, successfully bringing water to Dharan. Known for his simple lifestyle and direct engagement with citizens on social media.",
		IsActive: true,
	},
}

func main() {
	_ = godotenv.Load()

	logger := utils.NewLogger()
	logger.Info("Seeding candidate directory")

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	manager, err := database.NewManager(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database connections")
	}
	defer manager.Close()

	if err := manager.Migrate(); err != nil {
		logger.WithError(err).Fatal("Database migration failed")
	}

	repos := repository.NewRepositoryManager(manager.DB)

	existing, err := repos.Candidate.GetAll()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load existing candidates")
	}
	known := make(map[string]bool, len(existing))
	for _, candidate := range existing {
		known[candidate.Name] = true
	}

	created := 0
	for i := range seedCandidates {
		candidate := seedCandidates[i]
		if known[candidate.Name] {
			logger.WithField("name", candidate.Name).Info("Candidate already exists, skipping")
			continue
		}

		if err := repos.Candidate.Create(&candidate); err != nil {
			logger.WithError(err).WithField("name", candidate.Name).Error("Failed to create candidate")
			continue
		}

		logger.WithField("name", candidate.Name).Info("Created candidate")
		created++
	}

	logger.WithField("created", created).Info("Seeding completed")
}
