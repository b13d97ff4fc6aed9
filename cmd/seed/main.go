// Command seed provisions the default categories and the initial admin user.
// It is idempotent: existing records are left untouched.
package main

import (
	"context"
	"log"

	"gorm.io/gorm"

	"biblioteca/internal/auth"
	"biblioteca/internal/config"
	"biblioteca/internal/db"
	"biblioteca/internal/model"
	"biblioteca/internal/repository"
)

var defaultCategories = []model.Category{
	{
		Name:        "Estructuras de Datos",
		Description: "Arrays, listas, pilas, colas, árboles y grafos",
		Color:       "#a8c8ec",
		Icon:        "📊",
	},
	{
		Name:        "Bases de Datos",
		Description: "Modelado, SQL, NoSQL y administración",
		Color:       "#b8a9d9",
		Icon:        "🗄️",
	},
	{
		Name:        "Ingeniería de Software",
		Description: "Metodologías, patrones y arquitectura",
		Color:       "#ffdfba",
		Icon:        "⚙️",
	},
	{
		Name:        "Sistemas Operativos",
		Description: "Procesos, memoria, archivos y concurrencia",
		Color:       "#bae1ff",
		Icon:        "💻",
	},
}

func main() {
	cfg := config.Load()

	gormDB, err := db.NewPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Concept{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	ctx := context.Background()

	if err := seedCategories(ctx, gormDB); err != nil {
		log.Fatalf("seed categories: %v", err)
	}
	if err := seedAdminUser(ctx, gormDB); err != nil {
		log.Fatalf("seed admin user: %v", err)
	}

	log.Println("seed completed")
}

func seedCategories(ctx context.Context, gormDB *gorm.DB) error {
	repo := repository.NewCategoryRepository(gormDB)

	for _, category := range defaultCategories {
		existing, err := repo.FindByName(ctx, category.Name)
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}
		if existing != nil {
			log.Printf("category already exists: %s", category.Name)
			continue
		}

		category.Active = true
		if err := repo.Create(ctx, &category); err != nil {
			return err
		}
		log.Printf("category created: %s", category.Name)
	}
	return nil
}

func seedAdminUser(ctx context.Context, gormDB *gorm.DB) error {
	repo := repository.NewUserRepository(gormDB)

	email := "admin@biblioteca.com"
	existing, err := repo.FindByEmail(ctx, email)
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}
	if existing != nil {
		log.Printf("admin user already exists: %s", email)
		return nil
	}

	hash, err := auth.HashPassword("Admin123!")
	if err != nil {
		return err
	}

	admin := &model.User{
		Name:         "Administrador",
		Email:        email,
		Phone:        "3001234567",
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		Active:       true,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("admin user created: %s", email)
	return nil
}
