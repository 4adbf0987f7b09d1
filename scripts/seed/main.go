// Command seed resets the database and loads the welding curriculum used in
// development environments.
package main

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/academia-dev/academia-api/internal/models"
	"github.com/academia-dev/academia-api/internal/repository"
	"github.com/academia-dev/academia-api/pkg/config"
	"github.com/academia-dev/academia-api/pkg/database"
)

func strPtr(s string) *string { return &s }

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	tables := []string{"attendances", "enrollments", "cells", "modules", "students", "courses", "report_jobs", "users"}
	for _, table := range tables {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			log.Fatalf("failed to clear table %s: %v", table, err)
		}
	}
	log.Println("banco de dados limpo")

	users := repository.NewUserRepository(db)
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}
	admin := &models.User{
		Name:         "Administrador",
		Email:        "admin@academia.dev",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatalf("failed to create admin user: %v", err)
	}
	log.Printf("usuário admin criado: %s", admin.Email)

	courses := repository.NewCourseRepository(db)
	for _, input := range seedCourses() {
		id, err := courses.Create(ctx, input)
		if err != nil {
			log.Fatalf("failed to create course %q: %v", input.Name, err)
		}
		log.Printf("curso criado: %s (id=%d)", input.Name, id)
	}

	log.Println("seed concluído")
}

func seedCourses() []models.CourseInput {
	return []models.CourseInput{
		{
			Name:              "Solda Básica",
			Description:       strPtr("Curso introdutório às técnicas de soldagem"),
			TotalHours:        60,
			Prerequisites:     strPtr("Nenhum"),
			RequiredMaterials: strPtr("Equipamento de proteção individual"),
			Modules: []models.ModuleInput{
				{
					Name:        "Módulo 2 - Fundamentos",
					Description: strPtr("Técnicas fundamentais de soldagem"),
					Hours:       16,
					Cells: []models.CellInput{
						{Name: "Introdução à Soldagem 1F", Description: strPtr("Posição plana - Filete"), Hours: 4, TechnicalCode: strPtr("1F")},
						{Name: "Soldagem 2F", Description: strPtr("Posição horizontal - Filete"), Hours: 4, TechnicalCode: strPtr("2F")},
						{Name: "Soldagem 3F", Description: strPtr("Posição vertical - Filete"), Hours: 4, TechnicalCode: strPtr("3F")},
						{Name: "Soldagem 4F", Description: strPtr("Posição sobre-cabeça - Filete"), Hours: 4, TechnicalCode: strPtr("4F")},
					},
				},
				{
					Name:        "Módulo 3 - Técnicas Básicas",
					Description: strPtr("Soldagem em groove posições 1G e 2G"),
					Hours:       16,
					Cells: []models.CellInput{
						{Name: "Soldagem 1G - Parte 1", Description: strPtr("Posição plana - Groove"), Hours: 4, TechnicalCode: strPtr("1G")},
						{Name: "Soldagem 1G - Parte 2", Description: strPtr("Posição plana - Groove Avançado"), Hours: 4, TechnicalCode: strPtr("1G")},
						{Name: "Soldagem 2G - Parte 1", Description: strPtr("Posição horizontal - Groove"), Hours: 4, TechnicalCode: strPtr("2G")},
						{Name: "Soldagem 2G - Parte 2", Description: strPtr("Posição horizontal - Groove Avançado"), Hours: 4, TechnicalCode: strPtr("2G")},
					},
				},
			},
		},
		{
			Name:              "Solda Avançada",
			Description:       strPtr("Técnicas avançadas de soldagem para profissionais"),
			TotalHours:        80,
			Prerequisites:     strPtr("Curso de Solda Básica ou experiência equivalente"),
			RequiredMaterials: strPtr("Equipamento de proteção individual, ferramentas específicas"),
			Modules: []models.ModuleInput{
				{
					Name:        "Módulo 4 - Soldagem 3G",
					Description: strPtr("Técnicas de soldagem vertical em groove"),
					Hours:       18,
					Cells: []models.CellInput{
						{Name: "Soldagem 3G - Teoria", Description: strPtr("Fundamentos da soldagem vertical"), Hours: 4, TechnicalCode: strPtr("3G")},
						{Name: "Soldagem 3G - Prática Básica", Description: strPtr("Exercícios iniciais"), Hours: 6, TechnicalCode: strPtr("3G")},
						{Name: "Soldagem 3G - Prática Avançada", Description: strPtr("Exercícios de certificação"), Hours: 8, TechnicalCode: strPtr("3G")},
					},
				},
				{
					Name:        "Módulo 5 - Soldagem 4G",
					Description: strPtr("Técnicas de soldagem sobre-cabeça em groove"),
					Hours:       18,
					Cells: []models.CellInput{
						{Name: "Soldagem 4G - Teoria", Description: strPtr("Fundamentos da soldagem sobre-cabeça"), Hours: 4, TechnicalCode: strPtr("4G")},
						{Name: "Soldagem 4G - Prática Básica", Description: strPtr("Exercícios iniciais"), Hours: 6, TechnicalCode: strPtr("4G")},
						{Name: "Soldagem 4G - Prática Avançada", Description: strPtr("Exercícios de certificação"), Hours: 8, TechnicalCode: strPtr("4G")},
					},
				},
			},
		},
	}
}
