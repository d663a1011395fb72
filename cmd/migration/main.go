package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/hugohenrick/farmacia-pos/internal/infrastructure/database"
)

func main() {
	migrationsPath := flag.String("path", "migrations", "diretório das migrações")
	flag.Parse()

	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	config := database.NewPostgresConfigFromEnv()

	if err := database.RunMigrations(config, *migrationsPath); err != nil {
		log.Fatalf("Erro ao executar migrações: %v", err)
	}

	log.Println("Migrações executadas com sucesso!")
}
