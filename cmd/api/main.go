package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/nexo-seguridad/nexo-backend-go/internal/config"
	appHTTP "github.com/nexo-seguridad/nexo-backend-go/internal/handler/http"
	"github.com/nexo-seguridad/nexo-backend-go/internal/pkg/database"
	"github.com/nexo-seguridad/nexo-backend-go/internal/pkg/jwt"
	"github.com/nexo-seguridad/nexo-backend-go/internal/repository/postgresql"
	legalParamsService "github.com/nexo-seguridad/nexo-backend-go/internal/service/legalparams"
	payrollService "github.com/nexo-seguridad/nexo-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "nexo-seguridad"),
	)

	versionRepo := postgresql.NewParameterVersionRepository(db)
	indexRepo := postgresql.NewIndexRepository(db)
	simulationRepo := postgresql.NewSimulationRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	payrollEngine := payrollService.NewPayrollEngine(versionRepo, indexRepo, simulationRepo, logger)
	legalParamsSvc := legalParamsService.NewLegalParamsService(versionRepo, indexRepo)

	payrollHandler := appHTTP.NewPayrollHandler(payrollEngine)
	legalParamsHandler := appHTTP.NewLegalParamsHandler(legalParamsSvc)

	router := appHTTP.NewRouter(JWTService, payrollHandler, legalParamsHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
