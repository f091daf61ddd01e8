// cmd/api/main.go
package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"libracore/internal/catalog"
	"libracore/internal/circulation"
	"libracore/internal/importer"
	"libracore/internal/membership"
	"libracore/internal/store"
	"libracore/pkg/ledger"
)

func main() {
	journal := ledger.New()
	members := store.NewMemberStore()
	books := store.NewBookStore()
	loans := store.NewLoanStore()
	holds := store.NewHoldStore()

	policies := circulation.NewPolicyTable()
	fees := circulation.DefaultFees()
	fees.RatePerDay = getEnvFloat("FINE_RATE_PER_DAY", fees.RatePerDay)
	fees.MaxAmount = getEnvFloat("FINE_MAX_AMOUNT", fees.MaxAmount)
	fees.ReplacementCost = getEnvFloat("REPLACEMENT_COST", fees.ReplacementCost)

	membershipSvc := membership.NewService(journal, members)
	catalogSvc := catalog.NewService(journal, books)
	circulationSvc := circulation.NewService(journal, loans, holds, members, books, policies, fees)
	importerSvc := importer.NewService(catalogSvc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		membership.NewHandler(membershipSvc).Routes(r)
		catalog.NewHandler(catalogSvc).Routes(r)
		circulation.NewHandler(circulationSvc, policies).Routes(r)
		importer.NewHandler(importerSvc).Routes(r)
	})

	port := getEnv("PORT", "8080")
	log.Printf("Library service listening on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
