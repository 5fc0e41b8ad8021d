package handler

import "sdrdemo/internal/repository"

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Customer *CustomerHandler
	Health   *HealthHandler
}

func NewHandlers(repo repository.CustomerRepositoryInterface, basePath string) *Handlers {
	return &Handlers{
		Customer: NewCustomerHandler(repo, basePath),
		Health:   &HealthHandler{DB: repo},
	}
}
