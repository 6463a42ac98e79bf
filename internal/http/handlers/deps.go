package handlers

import (
	"github.com/jmoiron/sqlx"

	"mandaladaka/internal/repos"
	"mandaladaka/internal/services"
)

type Deps struct {
	AuthHandler      *AuthHandler
	WaiterHandler    *WaiterHandler
	KitchenHandler   *KitchenHandler
	AdminHandler     *AdminHandler
	MenuHandler      *MenuHandler
	DashboardHandler *DashboardHandler
	Auth             *services.AuthService
}

func NewDeps(db *sqlx.DB, auth *services.AuthService) *Deps {
	tableRepo := repos.NewTableRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	prodRepo := repos.NewProductRepo(db)
	userRepo := repos.NewUserRepo(db)

	waiterSvc := services.NewWaiterService(tableRepo, orderRepo, prodRepo)
	kitchenSvc := services.NewKitchenService(orderRepo)
	catalogSvc := services.NewCatalogService(prodRepo)
	staffSvc := services.NewStaffService(userRepo)

	return &Deps{
		AuthHandler:      &AuthHandler{Auth: auth},
		WaiterHandler:    &WaiterHandler{Waiter: waiterSvc},
		KitchenHandler:   &KitchenHandler{Kitchen: kitchenSvc},
		AdminHandler:     &AdminHandler{Catalog: catalogSvc, Staff: staffSvc},
		MenuHandler:      &MenuHandler{Catalog: catalogSvc},
		DashboardHandler: &DashboardHandler{Waiter: waiterSvc},
		Auth:             auth,
	}
}
