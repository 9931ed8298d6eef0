package handlers

import (
	"pinjamdesa/internal/media"
	"pinjamdesa/internal/repos"
	"pinjamdesa/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	DashboardHandler    *DashboardHandler
	AvailabilityHandler *AvailabilityHandler
	ItemHandler         *ItemHandler
	LoanHandler         *LoanHandler
	ReturnHandler       *ReturnHandler
	MemberHandler       *MemberHandler
}

func NewDeps(db *sqlx.DB, auth *services.AuthService, photos *media.Store) *Deps {
	itemRepo := repos.NewItemRepo(db)
	memberRepo := repos.NewMemberRepo(db)
	loanRepo := repos.NewLoanRepo(db)
	returnRepo := repos.NewReturnRepo(db)

	itemSvc := services.NewItemService(itemRepo)
	memberSvc := services.NewMemberService(memberRepo)
	stockSvc := services.NewStockService(itemRepo, loanRepo)
	loanSvc := services.NewLoanService(loanRepo, itemRepo, memberRepo)

	return &Deps{
		DashboardHandler:    &DashboardHandler{Stock: stockSvc, Loans: loanSvc, Members: memberSvc, Items: itemSvc},
		AvailabilityHandler: &AvailabilityHandler{Stock: stockSvc},
		ItemHandler:         &ItemHandler{Items: itemSvc, Photos: photos},
		LoanHandler:         &LoanHandler{Loans: loanSvc},
		ReturnHandler:       &ReturnHandler{Returns: returnRepo},
		MemberHandler:       &MemberHandler{Members: memberSvc},
	}
}
