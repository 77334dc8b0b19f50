package handler

import (
	"github.com/thumbtack/onlineshop/internal/core/ports"
)

// --- Request → Service input ---

func toPurchaseInput(req purchaseRequest) ports.PurchaseInput {
	return ports.PurchaseInput{
		ProductID: req.ID,
		Name:      req.Name,
		Price:     req.Price,
		Count:     req.Count,
	}
}

func toPurchaseInputs(reqs []purchaseRequest) []ports.PurchaseInput {
	out := make([]ports.PurchaseInput, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, toPurchaseInput(r))
	}
	return out
}

// --- Service output → Response ---

func toAccountResponse(v *ports.AccountView) accountResponse {
	return accountResponse{
		ID:         v.ID,
		FirstName:  v.FirstName,
		LastName:   v.LastName,
		Patronymic: v.Patronymic,
		Email:      v.Email,
		Address:    v.Address,
		Phone:      v.Phone,
		Position:   v.Position,
		Deposit:    v.Deposit,
		UserType:   v.UserType,
	}
}

func toAccountResponses(vs []ports.AccountView) []accountResponse {
	out := make([]accountResponse, 0, len(vs))
	for i := range vs {
		out = append(out, toAccountResponse(&vs[i]))
	}
	return out
}

func toCategoryResponse(v *ports.CategoryView) categoryResponse {
	return categoryResponse{
		ID:         v.ID,
		Name:       v.Name,
		ParentID:   v.ParentID,
		ParentName: v.ParentName,
	}
}

func toCategoryResponses(vs []ports.CategoryView) []categoryResponse {
	out := make([]categoryResponse, 0, len(vs))
	for i := range vs {
		out = append(out, toCategoryResponse(&vs[i]))
	}
	return out
}

func toProductResponse(v *ports.ProductView) productResponse {
	return productResponse{
		ID:         v.ID,
		Name:       v.Name,
		Price:      v.Price,
		Count:      v.Count,
		Categories: v.Categories,
	}
}

func toProductResponses(vs []ports.ProductView) []productResponse {
	out := make([]productResponse, 0, len(vs))
	for i := range vs {
		out = append(out, toProductResponse(&vs[i]))
	}
	return out
}

func toOrderLineResponse(v ports.OrderLineView) orderLineResponse {
	return orderLineResponse{ID: v.ID, Name: v.Name, Price: v.Price, Count: v.Count}
}

func toOrderLineResponses(vs []ports.OrderLineView) []orderLineResponse {
	out := make([]orderLineResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, toOrderLineResponse(v))
	}
	return out
}

func toPurchaseResponses(vs []ports.PurchaseView) []purchaseResponse {
	out := make([]purchaseResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, purchaseResponse{
			Source:      v.Source,
			Lines:       toOrderLineResponses(v.Lines),
			Total:       v.Total,
			PurchasedAt: v.PurchasedAt,
		})
	}
	return out
}
