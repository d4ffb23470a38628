package httpapi

import (
	"time"

	"coffee-scheduler/internal/domain"
)

// DTO field names follow the contract the dashboard already polls; renaming
// anything here breaks the frontend.

type orderDTO struct {
	ID              int64      `json:"id"`
	CustomerName    string     `json:"customerName"`
	DrinkType       string     `json:"drinkType"`
	PrepTimeMinutes int        `json:"prepTimeMinutes"`
	Price           float64    `json:"price"`
	ArrivalTime     time.Time  `json:"arrivalTime"`
	StartTime       *time.Time `json:"startTime"`
	EndTime         *time.Time `json:"endTime"`
	Status          string     `json:"status"`
	PriorityScore   float64    `json:"priorityScore"`
	TimesSkipped    int        `json:"timesSkipped"`
	IsLoyaltyMember bool       `json:"isLoyaltyMember"`
	WaitTimeMinutes float64    `json:"waitTimeMinutes"`
}

type baristaDTO struct {
	ID                   int64      `json:"id"`
	Name                 string     `json:"name"`
	BusyUntil            *time.Time `json:"busyUntil"`
	TotalOrdersCompleted int        `json:"totalOrdersCompleted"`
	TotalMinutesAssigned int        `json:"totalMinutesAssigned"`
	Status               string     `json:"status"`
}

type customerDTO struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	IsLoyaltyMember bool   `json:"isLoyaltyMember"`
}

type placeOrderRequest struct {
	CustomerName string `json:"customerName"`
	DrinkType    string `json:"drinkType"`
	CustomerID   *int64 `json:"customerId"`
	Customer     *struct {
		ID int64 `json:"id"`
	} `json:"customer"`
}

type createCustomerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	IsLoyaltyMember bool   `json:"isLoyaltyMember"`
}

func mapOrder(order domain.Order, now time.Time) orderDTO {
	wait := order.WaitMinutes(now)
	if order.EndTime != nil {
		wait = order.EndTime.Sub(order.ArrivalTime).Minutes()
	}
	return orderDTO{
		ID:              order.ID,
		CustomerName:    order.CustomerName,
		DrinkType:       order.DrinkType,
		PrepTimeMinutes: order.PrepTimeMinutes,
		Price:           order.Price,
		ArrivalTime:     order.ArrivalTime,
		StartTime:       order.StartTime,
		EndTime:         order.EndTime,
		Status:          order.Status.String(),
		PriorityScore:   order.PriorityScore,
		TimesSkipped:    order.TimesSkipped,
		IsLoyaltyMember: order.LoyaltyMember,
		WaitTimeMinutes: wait,
	}
}

func mapBarista(barista domain.Barista, now time.Time) baristaDTO {
	return baristaDTO{
		ID:                   barista.ID,
		Name:                 barista.Name,
		BusyUntil:            barista.BusyUntil,
		TotalOrdersCompleted: barista.TotalOrdersCompleted,
		TotalMinutesAssigned: barista.TotalMinutesAssigned,
		Status:               barista.StatusString(now),
	}
}

func mapCustomer(customer domain.Customer) customerDTO {
	return customerDTO{
		ID:              customer.ID,
		Name:            customer.Name,
		Email:           customer.Email,
		IsLoyaltyMember: customer.LoyaltyMember,
	}
}
