package domain

import "fmt"

type ErrorCode int64

const (
	ErrorCodeDuplicateID       ErrorCode = 1
	ErrorCodeNotFound          ErrorCode = 2
	ErrorCodeInvalidState      ErrorCode = 3
	ErrorCodeInvalidTransition ErrorCode = 4
	ErrorCodeValidationFailed  ErrorCode = 5
	ErrorCodeInternal          ErrorCode = 6
)

type Error struct {
	Code    ErrorCode
	Message string
}

func (e Error) Error() string {
	return e.Message
}

func DuplicateOrderError(orderID int64) error {
	return Error{
		Code:    ErrorCodeDuplicateID,
		Message: fmt.Sprintf("Order %d already exists", orderID),
	}
}

func EntityNotFoundError(entityName, entityID string) error {
	return Error{
		Code:    ErrorCodeNotFound,
		Message: fmt.Sprintf("Entity %q with ID %s not found", entityName, entityID),
	}
}

func OrderNotPendingError(orderID int64, status OrderStatus) error {
	return Error{
		Code:    ErrorCodeInvalidState,
		Message: fmt.Sprintf("Order %d is %s, expected PENDING", orderID, status),
	}
}

func OrderNotCancellableError(orderID int64, status OrderStatus) error {
	return Error{
		Code:    ErrorCodeInvalidState,
		Message: fmt.Sprintf("Order %d is %s and can no longer be cancelled", orderID, status),
	}
}

func InvalidTransitionError(orderID int64, from, to OrderStatus) error {
	return Error{
		Code:    ErrorCodeInvalidTransition,
		Message: fmt.Sprintf("Order %d cannot go from %s to %s", orderID, from, to),
	}
}

func ValidationFailedError(message string) error {
	return Error{
		Code:    ErrorCodeValidationFailed,
		Message: message,
	}
}

func UnknownDrinkError(drinkType string) error {
	return Error{
		Code:    ErrorCodeValidationFailed,
		Message: fmt.Sprintf("Unknown drink type %q", drinkType),
	}
}

func DuplicateEmailError(email string) error {
	return Error{
		Code:    ErrorCodeDuplicateID,
		Message: fmt.Sprintf("Customer with email %s already exists", email),
	}
}

// InvariantViolationError marks internal inconsistencies the scheduler must
// not paper over, e.g. a PROCESSING order with no bound barista.
func InvariantViolationError(message string) error {
	return Error{
		Code:    ErrorCodeInternal,
		Message: message,
	}
}
