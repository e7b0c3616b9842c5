package database

import (
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

type ErrorClass int

const (
	ErrorClassPermanent ErrorClass = iota
	ErrorClassUniqueViolation
	ErrorClassForeignKeyViolation
)

const (
	mysqlDuplicateEntry  = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
)

func ClassifyError(err error) ErrorClass {
	if err == nil {
		return ErrorClassPermanent
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return ErrorClassUniqueViolation
		case "23503":
			return ErrorClassForeignKeyViolation
		}
		return ErrorClassPermanent
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDuplicateEntry:
			return ErrorClassUniqueViolation
		case mysqlNoReferencedRow, mysqlRowIsReferenced:
			return ErrorClassForeignKeyViolation
		}
		return ErrorClassPermanent
	}

	return ErrorClassPermanent
}

// TranslateUniqueViolation maps a unique-constraint failure on a phone or
// email column to ErrDuplicatePhone or ErrDuplicateEmail. Other errors are
// returned unchanged.
func TranslateUniqueViolation(err error) error {
	if ClassifyError(err) != ErrorClassUniqueViolation {
		return err
	}

	var constraint string
	var pqErr *pq.Error
	var myErr *mysql.MySQLError
	switch {
	case errors.As(err, &pqErr):
		constraint = pqErr.Constraint
	case errors.As(err, &myErr):
		constraint = mysqlKey(myErr.Message)
	}

	switch {
	case strings.Contains(constraint, "_phone"):
		return ErrDuplicatePhone
	case strings.Contains(constraint, "_email"):
		return ErrDuplicateEmail
	}
	return err
}

// mysqlKey returns the key name from "Duplicate entry '...' for key '...'".
// The entry value is user data and is not searched.
func mysqlKey(message string) string {
	const marker = "for key '"
	i := strings.LastIndex(message, marker)
	if i < 0 {
		return ""
	}
	return strings.TrimSuffix(message[i+len(marker):], "'")
}

var (
	ErrStoreNotFound    = errors.New("store not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrChatNotFound     = errors.New("chat not found")
	ErrDuplicatePhone   = errors.New("phone number already registered")
	ErrDuplicateEmail   = errors.New("email already registered")
)
