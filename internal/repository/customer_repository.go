package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/streamtv/internal/utils"
)

// Customer mirrors the 'cust' table. Dates are "YYYY-MM-DD" strings.
type Customer struct {
	CustID       string
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Email        string
	CreditCard   string
	MemberSince  string
	RenewalDate  string
}

type CustomerRepo struct{ DB *sql.DB }

func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{DB: db} }

// ErrUsernameExists is returned when registering a username that is taken.
var ErrUsernameExists = errors.New("username already exists")

// custIDPrefix is the literal prefix of every customer ID. IDs are formed as
// "cust0" plus a three-digit zero-padded suffix (cust0007). The scheme
// breaks once the suffix needs a fourth digit: the ID grows a character and
// MAX(custID) no longer orders IDs numerically.
const custIDPrefix = "cust0"

// createAttempts bounds the retry loop for customer ID allocation.
const createAttempts = 3

// Create registers a new customer and returns the allocated customer ID.
// Both member-since and renewal dates are set to today. The ID is the next
// sequential suffix after the current maximum; allocation runs inside a
// transaction and retries on a primary key collision so two concurrent
// registrations cannot silently share an ID.
func (r *CustomerRepo) Create(ctx context.Context, username, password, firstName, lastName, email, creditCard string, cost int) (string, error) {
	username = strings.TrimSpace(username)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return "", err
	}
	today := time.Now().Format("2006-01-02")

	var lastErr error
	for attempt := 0; attempt < createAttempts; attempt++ {
		id, err := r.createOnce(ctx, username, hash, firstName, lastName, email, creditCard, today)
		if err == nil {
			return id, nil
		}
		if errors.Is(err, ErrUsernameExists) {
			return "", err
		}
		if !isDuplicateKey(err) {
			return "", err
		}
		lastErr = err // ID collision with a concurrent registration; reallocate
	}
	return "", lastErr
}

func (r *CustomerRepo) createOnce(ctx context.Context, username, hash, firstName, lastName, email, creditCard, today string) (string, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	var one int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM cust WHERE username = ? LIMIT 1", username).Scan(&one)
	if err == nil {
		return "", ErrUsernameExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}

	id := fmt.Sprintf("%s%03d", custIDPrefix, nextSuffix(ctx, tx)+1)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO cust (custID, username, password, fname, lname, email, creditcard, membersince, renewaldate)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, username, hash, firstName, lastName, email, creditCard, today, today)
	if err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// nextSuffix reads the numeric suffix of the highest existing customer ID,
// or 0 when the table is empty.
func nextSuffix(ctx context.Context, tx *sql.Tx) int {
	var maxID sql.NullString
	if err := tx.QueryRowContext(ctx, "SELECT MAX(custID) FROM cust").Scan(&maxID); err != nil || !maxID.Valid {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(maxID.String, custIDPrefix))
	if err != nil {
		return 0
	}
	return n
}

// GetByUsername fetches the customer row for a login attempt. sql.ErrNoRows
// passes through so the caller can treat a missing user and a wrong password
// identically.
func (r *CustomerRepo) GetByUsername(ctx context.Context, username string) (Customer, error) {
	username = strings.TrimSpace(username)
	var cu Customer
	err := r.DB.QueryRowContext(ctx,
		`SELECT custID, username, password, fname, lname, email, creditcard, membersince, renewaldate
		 FROM cust WHERE username = ? LIMIT 1`,
		username).Scan(&cu.CustID, &cu.Username, &cu.PasswordHash, &cu.FirstName, &cu.LastName,
		&cu.Email, &cu.CreditCard, &cu.MemberSince, &cu.RenewalDate)
	return cu, err
}
