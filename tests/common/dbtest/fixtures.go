//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// TestPassword matches the bcrypt hash every fixture user is created with.
const TestPassword = "password123"

const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email string, roles ...string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, password_hash, full_name, is_active) VALUES ($1, $2, $3, $4, true) ON CONFLICT (email) DO NOTHING",
		userID, email, testPasswordHash, "Test "+strings.Split(email, "@")[0])
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		require.NoError(t, db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID))
	}

	if len(roles) == 0 {
		roles = []string{"parent"}
	}
	for _, role := range roles {
		_, err := db.Exec(ctx, "INSERT INTO user_roles (user_id, role) VALUES ($1, $2) ON CONFLICT DO NOTHING", userID, role)
		require.NoError(t, err)
	}

	return userID
}

func CreateTestSwimmer(t *testing.T, db DBLike, parentID uuid.UUID, firstName string) uuid.UUID {
	t.Helper()

	swimmerID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO swimmers (id, parent_id, first_name) VALUES ($1, $2, $3)",
		swimmerID, parentID, firstName)
	require.NoError(t, err)
	return swimmerID
}

// CreateFundedSwimmer inserts a swimmer paid through a funding source and
// returns the swimmer and funding source ids.
func CreateFundedSwimmer(t *testing.T, db DBLike, parentID uuid.UUID, firstName string) (swimmerID, fundingSourceID uuid.UUID) {
	t.Helper()

	swimmerID, fundingSourceID = uuid.New(), uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO swimmers (id, parent_id, first_name, payment_type, funding_source_id) VALUES ($1, $2, $3, 'funding_source', $4)",
		swimmerID, parentID, firstName, fundingSourceID)
	require.NoError(t, err)
	return swimmerID, fundingSourceID
}

// CreateTestPurchaseOrder inserts an active order valid from a month ago to
// three months out.
func CreateTestPurchaseOrder(t *testing.T, db DBLike, swimmerID, fundingSourceID uuid.UUID, authorized, booked int) uuid.UUID {
	t.Helper()

	poID := uuid.New()
	today := time.Now().UTC()
	_, err := db.Exec(context.Background(),
		`INSERT INTO purchase_orders (id, swimmer_id, funding_source_id, status, sessions_authorized, sessions_booked, start_date, end_date)
		 VALUES ($1, $2, $3, 'active', $4, $5, $6, $7)`,
		poID, swimmerID, fundingSourceID, authorized, booked, today.AddDate(0, -1, 0), today.AddDate(0, 3, 0))
	require.NoError(t, err)
	return poID
}

func PurchaseOrderUsage(t *testing.T, db DBLike, poID uuid.UUID) (authorized, booked int) {
	t.Helper()

	err := db.QueryRow(context.Background(),
		"SELECT sessions_authorized, sessions_booked FROM purchase_orders WHERE id = $1", poID).Scan(&authorized, &booked)
	require.NoError(t, err)
	return authorized, booked
}

// CreateTestSession inserts an open session starting at start and lasting 30 minutes.
func CreateTestSession(t *testing.T, db DBLike, start time.Time, capacity int) uuid.UUID {
	t.Helper()

	sessionID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO sessions (id, start_time, end_time, location, max_capacity, status) VALUES ($1, $2, $3, 'Main Pool', $4, 'open')",
		sessionID, start, start.Add(30*time.Minute), capacity)
	require.NoError(t, err)
	return sessionID
}

func SessionBookingCount(t *testing.T, db DBLike, sessionID uuid.UUID) (count int, isFull bool) {
	t.Helper()

	err := db.QueryRow(context.Background(),
		"SELECT booking_count, is_full FROM sessions WHERE id = $1", sessionID).Scan(&count, &isFull)
	require.NoError(t, err)
	return count, isFull
}

// SeedReferenceData inserts the reference rows every test expects.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, full_name)
		VALUES (gen_random_uuid(), 'system@swimbooking.local', $1, 'System')
		ON CONFLICT (email) DO NOTHING;
	`, testPasswordHash)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates all tables and reseeds reference data.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
