//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"tourflow/internal/domain"
	mysqlrepo "tourflow/internal/storage/mysql"
)

// ---------- small helpers ----------
func pstr(s string) *string { return &s }

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/migrations)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

// ---------- the test ----------
func TestRepo_MySQL_BookingLifecycle(t *testing.T) {
	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=tourflow",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "tourflow")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)

	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// Arrange — operator, traveler, destination
	opID, err := repo.CreateUser(ctx, domain.User{
		Email: "op@tourflow.dev", Username: "op", PasswordHash: "x", IsActive: true, IsOperator: true,
	})
	if err != nil {
		t.Fatalf("CreateUser operator: %v", err)
	}
	userID, err := repo.CreateUser(ctx, domain.User{
		Email: "ana@tourflow.dev", Username: "ana", PasswordHash: "x", FullName: pstr("Ana Tester"), IsActive: true,
	})
	if err != nil {
		t.Fatalf("CreateUser traveler: %v", err)
	}

	destID, err := repo.CreateDestination(ctx, domain.Destination{
		Title:       "Azores Hike",
		Description: "Crater lakes and hot springs.",
		Location:    "São Miguel, Portugal",
		Price:       650,
		IsActive:    true,
		OperatorID:  opID,
	})
	if err != nil {
		t.Fatalf("CreateDestination: %v", err)
	}

	// Booking round trip
	bookingID, err := repo.CreateBooking(ctx, domain.Booking{
		Reference:     "BK-TEST0001",
		UserID:        userID,
		DestinationID: destID,
		BookingDate:   time.Now().UTC(),
		TravelDate:    time.Now().UTC().AddDate(0, 2, 0),
		Travelers:     2,
		TotalPrice:    1300,
		Status:        domain.StatusPending,
		ContactEmail:  "ana@tourflow.dev",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	b, err := repo.GetBookingByReference(ctx, "BK-TEST0001")
	if err != nil {
		t.Fatalf("GetBookingByReference: %v", err)
	}
	if b.ID != bookingID || b.TotalPrice != 1300 {
		t.Fatalf("unexpected booking: %+v", b)
	}

	ok, err := repo.HasConfirmedBooking(ctx, userID, destID)
	if err != nil {
		t.Fatalf("HasConfirmedBooking: %v", err)
	}
	if ok {
		t.Fatal("pending booking reported as confirmed")
	}

	b.Status = domain.StatusConfirmed
	if err := repo.UpdateBooking(ctx, b); err != nil {
		t.Fatalf("UpdateBooking: %v", err)
	}
	if ok, _ = repo.HasConfirmedBooking(ctx, userID, destID); !ok {
		t.Fatal("confirmed booking not reported")
	}

	// Review + aggregate
	if _, err := repo.CreateReview(ctx, domain.Review{
		UserID: userID, DestinationID: destID, Rating: 4, Comment: "Lovely",
	}); err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	avg, err := repo.AverageRating(ctx, destID)
	if err != nil {
		t.Fatalf("AverageRating: %v", err)
	}
	if avg == nil || *avg != 4 {
		t.Fatalf("average = %v, want 4", avg)
	}
	if err := repo.SetDestinationRating(ctx, destID, 4.0); err != nil {
		t.Fatalf("SetDestinationRating: %v", err)
	}

	// Booking view joins the destination snapshot and counts reviews
	v, err := repo.GetBookingView(ctx, bookingID)
	if err != nil {
		t.Fatalf("GetBookingView: %v", err)
	}
	if v.Destination.ID != destID || v.Destination.Rating != 4.0 || v.Destination.ReviewCount != 1 {
		t.Fatalf("unexpected snapshot: %+v", v.Destination)
	}

	// Listings
	byUser, err := repo.ListBookingsByUser(ctx, userID, domain.PageQuery{Limit: 10})
	if err != nil {
		t.Fatalf("ListBookingsByUser: %v", err)
	}
	if len(byUser) != 1 {
		t.Fatalf("user listing: got %d, want 1", len(byUser))
	}
	byOp, err := repo.ListBookingsByOperator(ctx, opID, domain.PageQuery{Limit: 10})
	if err != nil {
		t.Fatalf("ListBookingsByOperator: %v", err)
	}
	if len(byOp) != 1 {
		t.Fatalf("operator listing: got %d, want 1", len(byOp))
	}

	// Soft-deleted bookings drop out of listings
	b.Status = domain.StatusDeleted
	if err := repo.UpdateBooking(ctx, b); err != nil {
		t.Fatalf("UpdateBooking to DELETED: %v", err)
	}
	byUser, _ = repo.ListBookingsByUser(ctx, userID, domain.PageQuery{Limit: 10})
	if len(byUser) != 0 {
		t.Fatalf("deleted booking still listed: %+v", byUser)
	}

	// Catalog filters
	loc := "miguel"
	ds, err := repo.ListDestinations(ctx, domain.DestinationsQuery{Location: &loc, Page: domain.PageQuery{Limit: 10}})
	if err != nil {
		t.Fatalf("ListDestinations: %v", err)
	}
	if len(ds) != 1 || ds[0].ID != destID {
		t.Fatalf("location filter: got %+v", ds)
	}

	st, err := repo.DashboardStats(ctx)
	if err != nil {
		t.Fatalf("DashboardStats: %v", err)
	}
	if st.TotalUsers != 2 || st.TotalDestinations != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}
