package postgres

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/culturalite/backend/internal/domain"
)

type SeederHasher interface {
	Hash(password string) (string, error)
}

// Seed fills a dev database with an admin, a vendor, the demo categories and
// a handful of events in each moderation state. Restart safe: duplicates are
// ignored.
func Seed(ctx context.Context, db *sql.DB, users *UserRepo, hasher SeederHasher) {
	type seedUser struct {
		Email string
		First string
		Last  string
		Role  string
		Org   string
		Pass  string
	}

	seeds := []seedUser{
		{Email: "admin@culturalite.local", First: "Site", Last: "Admin", Role: string(domain.RoleAdmin), Pass: "AdminPassword123"},
		{Email: "vendor@culturalite.local", First: "Asha", Last: "Iyer", Role: string(domain.RoleVendor), Org: "Chennai Arts Collective", Pass: "VendorPassword123"},
	}

	vendorID := ""
	for _, s := range seeds {
		hash, err := hasher.Hash(s.Pass)
		if err != nil {
			log.Printf("[seed] hash failed (%s): %v", s.Email, err)
			continue
		}

		u := domain.User{
			ID:           uuid.NewString(),
			Email:        s.Email,
			PasswordHash: hash,
			FirstName:    s.First,
			LastName:     s.Last,
		}
		p := domain.Profile{
			ID:               uuid.NewString(),
			UserID:           u.ID,
			Role:             s.Role,
			OrganizationName: s.Org,
			IsVerified:       true,
		}

		created, _, err := users.CreateWithProfile(ctx, u, p)
		if err != nil {
			// ignore duplicates (restart safe)
			continue
		}
		if s.Role == string(domain.RoleVendor) {
			vendorID = created.ID
		}
	}

	if vendorID == "" {
		var existing string
		err := db.QueryRowContext(ctx,
			`SELECT u.id FROM users u JOIN profiles p ON p.user_id = u.id WHERE p.role = 'vendor' LIMIT 1`,
		).Scan(&existing)
		if err != nil {
			log.Printf("[seed] no vendor available for events: %v", err)
			return
		}
		vendorID = existing
	}

	categoryIDs := map[string]int64{}
	for _, name := range []string{"Music", "Dance", "Festival"} {
		var id int64
		err := db.QueryRowContext(ctx, `
INSERT INTO categories (name, slug) VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id;
`, name, domain.Slugify(name)).Scan(&id)
		if err != nil {
			log.Printf("[seed] category %q: %v", name, err)
			continue
		}
		categoryIDs[name] = id
	}

	type seedEvent struct {
		Title    string
		City     string
		Category string
		Status   domain.EventStatus
		InDays   int
	}

	events := []seedEvent{
		{Title: "Carnatic Night", City: "Chennai", Category: "Music", Status: domain.StatusApproved, InDays: 7},
		{Title: "Kathak Evening", City: "Mumbai", Category: "Dance", Status: domain.StatusApproved, InDays: 14},
		{Title: "Indie Showcase", City: "Delhi", Category: "Music", Status: domain.StatusPending, InDays: 21},
	}

	for _, e := range events {
		catID, ok := categoryIDs[e.Category]
		if !ok {
			continue
		}
		_, err := db.ExecContext(ctx, `
INSERT INTO events (title, description, city, event_date, image_url, status, category_id, vendor_id)
SELECT $1, $2, $3, $4, $5, $6, $7, $8
WHERE NOT EXISTS (SELECT 1 FROM events WHERE title = $1);
`,
			e.Title, "Seeded demo event.", e.City,
			time.Now().AddDate(0, 0, e.InDays).UTC(),
			"https://images.culturalite.local/demo.jpg",
			string(e.Status), catID, vendorID,
		)
		if err != nil {
			log.Printf("[seed] event %q: %v", e.Title, err)
		}
	}

	log.Println("[seed] postgres seeded")
}
