package repositories

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rohits-web03/blogify/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- Helpers ---
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// every pooled connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { Close(db) })
	return db
}

func createUser(t *testing.T, users *UserRepository, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Password: "hash"}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

// --- Users ---
func TestUserCreateAndFind(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(setupTestDB(t))

	alice := createUser(t, users, "alice")
	if alice.ID == uuid.Nil {
		t.Fatal("expected id to be assigned")
	}

	byID, err := users.FindByID(ctx, alice.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if byID.Username != "alice" {
		t.Errorf("expected alice, got %s", byID.Username)
	}

	byName, err := users.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if byName.ID != alice.ID {
		t.Errorf("expected id %s, got %s", alice.ID, byName.ID)
	}

	if _, err := users.FindByUsername(ctx, "bob"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := users.FindByID(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUserUniqueUsername(t *testing.T) {
	users := NewUserRepository(setupTestDB(t))
	alice := createUser(t, users, "alice")

	err := users.Create(context.Background(), &models.User{Username: "alice", Password: "hash"})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	taken, err := users.UsernameTaken(context.Background(), "alice", uuid.Nil)
	if err != nil || !taken {
		t.Errorf("expected alice taken, got %v %v", taken, err)
	}
	taken, err = users.UsernameTaken(context.Background(), "alice", alice.ID)
	if err != nil || taken {
		t.Errorf("expected alice free for herself, got %v %v", taken, err)
	}
}

func TestUserSave(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(setupTestDB(t))
	alice := createUser(t, users, "alice")

	alice.Email = "alice@example.com"
	if err := users.Save(ctx, alice); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := users.FindByID(ctx, alice.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Email != "alice@example.com" {
		t.Errorf("expected email to persist, got %q", got.Email)
	}
}

// --- Posts ---
func TestPostListRecentOrdersAndLimits(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	alice := createUser(t, users, "alice")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		p := &models.Post{
			Heading:   fmt.Sprintf("post-%02d", i),
			AuthorID:  alice.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := posts.Create(ctx, p); err != nil {
			t.Fatalf("create post: %v", err)
		}
	}

	got, err := posts.ListRecent(ctx, 20)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 20 {
		t.Fatalf("expected 20 posts, got %d", len(got))
	}
	if got[0].Heading != "post-24" {
		t.Errorf("expected newest first, got %s", got[0].Heading)
	}
	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.After(got[i-1].CreatedAt) {
			t.Fatalf("posts out of order at %d", i)
		}
	}
	if got[0].Author.Username != "alice" {
		t.Errorf("expected author username, got %q", got[0].Author.Username)
	}
}

func TestPostFindSaveDelete(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	users := NewUserRepository(db)
	posts := NewPostRepository(db)
	alice := createUser(t, users, "alice")

	p := &models.Post{Heading: "hello", PostBody: "world", CoverImage: "uploads/a.jpg", AuthorID: alice.ID}
	if err := posts.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := posts.FindByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Author.Username != "alice" || found.PostBody != "world" {
		t.Errorf("unexpected post %+v", found)
	}

	found.Heading = "changed"
	if err := posts.Save(ctx, found); err != nil {
		t.Fatalf("Save: %v", err)
	}
	again, err := posts.FindByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if again.Heading != "changed" || again.CoverImage != "uploads/a.jpg" {
		t.Errorf("unexpected post after save %+v", again)
	}

	if err := posts.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := posts.FindByID(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := posts.Delete(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
