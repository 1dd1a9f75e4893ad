package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, rec
}

func TestGetIdentityAuthenticated(t *testing.T) {
	c, _ := testContext()
	userID := uuid.New()
	c.Set(ContextUserIDKey, userID)
	c.Set(ContextEmailKey, "admin@dealer.test")
	c.Set(ContextRoleKey, "ADMIN")

	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		t.Fatal("expected authenticated identity")
	}
	if id.UserID() != userID {
		t.Fatalf("user id = %s, want %s", id.UserID(), userID)
	}
	if id.Email() != "admin@dealer.test" {
		t.Fatalf("email = %q", id.Email())
	}
	if !id.HasRole("ADMIN") || id.HasRole("OWNER") {
		t.Fatalf("role checks wrong for role %q", id.Role())
	}
}

func TestGetIdentityMissingUser(t *testing.T) {
	c, _ := testContext()

	id := GetIdentity(c)
	if id.IsAuthenticated() {
		t.Fatal("expected unauthenticated identity without context keys")
	}
	if id.UserID() != uuid.Nil {
		t.Fatalf("user id = %s, want nil uuid", id.UserID())
	}
}

func TestGetIdentityBadUserIDType(t *testing.T) {
	c, _ := testContext()
	c.Set(ContextUserIDKey, "not-a-uuid")

	if GetIdentity(c).IsAuthenticated() {
		t.Fatal("expected unauthenticated identity for wrong user id type")
	}
}

func TestMustGetIdentityAbortsUnauthenticated(t *testing.T) {
	c, rec := testContext()

	if id := MustGetIdentity(c); id != nil {
		t.Fatalf("expected nil identity, got %+v", id)
	}
	if !c.IsAborted() {
		t.Fatal("expected request to be aborted")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestMustGetIdentityPassesAuthenticated(t *testing.T) {
	c, _ := testContext()
	c.Set(ContextUserIDKey, uuid.New())
	c.Set(ContextEmailKey, "manager@dealer.test")
	c.Set(ContextRoleKey, "MANAGER")

	id := MustGetIdentity(c)
	if id == nil {
		t.Fatal("expected identity")
	}
	if c.IsAborted() {
		t.Fatal("request must not be aborted for an authenticated caller")
	}
}
