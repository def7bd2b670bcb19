package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ledgerbook/backend/internal/integration/persistence/model"
)

func registerLedgerSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, aUserExistsWithEmailAndPassword)
	ctx.Step(`^a superadmin exists with email "([^"]*)" and password "([^"]*)"$`, aSuperadminExistsWithEmailAndPassword)
	ctx.Step(`^the user "([^"]*)" is disabled$`, theUserIsDisabled)
	ctx.Step(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, iAmLoggedInAsWithPassword)
	ctx.Step(`^I am not authenticated$`, iAmNotAuthenticated)
	ctx.Step(`^the user id of "([^"]*)" is saved as "([^"]*)"$`, theUserIDIsSavedAs)
	ctx.Step(`^the invite token for "([^"]*)" is saved as "([^"]*)"$`, theInviteTokenIsSavedAs)
	ctx.Step(`^the "([^"]*)" table should contain (\d+) rows?$`, theTableShouldContainRows)
}

func createUser(email, password string, superadmin bool) error {
	// MinCost keeps scenario setup fast; strength is covered by unit tests.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := model.UserModel{
		ID:           uuid.New(),
		Email:        strings.ToLower(email),
		Name:         "Test User",
		PasswordHash: string(hash),
		Superadmin:   superadmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return testDb.Conn().Create(&user).Error
}

func aUserExistsWithEmailAndPassword(ctx context.Context, email, password string) error {
	return createUser(email, password, false)
}

func aSuperadminExistsWithEmailAndPassword(ctx context.Context, email, password string) error {
	return createUser(email, password, true)
}

func theUserIsDisabled(ctx context.Context, email string) error {
	result := testDb.Conn().Model(&model.UserModel{}).
		Where("email = ?", strings.ToLower(email)).
		Update("active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no user with email %q", email)
	}
	return nil
}

func iAmLoggedInAsWithPassword(ctx context.Context, email, password string) error {
	tc := getTestContext(ctx)

	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}

	if err := tc.executeRequest(http.MethodPost, "/api/v1/auth/login", payload); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusOK {
		return fmt.Errorf("login as %q failed with status %d. Body: %s",
			email, tc.response.StatusCode, string(tc.responseBody))
	}

	var out struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(tc.responseBody, &out); err != nil {
		return fmt.Errorf("failed to parse login response: %w", err)
	}

	tc.accessToken = out.AccessToken
	tc.refreshToken = out.RefreshToken
	return nil
}

func iAmNotAuthenticated(ctx context.Context) error {
	tc := getTestContext(ctx)
	tc.accessToken = ""
	tc.refreshToken = ""
	return nil
}

func theUserIDIsSavedAs(ctx context.Context, email, name string) error {
	tc := getTestContext(ctx)

	var user model.UserModel
	err := testDb.Conn().Where("email = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		return fmt.Errorf("no user with email %q: %w", email, err)
	}

	tc.vars[name] = user.ID.String()
	return nil
}

// Invite tokens travel by email in production; scenarios read them from the
// database instead.
func theInviteTokenIsSavedAs(ctx context.Context, email, name string) error {
	tc := getTestContext(ctx)

	var invite model.TeamInviteModel
	err := testDb.Conn().
		Where("email = ?", strings.ToLower(email)).
		Order("created_at DESC").
		First(&invite).Error
	if err != nil {
		return fmt.Errorf("no invite for email %q: %w", email, err)
	}

	tc.vars[name] = invite.Token
	return nil
}

func theTableShouldContainRows(ctx context.Context, table string, expected int) error {
	count, err := testDb.Count(table)
	if err != nil {
		return err
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d rows in %q, got %d", expected, table, count)
	}
	return nil
}
