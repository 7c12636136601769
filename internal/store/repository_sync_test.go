package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/logger"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/models"
	"github.com/DATA-DOG/go-sqlmock"
)

func newTestSyncRepo(t *testing.T) (*directorySyncRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	wrapped, mock, db := newTestDB(t)
	repo := &directorySyncRepository{
		db:     wrapped,
		logger: logger.Nop(),
	}
	return repo, mock, db
}

func TestApplySync_ImportsNewUserAndGroup(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	userDN := "CN=John Doe,CN=Users,DC=example,DC=com"
	syncedAt := time.Now()

	mock.ExpectBegin()

	mock.ExpectQuery("SELECT user_id, email, name, auth_mode").
		WithArgs("jdoe").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("jdoe", "jdoe@example.com", "John Doe", userDN).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(10)))

	mock.ExpectQuery("SELECT group_id, description, source").
		WithArgs("netadmins").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("INSERT INTO groups").
		WithArgs("netadmins", "network admins", "CN=netadmins,OU=Groups,DC=example,DC=com").
		WillReturnRows(sqlmock.NewRows([]string{"group_id"}).AddRow(int64(20)))

	mock.ExpectQuery("SELECT user_id, directory_dn").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "directory_dn"}).AddRow(int64(10), userDN))

	mock.ExpectQuery("SELECT ug.user_id").
		WithArgs(int64(20)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))
	mock.ExpectExec("INSERT INTO user_groups").
		WithArgs(int64(10), int64(20)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec("UPDATE directory_configs").
		WithArgs(int64(1), syncedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := repo.ApplySync(context.Background(), 1, syncedAt,
		[]models.User{{Username: "jdoe", Email: "jdoe@example.com", Name: "John Doe", DirectoryDN: userDN}},
		[]models.Group{{Name: "netadmins", Description: "network admins", DirectoryDN: "CN=netadmins,OU=Groups,DC=example,DC=com"}},
		map[string][]string{"netadmins": {userDN}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := models.SyncResult{UsersCreated: 1, GroupsCreated: 1, MembershipsCreated: 1}
	if result != want {
		t.Errorf("expected %+v, got %+v", want, result)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApplySync_UnchangedSnapshotIsIdempotent(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	userDN := "CN=John Doe,CN=Users,DC=example,DC=com"
	groupDN := "CN=netadmins,OU=Groups,DC=example,DC=com"
	syncedAt := time.Now()

	mock.ExpectBegin()

	mock.ExpectQuery("SELECT user_id, email, name, auth_mode").
		WithArgs("jdoe").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "email", "name", "auth_mode", "directory_dn"}).
			AddRow(int64(10), "jdoe@example.com", "John Doe", "directory", userDN))

	mock.ExpectQuery("SELECT group_id, description, source").
		WithArgs("netadmins").
		WillReturnRows(sqlmock.NewRows([]string{"group_id", "description", "source", "directory_dn"}).
			AddRow(int64(20), "network admins", "directory", groupDN))

	mock.ExpectQuery("SELECT user_id, directory_dn").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "directory_dn"}).AddRow(int64(10), userDN))

	mock.ExpectQuery("SELECT ug.user_id").
		WithArgs(int64(20)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(10)))

	mock.ExpectExec("UPDATE directory_configs").
		WithArgs(int64(1), syncedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := repo.ApplySync(context.Background(), 1, syncedAt,
		[]models.User{{Username: "jdoe", Email: "jdoe@example.com", Name: "John Doe", DirectoryDN: userDN}},
		[]models.Group{{Name: "netadmins", Description: "network admins", DirectoryDN: groupDN}},
		map[string][]string{"netadmins": {userDN}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Total() != 0 {
		t.Errorf("expected zero changes for unchanged snapshot, got %+v", result)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApplySync_LocalAccountKeepsAuthModeAndDN(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	syncedAt := time.Now()

	mock.ExpectBegin()

	// A local account with matching username: only email and name refresh,
	// the DN column stays as it was.
	mock.ExpectQuery("SELECT user_id, email, name, auth_mode").
		WithArgs("jdoe").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "email", "name", "auth_mode", "directory_dn"}).
			AddRow(int64(10), "old@example.com", "John Doe", "local", ""))

	mock.ExpectExec("UPDATE users").
		WithArgs(int64(10), "new@example.com", "John Doe", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery("SELECT user_id, directory_dn").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "directory_dn"}))

	mock.ExpectExec("UPDATE directory_configs").
		WithArgs(int64(1), syncedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := repo.ApplySync(context.Background(), 1, syncedAt,
		[]models.User{{Username: "jdoe", Email: "new@example.com", Name: "John Doe", DirectoryDN: "CN=John Doe,DC=example,DC=com"}},
		nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.UsersUpdated != 1 {
		t.Errorf("expected 1 updated user, got %+v", result)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApplySync_ShadowedLocalGroupIsSkipped(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	userDN := "CN=John Doe,CN=Users,DC=example,DC=com"
	syncedAt := time.Now()

	mock.ExpectBegin()

	mock.ExpectQuery("SELECT group_id, description, source").
		WithArgs("operators").
		WillReturnRows(sqlmock.NewRows([]string{"group_id", "description", "source", "directory_dn"}).
			AddRow(int64(5), "hand-made group", "local", ""))

	mock.ExpectQuery("SELECT user_id, directory_dn").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "directory_dn"}).AddRow(int64(10), userDN))

	// No membership reconciliation for the shadowed group.
	mock.ExpectExec("UPDATE directory_configs").
		WithArgs(int64(1), syncedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := repo.ApplySync(context.Background(), 1, syncedAt,
		nil,
		[]models.Group{{Name: "operators", Description: "from directory", DirectoryDN: "CN=operators,DC=example,DC=com"}},
		map[string][]string{"operators": {userDN}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total() != 0 {
		t.Errorf("expected no changes when the group is locally managed, got %+v", result)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApplySync_RemovesStaleDirectoryMembership(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	groupDN := "CN=netadmins,OU=Groups,DC=example,DC=com"
	syncedAt := time.Now()

	mock.ExpectBegin()

	mock.ExpectQuery("SELECT group_id, description, source").
		WithArgs("netadmins").
		WillReturnRows(sqlmock.NewRows([]string{"group_id", "description", "source", "directory_dn"}).
			AddRow(int64(20), "network admins", "directory", groupDN))

	mock.ExpectQuery("SELECT user_id, directory_dn").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "directory_dn"}))

	// User 10 is a directory-mode member locally but absent upstream.
	mock.ExpectQuery("SELECT ug.user_id").
		WithArgs(int64(20)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(10)))
	mock.ExpectExec("DELETE FROM user_groups").
		WithArgs(int64(10), int64(20)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec("UPDATE directory_configs").
		WithArgs(int64(1), syncedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := repo.ApplySync(context.Background(), 1, syncedAt,
		nil,
		[]models.Group{{Name: "netadmins", Description: "network admins", DirectoryDN: groupDN}},
		map[string][]string{"netadmins": {}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MembershipsRemoved != 1 {
		t.Errorf("expected 1 removed membership, got %+v", result)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApplySync_MidRunFailureRollsBack(t *testing.T) {
	repo, mock, db := newTestSyncRepo(t)
	defer db.Close()

	mock.ExpectBegin()

	mock.ExpectQuery("SELECT user_id, email, name, auth_mode").
		WithArgs("jdoe").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(10)))

	mock.ExpectQuery("SELECT user_id, email, name, auth_mode").
		WithArgs("broken").
		WillReturnError(errors.New("connection reset"))

	mock.ExpectRollback()

	_, err := repo.ApplySync(context.Background(), 1, time.Now(),
		[]models.User{
			{Username: "jdoe", Email: "jdoe@example.com", Name: "John Doe", DirectoryDN: "CN=jdoe,DC=example,DC=com"},
			{Username: "broken"},
		},
		nil, nil)
	if err == nil {
		t.Fatal("expected mid-run failure to surface")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expected rollback, not commit: %v", err)
	}
}
