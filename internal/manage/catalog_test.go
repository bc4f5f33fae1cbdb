package manage

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGCatalogApplicationFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	data := []byte(`{"name:en":"Wiki","OrganizationName:en":"SURF","landingPage":"https://wiki"}`)
	mock.ExpectQuery("select manage_id, manage_type, data from manage_applications").
		WithArgs("m1").
		WillReturnRows(sqlmock.NewRows([]string{"manage_id", "manage_type", "data"}).AddRow("m1", "saml20_sp", data))

	catalog := NewPGCatalog(db)
	entity, err := catalog.Application(context.Background(), "m1")
	if err != nil {
		t.Fatalf("Application: %v", err)
	}
	if entity.Unknown() {
		t.Fatalf("existing record must not be unknown: %v", entity)
	}
	if entity.ManageID() != "m1" || entity.String("type") != "saml20_sp" {
		t.Fatalf("unexpected entity: %v", entity)
	}
	if entity.Localized("name", "nl") != "Wiki" {
		t.Fatalf("payload fields must survive: %v", entity)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGCatalogApplicationMissingYieldsUnknownStub(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("select manage_id, manage_type, data from manage_applications").
		WithArgs("gone").
		WillReturnRows(sqlmock.NewRows([]string{"manage_id", "manage_type", "data"}))

	catalog := NewPGCatalog(db)
	entity, err := catalog.Application(context.Background(), "gone")
	if err != nil {
		t.Fatalf("missing rows are stubs, not errors: %v", err)
	}
	if !entity.Unknown() || entity.ManageID() != "gone" {
		t.Fatalf("expected unknown stub, got %v", entity)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGCatalogApplicationsPreservesOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("select manage_id, manage_type, data from manage_applications").
		WithArgs("m1").
		WillReturnRows(sqlmock.NewRows([]string{"manage_id", "manage_type", "data"}).AddRow("m1", "saml20_sp", []byte(`{}`)))
	mock.ExpectQuery("select manage_id, manage_type, data from manage_applications").
		WithArgs("m2").
		WillReturnRows(sqlmock.NewRows([]string{"manage_id", "manage_type", "data"}))

	catalog := NewPGCatalog(db)
	entities, err := catalog.Applications(context.Background(), []string{"m1", "m2"})
	if err != nil {
		t.Fatalf("Applications: %v", err)
	}
	if len(entities) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entities))
	}
	if entities[0].Unknown() || !entities[1].Unknown() {
		t.Fatalf("expected known then unknown, got %v", entities)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
