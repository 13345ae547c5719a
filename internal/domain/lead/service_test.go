package lead

import (
	"context"
	"errors"
	"fmt"
	"testing"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"

	"leadcrm/internal/domain/audit"
	"leadcrm/internal/domain/auth"
	"leadcrm/internal/domain/catalog"
	"leadcrm/internal/domain/companyuser"
	"leadcrm/internal/domain/document"
	"leadcrm/internal/pkg/rules"
)

type svcFixture struct {
	svc         *Service
	db          *gorm.DB
	ownerUserID int64
	ownerCUID   int64
	otherUserID int64
	otherCUID   int64
}

func setupService(t *testing.T) *svcFixture {
	t.Helper()

	orig := rules.ResolveDomain
	rules.ResolveDomain = func(string) bool { return true }
	t.Cleanup(func() { rules.ResolveDomain = orig })

	dsn := fmt.Sprintf("file:lead_svc_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}

	if err := db.AutoMigrate(
		&auth.User{},
		&companyuser.CompanyUser{},
		&catalog.LeadStatus{},
		&catalog.LeadChannel{},
		&catalog.LeadConversion{},
		&catalog.ProductService{},
		&catalog.Country{},
		&Lead{},
		&LeadProductService{},
		&LeadHistory{},
		&document.Document{},
		&audit.Entry{},
	); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}

	seed := []any{
		&catalog.LeadStatus{Name: "New"}, &catalog.LeadStatus{Name: "Won"},
		&catalog.LeadChannel{Name: "Website Forms"}, &catalog.LeadChannel{Name: "Referral"},
		&catalog.LeadConversion{Name: "Discovery"}, &catalog.LeadConversion{Name: "Proposal Stage"},
		&catalog.ProductService{Name: "Web Development"}, &catalog.ProductService{Name: "Consulting"},
		&catalog.Country{Name: "India", CountryCode: "91", CountryCodeAlpha: "IN"},
	}
	for _, row := range seed {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("seed %T: %v", row, err)
		}
	}

	f := &svcFixture{db: db}
	f.ownerUserID, f.ownerCUID = createCompanyUser(t, db, "Owner Co", "owner@example.com")
	f.otherUserID, f.otherCUID = createCompanyUser(t, db, "Other Co", "other@example.com")

	f.svc = NewService(
		db,
		NewRepository(db),
		catalog.NewRepository(db),
		companyuser.NewRepository(db),
		document.NewStorage(t.TempDir(), "/static/uploads", 5<<20),
		audit.NewRecorder(db),
		"2006-01-02",
		5<<20,
	)
	return f
}

func createCompanyUser(t *testing.T, db *gorm.DB, name, email string) (int64, int64) {
	t.Helper()
	user := auth.User{Name: name, Email: email, PasswordHash: "x", UserRole: auth.RoleCompany}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	cu := companyuser.CompanyUser{CompanyID: user.ID, UserID: user.ID}
	if err := db.Create(&cu).Error; err != nil {
		t.Fatalf("create company user: %v", err)
	}
	return user.ID, cu.ID
}

// saveValues builds a minimal valid save payload the way a JSON body
// decodes: numbers as float64, arrays as []any.
func saveValues(name, email string) rules.Values {
	return rules.Values{
		"name":               name,
		"email":              email,
		"lead_status_id":     float64(1),
		"lead_channel_id":    float64(1),
		"lead_conversion_id": float64(1),
		"product_services":   []any{float64(1)},
	}
}

func (f *svcFixture) createLead(t *testing.T, userID int64, v rules.Values) *Lead {
	t.Helper()
	if err := f.svc.Create(context.Background(), userID, v); err != nil {
		t.Fatalf("create lead: %v", err)
	}
	var l Lead
	if err := f.db.Where("name = ?", v["name"]).Order("id DESC").First(&l).Error; err != nil {
		t.Fatalf("load created lead: %v", err)
	}
	return &l
}

func (f *svcFixture) historyDescriptions(t *testing.T, leadID int64) []string {
	t.Helper()
	var entries []LeadHistory
	if err := f.db.Where("lead_id = ?", leadID).Order("id").Find(&entries).Error; err != nil {
		t.Fatalf("load history: %v", err)
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Description
	}
	return out
}

func TestCreateLeadPersistsLinksAndHistory(t *testing.T) {
	f := setupService(t)

	v := saveValues("Acme Corp", "buyer@acme.test")
	v["product_services"] = []any{float64(1), float64(2)}
	v["budget"] = "50k"
	l := f.createLead(t, f.ownerUserID, v)

	if l.CompanyUserID != f.ownerCUID {
		t.Fatalf("lead owned by cu %d, want %d", l.CompanyUserID, f.ownerCUID)
	}
	if l.Email == nil || *l.Email != "buyer@acme.test" {
		t.Fatalf("email not stored: %+v", l.Email)
	}
	if l.Budget == nil || *l.Budget != "50k" {
		t.Fatalf("budget not stored: %+v", l.Budget)
	}

	var links []LeadProductService
	if err := f.db.Where("lead_id = ?", l.ID).Find(&links).Error; err != nil {
		t.Fatalf("load links: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("expected 2 product/service links, got %d", len(links))
	}

	got := f.historyDescriptions(t, l.ID)
	if len(got) != 1 || got[0] != "Lead Created" {
		t.Fatalf("unexpected history %v", got)
	}
}

func TestCreateRequiresEmailOrPhone(t *testing.T) {
	f := setupService(t)

	v := saveValues("No Contact", "")
	delete(v, "email")
	err := f.svc.Create(context.Background(), f.ownerUserID, v)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Message != "Invalid email, please try again." {
		t.Fatalf("unexpected message %q", ve.Message)
	}

	var count int64
	f.db.Model(&Lead{}).Count(&count)
	if count != 0 {
		t.Fatalf("no lead should be created, got %d", count)
	}
}

func TestCreateRejectsEmptyProductServices(t *testing.T) {
	f := setupService(t)

	v := saveValues("No Links", "nolinks@x.test")
	v["product_services"] = []any{}
	err := f.svc.Create(context.Background(), f.ownerUserID, v)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Message != "Invalid product/services, please try again." {
		t.Fatalf("unexpected message %q", ve.Message)
	}

	var count int64
	f.db.Model(&Lead{}).Count(&count)
	if count != 0 {
		t.Fatalf("no lead should be created, got %d", count)
	}
}

func TestCreatePhoneRequiresCountryCode(t *testing.T) {
	f := setupService(t)

	v := saveValues("Phone Only", "")
	delete(v, "email")
	v["phone"] = "9876543210"
	err := f.svc.Create(context.Background(), f.ownerUserID, v)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Message != "Invalid Country Code Alpha, please try again." {
		t.Fatalf("unexpected message %q", ve.Message)
	}

	v["country_code_alpha"] = "IN"
	l := f.createLead(t, f.ownerUserID, v)
	if l.CountryID == nil {
		t.Fatal("country should be resolved from the alpha code")
	}
	if l.Phone == nil || *l.Phone != "9876543210" {
		t.Fatalf("phone not stored: %+v", l.Phone)
	}
}

func TestListScopedToOwner(t *testing.T) {
	f := setupService(t)

	f.createLead(t, f.ownerUserID, saveValues("Mine One", "a@mine.test"))
	f.createLead(t, f.ownerUserID, saveValues("Mine Two", "b@mine.test"))
	f.createLead(t, f.otherUserID, saveValues("Theirs", "c@theirs.test"))

	page, err := f.svc.List(context.Background(), f.ownerUserID, rules.Values{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 2 || len(page.Data) != 2 {
		t.Fatalf("expected 2 own leads, got total=%d len=%d", page.Total, len(page.Data))
	}
	for _, l := range page.Data {
		if l.CompanyUserID != f.ownerCUID {
			t.Fatalf("foreign lead leaked into listing: %+v", l)
		}
	}
}

func TestListDateFilterNeedsBothBounds(t *testing.T) {
	f := setupService(t)
	f.createLead(t, f.ownerUserID, saveValues("Dated", "d@x.test"))

	// only one bound supplied: the filter must not apply at all
	page, err := f.svc.List(context.Background(), f.ownerUserID, rules.Values{
		"start_date": "2000-01-01",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("half-open date range should be ignored, got total=%d", page.Total)
	}

	page, err = f.svc.List(context.Background(), f.ownerUserID, rules.Values{
		"start_date": "2000-01-01",
		"end_date":   "2000-01-02",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 0 {
		t.Fatalf("full range in the past should match nothing, got total=%d", page.Total)
	}
}

func TestListOrderByNameDescending(t *testing.T) {
	f := setupService(t)

	for _, name := range []string{"Bob", "Alice", "Carol"} {
		f.createLead(t, f.ownerUserID, saveValues(name, name+"@x.test"))
	}

	page, err := f.svc.List(context.Background(), f.ownerUserID, rules.Values{
		"order_by":   float64(2),
		"sort_order": float64(2),
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	want := []string{"Carol", "Bob", "Alice"}
	if len(page.Data) != len(want) {
		t.Fatalf("expected %d leads, got %d", len(want), len(page.Data))
	}
	for i, l := range page.Data {
		if l.Name != want[i] {
			t.Fatalf("position %d: got %q want %q", i, l.Name, want[i])
		}
	}
}

func TestListOrderByAloneDoesNotSort(t *testing.T) {
	f := setupService(t)
	f.createLead(t, f.ownerUserID, saveValues("Solo", "s@x.test"))

	// order_by alone is accepted by validation but must not reorder
	page, err := f.svc.List(context.Background(), f.ownerUserID, rules.Values{
		"order_by": float64(2),
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("unexpected total %d", page.Total)
	}

	_, err = f.svc.List(context.Background(), f.ownerUserID, rules.Values{
		"order_by": float64(9),
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("out-of-range order_by should fail validation, got %v", err)
	}
}

func TestUpdateReplacesOmittedFields(t *testing.T) {
	f := setupService(t)

	v := saveValues("Full Lead", "full@x.test")
	v["phone"] = "9876543210"
	v["country_code_alpha"] = "IN"
	v["description"] = "important prospect"
	v["budget"] = "100k"
	l := f.createLead(t, f.ownerUserID, v)
	if l.CountryID == nil || l.Description == nil {
		t.Fatalf("precondition: optional fields should be set, got %+v", l)
	}

	upd := saveValues("Full Lead", "full@x.test")
	upd["lead_id"] = float64(l.ID)
	upd["product_services"] = []any{float64(2)}
	if err := f.svc.Update(context.Background(), f.ownerUserID, upd); err != nil {
		t.Fatalf("update: %v", err)
	}

	var got Lead
	if err := f.db.First(&got, l.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Description != nil || got.Budget != nil || got.Phone != nil || got.CountryID != nil {
		t.Fatalf("omitted optional fields must be cleared, got %+v", got)
	}

	var links []LeadProductService
	if err := f.db.Where("lead_id = ?", l.ID).Find(&links).Error; err != nil {
		t.Fatalf("load links: %v", err)
	}
	if len(links) != 1 || links[0].ProductServiceID != 2 {
		t.Fatalf("links should be replaced wholesale, got %+v", links)
	}

	got2 := f.historyDescriptions(t, l.ID)
	if len(got2) != 2 || got2[1] != "Lead Updated" {
		t.Fatalf("unexpected history %v", got2)
	}
}

func TestUpdateDeniedForNonOwner(t *testing.T) {
	f := setupService(t)

	l := f.createLead(t, f.ownerUserID, saveValues("Guarded", "g@x.test"))

	upd := saveValues("Hijacked", "g@x.test")
	upd["lead_id"] = float64(l.ID)
	err := f.svc.Update(context.Background(), f.otherUserID, upd)
	if !IsDenial(err) {
		t.Fatalf("expected ownership denial, got %v", err)
	}

	var got Lead
	if err := f.db.First(&got, l.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Name != "Guarded" {
		t.Fatalf("lead must be unchanged after denial, got name %q", got.Name)
	}

	var entries []audit.Entry
	if err := f.db.Where("category = ?", audit.CategorySecurity).Find(&entries).Error; err != nil {
		t.Fatalf("load audit: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one security audit entry, got %d", len(entries))
	}
}

func TestDeleteCascadesAndKeepsHistory(t *testing.T) {
	f := setupService(t)

	v := saveValues("Doomed", "doom@x.test")
	v["product_services"] = []any{float64(1), float64(2)}
	l := f.createLead(t, f.ownerUserID, v)

	del := rules.Values{"lead_id": float64(l.ID)}
	if err := f.svc.Delete(context.Background(), f.ownerUserID, del); err != nil {
		t.Fatalf("delete: %v", err)
	}

	live, err := NewRepository(f.db).ExistsLive(context.Background(), l.ID)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if live {
		t.Fatal("lead should be soft-deleted")
	}
	var raw Lead
	if err := f.db.Unscoped().First(&raw, l.ID).Error; err != nil {
		t.Fatalf("soft-deleted row should still exist: %v", err)
	}

	var links int64
	f.db.Model(&LeadProductService{}).Where("lead_id = ?", l.ID).Count(&links)
	if links != 0 {
		t.Fatalf("links should be physically removed, got %d", links)
	}
	var docs int64
	f.db.Model(&document.Document{}).Where("lead_id = ?", l.ID).Count(&docs)
	if docs != 0 {
		t.Fatalf("document rows should be physically removed, got %d", docs)
	}

	got := f.historyDescriptions(t, l.ID)
	if len(got) != 2 || got[1] != "Lead Deleted" {
		t.Fatalf("history must survive the delete, got %v", got)
	}

	// second delete fails validation: the lead no longer exists live
	err = f.svc.Delete(context.Background(), f.ownerUserID, del)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error on double delete, got %v", err)
	}
	if ve.Message != "Invalid Lead Id, please try again." {
		t.Fatalf("unexpected message %q", ve.Message)
	}
}

func TestUpdateStatusChangesOneColumn(t *testing.T) {
	f := setupService(t)

	l := f.createLead(t, f.ownerUserID, saveValues("Mover", "m@x.test"))

	err := f.svc.UpdateStatus(context.Background(), f.ownerUserID, rules.Values{
		"lead_id":        float64(l.ID),
		"type":           float64(1),
		"lead_status_id": float64(2),
	})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}

	var got Lead
	if err := f.db.First(&got, l.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.LeadStatusID != 2 {
		t.Fatalf("status should change to 2, got %d", got.LeadStatusID)
	}
	if got.LeadChannelID != 1 || got.LeadConversionID != 1 {
		t.Fatalf("other classifications must not change, got %+v", got)
	}

	hist := f.historyDescriptions(t, l.ID)
	if len(hist) != 2 || hist[1] != "Lead Status Updated" {
		t.Fatalf("unexpected history %v", hist)
	}

	// type selects the required id field
	err = f.svc.UpdateStatus(context.Background(), f.ownerUserID, rules.Values{
		"lead_id": float64(l.ID),
		"type":    float64(2),
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("missing channel id for type=2 should fail, got %v", err)
	}
	if ve.Message != "Invalid lead channel, please try again." {
		t.Fatalf("unexpected message %q", ve.Message)
	}
}

func TestValidationHaltsBeforeSideEffects(t *testing.T) {
	f := setupService(t)

	l := f.createLead(t, f.ownerUserID, saveValues("Stable", "stable@x.test"))

	upd := saveValues("Changed", "not-an-email")
	upd["lead_id"] = float64(l.ID)
	err := f.svc.Update(context.Background(), f.ownerUserID, upd)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}

	var got Lead
	if err := f.db.First(&got, l.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Name != "Stable" {
		t.Fatalf("lead must be untouched on validation failure, got %q", got.Name)
	}
	if hist := f.historyDescriptions(t, l.ID); len(hist) != 1 {
		t.Fatalf("no history should be appended, got %v", hist)
	}
}
