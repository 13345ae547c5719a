package lead

import (
	"context"
	"errors"
	"log"
	"mime/multipart"

	"gorm.io/gorm"

	"leadcrm/internal/domain/audit"
	"leadcrm/internal/domain/catalog"
	"leadcrm/internal/domain/companyuser"
	"leadcrm/internal/domain/document"
	"leadcrm/internal/pkg/rules"
)

// Service orchestrates lead mutations: validation first, then ownership,
// then a single transaction across the lead row, its product/service links,
// its document rows and its history trail. Blobs are written before the
// transaction and removed again if it rolls back.
type Service struct {
	db           *gorm.DB
	leads        *Repository
	catalogs     *catalog.Repository
	companyUsers *companyuser.Repository
	storage      *document.Storage
	audit        *audit.Recorder
	dateFormat   string
	maxFileBytes int64
}

func NewService(
	db *gorm.DB,
	leads *Repository,
	catalogs *catalog.Repository,
	companyUsers *companyuser.Repository,
	storage *document.Storage,
	auditRec *audit.Recorder,
	dateFormat string,
	maxFileBytes int64,
) *Service {
	return &Service{
		db:           db,
		leads:        leads,
		catalogs:     catalogs,
		companyUsers: companyUsers,
		storage:      storage,
		audit:        auditRec,
		dateFormat:   dateFormat,
		maxFileBytes: maxFileBytes,
	}
}

// resolveOwner maps the acting user to its company-user identity.
func (s *Service) resolveOwner(ctx context.Context, userID int64) (*companyuser.CompanyUser, error) {
	return s.companyUsers.ResolveByUserID(ctx, userID)
}

// List returns one page of the owner's leads. Visibility is scoped to the
// owner inside the query itself, never per row.
func (s *Service) List(ctx context.Context, userID int64, v rules.Values) (*Page, error) {
	if err := s.runValidation(ctx, s.listFields(), v, listMessages()); err != nil {
		return nil, err
	}

	owner, err := s.resolveOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.leads.List(ctx, owner.ID, listQueryFromValues(v, s.dateFormat))
}

// Create validates the payload, persists the lead with its links, documents
// and the "Lead Created" history entry, all within one transaction.
func (s *Service) Create(ctx context.Context, userID int64, v rules.Values) error {
	if err := s.runValidation(ctx, s.saveFields(false), v, saveMessages()); err != nil {
		return err
	}

	owner, err := s.resolveOwner(ctx, userID)
	if err != nil {
		return err
	}

	p := payloadFromValues(v)
	l := &Lead{CompanyUserID: owner.ID}
	s.applyPayload(l, p)
	if err := s.applyCountry(ctx, l, p); err != nil {
		return err
	}

	docs, err := s.storeFiles(requestFiles(v))
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.leads.WithTx(tx)
		if err := repo.Create(ctx, l); err != nil {
			return err
		}
		if len(p.ProductServices) > 0 {
			if err := repo.ReplaceProductServices(ctx, l.ID, p.ProductServices); err != nil {
				return err
			}
		}
		for i := range docs {
			docs[i].LeadID = l.ID
		}
		if err := repo.AddDocuments(ctx, docs); err != nil {
			return err
		}
		return repo.RecordHistory(ctx, l.ID, owner.ID, "Lead Created")
	})
	if err != nil {
		s.removeBlobs(docs)
		return err
	}
	return nil
}

// Update applies full-replace semantics: every mutable field is written from
// the payload, so omitted optional fields are cleared. Product/service links
// are replaced wholesale; newly uploaded documents are appended.
func (s *Service) Update(ctx context.Context, userID int64, v rules.Values) error {
	if err := s.runValidation(ctx, s.saveFields(true), v, saveMessages()); err != nil {
		return err
	}

	owner, err := s.resolveOwner(ctx, userID)
	if err != nil {
		return err
	}

	leadID, _ := rules.Int(v["lead_id"])
	l, err := s.authorizedLead(ctx, leadID, owner, "LeadService@Update", v)
	if err != nil {
		return err
	}

	p := payloadFromValues(v)
	s.applyPayload(l, p)
	if err := s.applyCountry(ctx, l, p); err != nil {
		return err
	}

	docs, err := s.storeFiles(requestFiles(v))
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.leads.WithTx(tx)
		if err := repo.Save(ctx, l); err != nil {
			return err
		}
		if len(p.ProductServices) > 0 {
			if err := repo.ReplaceProductServices(ctx, l.ID, p.ProductServices); err != nil {
				return err
			}
		}
		for i := range docs {
			docs[i].LeadID = l.ID
		}
		if err := repo.AddDocuments(ctx, docs); err != nil {
			return err
		}
		return repo.RecordHistory(ctx, l.ID, owner.ID, "Lead Updated")
	})
	if err != nil {
		s.removeBlobs(docs)
		return err
	}
	return nil
}

// Delete soft-deletes the lead after physically removing its product/service
// links and documents. History entries survive. Blob removal happens after
// the commit; a failing blob delete is logged, not surfaced.
func (s *Service) Delete(ctx context.Context, userID int64, v rules.Values) error {
	if err := s.runValidation(ctx, s.leadIDFields(), v, leadIDMessages()); err != nil {
		return err
	}

	owner, err := s.resolveOwner(ctx, userID)
	if err != nil {
		return err
	}

	leadID, _ := rules.Int(v["lead_id"])
	l, err := s.authorizedLead(ctx, leadID, owner, "LeadService@Delete", v)
	if err != nil {
		return err
	}

	docs, err := s.leads.DocumentsByLead(ctx, l.ID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.leads.WithTx(tx)
		if err := repo.DeleteProductServices(ctx, l.ID); err != nil {
			return err
		}
		if err := repo.DeleteDocuments(ctx, l.ID); err != nil {
			return err
		}
		if err := repo.SoftDelete(ctx, l); err != nil {
			return err
		}
		return repo.RecordHistory(ctx, l.ID, owner.ID, "Lead Deleted")
	})
	if err != nil {
		return err
	}

	for i := range docs {
		if err := s.storage.Remove(&docs[i]); err != nil {
			log.Printf("document_blob_remove_failed lead_id=%d path=%s error=%v", l.ID, docs[i].FilePath, err)
		}
	}
	return nil
}

// UpdateStatus changes exactly one classification field, selected by kind.
func (s *Service) UpdateStatus(ctx context.Context, userID int64, v rules.Values) error {
	if err := s.runValidation(ctx, s.statusFields(), v, statusMessages()); err != nil {
		return err
	}

	owner, err := s.resolveOwner(ctx, userID)
	if err != nil {
		return err
	}

	leadID, _ := rules.Int(v["lead_id"])
	l, err := s.authorizedLead(ctx, leadID, owner, "LeadService@UpdateStatus", v)
	if err != nil {
		return err
	}

	kindVal, _ := rules.Int(v["type"])
	var column, note string
	var value int64
	switch StatusUpdateKind(kindVal) {
	case KindStatus:
		column, note = "lead_status_id", "Lead Status Updated"
		value, _ = rules.Int(v["lead_status_id"])
	case KindChannel:
		column, note = "lead_channel_id", "Lead Channel Updated"
		value, _ = rules.Int(v["lead_channel_id"])
	case KindConversion:
		column, note = "lead_conversion_id", "Lead Conversion Updated"
		value, _ = rules.Int(v["lead_conversion_id"])
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.leads.WithTx(tx)
		if err := repo.UpdateClassification(ctx, l.ID, column, value); err != nil {
			return err
		}
		return repo.RecordHistory(ctx, l.ID, owner.ID, note)
	})
}

// History returns a lead's trail, owner-checked like any other read of a
// single lead.
func (s *Service) History(ctx context.Context, userID int64, v rules.Values) ([]LeadHistory, error) {
	if err := s.runValidation(ctx, s.leadIDFields(), v, leadIDMessages()); err != nil {
		return nil, err
	}

	owner, err := s.resolveOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	leadID, _ := rules.Int(v["lead_id"])
	if _, err := s.authorizedLead(ctx, leadID, owner, "LeadService@History", v); err != nil {
		return nil, err
	}
	return s.leads.HistoryByLead(ctx, leadID)
}

// ---- helpers ----

func (s *Service) runValidation(ctx context.Context, fields []rules.FieldRules, v rules.Values, messages map[string]string) error {
	res, err := rules.Validate(ctx, fields, v, messages)
	if err != nil {
		return err
	}
	if !res.OK() {
		return &ValidationError{Message: res.First(), Fields: res.Messages()}
	}
	return nil
}

// authorizedLead loads the lead and enforces ownership. A mismatch is
// audit-logged with the actor and raw payload and answered with the same
// generic denial whether or not the lead exists.
func (s *Service) authorizedLead(ctx context.Context, leadID int64, owner *companyuser.CompanyUser, op string, v rules.Values) (*Lead, error) {
	l, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrNotFound
	}
	if l.CompanyUserID != owner.ID {
		s.audit.Log(ctx, op+" denied", &owner.UserID, audit.CategorySecurity, v)
		return nil, ErrNotOwner
	}
	return l, nil
}

// applyPayload writes every mutable field; nil pointers clear columns.
func (s *Service) applyPayload(l *Lead, p savePayload) {
	l.Name = p.Name
	l.Email = p.Email
	l.Phone = p.Phone
	l.CompanyName = p.CompanyName
	l.CompanySize = p.CompanySize
	l.CompanyWebsite = p.CompanyWebsite
	l.LeadStatusID = p.LeadStatusID
	l.LeadChannelID = p.LeadChannelID
	l.LeadConversionID = p.LeadConversionID
	l.Budget = p.Budget
	l.TimeLine = p.TimeLine
	l.Description = p.Description
	l.DealAmount = p.DealAmount
	l.WinCloseReason = p.WinCloseReason
	l.DealCloseDate = p.DealCloseDate
}

// applyCountry derives country_id from a supplied country_code_alpha. When
// the code is omitted the country reverts to unset; it is not preserved from
// the prior value.
func (s *Service) applyCountry(ctx context.Context, l *Lead, p savePayload) error {
	l.CountryID = nil
	if p.CountryCodeAlpha == "" {
		return nil
	}
	country, err := s.catalogs.CountryByAlpha(ctx, p.CountryCodeAlpha)
	if err != nil {
		return err
	}
	if country != nil {
		l.CountryID = &country.ID
	}
	return nil
}

// storeFiles writes every upload before the transaction starts; on a partial
// failure the already-written blobs are removed and the operation fails as a
// whole.
func (s *Service) storeFiles(files []*multipart.FileHeader) ([]document.Document, error) {
	var docs []document.Document
	for _, fh := range files {
		d, err := s.storage.Store(fh)
		if err != nil {
			s.removeBlobs(docs)
			return nil, err
		}
		docs = append(docs, *d)
	}
	return docs, nil
}

func (s *Service) removeBlobs(docs []document.Document) {
	for i := range docs {
		if err := s.storage.Remove(&docs[i]); err != nil {
			log.Printf("document_blob_cleanup_failed path=%s error=%v", docs[i].FilePath, err)
		}
	}
}

// IsDenial reports whether err must surface as the generic denial message.
func IsDenial(err error) bool {
	return errors.Is(err, ErrNotOwner) || errors.Is(err, companyuser.ErrNotFound)
}
