package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"leadtrack-crm/internal/domain"
	"leadtrack-crm/internal/pkg/logger"
	"leadtrack-crm/internal/policy"
	"leadtrack-crm/internal/repository"
)

// ObjectStore is the part of *minio.Client the export needs.
type ObjectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
}

type Service interface {
	ExportLeads(ctx context.Context, actor *domain.User, filter domain.LeadFilter) (*domain.LeadExport, error)
}

type service struct {
	leadRepo repository.LeadRepository
	store    ObjectStore
	bucket   string
	urlTTL   time.Duration
	log      *zap.Logger
}

func NewService(leadRepo repository.LeadRepository, store ObjectStore, bucket string, urlTTL time.Duration, log *zap.Logger) Service {
	if urlTTL <= 0 {
		urlTTL = 15 * time.Minute
	}
	return &service{
		leadRepo: leadRepo,
		store:    store,
		bucket:   bucket,
		urlTTL:   urlTTL,
		log:      logger.OrNop(log).Named("export"),
	}
}

var csvHeader = []string{
	"id", "name", "email", "company_name", "industry", "status", "assigned_to",
	"last_contact_date", "next_follow_up", "created_at",
}

func (s *service) ExportLeads(ctx context.Context, actor *domain.User, filter domain.LeadFilter) (*domain.LeadExport, error) {
	if s.store == nil {
		return nil, domain.ExternalError("object storage", domain.ErrObjectStorageMissing)
	}

	leads, err := s.leadRepo.ListAll(ctx, policy.ScopeLeadFilter(actor, filter))
	if err != nil {
		return nil, err
	}

	body, err := encodeLeads(leads)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	key := fmt.Sprintf("exports/leads/%s/%d-%s.csv", now.Format("2006/01/02"), actor.ID, uuid.New().String())

	_, err = s.store.PutObject(ctx, s.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType:        "text/csv",
		ContentDisposition: `attachment; filename="leads.csv"`,
	})
	if err != nil {
		return nil, domain.ExternalError("object storage", err)
	}

	u, err := s.store.PresignedGetObject(ctx, s.bucket, key, s.urlTTL, url.Values{})
	if err != nil {
		return nil, domain.ExternalError("object storage", err)
	}

	s.log.Info("leads exported", zap.Int64("actor_id", actor.ID), zap.Int("rows", len(leads)), zap.String("key", key))
	return &domain.LeadExport{
		ObjectKey: key,
		URL:       u.String(),
		Rows:      len(leads),
		ExpiresAt: now.Add(s.urlTTL),
	}, nil
}

func encodeLeads(leads []domain.Lead) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, l := range leads {
		record := []string{
			strconv.FormatInt(l.ID, 10),
			l.Name,
			l.Email,
			l.CompanyName,
			deref(l.Industry),
			string(l.Status),
			formatID(l.AssignedTo),
			formatTime(l.LastContactDate),
			formatTime(l.NextFollowUp),
			l.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
