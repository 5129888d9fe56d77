package export_test

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"leadtrack-crm/internal/domain"
	"leadtrack-crm/internal/mocks"
	"leadtrack-crm/internal/service/export"
)

type fakeStore struct {
	bucket  string
	key     string
	body    string
	putErr  error
	expires time.Duration
}

func (f *fakeStore) PutObject(_ context.Context, bucket, key string, r io.Reader, size int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.bucket, f.key, f.body = bucket, key, string(raw)
	return minio.UploadInfo{Bucket: bucket, Key: key, Size: size}, nil
}

func (f *fakeStore) PresignedGetObject(_ context.Context, bucket, key string, expires time.Duration, _ url.Values) (*url.URL, error) {
	f.expires = expires
	return url.Parse("https://minio.local/" + bucket + "/" + key + "?X-Amz-Signature=abc")
}

func TestExportService_ExportLeads(t *testing.T) {
	ctx := context.Background()
	owner := int64(7)
	member := &domain.User{ID: 7, Role: domain.RoleTeamMember, IsActive: true}
	next := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	leads := []domain.Lead{
		{ID: 1, Name: "Ada, Countess", Email: "ada@acme.io", CompanyName: "Acme", Status: domain.LeadStatusNew, AssignedTo: &owner, NextFollowUp: &next},
		{ID: 2, Name: "Bob", Email: "bob@acme.io", CompanyName: "Beta", Status: domain.LeadStatusLost},
	}

	t.Run("Uploads Scoped CSV", func(t *testing.T) {
		repo := new(mocks.LeadRepository)
		store := &fakeStore{}
		svc := export.NewService(repo, store, "crm-exports", 10*time.Minute, nil)

		other := int64(8)
		repo.On("ListAll", ctx, mock.MatchedBy(func(f domain.LeadFilter) bool {
			return *f.AssignedTo == 7 && f.Status == domain.LeadStatusNew
		})).Return(leads, nil).Once()

		out, err := svc.ExportLeads(ctx, member, domain.LeadFilter{Status: domain.LeadStatusNew, AssignedTo: &other})

		require.NoError(t, err)
		assert.Equal(t, 2, out.Rows)
		assert.Equal(t, "crm-exports", store.bucket)
		assert.True(t, strings.HasPrefix(out.ObjectKey, "exports/leads/"))
		assert.True(t, strings.HasSuffix(out.ObjectKey, ".csv"))
		assert.Contains(t, out.URL, out.ObjectKey)
		assert.Equal(t, 10*time.Minute, store.expires)

		records, err := csv.NewReader(strings.NewReader(store.body)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "id", records[0][0])
		assert.Equal(t, "Ada, Countess", records[1][1])
		assert.Equal(t, "7", records[1][6])
		assert.Equal(t, "2026-03-01T10:00:00Z", records[1][8])
		assert.Equal(t, "", records[2][6])
	})

	t.Run("Admin Filter Passes Through", func(t *testing.T) {
		repo := new(mocks.LeadRepository)
		svc := export.NewService(repo, &fakeStore{}, "crm-exports", time.Minute, nil)
		admin := &domain.User{ID: 1, Role: domain.RoleAdmin, IsActive: true}

		other := int64(8)
		repo.On("ListAll", ctx, domain.LeadFilter{AssignedTo: &other}).Return(leads[:1], nil).Once()

		out, err := svc.ExportLeads(ctx, admin, domain.LeadFilter{AssignedTo: &other})

		require.NoError(t, err)
		assert.Equal(t, 1, out.Rows)
		repo.AssertExpectations(t)
	})

	t.Run("Storage Failure", func(t *testing.T) {
		repo := new(mocks.LeadRepository)
		svc := export.NewService(repo, &fakeStore{putErr: errors.New("bucket gone")}, "crm-exports", 0, nil)
		repo.On("ListAll", ctx, mock.Anything).Return(leads, nil).Once()

		_, err := svc.ExportLeads(ctx, member, domain.LeadFilter{})

		assert.ErrorIs(t, err, domain.ErrExternalService)
	})

	t.Run("No Storage Configured", func(t *testing.T) {
		svc := export.NewService(new(mocks.LeadRepository), nil, "crm-exports", 0, nil)

		_, err := svc.ExportLeads(ctx, member, domain.LeadFilter{})

		assert.ErrorIs(t, err, domain.ErrExternalService)
		assert.ErrorIs(t, err, domain.ErrObjectStorageMissing)
	})
}
