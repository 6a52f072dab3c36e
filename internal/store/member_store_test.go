package store

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swagmedia/swagmedia-golang/internal/models"
)

var memberCols = []string{
	"id", "login", "password_hash", "nickname", "vk_link", "channel_link",
	"balance", "admin_level", "is_approved", "media_type", "warnings",
	"previews_used", "previews_limit", "blacklist_until", "registration_ip", "created_at",
}

func memberRow(mock sqlmock.Sqlmock, m *models.Member) *sqlmock.Rows {
	return mock.NewRows(memberCols).AddRow(
		m.ID, m.Login, m.PasswordHash, m.Nickname, m.VKLink, m.ChannelLink,
		m.Balance, m.AdminLevel, m.IsApproved, m.MediaTier, m.Warnings,
		m.PreviewsUsed, m.PreviewsLimit, m.SuspendedUntil, m.RegistrationIP, m.CreatedAt,
	)
}

func testMember() *models.Member {
	ip := "203.0.113.10"
	return &models.Member{
		ID:             "m-1",
		Login:          "streamer",
		PasswordHash:   "$2a$10$hash",
		Nickname:       "StreamerOne",
		VKLink:         "https://vk.com/streamerone",
		ChannelLink:    "https://t.me/streamerone",
		IsApproved:     true,
		MediaTier:      models.TierPaid,
		PreviewsLimit:  models.DefaultPreviewLimit,
		RegistrationIP: &ip,
		CreatedAt:      time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestMemberStore_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	want := testMember()
	mock.ExpectQuery(`FROM members\s+WHERE id = \?`).
		WithArgs("m-1").
		WillReturnRows(memberRow(mock, want))

	s := NewMemberStore(db)
	got, err := s.Get("m-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Nickname, got.Nickname)
	assert.Equal(t, models.TierPaid, got.MediaTier)
	require.NotNil(t, got.RegistrationIP)
	assert.Equal(t, "203.0.113.10", *got.RegistrationIP)
	assert.Nil(t, got.SuspendedUntil)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberStore_Get_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM members\s+WHERE id = \?`).
		WithArgs("missing").
		WillReturnRows(mock.NewRows(memberCols))

	s := NewMemberStore(db)
	got, err := s.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, got, "a missing member should come back as (nil, nil), not an error")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberStore_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := testMember()
	m.PreviewsUsed = 2

	mock.ExpectExec("UPDATE members").
		WithArgs(
			m.Nickname, m.ChannelLink, m.Balance, m.AdminLevel,
			m.IsApproved, m.MediaTier, m.Warnings,
			m.PreviewsUsed, m.PreviewsLimit, m.SuspendedUntil,
			m.ID,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewMemberStore(db)
	require.NoError(t, s.Save(m))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberStore_Save_MemberDisappeared(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := testMember()

	mock.ExpectExec("UPDATE members").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`FROM members\s+WHERE id = \?`).
		WithArgs(m.ID).
		WillReturnRows(mock.NewRows(memberCols))

	s := NewMemberStore(db)
	err = s.Save(m)
	require.Error(t, err, "saving a member that was removed externally should fail loudly")
	assert.Contains(t, err.Error(), "no longer exists")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberStore_FindByOrigin(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	want := testMember()
	mock.ExpectQuery(`FROM members\s+WHERE vk_link = \?`).
		WithArgs(want.VKLink).
		WillReturnRows(memberRow(mock, want))

	s := NewMemberStore(db)
	got, err := s.FindByOrigin(want.VKLink)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
