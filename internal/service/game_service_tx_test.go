package service

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/vocab-api/internal/domain/entity"
	apperrors "github.com/yourusername/vocab-api/internal/pkg/errors"
)

// ============================================================================
// Транзакция SubmitGameSession (sqlmock)
// ============================================================================

// outcomeUpdatePattern проверяет, что очки и прогресс уровня применяются
// одним атомарным UPDATE (инкременты на стороне SQL, без read-modify-write)
const outcomeUpdatePattern = `UPDATE users\s+SET points = points \+ \$1,\s+level = level \+ \(level_progress \+ \$2\) / \$3,\s+level_progress = \(level_progress \+ \$4\) % \$5,\s+updated_at = NOW\(\)\s+WHERE id = \$6\s+RETURNING points, level, level_progress`

func newGormMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, dbMock
}

func TestSubmitGameSession_PersistsSessionAndAppliesOutcome(t *testing.T) {
	db, dbMock := newGormMockDB(t)

	userRepo := new(MockUserRepoForGameService)
	userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1, Role: entity.RoleStudent}, nil)

	svc := NewGameService(new(MockSessionRepo), userRepo, new(MockAchievementRepo), new(MockCacheRepo), db)

	dbMock.ExpectBegin()
	dbMock.ExpectQuery(`INSERT INTO "game_sessions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	// 4 правильных ответа: +40 очков, старый прогресс 2 -> уровень 2, прогресс 1
	dbMock.ExpectQuery(outcomeUpdatePattern).
		WithArgs(40, 4, entity.LevelUpThreshold, 4, entity.LevelUpThreshold, uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"points", "level", "level_progress"}).AddRow(140, 2, 1))
	dbMock.ExpectQuery(`INSERT INTO "achievements"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	dbMock.ExpectCommit()

	session, err := svc.SubmitGameSession(validSubmitInput())
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, uint(7), session.ID)
	assert.NoError(t, dbMock.ExpectationsWereMet(), "Все SQL-ожидания должны быть выполнены")
}

func TestSubmitGameSession_AwardsAchievementPerGainedLevel(t *testing.T) {
	db, dbMock := newGormMockDB(t)

	userRepo := new(MockUserRepoForGameService)
	userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1, Role: entity.RoleStudent}, nil)

	svc := NewGameService(new(MockSessionRepo), userRepo, new(MockAchievementRepo), new(MockCacheRepo), db)

	// 12 правильных ответов при старом прогрессе 3: три перехода уровня подряд
	input := validSubmitInput()
	input.QuestionsAnswered = 12
	input.CorrectAnswers = 12
	input.Score = 120
	input.MaxScore = 120

	dbMock.ExpectBegin()
	dbMock.ExpectQuery(`INSERT INTO "game_sessions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))
	dbMock.ExpectQuery(outcomeUpdatePattern).
		WithArgs(120, 12, entity.LevelUpThreshold, 12, entity.LevelUpThreshold, uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"points", "level", "level_progress"}).AddRow(320, 5, 0))
	for i := 0; i < 3; i++ {
		dbMock.ExpectQuery(`INSERT INTO "achievements"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(i + 1))
	}
	dbMock.ExpectCommit()

	_, err := svc.SubmitGameSession(input)
	require.NoError(t, err)
	assert.NoError(t, dbMock.ExpectationsWereMet(), "Должно быть три записи достижений")
}

func TestSubmitGameSession_ReleasesIdempotencyKeyOnRollback(t *testing.T) {
	db, dbMock := newGormMockDB(t)

	userRepo := new(MockUserRepoForGameService)
	userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1, Role: entity.RoleStudent}, nil)

	key := "session:idem:1:retry-after-outage"
	cacheRepo := new(MockCacheRepo)
	cacheRepo.On("SetNX", key, 1, idempotencyKeyTTL).Return(true, nil).Twice()
	cacheRepo.On("Delete", key).Return(nil).Once()

	svc := NewGameService(new(MockSessionRepo), userRepo, new(MockAchievementRepo), cacheRepo, db)

	input := validSubmitInput()
	input.IdempotencyKey = "retry-after-outage"

	// Первая отправка: хранилище падает внутри транзакции, ключ должен быть снят
	dbMock.ExpectBegin()
	dbMock.ExpectQuery(`INSERT INTO "game_sessions"`).
		WillReturnError(errors.New("connection refused"))
	dbMock.ExpectRollback()

	session, err := svc.SubmitGameSession(input)
	require.Error(t, err)
	assert.Nil(t, session)
	cacheRepo.AssertCalled(t, "Delete", key)

	// Повтор с тем же ключом проходит, а не упирается в Conflict
	dbMock.ExpectBegin()
	dbMock.ExpectQuery(`INSERT INTO "game_sessions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	dbMock.ExpectQuery(outcomeUpdatePattern).
		WithArgs(40, 4, entity.LevelUpThreshold, 4, entity.LevelUpThreshold, uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"points", "level", "level_progress"}).AddRow(40, 1, 4))
	dbMock.ExpectCommit()

	session, err = svc.SubmitGameSession(input)
	require.NoError(t, err)
	assert.Equal(t, uint(9), session.ID)
	assert.NoError(t, dbMock.ExpectationsWereMet())
	cacheRepo.AssertExpectations(t)
}

func TestSubmitGameSession_ReleasesKeyWhenStoreUnavailable(t *testing.T) {
	db, dbMock := newGormMockDB(t)

	userRepo := new(MockUserRepoForGameService)
	userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1, Role: entity.RoleStudent}, nil)

	key := "session:idem:1:outage"
	cacheRepo := new(MockCacheRepo)
	cacheRepo.On("SetNX", key, 1, idempotencyKeyTTL).Return(true, nil)
	cacheRepo.On("Delete", key).Return(nil).Once()

	svc := NewGameService(new(MockSessionRepo), userRepo, new(MockAchievementRepo), cacheRepo, db)

	input := validSubmitInput()
	input.IdempotencyKey = "outage"

	dbMock.ExpectBegin().WillReturnError(errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"))

	session, err := svc.SubmitGameSession(input)
	assert.Nil(t, session)
	assert.True(t, errors.Is(err, apperrors.ErrUnavailable), "Недоступное хранилище должно давать ErrUnavailable")
	cacheRepo.AssertCalled(t, "Delete", key)
}
